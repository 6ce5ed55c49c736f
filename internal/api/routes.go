package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/superclaims/internal/claims"
	"github.com/JaimeStill/superclaims/internal/config"
	"github.com/JaimeStill/superclaims/pkg/openapi"
	"github.com/JaimeStill/superclaims/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) ([]string, error) {
	spec, err := buildSpec(cfg)
	if err != nil {
		return nil, err
	}

	return routes.Register(
		mux,
		domain.Claims.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		routes.Group{
			Routes: []routes.Route{
				{Method: "GET", Pattern: "/openapi.json", Handler: openapi.ServeSpec(spec)},
			},
		},
	), nil
}

func buildSpec(cfg *config.Config) ([]byte, error) {
	spec := openapi.NewSpec(&cfg.API.OpenAPI, cfg.Version)
	spec.AddServer(cfg.API.OpenAPI.Server(cfg.API.BasePath))
	spec.Components.AddSchemas(claims.Schemas())
	spec.AddPaths(claims.Paths())

	data, err := spec.JSON()
	if err != nil {
		return nil, fmt.Errorf("openapi: %w", err)
	}
	return data, nil
}
