package main

import (
	"net/http"

	"github.com/JaimeStill/superclaims/internal/api"
	"github.com/JaimeStill/superclaims/internal/config"
	"github.com/JaimeStill/superclaims/internal/infrastructure"
	"github.com/JaimeStill/superclaims/pkg/handlers"
	"github.com/JaimeStill/superclaims/pkg/module"
)

type Modules struct {
	API *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API: apiModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"status": "ready",
			"checks": infra.Lifecycle.Status(),
		}
		if !infra.Lifecycle.Ready() {
			body["status"] = "not ready"
			handlers.RespondJSON(w, http.StatusServiceUnavailable, body)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, body)
	})

	return router
}
