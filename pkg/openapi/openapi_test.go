package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/superclaims/pkg/openapi"
)

func TestNewSpec(t *testing.T) {
	cfg := &openapi.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	spec := openapi.NewSpec(cfg, "1.0.0")

	if spec.OpenAPI != "3.1.0" {
		t.Errorf("openapi version: got %s, want 3.1.0", spec.OpenAPI)
	}
	if spec.Info.Title != "SuperClaims API" {
		t.Errorf("title: got %s", spec.Info.Title)
	}
	if spec.Info.Version != "1.0.0" {
		t.Errorf("version: got %s, want 1.0.0", spec.Info.Version)
	}
	if spec.Info.Description == "" {
		t.Error("description should default")
	}
	if _, ok := spec.Components.Schemas["Error"]; !ok {
		t.Error("Error schema missing")
	}
	for _, name := range []string{"BadRequest", "PayloadTooLarge", "UnprocessableEntity", "BadGateway", "GatewayTimeout"} {
		if _, ok := spec.Components.Responses[name]; !ok {
			t.Errorf("response %s missing", name)
		}
	}
}

func TestAddPaths(t *testing.T) {
	spec := openapi.NewSpec(&openapi.Config{Title: "T"}, "1")
	get := &openapi.Operation{Summary: "get"}
	post := &openapi.Operation{Summary: "post"}

	spec.AddPaths(map[string]*openapi.PathItem{"/claims": {Get: get}})
	spec.AddPaths(map[string]*openapi.PathItem{"/claims": {Post: post}})

	item := spec.Paths["/claims"]
	if item.Get != get || item.Post != post {
		t.Errorf("path item: got %+v", item)
	}
}

func TestRefs(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"schema", openapi.SchemaRef("Claim").Ref, "#/components/schemas/Claim"},
		{"response", openapi.ResponseRef("BadRequest").Ref, "#/components/responses/BadRequest"},
		{"json response", openapi.ResponseJSON("ok", "Claim").Content["application/json"].Schema.Ref, "#/components/schemas/Claim"},
		{"nullable", openapi.Nullable("Validation").OneOf[0].Ref, "#/components/schemas/Validation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestRequestBodyFiles(t *testing.T) {
	body := openapi.RequestBodyFiles("files", "claim documents")

	media, ok := body.Content["multipart/form-data"]
	if !ok {
		t.Fatal("multipart content missing")
	}
	field := media.Schema.Properties["files"]
	if field == nil || field.Type != "array" || field.Items.Format != "binary" {
		t.Errorf("files property: got %+v", field)
	}
	if media.Encoding["files"].ContentType != "application/pdf" {
		t.Errorf("encoding: got %+v", media.Encoding["files"])
	}
}

func TestServeSpec(t *testing.T) {
	spec := openapi.NewSpec(&openapi.Config{Title: "T"}, "1")
	spec.AddServer("/api")

	data, err := spec.JSON()
	if err != nil {
		t.Fatalf("json: %v", err)
	}

	rec := httptest.NewRecorder()
	openapi.ServeSpec(data)(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content-type: got %s", ct)
	}

	var decoded map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["openapi"] != "3.1.0" {
		t.Errorf("openapi: got %v", decoded["openapi"])
	}
}

func TestConfigFinalizeEnv(t *testing.T) {
	t.Setenv("TEST_OPENAPI_TITLE", "Override")

	cfg := &openapi.Config{}
	if err := cfg.Finalize(&openapi.ConfigEnv{Title: "TEST_OPENAPI_TITLE"}); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if cfg.Title != "Override" {
		t.Errorf("title: got %s", cfg.Title)
	}

	cfg.Merge(&openapi.Config{Description: "merged"})
	if cfg.Title != "Override" || cfg.Description != "merged" {
		t.Errorf("merge: got %+v", cfg)
	}
}

func TestConfigServer(t *testing.T) {
	tests := []struct {
		name      string
		serverURL string
		want      string
	}{
		{"fallback", "", "/api"},
		{"configured", "https://claims.example.com/api", "https://claims.example.com/api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &openapi.Config{ServerURL: tt.serverURL}
			if err := cfg.Finalize(nil); err != nil {
				t.Fatalf("finalize: %v", err)
			}
			if got := cfg.Server("/api"); got != tt.want {
				t.Errorf("server: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestConfigInvalidServerURL(t *testing.T) {
	cfg := &openapi.Config{ServerURL: "http://[::1"}
	if err := cfg.Finalize(nil); err == nil {
		t.Error("expected invalid server_url error")
	}
}
