package module_test

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/JaimeStill/superclaims/pkg/module"
)

func TestValidatePrefix(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		wantErr bool
	}{
		{"api", "/api", false},
		{"claims", "/claims", false},
		{"empty", "", true},
		{"root", "/", true},
		{"no leading slash", "api", true},
		{"nested path", "/api/v1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := module.ValidatePrefix(tt.prefix)
			if (err != nil) != tt.wantErr {
				t.Errorf("err: got %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewInvalidPrefixPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for invalid prefix")
		}
	}()
	module.New("/api/v1", http.NewServeMux())
}

func TestServePrefixStripping(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"sub path", "/api/claims", "/claims"},
		{"root", "/api", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var received string
			mux := http.NewServeMux()
			mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
				received = r.URL.Path
			})

			m := module.New("/api", mux)
			m.Serve(httptest.NewRecorder(), httptest.NewRequest("POST", tt.path, nil))

			if received != tt.want {
				t.Errorf("inner path: got %s, want %s", received, tt.want)
			}
		})
	}
}

func TestModuleMiddleware(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	m := module.New("/api", mux)

	var calls []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls = append(calls, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	m.Use(tag("recover"), tag("logger"))

	m.Serve(httptest.NewRecorder(), httptest.NewRequest("GET", "/api", nil))

	if !slices.Equal(calls, []string{"recover", "logger"}) {
		t.Errorf("middleware calls: got %v", calls)
	}
}

func TestRouter(t *testing.T) {
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("POST /claims", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("api"))
	})

	router := module.NewRouter()
	router.Mount(module.New("/api", apiMux))
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode int
		wantBody string
	}{
		{"module", "POST", "/api/claims", http.StatusOK, "api"},
		{"trailing slash", "POST", "/api/claims/", http.StatusOK, "api"},
		{"native", "GET", "/healthz", http.StatusOK, "ok"},
		{"unmatched", "GET", "/other", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantCode {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body: got %s, want %s", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRouterPrefixes(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/claims", http.NewServeMux()))
	router.Mount(module.New("/api", http.NewServeMux()))

	if got := router.Prefixes(); !slices.Equal(got, []string{"/api", "/claims"}) {
		t.Errorf("prefixes: got %v", got)
	}
}
