// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quangdm/revio/internal/platform/middleware"
)

// fakeConfig drives the CORS middleware without a full config.Config.
type fakeConfig struct {
	development  bool
	extraOrigins []string
}

func (cfg *fakeConfig) IsDevelopment() bool           { return cfg.development }
func (cfg *fakeConfig) AllowedExtraOrigins() []string { return cfg.extraOrigins }

func corsResponse(cfg *fakeConfig, origin string) *httptest.ResponseRecorder {
	handler := middleware.CORS(cfg)(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodGet, "/api/v1/titles", nil)
	if origin != "" {
		request.Header.Set("Origin", origin)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestCORS_ProductionAllowList verifies the production origin policy: the
first-party domain passes by suffix, configured extra origins pass by exact
match, and everything else gets no CORS headers.
*/
func TestCORS_ProductionAllowList(t *testing.T) {
	cfg := &fakeConfig{
		development:  false,
		extraOrigins: []string{"https://staging.example.com"},
	}

	tests := []struct {
		name    string
		origin  string
		allowed bool
	}{
		{"first_party", "https://www.revio.app", true},
		{"extra_origin", "https://staging.example.com", true},
		{"extra_origin_subdomain", "https://evil.staging.example.com", false},
		{"unknown_origin", "https://attacker.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := corsResponse(cfg, tt.origin)

			allowHeader := recorder.Header().Get("Access-Control-Allow-Origin")
			if tt.allowed {
				assert.Equal(t, tt.origin, allowHeader)
			} else {
				assert.Empty(t, allowHeader)
			}
		})
	}
}

/*
TestCORS_Development verifies that development mode reflects any origin.
*/
func TestCORS_Development(t *testing.T) {
	cfg := &fakeConfig{development: true}

	recorder := corsResponse(cfg, "http://localhost:3000")
	assert.Equal(t, "http://localhost:3000", recorder.Header().Get("Access-Control-Allow-Origin"))
}
