// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func noopHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSecurityHeadersProduction(t *testing.T) {
	mw := SecurityHeaders(DefaultSecurityHeadersConfig(false))
	rec := httptest.NewRecorder()

	mw(noopHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	h := rec.Header()
	assert.Contains(t, h.Get("Content-Security-Policy"), "default-src 'self'")
	assert.Contains(t, h.Get("Strict-Transport-Security"), "max-age=31536000")
	assert.Contains(t, h.Get("Strict-Transport-Security"), "includeSubDomains")
	assert.Equal(t, "SAMEORIGIN", h.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", h.Get("Referrer-Policy"))
}

func TestSecurityHeadersDevelopmentSkipsHSTS(t *testing.T) {
	mw := SecurityHeaders(DefaultSecurityHeadersConfig(true))
	rec := httptest.NewRecorder()

	mw(noopHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "'unsafe-eval'")
}

func TestBuildCSPOrdersDirectives(t *testing.T) {
	csp := buildCSP(map[string]string{
		"script-src":  "'self'",
		"default-src": "'none'",
	})
	assert.Equal(t, "default-src 'none'; script-src 'self'", csp)
}
