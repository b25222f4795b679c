// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostFormValidate(t *testing.T) {
	longBody := strings.Repeat("a", PostBodyMaxLen+1)

	tests := []struct {
		name      string
		form      PostForm
		wantField string
	}{
		{"valid", PostForm{Title: "Hello", Body: "This is long enough."}, ""},
		{"missing title", PostForm{Body: "This is long enough."}, "title"},
		{"missing body", PostForm{Title: "Hello"}, "body"},
		{"body too short", PostForm{Title: "Hello", Body: "short"}, "body"},
		{"body too long", PostForm{Title: "Hello", Body: longBody}, "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.form.Validate()
			if tt.wantField == "" {
				assert.True(t, errs.Valid())
			} else {
				assert.False(t, errs.Valid())
				assert.Contains(t, errs, tt.wantField)
			}
		})
	}
}

func TestDecodePostFormTrimsWhitespace(t *testing.T) {
	form := url.Values{
		"title": {"  My Title  "},
		"body":  {"  Body text that is long enough.  "},
	}
	req := httptest.NewRequest("POST", "/blog/create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.NoError(t, req.ParseForm())

	decoded := DecodePostForm(req)
	assert.Equal(t, "My Title", decoded.Title)
	assert.Equal(t, "Body text that is long enough.", decoded.Body)
}

func TestSignupFormValidate(t *testing.T) {
	valid := SignupForm{
		Name:            "Joe",
		Email:           "joe@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
	assert.True(t, valid.Validate().Valid())

	tests := []struct {
		name      string
		mutate    func(f *SignupForm)
		wantField string
	}{
		{"missing pen name", func(f *SignupForm) { f.Name = "" }, "name"},
		{"missing email", func(f *SignupForm) { f.Email = "" }, "email"},
		{"malformed email", func(f *SignupForm) { f.Email = "not-an-email" }, "email"},
		{"missing password", func(f *SignupForm) { f.Password = "" }, "password"},
		{"password mismatch", func(f *SignupForm) { f.ConfirmPassword = "different" }, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)
			errs := form.Validate()
			assert.False(t, errs.Valid())
			assert.Contains(t, errs, tt.wantField)
		})
	}
}

func TestSignupFormMessages(t *testing.T) {
	errs := SignupForm{Email: "joe@example.com", Password: "a", ConfirmPassword: "b"}.Validate()
	assert.Equal(t, "Please provide a pen name.", errs["name"])
	assert.Equal(t, "Passwords must match.", errs["password"])
}

func TestDecodeSignupFormNormalizesEmail(t *testing.T) {
	form := url.Values{
		"name":             {"Joe"},
		"email":            {"  Joe@Example.COM  "},
		"password":         {"secret123"},
		"confirm_password": {"secret123"},
	}
	req := httptest.NewRequest("POST", "/auth/signup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.NoError(t, req.ParseForm())

	decoded := DecodeSignupForm(req)
	assert.Equal(t, "joe@example.com", decoded.Email)
}

func TestLoginFormValidate(t *testing.T) {
	assert.True(t, LoginForm{Email: "joe@example.com", Password: "x"}.Validate().Valid())

	errs := LoginForm{}.Validate()
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}
