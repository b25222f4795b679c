// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"net/mail"
	"strings"
)

// Post body length bounds.
const (
	PostBodyMinLen = 10
	PostBodyMaxLen = 10000
)

// FieldErrors maps form field names to validation messages. An empty map
// means the form is valid.
type FieldErrors map[string]string

// Valid reports whether the form passed validation.
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// PostForm is the decoded post creation form.
type PostForm struct {
	Title string
	Body  string
}

// DecodePostForm extracts a PostForm from an already-parsed request.
func DecodePostForm(r *http.Request) PostForm {
	return PostForm{
		Title: strings.TrimSpace(r.FormValue("title")),
		Body:  strings.TrimSpace(r.FormValue("body")),
	}
}

// Validate checks the post form and returns field-level messages.
func (f PostForm) Validate() FieldErrors {
	errs := make(FieldErrors)
	if f.Title == "" {
		errs["title"] = "Title is required."
	}
	if f.Body == "" {
		errs["body"] = "Content is required."
	} else if len(f.Body) < PostBodyMinLen || len(f.Body) > PostBodyMaxLen {
		errs["body"] = fmt.Sprintf("Post must be between %d and %d characters.", PostBodyMinLen, PostBodyMaxLen)
	}
	return errs
}

// SignupForm is the decoded signup form.
type SignupForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// DecodeSignupForm extracts a SignupForm from an already-parsed request.
func DecodeSignupForm(r *http.Request) SignupForm {
	return SignupForm{
		Name:            strings.TrimSpace(r.FormValue("name")),
		Email:           strings.TrimSpace(strings.ToLower(r.FormValue("email"))),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}
}

// Validate checks the signup form and returns field-level messages.
// Email uniqueness is checked separately, against the store.
func (f SignupForm) Validate() FieldErrors {
	errs := make(FieldErrors)
	if f.Name == "" {
		errs["name"] = "Please provide a pen name."
	}
	if f.Email == "" {
		errs["email"] = "Email is required."
	} else if _, err := mail.ParseAddress(f.Email); err != nil {
		errs["email"] = "Invalid email address."
	}
	if f.Password == "" {
		errs["password"] = "Password is required."
	} else if f.Password != f.ConfirmPassword {
		errs["password"] = "Passwords must match."
	}
	return errs
}

// LoginForm is the decoded login form.
type LoginForm struct {
	Email    string
	Password string
}

// DecodeLoginForm extracts a LoginForm from an already-parsed request.
func DecodeLoginForm(r *http.Request) LoginForm {
	return LoginForm{
		Email:    strings.TrimSpace(strings.ToLower(r.FormValue("email"))),
		Password: r.FormValue("password"),
	}
}

// Validate checks the login form and returns field-level messages.
func (f LoginForm) Validate() FieldErrors {
	errs := make(FieldErrors)
	if f.Email == "" {
		errs["email"] = "Email is required."
	}
	if f.Password == "" {
		errs["password"] = "Password is required."
	}
	return errs
}
