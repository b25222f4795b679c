// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/oblog-go/internal/auth"
	"github.com/olegiv/oblog-go/internal/middleware"
	"github.com/olegiv/oblog-go/internal/model"
	"github.com/olegiv/oblog-go/internal/render"
	"github.com/olegiv/oblog-go/internal/store"
)

// AuthHandler serves login, signup, logout and the account page.
type AuthHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *AuthHandler {
	return &AuthHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
	}
}

// LoginForm renders the login page. Logged-in users are sent home.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r) != nil {
		http.Redirect(w, r, RouteRoot, http.StatusSeeOther)
		return
	}
	h.renderer.Render(w, r, "auth/login", map[string]any{
		"Title": "Log In",
		"Form":  LoginForm{},
		"Next":  safeNext(r, ""),
	})
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteLogin) {
		return
	}

	form := DecodeLoginForm(r)
	if errs := form.Validate(); !errs.Valid() {
		h.renderLoginError(w, r, form, errs)
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), form.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Warn("login failed: unknown email",
				"category", model.EventCategoryAuth, "email", form.Email)
			h.renderLoginError(w, r, form, FieldErrors{"form": "Invalid email or password."})
			return
		}
		logAndInternalError(w, "failed to look up user", "error", err)
		return
	}

	ok, err := auth.CheckPassword(form.Password, user.PasswordHash)
	if err != nil || !ok {
		slog.Warn("login failed: wrong password",
			"category", model.EventCategoryAuth, "user_id", user.ID)
		h.renderLoginError(w, r, form, FieldErrors{"form": "Invalid email or password."})
		return
	}

	if err := h.startSession(r, user.ID); err != nil {
		logAndInternalError(w, "failed to start session", "error", err, "user_id", user.ID)
		return
	}

	slog.Info("user logged in", "category", model.EventCategoryAuth, "user_id", user.ID)
	flashSuccess(w, r, h.renderer, safeNext(r, RouteRoot), "Welcome back, "+user.Name+"!")
}

// SignupForm renders the signup page. Logged-in users are sent home.
func (h *AuthHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r) != nil {
		http.Redirect(w, r, RouteRoot, http.StatusSeeOther)
		return
	}
	h.renderer.Render(w, r, "auth/signup", map[string]any{
		"Title": "Sign Up",
		"Form":  SignupForm{},
	})
}

// Signup handles the signup form submission. A new account is logged in
// immediately.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteSignup) {
		return
	}

	form := DecodeSignupForm(r)
	errs := form.Validate()
	if errs.Valid() {
		if _, err := h.queries.GetUserByEmail(r.Context(), form.Email); err == nil {
			errs["email"] = "An account with that email already exists."
		} else if !errors.Is(err, sql.ErrNoRows) {
			logAndInternalError(w, "failed to check email uniqueness", "error", err)
			return
		}
	}
	if !errs.Valid() {
		h.renderer.Render(w, r, "auth/signup", map[string]any{
			"Title":  "Sign Up",
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		logAndInternalError(w, "failed to hash password", "error", err)
		return
	}

	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Email:        form.Email,
		PasswordHash: hash,
		Name:         form.Name,
	})
	if err != nil {
		logAndInternalError(w, "failed to create user", "error", err, "email", form.Email)
		return
	}

	if err := h.startSession(r, user.ID); err != nil {
		logAndInternalError(w, "failed to start session", "error", err, "user_id", user.ID)
		return
	}

	slog.Info("user signed up", "category", model.EventCategoryAuth, "user_id", user.ID)
	flashSuccess(w, r, h.renderer, RouteRoot, "Welcome, "+user.Name+"! Your account is ready.")
}

// Logout destroys the session and returns to the blog index.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		logAndInternalError(w, "failed to destroy session", "error", err)
		return
	}
	if user != nil {
		slog.Info("user logged out", "category", model.EventCategoryAuth, "user_id", user.ID)
	}
	flashSuccess(w, r, h.renderer, RouteRoot, "You have been logged out.")
}

// Account renders the signed-in user's account page.
func (h *AuthHandler) Account(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		http.Redirect(w, r, middleware.RouteLogin, http.StatusSeeOther)
		return
	}

	postCount, err := h.queries.CountPosts(r.Context(), store.PostFilter{AuthorID: user.ID})
	if err != nil {
		logAndInternalError(w, "failed to count posts", "error", err, "user_id", user.ID)
		return
	}

	h.renderer.Render(w, r, "auth/account", map[string]any{
		"Title":     "Account",
		"User":      user,
		"PostCount": postCount,
	})
}

// startSession rotates the session token and binds it to the user.
// Token renewal on privilege change prevents session fixation.
func (h *AuthHandler) startSession(r *http.Request, userID int64) error {
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		return err
	}
	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserID, userID)
	return nil
}

// renderLoginError re-renders the login form with messages.
func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, form LoginForm, errs FieldErrors) {
	h.renderer.Render(w, r, "auth/login", map[string]any{
		"Title":  "Log In",
		"Form":   form,
		"Errors": errs,
		"Next":   safeNext(r, ""),
	})
}
