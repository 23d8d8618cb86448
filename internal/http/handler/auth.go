package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Aaryan1901/Gigyasa-backend/internal/auth"
)

type AuthHandler struct {
	Svc *auth.Service
}

var validate = validator.New()

type registerReq struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		errorJSON(w, http.StatusBadRequest, "All fields are required")
		return
	}

	u, err := h.Svc.Register(r.Context(), auth.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields):
			errorJSON(w, http.StatusBadRequest, "All fields are required")
		case errors.Is(err, auth.ErrPasswordMismatch):
			errorJSON(w, http.StatusBadRequest, "Passwords do not match")
		case errors.Is(err, auth.ErrEmailTaken):
			errorJSON(w, http.StatusBadRequest, "Email already exists")
		default:
			slog.Error("register failed", "err", err)
			errorJSON(w, http.StatusInternalServerError, "An error occurred while registering")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "User registered successfully!",
		"user":    u,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, u, err := h.Svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			errorJSON(w, http.StatusBadRequest, "User not found")
		case errors.Is(err, auth.ErrInvalidCredentials):
			errorJSON(w, http.StatusBadRequest, "Invalid credentials")
		default:
			slog.Error("login failed", "err", err)
			errorJSON(w, http.StatusInternalServerError, "An error occurred while logging in")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"name":  u.Name,
		"email": u.Email,
		"id":    u.ID,
	})
}
