package rest

import (
	"errors"
	"net/http"

	"recipebox/internal/identity"
	"recipebox/internal/storage/types"
)

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAndValidate[registerRequest](r)
	if err != nil {
		writeMessage(w, "Username and password are required")
		return
	}

	if err := h.auth.Register(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, types.ErrUserExists) {
			writeMessage(w, "User already exists")
			return
		}
		writeServerError(w, r, err)
		return
	}

	writeMessage(w, "User registered successfully!")
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAndValidate[loginRequest](r)
	if err != nil {
		writeMessage(w, "Invalid credentials")
		return
	}

	if err := h.auth.Login(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			writeMessage(w, "Invalid credentials")
			return
		}
		writeServerError(w, r, err)
		return
	}

	writeMessage(w, "Login successful!")
}
