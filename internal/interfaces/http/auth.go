package http

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"finsight/internal/domain/user"
)

const accessTokenCookie = "access_token"

type AuthHandler struct {
	users         *user.Service
	secureCookies bool
}

func NewAuthHandler(users *user.Service, secureCookies bool) *AuthHandler {
	return &AuthHandler{users: users, secureCookies: secureCookies}
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

// HandleRegister handles POST /api/auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, token, err := h.users.Register(r.Context(), user.RegisterParams{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		if err == user.ErrEmailTaken {
			respondError(w, http.StatusConflict, "Email is already registered")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.setTokenCookie(w, token)
	respondData(w, http.StatusCreated, AuthResponse{Token: token, User: u})
}

// HandleLogin handles POST /api/auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	u, token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if err == user.ErrInvalidCredentials {
			respondError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Printf("Error logging in user %s: %v", req.Email, err)
		respondInternal(w, "Failed to log in", err)
		return
	}

	h.setTokenCookie(w, token)
	respondData(w, http.StatusOK, AuthResponse{Token: token, User: u})
}

// HandleLogout handles POST /api/auth/logout by expiring the token cookie.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	respondMessage(w, http.StatusOK, "Logged out")
}

func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
