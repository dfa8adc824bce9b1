package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/saucerburger/pos-service/internal/auth"
)

// AuthHandler exposes the login gate.
type AuthHandler struct {
	gate *auth.Gate
}

func NewAuthHandler(gate *auth.Gate) *AuthHandler {
	return &AuthHandler{gate: gate}
}

type loginRequest struct {
	Username string `json:"username"`
}

type loginResponse struct {
	User  string `json:"user"`
	Token string `json:"token"`
}

// Login accepts an allow-listed username and returns a session token. Any
// other username gets the same generic rejection.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.gate.Login(req.Username)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		log.Error().Err(err).Msg("handler: login failed")
		respondWithError(w, http.StatusInternalServerError, "login failed")
		return
	}

	log.Info().Str("user", user).Msg("user logged in")
	respondWithJSON(w, http.StatusOK, loginResponse{User: user, Token: token})
}
