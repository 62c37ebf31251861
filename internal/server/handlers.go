package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/lepinkainen/steamlens/internal/apperrors"
	"github.com/lepinkainen/steamlens/internal/steam"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	AppID   int    `json:"appId,omitempty"`
	SteamID string `json:"steamId,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// respondError maps the error taxonomy to HTTP statuses: validation
// errors are 400, not-found 404, everything else 500.
func respondError(w http.ResponseWriter, err error) {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		respondJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Invalid request",
			Message: verr.Error(),
		})
		return
	}

	var nerr *apperrors.NotFoundError
	if errors.As(err, &nerr) {
		respondJSON(w, http.StatusNotFound, errorResponse{
			Error:   nerr.What + " not found",
			AppID:   nerr.AppID,
			SteamID: nerr.SteamID,
		})
		return
	}

	slog.Error("Request failed", "error", err)
	respondJSON(w, http.StatusInternalServerError, errorResponse{
		Error:   "Failed to fetch Steam data",
		Message: err.Error(),
	})
}

func (s *Server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	result, err := s.builder.Build(r.Context(), r.URL.Query().Get("steamId"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

type profileResponse struct {
	Profile    *steam.Profile    `json:"profile"`
	OwnedGames []steam.OwnedGame `json:"owned_games"`
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	steamID := r.URL.Query().Get("steamId")
	if steamID == "" {
		respondError(w, apperrors.NewValidationError("steamId", "is required"))
		return
	}

	profile, err := s.client.GetPlayerSummary(r.Context(), steamID)
	if err != nil {
		respondError(w, err)
		return
	}

	games, err := s.client.GetOwnedGames(r.Context(), steamID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profileResponse{Profile: profile, OwnedGames: games})
}

func (s *Server) handleGameDetails(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("appId")
	if raw == "" {
		respondError(w, apperrors.NewValidationError("appId", "is required"))
		return
	}
	appID, err := strconv.Atoi(raw)
	if err != nil || appID <= 0 {
		respondError(w, apperrors.NewValidationError("appId", "must be a positive integer"))
		return
	}

	details, err := s.builder.Details(r.Context(), appID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

type resolveResponse struct {
	Username string `json:"username"`
	SteamID  string `json:"steamId"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		respondError(w, apperrors.NewValidationError("username", "is required"))
		return
	}

	if steamID, ok := s.resolveCache.Get(username); ok {
		respondJSON(w, http.StatusOK, resolveResponse{Username: username, SteamID: steamID})
		return
	}

	steamID, err := s.client.ResolveSteamID(r.Context(), username)
	if err != nil {
		respondError(w, err)
		return
	}

	s.resolveCache.Add(username, steamID)
	respondJSON(w, http.StatusOK, resolveResponse{Username: username, SteamID: steamID})
}
