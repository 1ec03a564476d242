package handlers

import (
	"net/http"
	"strings"

	"github.com/mauv0809/league-hub/internal/identity"
	"github.com/mauv0809/league-hub/internal/processor"
	"github.com/mauv0809/league-hub/internal/registration"
)

// ProfileRequest is the body of a profile update.
type ProfileRequest struct {
	FullName string `json:"full_name"`
}

func DashboardHandler(p *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessionFrom(r)
		if !ok {
			WriteError(w, identity.ErrInvalidSession)
			return
		}
		d, err := p.Dashboard(r.Context(), s.UserID)
		if err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, d)
	}
}

func AddPlayerHandler(p *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessionFrom(r)
		if !ok {
			WriteError(w, identity.ErrInvalidSession)
			return
		}
		var in registration.PlayerInput
		if !decodeJSON(w, r, &in) {
			return
		}
		player, err := p.AddPlayer(r.Context(), s.UserID, in)
		if err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, player)
	}
}

func RemovePlayerHandler(p *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessionFrom(r)
		if !ok {
			WriteError(w, identity.ErrInvalidSession)
			return
		}
		if err := p.RemovePlayer(r.Context(), s.UserID, r.PathValue("id")); err != nil {
			WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func TeamMatchesHandler(p *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessionFrom(r)
		if !ok {
			WriteError(w, identity.ErrInvalidSession)
			return
		}
		out, err := p.TeamMatches(r.Context(), s.UserID)
		if err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func GetProfileHandler(profiles identity.ProfileStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessionFrom(r)
		if !ok {
			WriteError(w, identity.ErrInvalidSession)
			return
		}
		profile, err := profiles.GetProfile(r.Context(), s.UserID)
		if err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}

func UpdateProfileHandler(p *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessionFrom(r)
		if !ok {
			WriteError(w, identity.ErrInvalidSession)
			return
		}
		var req ProfileRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		name := strings.TrimSpace(req.FullName)
		if name == "" {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "full name is required"})
			return
		}
		profile, err := p.UpdateProfile(r.Context(), s.UserID, name)
		if err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}
