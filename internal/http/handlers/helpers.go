package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-hub/internal/identity"
	"github.com/mauv0809/league-hub/internal/league"
	"github.com/mauv0809/league-hub/internal/processor"
	"github.com/mauv0809/league-hub/internal/registration"
)

const maxBodyBytes = 1 << 20

var errInvalidDate = errors.New("dates must be YYYY-MM-DD or RFC3339")

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	// Action tells the client what the user has to do next, if anything.
	Action string `json:"action,omitempty"`
}

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// decodeJSON reads a JSON request body into v, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		log.FromContext(r.Context()).Debug("Failed to decode request body", "error", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}

// WriteError maps err onto an HTTP status and writes it. Persistence failures are logged
// and answered with a generic message.
func WriteError(w http.ResponseWriter, err error) {
	status, resp := errorResponse(err)
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
	} else {
		log.Debug("Request rejected", "status", status, "error", err)
	}
	writeJSON(w, status, resp)
}

func errorResponse(err error) (int, ErrorResponse) {
	var incomplete *registration.RosterIncompleteError
	switch {
	case errors.Is(err, processor.ErrValidation),
		errors.Is(err, registration.ErrPlayerCountOutOfRange),
		errors.Is(err, registration.ErrPlayerNameRequired),
		errors.Is(err, registration.ErrInvalidPaymentStatus),
		errors.Is(err, identity.ErrInvalidRole),
		errors.Is(err, league.ErrNameRequired),
		errors.Is(err, league.ErrLeagueRequired),
		errors.Is(err, league.ErrInvalidDateRange),
		errors.Is(err, league.ErrInvalidRecord),
		errors.Is(err, league.ErrInvalidStatus),
		errors.Is(err, league.ErrSameTeam),
		errors.Is(err, league.ErrTeamsRequired),
		errors.Is(err, league.ErrMatchDateRequired),
		errors.Is(err, league.ErrInvalidScore):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error()}

	case errors.Is(err, identity.ErrEmailNotConfirmed):
		return http.StatusUnauthorized, ErrorResponse{
			Error:  "Confirma tu email antes de continuar con el registro.",
			Action: "confirm_email",
		}
	case errors.Is(err, identity.ErrSignInFailed), errors.Is(err, identity.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrorResponse{
			Error:  "Este email ya tiene una cuenta. Inicia sesión para continuar.",
			Action: "sign_in",
		}
	case errors.Is(err, identity.ErrInvalidSession):
		return http.StatusUnauthorized, ErrorResponse{Error: "session required", Action: "sign_in"}

	case errors.Is(err, processor.ErrForbidden):
		return http.StatusForbidden, ErrorResponse{Error: err.Error()}

	case errors.Is(err, registration.ErrRegistrationNotFound),
		errors.Is(err, registration.ErrPlayerNotFound),
		errors.Is(err, processor.ErrNoRegistration),
		errors.Is(err, identity.ErrProfileNotFound),
		errors.Is(err, league.ErrLeagueNotFound),
		errors.Is(err, league.ErrTeamNotFound),
		errors.Is(err, league.ErrMatchNotFound):
		return http.StatusNotFound, ErrorResponse{Error: err.Error()}

	case errors.Is(err, registration.ErrRosterFull),
		errors.Is(err, registration.ErrPaymentNotConfirmed),
		errors.Is(err, registration.ErrAlreadyApproved),
		errors.Is(err, league.ErrLeagueInUse),
		errors.Is(err, league.ErrTeamNameTaken),
		errors.Is(err, registration.ErrTeamNameTaken),
		errors.As(err, &incomplete):
		return http.StatusConflict, ErrorResponse{Error: err.Error()}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: "Something went wrong, please try again."}
}

// sessionFrom returns the verified session of r. Routes behind the session middleware
// always carry one.
func sessionFrom(r *http.Request) (*identity.Session, bool) {
	return identity.SessionFromContext(r.Context())
}
