package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-hub/internal/league"
	"github.com/mauv0809/league-hub/internal/processor"
	"github.com/mauv0809/league-hub/internal/registration"
)

// PaymentStatusRequest is the body of a payment status change.
type PaymentStatusRequest struct {
	PaymentStatus registration.PaymentStatus `json:"payment_status"`
}

// Leagues

func CreateLeagueHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var l league.League
		if !decodeJSON(w, r, &l) {
			return
		}
		if err := store.CreateLeague(r.Context(), &l); err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, l)
	}
}

func UpdateLeagueHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var l league.League
		if !decodeJSON(w, r, &l) {
			return
		}
		l.ID = r.PathValue("id")
		if err := store.UpdateLeague(r.Context(), &l); err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, l)
	}
}

func DeleteLeagueHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteLeague(r.Context(), r.PathValue("id")); err != nil {
			WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// Teams

func CreateTeamHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var t league.Team
		if !decodeJSON(w, r, &t) {
			return
		}
		// Only approval links a team to a registration.
		t.RegistrationID = nil
		if err := store.CreateTeam(r.Context(), &t); err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, t)
	}
}

func UpdateTeamHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var t league.Team
		if !decodeJSON(w, r, &t) {
			return
		}
		t.ID = r.PathValue("id")
		if err := store.UpdateTeam(r.Context(), &t); err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

func DeleteTeamHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteTeam(r.Context(), r.PathValue("id")); err != nil {
			WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// Matches

func CreateMatchHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var m league.Match
		if !decodeJSON(w, r, &m) {
			return
		}
		if err := store.CreateMatch(r.Context(), &m); err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)
	}
}

func UpdateMatchHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var m league.Match
		if !decodeJSON(w, r, &m) {
			return
		}
		m.ID = r.PathValue("id")
		if err := store.UpdateMatch(r.Context(), &m); err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func DeleteMatchHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteMatch(r.Context(), r.PathValue("id")); err != nil {
			WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// Registrations

func ListRegistrationsHandler(store registration.RegistrationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		registrations, err := store.List(r.Context())
		if err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, registrations)
	}
}

func PaymentStatusHandler(p *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PaymentStatusRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		id := r.PathValue("id")
		if err := p.SetPaymentStatus(r.Context(), id, req.PaymentStatus); err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"id": id, "payment_status": string(req.PaymentStatus)})
	}
}

func ApproveHandler(p *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		team, err := p.Approve(r.Context(), id)
		if err != nil {
			WriteError(w, err)
			return
		}
		log.Info("Registration approved", "registrationID", id, "teamID", team.ID)
		writeJSON(w, http.StatusCreated, team)
	}
}
