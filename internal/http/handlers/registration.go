package handlers

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-hub/internal/identity"
	"github.com/mauv0809/league-hub/internal/processor"
	"github.com/mauv0809/league-hub/internal/registration"
)

// RegistrationResponse is returned after a successful registration.
type RegistrationResponse struct {
	Registration   *registration.Registration `json:"registration"`
	Session        *identity.Session          `json:"session,omitempty"`
	AccountCreated bool                       `json:"account_created"`
	Redirect       string                     `json:"redirect"`
	// Notice is shown to the user; it carries the generated password when an account
	// was created without one.
	Notice string `json:"notice"`
}

func RegisterHandler(p *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req processor.RegistrationRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if s, ok := sessionFrom(r); ok {
			req.Session = s
		}

		res, err := p.Register(r.Context(), req)
		if err != nil {
			WriteError(w, err)
			return
		}
		log.Info("Registration accepted", "registrationID", res.Registration.ID, "accountCreated", res.AccountCreated)

		writeJSON(w, http.StatusCreated, RegistrationResponse{
			Registration:   res.Registration,
			Session:        res.Session,
			AccountCreated: res.AccountCreated,
			Redirect:       res.Redirect,
			Notice:         registrationNotice(res),
		})
	}
}

func registrationNotice(res *processor.RegistrationResult) string {
	if res.GeneratedPassword != "" {
		return fmt.Sprintf("¡Registro completado! Tu cuenta ha sido creada. Contraseña temporal: %s", res.GeneratedPassword)
	}
	return "¡Registro completado! Recibirás un email de confirmación."
}
