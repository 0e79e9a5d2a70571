package web

import (
	"errors"
	"net/http"
	"strings"

	"newsroom/internal/domain"
	"newsroom/internal/metrics"
)

const msgBadCredentials = "Identifiants incorrects. Veuillez réessayer."

type loginView struct {
	Email string
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	p := s.withFlashes(w, r, s.newPage(r, "Connexion Admin", loginView{}))
	s.render(w, r, http.StatusOK, "login.html", p)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	p := s.newPage(r, "Connexion Admin", loginView{Email: email})

	session, err := s.auth.SignIn(r.Context(), email, password)
	metrics.LoginAttemptsTotal.WithLabelValues(metrics.Status(err)).Inc()
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			s.logger.Error("sign in failed", "error", err)
		} else {
			s.logger.Warn("rejected sign in", "email", email)
		}
		p.Errors = append(p.Errors, msgBadCredentials)
		s.render(w, r, http.StatusUnauthorized, "login.html", p)
		return
	}

	if err := s.sessions.SetToken(w, r, session.Token, session.ExpiresAt); err != nil {
		s.logger.Error("failed to save session cookie", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	s.logger.Info("editor signed in", "user_id", session.UserID)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := s.sessions.Token(r); token != "" {
		if err := s.auth.SignOut(r.Context(), token); err != nil {
			s.logger.Warn("sign out failed", "error", err)
		}
	}
	_ = s.sessions.ClearToken(w, r)
	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}
