package httpapi

import (
	"errors"
	"net/http"

	"handmade-market/internal/session"
	"handmade-market/internal/user"
	"handmade-market/internal/utils"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionView struct {
	User  *user.User `json:"user"`
	Token string     `json:"token"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := s.Session.Login(r.Context(), req.Email, req.Password)
	s.Metrics.RecordAuth("login", ok)
	if !ok {
		s.authFailed(w, err)
		return
	}
	s.writeSession(w, http.StatusOK)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in user.RegisterInput
	if err := utils.DecodeJSON(r, &in); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := s.Session.Register(r.Context(), in)
	s.Metrics.RecordAuth("register", ok)
	if !ok {
		s.authFailed(w, err)
		return
	}
	s.writeSession(w, http.StatusCreated)
}

// authFailed relays the auth service's status for refusals and answers 502
// when it could not be reached.
func (s *Server) authFailed(w http.ResponseWriter, err error) {
	var se *session.StatusError
	if errors.As(err, &se) && se.Code >= 400 && se.Code < 500 {
		utils.WriteJSONError(w, authMessage(err), se.Code)
		return
	}
	utils.WriteJSONError(w, authMessage(err), http.StatusBadGateway)
}

func (s *Server) writeSession(w http.ResponseWriter, code int) {
	u, _ := s.Session.Current()
	utils.WriteJSON(w, code, sessionView{User: u, Token: s.Session.Token()})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.Session.Logout(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	u, ok := s.Session.Current()
	if !ok {
		utils.WriteJSONError(w, "not logged in", http.StatusUnauthorized)
		return
	}
	utils.WriteJSON(w, http.StatusOK, u)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var p user.ProfileUpdate
	if err := utils.DecodeJSON(r, &p); err != nil {
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := s.Session.UpdateProfile(r.Context(), p)
	if err != nil {
		if errors.Is(err, session.ErrSessionInvalid) {
			utils.WriteJSONError(w, "please log in again", http.StatusUnauthorized)
			return
		}
		s.authFailed(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, u)
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	view, err := s.Dashboard.For(r.Context(), s.currentUser())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, view)
}
