package handler

import (
	"net/http"

	"github.com/anumc/clubsite/internal/service"
)

// registerRequest is the user-registration form payload.
type registerRequest struct {
	Username         string `json:"username"`
	Password         string `json:"password"`
	PasswordConfirm  string `json:"password_confirm"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
}

// loginRequest carries the credentials for POST /auth/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// authResponse is returned by both register and login.
type authResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	IsStaff  bool   `json:"is_staff"`
}

// Register handles POST /auth/register. Account creation also creates the
// profile; failures there are logged by the service, not surfaced here.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		requestError(w, "request body is not valid JSON: "+err.Error())
		return
	}

	user, err := s.users.Register(r.Context(), service.RegisterInput{
		Username:         req.Username,
		Password:         req.Password,
		PasswordConfirm:  req.PasswordConfirm,
		FullName:         req.FullName,
		Email:            req.Email,
		EmergencyContact: req.EmergencyContact,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{
		Token:    token,
		Username: user.Username,
		IsStaff:  user.IsStaff || user.IsSuperuser,
	})
}

// Login handles POST /auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		requestError(w, "request body is not valid JSON: "+err.Error())
		return
	}

	user, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{
		Token:    token,
		Username: user.Username,
		IsStaff:  user.IsStaff || user.IsSuperuser,
	})
}
