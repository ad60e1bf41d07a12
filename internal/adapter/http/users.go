package http

import (
	"errors"
	"net/http"

	"github.com/couchcryptid/impact-sim-service/internal/user"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	Message           string `json:"message"`
	Email             string `json:"email"`
	VerificationToken string `json:"verification_token"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	u, err := s.deps.Accounts.Signup(r.Context(), body.Email, body.Password)
	if err != nil {
		s.writeUserError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusCreated, signupResponse{
		Message:           "Account created. Verify your email to log in.",
		Email:             u.Email,
		VerificationToken: u.VerificationToken,
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	u, err := s.deps.Accounts.Verify(r.Context(), body.Token)
	if err != nil {
		s.writeUserError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"message": "Email verified.", "email": u.Email})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess, err := s.deps.Accounts.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		s.writeUserError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, sess)
}

func (s *Server) writeUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrInvalidEmail), errors.Is(err, user.ErrPasswordRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, user.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, user.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, user.ErrNotVerified):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, user.ErrInvalidToken):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, user.ErrLoginDisabled):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Error("user request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
