package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/studiohq/portal/pkg/logger"
	"github.com/studiohq/portal/pkg/push"
	"github.com/studiohq/portal/pkg/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type mobileLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Role      string    `json:"role"`
	UserID    string    `json:"userId"`
}

type pushTokenRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

// authenticate resolves credentials to an account. Unknown email and wrong
// password are indistinguishable to the caller; bcrypt runs against a
// throwaway hash on unknown emails so both paths cost the same.
func (s *Service) authenticate(r *http.Request, req loginRequest) (*Account, error) {
	account, err := s.accounts.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrAccountNotFound
	}

	return account, nil
}

// dummyHash keeps the unknown-email path as slow as a real compare.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, s.msg(r, msgInvalidCredentials))
		return
	}

	account, err := s.authenticate(r, req)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			respondError(w, http.StatusUnauthorized, s.msg(r, msgInvalidCredentials))
			return
		}
		s.serverError(w, r, err)
		return
	}

	if _, err := s.sessions.Create(r.Context(), w, account.ID, account.Role); err != nil {
		s.serverError(w, r, err)
		return
	}

	s.log.InfoContext(r.Context(), "web login",
		logger.Component("auth"),
		logger.UserID(account.ID.String()),
	)

	role := string(account.Role)
	respondJSON(w, http.StatusOK, sessionResponse{
		Authenticated: true,
		Role:          &role,
		UserID:        account.ID.String(),
	})
}

func (s *Service) handleMobileLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, s.msg(r, msgInvalidCredentials))
		return
	}

	account, err := s.authenticate(r, req)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			respondError(w, http.StatusUnauthorized, s.msg(r, msgInvalidCredentials))
			return
		}
		s.serverError(w, r, err)
		return
	}

	sess, err := s.bearer.Create(r.Context(), account.ID, account.Role)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	s.log.InfoContext(r.Context(), "mobile login",
		logger.Component("auth"),
		logger.UserID(account.ID.String()),
	)

	respondJSON(w, http.StatusOK, mobileLoginResponse{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		Role:      string(account.Role),
		UserID:    account.ID.String(),
	})
}

func (s *Service) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Destroy(r.Context(), w, r); err != nil {
		s.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleMobileLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.bearer.Destroy(r.Context(), r); err != nil {
		s.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleSession(w http.ResponseWriter, r *http.Request) {
	ident, _ := session.IdentityFromContext(r.Context())
	if !ident.Authenticated {
		respondJSON(w, http.StatusOK, sessionResponse{Authenticated: false, Role: nil})
		return
	}

	role := string(ident.Role)
	respondJSON(w, http.StatusOK, sessionResponse{
		Authenticated: true,
		Role:          &role,
		UserID:        ident.UserID.String(),
	})
}

func (s *Service) handleCSRF(w http.ResponseWriter, r *http.Request) {
	tok, err := s.guard.Issue(r.Context(), w, r)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"token": tok})
}

func (s *Service) handlePushToken(w http.ResponseWriter, r *http.Request) {
	ident, _ := session.IdentityFromContext(r.Context())

	var req pushTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.registry.Register(r.Context(), push.Registration{
		UserID:   ident.UserID,
		Role:     ident.Role,
		Token:    req.Token,
		Platform: req.Platform,
	})
	if err != nil {
		if errors.Is(err, push.ErrNotConfigured) {
			respondError(w, http.StatusServiceUnavailable, s.msg(r, msgPushUnavailable))
			return
		}
		s.serverError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleAdminOverview is the role-gated sample surface; it exists to prove
// the authorization chain end to end.
func (s *Service) handleAdminOverview(w http.ResponseWriter, r *http.Request) {
	ident, _ := session.IdentityFromContext(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"userId": ident.UserID.String(),
	})
}
