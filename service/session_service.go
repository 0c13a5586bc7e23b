// service/session_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	ow_errors "github.com/dev-mohitbeniwal/offerwall/errors"
	logger "github.com/dev-mohitbeniwal/offerwall/logging"
	"github.com/dev-mohitbeniwal/offerwall/model"
	"github.com/dev-mohitbeniwal/offerwall/util"
)

// PlacementFetcher is the backend call behind the status source. HTTPSource
// and PlacementRetrievalDAO implement it.
type PlacementFetcher interface {
	FetchPlacements(ctx context.Context, actor model.ActorContext, token string) (model.ActorContext, []model.PlacementRecord, error)
}

// SessionClaims are the token claims the gateway reads. The signature is
// checked before any claim is trusted: the role decides whether the backend is
// consulted at all.
type SessionClaims struct {
	jwt.RegisteredClaims
	Role            string   `json:"role,omitempty"`
	CognitoGroups   []string `json:"cognito:groups,omitempty"`
	CognitoUsername string   `json:"cognito:username,omitempty"`
}

// SessionService owns the single authenticated session of the gateway and
// serves as the approval cache's status source.
type SessionService struct {
	fetcher        PlacementFetcher
	validationUtil *util.ValidationUtil
	parser         *jwt.Parser
	keyfunc        jwt.Keyfunc

	mu    sync.RWMutex
	token string
	actor model.ActorContext
}

var sessionSigningMethods = []string{"HS256", "HS384", "HS512", "RS256", "RS384", "RS512"}

// NewSessionService creates the session store. keyfunc supplies the
// verification key for a token; see HMACKeyfunc and JWKSKeySet.Keyfunc.
func NewSessionService(fetcher PlacementFetcher, validationUtil *util.ValidationUtil, keyfunc jwt.Keyfunc) *SessionService {
	return &SessionService{
		fetcher:        fetcher,
		validationUtil: validationUtil,
		parser:         jwt.NewParser(jwt.WithValidMethods(sessionSigningMethods)),
		keyfunc:        keyfunc,
	}
}

// Open replaces the current session with the one carried by token.
func (s *SessionService) Open(token string) (model.ActorContext, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return model.ActorContext{}, fmt.Errorf("%w: empty token", ow_errors.ErrInvalidSessionToken)
	}

	if s.keyfunc == nil {
		return model.ActorContext{}, fmt.Errorf("%w: no verification key configured", ow_errors.ErrInvalidSessionToken)
	}

	claims := &SessionClaims{}
	if _, err := s.parser.ParseWithClaims(token, claims, s.keyfunc); err != nil {
		logger.Warn("Session token failed verification", zap.Error(err))
		return model.ActorContext{}, fmt.Errorf("%w: %v", ow_errors.ErrInvalidSessionToken, err)
	}

	actor := model.ActorContext{
		UserID:     claims.Subject,
		Username:   claims.CognitoUsername,
		Role:       roleFromClaims(claims),
		HasSession: true,
	}
	if err := s.validationUtil.ValidateActor(actor); err != nil {
		return model.ActorContext{}, err
	}

	s.mu.Lock()
	s.token = token
	s.actor = actor
	s.mu.Unlock()

	logger.Info("Session opened", zap.String("userID", actor.UserID), zap.String("role", string(actor.Role)))
	return actor, nil
}

// Close drops the session. It reports whether one was open.
func (s *SessionService) Close() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	had := s.actor.HasSession
	s.token = ""
	s.actor = model.ActorContext{}
	return had
}

// CloseIf drops the session only while it still belongs to userID.
func (s *SessionService) CloseIf(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.actor.HasSession || s.actor.UserID != userID {
		return false
	}
	s.token = ""
	s.actor = model.ActorContext{}
	return true
}

// Actor returns the current actor without I/O.
func (s *SessionService) Actor() model.ActorContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.actor
}

func (s *SessionService) FetchPlacements(ctx context.Context) (model.ActorContext, []model.PlacementRecord, error) {
	s.mu.RLock()
	actor, token := s.actor, s.token
	s.mu.RUnlock()

	if !actor.HasSession {
		return actor, nil, fmt.Errorf("%w: %w", ow_errors.ErrAuthorizationFailure, ow_errors.ErrNoSession)
	}
	return s.fetcher.FetchPlacements(ctx, actor, token)
}

func roleFromClaims(claims *SessionClaims) model.Role {
	if claims.Role != "" {
		return model.ParseRole(claims.Role)
	}
	role := model.RoleStandard
	for _, group := range claims.CognitoGroups {
		switch model.ParseRole(group) {
		case model.RoleAdmin:
			return model.RoleAdmin
		case model.RoleSubadmin:
			role = model.RoleSubadmin
		}
	}
	return role
}
