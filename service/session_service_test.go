package service_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	ow_errors "github.com/dev-mohitbeniwal/offerwall/errors"
	"github.com/dev-mohitbeniwal/offerwall/model"
	"github.com/dev-mohitbeniwal/offerwall/service"
	fetcher_mock "github.com/dev-mohitbeniwal/offerwall/test/mock"
	"github.com/dev-mohitbeniwal/offerwall/util"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, claims service.SessionClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return token
}

func standardToken(t *testing.T, subject string) string {
	return signToken(t, service.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: "standard",
	})
}

func TestSessionServiceOpen(t *testing.T) {
	session := service.NewSessionService(&fetcher_mock.MockPlacementFetcher{}, util.NewValidationUtil(), service.HMACKeyfunc(testSecret))

	t.Run("RoleClaim", func(t *testing.T) {
		actor, err := session.Open("Bearer " + standardToken(t, "u1"))
		require.NoError(t, err)
		assert.Equal(t, model.ActorContext{UserID: "u1", Role: model.RoleStandard, HasSession: true}, actor)
		assert.Equal(t, actor, session.Actor())
	})

	t.Run("CognitoGroups", func(t *testing.T) {
		actor, err := session.Open(signToken(t, service.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "a1"},
			CognitoGroups:    []string{"publishers", "subadmin"},
			CognitoUsername:  "ops",
		}))
		require.NoError(t, err)
		assert.Equal(t, model.RoleSubadmin, actor.Role)
		assert.Equal(t, "ops", actor.Username)
	})

	t.Run("UnknownRoleIsStandard", func(t *testing.T) {
		actor, err := session.Open(signToken(t, service.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "u2"},
			Role:             "superuser",
		}))
		require.NoError(t, err)
		assert.Equal(t, model.RoleStandard, actor.Role)
	})

	t.Run("Rejections", func(t *testing.T) {
		expired := signToken(t, service.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "u1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		})
		noSubject := signToken(t, service.SessionClaims{Role: "ADMIN"})

		for name, token := range map[string]string{
			"empty":     "",
			"garbage":   "not-a-jwt",
			"expired":   expired,
			"noSubject": noSubject,
		} {
			_, err := session.Open(token)
			assert.ErrorIs(t, err, ow_errors.ErrInvalidSessionToken, name)
		}
	})

	t.Run("UnverifiedAdminRejected", func(t *testing.T) {
		admin := service.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "intruder"},
			Role:             "ADMIN",
		}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, admin).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		wrongSecret, err := jwt.NewWithClaims(jwt.SigningMethodHS256, admin).SignedString([]byte("guessed"))
		require.NoError(t, err)
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		rsaSigned, err := jwt.NewWithClaims(jwt.SigningMethodRS256, admin).SignedString(key)
		require.NoError(t, err)

		session.Close()
		for name, token := range map[string]string{
			"algNone":     unsigned,
			"wrongSecret": wrongSecret,
			"rsaSigned":   rsaSigned,
		} {
			_, err := session.Open(token)
			assert.ErrorIs(t, err, ow_errors.ErrInvalidSessionToken, name)
			assert.False(t, session.Actor().HasSession, name)
		}
	})

	t.Run("NoVerificationKey", func(t *testing.T) {
		unconfigured := service.NewSessionService(&fetcher_mock.MockPlacementFetcher{}, util.NewValidationUtil(), nil)

		_, err := unconfigured.Open(standardToken(t, "u1"))
		assert.ErrorIs(t, err, ow_errors.ErrInvalidSessionToken)
	})

	t.Run("Close", func(t *testing.T) {
		_, err := session.Open(standardToken(t, "u1"))
		require.NoError(t, err)

		assert.True(t, session.Close())
		assert.False(t, session.Actor().HasSession)
		assert.False(t, session.Close())
	})

	t.Run("CloseIf", func(t *testing.T) {
		_, err := session.Open(standardToken(t, "u2"))
		require.NoError(t, err)

		assert.False(t, session.CloseIf("u1"))
		assert.Equal(t, "u2", session.Actor().UserID)
		assert.True(t, session.CloseIf("u2"))
		assert.False(t, session.Actor().HasSession)
	})
}

func jwksServer(t *testing.T, kid string, key *rsa.PublicKey, fetches *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		json.NewEncoder(w).Encode(service.Jwks{Keys: []service.JSONWebKey{{
			Kty: "RSA",
			Kid: kid,
			Alg: "RS256",
			Use: "sig",
			N:   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}}})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSessionServiceJWKS(t *testing.T) {
	issuerKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	var fetches atomic.Int32
	server := jwksServer(t, "k1", &issuerKey.PublicKey, &fetches)
	keySet := service.NewJWKSKeySet(server.URL, time.Second)
	session := service.NewSessionService(&fetcher_mock.MockPlacementFetcher{}, util.NewValidationUtil(), keySet.Keyfunc)

	sign := func(kid string, key *rsa.PrivateKey, claims service.SessionClaims) string {
		token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
		token.Header["kid"] = kid
		signed, err := token.SignedString(key)
		require.NoError(t, err)
		return signed
	}
	admin := service.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "a1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		Role:             "ADMIN",
	}

	t.Run("IssuerSigned", func(t *testing.T) {
		actor, err := session.Open(sign("k1", issuerKey, admin))
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, actor.Role)

		_, err = session.Open(sign("k1", issuerKey, admin))
		require.NoError(t, err)
		assert.Equal(t, int32(1), fetches.Load(), "keys are cached between logins")
	})

	t.Run("ForeignKeyRejected", func(t *testing.T) {
		_, err := session.Open(sign("k1", otherKey, admin))
		assert.ErrorIs(t, err, ow_errors.ErrInvalidSessionToken)
	})

	t.Run("UnknownKidRejected", func(t *testing.T) {
		_, err := session.Open(sign("k2", issuerKey, admin))
		assert.ErrorIs(t, err, ow_errors.ErrInvalidSessionToken)
	})

	t.Run("HMACRejected", func(t *testing.T) {
		_, err := session.Open(signToken(t, admin))
		assert.ErrorIs(t, err, ow_errors.ErrInvalidSessionToken)
	})
}

func TestSessionServiceFetchPlacements(t *testing.T) {
	ctx := context.Background()
	fetcher := &fetcher_mock.MockPlacementFetcher{}
	session := service.NewSessionService(fetcher, util.NewValidationUtil(), service.HMACKeyfunc(testSecret))

	_, _, err := session.FetchPlacements(ctx)
	assert.ErrorIs(t, err, ow_errors.ErrAuthorizationFailure)
	assert.ErrorIs(t, err, ow_errors.ErrNoSession)

	token := standardToken(t, "u1")
	actor, err := session.Open(token)
	require.NoError(t, err)

	fetcher.On("FetchPlacements", mock.Anything, actor, token).
		Return(actor, []model.PlacementRecord{{ID: "p1", ApprovalState: model.ApprovalStateApproved}}, nil)

	got, records, err := session.FetchPlacements(ctx)
	require.NoError(t, err)
	assert.Equal(t, actor, got)
	assert.Len(t, records, 1)
}
