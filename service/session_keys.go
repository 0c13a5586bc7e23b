// service/session_keys.go
package service

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/offerwall/logging"
)

// HMACKeyfunc verifies tokens signed with a shared secret.
func HMACKeyfunc(secret []byte) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}
}

type JSONWebKey struct {
	Kty string `json:"kty"`
	E   string `json:"e"`
	Use string `json:"use"`
	Kid string `json:"kid"`
	Alg string `json:"alg"`
	N   string `json:"n"`
}

type Jwks struct {
	Keys []JSONWebKey `json:"keys"`
}

// JWKSKeySet resolves RSA verification keys from a JWKS endpoint. Keys are
// fetched lazily and refetched when a token names an unknown kid.
type JWKSKeySet struct {
	url    string
	client *http.Client

	mu   sync.Mutex
	keys map[string]*rsa.PublicKey
}

func NewJWKSKeySet(url string, timeout time.Duration) *JWKSKeySet {
	return &JWKSKeySet{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Keyfunc verifies RS* tokens against the key set.
func (ks *JWKSKeySet) Keyfunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	kid, _ := token.Header["kid"].(string)

	ks.mu.Lock()
	defer ks.mu.Unlock()

	if key := ks.lookup(kid); key != nil {
		return key, nil
	}
	keys, err := ks.fetch(context.Background())
	if err != nil {
		return nil, err
	}
	ks.keys = keys
	if key := ks.lookup(kid); key != nil {
		return key, nil
	}
	return nil, fmt.Errorf("no JWKS key for kid %q", kid)
}

// lookup picks the key by kid. A token without kid matches only a single-key set.
func (ks *JWKSKeySet) lookup(kid string) *rsa.PublicKey {
	if kid == "" {
		if len(ks.keys) == 1 {
			for _, key := range ks.keys {
				return key
			}
		}
		return nil
	}
	return ks.keys[kid]
}

func (ks *JWKSKeySet) fetch(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	logger.Info("Fetching JWKS", zap.String("url", ks.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ks.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := ks.client.Do(req)
	if err != nil {
		logger.Error("Failed to fetch JWKS", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-OK HTTP status from JWKS endpoint: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var jwks Jwks
	if err := json.Unmarshal(body, &jwks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JWKS: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(jwks.Keys))
	for _, jwk := range jwks.Keys {
		if jwk.Kty != "RSA" {
			continue
		}
		key, err := rsaPublicKey(jwk)
		if err != nil {
			logger.Warn("Skipping malformed JWKS key", zap.String("kid", jwk.Kid), zap.Error(err))
			continue
		}
		keys[jwk.Kid] = key
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("no RSA keys found in JWKS")
	}
	return keys, nil
}

func rsaPublicKey(jwk JSONWebKey) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(jwk.N)
	if err != nil {
		return nil, fmt.Errorf("failed to decode modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(jwk.E)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exponent: %w", err)
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(new(big.Int).SetBytes(eBytes).Int64()),
	}, nil
}
