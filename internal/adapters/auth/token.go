package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Caller is the resolved identity of a request. Absence of a caller is not
// an error at this layer; each mutating usecase decides whether it needs one.
type Caller struct {
	UserID string
}

type ctxKey struct{}

func FromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(ctxKey{}).(Caller)
	return c, ok
}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// Service issues and verifies HMAC-signed bearer tokens (HS256-shaped, no
// external claims beyond sub/exp/iat/iss).
type Service struct {
	secret []byte
}

func New(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

func (s *Service) Issue(userID string, ttl time.Duration) (string, time.Time, error) {
	head := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	exp := time.Now().Add(ttl)
	claims := map[string]any{"sub": userID, "exp": exp.Unix(), "iat": time.Now().Unix(), "iss": "storeadmin"}
	b, err := json.Marshal(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	unsigned := head + "." + base64.RawURLEncoding.EncodeToString(b)
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(unsigned))
	sig := base64.RawURLEncoding.EncodeToString(h.Sum(nil))
	return unsigned + "." + sig, exp, nil
}

func (s *Service) Verify(tok string) (string, error) {
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("token format")
	}
	unsigned := parts[0] + "." + parts[1]
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return "", fmt.Errorf("token signature encoding")
	}
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(unsigned))
	if !hmac.Equal(sig, h.Sum(nil)) {
		return "", fmt.Errorf("token signature")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("token payload encoding")
	}
	var m map[string]any
	if err := json.Unmarshal(payload, &m); err != nil {
		return "", fmt.Errorf("token payload")
	}
	sub, _ := m["sub"].(string)
	expF, _ := m["exp"].(float64)
	if sub == "" {
		return "", fmt.Errorf("token claims")
	}
	if time.Now().Unix() > int64(expF) {
		return "", fmt.Errorf("token expired")
	}
	return sub, nil
}

// Middleware resolves an Authorization bearer token into a request-scoped
// Caller. Missing or invalid tokens leave the request anonymous; read
// endpoints stay public and mutations fail in the usecase with 401.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("Authorization")
		if strings.HasPrefix(raw, "Bearer ") {
			if userID, err := s.Verify(strings.TrimPrefix(raw, "Bearer ")); err == nil {
				r = r.WithContext(WithCaller(r.Context(), Caller{UserID: userID}))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// SecureCompare is constant-time equality for API-key checks.
func SecureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	var v byte
	for i := 0; i < len(a); i++ {
		v |= a[i] ^ b[i]
	}
	return v == 0
}
