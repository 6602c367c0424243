package auth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleLogin exchanges a Google sign-in for a storeadmin bearer token. The
// user's email becomes the caller identity.
type GoogleLogin struct {
	cfg    *oauth2.Config
	tokens *Service
}

func NewGoogleLogin(clientID, clientSecret, baseURL string, tokens *Service) *GoogleLogin {
	if clientID == "" || clientSecret == "" {
		return nil
	}
	return &GoogleLogin{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  baseURL + "/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		tokens: tokens,
	}
}

func (g *GoogleLogin) HandleLogin(w http.ResponseWriter, r *http.Request) {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	state := base64.RawURLEncoding.EncodeToString(buf)
	http.SetCookie(w, &http.Cookie{
		Name: "oauth_state", Value: state, Path: "/",
		HttpOnly: true, MaxAge: 300, SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, g.cfg.AuthCodeURL(state), http.StatusFound)
}

func (g *GoogleLogin) HandleCallback(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie("oauth_state")
	if err != nil || c.Value == "" || c.Value != r.URL.Query().Get("state") {
		http.Error(w, "state", http.StatusBadRequest)
		return
	}
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "code", http.StatusBadRequest)
		return
	}
	tok, err := g.cfg.Exchange(r.Context(), code)
	if err != nil {
		log.Error().Err(err).Msg("google code exchange")
		http.Error(w, "exchange", http.StatusBadGateway)
		return
	}
	resp, err := g.cfg.Client(r.Context(), tok).Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		log.Error().Err(err).Msg("google userinfo")
		http.Error(w, "userinfo", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var info struct {
		Email string `json:"email"`
	}
	_ = json.Unmarshal(body, &info)
	if info.Email == "" {
		http.Error(w, "email", http.StatusBadRequest)
		return
	}
	bearer, exp, err := g.tokens.Issue(info.Email, 12*time.Hour)
	if err != nil {
		http.Error(w, "token", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"token": bearer, "exp": exp.Unix(), "userId": info.Email})
}
