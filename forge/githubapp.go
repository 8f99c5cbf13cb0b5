package forge

import (
	"context"
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// appTokenTTL is the JWT lifetime GitHub allows for App authentication.
const appTokenTTL = 10 * time.Minute

// ParseAppKey parses a GitHub App private key in PEM form.
func ParseAppKey(pemBytes []byte) (*rsa.PrivateKey, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parse app private key: %w", err)
	}
	return key, nil
}

// NewAppToken mints a short-lived JWT for GitHub App authentication.
// The issued-at claim is backdated one minute to absorb clock drift
// between us and GitHub.
func NewAppToken(appID string, key *rsa.PrivateKey) (string, error) {
	if appID == "" {
		return "", fmt.Errorf("app ID is required")
	}
	if key == nil {
		return "", fmt.Errorf("private key is required")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    appID,
		IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(now.Add(appTokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign app token: %w", err)
	}
	return signed, nil
}

// NewGitHubApp authenticates as a GitHub App installation: it mints the app
// JWT, exchanges it for an installation access token, and returns a forge
// using that token.
func NewGitHubApp(ctx context.Context, appID string, key *rsa.PrivateKey, installationID int64, owner, repo string, opts ...GitHubOption) (*GitHub, error) {
	if owner == "" || repo == "" {
		return nil, ErrNotConfigured
	}

	appJWT, err := NewAppToken(appID, key)
	if err != nil {
		return nil, err
	}

	httpClient := oauth2.NewClient(ctx,
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: appJWT}))
	app := &GitHub{client: github.NewClient(httpClient), owner: owner, repo: repo}
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	token, _, err := app.client.Apps.CreateInstallationToken(ctx, installationID, nil)
	if err != nil {
		return nil, fmt.Errorf("create installation token: %w", err)
	}
	return NewGitHub(token.GetToken(), owner, repo, opts...)
}
