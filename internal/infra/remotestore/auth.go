package remotestore

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/KasumiMercury/primind-reminder-engine/internal/wire"
)

// AuthClient exchanges a long-lived refresh secret for short-lived access
// tokens. Only the foreground side of the engine holds one.
type AuthClient struct {
	client *Client
}

func NewAuthClient(baseURL string, opts ...Option) *AuthClient {
	return &AuthClient{client: NewClient(baseURL, opts...)}
}

func (a *AuthClient) Mint(ctx context.Context, userID, refreshToken string) (string, time.Time, error) {
	body := wire.TokenRequest{
		UserID:       userID,
		RefreshToken: refreshToken,
	}

	var resp wire.TokenResponse
	if err := a.client.do(ctx, "mint_token", http.MethodPost, "/api/v1/auth/token", nil, "", body, &resp); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to mint access token: %w", err)
	}
	if resp.AccessToken == "" {
		return "", time.Time{}, fmt.Errorf("failed to mint access token: empty token in response")
	}

	slog.DebugContext(ctx, "access token minted",
		slog.String("user_id", userID),
		slog.Time("expires_at", resp.ExpiresAt),
	)

	return resp.AccessToken, resp.ExpiresAt, nil
}
