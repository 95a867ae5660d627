package reminderstore

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenIssuer(t *testing.T) {
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

	issuer := NewTokenIssuer(testSecret, time.Hour)
	issuer.now = func() time.Time { return now }

	token, expiresAt, err := issuer.Sign("user-1")
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if !expiresAt.Equal(now.Add(time.Hour)) {
		t.Errorf("expiresAt = %v", expiresAt)
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	foreign := NewTokenIssuer("another-secret-another-secret-xx", time.Hour)
	foreign.now = issuer.now
	foreignToken, _, err := foreign.Sign("user-1")
	if err != nil {
		t.Fatalf("foreign Sign() error = %v", err)
	}

	tests := []struct {
		name    string
		token   string
		at      time.Time
		wantSub string
		wantErr bool
	}{
		{name: "valid", token: token, at: now.Add(30 * time.Minute), wantSub: "user-1"},
		{name: "expired", token: token, at: now.Add(2 * time.Hour), wantErr: true},
		{name: "other secret", token: foreignToken, at: now, wantErr: true},
		{name: "unsigned", token: none, at: now, wantErr: true},
		{name: "garbage", token: "not.a.token", at: now, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issuer.now = func() time.Time { return tt.at }

			sub, err := issuer.Verify(tt.token)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAccessToken) {
					t.Errorf("Verify() error = %v, want ErrInvalidAccessToken", err)
				}
				return
			}
			if err != nil || sub != tt.wantSub {
				t.Errorf("Verify() = %q, %v, want %q", sub, err, tt.wantSub)
			}
		})
	}
}

func TestRefreshSecret(t *testing.T) {
	secret, hash, err := NewRefreshSecret()
	if err != nil {
		t.Fatalf("NewRefreshSecret() error = %v", err)
	}
	if secret == "" || hash == secret {
		t.Fatalf("secret %q hash %q", secret, hash)
	}

	if err := checkRefreshSecret(hash, secret); err != nil {
		t.Errorf("matching secret rejected: %v", err)
	}
	if err := checkRefreshSecret(hash, secret+"x"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("wrong secret error = %v, want ErrInvalidRefreshToken", err)
	}
}
