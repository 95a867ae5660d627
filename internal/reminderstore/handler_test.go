package reminderstore

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
	"github.com/KasumiMercury/primind-reminder-engine/internal/wire"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type storeDeps struct {
	reminders *MockReminderRepository
	users     *MockUserRepository
	service   *Service
	router    *gin.Engine
	token     string
}

func newStoreRouter(t *testing.T, now time.Time, allowRegistration bool) storeDeps {
	t.Helper()

	ctrl := gomock.NewController(t)
	deps := storeDeps{
		reminders: NewMockReminderRepository(ctrl),
		users:     NewMockUserRepository(ctrl),
		router:    gin.New(),
	}

	issuer := NewTokenIssuer(testSecret, time.Hour)
	issuer.now = func() time.Time { return now }

	deps.service = NewService(deps.reminders, deps.users, issuer, ServiceConfig{
		Location:          time.UTC,
		AllowRegistration: allowRegistration,
	})
	deps.service.now = func() time.Time { return now }

	token, _, err := issuer.Sign("user-1")
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	deps.token = token

	RegisterRoutes(deps.router, NewHandler(deps.service))
	return deps
}

func (d storeDeps) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+d.token)
	}
	w := httptest.NewRecorder()
	d.router.ServeHTTP(w, req)
	return w
}

func TestRequireBearer(t *testing.T) {
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	deps := newStoreRouter(t, now, false)

	w := deps.do(http.MethodGet, "/api/v1/reminders", "", false)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reminders", nil)
	req.Header.Set("Authorization", "Bearer forged")
	w = httptest.NewRecorder()
	deps.router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("forged token status = %d, want 401", w.Code)
	}
}

func TestHandleFetchDue(t *testing.T) {
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		query      string
		wantFrom   time.Time
		wantTo     time.Time
		wantStatus int
	}{
		{
			name:       "default window",
			wantFrom:   now.Add(-30 * time.Minute),
			wantTo:     now.Add(30 * time.Minute),
			wantStatus: http.StatusOK,
		},
		{
			name:       "explicit window",
			query:      "?window_past_minutes=10&window_future_minutes=0",
			wantFrom:   now.Add(-10 * time.Minute),
			wantTo:     now,
			wantStatus: http.StatusOK,
		},
		{name: "negative window", query: "?window_past_minutes=-5", wantStatus: http.StatusBadRequest},
		{name: "window too wide", query: "?window_future_minutes=5000", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newStoreRouter(t, now, false)
			if tt.wantStatus == http.StatusOK {
				deps.reminders.EXPECT().
					FetchDue(gomock.Any(), "user-1", tt.wantFrom, tt.wantTo).
					Return([]wire.ReminderRecord{dailyRecord("r1", now)}, nil)
			}

			w := deps.do(http.MethodGet, "/api/v1/reminders/due"+tt.query, "", true)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp wire.RemindersResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if resp.Count != 1 || resp.Reminders[0].ID != "r1" {
				t.Errorf("response = %+v", resp)
			}
		})
	}
}

func TestHandleTrigger(t *testing.T) {
	now := time.Date(2024, 1, 15, 8, 5, 10, 0, time.UTC)
	next := time.Date(2024, 1, 16, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		body       string
		repoErr    error
		wantStatus int
	}{
		{name: "recorded", body: `{"next_trigger_time":"2024-01-16T08:00:00Z","previous_trigger_count":3}`, wantStatus: http.StatusOK},
		{name: "lost race", body: `{"next_trigger_time":"2024-01-16T08:00:00Z","previous_trigger_count":3}`, repoErr: domain.ErrTriggerConflict, wantStatus: http.StatusConflict},
		{name: "unknown reminder", body: `{"next_trigger_time":"2024-01-16T08:00:00Z","previous_trigger_count":3}`, repoErr: domain.ErrReminderNotFound, wantStatus: http.StatusNotFound},
		{name: "missing time", body: `{"previous_trigger_count":3}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newStoreRouter(t, now, false)
			if tt.wantStatus != http.StatusBadRequest {
				write := domain.TriggerWrite{ReminderID: "r1", NextTriggerTime: next, PreviousTriggerCount: 3}
				updated := dailyRecord("r1", next)
				updated.TriggerCount = 4
				deps.reminders.EXPECT().
					RecordTrigger(gomock.Any(), "user-1", gomock.Any(), now).
					DoAndReturn(func(_ any, _ string, got domain.TriggerWrite, _ time.Time) (wire.ReminderRecord, error) {
						if got.ReminderID != write.ReminderID || got.PreviousTriggerCount != 3 || !got.NextTriggerTime.Equal(next) {
							t.Errorf("write = %+v, want %+v", got, write)
						}
						if tt.repoErr != nil {
							return wire.ReminderRecord{}, tt.repoErr
						}
						return updated, nil
					})
			}

			w := deps.do(http.MethodPost, "/api/v1/reminders/r1/trigger", tt.body, true)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d, body %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestHandleUpsert(t *testing.T) {
	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	t.Run("computes next trigger time", func(t *testing.T) {
		deps := newStoreRouter(t, now, false)
		deps.reminders.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, rec wire.ReminderRecord) (wire.ReminderRecord, error) {
				want := time.Date(2024, 1, 16, 8, 0, 0, 0, time.UTC)
				if rec.NextTriggerTime == nil || !rec.NextTriggerTime.Equal(want) {
					t.Errorf("NextTriggerTime = %v, want %v", rec.NextTriggerTime, want)
				}
				if rec.UserID != "user-1" || rec.ID != "r1" {
					t.Errorf("identity = %s/%s", rec.UserID, rec.ID)
				}
				return rec, nil
			})

		body := `{"kind":"daily","enabled":true,"schedule":{"time":"08:00"},"payload":{"title":"Breakfast","nav_target":"/meals","category":"meal"}}`
		w := deps.do(http.MethodPut, "/api/v1/reminders/r1", body, true)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, body %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects malformed schedule", func(t *testing.T) {
		deps := newStoreRouter(t, now, false)

		body := `{"kind":"weekly","enabled":true,"schedule":{"time":"08:00"}}`
		w := deps.do(http.MethodPut, "/api/v1/reminders/r1", body, true)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("rejects oversized interval with a client next trigger time", func(t *testing.T) {
		deps := newStoreRouter(t, now, false)

		body := `{"kind":"recurring","enabled":true,"schedule":{"interval_minutes":9007199254740992,"start_time":"08:00","end_time":"22:00"},"next_trigger_time":"2024-01-15T10:00:00Z"}`
		w := deps.do(http.MethodPut, "/api/v1/reminders/r1", body, true)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("rejects mismatched id", func(t *testing.T) {
		deps := newStoreRouter(t, now, false)

		body := `{"id":"r2","kind":"daily","enabled":true,"schedule":{"time":"08:00"}}`
		w := deps.do(http.MethodPut, "/api/v1/reminders/r1", body, true)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestHandleDelete(t *testing.T) {
	deps := newStoreRouter(t, time.Now(), false)
	gomock.InOrder(
		deps.reminders.EXPECT().Delete(gomock.Any(), "user-1", "r1").Return(nil),
		deps.reminders.EXPECT().Delete(gomock.Any(), "user-1", "r1").Return(domain.ErrReminderNotFound),
	)

	if w := deps.do(http.MethodDelete, "/api/v1/reminders/r1", "", true); w.Code != http.StatusNoContent {
		t.Errorf("first delete status = %d, want 204", w.Code)
	}
	if w := deps.do(http.MethodDelete, "/api/v1/reminders/r1", "", true); w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}

func TestHandleToken(t *testing.T) {
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	tests := []struct {
		name       string
		body       string
		setup      func(users *MockUserRepository)
		wantStatus int
	}{
		{
			name: "valid refresh token",
			body: `{"user_id":"user-1","refresh_token":"secret"}`,
			setup: func(users *MockUserRepository) {
				users.EXPECT().SecretHash(gomock.Any(), "user-1").Return(string(hash), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "wrong refresh token",
			body: `{"user_id":"user-1","refresh_token":"guess"}`,
			setup: func(users *MockUserRepository) {
				users.EXPECT().SecretHash(gomock.Any(), "user-1").Return(string(hash), nil)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "unknown user",
			body: `{"user_id":"ghost","refresh_token":"secret"}`,
			setup: func(users *MockUserRepository) {
				users.EXPECT().SecretHash(gomock.Any(), "ghost").Return("", ErrUserNotFound)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing fields",
			body:       `{"user_id":"user-1"}`,
			setup:      func(users *MockUserRepository) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newStoreRouter(t, now, false)
			tt.setup(deps.users)

			w := deps.do(http.MethodPost, "/api/v1/auth/token", tt.body, false)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp wire.TokenResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			sub, err := deps.service.Authenticate(resp.AccessToken)
			if err != nil || sub != "user-1" {
				t.Errorf("Authenticate() = %q, %v", sub, err)
			}
			if resp.TokenType != "Bearer" || !resp.ExpiresAt.Equal(now.Add(time.Hour)) {
				t.Errorf("response = %+v", resp)
			}
		})
	}
}

func TestHandleRegister(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		deps := newStoreRouter(t, time.Now(), false)

		w := deps.do(http.MethodPost, "/api/v1/auth/register", `{"user_id":"user-2"}`, false)
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("issues a secret that verifies", func(t *testing.T) {
		deps := newStoreRouter(t, time.Now(), true)

		var storedHash string
		deps.users.EXPECT().
			Create(gomock.Any(), "user-2", gomock.Any()).
			DoAndReturn(func(_ any, _ string, hash string) error {
				storedHash = hash
				return nil
			})

		w := deps.do(http.MethodPost, "/api/v1/auth/register", `{"user_id":"user-2"}`, false)
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}

		var resp wire.RegisterResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if err := checkRefreshSecret(storedHash, resp.RefreshToken); err != nil {
			t.Errorf("returned secret does not match stored hash: %v", err)
		}
	})

	t.Run("duplicate user", func(t *testing.T) {
		deps := newStoreRouter(t, time.Now(), true)
		deps.users.EXPECT().Create(gomock.Any(), "user-1", gomock.Any()).Return(ErrUserExists)

		w := deps.do(http.MethodPost, "/api/v1/auth/register", `{"user_id":"user-1"}`, false)
		if w.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", w.Code)
		}
	})
}
