package notifycenter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
	"github.com/KasumiMercury/primind-reminder-engine/internal/testutil"
)

func testNotification(key string) domain.Notification {
	return domain.Notification{
		UserID:     "user-1",
		ReminderID: "r1",
		DedupKey:   key,
		Payload: domain.Payload{
			Title:     "Hydration",
			Body:      "Drink a glass of water",
			NavTarget: "/hydration",
			Category:  domain.CategoryHydration,
		},
	}
}

func TestCenterShow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	center := NewCenter(client)

	tests := []struct {
		name       string
		setup      func(t *testing.T)
		key        string
		want       domain.ShowResult
		wantActive int
	}{
		{
			name:       "permission unset shows",
			setup:      func(t *testing.T) {},
			key:        "r1:1705305600",
			want:       domain.ShowResultShown,
			wantActive: 1,
		},
		{
			name:       "same dedup key replaces",
			setup:      func(t *testing.T) {},
			key:        "r1:1705305600",
			want:       domain.ShowResultShown,
			wantActive: 1,
		},
		{
			name: "denied permission blocks",
			setup: func(t *testing.T) {
				if err := center.SetPermission(ctx, "user-1", false); err != nil {
					t.Fatalf("SetPermission() error = %v", err)
				}
			},
			key:        "r1:1705392000",
			want:       domain.ShowResultBlocked,
			wantActive: 1,
		},
		{
			name: "granted again shows new occurrence",
			setup: func(t *testing.T) {
				if err := center.SetPermission(ctx, "user-1", true); err != nil {
					t.Fatalf("SetPermission() error = %v", err)
				}
			},
			key:        "r1:1705392000",
			want:       domain.ShowResultShown,
			wantActive: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)

			got, err := center.Show(ctx, testNotification(tt.key))
			if err != nil {
				t.Fatalf("Show() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Show() = %s, want %s", got, tt.want)
			}

			active, err := center.Active(ctx, "user-1")
			if err != nil {
				t.Fatalf("Active() error = %v", err)
			}
			if len(active) != tt.wantActive {
				t.Errorf("len(Active()) = %d, want %d", len(active), tt.wantActive)
			}
		})
	}
}

func TestCenterOpen(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	center := NewCenter(client)

	if _, err := center.Show(ctx, testNotification("r1:1")); err != nil {
		t.Fatalf("Show() error = %v", err)
	}

	nav, err := center.Open(ctx, "user-1", "r1:1")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if nav != "/hydration" {
		t.Errorf("Open() = %q, want /hydration", nav)
	}

	if _, err := center.Open(ctx, "user-1", "r1:1"); !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("second Open() error = %v, want ErrNotificationNotFound", err)
	}
}

func TestCenterBroadcastSubscribe(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	center := NewCenter(client)

	sub, err := center.Subscribe(ctx, "user-1")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	defer sub.Close()

	shown := domain.NotificationShown{ReminderID: "r1", DedupKey: "r1:1", Title: "Hydration", NavTarget: "/hydration"}
	if err := center.Broadcast(ctx, "user-1", shown); err != nil {
		t.Fatalf("Broadcast() error = %v", err)
	}

	select {
	case env := <-sub.Events():
		if env.Type != domain.EventNotificationShown {
			t.Errorf("Type = %s, want %s", env.Type, domain.EventNotificationShown)
		}
		var got domain.NotificationShown
		if err := json.Unmarshal(env.Data, &got); err != nil {
			t.Fatalf("unmarshal data: %v", err)
		}
		if got != shown {
			t.Errorf("event = %+v, want %+v", got, shown)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}
}

func TestCenterNamespaceIsolation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	staging := NewCenter(client, WithNamespace("staging"))
	prod := NewCenter(client)

	if _, err := staging.Show(ctx, testNotification("r1:1")); err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	if err := staging.SetPermission(ctx, "user-1", false); err != nil {
		t.Fatalf("SetPermission() error = %v", err)
	}

	active, err := prod.Active(ctx, "user-1")
	if err != nil {
		t.Fatalf("Active() error = %v", err)
	}
	if len(active) != 0 {
		t.Errorf("len(Active()) = %d, want 0 in default namespace", len(active))
	}

	granted, err := prod.Permission(ctx, "user-1")
	if err != nil {
		t.Fatalf("Permission() error = %v", err)
	}
	if !granted {
		t.Error("Permission() = false, want default namespace unaffected")
	}

	if n, err := client.Exists(ctx, "staging:notify:active:user-1").Result(); err != nil || n != 1 {
		t.Errorf("Exists(staging active) = %d, %v, want 1", n, err)
	}
}
