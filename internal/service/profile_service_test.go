package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"moodimello/internal/models"
)

func TestSeedDefaultProfiles(t *testing.T) {
	store := newMemStore()
	svc := NewProfileService(store)

	if err := svc.SeedDefaultProfiles(); err != nil {
		t.Fatalf("SeedDefaultProfiles() error = %v", err)
	}
	if err := svc.SeedDefaultProfiles(); err != nil {
		t.Fatalf("second SeedDefaultProfiles() error = %v", err)
	}

	profiles, err := svc.ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles() error = %v", err)
	}
	if len(profiles) != len(DefaultProfiles) {
		t.Fatalf("len(ListProfiles()) = %d, want %d", len(profiles), len(DefaultProfiles))
	}
	if profiles[0].ID != "emma" {
		t.Errorf("first profile = %s, want emma", profiles[0].ID)
	}
}

func TestSeedSkipsExistingProfiles(t *testing.T) {
	store := newMemStore(models.StoredProfile{Profile: models.Profile{ID: "maya", Name: "Maya"}})
	svc := NewProfileService(store)

	if err := svc.SeedDefaultProfiles(); err != nil {
		t.Fatalf("SeedDefaultProfiles() error = %v", err)
	}
	if n, _ := store.CountProfiles(); n != 1 {
		t.Errorf("CountProfiles() = %d, want 1", n)
	}
}

func TestGetProfile(t *testing.T) {
	svc := NewProfileService(newMemStore(DefaultProfiles...))

	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{"known", "lucas", nil},
		{"unknown", "zoe", ErrProfileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := svc.GetProfile(tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("GetProfile(%s) error = %v, want %v", tt.id, err, tt.wantErr)
			}
			if err == nil && p.ID != tt.id {
				t.Errorf("GetProfile(%s).ID = %s", tt.id, p.ID)
			}
		})
	}
}

func TestRenderSessionSummary(t *testing.T) {
	start := time.Date(2024, 5, 1, 16, 0, 0, 0, time.UTC)
	summary := models.SessionSummary{
		Profile:   models.Profile{ID: "emma", Name: "Emma <3"},
		StartedAt: start,
		EndedAt:   start.Add(25 * time.Minute),
		Games: []models.CompletedGame{
			{Game: models.GameBreathingDragon, Result: models.GameResult{StarsEarned: 5, Badge: models.BadgeBreathingDragon}},
		},
		StarsEarned: 5,
		NewBadges:   []models.Badge{models.BadgeBreathingDragon},
		TotalStars:  50,
	}

	htmlBody, textBody := renderSessionSummary(summary, "https://moodimello.example")

	for _, want := range []string{"Emma &lt;3", "Breathing Dragon", "25 minutes", "50 in total"} {
		if !strings.Contains(htmlBody, want) {
			t.Errorf("html body missing %q", want)
		}
	}
	if strings.Contains(htmlBody, "Emma <3") {
		t.Error("html body contains an unescaped name")
	}
	if !strings.Contains(textBody, "- Breathing Dragon: 5 stars and the breathing-dragon-badge") {
		t.Errorf("text body = %q", textBody)
	}

	_, empty := renderSessionSummary(models.SessionSummary{Profile: summary.Profile}, "")
	if !strings.Contains(empty, "No games finished this time.") {
		t.Errorf("empty text body = %q", empty)
	}
}

func TestDisabledEmailService(t *testing.T) {
	svc, err := NewEmailService(context.Background(), "us-east-1", "", "", "", false)
	if err != nil {
		t.Fatalf("NewEmailService() error = %v", err)
	}
	if svc.IsEnabled() {
		t.Fatal("IsEnabled() = true without a from address")
	}
	if err := svc.SendSessionSummary(context.Background(), "parent@example.com", models.SessionSummary{}); err != nil {
		t.Errorf("SendSessionSummary() error = %v, want nil when disabled", err)
	}
}
