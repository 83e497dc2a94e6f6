package repository

import (
	"path/filepath"
	"testing"

	"moodimello/internal/database"
	"moodimello/internal/models"
)

func newTestRepo(t *testing.T) *ProfileRepository {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "profiles.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.RunMigrations(""); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return NewProfileRepository(db)
}

func TestProfileRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	repo := newTestRepo(t)

	missing, err := repo.GetProfileByID("nobody")
	if err != nil || missing != nil {
		t.Fatalf("GetProfileByID(nobody) = %v, %v, want nil, nil", missing, err)
	}

	profiles := []models.StoredProfile{
		{Profile: models.Profile{ID: "lucas", Name: "Lucas", ColorTheme: "blue"}},
		{Profile: models.Profile{ID: "emma", Name: "Emma", ColorTheme: "yellow"}, ParentEmail: "parent@example.com"},
	}
	for _, p := range profiles {
		if err := repo.SaveProfile(p); err != nil {
			t.Fatalf("SaveProfile(%s) error = %v", p.ID, err)
		}
	}

	all, err := repo.GetAllProfiles()
	if err != nil {
		t.Fatalf("GetAllProfiles() error = %v", err)
	}
	if len(all) != 2 || all[0].ID != "emma" || all[1].ID != "lucas" {
		t.Fatalf("GetAllProfiles() = %+v, want emma then lucas", all)
	}

	emma, err := repo.GetProfileByID("emma")
	if err != nil || emma == nil {
		t.Fatalf("GetProfileByID(emma) = %v, %v", emma, err)
	}
	if emma.ParentEmail != "parent@example.com" || emma.ColorTheme != "yellow" {
		t.Errorf("GetProfileByID(emma) = %+v", emma)
	}

	if err := repo.DeleteProfile("lucas"); err != nil {
		t.Fatalf("DeleteProfile() error = %v", err)
	}
	if count, _ := repo.CountProfiles(); count != 1 {
		t.Errorf("CountProfiles() = %d, want 1", count)
	}
}
