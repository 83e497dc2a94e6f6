package service

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"moodimello/internal/database"
	"moodimello/internal/repository"
)

func TestBackupExportImport(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "backup.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	if err := db.RunMigrations(""); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	repo := repository.NewProfileRepository(db)
	if err := NewProfileService(repo).SeedDefaultProfiles(); err != nil {
		t.Fatalf("SeedDefaultProfiles() error = %v", err)
	}

	backup := NewBackupService(db)
	var buf bytes.Buffer
	if err := backup.ExportToWriter(&buf); err != nil {
		t.Fatalf("ExportToWriter() error = %v", err)
	}

	if err := backup.ClearProfiles(); err != nil {
		t.Fatalf("ClearProfiles() error = %v", err)
	}
	if n, _ := repo.CountProfiles(); n != 0 {
		t.Fatalf("CountProfiles() after clear = %d, want 0", n)
	}

	if err := backup.ImportFromReader(&buf); err != nil {
		t.Fatalf("ImportFromReader() error = %v", err)
	}
	restored, err := repo.GetProfileByID("emma")
	if err != nil || restored == nil {
		t.Fatalf("GetProfileByID(emma) = %v, %v", restored, err)
	}
	if restored.ColorTheme != DefaultProfiles[0].ColorTheme {
		t.Errorf("ColorTheme = %q, want %q", restored.ColorTheme, DefaultProfiles[0].ColorTheme)
	}
	if n, _ := repo.CountProfiles(); n != len(DefaultProfiles) {
		t.Errorf("CountProfiles() = %d, want %d", n, len(DefaultProfiles))
	}
}

func TestBackupImportRejectsBadInput(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "backup.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	if err := db.RunMigrations(""); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	backup := NewBackupService(db)

	tests := []struct {
		name  string
		input string
	}{
		{"not json", "profiles"},
		{"wrong version", `{"version": "0.1", "profiles": []}`},
		{"missing id", `{"version": "1.0", "profiles": [{"name": "Emma"}]}`},
		{"bad email", `{"version": "1.0", "profiles": [{"id": "emma", "name": "Emma", "parent_email": "nope"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := backup.ImportFromReader(strings.NewReader(tt.input)); err == nil {
				t.Errorf("ImportFromReader(%s) error = nil, want an error", tt.name)
			}
		})
	}

	if n, _ := repository.NewProfileRepository(db).CountProfiles(); n != 0 {
		t.Errorf("CountProfiles() = %d after rejected imports, want 0", n)
	}
}
