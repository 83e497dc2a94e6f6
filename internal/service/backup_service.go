package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"moodimello/internal/database"
	"moodimello/internal/models"
	"moodimello/internal/repository"
	"moodimello/internal/validation"
)

const backupVersion = "1.0"

// BackupData represents the profile export file
type BackupData struct {
	Version    string          `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	Profiles   []ProfileBackup `json:"profiles"`
}

// ProfileBackup represents a profile record for backup
type ProfileBackup struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	AvatarRef   string    `json:"avatar_ref"`
	ColorTheme  string    `json:"color_theme"`
	ParentEmail string    `json:"parent_email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BackupService exports and imports child profiles
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes every profile to a file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}
	log.Printf("Profiles exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter writes every profile as indented JSON
func (s *BackupService) ExportToWriter(w io.Writer) error {
	profiles, err := repository.NewProfileRepository(s.db).GetAllProfiles()
	if err != nil {
		return fmt.Errorf("failed to export profiles: %w", err)
	}

	backup := &BackupData{
		Version:    backupVersion,
		ExportedAt: time.Now(),
		Profiles:   make([]ProfileBackup, 0, len(profiles)),
	}
	for _, p := range profiles {
		backup.Profiles = append(backup.Profiles, ProfileBackup{
			ID:          p.ID,
			Name:        p.Name,
			AvatarRef:   p.AvatarRef,
			ColorTheme:  p.ColorTheme,
			ParentEmail: p.ParentEmail,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported: %d profiles", len(backup.Profiles))
	return nil
}

// Import restores profiles from a backup file
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader upserts every profile of a backup inside one transaction
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != backupVersion {
		return fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	repo := repository.NewProfileRepository(tx)

	for _, p := range backup.Profiles {
		if err := validateProfile(p); err != nil {
			tx.Rollback()
			return fmt.Errorf("invalid profile %q in backup: %w", p.ID, err)
		}
		err := repo.SaveProfile(models.StoredProfile{
			Profile: models.Profile{
				ID:         p.ID,
				Name:       p.Name,
				AvatarRef:  p.AvatarRef,
				ColorTheme: p.ColorTheme,
			},
			ParentEmail: p.ParentEmail,
		})
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to import profiles: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	log.Printf("Imported %d profiles", len(backup.Profiles))
	return nil
}

func validateProfile(p ProfileBackup) error {
	if err := validation.ValidateProfileID(p.ID); err != nil {
		return err
	}
	if err := validation.ValidateName(p.Name); err != nil {
		return err
	}
	if p.ParentEmail != "" {
		return validation.ValidateEmail(p.ParentEmail)
	}
	return nil
}

// ClearProfiles deletes every stored profile
func (s *BackupService) ClearProfiles() error {
	if _, err := s.db.Exec("DELETE FROM profiles"); err != nil {
		return fmt.Errorf("failed to clear profiles: %w", err)
	}
	return nil
}
