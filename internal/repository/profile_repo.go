package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"moodimello/internal/database"
	"moodimello/internal/models"
)

// ProfileRepository handles database operations for child profiles
type ProfileRepository struct {
	db database.DBTX
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db database.DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = "id, name, avatar_ref, color_theme, parent_email, created_at, updated_at"

func scanProfile(row interface{ Scan(...interface{}) error }) (*models.StoredProfile, error) {
	p := &models.StoredProfile{}
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.AvatarRef,
		&p.ColorTheme,
		&p.ParentEmail,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// SaveProfile inserts a profile or replaces the one with the same id
func (r *ProfileRepository) SaveProfile(p models.StoredProfile) error {
	query := r.db.GetDialect().UpsertProfileQuery()
	if _, err := r.db.Exec(query, p.ID, p.Name, p.AvatarRef, p.ColorTheme, p.ParentEmail); err != nil {
		return fmt.Errorf("failed to save profile %s: %w", p.ID, err)
	}
	return nil
}

// GetProfileByID retrieves a profile by id. It returns nil when none exists.
func (r *ProfileRepository) GetProfileByID(id string) (*models.StoredProfile, error) {
	query := "SELECT " + profileColumns + " FROM profiles WHERE id = ?"
	p, err := scanProfile(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// GetAllProfiles retrieves every profile ordered by name
func (r *ProfileRepository) GetAllProfiles() ([]models.StoredProfile, error) {
	rows, err := r.db.Query("SELECT " + profileColumns + " FROM profiles ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.StoredProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}
	return profiles, nil
}

// CountProfiles returns the number of stored profiles
func (r *ProfileRepository) CountProfiles() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM profiles").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return count, nil
}

// DeleteProfile removes a profile
func (r *ProfileRepository) DeleteProfile(id string) error {
	if _, err := r.db.Exec("DELETE FROM profiles WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}
