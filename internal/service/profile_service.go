package service

import (
	"errors"
	"fmt"
	"log"

	"moodimello/internal/models"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileStore is the persistence the profile and host services need
type ProfileStore interface {
	SaveProfile(p models.StoredProfile) error
	GetProfileByID(id string) (*models.StoredProfile, error)
	GetAllProfiles() ([]models.StoredProfile, error)
	CountProfiles() (int, error)
}

// DefaultProfiles are created on an empty database
var DefaultProfiles = []models.StoredProfile{
	{Profile: models.Profile{
		ID:         "emma",
		Name:       "Emma",
		AvatarRef:  "https://www.pngitem.com/pimgs/m/581-5814816_riley-inside-out-characters-hd-png-download.png",
		ColorTheme: "from-yellow-400 to-orange-500",
	}},
	{Profile: models.Profile{
		ID:         "lucas",
		Name:       "Lucas",
		AvatarRef:  "https://t3.ftcdn.net/jpg/12/73/97/74/360_F_1273977489_BSi3GP9finxxEtiBFrP2cuvpuxdpWLxL.jpg",
		ColorTheme: "from-blue-400 to-purple-500",
	}},
}

// ProfileService handles child profile business logic
type ProfileService struct {
	store ProfileStore
}

// NewProfileService creates a new profile service
func NewProfileService(store ProfileStore) *ProfileService {
	return &ProfileService{store: store}
}

// SeedDefaultProfiles creates the default profiles when none exist
func (s *ProfileService) SeedDefaultProfiles() error {
	count, err := s.store.CountProfiles()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, p := range DefaultProfiles {
		if err := s.store.SaveProfile(p); err != nil {
			return fmt.Errorf("failed to seed profile %s: %w", p.ID, err)
		}
	}
	log.Printf("Seeded %d default profiles", len(DefaultProfiles))
	return nil
}

// ListProfiles returns the public part of every profile
func (s *ProfileService) ListProfiles() ([]models.Profile, error) {
	stored, err := s.store.GetAllProfiles()
	if err != nil {
		return nil, err
	}
	profiles := make([]models.Profile, len(stored))
	for i, p := range stored {
		profiles[i] = p.Profile
	}
	return profiles, nil
}

// GetProfile returns a stored profile or ErrProfileNotFound
func (s *ProfileService) GetProfile(id string) (*models.StoredProfile, error) {
	p, err := s.store.GetProfileByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}
