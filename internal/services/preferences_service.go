package services

import (
	"go.uber.org/zap"

	"projectdollar/internal/models"
	"projectdollar/internal/store"
)

type preferencesService struct {
	store *store.Store
	log   *zap.SugaredLogger
}

// NewPreferencesService creates the preferences service.
func NewPreferencesService(st *store.Store, log *zap.SugaredLogger) PreferencesServicer {
	return &preferencesService{store: st, log: log}
}

func (s *preferencesService) Preferences() models.Preferences {
	return s.store.Preferences()
}

func (s *preferencesService) Update(p models.Preferences) models.Preferences {
	if p.DateFormat == "" {
		p.DateFormat = "DD-MM-YYYY"
	}
	if p.PrimaryColor == "" {
		p.PrimaryColor = "blue"
	}

	s.store.SavePreferences(p)
	s.log.Infow("Preferences updated", "dark_mode", p.DarkMode, "primary_color", p.PrimaryColor)
	return p
}
