package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abgdnv/storeadmin/internal/model"
	"github.com/abgdnv/storeadmin/internal/store"
	"github.com/go-playground/validator/v10"
)

// SettingsService reads and replaces the site settings.
type SettingsService interface {
	Get(ctx context.Context) (*model.SiteSettings, error)
	Update(ctx context.Context, settings model.SiteSettings) (*model.SiteSettings, error)
}

type Settings struct {
	store    store.SettingsStore
	validate *validator.Validate
	logger   *slog.Logger
}

func NewSettingsService(s store.SettingsStore, validate *validator.Validate, logger *slog.Logger) *Settings {
	return &Settings{store: s, validate: validate, logger: logger.With("component", "settings-service")}
}

func (s *Settings) Get(ctx context.Context) (*model.SiteSettings, error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}
	return settings, nil
}

func (s *Settings) Update(ctx context.Context, settings model.SiteSettings) (*model.SiteSettings, error) {
	if err := s.validate.Struct(settings); err != nil {
		return nil, validationError(err)
	}
	refs := []string{settings.CustomBackgroundImage}
	for _, img := range settings.HeroImages {
		refs = append(refs, img.URL)
	}
	for _, img := range settings.CategoryImages {
		refs = append(refs, img.URL)
	}
	for _, ref := range refs {
		if err := checkImageSize(ref); err != nil {
			return nil, validationError(err)
		}
	}

	saved, err := s.store.SaveSettings(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	s.logger.InfoContext(ctx, "Site settings updated", "heroAnimation", saved.HeroAnimation)
	return saved, nil
}
