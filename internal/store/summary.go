package store

import (
	"fmt"

	"github.com/reportpilot/internal/models"
)

func (s *Store) GetDailySummaryConfig() (*models.DailySummaryConfig, error) {
	var cfg models.DailySummaryConfig
	if err := s.db.First(&cfg, 1).Error; err != nil {
		return nil, translate(err)
	}
	return &cfg, nil
}

func (s *Store) UpdateDailySummaryConfig(cfg *models.DailySummaryConfig) error {
	if cfg.ConnectionID != nil {
		if _, err := s.GetConnection(*cfg.ConnectionID); err != nil {
			return fmt.Errorf("daily summary connection: %w", err)
		}
	}
	cfg.ID = 1
	return s.db.Save(cfg).Error
}
