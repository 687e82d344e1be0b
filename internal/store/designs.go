package store

import (
	"fmt"

	"github.com/reportpilot/internal/models"
)

func (s *Store) ListDesigns() ([]models.Design, error) {
	var designs []models.Design
	err := s.db.Preload("Repository").Order("name").Find(&designs).Error
	return designs, err
}

func (s *Store) GetDesign(id uint) (*models.Design, error) {
	var design models.Design
	if err := s.db.Preload("Repository").Preload("Repository.Connection").First(&design, id).Error; err != nil {
		return nil, translate(err)
	}
	return &design, nil
}

func (s *Store) SaveDesign(design *models.Design) error {
	if _, err := s.GetRepository(design.RepositoryID); err != nil {
		return fmt.Errorf("design repository: %w", err)
	}
	if design.ID == 0 {
		return s.db.Create(design).Error
	}
	return s.db.Save(design).Error
}

// DeleteDesign removes the design and its logo file, if any.
func (s *Store) DeleteDesign(id uint) error {
	design, err := s.GetDesign(id)
	if err != nil {
		return err
	}
	cfg, err := design.Config()
	if err == nil && cfg.Branding != nil && cfg.Branding.LogoFilename != "" {
		s.RemoveLogo(cfg.Branding.LogoFilename)
	}
	return s.db.Delete(&models.Design{}, id).Error
}
