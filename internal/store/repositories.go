package store

import (
	"fmt"

	"github.com/reportpilot/internal/models"
)

func (s *Store) ListRepositories() ([]models.Repository, error) {
	var repos []models.Repository
	err := s.db.Preload("Connection").Order("name").Find(&repos).Error
	return repos, err
}

func (s *Store) GetRepository(id uint) (*models.Repository, error) {
	var repo models.Repository
	if err := s.db.Preload("Connection").First(&repo, id).Error; err != nil {
		return nil, translate(err)
	}
	return &repo, nil
}

func (s *Store) SaveRepository(repo *models.Repository) error {
	if _, err := s.GetConnection(repo.ConnectionID); err != nil {
		return fmt.Errorf("repository connection: %w", err)
	}
	if repo.ID == 0 {
		return s.db.Create(repo).Error
	}
	return s.db.Save(repo).Error
}

// DeleteRepository refuses to delete a repository referenced by a design.
func (s *Store) DeleteRepository(id uint) error {
	var count int64
	if err := s.db.Model(&models.Design{}).Where("repository_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: repository is used by one or more designs", ErrInUse)
	}
	return s.db.Delete(&models.Repository{}, id).Error
}
