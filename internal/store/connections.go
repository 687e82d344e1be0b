package store

import (
	"fmt"

	"github.com/reportpilot/internal/models"
)

func (s *Store) ListConnections() ([]models.Connection, error) {
	var connections []models.Connection
	err := s.db.Order("name").Find(&connections).Error
	return connections, err
}

func (s *Store) GetConnection(id uint) (*models.Connection, error) {
	var conn models.Connection
	if err := s.db.First(&conn, id).Error; err != nil {
		return nil, translate(err)
	}
	return &conn, nil
}

// SaveConnection creates or updates a connection. On update an empty
// password keeps the stored one.
func (s *Store) SaveConnection(conn *models.Connection) error {
	if conn.ID == 0 {
		if conn.Password == "" {
			return fmt.Errorf("password is required for new connections")
		}
		return s.db.Create(conn).Error
	}

	existing, err := s.GetConnection(conn.ID)
	if err != nil {
		return err
	}
	if conn.Password == "" {
		conn.Password = existing.Password
	}
	if conn.Driver == "" {
		conn.Driver = existing.Driver
	}
	return s.db.Save(conn).Error
}

// DeleteConnection refuses to delete a connection referenced by a
// repository or by the daily-summary config.
func (s *Store) DeleteConnection(id uint) error {
	var count int64
	if err := s.db.Model(&models.DailySummaryConfig{}).Where("connection_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: connection is used by the daily summary", ErrInUse)
	}
	if err := s.db.Model(&models.Repository{}).Where("connection_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: connection is used by one or more repositories", ErrInUse)
	}
	return s.db.Delete(&models.Connection{}, id).Error
}
