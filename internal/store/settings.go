package store

import "github.com/reportpilot/internal/models"

func (s *Store) GetSettings() (*models.Settings, error) {
	var settings models.Settings
	if err := s.db.First(&settings, 1).Error; err != nil {
		return nil, translate(err)
	}
	return &settings, nil
}

func (s *Store) UpdateSettings(settings *models.Settings) error {
	settings.ID = 1
	return s.db.Save(settings).Error
}

func (s *Store) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// VerifyUser checks a username/password pair and returns the user on
// success.
func (s *Store) VerifyUser(username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	if !user.CheckPassword(password) {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *Store) UpdatePassword(username, newPassword string) error {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return translate(err)
	}
	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	return s.db.Save(&user).Error
}
