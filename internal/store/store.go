package store

import (
	"errors"

	"github.com/reportpilot/internal/logger"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when an entity id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInUse is returned when a delete is blocked by a reference
	// from another entity.
	ErrInUse = errors.New("in use")
)

// Store is the configuration store: connections, repositories, report
// designs, SMTP settings, the daily-summary config and the email audit
// log, all backed by the settings database. Individual calls are
// atomic; there are no cross-call transactions.
type Store struct {
	db         *gorm.DB
	uploadsDir string
	log        *logger.Logger
}

func New(db *gorm.DB, uploadsDir string, log *logger.Logger) *Store {
	return &Store{db: db, uploadsDir: uploadsDir, log: log}
}

func (s *Store) UploadsDir() string {
	return s.uploadsDir
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
