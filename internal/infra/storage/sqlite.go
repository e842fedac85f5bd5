package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"webtrade_go/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage journals order submissions and OTP attempts in SQLite
type Storage struct {
	db *gorm.DB
}

// NewStorage creates a new SQLite storage instance.
// An empty path selects the per-user default location.
func NewStorage(path string) (*Storage, error) {
	dbPath := path
	if dbPath == "" {
		var err error
		dbPath, err = getDBPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve DB path: %w", err)
		}
	}

	// Ensure directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Connect to SQLite (Pure Go)
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto Migration
	if err := db.AutoMigrate(&domain.OrderSubmission{}, &domain.OtpAttempt{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db}, nil
}

// getDBPath resolves the database file path based on OS
func getDBPath() (string, error) {
	var configDir string
	var err error

	if runtime.GOOS == "windows" {
		configDir = os.Getenv("LOCALAPPDATA")
		if configDir == "" {
			configDir, err = os.UserConfigDir()
		}
	} else {
		configDir, err = os.UserConfigDir()
	}

	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "WebTrade", "data", "journal.db"), nil
}

// Close releases the underlying connection pool
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ======================================================================================
// Submission Operations
// ======================================================================================

// SaveSubmission creates or updates a submission record
func (s *Storage) SaveSubmission(sub *domain.OrderSubmission) error {
	return s.db.Save(sub).Error
}

// GetSubmission retrieves a submission by request ID
func (s *Storage) GetSubmission(requestID string) (*domain.OrderSubmission, error) {
	var sub domain.OrderSubmission
	err := s.db.First(&sub, "request_id = ?", requestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSubmissionNotFound, requestID)
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListSubmissions returns submissions oldest first, filtered by symbol when non-empty
func (s *Storage) ListSubmissions(symbol string) ([]domain.OrderSubmission, error) {
	var subs []domain.OrderSubmission
	q := s.db.Order("created_at asc")
	if symbol != "" {
		q = q.Where("symbol = ?", symbol)
	}
	err := q.Find(&subs).Error
	return subs, err
}

// MarkCanceled sets a submission's status to canceled
func (s *Storage) MarkCanceled(requestID string) error {
	res := s.db.Model(&domain.OrderSubmission{}).
		Where("request_id = ?", requestID).
		Update("status", domain.OrderStatusCanceled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrSubmissionNotFound, requestID)
	}
	return nil
}

// ======================================================================================
// OTP Operations
// ======================================================================================

// RecordOtpAttempt appends an OTP attempt
func (s *Storage) RecordOtpAttempt(attempt *domain.OtpAttempt) error {
	return s.db.Create(attempt).Error
}

// ListOtpAttempts returns attempts for a user, newest first
func (s *Storage) ListOtpAttempts(username string) ([]domain.OtpAttempt, error) {
	var attempts []domain.OtpAttempt
	err := s.db.Where("username = ?", username).Order("id desc").Find(&attempts).Error
	return attempts, err
}
