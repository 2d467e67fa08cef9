package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SunilThagyal/fbase-api/internal/models"
)

// Store persists user records keyed by the provider-assigned account ID.
type Store struct {
	db *gorm.DB
}

func New(driver, dsn string) (*Store, error) {
	dialector, err := GetDialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto migrate
	if err := db.AutoMigrate(&models.UserRecord{}); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Upsert creates the record for the account if absent, with defaults, or
// merges the email into the existing record. createdAt, subscription status
// and billing fields of an existing record are never clobbered. Returns the
// record as stored after the write.
func (s *Store) Upsert(accountID, email string) (*models.UserRecord, error) {
	var record models.UserRecord
	err := s.db.Where("user_id = ?", accountID).First(&record).Error

	if err == nil {
		// Record exists: merge email only
		if record.Email != email {
			record.Email = email
			if err := s.db.Model(&record).Update("email", email).Error; err != nil {
				return nil, fmt.Errorf("failed to update user record: %w", err)
			}
		}
		return &record, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to query user record: %w", err)
	}

	record = models.UserRecord{
		UserID:             accountID,
		Email:              email,
		SubscriptionStatus: models.SubscriptionFree,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create user record: %w", err)
	}

	return &record, nil
}

// GetByID returns the stored record for the account, or ErrRecordNotFound
// when no record exists.
func (s *Store) GetByID(accountID string) (*models.UserRecord, error) {
	var record models.UserRecord
	if err := s.db.Where("user_id = ?", accountID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to query user record: %w", err)
	}
	return &record, nil
}

// Health verifies database connectivity
func (s *Store) Health() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
