// Package settings provides database operations for application settings.
//
// # Usage
//
//	repo := settings.NewRepository(db)
//	run, err := repo.IncrementInt(entities.SettingKeyRunCounter)
package settings

import (
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/mrlokans/archivist/internal/entities"
)

// Repository handles all settings database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new settings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetSetting retrieves a setting by key.
func (r *Repository) GetSetting(key string) (*entities.Setting, error) {
	var setting entities.Setting
	err := r.db.Where("key = ?", key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// GetValue returns the value of a setting, or fallback when it is not set.
func (r *Repository) GetValue(key, fallback string) string {
	setting, err := r.GetSetting(key)
	if err != nil || setting.Value == "" {
		return fallback
	}
	return setting.Value
}

// SetSetting creates or updates a setting.
func (r *Repository) SetSetting(key, value string) error {
	return setSetting(r.db, key, value)
}

// IncrementInt atomically increments an integer setting and returns the new
// value. A missing setting starts from zero.
func (r *Repository) IncrementInt(key string) (int, error) {
	var next int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var setting entities.Setting
		err := tx.Where("key = ?", key).First(&setting).Error
		current := 0
		switch {
		case err == nil:
			current, err = strconv.Atoi(setting.Value)
			if err != nil {
				return fmt.Errorf("setting %s is not an integer: %w", key, err)
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		next = current + 1
		return setSetting(tx, key, strconv.Itoa(next))
	})
	return next, err
}

// DeleteSetting removes a setting by key.
func (r *Repository) DeleteSetting(key string) error {
	return r.db.Where("key = ?", key).Delete(&entities.Setting{}).Error
}

func setSetting(db *gorm.DB, key, value string) error {
	var setting entities.Setting
	result := db.Where("key = ?", key).First(&setting)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		setting = entities.Setting{
			Key:   key,
			Value: value,
		}
		return db.Create(&setting).Error
	} else if result.Error != nil {
		return result.Error
	}

	setting.Value = value
	return db.Save(&setting).Error
}
