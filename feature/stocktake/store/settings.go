package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stocktake/feature/stocktake/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetSetting returns the value of key and whether it is set.
func (s *Store) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var setting models.Setting
	err := s.conn(ctx).Where("setting_key = ?", key).Take(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load setting %s: %w", key, err)
	}
	return setting.Value, true, nil
}

// PutSetting stores value under key.
func (s *Store) PutSetting(ctx context.Context, key, value, by string) error {
	setting := models.Setting{Key: key, Value: value, UpdatedBy: by, UpdatedAt: time.Now().UTC()}
	err := s.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_by", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("failed to store setting %s: %w", key, err)
	}
	return nil
}
