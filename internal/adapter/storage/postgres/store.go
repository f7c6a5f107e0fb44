package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/photosphere/connect-admin-console/internal/domain/storage"
	"gorm.io/gorm"
)

// headerPosition holds the column list so that an empty record still exists.
const headerPosition = 0

// FlatRecordModel is one stored row of a named record.
type FlatRecordModel struct {
	Name      string `gorm:"primaryKey;type:varchar(100)"`
	Position  int    `gorm:"primaryKey"`
	Columns   string `gorm:"type:text;not null"`
	Data      string `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (FlatRecordModel) TableName() string {
	return "flat_records"
}

// Store keeps flat records in postgres.
type Store struct {
	db *gorm.DB
}

var _ storage.FlatStore = (*Store)(nil)

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Read(ctx context.Context, name string) ([]storage.Row, error) {
	var models []FlatRecordModel
	if err := s.db.WithContext(ctx).
		Where("name = ?", name).
		Order("position asc").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(models) == 0 {
		return nil, storage.ErrNotFound
	}

	rows := make([]storage.Row, 0, len(models)-1)
	for _, m := range models {
		if m.Position == headerPosition {
			continue
		}
		row := storage.Row{}
		if err := json.Unmarshal([]byte(m.Data), &row); err != nil {
			return nil, fmt.Errorf("parse %s row %d: %w", name, m.Position, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *Store) Write(ctx context.Context, name string, columns []string, rows []storage.Row) error {
	if len(columns) == 0 {
		return fmt.Errorf("write %s: no columns", name)
	}

	header, err := json.Marshal(columns)
	if err != nil {
		return fmt.Errorf("encode %s columns: %w", name, err)
	}

	now := time.Now().UTC()
	models := make([]FlatRecordModel, 0, len(rows)+1)
	models = append(models, FlatRecordModel{
		Name:      name,
		Position:  headerPosition,
		Columns:   string(header),
		Data:      "{}",
		UpdatedAt: now,
	})
	for i, row := range rows {
		projected := make(map[string]string, len(columns))
		for _, col := range columns {
			projected[col] = row[col]
		}
		data, err := json.Marshal(projected)
		if err != nil {
			return fmt.Errorf("encode %s row %d: %w", name, i+1, err)
		}
		models = append(models, FlatRecordModel{
			Name:      name,
			Position:  i + 1,
			Columns:   string(header),
			Data:      string(data),
			UpdatedAt: now,
		})
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("name = ?", name).Delete(&FlatRecordModel{}).Error; err != nil {
			return fmt.Errorf("clear %s: %w", name, err)
		}
		if err := tx.CreateInBatches(models, 100).Error; err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		return nil
	})
}
