// internal/store/gorm.go
//
// gorm implementation of the Store interface, used with Postgres in
// production (STORE_DRIVER=postgres) and gorm's SQLite driver in tests.
// The schema is created with AutoMigrate from the gift model below.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// gift is the gorm model behind Record.
type gift struct {
	ID        string    `gorm:"primaryKey;size:26"`
	Slug      string    `gorm:"size:32;not null;uniqueIndex"`
	Config    string    `gorm:"type:text;not null"`
	Digest    string    `gorm:"size:64;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (gift) TableName() string { return "gifts" }

type gormStore struct {
	db *gorm.DB
}

// OpenPostgres connects to dsn and returns a migrated gorm-backed Store.
func OpenPostgres(dsn string) (Store, error) {
	return NewGormStore(postgres.Open(dsn))
}

// NewGormStore opens dialector, migrates the gifts table and returns a Store.
func NewGormStore(dialector gorm.Dialector) (Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	if err := db.AutoMigrate(&gift{}); err != nil {
		return nil, fmt.Errorf("auto-migrate gifts: %w", err)
	}
	return &gormStore{db: db}, nil
}

func (s *gormStore) Create(ctx context.Context, r Record) (Record, error) {
	r = prepare(r)
	row := gift{
		ID:        r.ID,
		Slug:      r.Slug,
		Config:    string(r.Config),
		Digest:    r.Digest,
		CreatedAt: r.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return Record{}, ErrConflict
		}
		return Record{}, fmt.Errorf("insert gift: %w", err)
	}
	return r, nil
}

func (s *gormStore) Get(ctx context.Context, slug string) (Record, error) {
	var row gift
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("select gift: %w", err)
	}
	return Record{
		ID:        row.ID,
		Slug:      row.Slug,
		Config:    []byte(row.Config),
		Digest:    row.Digest,
		CreatedAt: row.CreatedAt,
	}, nil
}

func (s *gormStore) Count(ctx context.Context) (int, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&gift{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count gifts: %w", err)
	}
	return int(n), nil
}

func (s *gormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
