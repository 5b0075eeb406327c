// Package archive keeps generated stories for a limited time in sqlite.
package archive

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultTTL is how long a saved story stays retrievable.
const DefaultTTL = 48 * time.Hour

var (
	ErrNotFound     = errors.New("story not found")
	ErrExpired      = errors.New("story has expired")
	ErrEmptyContent = errors.New("story content is required")
)

// Story is one archived story.
type Story struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `json:"timestamp"`
	ExpiresAt time.Time `gorm:"index" json:"expiresAt"`
}

// Open opens (or creates) the sqlite database at path and migrates the schema.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Story{}); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}

// Store is the story archive repository.
type Store struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// New returns a Store over db. A non-positive ttl means DefaultTTL.
func New(db *gorm.DB, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{db: db, ttl: ttl, now: time.Now}
}

// TTL returns the retention period.
func (s *Store) TTL() time.Duration { return s.ttl }

// Create saves content under a new id.
func (s *Store) Create(ctx context.Context, content string) (*Story, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	now := s.now()
	st := &Story{
		ID:        uuid.NewString(),
		Content:   content,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.db.WithContext(ctx).Create(st).Error; err != nil {
		return nil, err
	}
	log.Printf("[archive] story saved: %s", st.ID)
	return st, nil
}

// Get returns the story with id. An expired story is removed and reported as ErrExpired.
func (s *Store) Get(ctx context.Context, id string) (*Story, error) {
	st, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.expired(st) {
		if err := s.Delete(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrExpired
	}
	return st, nil
}

// Append adds content to the end of a live story and restarts its TTL.
func (s *Store) Append(ctx context.Context, id, content string) (*Story, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	st, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	st.Content += content
	st.ExpiresAt = s.now().Add(s.ttl)
	if err := s.db.WithContext(ctx).Model(st).Updates(map[string]any{
		"content":    st.Content,
		"expires_at": st.ExpiresAt,
	}).Error; err != nil {
		return nil, err
	}
	return st, nil
}

// Delete removes the story with id. Deleting a missing story is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&Story{}).Error
}

// Cleanup removes every expired story and returns how many were removed.
func (s *Store) Cleanup(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at < ?", s.now()).Delete(&Story{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("[archive] cleanup removed %d expired stories", res.RowsAffected)
	}
	return res.RowsAffected, nil
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) find(ctx context.Context, id string) (*Story, error) {
	var st Story
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Store) expired(st *Story) bool {
	return st.ExpiresAt.Before(s.now())
}
