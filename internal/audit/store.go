package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Sink interface {
	Record(ctx context.Context, ev Event) error
	RecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Event, error)
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Store struct {
	DB *gorm.DB
}

func (s *Store) Record(ctx context.Context, ev Event) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}
	return s.DB.WithContext(ctx).Create(&ev).Error
}

func (s *Store) RecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Event, error) {
	var out []Event
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (s *Store) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.DB.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&Event{})
	return res.RowsAffected, res.Error
}
