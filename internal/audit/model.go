package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	KindRegister    = "REGISTER"
	KindLogin       = "LOGIN"
	KindLoginFailed = "LOGIN_FAILED"
)

// Event is append-only. UserID is nil when the attempt never resolved
// to a user (unknown email). Labels carry short machine-readable
// reasons, e.g. "password_mismatch".
type Event struct {
	ID        uint64         `gorm:"primaryKey" json:"id"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Email     string         `gorm:"index;not null" json:"email"`
	Kind      string         `gorm:"not null" json:"kind"`
	Labels    pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"labels"`
	CreatedAt time.Time      `gorm:"index;not null;default:now()" json:"created_at"`
}

func (Event) TableName() string { return "auth_events" }
