package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Aaryan1901/Gigyasa-backend/internal/audit"
	"github.com/Aaryan1901/Gigyasa-backend/internal/auth"
)

func Connect(dsn string) (*gorm.DB, error) {
	// TranslateError turns the driver's duplicate-key failure into
	// gorm.ErrDuplicatedKey, which the directory maps to a conflict.
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&auth.User{},
		&audit.Event{},
	); err != nil {
		return err
	}

	// AutoMigrate already creates the unique index on users(email);
	// emails are lower-cased before storage so it is effectively
	// case-insensitive.
	stmts := []string{
		`create index if not exists idx_auth_events_user_created on auth_events(user_id, created_at desc);`,
		`create index if not exists idx_auth_events_created on auth_events(created_at);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
