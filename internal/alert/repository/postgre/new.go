package postgres

import (
	"time"

	"gorm.io/gorm"

	"visitor-alert-srv/internal/alert/repository"
	"visitor-alert-srv/pkg/log"
)

type implRepository struct {
	l     log.Logger
	db    *gorm.DB
	clock func() time.Time
}

// New creates a Postgres-backed alert repository.
func New(l log.Logger, db *gorm.DB) repository.Repository {
	return &implRepository{
		l:     l,
		db:    db,
		clock: time.Now,
	}
}
