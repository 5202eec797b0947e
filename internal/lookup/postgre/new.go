package postgres

import (
	"gorm.io/gorm"

	"visitor-alert-srv/internal/lookup"
	"visitor-alert-srv/pkg/log"
)

type implResolver struct {
	l  log.Logger
	db *gorm.DB
}

// New creates a Postgres-backed Resolver.
func New(l log.Logger, db *gorm.DB) lookup.Resolver {
	return &implResolver{
		l:  l,
		db: db,
	}
}
