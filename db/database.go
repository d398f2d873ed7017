// Package db owns the gorm connection the repositories share: the
// Database handle, the postgres connect path and the schema migration.
package db

import "gorm.io/gorm"

// Database hands repositories the underlying gorm handle. Tests satisfy
// it with a sqlite-backed GormDatabase.
type Database interface {
	GetDB() *gorm.DB
}

// GormDatabase wraps one gorm connection pool.
type GormDatabase struct {
	DB *gorm.DB
}

func (g *GormDatabase) GetDB() *gorm.DB { return g.DB }
