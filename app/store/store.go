// Package store provides persistent storage for per-profile preferences.
package store

import (
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when a key is not found in the store.
var ErrNotFound = errors.New("key not found")

// DBType identifies the database engine behind a Store.
type DBType int

// supported database engines
const (
	DBTypeSQLite DBType = iota
	DBTypePostgres
)

// Entry is a stored preference with its metadata.
type Entry struct {
	Profile   string    `db:"profile" json:"profile"`
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RWLocker is a lock serializing store access where the engine needs it.
type RWLocker interface {
	sync.Locker
	RLock()
	RUnlock()
}

// noopLocker is used for engines handling concurrency on their own.
type noopLocker struct{}

func (noopLocker) Lock()    {}
func (noopLocker) Unlock()  {}
func (noopLocker) RLock()   {}
func (noopLocker) RUnlock() {}
