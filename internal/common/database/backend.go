// Package database dials the stores and search cluster the admissions
// backends are built on.
package database

import "context"

// Backend is a dialled connection that can be health-checked and closed.
type Backend interface {
	Name() string
	Ping(ctx context.Context) error
	Close() error
}
