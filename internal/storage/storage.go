// Package storage defines the persistence interfaces for encounter content.
package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/emberdelve/internal/encounter/domain"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// ContentStore persists archetype and pack definitions.
type ContentStore interface {
	PutArchetype(ctx context.Context, archetype domain.EnemyArchetype) error
	GetArchetype(ctx context.Context, id string) (domain.EnemyArchetype, error)
	ListArchetypes(ctx context.Context) ([]domain.EnemyArchetype, error)

	PutPack(ctx context.Context, pack domain.EnemyPackTemplate) error
	GetPack(ctx context.Context, id string) (domain.EnemyPackTemplate, error)
	ListPacks(ctx context.Context) ([]domain.EnemyPackTemplate, error)
}
