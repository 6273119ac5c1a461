// Package registry holds the write-once catalog of enemy archetypes and pack
// templates.
//
// Registries are populated during startup and never mutated afterward, so
// concurrent readers need no locking once initialization finishes. Tests
// construct isolated registries instead of sharing process-global state.
package registry

import (
	"fmt"

	"github.com/louisbranch/emberdelve/internal/encounter/domain"
	apperrors "github.com/louisbranch/emberdelve/internal/errors"
)

var (
	// ErrEmpty indicates no archetypes were registered at all. This is the
	// only fatal configuration state and is reported before gameplay begins.
	ErrEmpty = apperrors.New(apperrors.CodeRegistryEmpty, "registry has no archetypes")
)

// Registry is the catalog of archetype and pack definitions, keyed by id.
type Registry struct {
	archetypes   map[string]domain.EnemyArchetype
	archetypeIDs []string
	packs        map[string]domain.EnemyPackTemplate
	packIDs      []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		archetypes: make(map[string]domain.EnemyArchetype),
		packs:      make(map[string]domain.EnemyPackTemplate),
	}
}

// RegisterArchetype adds an archetype definition. Re-registering an id fails
// so content bugs cannot silently overwrite definitions.
func (r *Registry) RegisterArchetype(a domain.EnemyArchetype) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if _, ok := r.archetypes[a.ID]; ok {
		return apperrors.WithMetadata(apperrors.CodeRegistryDuplicateID,
			fmt.Sprintf("archetype %q is already registered", a.ID),
			map[string]string{"Archetype": a.ID})
	}
	r.archetypes[a.ID] = a
	r.archetypeIDs = append(r.archetypeIDs, a.ID)
	return nil
}

// RegisterPack adds a pack template. Every member id must already resolve to
// a registered archetype.
func (r *Registry) RegisterPack(p domain.EnemyPackTemplate) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, ok := r.packs[p.ID]; ok {
		return apperrors.WithMetadata(apperrors.CodeRegistryDuplicateID,
			fmt.Sprintf("pack %q is already registered", p.ID),
			map[string]string{"Pack": p.ID})
	}
	for _, memberID := range p.MemberIDs {
		if _, ok := r.archetypes[memberID]; !ok {
			return apperrors.WithMetadata(apperrors.CodePackUnknownMember,
				fmt.Sprintf("pack %q references unknown archetype %q", p.ID, memberID),
				map[string]string{"Pack": p.ID, "Member": memberID})
		}
	}
	r.packs[p.ID] = p
	r.packIDs = append(r.packIDs, p.ID)
	return nil
}

// Archetype looks up an archetype by id.
func (r *Registry) Archetype(id string) (domain.EnemyArchetype, error) {
	a, ok := r.archetypes[id]
	if !ok {
		return domain.EnemyArchetype{}, apperrors.WithMetadata(apperrors.CodeRegistryNotFound,
			fmt.Sprintf("archetype %q is not registered", id),
			map[string]string{"Archetype": id})
	}
	return a, nil
}

// Pack looks up a pack template by id.
func (r *Registry) Pack(id string) (domain.EnemyPackTemplate, error) {
	p, ok := r.packs[id]
	if !ok {
		return domain.EnemyPackTemplate{}, apperrors.WithMetadata(apperrors.CodeRegistryNotFound,
			fmt.Sprintf("pack %q is not registered", id),
			map[string]string{"Pack": id})
	}
	return p, nil
}

// Archetypes returns every registered archetype in registration order.
func (r *Registry) Archetypes() []domain.EnemyArchetype {
	out := make([]domain.EnemyArchetype, 0, len(r.archetypeIDs))
	for _, id := range r.archetypeIDs {
		out = append(out, r.archetypes[id])
	}
	return out
}

// Packs returns every registered pack template in registration order.
func (r *Registry) Packs() []domain.EnemyPackTemplate {
	out := make([]domain.EnemyPackTemplate, 0, len(r.packIDs))
	for _, id := range r.packIDs {
		out = append(out, r.packs[id])
	}
	return out
}

// ArchetypesByTag returns archetypes carrying the given tag.
func (r *Registry) ArchetypesByTag(tag string) []domain.EnemyArchetype {
	var out []domain.EnemyArchetype
	for _, id := range r.archetypeIDs {
		if a := r.archetypes[id]; a.HasTag(tag) {
			out = append(out, a)
		}
	}
	return out
}

// ArchetypesByDifficulty returns archetypes whose difficulty level falls in
// [min, max]. A max of 0 leaves the range open-ended.
func (r *Registry) ArchetypesByDifficulty(min, max int) []domain.EnemyArchetype {
	var out []domain.EnemyArchetype
	for _, id := range r.archetypeIDs {
		a := r.archetypes[id]
		if a.DifficultyLevel < min {
			continue
		}
		if max != 0 && a.DifficultyLevel > max {
			continue
		}
		out = append(out, a)
	}
	return out
}

// ArchetypesForFloor returns archetypes whose spawn interval contains floor.
func (r *Registry) ArchetypesForFloor(floor int) []domain.EnemyArchetype {
	var out []domain.EnemyArchetype
	for _, id := range r.archetypeIDs {
		if a := r.archetypes[id]; a.EligibleForFloor(floor) {
			out = append(out, a)
		}
	}
	return out
}

// ArchetypesByTier returns archetypes whose effective tier matches.
func (r *Registry) ArchetypesByTier(tier int) []domain.EnemyArchetype {
	var out []domain.EnemyArchetype
	for _, id := range r.archetypeIDs {
		if a := r.archetypes[id]; a.EffectiveTier() == tier {
			out = append(out, a)
		}
	}
	return out
}

// Empty reports whether no archetypes are registered.
func (r *Registry) Empty() bool {
	return len(r.archetypeIDs) == 0
}

// Len returns the number of registered archetypes.
func (r *Registry) Len() int {
	return len(r.archetypeIDs)
}
