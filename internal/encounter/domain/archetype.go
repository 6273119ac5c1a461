// Package domain defines the value types of the encounter engine: enemy
// archetypes, pack templates, roaming parties, and spawned battle units.
package domain

import (
	"fmt"
	"slices"

	apperrors "github.com/louisbranch/emberdelve/internal/errors"
)

var (
	// ErrEmptyArchetypeID indicates an archetype is missing its id.
	ErrEmptyArchetypeID = apperrors.New(apperrors.CodeArchetypeEmptyID, "archetype id is required")
	// ErrInvalidHp indicates base hp is not positive.
	ErrInvalidHp = apperrors.New(apperrors.CodeArchetypeInvalidHp, "base hp must be positive")
	// ErrInvalidAttack indicates base attack is not positive.
	ErrInvalidAttack = apperrors.New(apperrors.CodeArchetypeInvalidAttack, "base attack must be positive")
	// ErrInvalidDifficulty indicates difficulty_level is not positive.
	ErrInvalidDifficulty = apperrors.New(apperrors.CodeArchetypeInvalidDifficulty, "difficulty level must be positive")
	// ErrInvalidSpawnRange indicates the spawn floor interval is inverted.
	ErrInvalidSpawnRange = apperrors.New(apperrors.CodeArchetypeInvalidSpawnRange, "spawn min floor must not exceed spawn max floor")
)

// EnemyArchetype is a reusable enemy species definition. Archetypes are
// registered once at startup and immutable thereafter.
type EnemyArchetype struct {
	ID        string
	Name      string
	Role      Role
	AIProfile string

	BaseHp         int
	BaseAttack     int
	BaseDefense    int
	BaseXp         int
	BaseInitiative int

	HpPerFloor         float64
	AttackPerFloor     float64
	DefensePerFloor    float64
	XpPerFloor         float64
	InitiativePerFloor float64

	SkillIDs []string

	DifficultyLevel int
	// SpawnMinFloor..SpawnMaxFloor is the floor interval the archetype may
	// spawn in. SpawnMaxFloor 0 means unbounded.
	SpawnMinFloor int
	SpawnMaxFloor int
	SpawnWeight   float64

	// Tier is the legacy 3-band classification. Display-only hint; when 0
	// it is derived from DifficultyLevel.
	Tier int

	Tags            []string
	Resistances     map[string]float64
	UniqueMechanics []string
	Color           Color
}

// Validate checks the archetype invariants.
func (a EnemyArchetype) Validate() error {
	if a.ID == "" {
		return ErrEmptyArchetypeID
	}
	if a.BaseHp <= 0 {
		return apperrors.WithMetadata(apperrors.CodeArchetypeInvalidHp,
			fmt.Sprintf("archetype %q has base hp %d, must be positive", a.ID, a.BaseHp),
			map[string]string{"Archetype": a.ID})
	}
	if a.BaseAttack <= 0 {
		return apperrors.WithMetadata(apperrors.CodeArchetypeInvalidAttack,
			fmt.Sprintf("archetype %q has base attack %d, must be positive", a.ID, a.BaseAttack),
			map[string]string{"Archetype": a.ID})
	}
	if a.DifficultyLevel <= 0 {
		return apperrors.WithMetadata(apperrors.CodeArchetypeInvalidDifficulty,
			fmt.Sprintf("archetype %q has difficulty level %d, must be positive", a.ID, a.DifficultyLevel),
			map[string]string{"Archetype": a.ID})
	}
	if a.SpawnMaxFloor != 0 && a.SpawnMinFloor > a.SpawnMaxFloor {
		return apperrors.WithMetadata(apperrors.CodeArchetypeInvalidSpawnRange,
			fmt.Sprintf("archetype %q spawn range [%d, %d] is inverted", a.ID, a.SpawnMinFloor, a.SpawnMaxFloor),
			map[string]string{"Archetype": a.ID})
	}
	return nil
}

// HasTag reports whether the archetype carries the given tag.
func (a EnemyArchetype) HasTag(tag string) bool {
	return slices.Contains(a.Tags, tag)
}

// EligibleForFloor reports whether floor falls inside the spawn interval.
// A zero SpawnMaxFloor leaves the interval open-ended.
func (a EnemyArchetype) EligibleForFloor(floor int) bool {
	if floor < a.SpawnMinFloor {
		return false
	}
	if a.SpawnMaxFloor != 0 && floor > a.SpawnMaxFloor {
		return false
	}
	return true
}

// EffectiveTier returns the explicit tier when set, otherwise the band
// derived from DifficultyLevel.
func (a EnemyArchetype) EffectiveTier() int {
	if a.Tier > 0 {
		return a.Tier
	}
	return TierForDifficulty(a.DifficultyLevel)
}

// TierForDifficulty maps a difficulty level to the legacy 3-band tier.
func TierForDifficulty(difficulty int) int {
	switch {
	case difficulty <= 2:
		return 1
	case difficulty <= 4:
		return 2
	default:
		return 3
	}
}

// TierForFloor maps a floor to the legacy tier band used by the selection
// fallback: tier 1 through floor 2, tier 2 through floor 4, tier 3 beyond.
func TierForFloor(floor int) int {
	switch {
	case floor <= 2:
		return 1
	case floor <= 4:
		return 2
	default:
		return 3
	}
}
