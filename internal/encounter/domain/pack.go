package domain

import apperrors "github.com/louisbranch/emberdelve/internal/errors"

var (
	// ErrEmptyPackID indicates a pack template is missing its id.
	ErrEmptyPackID = apperrors.New(apperrors.CodePackEmptyID, "pack id is required")
	// ErrPackNoMembers indicates a pack template has no member archetypes.
	ErrPackNoMembers = apperrors.New(apperrors.CodePackNoMembers, "pack must have at least one member")
)

// EnemyPackTemplate is a themed, fixed-composition group of archetypes that
// spawns together. Member ids may repeat.
type EnemyPackTemplate struct {
	ID               string
	Tier             int
	MemberIDs        []string
	PreferredRoomTag string
	Weight           float64

	// Synthesized marks single-member pseudo-packs built by the selection
	// fallback rather than registered content.
	Synthesized bool
}

// Validate checks the pack invariants that do not require a registry.
// Member resolution is checked at registration time.
func (p EnemyPackTemplate) Validate() error {
	if p.ID == "" {
		return ErrEmptyPackID
	}
	if len(p.MemberIDs) == 0 {
		return ErrPackNoMembers
	}
	return nil
}

// EffectiveTier returns the explicit tier when set, defaulting to tier 1.
func (p EnemyPackTemplate) EffectiveTier() int {
	if p.Tier > 0 {
		return p.Tier
	}
	return 1
}
