package domain

import (
	"fmt"

	apperrors "github.com/louisbranch/emberdelve/internal/errors"
)

// Combat strength bounds for roaming party types.
const (
	CombatStrengthMin = 1
	CombatStrengthMax = 5
)

// ErrInvalidCombatStrength indicates combat strength is outside 1..5.
var ErrInvalidCombatStrength = apperrors.New(apperrors.CodePartyInvalidStrength, "combat strength must be in range 1..5")

// PartyType describes a category of roaming overworld party.
type PartyType struct {
	ID             string
	Name           string
	CombatStrength int
	// BattleUnitTemplateID optionally pins every converted unit to one
	// archetype. Empty means level-appropriate selection.
	BattleUnitTemplateID string
	// Allied party types convert to ally units instead of enemies.
	Allied bool
}

// Validate checks the party type invariants.
func (t PartyType) Validate() error {
	if t.CombatStrength < CombatStrengthMin || t.CombatStrength > CombatStrengthMax {
		return apperrors.WithMetadata(apperrors.CodePartyInvalidStrength,
			fmt.Sprintf("party type %q has combat strength %d, must be in range %d..%d",
				t.ID, t.CombatStrength, CombatStrengthMin, CombatStrengthMax),
			map[string]string{"PartyType": t.ID})
	}
	return nil
}

// RoamingParty is one concrete overworld party instance, consumed read-only.
type RoamingParty struct {
	ID     string
	TypeID string
	Name   string
}

// PlayerSnapshot is the read-only view of the player party used to size
// encounters.
type PlayerSnapshot struct {
	Level          int
	CompanionCount int
}

// PartySize returns the effective player party size: the player plus
// companions, never below 2.
func (s PlayerSnapshot) PartySize() int {
	size := 1 + s.CompanionCount
	if size < 2 {
		return 2
	}
	return size
}
