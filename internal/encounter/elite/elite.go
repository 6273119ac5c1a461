// Package elite upgrades spawned units to elite variants.
package elite

import (
	"math/rand"
	"strings"

	"github.com/louisbranch/emberdelve/internal/encounter/domain"
)

// DefaultBaseChance is the elite roll probability on the first two floors.
const DefaultBaseChance = 0.10

// Elite stat multipliers. Each stat is multiplied then truncated
// independently so results stay reproducible.
const (
	HpMultiplier      = 1.5
	AttackMultiplier  = 1.25
	DefenseMultiplier = 1.2
	XpMultiplier      = 2.0
)

// Display color shift per channel for elite units.
const (
	colorShiftR = 1.2
	colorShiftG = 1.15
	colorShiftB = 1.10
)

// NamePrefix marks elite units in their display name.
const NamePrefix = "Elite "

// SpawnChance returns the elite probability for a floor. The chance is
// banded, not continuous: base on floors 1-2, +0.05 on floors 3-4, +0.10
// from floor 5 on.
func SpawnChance(floor int, baseChance float64) float64 {
	switch {
	case floor <= 2:
		return baseChance
	case floor <= 4:
		return baseChance + 0.05
	default:
		return baseChance + 0.10
	}
}

// IsEliteSpawn rolls whether a spawn on the given floor upgrades to elite.
func IsEliteSpawn(rng *rand.Rand, floor int, baseChance float64) bool {
	return rng.Float64() < SpawnChance(floor, baseChance)
}

// ApplyEliteModifiers scales a stat block by the elite multipliers. Each stat
// is multiplied then truncated on its own; identical input always yields
// identical output.
func ApplyEliteModifiers(hp, attack, defense, xp int) (int, int, int, int) {
	return int(float64(hp) * HpMultiplier),
		int(float64(attack) * AttackMultiplier),
		int(float64(defense) * DefenseMultiplier),
		int(float64(xp) * XpMultiplier)
}

// MakeEnemyElite upgrades a spawned unit in place: boosted stats, full heal
// to the new max hp, "Elite " name prefix, and a brightened display color.
// Calling it on a unit that is already elite is a no-op, so the name prefix
// is never doubled.
func MakeEnemyElite(u *domain.SpawnedUnit) {
	if u == nil || u.Elite {
		return
	}

	u.Elite = true
	u.MaxHp, u.Attack, u.Defense, u.Xp = ApplyEliteModifiers(u.MaxHp, u.Attack, u.Defense, u.Xp)
	u.Hp = u.MaxHp

	if !strings.HasPrefix(u.Name, NamePrefix) {
		u.Name = NamePrefix + u.Name
	}
	u.Color = u.Color.Scale(colorShiftR, colorShiftG, colorShiftB)
}
