// Package synergy grants composition-dependent stat bonuses to an encounter
// based on shared tags among its units.
package synergy

import "github.com/louisbranch/emberdelve/internal/encounter/domain"

// Bundle is the multiplier set produced for one encounter. Every field
// starts at 1.0; rules add on top.
type Bundle struct {
	AttackMult     float64
	HpMult         float64
	DefenseMult    float64
	SkillPowerMult float64
}

// Neutral returns a bundle with every multiplier at 1.0.
func Neutral() Bundle {
	return Bundle{AttackMult: 1.0, HpMult: 1.0, DefenseMult: 1.0, SkillPowerMult: 1.0}
}

// Tally counts the composition features the synergy rules read.
type Tally struct {
	Goblins    int
	Undead     int
	Cultists   int
	Beasts     int
	Elementals int
	Casters    int // caster or invoker roles
	Tanks      int // brute or tank roles
}

// Count tallies tag and role membership across the encounter's units.
func Count(units []*domain.SpawnedUnit) Tally {
	var tally Tally
	for _, u := range units {
		if u.HasTag("goblin") {
			tally.Goblins++
		}
		if u.HasTag("undead") {
			tally.Undead++
		}
		if u.HasTag("cultist") {
			tally.Cultists++
		}
		if u.HasTag("beast") {
			tally.Beasts++
		}
		if u.HasTag("elemental") {
			tally.Elementals++
		}
		if u.Role.IsCasterFamily() {
			tally.Casters++
		}
		if u.Role.IsBruteFamily() {
			tally.Tanks++
		}
	}
	return tally
}

// undeadHpBonusCap hard-caps the undead hp synergy at +25%.
const undeadHpBonusCap = 0.25

// Calculate computes the multiplier bundle for one encounter. The rules are
// independent and each writes to its own accumulator, so their order does
// not matter; simultaneous skill-power triggers stack additively.
func Calculate(units []*domain.SpawnedUnit) Bundle {
	bundle := Neutral()
	tally := Count(units)

	if tally.Goblins >= 3 {
		bundle.AttackMult += 0.10
	}
	if tally.Undead >= 2 {
		bonus := 0.05 * float64(tally.Undead)
		if bonus > undeadHpBonusCap {
			bonus = undeadHpBonusCap
		}
		bundle.HpMult += bonus
	}
	if tally.Cultists >= 2 {
		bundle.SkillPowerMult += 0.05 * float64(tally.Cultists)
	}
	if tally.Elementals >= 2 {
		bundle.SkillPowerMult += 0.20
	}
	if tally.Tanks >= 2 {
		bundle.DefenseMult += 0.10 * float64(tally.Tanks)
	}
	if tally.Casters >= 2 {
		bundle.SkillPowerMult += 0.10
	}

	return bundle
}

// Apply folds the bundle into each unit. Attack and defense are multiplied
// and truncated; skill power stays a float. Max hp scales by the hp
// multiplier and current hp is rescaled to preserve the unit's existing hp
// fraction, never reset to full.
func Apply(units []*domain.SpawnedUnit, bundle Bundle) {
	for _, u := range units {
		fraction := u.HpFraction()
		u.Attack = int(float64(u.Attack) * bundle.AttackMult)
		u.Defense = int(float64(u.Defense) * bundle.DefenseMult)
		u.SkillPower *= bundle.SkillPowerMult
		u.MaxHp = int(float64(u.MaxHp) * bundle.HpMult)
		u.Hp = int(float64(u.MaxHp) * fraction)
	}
}
