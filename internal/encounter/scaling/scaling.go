// Package scaling maps an archetype and a dungeon floor to concrete unit
// stats.
package scaling

import (
	"github.com/google/uuid"
	"github.com/louisbranch/emberdelve/internal/encounter/domain"
)

// Stats is the concrete stat block for one floor.
type Stats struct {
	Hp         int
	Attack     int
	Defense    int
	Xp         int
	Initiative int
}

// initiativeGrowthPerFloor caps enemy initiative growth so enemies cannot
// structurally out-pace the player's own initiative curve.
const initiativeGrowthPerFloor = 0.5

// ComputeScaledStats scales the archetype's base stats to the given floor.
//
// Floor is clamped to >= 1. Each stat is base + per_floor_rate * (floor-1),
// truncated to an integer. Initiative is additionally clamped to
// base + floor((floor-1) * 0.5): the raw per-floor rate never buys more than
// half a point of initiative per floor.
func ComputeScaledStats(a domain.EnemyArchetype, floor int) Stats {
	if floor < 1 {
		floor = 1
	}
	steps := float64(floor - 1)

	initiative := int(float64(a.BaseInitiative) + a.InitiativePerFloor*steps)
	initiativeCap := a.BaseInitiative + int(steps*initiativeGrowthPerFloor)
	if initiative > initiativeCap {
		initiative = initiativeCap
	}

	return Stats{
		Hp:         int(float64(a.BaseHp) + a.HpPerFloor*steps),
		Attack:     int(float64(a.BaseAttack) + a.AttackPerFloor*steps),
		Defense:    int(float64(a.BaseDefense) + a.DefensePerFloor*steps),
		Xp:         int(float64(a.BaseXp) + a.XpPerFloor*steps),
		Initiative: initiative,
	}
}

// NewUnit instantiates a battle-ready unit from an archetype at the given
// floor. The unit owns copies of the archetype's slices and maps.
func NewUnit(a domain.EnemyArchetype, floor int) *domain.SpawnedUnit {
	stats := ComputeScaledStats(a, floor)
	return &domain.SpawnedUnit{
		ID:          uuid.NewString(),
		ArchetypeID: a.ID,
		Name:        a.Name,
		Role:        a.Role,
		AIProfile:   a.AIProfile,
		Hp:          stats.Hp,
		MaxHp:       stats.Hp,
		Attack:      stats.Attack,
		Defense:     stats.Defense,
		Xp:          stats.Xp,
		Initiative:  stats.Initiative,
		SkillPower:  1.0,
		SkillIDs:    append([]string(nil), a.SkillIDs...),
		Tags:        append([]string(nil), a.Tags...),
		Resistances: domain.CloneResistances(a.Resistances),
		Color:       a.Color,
	}
}
