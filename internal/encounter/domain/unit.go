package domain

import "maps"

// SpawnedUnit is one battle-ready unit produced for a single encounter. It is
// owned exclusively by the calling battle-setup routine and discarded when
// the battle ends.
type SpawnedUnit struct {
	ID          string
	ArchetypeID string
	Name        string
	Role        Role
	AIProfile   string

	Hp         int
	MaxHp      int
	Attack     int
	Defense    int
	Xp         int
	Initiative int

	// SkillPower is a float multiplier applied by the battle resolver to
	// skill damage. Synergy bonuses accumulate here.
	SkillPower float64

	SkillIDs    []string
	Tags        []string
	Resistances map[string]float64

	Elite  bool
	Allied bool
	Color  Color
}

// HasTag reports whether the unit inherited the given tag.
func (u *SpawnedUnit) HasTag(tag string) bool {
	for _, t := range u.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HpFraction returns current hp as a fraction of max hp, 1.0 when max is 0.
func (u *SpawnedUnit) HpFraction() float64 {
	if u.MaxHp <= 0 {
		return 1.0
	}
	return float64(u.Hp) / float64(u.MaxHp)
}

// CloneResistances returns a copy of a resistance map so spawned units never
// alias the registered archetype's map.
func CloneResistances(src map[string]float64) map[string]float64 {
	if src == nil {
		return nil
	}
	dst := make(map[string]float64, len(src))
	maps.Copy(dst, src)
	return dst
}
