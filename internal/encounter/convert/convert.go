// Package convert turns roaming overworld parties into battle-ready unit
// lists sized to the player's party.
package convert

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/louisbranch/emberdelve/internal/encounter/domain"
	"github.com/louisbranch/emberdelve/internal/encounter/registry"
	"github.com/louisbranch/emberdelve/internal/encounter/scaling"
	"github.com/louisbranch/emberdelve/internal/encounter/selection"
	"github.com/louisbranch/emberdelve/internal/telemetry"
)

// Encounter size bounds after all scaling and category modifiers.
const (
	MinEnemies = 1
	MaxEnemies = 8
)

// Category modifiers applied to party-type ids that name a category.
const (
	swarmCountFactor = 1.5
	eliteCountFactor = 0.75
)

// xpDeflationPerEnemy deflates per-unit xp as the enemy count grows so total
// encounter xp stays roughly constant.
const xpDeflationPerEnemy = 0.3

// legacyStrengthArchetypes is the legacy combat-strength lookup table used
// when weighted selection fails.
var legacyStrengthArchetypes = map[int]string{
	1: "goblin",
	2: "dire_wolf",
	3: "skeleton",
	4: "ogre",
	5: "stone_golem",
}

// Allied unit stat factor ranges, interpolated linearly across combat
// strength 1..5.
const (
	allyHpFactorMin      = 0.7
	allyHpFactorMax      = 1.2
	allyAttackFactorMin  = 0.6
	allyAttackFactorMax  = 1.1
	allyDefenseFactorMin = 0.8
	allyDefenseFactorMax = 1.3
)

// Converter builds battle unit lists from roaming parties.
type Converter struct {
	reg      *registry.Registry
	selector *selection.Selector
	emitter  *telemetry.Emitter
}

// New creates a converter over the given registry. The emitter may be nil.
func New(reg *registry.Registry, emitter *telemetry.Emitter) *Converter {
	return &Converter{
		reg:      reg,
		selector: selection.New(reg),
		emitter:  emitter,
	}
}

// ConvertPartyToBattleUnits produces the unit list for a battle against (or
// alongside) a roaming party. Enemy counts scale with the player party; the
// absence of one specific archetype never fails a battle start, only an
// empty registry does.
func (c *Converter) ConvertPartyToBattleUnits(rng *rand.Rand, party domain.RoamingParty, partyType domain.PartyType, snapshot domain.PlayerSnapshot) ([]*domain.SpawnedUnit, error) {
	if err := partyType.Validate(); err != nil {
		return nil, err
	}
	if partyType.Allied {
		return c.convertAllied(rng, party, partyType, snapshot), nil
	}

	total := c.enemyCount(rng, partyType, snapshot)
	archetype, err := c.unitArchetype(rng, partyType, snapshot)
	if err != nil {
		return nil, err
	}

	units := make([]*domain.SpawnedUnit, 0, total)
	for i := 0; i < total; i++ {
		unit := scaling.NewUnit(archetype, snapshot.Level)
		unit.Xp = deflateXp(unit.Xp, total)
		units = append(units, unit)
	}
	return units, nil
}

// enemyCount sizes the enemy side: a strength-driven base roll plus extra
// enemies for player parties above the baseline of two, clamped to [1, 8]
// before and after the category modifier.
func (c *Converter) enemyCount(rng *rand.Rand, partyType domain.PartyType, snapshot domain.PlayerSnapshot) int {
	base := rng.Intn(3+(partyType.CombatStrength-1)) + 1

	extra := 0
	if additional := snapshot.PartySize() - 2; additional > 0 {
		factor := uniform(rng, 1.0, 2.0) + uniform(rng, -0.3, 0.3)
		extra = int(float64(additional) * factor)
		if extra < 0 {
			extra = 0
		}
	}

	total := clampCount(base + extra)
	switch {
	case strings.Contains(partyType.ID, "swarm"):
		total = int(float64(total) * swarmCountFactor)
	case strings.Contains(partyType.ID, "elite"):
		total = int(float64(total) * eliteCountFactor)
		if total < MinEnemies {
			total = MinEnemies
		}
	}
	return clampCount(total)
}

// unitArchetype resolves the archetype every converted unit instantiates:
// the party type's explicit template, then level-appropriate selection, then
// the legacy strength table, then any registered archetype. Each fallback
// hop emits a warning.
func (c *Converter) unitArchetype(rng *rand.Rand, partyType domain.PartyType, snapshot domain.PlayerSnapshot) (domain.EnemyArchetype, error) {
	ctx := context.Background()

	if partyType.BattleUnitTemplateID != "" {
		archetype, err := c.reg.Archetype(partyType.BattleUnitTemplateID)
		if err == nil {
			return archetype, nil
		}
		c.emitter.Warn(ctx, "convert",
			fmt.Sprintf("battle unit template %q is not registered, selecting by level", partyType.BattleUnitTemplateID),
			map[string]string{"PartyType": partyType.ID, "Template": partyType.BattleUnitTemplateID})
	}

	archetype, err := c.selector.ChooseArchetypeForPlayerLevel(rng, snapshot.Level, nil, nil)
	if err == nil {
		return archetype, nil
	}
	c.emitter.Warn(ctx, "convert",
		fmt.Sprintf("level selection failed for party type %q, using legacy strength table", partyType.ID),
		map[string]string{"PartyType": partyType.ID, "Error": err.Error()})

	if legacyID, ok := legacyStrengthArchetypes[partyType.CombatStrength]; ok {
		if archetype, lookupErr := c.reg.Archetype(legacyID); lookupErr == nil {
			return archetype, nil
		}
	}
	c.emitter.Warn(ctx, "convert",
		fmt.Sprintf("legacy strength table has no registered archetype for strength %d", partyType.CombatStrength),
		map[string]string{"PartyType": partyType.ID})

	if all := c.reg.Archetypes(); len(all) > 0 {
		return all[0], nil
	}
	return domain.EnemyArchetype{}, registry.ErrEmpty
}

// convertAllied builds 1-2 ally units scaled off the player level with
// factor ranges interpolated across combat strength instead of an archetype
// lookup.
func (c *Converter) convertAllied(rng *rand.Rand, party domain.RoamingParty, partyType domain.PartyType, snapshot domain.PlayerSnapshot) []*domain.SpawnedUnit {
	count := partyType.CombatStrength
	if count < 1 {
		count = 1
	}
	if count > 2 {
		count = 2
	}

	level := snapshot.Level
	if level < 1 {
		level = 1
	}
	baseHp := 10 + 2*level
	baseAttack := 3 + level
	baseDefense := 1 + level/2

	t := float64(partyType.CombatStrength-domain.CombatStrengthMin) / float64(domain.CombatStrengthMax-domain.CombatStrengthMin)
	hpFactor := allyHpFactorMin + t*(allyHpFactorMax-allyHpFactorMin)
	attackFactor := allyAttackFactorMin + t*(allyAttackFactorMax-allyAttackFactorMin)
	defenseFactor := allyDefenseFactorMin + t*(allyDefenseFactorMax-allyDefenseFactorMin)

	name := party.Name
	if name == "" {
		name = partyType.Name
	}

	units := make([]*domain.SpawnedUnit, 0, count)
	for i := 0; i < count; i++ {
		hp := atLeast(int(float64(baseHp)*hpFactor), 1)
		units = append(units, &domain.SpawnedUnit{
			ID:         uuid.NewString(),
			Name:       fmt.Sprintf("%s Ally", name),
			Hp:         hp,
			MaxHp:      hp,
			Attack:     atLeast(int(float64(baseAttack)*attackFactor), 1),
			Defense:    atLeast(int(float64(baseDefense)*defenseFactor), 0),
			Initiative: 3 + level/4,
			SkillPower: 1.0,
			Allied:     true,
		})
	}
	return units
}

// deflateXp reduces per-unit xp by 1/(1+(n-1)*0.3) so total encounter xp
// stays roughly constant regardless of enemy count. Never drops below 1.
func deflateXp(xp, enemyCount int) int {
	deflated := int(float64(xp) / (1 + float64(enemyCount-1)*xpDeflationPerEnemy))
	return atLeast(deflated, 1)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func clampCount(n int) int {
	if n < MinEnemies {
		return MinEnemies
	}
	if n > MaxEnemies {
		return MaxEnemies
	}
	return n
}

func atLeast(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}
