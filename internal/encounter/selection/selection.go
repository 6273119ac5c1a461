// Package selection picks archetypes and packs for a floor or room context
// using weighted randomized choice with a fixed fallback chain.
//
// Candidate discovery is modeled as a priority-ordered list of sources
// evaluated in sequence; the first source that yields any candidates wins.
// "No candidates" is a normal branch, never an error: the only failure mode
// is an empty registry.
package selection

import (
	"fmt"
	"math/rand"

	"github.com/louisbranch/emberdelve/internal/encounter/domain"
	"github.com/louisbranch/emberdelve/internal/encounter/registry"
)

// Room tags recognized by the weighting rules. Unrecognized tags are valid
// input and simply add no bonus.
const (
	RoomTagLair      = "lair"
	RoomTagEvent     = "event"
	RoomTagGraveyard = "graveyard"
	RoomTagSanctum   = "sanctum"
)

// Weight bonuses applied on top of an archetype's configured spawn weight.
// Bonuses stack.
const (
	lairBruteBonus     = 1.0
	eventInvokerBonus  = 0.7
	themedRoomBonus    = 1.5
	lairBeastBonus     = 1.0
	preferredRoomBonus = 1.0
)

// roomTagAffinity maps themed room tags to the archetype tag they boost.
var roomTagAffinity = map[string]string{
	RoomTagGraveyard: "undead",
	RoomTagSanctum:   "cultist",
}

// Selector chooses spawns from a registry.
type Selector struct {
	reg *registry.Registry
}

// New creates a selector over the given registry.
func New(reg *registry.Registry) *Selector {
	return &Selector{reg: reg}
}

// candidateSource produces one batch of selection candidates.
type candidateSource func() []domain.EnemyArchetype

// firstNonEmpty evaluates sources in order and returns the first non-empty
// candidate set.
func firstNonEmpty(sources ...candidateSource) []domain.EnemyArchetype {
	for _, source := range sources {
		if candidates := source(); len(candidates) > 0 {
			return candidates
		}
	}
	return nil
}

// ChooseArchetypeForFloor picks one archetype for the given floor and room
// tag. Given at least one registered archetype it always returns a result:
// spawn-range candidates first, then the legacy tier band, then the whole
// registry.
func (s *Selector) ChooseArchetypeForFloor(rng *rand.Rand, floor int, roomTag string) (domain.EnemyArchetype, error) {
	if s.reg.Empty() {
		return domain.EnemyArchetype{}, registry.ErrEmpty
	}

	candidates := firstNonEmpty(
		func() []domain.EnemyArchetype { return s.reg.ArchetypesForFloor(floor) },
		func() []domain.EnemyArchetype { return s.reg.ArchetypesByTier(domain.TierForFloor(floor)) },
		s.reg.Archetypes,
	)

	return pickWeighted(rng, candidates, func(a domain.EnemyArchetype) float64 {
		return archetypeWeight(a, roomTag)
	}), nil
}

// ChooseArchetypeForPlayerLevel picks one archetype appropriate for a player
// level, substituting the level for the floor in the spawn-range filters. A
// tag-preference pass runs ahead of the usual fallback chain, and excluded
// tags are filtered at every stage. The final stage ignores exclusions so a
// result is still guaranteed.
func (s *Selector) ChooseArchetypeForPlayerLevel(rng *rand.Rand, playerLevel int, preferredTags, excludedTags []string) (domain.EnemyArchetype, error) {
	if s.reg.Empty() {
		return domain.EnemyArchetype{}, registry.ErrEmpty
	}

	candidates := firstNonEmpty(
		func() []domain.EnemyArchetype {
			return withoutTags(withAnyTag(s.reg.ArchetypesForFloor(playerLevel), preferredTags), excludedTags)
		},
		func() []domain.EnemyArchetype {
			return withoutTags(s.reg.ArchetypesForFloor(playerLevel), excludedTags)
		},
		func() []domain.EnemyArchetype {
			return withoutTags(s.reg.ArchetypesByTier(domain.TierForFloor(playerLevel)), excludedTags)
		},
		func() []domain.EnemyArchetype {
			return withoutTags(s.reg.Archetypes(), excludedTags)
		},
		s.reg.Archetypes,
	)

	return pickWeighted(rng, candidates, func(a domain.EnemyArchetype) float64 {
		return a.SpawnWeight
	}), nil
}

// ChoosePackForFloor picks one pack whose members are each individually
// eligible for the floor, falling back to the floor's tier band. When no
// registered pack qualifies it synthesizes a single-member pseudo-pack around
// ChooseArchetypeForFloor, so the call never fails with packs missing.
func (s *Selector) ChoosePackForFloor(rng *rand.Rand, floor int, roomTag string) (domain.EnemyPackTemplate, error) {
	if s.reg.Empty() {
		return domain.EnemyPackTemplate{}, registry.ErrEmpty
	}

	candidates := s.eligiblePacks(floor)
	if len(candidates) == 0 {
		candidates = s.packsByTier(domain.TierForFloor(floor))
	}
	if len(candidates) == 0 {
		archetype, err := s.ChooseArchetypeForFloor(rng, floor, roomTag)
		if err != nil {
			return domain.EnemyPackTemplate{}, err
		}
		return domain.EnemyPackTemplate{
			ID:          fmt.Sprintf("pseudo_%s", archetype.ID),
			Tier:        archetype.EffectiveTier(),
			MemberIDs:   []string{archetype.ID},
			Weight:      1.0,
			Synthesized: true,
		}, nil
	}

	pack := pickWeighted(rng, candidates, func(p domain.EnemyPackTemplate) float64 {
		weight := p.Weight
		if p.PreferredRoomTag != "" && p.PreferredRoomTag == roomTag {
			weight += preferredRoomBonus
		}
		return weight
	})
	return pack, nil
}

// eligiblePacks returns packs whose every member satisfies the floor's spawn
// range.
func (s *Selector) eligiblePacks(floor int) []domain.EnemyPackTemplate {
	var out []domain.EnemyPackTemplate
	for _, p := range s.reg.Packs() {
		if s.packEligible(p, floor) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Selector) packEligible(p domain.EnemyPackTemplate, floor int) bool {
	for _, memberID := range p.MemberIDs {
		member, err := s.reg.Archetype(memberID)
		if err != nil || !member.EligibleForFloor(floor) {
			return false
		}
	}
	return true
}

func (s *Selector) packsByTier(tier int) []domain.EnemyPackTemplate {
	var out []domain.EnemyPackTemplate
	for _, p := range s.reg.Packs() {
		if p.EffectiveTier() == tier {
			out = append(out, p)
		}
	}
	return out
}

// archetypeWeight computes the selection weight for an archetype in a room
// context: the configured spawn weight plus stacking room bonuses.
func archetypeWeight(a domain.EnemyArchetype, roomTag string) float64 {
	weight := a.SpawnWeight
	if roomTag == RoomTagLair && a.Role.IsBruteFamily() {
		weight += lairBruteBonus
	}
	if roomTag == RoomTagEvent && a.Role.IsInvokerFamily() {
		weight += eventInvokerBonus
	}
	if affinity, ok := roomTagAffinity[roomTag]; ok && a.HasTag(affinity) {
		weight += themedRoomBonus
	}
	if roomTag == RoomTagLair && a.HasTag("beast") {
		weight += lairBeastBonus
	}
	return weight
}

// pickWeighted draws one candidate via weighted categorical sampling.
// Weights need not sum to 1. When every weight is zero or negative the draw
// degrades to uniform.
func pickWeighted[T any](rng *rand.Rand, candidates []T, weight func(T) float64) T {
	total := 0.0
	for _, c := range candidates {
		if w := weight(c); w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return candidates[rng.Intn(len(candidates))]
	}

	draw := rng.Float64() * total
	for _, c := range candidates {
		w := weight(c)
		if w <= 0 {
			continue
		}
		draw -= w
		if draw < 0 {
			return c
		}
	}
	return candidates[len(candidates)-1]
}

// withAnyTag filters candidates to those carrying at least one of the tags.
// An empty tag list yields no candidates so the preference pass falls
// through.
func withAnyTag(candidates []domain.EnemyArchetype, tags []string) []domain.EnemyArchetype {
	if len(tags) == 0 {
		return nil
	}
	var out []domain.EnemyArchetype
	for _, a := range candidates {
		for _, tag := range tags {
			if a.HasTag(tag) {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// withoutTags filters out candidates carrying any of the excluded tags.
func withoutTags(candidates []domain.EnemyArchetype, excluded []string) []domain.EnemyArchetype {
	if len(excluded) == 0 {
		return candidates
	}
	var out []domain.EnemyArchetype
	for _, a := range candidates {
		keep := true
		for _, tag := range excluded {
			if a.HasTag(tag) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, a)
		}
	}
	return out
}
