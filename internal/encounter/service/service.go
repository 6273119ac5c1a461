// Package service wires the encounter engine together: registry, selection,
// elite rolls, synergy, and party conversion behind one battle-setup facade.
package service

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/louisbranch/emberdelve/internal/encounter/convert"
	"github.com/louisbranch/emberdelve/internal/encounter/domain"
	"github.com/louisbranch/emberdelve/internal/encounter/elite"
	"github.com/louisbranch/emberdelve/internal/encounter/registry"
	"github.com/louisbranch/emberdelve/internal/encounter/scaling"
	"github.com/louisbranch/emberdelve/internal/encounter/selection"
	"github.com/louisbranch/emberdelve/internal/encounter/synergy"
	"github.com/louisbranch/emberdelve/internal/platform/random"
	"github.com/louisbranch/emberdelve/internal/telemetry"
)

// Service is the encounter engine facade. It owns the shared RNG and is
// meant for single-threaded use on the simulation thread.
type Service struct {
	reg         *registry.Registry
	selector    *selection.Selector
	converter   *convert.Converter
	emitter     *telemetry.Emitter
	rng         *rand.Rand
	eliteChance float64
}

// Option configures a Service.
type Option func(*Service)

// WithRNG injects the random source. Tests pin a seeded source here.
func WithRNG(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// WithEmitter injects a telemetry emitter for operational warnings.
func WithEmitter(emitter *telemetry.Emitter) Option {
	return func(s *Service) { s.emitter = emitter }
}

// WithEliteChance overrides the base elite spawn chance.
func WithEliteChance(chance float64) Option {
	return func(s *Service) { s.eliteChance = chance }
}

// New creates the encounter service. An empty registry is a configuration
// error and fails here, before gameplay begins.
func New(reg *registry.Registry, opts ...Option) (*Service, error) {
	if reg.Empty() {
		return nil, registry.ErrEmpty
	}
	s := &Service{
		reg:         reg,
		selector:    selection.New(reg),
		eliteChance: elite.DefaultBaseChance,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = random.NewSeededRNG(0, false)
	}
	s.converter = convert.New(reg, s.emitter)
	return s, nil
}

// Encounter is one generated dungeon encounter ready for the battle
// resolver.
type Encounter struct {
	ID      string
	Floor   int
	RoomTag string
	Pack    domain.EnemyPackTemplate
	Units   []*domain.SpawnedUnit
	Synergy synergy.Bundle
}

// BuildFloorEncounter selects a pack for the floor, spawns its members with
// floor-scaled stats and elite rolls, and applies composition synergies.
func (s *Service) BuildFloorEncounter(floor int, roomTag string) (*Encounter, error) {
	pack, err := s.selector.ChoosePackForFloor(s.rng, floor, roomTag)
	if err != nil {
		return nil, err
	}

	units := make([]*domain.SpawnedUnit, 0, len(pack.MemberIDs))
	for _, memberID := range pack.MemberIDs {
		archetype, err := s.reg.Archetype(memberID)
		if err != nil {
			// Registration guarantees members resolve; a miss here means
			// the registry was mutated after startup.
			return nil, err
		}
		unit := scaling.NewUnit(archetype, floor)
		if elite.IsEliteSpawn(s.rng, floor, s.eliteChance) {
			elite.MakeEnemyElite(unit)
		}
		units = append(units, unit)
	}

	bundle := synergy.Calculate(units)
	synergy.Apply(units, bundle)

	return &Encounter{
		ID:      uuid.NewString(),
		Floor:   floor,
		RoomTag: roomTag,
		Pack:    pack,
		Units:   units,
		Synergy: bundle,
	}, nil
}

// ChooseArchetypeForFloor exposes single-archetype selection for tooling.
func (s *Service) ChooseArchetypeForFloor(floor int, roomTag string) (domain.EnemyArchetype, error) {
	return s.selector.ChooseArchetypeForFloor(s.rng, floor, roomTag)
}

// ComputeScaledStats scales a registered archetype's stats to a floor.
func (s *Service) ComputeScaledStats(archetypeID string, floor int) (scaling.Stats, error) {
	archetype, err := s.reg.Archetype(archetypeID)
	if err != nil {
		return scaling.Stats{}, err
	}
	return scaling.ComputeScaledStats(archetype, floor), nil
}

// ConvertPartyToBattleUnits converts a roaming party into battle units sized
// to the player party.
func (s *Service) ConvertPartyToBattleUnits(party domain.RoamingParty, partyType domain.PartyType, snapshot domain.PlayerSnapshot) ([]*domain.SpawnedUnit, error) {
	return s.converter.ConvertPartyToBattleUnits(s.rng, party, partyType, snapshot)
}

// Registry exposes read-only catalog access for UI and tooling.
func (s *Service) Registry() *registry.Registry {
	return s.reg
}
