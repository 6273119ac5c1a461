package service

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/louisbranch/emberdelve/internal/content"
	"github.com/louisbranch/emberdelve/internal/encounter/domain"
	"github.com/louisbranch/emberdelve/internal/encounter/registry"
	apperrors "github.com/louisbranch/emberdelve/internal/errors"
)

func defaultService(t *testing.T, seed int64, opts ...Option) *Service {
	t.Helper()
	reg, err := content.DefaultRegistry(nil)
	if err != nil {
		t.Fatalf("default registry: %v", err)
	}
	opts = append([]Option{WithRNG(rand.New(rand.NewSource(seed)))}, opts...)
	svc, err := New(reg, opts...)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestNewRejectsEmptyRegistry(t *testing.T) {
	_, err := New(registry.New())
	if !apperrors.IsCode(err, apperrors.CodeRegistryEmpty) {
		t.Fatalf("error = %v, want code %v", err, apperrors.CodeRegistryEmpty)
	}
}

func TestBuildFloorEncounter(t *testing.T) {
	svc := defaultService(t, 21)

	enc, err := svc.BuildFloorEncounter(2, "lair")
	if err != nil {
		t.Fatalf("build encounter: %v", err)
	}
	if enc.ID == "" {
		t.Fatal("expected an encounter id")
	}
	if len(enc.Units) != len(enc.Pack.MemberIDs) {
		t.Fatalf("unit count %d != pack size %d", len(enc.Units), len(enc.Pack.MemberIDs))
	}
	for _, u := range enc.Units {
		if u.Hp <= 0 || u.MaxHp <= 0 || u.Attack <= 0 {
			t.Fatalf("unit has degenerate stats: %+v", u)
		}
		if u.Hp != u.MaxHp {
			t.Fatalf("fresh spawns are at full hp, got %d/%d", u.Hp, u.MaxHp)
		}
	}
}

func TestBuildFloorEncounterDeterministicUnderSeed(t *testing.T) {
	a := defaultService(t, 33)
	b := defaultService(t, 33)

	for floor := 1; floor <= 10; floor++ {
		encA, err := a.BuildFloorEncounter(floor, "graveyard")
		if err != nil {
			t.Fatalf("a floor %d: %v", floor, err)
		}
		encB, err := b.BuildFloorEncounter(floor, "graveyard")
		if err != nil {
			t.Fatalf("b floor %d: %v", floor, err)
		}
		if encA.Pack.ID != encB.Pack.ID {
			t.Fatalf("floor %d: pack diverged %q vs %q", floor, encA.Pack.ID, encB.Pack.ID)
		}
		for i := range encA.Units {
			ua, ub := encA.Units[i], encB.Units[i]
			if ua.ArchetypeID != ub.ArchetypeID || ua.Hp != ub.Hp || ua.Elite != ub.Elite {
				t.Fatalf("floor %d unit %d diverged: %+v vs %+v", floor, i, ua, ub)
			}
		}
	}
}

func TestBuildFloorEncounterElitesAlwaysWithFullChance(t *testing.T) {
	svc := defaultService(t, 44, WithEliteChance(1.0))

	enc, err := svc.BuildFloorEncounter(3, "")
	if err != nil {
		t.Fatalf("build encounter: %v", err)
	}
	for _, u := range enc.Units {
		if !u.Elite {
			t.Fatalf("chance 1.0 must make every spawn elite, got %+v", u)
		}
		if !strings.HasPrefix(u.Name, "Elite ") {
			t.Fatalf("elite name = %q", u.Name)
		}
	}
}

func TestBuildFloorEncounterAppliesSynergy(t *testing.T) {
	reg := registry.New()
	goblin := domain.EnemyArchetype{
		ID: "goblin", Name: "Goblin", BaseHp: 10, BaseAttack: 10,
		DifficultyLevel: 1, SpawnMinFloor: 1, SpawnWeight: 1.0,
		Tags: []string{"goblin"},
	}
	if err := reg.RegisterArchetype(goblin); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.RegisterPack(domain.EnemyPackTemplate{
		ID: "mob", MemberIDs: []string{"goblin", "goblin", "goblin"}, Weight: 1.0,
	}); err != nil {
		t.Fatalf("register pack: %v", err)
	}

	svc, err := New(reg, WithRNG(rand.New(rand.NewSource(55))), WithEliteChance(0))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	enc, err := svc.BuildFloorEncounter(1, "")
	if err != nil {
		t.Fatalf("build encounter: %v", err)
	}
	if enc.Synergy.AttackMult != 1.10 {
		t.Fatalf("attack mult = %v, want 1.10 for three goblins", enc.Synergy.AttackMult)
	}
	for _, u := range enc.Units {
		if u.Attack != 11 { // trunc(10 * 1.10)
			t.Fatalf("attack = %d, want 11", u.Attack)
		}
	}
}

func TestComputeScaledStats(t *testing.T) {
	svc := defaultService(t, 66)

	stats, err := svc.ComputeScaledStats("goblin", 4)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	// goblin: base_hp 10 + 1.0*3 = 13, base_attack 4 + 0.7*3 = trunc(6.1) = 6
	if stats.Hp != 13 || stats.Attack != 6 {
		t.Fatalf("stats = %+v, want hp 13 attack 6", stats)
	}

	_, err = svc.ComputeScaledStats("missing", 1)
	if !apperrors.IsCode(err, apperrors.CodeRegistryNotFound) {
		t.Fatalf("error = %v, want code %v", err, apperrors.CodeRegistryNotFound)
	}
}

func TestConvertPartyThroughFacade(t *testing.T) {
	svc := defaultService(t, 77)

	units, err := svc.ConvertPartyToBattleUnits(
		domain.RoamingParty{ID: "p1", TypeID: "bandits", Name: "Red Fangs"},
		domain.PartyType{ID: "bandits", Name: "Bandits", CombatStrength: 2},
		domain.PlayerSnapshot{Level: 3, CompanionCount: 2},
	)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if len(units) < 1 || len(units) > 8 {
		t.Fatalf("count = %d, want in [1,8]", len(units))
	}
}
