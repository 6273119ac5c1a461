package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/louisbranch/emberdelve/internal/encounter/domain"
	"github.com/louisbranch/emberdelve/internal/storage"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "content.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func sampleArchetype() domain.EnemyArchetype {
	return domain.EnemyArchetype{
		ID:                 "fire_elemental",
		Name:               "Fire Elemental",
		Role:               domain.RoleCaster,
		AIProfile:          "volatile",
		BaseHp:             16,
		BaseAttack:         9,
		BaseDefense:        1,
		BaseXp:             18,
		BaseInitiative:     5,
		HpPerFloor:         1.5,
		AttackPerFloor:     1.2,
		DefensePerFloor:    0.2,
		XpPerFloor:         2.6,
		InitiativePerFloor: 0.4,
		SkillIDs:           []string{"flame_burst", "ignite"},
		DifficultyLevel:    5,
		SpawnMinFloor:      5,
		SpawnMaxFloor:      0,
		SpawnWeight:        0.9,
		Tags:               []string{"elemental"},
		Resistances:        map[string]float64{"fire": 0.0, "frost": 2.0},
		UniqueMechanics:    []string{"burns_on_contact"},
		Color:              domain.Color{R: 230, G: 110, B: 40},
	}
}

func TestArchetypeRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	want := sampleArchetype()

	if err := store.PutArchetype(ctx, want); err != nil {
		t.Fatalf("put archetype: %v", err)
	}
	got, err := store.GetArchetype(ctx, "fire_elemental")
	if err != nil {
		t.Fatalf("get archetype: %v", err)
	}

	if got.ID != want.ID || got.Name != want.Name || got.Role != want.Role || got.AIProfile != want.AIProfile {
		t.Fatalf("identity mismatch: %+v", got)
	}
	if got.BaseHp != want.BaseHp || got.BaseAttack != want.BaseAttack ||
		got.BaseDefense != want.BaseDefense || got.BaseXp != want.BaseXp ||
		got.BaseInitiative != want.BaseInitiative {
		t.Fatalf("base stats mismatch: %+v", got)
	}
	if got.HpPerFloor != want.HpPerFloor || got.AttackPerFloor != want.AttackPerFloor ||
		got.InitiativePerFloor != want.InitiativePerFloor {
		t.Fatalf("growth rates mismatch: %+v", got)
	}
	if len(got.SkillIDs) != 2 || got.SkillIDs[0] != "flame_burst" {
		t.Fatalf("skills mismatch: %v", got.SkillIDs)
	}
	if got.DifficultyLevel != 5 || got.SpawnMinFloor != 5 || got.SpawnMaxFloor != 0 || got.SpawnWeight != 0.9 {
		t.Fatalf("spawn fields mismatch: %+v", got)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "elemental" {
		t.Fatalf("tags mismatch: %v", got.Tags)
	}
	if got.Resistances["frost"] != 2.0 || got.Resistances["fire"] != 0.0 {
		t.Fatalf("resistances mismatch: %v", got.Resistances)
	}
	if len(got.UniqueMechanics) != 1 || got.UniqueMechanics[0] != "burns_on_contact" {
		t.Fatalf("unique mechanics mismatch: %v", got.UniqueMechanics)
	}
	if got.Color != want.Color {
		t.Fatalf("color mismatch: %+v", got.Color)
	}
}

func TestPutArchetypeUpserts(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	a := sampleArchetype()

	if err := store.PutArchetype(ctx, a); err != nil {
		t.Fatalf("put: %v", err)
	}
	a.BaseHp = 20
	if err := store.PutArchetype(ctx, a); err != nil {
		t.Fatalf("re-put: %v", err)
	}

	got, err := store.GetArchetype(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.BaseHp != 20 {
		t.Fatalf("base hp = %d, want updated 20", got.BaseHp)
	}
	list, err := store.ListArchetypes(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list length = %d, want 1", len(list))
	}
}

func TestPutArchetypeValidates(t *testing.T) {
	store := openStore(t)
	a := sampleArchetype()
	a.BaseHp = 0
	if err := store.PutArchetype(context.Background(), a); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestGetArchetypeNotFound(t *testing.T) {
	store := openStore(t)
	_, err := store.GetArchetype(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestPackRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	want := domain.EnemyPackTemplate{
		ID:               "cult_circle",
		Tier:             2,
		MemberIDs:        []string{"cultist", "cultist", "cult_invoker"},
		PreferredRoomTag: "sanctum",
		Weight:           1.0,
	}

	if err := store.PutPack(ctx, want); err != nil {
		t.Fatalf("put pack: %v", err)
	}
	got, err := store.GetPack(ctx, "cult_circle")
	if err != nil {
		t.Fatalf("get pack: %v", err)
	}
	if got.ID != want.ID || got.Tier != want.Tier || got.PreferredRoomTag != want.PreferredRoomTag || got.Weight != want.Weight {
		t.Fatalf("pack mismatch: %+v", got)
	}
	if len(got.MemberIDs) != 3 || got.MemberIDs[2] != "cult_invoker" {
		t.Fatalf("members mismatch: %v", got.MemberIDs)
	}

	_, err = store.GetPack(ctx, "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestListOrdersByID(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	ids := []string{"zombie", "goblin", "ogre"}
	for _, id := range ids {
		a := sampleArchetype()
		a.ID = id
		if err := store.PutArchetype(ctx, a); err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
	}
	list, err := store.ListArchetypes(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"goblin", "ogre", "zombie"}
	for i, a := range list {
		if a.ID != want[i] {
			t.Fatalf("position %d: id = %q, want %q", i, a.ID, want[i])
		}
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for blank path")
	}
}
