package content

import (
	"strings"
	"testing"

	"github.com/louisbranch/emberdelve/internal/encounter/domain"
	"github.com/louisbranch/emberdelve/internal/encounter/registry"
	apperrors "github.com/louisbranch/emberdelve/internal/errors"
)

func TestDecodeAppliesDefaults(t *testing.T) {
	input := `{
		"archetypes": [
			{"id": "rat", "base_hp": 4, "base_attack": 2, "difficulty_level": 1}
		]
	}`
	f, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	a, err := f.Archetypes[0].ToDomain()
	if err != nil {
		t.Fatalf("to domain: %v", err)
	}
	if a.Name != "rat" {
		t.Fatalf("name = %q, want id fallback", a.Name)
	}
	if a.SpawnWeight != 1.0 {
		t.Fatalf("spawn weight = %v, want default 1.0", a.SpawnWeight)
	}
	if a.SpawnMinFloor != 1 {
		t.Fatalf("spawn min floor = %d, want default 1", a.SpawnMinFloor)
	}
	if a.Role != domain.RoleUnspecified {
		t.Fatalf("role = %v, want unspecified", a.Role)
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"archetypess": []}`))
	if !apperrors.IsCode(err, apperrors.CodeContentDecode) {
		t.Fatalf("error = %v, want code %v", err, apperrors.CodeContentDecode)
	}
}

func TestToDomainRejectsUnknownRole(t *testing.T) {
	def := ArchetypeDef{ID: "rat", BaseHp: 4, BaseAttack: 2, DifficultyLevel: 1, Role: "overlord"}
	_, err := def.ToDomain()
	if !apperrors.IsCode(err, apperrors.CodeArchetypeInvalidRole) {
		t.Fatalf("error = %v, want code %v", err, apperrors.CodeArchetypeInvalidRole)
	}
}

func TestPopulateAbortsOnDuplicate(t *testing.T) {
	f := File{
		Archetypes: []ArchetypeDef{
			{ID: "rat", BaseHp: 4, BaseAttack: 2, DifficultyLevel: 1},
			{ID: "rat", BaseHp: 4, BaseAttack: 2, DifficultyLevel: 1},
		},
	}
	err := f.Populate(registry.New(), nil)
	if !apperrors.IsCode(err, apperrors.CodeContentRegister) {
		t.Fatalf("error = %v, want code %v", err, apperrors.CodeContentRegister)
	}
}

func TestDefaultRegistry(t *testing.T) {
	var warnings []string
	reg, err := DefaultRegistry(func(msg string, _ map[string]string) {
		warnings = append(warnings, msg)
	})
	if err != nil {
		t.Fatalf("default registry: %v", err)
	}
	if reg.Empty() {
		t.Fatal("default registry must not be empty")
	}

	// The legacy strength table depends on these ids being present.
	for _, id := range []string{"goblin", "dire_wolf", "skeleton", "ogre", "stone_golem"} {
		if _, err := reg.Archetype(id); err != nil {
			t.Fatalf("default content missing %q: %v", id, err)
		}
	}
	if len(reg.Packs()) == 0 {
		t.Fatal("default content must define packs")
	}

	// bone_court mixes tier 2 and tier 3 members under a tier 3 label; the
	// mismatch warns but does not block.
	if len(warnings) != 1 || !strings.Contains(warnings[0], "bone_court") {
		t.Fatalf("warnings = %v, want exactly one bone_court tier warning", warnings)
	}
	if _, err := reg.Pack("bone_court"); err != nil {
		t.Fatalf("mismatched pack must still register: %v", err)
	}
}

func TestDefaultContentRoundTripsFields(t *testing.T) {
	reg, err := DefaultRegistry(nil)
	if err != nil {
		t.Fatalf("default registry: %v", err)
	}
	a, err := reg.Archetype("skeleton")
	if err != nil {
		t.Fatalf("skeleton: %v", err)
	}
	if a.Role != domain.RoleBrute {
		t.Fatalf("role = %v, want brute", a.Role)
	}
	if !a.HasTag("undead") {
		t.Fatal("skeleton must carry the undead tag")
	}
	if a.Resistances["holy"] != 1.5 {
		t.Fatalf("holy resistance = %v, want 1.5", a.Resistances["holy"])
	}
	if a.Color == (domain.Color{}) {
		t.Fatal("expected a display color")
	}
}
