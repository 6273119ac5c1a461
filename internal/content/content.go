// Package content decodes archetype and pack definitions and registers them
// into a registry at startup.
package content

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/louisbranch/emberdelve/internal/encounter/domain"
	"github.com/louisbranch/emberdelve/internal/encounter/registry"
	apperrors "github.com/louisbranch/emberdelve/internal/errors"
)

// ArchetypeDef is the serialized form of an enemy archetype. Every field has
// an explicit default so definitions stay terse.
type ArchetypeDef struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	AIProfile string `json:"ai_profile"`

	BaseHp         int `json:"base_hp"`
	BaseAttack     int `json:"base_attack"`
	BaseDefense    int `json:"base_defense"`
	BaseXp         int `json:"base_xp"`
	BaseInitiative int `json:"base_initiative"`

	HpPerFloor         float64 `json:"hp_per_floor"`
	AttackPerFloor     float64 `json:"attack_per_floor"`
	DefensePerFloor    float64 `json:"defense_per_floor"`
	XpPerFloor         float64 `json:"xp_per_floor"`
	InitiativePerFloor float64 `json:"initiative_per_floor"`

	Skills []string `json:"skills"`

	DifficultyLevel int     `json:"difficulty_level"`
	SpawnMinFloor   int     `json:"spawn_min_floor"`
	SpawnMaxFloor   int     `json:"spawn_max_floor"`
	SpawnWeight     float64 `json:"spawn_weight"`
	Tier            int     `json:"tier"`

	Tags            []string           `json:"tags"`
	Resistances     map[string]float64 `json:"resistances"`
	UniqueMechanics []string           `json:"unique_mechanics"`
	Color           [3]int             `json:"color"`
}

// PackDef is the serialized form of a pack template.
type PackDef struct {
	ID               string   `json:"id"`
	Tier             int      `json:"tier"`
	Members          []string `json:"members"`
	PreferredRoomTag string   `json:"preferred_room_tag"`
	Weight           float64  `json:"weight"`
}

// File is one decoded content file.
type File struct {
	Archetypes []ArchetypeDef `json:"archetypes"`
	Packs      []PackDef      `json:"packs"`
}

// ToDomain converts the definition, filling defaults: a missing display name
// falls back to the id, a missing spawn weight to 1.0, a missing spawn min
// floor to 1.
func (d ArchetypeDef) ToDomain() (domain.EnemyArchetype, error) {
	role, err := domain.ParseRole(d.Role)
	if err != nil {
		return domain.EnemyArchetype{}, apperrors.WithMetadata(apperrors.CodeArchetypeInvalidRole,
			fmt.Sprintf("archetype %q: %v", d.ID, err),
			map[string]string{"Archetype": d.ID, "Role": d.Role})
	}

	name := d.Name
	if name == "" {
		name = d.ID
	}
	weight := d.SpawnWeight
	if weight == 0 {
		weight = 1.0
	}
	minFloor := d.SpawnMinFloor
	if minFloor == 0 {
		minFloor = 1
	}

	return domain.EnemyArchetype{
		ID:                 d.ID,
		Name:               name,
		Role:               role,
		AIProfile:          d.AIProfile,
		BaseHp:             d.BaseHp,
		BaseAttack:         d.BaseAttack,
		BaseDefense:        d.BaseDefense,
		BaseXp:             d.BaseXp,
		BaseInitiative:     d.BaseInitiative,
		HpPerFloor:         d.HpPerFloor,
		AttackPerFloor:     d.AttackPerFloor,
		DefensePerFloor:    d.DefensePerFloor,
		XpPerFloor:         d.XpPerFloor,
		InitiativePerFloor: d.InitiativePerFloor,
		SkillIDs:           d.Skills,
		DifficultyLevel:    d.DifficultyLevel,
		SpawnMinFloor:      minFloor,
		SpawnMaxFloor:      d.SpawnMaxFloor,
		SpawnWeight:        weight,
		Tier:               d.Tier,
		Tags:               d.Tags,
		Resistances:        d.Resistances,
		UniqueMechanics:    d.UniqueMechanics,
		Color:              domain.Color{R: d.Color[0], G: d.Color[1], B: d.Color[2]},
	}, nil
}

// ToDomain converts the pack definition, defaulting a missing weight to 1.0.
func (d PackDef) ToDomain() domain.EnemyPackTemplate {
	weight := d.Weight
	if weight == 0 {
		weight = 1.0
	}
	return domain.EnemyPackTemplate{
		ID:               d.ID,
		Tier:             d.Tier,
		MemberIDs:        d.Members,
		PreferredRoomTag: d.PreferredRoomTag,
		Weight:           weight,
	}
}

// Decode reads one content file.
func Decode(r io.Reader) (File, error) {
	var f File
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return File{}, apperrors.Wrap(apperrors.CodeContentDecode, "decode content", err)
	}
	return f, nil
}

// LoadFile reads and decodes a content file from disk.
func LoadFile(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, apperrors.Wrap(apperrors.CodeContentDecode, fmt.Sprintf("open content file %s", path), err)
	}
	defer f.Close()
	return Decode(f)
}

// TierMismatch reports whether any pack member's effective tier disagrees
// with the pack's. Mismatches warn but never block registration: difficulty
// level and spawn ranges are authoritative, tier is a display-only hint.
func TierMismatch(reg *registry.Registry, p domain.EnemyPackTemplate) bool {
	for _, memberID := range p.MemberIDs {
		member, err := reg.Archetype(memberID)
		if err != nil {
			continue
		}
		if member.EffectiveTier() != p.EffectiveTier() {
			return true
		}
	}
	return false
}

// Populate registers every definition into the registry. Archetypes register
// before packs so members resolve. The first error aborts: initialization
// must not continue with ambiguous content.
func (f File) Populate(reg *registry.Registry, warn func(message string, metadata map[string]string)) error {
	for _, def := range f.Archetypes {
		a, err := def.ToDomain()
		if err != nil {
			return err
		}
		if err := reg.RegisterArchetype(a); err != nil {
			return apperrors.Wrap(apperrors.CodeContentRegister,
				fmt.Sprintf("register archetype %q", def.ID), err)
		}
	}
	for _, def := range f.Packs {
		p := def.ToDomain()
		if err := reg.RegisterPack(p); err != nil {
			return apperrors.Wrap(apperrors.CodeContentRegister,
				fmt.Sprintf("register pack %q", def.ID), err)
		}
		if warn != nil && TierMismatch(reg, p) {
			warn(fmt.Sprintf("pack %q tier %d disagrees with member tiers", p.ID, p.EffectiveTier()),
				map[string]string{"Pack": p.ID})
		}
	}
	return nil
}
