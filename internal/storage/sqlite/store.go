// Package sqlite provides a SQLite-backed content catalog.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/louisbranch/emberdelve/internal/encounter/domain"
	"github.com/louisbranch/emberdelve/internal/storage"
	"github.com/louisbranch/emberdelve/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists encounter content in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite content store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutArchetype inserts or replaces one archetype definition.
func (s *Store) PutArchetype(ctx context.Context, archetype domain.EnemyArchetype) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := archetype.Validate(); err != nil {
		return err
	}

	skills, err := marshalStrings(archetype.SkillIDs)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}
	tags, err := marshalStrings(archetype.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	mechanics, err := marshalStrings(archetype.UniqueMechanics)
	if err != nil {
		return fmt.Errorf("marshal unique mechanics: %w", err)
	}
	resistances, err := marshalResistances(archetype.Resistances)
	if err != nil {
		return fmt.Errorf("marshal resistances: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO archetypes (
    id, name, role, ai_profile,
    base_hp, base_attack, base_defense, base_xp, base_initiative,
    hp_per_floor, attack_per_floor, defense_per_floor, xp_per_floor, initiative_per_floor,
    skills, difficulty_level, spawn_min_floor, spawn_max_floor, spawn_weight, tier,
    tags, resistances, unique_mechanics, color_r, color_g, color_b
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    role = excluded.role,
    ai_profile = excluded.ai_profile,
    base_hp = excluded.base_hp,
    base_attack = excluded.base_attack,
    base_defense = excluded.base_defense,
    base_xp = excluded.base_xp,
    base_initiative = excluded.base_initiative,
    hp_per_floor = excluded.hp_per_floor,
    attack_per_floor = excluded.attack_per_floor,
    defense_per_floor = excluded.defense_per_floor,
    xp_per_floor = excluded.xp_per_floor,
    initiative_per_floor = excluded.initiative_per_floor,
    skills = excluded.skills,
    difficulty_level = excluded.difficulty_level,
    spawn_min_floor = excluded.spawn_min_floor,
    spawn_max_floor = excluded.spawn_max_floor,
    spawn_weight = excluded.spawn_weight,
    tier = excluded.tier,
    tags = excluded.tags,
    resistances = excluded.resistances,
    unique_mechanics = excluded.unique_mechanics,
    color_r = excluded.color_r,
    color_g = excluded.color_g,
    color_b = excluded.color_b
`,
		archetype.ID, archetype.Name, archetype.Role.String(), archetype.AIProfile,
		archetype.BaseHp, archetype.BaseAttack, archetype.BaseDefense, archetype.BaseXp, archetype.BaseInitiative,
		archetype.HpPerFloor, archetype.AttackPerFloor, archetype.DefensePerFloor, archetype.XpPerFloor, archetype.InitiativePerFloor,
		skills, archetype.DifficultyLevel, archetype.SpawnMinFloor, archetype.SpawnMaxFloor, archetype.SpawnWeight, archetype.Tier,
		tags, resistances, mechanics, archetype.Color.R, archetype.Color.G, archetype.Color.B,
	)
	if err != nil {
		return fmt.Errorf("insert archetype: %w", err)
	}
	return nil
}

// GetArchetype loads one archetype by id.
func (s *Store) GetArchetype(ctx context.Context, id string) (domain.EnemyArchetype, error) {
	if err := ctx.Err(); err != nil {
		return domain.EnemyArchetype{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, archetypeSelect+" WHERE id = ?", id)
	archetype, err := scanArchetype(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.EnemyArchetype{}, storage.ErrNotFound
	}
	return archetype, err
}

// ListArchetypes loads every archetype ordered by id.
func (s *Store) ListArchetypes(ctx context.Context) ([]domain.EnemyArchetype, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, archetypeSelect+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list archetypes: %w", err)
	}
	defer rows.Close()

	var out []domain.EnemyArchetype
	for rows.Next() {
		archetype, err := scanArchetype(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, archetype)
	}
	return out, rows.Err()
}

// PutPack inserts or replaces one pack template.
func (s *Store) PutPack(ctx context.Context, pack domain.EnemyPackTemplate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := pack.Validate(); err != nil {
		return err
	}
	members, err := marshalStrings(pack.MemberIDs)
	if err != nil {
		return fmt.Errorf("marshal members: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO packs (id, tier, members, preferred_room_tag, weight)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    tier = excluded.tier,
    members = excluded.members,
    preferred_room_tag = excluded.preferred_room_tag,
    weight = excluded.weight
`, pack.ID, pack.Tier, members, pack.PreferredRoomTag, pack.Weight)
	if err != nil {
		return fmt.Errorf("insert pack: %w", err)
	}
	return nil
}

// GetPack loads one pack template by id.
func (s *Store) GetPack(ctx context.Context, id string) (domain.EnemyPackTemplate, error) {
	if err := ctx.Err(); err != nil {
		return domain.EnemyPackTemplate{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT id, tier, members, preferred_room_tag, weight FROM packs WHERE id = ?", id)
	pack, err := scanPack(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.EnemyPackTemplate{}, storage.ErrNotFound
	}
	return pack, err
}

// ListPacks loads every pack template ordered by id.
func (s *Store) ListPacks(ctx context.Context) ([]domain.EnemyPackTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT id, tier, members, preferred_room_tag, weight FROM packs ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list packs: %w", err)
	}
	defer rows.Close()

	var out []domain.EnemyPackTemplate
	for rows.Next() {
		pack, err := scanPack(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pack)
	}
	return out, rows.Err()
}

const archetypeSelect = `
SELECT id, name, role, ai_profile,
    base_hp, base_attack, base_defense, base_xp, base_initiative,
    hp_per_floor, attack_per_floor, defense_per_floor, xp_per_floor, initiative_per_floor,
    skills, difficulty_level, spawn_min_floor, spawn_max_floor, spawn_weight, tier,
    tags, resistances, unique_mechanics, color_r, color_g, color_b
FROM archetypes`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArchetype(row rowScanner) (domain.EnemyArchetype, error) {
	var a domain.EnemyArchetype
	var role, skills, tags, mechanics, resistances string
	err := row.Scan(
		&a.ID, &a.Name, &role, &a.AIProfile,
		&a.BaseHp, &a.BaseAttack, &a.BaseDefense, &a.BaseXp, &a.BaseInitiative,
		&a.HpPerFloor, &a.AttackPerFloor, &a.DefensePerFloor, &a.XpPerFloor, &a.InitiativePerFloor,
		&skills, &a.DifficultyLevel, &a.SpawnMinFloor, &a.SpawnMaxFloor, &a.SpawnWeight, &a.Tier,
		&tags, &resistances, &mechanics, &a.Color.R, &a.Color.G, &a.Color.B,
	)
	if err != nil {
		return domain.EnemyArchetype{}, err
	}

	if a.Role, err = domain.ParseRole(role); err != nil {
		return domain.EnemyArchetype{}, fmt.Errorf("archetype %s: %w", a.ID, err)
	}
	if a.SkillIDs, err = unmarshalStrings(skills); err != nil {
		return domain.EnemyArchetype{}, fmt.Errorf("archetype %s skills: %w", a.ID, err)
	}
	if a.Tags, err = unmarshalStrings(tags); err != nil {
		return domain.EnemyArchetype{}, fmt.Errorf("archetype %s tags: %w", a.ID, err)
	}
	if a.UniqueMechanics, err = unmarshalStrings(mechanics); err != nil {
		return domain.EnemyArchetype{}, fmt.Errorf("archetype %s unique mechanics: %w", a.ID, err)
	}
	if err = json.Unmarshal([]byte(resistances), &a.Resistances); err != nil {
		return domain.EnemyArchetype{}, fmt.Errorf("archetype %s resistances: %w", a.ID, err)
	}
	if len(a.Resistances) == 0 {
		a.Resistances = nil
	}
	return a, nil
}

func scanPack(row rowScanner) (domain.EnemyPackTemplate, error) {
	var (
		p       domain.EnemyPackTemplate
		members string
	)
	if err := row.Scan(&p.ID, &p.Tier, &members, &p.PreferredRoomTag, &p.Weight); err != nil {
		return domain.EnemyPackTemplate{}, err
	}
	var err error
	if p.MemberIDs, err = unmarshalStrings(members); err != nil {
		return domain.EnemyPackTemplate{}, fmt.Errorf("pack %s members: %w", p.ID, err)
	}
	return p, nil
}

func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	return string(b), err
}

func unmarshalStrings(raw string) ([]string, error) {
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}

func marshalResistances(values map[string]float64) (string, error) {
	if values == nil {
		values = map[string]float64{}
	}
	b, err := json.Marshal(values)
	return string(b), err
}
