// Command simulate generates encounters across a floor range and prints
// them, for balancing and content review. A fixed seed reproduces the exact
// spawn sequence.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/louisbranch/emberdelve/internal/content"
	"github.com/louisbranch/emberdelve/internal/encounter/registry"
	"github.com/louisbranch/emberdelve/internal/encounter/service"
	"github.com/louisbranch/emberdelve/internal/encounter/synergy"
	"github.com/louisbranch/emberdelve/internal/platform/config"
	"github.com/louisbranch/emberdelve/internal/platform/random"
	"github.com/louisbranch/emberdelve/internal/storage/sqlite"
)

type simulateConfig struct {
	Seed        int64  `env:"EMBERDELVE_SEED" envDefault:"0"`
	DBPath      string `env:"EMBERDELVE_DB_PATH"`
	ContentPath string `env:"EMBERDELVE_CONTENT_PATH"`
}

func main() {
	var cfg simulateConfig
	if err := config.ParseEnv(&cfg); err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	seed := flag.Int64("seed", cfg.Seed, "RNG seed (0 = time-based)")
	fromFloor := flag.Int("from", 1, "first floor to simulate")
	toFloor := flag.Int("to", 10, "last floor to simulate")
	roomTag := flag.String("room", "", "room tag biasing selection (lair, event, graveyard, sanctum)")
	dbPath := flag.String("db", cfg.DBPath, "SQLite content catalog (empty = JSON or embedded content)")
	contentPath := flag.String("content", cfg.ContentPath, "JSON content file (empty = embedded defaults)")
	flag.Parse()

	reg, err := buildRegistry(*dbPath, *contentPath)
	if err != nil {
		log.Fatalf("failed to load content: %v", err)
	}

	rng := random.NewSeededRNG(*seed, true)
	svc, err := service.New(reg, service.WithRNG(rng))
	if err != nil {
		log.Fatalf("failed to initialize encounter service: %v", err)
	}

	for floor := *fromFloor; floor <= *toFloor; floor++ {
		enc, err := svc.BuildFloorEncounter(floor, *roomTag)
		if err != nil {
			log.Fatalf("failed to build encounter for floor %d: %v", floor, err)
		}

		fmt.Printf("floor %d: pack %s (%d units)\n", floor, enc.Pack.ID, len(enc.Units))
		for _, u := range enc.Units {
			marker := ""
			if u.Elite {
				marker = " [elite]"
			}
			fmt.Printf("  %-24s hp=%-4d atk=%-3d def=%-3d init=%-3d xp=%-3d%s\n",
				u.Name, u.MaxHp, u.Attack, u.Defense, u.Initiative, u.Xp, marker)
		}
		if enc.Synergy != synergy.Neutral() {
			fmt.Printf("  synergy: atk=%.2f hp=%.2f def=%.2f skill=%.2f\n",
				enc.Synergy.AttackMult, enc.Synergy.HpMult, enc.Synergy.DefenseMult, enc.Synergy.SkillPowerMult)
		}
	}
}

func buildRegistry(dbPath, contentPath string) (*registry.Registry, error) {
	warn := func(msg string, _ map[string]string) {
		fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
	}

	if dbPath != "" {
		store, err := sqlite.Open(dbPath)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		reg := registry.New()
		if err := content.PopulateFromStore(context.Background(), store, reg, warn); err != nil {
			return nil, err
		}
		return reg, nil
	}

	if contentPath != "" {
		file, err := content.LoadFile(contentPath)
		if err != nil {
			return nil, err
		}
		reg := registry.New()
		if err := file.Populate(reg, warn); err != nil {
			return nil, err
		}
		return reg, nil
	}

	return content.DefaultRegistry(warn)
}
