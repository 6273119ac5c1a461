// Command content-importer loads JSON content files into the SQLite content
// catalog.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/louisbranch/emberdelve/internal/content"
	"github.com/louisbranch/emberdelve/internal/encounter/registry"
	"github.com/louisbranch/emberdelve/internal/platform/config"
	"github.com/louisbranch/emberdelve/internal/storage/sqlite"
)

type importerConfig struct {
	DBPath      string `env:"EMBERDELVE_DB_PATH" envDefault:"content.db"`
	ContentPath string `env:"EMBERDELVE_CONTENT_PATH"`
}

func main() {
	var cfg importerConfig
	if err := config.ParseEnv(&cfg); err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	dbPath := flag.String("db", cfg.DBPath, "path to the SQLite content catalog")
	contentPath := flag.String("content", cfg.ContentPath, "JSON content file to import (empty = embedded defaults)")
	flag.Parse()

	file, err := loadFile(*contentPath)
	if err != nil {
		log.Fatalf("failed to load content: %v", err)
	}

	// Run the definitions through a registry first so validation, duplicate,
	// and member-resolution errors surface before anything is written.
	reg := registry.New()
	if err := file.Populate(reg, func(msg string, _ map[string]string) {
		log.Printf("warning: %s", msg)
	}); err != nil {
		log.Fatalf("invalid content: %v", err)
	}

	store, err := sqlite.Open(*dbPath)
	if err != nil {
		log.Fatalf("failed to open content catalog: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	for _, a := range reg.Archetypes() {
		if err := store.PutArchetype(ctx, a); err != nil {
			log.Fatalf("failed to store archetype %s: %v", a.ID, err)
		}
	}
	for _, p := range reg.Packs() {
		if err := store.PutPack(ctx, p); err != nil {
			log.Fatalf("failed to store pack %s: %v", p.ID, err)
		}
	}

	log.Printf("imported %d archetypes and %d packs into %s", reg.Len(), len(reg.Packs()), *dbPath)
}

func loadFile(path string) (content.File, error) {
	if path == "" {
		return content.DefaultFile()
	}
	return content.LoadFile(path)
}
