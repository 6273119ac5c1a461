package content

import (
	"bytes"
	_ "embed"

	"github.com/louisbranch/emberdelve/internal/encounter/registry"
)

//go:embed defaults.json
var defaultsJSON []byte

// DefaultFile decodes the embedded default content set.
func DefaultFile() (File, error) {
	return Decode(bytes.NewReader(defaultsJSON))
}

// DefaultRegistry builds a registry from the embedded default content.
func DefaultRegistry(warn func(message string, metadata map[string]string)) (*registry.Registry, error) {
	f, err := DefaultFile()
	if err != nil {
		return nil, err
	}
	reg := registry.New()
	if err := f.Populate(reg, warn); err != nil {
		return nil, err
	}
	return reg, nil
}
