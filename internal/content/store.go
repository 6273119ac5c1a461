package content

import (
	"context"
	"fmt"

	"github.com/louisbranch/emberdelve/internal/encounter/registry"
	apperrors "github.com/louisbranch/emberdelve/internal/errors"
	"github.com/louisbranch/emberdelve/internal/storage"
)

// PopulateFromStore registers every archetype and pack from a content store,
// with the same abort-on-first-error semantics as Populate.
func PopulateFromStore(ctx context.Context, store storage.ContentStore, reg *registry.Registry, warn func(message string, metadata map[string]string)) error {
	archetypes, err := store.ListArchetypes(ctx)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeContentDecode, "list archetypes", err)
	}
	for _, a := range archetypes {
		if err := reg.RegisterArchetype(a); err != nil {
			return apperrors.Wrap(apperrors.CodeContentRegister,
				fmt.Sprintf("register archetype %q", a.ID), err)
		}
	}

	packs, err := store.ListPacks(ctx)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeContentDecode, "list packs", err)
	}
	for _, p := range packs {
		if err := reg.RegisterPack(p); err != nil {
			return apperrors.Wrap(apperrors.CodeContentRegister,
				fmt.Sprintf("register pack %q", p.ID), err)
		}
		if warn != nil && TierMismatch(reg, p) {
			warn(fmt.Sprintf("pack %q tier %d disagrees with member tiers", p.ID, p.EffectiveTier()),
				map[string]string{"Pack": p.ID})
		}
	}
	return nil
}
