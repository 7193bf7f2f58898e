package rbac

import (
	"context"

	"github.com/google/uuid"

	"github.com/FAIR-DM/fairdm-sub001/internal/auth"
)

// StaticOracle serves permissions from in-memory maps. Used when no
// database is configured, and by tests.
type StaticOracle struct {
	// Grants maps user ID to the type-level permissions it holds.
	Grants map[string][]string
	// ObjectGrants maps user ID to object ID to object-scoped permissions.
	ObjectGrants map[string]map[uuid.UUID][]string
	// Known is the full permission vocabulary, for the validator.
	Known []string
}

func (o *StaticOracle) HasPermission(_ context.Context, p auth.Principal, perm string) (bool, error) {
	for _, g := range o.Grants[p.ID] {
		if g == perm {
			return true, nil
		}
	}
	return false, nil
}

func (o *StaticOracle) HasObjectPermission(_ context.Context, p auth.Principal, perm string, objectID uuid.UUID) (bool, error) {
	for _, g := range o.ObjectGrants[p.ID][objectID] {
		if g == perm {
			return true, nil
		}
	}
	return false, nil
}

func (o *StaticOracle) KnownPermissions(_ context.Context) ([]string, error) {
	return o.Known, nil
}
