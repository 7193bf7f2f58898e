package plugin

import (
	"context"

	"github.com/FAIR-DM/fairdm-sub001/internal/auth"
	"github.com/FAIR-DM/fairdm-sub001/internal/entity"
	"github.com/FAIR-DM/fairdm-sub001/internal/rbac"
)

// Evaluator applies the two-tier authorization gate over the host's
// permission oracle. The same evaluation backs both route dispatch
// (403 on false) and tab building (omission on false).
type Evaluator struct {
	oracle rbac.Oracle
}

func NewEvaluator(oracle rbac.Oracle) *Evaluator {
	return &Evaluator{oracle: oracle}
}

// Allowed reports whether p may access a view gated by perm for the given
// instance. An empty perm is public; a superuser bypasses both tiers.
// The type-level check short-circuits: the instance-level check only runs
// when it passed and an instance is present, and then both must hold.
func (e *Evaluator) Allowed(ctx context.Context, p auth.Principal, perm string, instance entity.Instance) (bool, error) {
	if perm == "" {
		return true, nil
	}
	if p.Superuser {
		return true, nil
	}
	ok, err := e.oracle.HasPermission(ctx, p, perm)
	if err != nil || !ok {
		return false, err
	}
	if instance == nil {
		return true, nil
	}
	return e.oracle.HasObjectPermission(ctx, p, perm, instance.ID())
}

// AllowedAll evaluates a layered gate (group permission before member
// permission); every permission must pass.
func (e *Evaluator) AllowedAll(ctx context.Context, p auth.Principal, perms []string, instance entity.Instance) (bool, error) {
	for _, perm := range perms {
		ok, err := e.Allowed(ctx, p, perm, instance)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
