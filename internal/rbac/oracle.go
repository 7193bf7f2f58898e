// Package rbac supplies the permission oracle the plugin registry
// delegates authorization decisions to.
package rbac

import (
	"context"

	"github.com/google/uuid"

	"github.com/FAIR-DM/fairdm-sub001/internal/auth"
)

// Oracle answers whether a principal holds a permission, in the abstract
// (type-level) or scoped to a single object (instance-level). The
// superuser bypass is not the oracle's concern; the plugin evaluator
// applies it before consulting the oracle.
type Oracle interface {
	// HasPermission reports whether the principal holds perm
	// independently of any particular object.
	HasPermission(ctx context.Context, p auth.Principal, perm string) (bool, error)

	// HasObjectPermission reports whether the principal holds perm for
	// the object with the given id.
	HasObjectPermission(ctx context.Context, p auth.Principal, perm string, objectID uuid.UUID) (bool, error)
}

// PermissionLister enumerates the permission strings known to the host.
// The structural validator uses it to warn about plugin permissions that
// nothing can ever grant. Oracles may choose not to implement it.
type PermissionLister interface {
	KnownPermissions(ctx context.Context) ([]string, error)
}
