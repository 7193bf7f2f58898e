package rbac

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FAIR-DM/fairdm-sub001/internal/auth"
)

// Engine is the Postgres-backed Oracle. Type-level permissions come from
// the user's roles; instance-level permissions from per-object grants.
// Lookups are cached per user with a short TTL, since the tab builder
// evaluates several permissions per detail-page render.
type Engine struct {
	pool  *pgxpool.Pool
	cache map[string]*cachedGrants
	mu    sync.RWMutex
	ttl   time.Duration
}

type cachedGrants struct {
	perms     map[string]bool
	expiresAt time.Time
}

func NewEngine(pool *pgxpool.Pool) *Engine {
	return &Engine{
		pool:  pool,
		cache: make(map[string]*cachedGrants),
		ttl:   5 * time.Minute,
	}
}

func (e *Engine) HasPermission(ctx context.Context, p auth.Principal, perm string) (bool, error) {
	if p.IsAnonymous() {
		return false, nil
	}
	perms, err := e.getPermissions(ctx, p.ID)
	if err != nil {
		return false, err
	}
	return perms[perm] || perms["*"], nil
}

func (e *Engine) HasObjectPermission(ctx context.Context, p auth.Principal, perm string, objectID uuid.UUID) (bool, error) {
	if p.IsAnonymous() {
		return false, nil
	}
	var exists bool
	err := e.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM object_permissions
			WHERE user_id = $1 AND permission = $2 AND object_id = $3
		)`,
		p.ID, perm, objectID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check object permission: %w", err)
	}
	return exists, nil
}

// KnownPermissions lists every permission string any role can grant.
func (e *Engine) KnownPermissions(ctx context.Context) ([]string, error) {
	rows, err := e.pool.Query(ctx, `SELECT DISTINCT permission FROM role_permissions ORDER BY permission`)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	defer rows.Close()

	var perms []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan permission: %w", err)
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

func (e *Engine) getPermissions(ctx context.Context, userID string) (map[string]bool, error) {
	e.mu.RLock()
	cached, ok := e.cache[userID]
	e.mu.RUnlock()

	if ok && time.Now().Before(cached.expiresAt) {
		return cached.perms, nil
	}

	perms, err := e.loadPermissions(ctx, userID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.cache[userID] = &cachedGrants{perms: perms, expiresAt: time.Now().Add(e.ttl)}
	e.mu.Unlock()

	return perms, nil
}

func (e *Engine) loadPermissions(ctx context.Context, userID string) (map[string]bool, error) {
	query := `
		SELECT rp.permission
		FROM user_roles ur
		JOIN role_permissions rp ON ur.role_id = rp.role_id
		WHERE ur.user_id = $1
	`

	rows, err := e.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load permissions: %w", err)
	}
	defer rows.Close()

	perms := make(map[string]bool)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan permission: %w", err)
		}
		perms[p] = true
	}
	return perms, rows.Err()
}

func (e *Engine) InvalidateCache(userID string) {
	e.mu.Lock()
	delete(e.cache, userID)
	e.mu.Unlock()
}
