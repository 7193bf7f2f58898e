// Package store implements the entity.Loader contract over Postgres.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FAIR-DM/fairdm-sub001/internal/entity"
)

// Store loads entity instances from the entities table. Rows carry their
// parent reference, so the containment chain needed for breadcrumbs is
// loaded iteratively at fetch time.
type Store struct {
	pool    *pgxpool.Pool
	catalog *entity.Catalog
}

func New(pool *pgxpool.Pool, catalog *entity.Catalog) *Store {
	return &Store{pool: pool, catalog: catalog}
}

// Fetch implements entity.Loader. The stored type must match the
// requested type or one of its subtypes; a row of an unrelated type is
// reported as not found rather than leaked.
func (s *Store) Fetch(ctx context.Context, t *entity.Type, id uuid.UUID) (entity.Instance, error) {
	if s.pool == nil {
		return nil, fmt.Errorf("%w: no database configured", entity.ErrNotFound)
	}
	rec, parentID, err := s.fetchRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rec.Type.IsSubtypeOf(t) {
		return nil, fmt.Errorf("%w: %s/%s", entity.ErrNotFound, t.Key(), id)
	}

	// Walk the parent chain. Containment hierarchies are shallow
	// (project → dataset → sample → measurement), so a handful of
	// point lookups is fine here.
	node := rec
	for depth := 0; parentID != nil && depth < 8; depth++ {
		parent, nextParent, err := s.fetchRecord(ctx, *parentID)
		if err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				break
			}
			return nil, err
		}
		node.ParentRecord = parent
		node, parentID = parent, nextParent
	}
	return rec, nil
}

func (s *Store) fetchRecord(ctx context.Context, id uuid.UUID) (*entity.Record, *uuid.UUID, error) {
	var (
		typeKey  string
		name     string
		parentID *uuid.UUID
		rowID    uuid.UUID
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, type, name, parent_id FROM entities WHERE id = $1`, id,
	).Scan(&rowID, &typeKey, &name, &parentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, fmt.Errorf("%w: %s", entity.ErrNotFound, id)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch entity %s: %w", id, err)
	}

	t, ok := s.catalog.Get(typeKey)
	if !ok {
		return nil, nil, fmt.Errorf("entity %s has unknown type %q", id, typeKey)
	}
	return &entity.Record{RecordID: rowID, Name: name, Type: t}, parentID, nil
}
