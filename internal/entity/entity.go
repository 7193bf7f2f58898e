// Package entity defines the closed catalog of domain-entity types the
// plugin registry can attach views to, and the instance/loader contracts
// supplied by the persistence layer.
package entity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is returned by a Loader when no instance exists for the
// given type and id.
var ErrNotFound = errors.New("entity not found")

// Type identifies a kind of domain object, optionally part of a
// supertype/subtype hierarchy (e.g. rock-sample → sample).
type Type struct {
	Namespace string
	Name      string
	super     *Type
}

// NewType creates a type tag. super may be nil for root types.
func NewType(namespace, name string, super *Type) *Type {
	return &Type{Namespace: namespace, Name: name, super: super}
}

// Key returns the stable identifier used to key registry and catalog maps.
func (t *Type) Key() string {
	return t.Namespace + "." + t.Name
}

// Slug returns the URL path segment for this type.
func (t *Type) Slug() string {
	return t.Name
}

// Super returns the direct supertype, or nil.
func (t *Type) Super() *Type {
	return t.super
}

// Ancestors returns the supertype chain, nearest first.
func (t *Type) Ancestors() []*Type {
	var out []*Type
	for s := t.super; s != nil; s = s.super {
		out = append(out, s)
	}
	return out
}

// Lineage returns the chain from the root supertype down to t itself.
func (t *Type) Lineage() []*Type {
	anc := t.Ancestors()
	out := make([]*Type, 0, len(anc)+1)
	for i := len(anc) - 1; i >= 0; i-- {
		out = append(out, anc[i])
	}
	return append(out, t)
}

// IsSubtypeOf reports whether t equals other or descends from it.
func (t *Type) IsSubtypeOf(other *Type) bool {
	for s := t; s != nil; s = s.super {
		if s == other {
			return true
		}
	}
	return false
}

// Instance is a loaded domain object. Parent returns the containing
// instance in the project → dataset → sample → measurement hierarchy,
// or nil at the root; it is used to build breadcrumb chains.
type Instance interface {
	ID() uuid.UUID
	Label() string
	EntityType() *Type
	Parent() Instance
}

// Loader fetches instances by type and id. Implementations may hit
// external storage; they must return ErrNotFound (possibly wrapped)
// when the instance does not exist.
type Loader interface {
	Fetch(ctx context.Context, t *Type, id uuid.UUID) (Instance, error)
}

// Catalog is the closed set of entity types known to the application.
// It is populated once at startup and read-only afterwards.
type Catalog struct {
	types  map[string]*Type
	bySlug map[string]*Type
	order  []*Type
}

func NewCatalog() *Catalog {
	return &Catalog{
		types:  make(map[string]*Type),
		bySlug: make(map[string]*Type),
	}
}

// Add registers a type with the catalog. A type's supertype must be
// added before its subtypes so lookups never dangle.
func (c *Catalog) Add(t *Type) error {
	if t == nil {
		return fmt.Errorf("catalog: cannot add nil type")
	}
	if _, exists := c.types[t.Key()]; exists {
		return fmt.Errorf("catalog: type %q already registered", t.Key())
	}
	if t.super != nil {
		if _, ok := c.types[t.super.Key()]; !ok {
			return fmt.Errorf("catalog: supertype %q of %q not registered", t.super.Key(), t.Key())
		}
	}
	if other, exists := c.bySlug[t.Slug()]; exists {
		return fmt.Errorf("catalog: slug %q already used by %q", t.Slug(), other.Key())
	}
	c.types[t.Key()] = t
	c.bySlug[t.Slug()] = t
	c.order = append(c.order, t)
	return nil
}

// Get returns the type for the given key.
func (c *Catalog) Get(key string) (*Type, bool) {
	t, ok := c.types[key]
	return t, ok
}

// BySlug returns the type for the given URL slug.
func (c *Catalog) BySlug(slug string) (*Type, bool) {
	t, ok := c.bySlug[slug]
	return t, ok
}

// All returns the catalog's types in addition order.
func (c *Catalog) All() []*Type {
	out := make([]*Type, len(c.order))
	copy(out, c.order)
	return out
}
