// Package app is the composition root shared by the server and admin
// binaries: it owns the entity catalog and performs every plugin
// registration during the single-threaded initialization phase.
package app

import (
	"fmt"

	"github.com/FAIR-DM/fairdm-sub001/internal/entity"
	"github.com/FAIR-DM/fairdm-sub001/internal/plugin"
	"github.com/FAIR-DM/fairdm-sub001/plugins/activity"
	"github.com/FAIR-DM/fairdm-sub001/plugins/discussion"
	"github.com/FAIR-DM/fairdm-sub001/plugins/export"
	"github.com/FAIR-DM/fairdm-sub001/plugins/metadata"
	"github.com/FAIR-DM/fairdm-sub001/plugins/overview"
)

// Namespace is the catalog namespace of the core entity types.
const Namespace = "fairdm"

// Catalog bundles the core entity types with the catalog that owns them.
type Catalog struct {
	*entity.Catalog

	Project     *entity.Type
	Dataset     *entity.Type
	Sample      *entity.Type
	RockSample  *entity.Type
	Measurement *entity.Type
}

// BuildCatalog assembles the core type hierarchy: four containment
// levels, with rock-sample as a concrete sample subtype.
func BuildCatalog() (*Catalog, error) {
	c := &Catalog{Catalog: entity.NewCatalog()}
	c.Project = entity.NewType(Namespace, "project", nil)
	c.Dataset = entity.NewType(Namespace, "dataset", nil)
	c.Sample = entity.NewType(Namespace, "sample", nil)
	c.RockSample = entity.NewType(Namespace, "rock-sample", c.Sample)
	c.Measurement = entity.NewType(Namespace, "measurement", nil)

	for _, t := range []*entity.Type{c.Project, c.Dataset, c.Sample, c.RockSample, c.Measurement} {
		if err := c.Add(t); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// BuildRegistry performs all plugin registrations. Anything beyond
// call-time shape checks is left to plugin.Validate, which the binaries
// run before serving.
func BuildRegistry(c *Catalog) (*plugin.Registry, error) {
	reg := plugin.NewRegistry()
	core := []*entity.Type{c.Project, c.Dataset, c.Sample, c.Measurement}

	if err := overview.Register(reg, core...); err != nil {
		return nil, fmt.Errorf("register overview: %w", err)
	}
	if err := metadata.Register(reg, c.Dataset, c.Sample); err != nil {
		return nil, fmt.Errorf("register metadata: %w", err)
	}
	if err := activity.Register(reg, c.Sample, c.RockSample); err != nil {
		return nil, fmt.Errorf("register activity: %w", err)
	}
	if err := export.Register(reg, c.Dataset); err != nil {
		return nil, fmt.Errorf("register export: %w", err)
	}
	if err := discussion.Register(reg, core...); err != nil {
		return nil, fmt.Errorf("register discussion: %w", err)
	}
	return reg, nil
}
