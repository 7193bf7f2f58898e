package plugin

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/FAIR-DM/fairdm-sub001/internal/auth"
	"github.com/FAIR-DM/fairdm-sub001/internal/entity"
)

// TabsFor builds the ordered tab list for a detail page: every unit with
// a menu whose visibility and permission checks pass for this principal
// and instance. The list is stable-sorted by menu order, ties keeping
// registration order. A unit that fails unexpectedly is skipped and
// recorded; one broken unit never aborts tab collection for the page.
func (s *Server) TabsFor(ctx context.Context, t *entity.Type, p auth.Principal, instance entity.Instance, currentPath string) []Tab {
	base := ""
	if instance != nil {
		base = s.DetailBase(t, instance.ID())
	}

	var tabs []Tab
	for _, u := range s.registry.UnitsFor(t) {
		tab, ok, err := s.tabFor(ctx, u, p, instance, base, currentPath)
		if err != nil {
			log.Printf("plugin: skipping tab for unit %q: %v", u.UnitName(), err)
			s.record(ctx, p, "plugin.tab_failed", u.UnitName(), map[string]any{
				"entity": t.Key(),
				"error":  err.Error(),
			})
			continue
		}
		if ok {
			tabs = append(tabs, tab)
		}
	}

	sort.SliceStable(tabs, func(i, j int) bool { return tabs[i].Order < tabs[j].Order })
	return tabs
}

// tabFor evaluates a single unit. Panics from visibility predicates or
// the oracle are converted to errors so the caller can isolate them.
func (s *Server) tabFor(ctx context.Context, u Unit, p auth.Principal, instance entity.Instance, base, currentPath string) (tab Tab, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			tab, ok = Tab{}, false
			err = fmt.Errorf("panic evaluating unit: %v", r)
		}
	}()

	menu := u.UnitMenu()
	if menu == nil {
		return Tab{}, false, nil
	}

	// For a group the tab gate is the group-level permission and
	// visibility only; member gates apply at the members' own routes.
	var (
		visible VisibilityFunc
		perm    string
		route   Route
		current bool
	)
	switch unit := u.(type) {
	case *Descriptor:
		visible, perm = unit.Visible, unit.Permission
		route = unit.PrimaryRoute()
		current = currentPath == base+route.Path
	case *Group:
		visible, perm = unit.Visible, unit.Permission
		route = unit.DefaultRoute()
		current = strings.HasPrefix(currentPath, base+unit.ResolvedRoutePrefix()+"/")
	default:
		return Tab{}, false, nil
	}

	if visible != nil && !visible(p, instance) {
		return Tab{}, false, nil
	}
	allowed, err := s.eval.Allowed(ctx, p, perm, instance)
	if err != nil {
		return Tab{}, false, err
	}
	if !allowed {
		return Tab{}, false, nil
	}

	return Tab{
		Label:   menu.Label,
		Icon:    menu.Icon,
		URL:     base + route.Path,
		Order:   menu.Order,
		Current: current,
	}, true, nil
}
