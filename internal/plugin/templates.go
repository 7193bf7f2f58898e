package plugin

import (
	"fmt"

	"github.com/FAIR-DM/fairdm-sub001/internal/entity"
)

// BaseTemplate is the guaranteed fallback shipped by the core; template
// resolution never produces an empty candidate list.
const BaseTemplate = "plugins/base"

// TemplateCandidates returns the ordered template names tried when
// rendering the descriptor for entity type t, most specific first:
//
//  1. {namespace}/{type}/plugins/{name} for the concrete type
//  2. the descriptor's explicit override, when set
//  3. the same pattern for each ancestor supertype, nearest first
//  4. plugins/{name}, type-independent
//  5. plugins/base
//
// A descriptor with TemplateOnly set skips the hierarchy entirely and
// tries only its override and the base fallback. The rendering layer
// uses the first candidate that exists.
func (d *Descriptor) TemplateCandidates(t *entity.Type) []string {
	name := d.ResolvedName()
	if d.TemplateOnly && d.Template != "" {
		return []string{d.Template, BaseTemplate}
	}

	var out []string
	out = append(out, typedCandidate(t, name))
	if d.Template != "" {
		out = append(out, d.Template)
	}
	for _, anc := range t.Ancestors() {
		out = append(out, typedCandidate(anc, name))
	}
	out = append(out, "plugins/"+name, BaseTemplate)
	return out
}

// Candidates is the hierarchy walk without any descriptor override,
// exposed for units known only by name.
func Candidates(unitName string, t *entity.Type) []string {
	out := []string{typedCandidate(t, unitName)}
	for _, anc := range t.Ancestors() {
		out = append(out, typedCandidate(anc, unitName))
	}
	return append(out, "plugins/"+unitName, BaseTemplate)
}

func typedCandidate(t *entity.Type, unitName string) string {
	return fmt.Sprintf("%s/%s/plugins/%s", t.Namespace, t.Name, unitName)
}
