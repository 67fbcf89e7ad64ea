package constraint

import (
	"fmt"

	"github.com/nandgate/hwdkg/internal/fieldsource"
	"github.com/nandgate/hwdkg/internal/graphmodel"
	"github.com/nandgate/hwdkg/internal/logging"
	"github.com/nandgate/hwdkg/internal/provenance"
)

// Projector applies parsed constraint records onto a graph through the
// field-source Updater, always at Declared priority under stage
// "constraint" (spec §4.5).
type Projector struct {
	g       *graphmodel.Graph
	updater *fieldsource.Updater
	diag    *logging.Diagnostics
	file    string
}

// NewProjector returns a Projector writing to g through updater. diag may be
// nil, in which case unmatched patterns are silently dropped (still not an
// error per spec §7).
func NewProjector(g *graphmodel.Graph, updater *fieldsource.Updater, diag *logging.Diagnostics, file string) *Projector {
	return &Projector{g: g, updater: updater, diag: diag, file: file}
}

func (p *Projector) warn(msg string, fields map[string]interface{}) {
	if p.diag != nil {
		p.diag.Warn(msg, fields)
	}
}

// nodeMatches reports whether n matches pattern against any of hier_path,
// local_name, canonical_name (spec §4.5's "each pattern is tried against"
// rule).
func nodeMatches(n *graphmodel.Node, pattern string) bool {
	return Matches(pattern, n.HierPath) || Matches(pattern, n.LocalName) || Matches(pattern, n.CanonicalName)
}

// matchingNodes returns every node matching any pattern in patterns. An
// empty pattern list means "no restriction" and matches every node, per
// spec §4.5 ("or `from` is absent").
func (p *Projector) matchingNodes(patterns []string) []*graphmodel.Node {
	var out []*graphmodel.Node
	for _, n := range p.g.Nodes {
		if len(patterns) == 0 || MatchesAny(patterns, n.HierPath) || MatchesAny(patterns, n.LocalName) || MatchesAny(patterns, n.CanonicalName) {
			out = append(out, n)
		}
	}
	return out
}

func (p *Projector) matchingEdges(from, to []string) []*graphmodel.Edge {
	var out []*graphmodel.Edge
	for _, e := range p.g.Edges {
		src, srcOK := p.g.Nodes[e.SrcNode]
		dst, dstOK := p.g.Nodes[e.DstNode]
		if !srcOK || !dstOK {
			continue
		}
		srcMatch := len(from) == 0 || nodeMatchesAny(src, from)
		dstMatch := len(to) == 0 || nodeMatchesAny(dst, to)
		if srcMatch && dstMatch {
			out = append(out, e)
		}
	}
	return out
}

func nodeMatchesAny(n *graphmodel.Node, patterns []string) bool {
	for _, p := range patterns {
		if nodeMatches(n, p) {
			return true
		}
	}
	return false
}

// ApplyClock implements `create_clock`: sets clock_domain and
// attributes.clock_period on every matched port node.
func (p *Projector) ApplyClock(c Clock, line int) int {
	nodes := p.matchingNodes(c.TargetPorts)
	applied := 0
	for _, n := range nodes {
		if p.updater.UpdateNodeField(n, "clock_domain", c.Name, fieldsource.Declared, provenance.StageConstraint, p.file, line) {
			applied++
		}
		if c.Period != nil {
			p.updater.UpdateNodeField(n, "clock_period", *c.Period, fieldsource.Declared, provenance.StageConstraint, p.file, line)
		}
	}
	if applied == 0 {
		p.warn("create_clock matched no targets", map[string]interface{}{"clock": c.Name})
	}
	return applied
}

// ApplyFalsePath implements `set_false_path`: sets timing_exception =
// "false_path" on every matched edge.
func (p *Projector) ApplyFalsePath(fp FalsePath, line int) int {
	edges := p.matchingEdges(fp.From, fp.To)
	for _, e := range edges {
		p.updater.UpdateEdgeField(e, "timing_exception", "false_path", fieldsource.Declared, provenance.StageConstraint, p.file, line)
	}
	return len(edges)
}

// ApplyMulticyclePath implements `set_multicycle_path`: sets
// timing_exception = "multicycle_{N}_{type}" on every matched edge.
func (p *Projector) ApplyMulticyclePath(mp MulticyclePath, line int) int {
	edges := p.matchingEdges(mp.From, mp.To)
	exception := fmt.Sprintf("multicycle_%d_%s", mp.Cycles, mp.Type)
	for _, e := range edges {
		p.updater.UpdateEdgeField(e, "timing_exception", exception, fieldsource.Declared, provenance.StageConstraint, p.file, line)
	}
	return len(edges)
}

// ApplyDelay implements `set_max_delay` / `set_min_delay`: writes
// parameters["max_delay"|"min_delay"] on every matched edge.
func (p *Projector) ApplyDelay(d Delay, line int) int {
	field := "min_delay"
	if d.IsMax {
		field = "max_delay"
	}
	edges := p.matchingEdges(d.From, d.To)
	for _, e := range edges {
		p.updater.UpdateEdgeField(e, field, d.Value, fieldsource.Declared, provenance.StageConstraint, p.file, line)
	}
	return len(edges)
}

// ApplyIODelay implements `set_input_delay` / `set_output_delay`: writes
// attributes["input_delay"|"output_delay"] on every matched port node.
func (p *Projector) ApplyIODelay(d IODelay, line int) int {
	field := "output_delay"
	if d.IsInput {
		field = "input_delay"
	}
	nodes := p.matchingNodes(d.TargetPorts)
	for _, n := range nodes {
		p.updater.UpdateNodeField(n, field, d.Value, fieldsource.Declared, provenance.StageConstraint, p.file, line)
	}
	return len(nodes)
}

// ApplyProperty implements `set_property`: writes an arbitrary key/value
// onto every matched node (LOC, IOSTANDARD, pblock assignment, and any
// vendor property that doesn't fit the five named record kinds).
func (p *Projector) ApplyProperty(pr Property, line int) int {
	nodes := p.matchingNodes(pr.Targets)
	for _, n := range nodes {
		p.updater.UpdateNodeField(n, pr.Key, pr.Value, fieldsource.Declared, provenance.StageConstraint, p.file, line)
	}
	return len(nodes)
}
