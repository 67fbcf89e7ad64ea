// Package fieldsource implements the field-source priority lattice and the
// Updater that every enrichment pass (constraint projection, timing
// ingestion, RTL inference) writes graph field values through. A field is
// updated only when the incoming source's priority is greater than or equal
// to the field's current source — later Inferred passes can never revert an
// earlier Declared value (spec §4.4).
package fieldsource

import (
	"github.com/nandgate/hwdkg/internal/graphmodel"
	"github.com/nandgate/hwdkg/internal/provenance"
)

// Source is the field-source lattice, ordered low to high priority.
type Source int

const (
	Inferred Source = iota + 1
	Analyzed
	Declared
	UserOverride
)

func (s Source) String() string {
	switch s {
	case Inferred:
		return "Inferred"
	case Analyzed:
		return "Analyzed"
	case Declared:
		return "Declared"
	case UserOverride:
		return "UserOverride"
	default:
		return "Unknown"
	}
}

// Meta is the per-field bookkeeping record the Updater keeps alongside the
// field's value itself.
type Meta struct {
	Source     Source
	Stage      provenance.ToolStage
	OriginFile string
	OriginLine int
}

// Updater tracks, per (entity id, field name), which source last wrote the
// field. It owns no copy of the value — writes land directly on the Node or
// Edge passed in; Updater only gates whether a write is allowed.
type Updater struct {
	meta map[string]map[string]Meta
}

// NewUpdater returns an Updater with no recorded field writes.
func NewUpdater() *Updater {
	return &Updater{meta: map[string]map[string]Meta{}}
}

// Meta returns the recorded metadata for (entityID, field), if any.
func (u *Updater) Meta(entityID, field string) (Meta, bool) {
	fm, ok := u.meta[entityID]
	if !ok {
		return Meta{}, false
	}
	m, ok := fm[field]
	return m, ok
}

func (u *Updater) allows(entityID, field string, source Source) bool {
	cur, ok := u.Meta(entityID, field)
	if !ok {
		return true
	}
	return source >= cur.Source
}

func (u *Updater) record(entityID, field string, m Meta) {
	if u.meta[entityID] == nil {
		u.meta[entityID] = map[string]Meta{}
	}
	u.meta[entityID][field] = m
}

// UpdateNodeField attempts a monotonic write of field on n. Returns whether
// the write was applied; a false return is not an error — callers do not
// observe exceptions for refusals (spec §4.4).
func (u *Updater) UpdateNodeField(n *graphmodel.Node, field string, value interface{}, source Source, stage provenance.ToolStage, originFile string, originLine int) bool {
	if !u.allows(n.ID, field, source) {
		return false
	}
	applyNodeField(n, field, value)
	u.record(n.ID, field, Meta{Source: source, Stage: stage, OriginFile: originFile, OriginLine: originLine})
	return true
}

// UpdateEdgeField attempts a monotonic write of field on e.
func (u *Updater) UpdateEdgeField(e *graphmodel.Edge, field string, value interface{}, source Source, stage provenance.ToolStage, originFile string, originLine int) bool {
	if !u.allows(e.ID, field, source) {
		return false
	}
	applyEdgeField(e, field, value)
	u.record(e.ID, field, Meta{Source: source, Stage: stage, OriginFile: originFile, OriginLine: originLine})
	return true
}

// applyNodeField writes known typed fields directly; any other field name
// lands in Attributes, keeping the set of recognized fields open-ended.
func applyNodeField(n *graphmodel.Node, field string, value interface{}) {
	switch field {
	case "clock_domain":
		s := value.(string)
		n.ClockDomain = &s
	case "arrival_time":
		f := value.(float64)
		n.ArrivalTime = &f
	case "required_time":
		f := value.(float64)
		n.RequiredTime = &f
	case "slack":
		f := value.(float64)
		n.Slack = &f
	default:
		n.Attributes[field] = value
	}
}

func applyEdgeField(e *graphmodel.Edge, field string, value interface{}) {
	switch field {
	case "delay":
		f := value.(float64)
		e.Delay = &f
	case "arrival_time":
		f := value.(float64)
		e.ArrivalTime = &f
	case "required_time":
		f := value.(float64)
		e.RequiredTime = &f
	case "slack":
		f := value.(float64)
		e.Slack = &f
	case "max_delay", "min_delay":
		e.Params[field] = value
	default:
		e.Attributes[field] = value
	}
}
