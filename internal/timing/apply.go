package timing

import (
	"strings"

	"github.com/nandgate/hwdkg/internal/fieldsource"
	"github.com/nandgate/hwdkg/internal/graphmodel"
	"github.com/nandgate/hwdkg/internal/logging"
	"github.com/nandgate/hwdkg/internal/provenance"
)

// Ingestor applies parsed timing paths onto a graph through the
// field-source Updater, at Analyzed priority under stage "timing".
type Ingestor struct {
	g       *graphmodel.Graph
	updater *fieldsource.Updater
	diag    *logging.Diagnostics
	file    string
}

// NewIngestor returns an Ingestor writing to g through updater.
func NewIngestor(g *graphmodel.Graph, updater *fieldsource.Updater, diag *logging.Diagnostics, file string) *Ingestor {
	return &Ingestor{g: g, updater: updater, diag: diag, file: file}
}

func (in *Ingestor) warn(msg string, fields map[string]interface{}) {
	if in.diag != nil {
		in.diag.Warn(msg, fields)
	}
}

// Apply applies every path to the graph: worst-case node reduction, per-path
// metadata accumulation, and edge delay from consecutive stage pairs (spec
// §4.6).
func (in *Ingestor) Apply(paths []Path, line int) {
	for _, p := range paths {
		in.updateNodeTiming(p.Startpoint, p, false)
		in.updateNodeTiming(p.Endpoint, p, true)

		for i := 0; i+1 < len(p.Stages); i++ {
			in.updateEdgeTiming(p.Stages[i], p.Stages[i+1], p, line)
		}
	}
}

// updateNodeTiming implements the worst-case reduction: slack <- min,
// arrival_time <- max, required_time <- min, clock_domain filled only if
// currently empty (first-observed wins — spec §9 open question). Path-level
// observations are also appended to metadata["timing_slacks"] so no
// observation is lost even though only the worst value lands on the typed
// field.
func (in *Ingestor) updateNodeTiming(name string, p Path, isEndpoint bool) {
	n := in.findNode(name)
	if n == nil {
		in.warn("no matching node for timing path endpoint", map[string]interface{}{"name": name})
		return
	}

	if !isEndpoint && p.Slack != nil {
		if n.Slack == nil || *p.Slack < *n.Slack {
			in.updater.UpdateNodeField(n, "slack", *p.Slack, fieldsource.Analyzed, provenance.StageTiming, in.file, 0)
		}
		slacks, _ := n.Attributes["timing_slacks"].([]map[string]interface{})
		slacks = append(slacks, map[string]interface{}{
			"slack": *p.Slack, "path_type": string(p.PathType), "clock": p.Clock, "endpoint": p.Endpoint,
		})
		n.Attributes["timing_slacks"] = slacks
	}

	if p.ArrivalTime != nil && (n.ArrivalTime == nil || *p.ArrivalTime > *n.ArrivalTime) {
		in.updater.UpdateNodeField(n, "arrival_time", *p.ArrivalTime, fieldsource.Analyzed, provenance.StageTiming, in.file, 0)
	}
	if p.RequiredTime != nil && (n.RequiredTime == nil || *p.RequiredTime < *n.RequiredTime) {
		in.updater.UpdateNodeField(n, "required_time", *p.RequiredTime, fieldsource.Analyzed, provenance.StageTiming, in.file, 0)
	}
	if p.Clock != "" && n.ClockDomain == nil {
		in.updater.UpdateNodeField(n, "clock_domain", p.Clock, fieldsource.Analyzed, provenance.StageTiming, in.file, 0)
	}
}

func (in *Ingestor) updateEdgeTiming(src, dst Stage, p Path, line int) {
	e := in.findEdge(src.Point, dst.Point)
	if e == nil {
		in.warn("no matching edge for timing stage pair", map[string]interface{}{"src": src.Point, "dst": dst.Point})
		return
	}

	if e.Delay == nil || dst.IncrDelay > *e.Delay {
		in.updater.UpdateEdgeField(e, "delay", dst.IncrDelay, fieldsource.Analyzed, provenance.StageTiming, in.file, line)
	}
	delays, _ := e.Attributes["timing_delays"].([]map[string]interface{})
	delays = append(delays, map[string]interface{}{
		"delay": dst.IncrDelay, "path_type": string(p.PathType), "clock": p.Clock,
	})
	e.Attributes["timing_delays"] = delays

	if e.ArrivalTime == nil || dst.CumulativeDelay > *e.ArrivalTime {
		in.updater.UpdateEdgeField(e, "arrival_time", dst.CumulativeDelay, fieldsource.Analyzed, provenance.StageTiming, in.file, line)
	}
}

// findNode performs the fuzzy lookup cascade of spec §4.6: exact id ->
// hier_path -> canonical_name -> substring.
func (in *Ingestor) findNode(name string) *graphmodel.Node {
	if n, ok := in.g.Nodes[name]; ok {
		return n
	}
	for _, n := range in.g.Nodes {
		if n.HierPath == name {
			return n
		}
	}
	for _, n := range in.g.Nodes {
		if n.CanonicalName == name {
			return n
		}
	}
	for _, n := range in.g.Nodes {
		if strings.Contains(name, n.HierPath) || strings.Contains(n.HierPath, name) {
			return n
		}
	}
	return nil
}

// findEdge locates the edge whose endpoints fuzzy-match srcPoint/dstPoint,
// using the same cascade per endpoint via findNode, then looking up the
// edge connecting those two resolved nodes; falls back to substring
// matching directly against edge endpoint names if node resolution fails.
func (in *Ingestor) findEdge(srcPoint, dstPoint string) *graphmodel.Edge {
	srcNode := in.findNode(srcPoint)
	dstNode := in.findNode(dstPoint)
	if srcNode != nil && dstNode != nil {
		for _, e := range in.g.Edges {
			if e.SrcNode == srcNode.ID && e.DstNode == dstNode.ID {
				return e
			}
		}
	}
	for _, e := range in.g.Edges {
		src := in.g.Nodes[e.SrcNode]
		dst := in.g.Nodes[e.DstNode]
		if src == nil || dst == nil {
			continue
		}
		srcMatch := strings.Contains(srcPoint, src.HierPath) || strings.Contains(src.HierPath, srcPoint)
		dstMatch := strings.Contains(dstPoint, dst.HierPath) || strings.Contains(dst.HierPath, dstPoint)
		if srcMatch && dstMatch {
			return e
		}
	}
	return nil
}
