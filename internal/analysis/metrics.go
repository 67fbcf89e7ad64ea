// Package analysis attaches immutable, statistical metrics bundles to a
// SuperGraph's super-nodes and super-edges. The Aggregator never mutates
// base entities or structural SuperGraph fields — it only writes under a
// single AnalysisKind key, replacing the prior bundle atomically.
package analysis

import (
	"sort"

	"github.com/nandgate/hwdkg/internal/graphmodel"
)

// DefaultNearCriticalAlpha is the α multiplier against clock period used by
// near_critical_ratio when the caller supplies no override.
const DefaultNearCriticalAlpha = 0.1

// TimingNodeMetrics is the immutable bundle attached under
// AnalysisKindTiming on a SuperNode.
type TimingNodeMetrics struct {
	MinSlack          *float64
	P5Slack           *float64
	MaxArrivalTime    *float64
	MinRequiredTime   *float64
	CriticalNodeRatio float64
	NearCriticalRatio float64
	TimingRiskScore   float64
	SampleSize        int
}

// TimingEdgeMetrics is the immutable bundle attached under
// AnalysisKindTiming on a SuperEdge.
type TimingEdgeMetrics struct {
	MaxDelay          *float64
	P95Delay          *float64
	FlowTypeHistogram map[graphmodel.FlowType]int
	FanoutMax         *int
	FanoutP95         *float64
	SampleSize        int
}

// Options parameterizes the risk-score computation. The clock period is
// always looked up per super-node from its members' "clock_period"
// attribute; when no member carries one, ratio/score terms that need a
// clock period are left at zero rather than dividing by zero.
type Options struct {
	NearCriticalAlpha float64
}

// percentile returns the linear-interpolated p-th percentile (0..1) of a
// sorted copy of xs. xs is never mutated.
func percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p * float64(len(sorted)-1)
	lo := int(rank)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func clockPeriodOf(g *graphmodel.Graph, memberIDs map[string]bool) float64 {
	for id := range memberIDs {
		n, ok := g.Nodes[id]
		if !ok {
			continue
		}
		if v, ok := n.Attributes["clock_period"].(float64); ok && v > 0 {
			return v
		}
	}
	return 0
}

// ComputeNodeMetrics rolls up TimingNodeMetrics for a single super-node from
// its member nodes' slack/arrival/required fields.
func ComputeNodeMetrics(g *graphmodel.Graph, sn *graphmodel.SuperNode, opts Options) TimingNodeMetrics {
	alpha := opts.NearCriticalAlpha
	if alpha <= 0 {
		alpha = DefaultNearCriticalAlpha
	}

	var slacks, arrivals, requireds []float64
	for id := range sn.MemberNodes {
		n, ok := g.Nodes[id]
		if !ok {
			continue
		}
		if n.Slack != nil {
			slacks = append(slacks, *n.Slack)
		}
		if n.ArrivalTime != nil {
			arrivals = append(arrivals, *n.ArrivalTime)
		}
		if n.RequiredTime != nil {
			requireds = append(requireds, *n.RequiredTime)
		}
	}

	m := TimingNodeMetrics{SampleSize: len(slacks)}
	if len(slacks) == 0 {
		return m
	}

	minSlack := slacks[0]
	for _, s := range slacks[1:] {
		if s < minSlack {
			minSlack = s
		}
	}
	m.MinSlack = &minSlack

	p5 := percentile(slacks, 0.05)
	m.P5Slack = &p5

	if len(arrivals) > 0 {
		maxArrival := arrivals[0]
		for _, a := range arrivals[1:] {
			if a > maxArrival {
				maxArrival = a
			}
		}
		m.MaxArrivalTime = &maxArrival
	}

	if len(requireds) > 0 {
		minRequired := requireds[0]
		for _, r := range requireds[1:] {
			if r < minRequired {
				minRequired = r
			}
		}
		m.MinRequiredTime = &minRequired
	}

	critical := 0
	for _, s := range slacks {
		if s < 0 {
			critical++
		}
	}
	m.CriticalNodeRatio = float64(critical) / float64(len(slacks))

	clock := clockPeriodOf(g, sn.MemberNodes)
	if clock > 0 {
		nearCritical := 0
		for _, s := range slacks {
			if s < alpha*clock {
				nearCritical++
			}
		}
		m.NearCriticalRatio = float64(nearCritical) / float64(len(slacks))
		m.TimingRiskScore = m.CriticalNodeRatio*10 + (1-clamp01((minSlack+clock)/clock))*5
	} else {
		m.TimingRiskScore = m.CriticalNodeRatio * 10
	}

	return m
}

// ComputeEdgeMetrics rolls up TimingEdgeMetrics for a single super-edge from
// its member edges' delay fields and flow-type spread.
func ComputeEdgeMetrics(g *graphmodel.Graph, se *graphmodel.SuperEdge) TimingEdgeMetrics {
	m := TimingEdgeMetrics{FlowTypeHistogram: map[graphmodel.FlowType]int{}}

	var delays []float64
	fanoutBySrc := map[string]int{}

	for id := range se.MemberEdges {
		e, ok := g.Edges[id]
		if !ok {
			continue
		}
		if e.Delay != nil {
			delays = append(delays, *e.Delay)
		}
		m.FlowTypeHistogram[e.Flow]++
		fanoutBySrc[e.SrcNode]++
	}
	m.SampleSize = len(delays)

	if len(delays) > 0 {
		maxDelay := delays[0]
		for _, d := range delays[1:] {
			if d > maxDelay {
				maxDelay = d
			}
		}
		m.MaxDelay = &maxDelay
		p95 := percentile(delays, 0.95)
		m.P95Delay = &p95
	}

	if len(fanoutBySrc) > 0 {
		fanouts := make([]float64, 0, len(fanoutBySrc))
		maxFanout := 0
		for _, n := range fanoutBySrc {
			fanouts = append(fanouts, float64(n))
			if n > maxFanout {
				maxFanout = n
			}
		}
		m.FanoutMax = &maxFanout
		p95 := percentile(fanouts, 0.95)
		m.FanoutP95 = &p95
	}

	return m
}

// Aggregate computes and attaches TimingNodeMetrics/TimingEdgeMetrics for
// every super-node/super-edge in sg, replacing any prior
// AnalysisKindTiming bundle. Base entities and SuperGraph structural fields
// are never touched.
func Aggregate(g *graphmodel.Graph, sg *graphmodel.SuperGraph, opts Options) {
	for _, sn := range sg.SuperNodes {
		sn.Analysis[graphmodel.AnalysisKindTiming] = ComputeNodeMetrics(g, sn, opts)
	}
	for _, se := range sg.SuperEdges {
		se.Analysis[graphmodel.AnalysisKindTiming] = ComputeEdgeMetrics(g, se)
	}
}
