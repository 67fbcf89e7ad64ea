package netlist

import (
	"github.com/nandgate/hwdkg/internal/graphmodel"
	"github.com/nandgate/hwdkg/internal/identity"
)

// classifyClockReset runs the three-stage clock/reset classification of
// spec §4.3 step 8: structural (FF port bindings), signal-name heuristic,
// then FF-input confirmation. Returns the resulting clock/reset net-name
// sets.
func classifyClockReset(g *graphmodel.Graph, cells []cellRecord, wires map[int]*wire) (clockNets, resetNets map[string]bool) {
	clockNets = map[string]bool{}
	resetNets = map[string]bool{}

	// Stage 1: structural, from FF cell port bindings.
	for _, c := range cells {
		if !ffCellTypes[c.cellType] {
			continue
		}
		addNamesFromPort(c, "CLK", wires, clockNets)
		for _, p := range asyncResetPorts {
			addNamesFromPort(c, p, wires, resetNets)
		}
		for _, p := range syncResetPorts {
			addNamesFromPort(c, p, wires, resetNets)
		}
	}

	// Stage 2: signal-name heuristic over every edge.
	for _, e := range g.Edges {
		if isClockName(e.SignalName) {
			clockNets[e.SignalName] = true
		}
		if isResetName(e.SignalName) {
			resetNets[e.SignalName] = true
		}
	}

	// Stage 3: FF-input confirmation, second pass over in-edges of FF nodes.
	for _, n := range g.Nodes {
		if n.EntityClass != graphmodel.ClassFlipFlop {
			continue
		}
		for _, eid := range n.InEdges {
			e := g.Edges[eid]
			if isClockName(e.SignalName) {
				clockNets[e.SignalName] = true
			}
			if isResetName(e.SignalName) {
				resetNets[e.SignalName] = true
			}
		}
	}

	return clockNets, resetNets
}

func addNamesFromPort(c cellRecord, port string, wires map[int]*wire, dst map[string]bool) {
	bits, ok := c.connections[port]
	if !ok {
		return
	}
	for _, b := range bits {
		if !b.IsWire {
			continue
		}
		if w, ok := wires[b.WireID]; ok && w.name != "" {
			dst[w.name] = true
		}
	}
}

// assignFlowTypes implements spec §4.3 step 9: clock set → ClockTree,
// reset set → AsyncReset, src is FlipFlop → SeqLaunch, dst is FlipFlop →
// SeqCapture, else Combinational.
func assignFlowTypes(g *graphmodel.Graph, clockNets, resetNets map[string]bool) {
	for _, e := range g.Edges {
		switch {
		case clockNets[e.SignalName]:
			e.Flow = graphmodel.FlowClockTree
		case resetNets[e.SignalName]:
			e.Flow = graphmodel.FlowAsyncReset
		case g.Nodes[e.SrcNode].EntityClass == graphmodel.ClassFlipFlop:
			e.Flow = graphmodel.FlowSeqLaunch
		case g.Nodes[e.DstNode].EntityClass == graphmodel.ClassFlipFlop:
			e.Flow = graphmodel.FlowSeqCapture
		default:
			e.Flow = graphmodel.FlowCombinational
		}
	}
}

// assignClockDomains implements spec §4.3 step 10: for each FlipFlop, set
// clock_domain to the signal of the first incoming edge whose signal is in
// the clock set (first-observed wins — see design notes open question).
// InEdges is sorted by edge id before the scan: edge ids are content hashes,
// not insertion order, so selecting by map/slice iteration order would make
// the chosen domain nondeterministic across runs.
func assignClockDomains(g *graphmodel.Graph, clockNets map[string]bool) {
	for _, n := range g.Nodes {
		if n.EntityClass != graphmodel.ClassFlipFlop {
			continue
		}
		for _, eid := range identity.Sorted(n.InEdges) {
			e := g.Edges[eid]
			if clockNets[e.SignalName] {
				domain := e.SignalName
				n.ClockDomain = &domain
				break
			}
		}
	}
}
