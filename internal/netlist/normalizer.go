// Package netlist turns a netlistir.Design into a graphmodel.Graph: wires
// become driver/load edges, cells become nodes, adjacent bit-indexed edges
// coalesce into bus edges, and clock/reset nets are classified through the
// multi-stage heuristic of spec §4.3.
package netlist

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/nandgate/hwdkg/internal/graphmodel"
	"github.com/nandgate/hwdkg/internal/identity"
	"github.com/nandgate/hwdkg/internal/netlistir"
	"github.com/nandgate/hwdkg/internal/provenance"
)

// ffCellTypes is the set of flip-flop-like cell types recognized during
// structural clock/reset classification and node mapping.
var ffCellTypes = map[string]bool{
	"$dff": true, "$adff": true, "$sdff": true,
	"$dffe": true, "$sdffe": true, "$aldff": true, "$aldffe": true,
}

var asyncResetPorts = []string{"ARST", "ARST_N", "NRST", "NRESET"}
var syncResetPorts = []string{"SRST", "SRST_N", "SR", "R", "RST"}

var clockNamePattern = regexp.MustCompile(`(?i)^clk.*|.*_clk$|.*clock.*`)
var resetNamePattern = regexp.MustCompile(`(?i)^rst.*|^reset.*`)

func isClockName(name string) bool { return clockNamePattern.MatchString(name) }
func isResetName(name string) bool { return resetNamePattern.MatchString(name) }

// MapCellType maps a netlist primitive type string to an entity class
// (spec §4.3 step 4).
func MapCellType(cellType string) graphmodel.EntityClass {
	if ffCellTypes[cellType] {
		return graphmodel.ClassFlipFlop
	}
	if cellType == "$mux" || cellType == "$pmux" {
		return graphmodel.ClassMUX
	}
	return graphmodel.ClassRTLBlock
}

// wire is the internal per-net bookkeeping structure (wire table).
type wire struct {
	id      int
	name    string
	src     string
	drivers []string
	loads   []string
}

// cellRecord is a module-qualified, flattened cell.
type cellRecord struct {
	module      string
	name        string
	cellType    string
	portDirs    map[string]netlistir.PortDirection
	connections map[string][]netlistir.Bit
	src         string
}

func (c cellRecord) qualifiedName() string { return c.module + "." + c.name }

// Normalize runs the full IR Normalizer algorithm (spec §4.3 steps 1-10)
// and returns the resulting base graph.
func Normalize(d *netlistir.Design) (*graphmodel.Graph, error) {
	wires := buildWireTable(d)
	cells := flattenCells(d)

	nodeIDs := make(map[string]string, len(cells)) // qualifiedName -> node id
	g := graphmodel.New()

	for _, c := range cells {
		class := MapCellType(c.cellType)
		ports := cellSignaturePorts(c)
		nodeID := identity.NodeID(string(class), c.cellType, c.module, ports)
		nodeIDs[c.qualifiedName()] = nodeID

		if _, exists := g.Nodes[nodeID]; exists {
			continue
		}
		n := graphmodel.NewNode(nodeID, class)
		n.HierPath = c.module
		n.LocalName = c.name
		n.CanonicalName = fmt.Sprintf("%s/%s", c.module, c.name)
		n.CreatedAtStage = "rtl"

		file, line := parseSrc(c.src)
		var provs []graphmodel.ProvenanceRef
		var pl provenance.List
		provenance.Add(&pl, provenance.Record{OriginFile: file, OriginLine: line, Stage: provenance.StageRTL, Confidence: provenance.ConfidenceExact}, true)
		provs = append(provs, toRef(pl.Primary))
		n.Provenance = provs
		n.PrimaryProv = 0

		g.AddNode(n)
	}

	// driver/load attach
	for _, c := range cells {
		nodeID := nodeIDs[c.qualifiedName()]
		for port, bits := range c.connections {
			dir := c.portDirs[port]
			for _, b := range bits {
				if !b.IsWire {
					continue
				}
				w, ok := wires[b.WireID]
				if !ok {
					continue
				}
				if dir == netlistir.DirOut {
					w.drivers = append(w.drivers, nodeID)
				} else {
					w.loads = append(w.loads, nodeID)
				}
			}
		}
	}

	// bit edges: one per (driver, load) pair per wire
	for _, w := range sortedWires(wires) {
		for _, src := range w.drivers {
			for _, dst := range w.loads {
				signalName := w.name
				if signalName == "" {
					signalName = fmt.Sprintf("wire_%d", w.id)
				}
				e := graphmodel.NewEdge("", src, dst, graphmodel.RelationData, graphmodel.FlowCombinational)
				e.SignalName = signalName
				e.CreatedAtStage = "rtl"

				file, line := parseSrc(w.src)
				var pl provenance.List
				provenance.Add(&pl, provenance.Record{OriginFile: file, OriginLine: line, Stage: provenance.StageRTL, Confidence: provenance.ConfidenceExact}, true)
				e.Provenance = []graphmodel.ProvenanceRef{toRef(pl.Primary)}
				e.PrimaryProv = 0

				// temporary id, unique per bit-edge before coalescing; overwritten below
				e.ID = fmt.Sprintf("tmp_%d_%s_%s", w.id, src, dst)
				g.Edges[e.ID] = e
			}
		}
	}

	coalesceBusEdges(g)
	reIDEdges(g)
	g.RebuildAdjacency()

	clockNets, resetNets := classifyClockReset(g, cells, wires)
	assignFlowTypes(g, clockNets, resetNets)
	assignClockDomains(g, clockNets)

	return g, nil
}

func buildWireTable(d *netlistir.Design) map[int]*wire {
	wires := map[int]*wire{}
	get := func(id int) *wire {
		w, ok := wires[id]
		if !ok {
			w = &wire{id: id}
			wires[id] = w
		}
		return w
	}
	for _, mod := range d.Modules {
		for name, nn := range mod.Netnames {
			src := ""
			if nn.Src != nil {
				src = *nn.Src
			}
			for _, b := range nn.Bits {
				if !b.IsWire {
					continue
				}
				w := get(b.WireID)
				w.name = name
				w.src = src
			}
		}
	}
	return wires
}

func flattenCells(d *netlistir.Design) []cellRecord {
	var out []cellRecord
	modNames := make([]string, 0, len(d.Modules))
	for name := range d.Modules {
		modNames = append(modNames, name)
	}
	sort.Strings(modNames)
	for _, modName := range modNames {
		mod := d.Modules[modName]
		cellNames := make([]string, 0, len(mod.Cells))
		for name := range mod.Cells {
			cellNames = append(cellNames, name)
		}
		sort.Strings(cellNames)
		for _, cname := range cellNames {
			c := mod.Cells[cname]
			src := ""
			if c.Src != nil {
				src = *c.Src
			}
			out = append(out, cellRecord{
				module:      modName,
				name:        cname,
				cellType:    c.Type,
				portDirs:    c.PortDirections,
				connections: c.Connections,
				src:         src,
			})
		}
	}
	return out
}

func cellSignaturePorts(c cellRecord) []string {
	ports := make([]string, 0, len(c.connections))
	for port, bits := range c.connections {
		ports = append(ports, fmt.Sprintf("%s:%s:%d", port, c.portDirs[port], len(bits)))
	}
	return ports
}

func sortedWires(wires map[int]*wire) []*wire {
	out := make([]*wire, 0, len(wires))
	for _, w := range wires {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func toRef(r provenance.Record) graphmodel.ProvenanceRef {
	return graphmodel.ProvenanceRef{
		OriginFile: r.OriginFile,
		OriginLine: r.OriginLine,
		Stage:      string(r.Stage),
		Confidence: string(r.Confidence),
	}
}

// parseSrc splits a "file:line.col-col" annotation into (file, line).
func parseSrc(src string) (string, int) {
	if src == "" {
		return "", 0
	}
	// Take only the first annotation if multiple are pipe-joined by the front-end.
	first := strings.Split(src, "|")[0]
	idx := strings.LastIndex(first, ":")
	if idx < 0 {
		return first, 0
	}
	file := first[:idx]
	rest := first[idx+1:]
	lineStr := strings.SplitN(rest, ".", 2)[0]
	line, err := strconv.Atoi(lineStr)
	if err != nil {
		return file, 0
	}
	return file, line
}
