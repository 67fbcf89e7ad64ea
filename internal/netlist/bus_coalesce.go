package netlist

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/nandgate/hwdkg/internal/graphmodel"
	"github.com/nandgate/hwdkg/internal/identity"
	"github.com/nandgate/hwdkg/internal/provenance"
	"github.com/RoaringBitmap/roaring/v2"
)

var bitIndexPattern = regexp.MustCompile(`^(.*)\[(\d+)\]$`)

// splitSignalBit splits "data[3]" into ("data", 3, true) or returns the
// whole name unsplit with ok=false for plain signals.
func splitSignalBit(signal string) (base string, bit int, ok bool) {
	m := bitIndexPattern.FindStringSubmatch(signal)
	if m == nil {
		return signal, 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return signal, 0, false
	}
	return m[1], n, true
}

type coalesceKey struct {
	src, dst   string
	relation   graphmodel.RelationType
	flow       graphmodel.FlowType
	baseSignal string
}

// coalesceBusEdges groups edges by (src, dst, relation, flow, base_signal),
// sorts each group by bit index (none first), and merges maximal runs of
// strictly descending consecutive bit indices into a single bus edge
// (spec §4.3 step 6). Edges without a bit index pass through unchanged.
func coalesceBusEdges(g *graphmodel.Graph) {
	groups := map[coalesceKey][]*graphmodel.Edge{}
	bitOf := map[string]int{}
	hasBit := map[string]bool{}

	for id, e := range g.Edges {
		base, bit, ok := splitSignalBit(e.SignalName)
		key := coalesceKey{e.SrcNode, e.DstNode, e.Relation, e.Flow, base}
		groups[key] = append(groups[key], e)
		if ok {
			bitOf[id] = bit
			hasBit[id] = true
		}
	}

	newEdges := map[string]*graphmodel.Edge{}

	// Iterate over groups in a deterministic order (sorted by key string).
	keys := make([]coalesceKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
	})

	for _, key := range keys {
		items := groups[key]

		allPlain := true
		for _, e := range items {
			if hasBit[e.ID] {
				allPlain = false
				break
			}
		}
		if allPlain {
			for _, e := range items {
				newEdges[e.ID] = e
			}
			continue
		}

		// sort: no-bit-index first, then descending bit, so that maximal runs
		// of strictly descending consecutive indices (e.g. 3,2,1,0) appear
		// contiguously and can be detected with a single forward scan.
		sort.SliceStable(items, func(i, j int) bool {
			bi, biok := bitOf[items[i].ID], hasBit[items[i].ID]
			bj, bjok := bitOf[items[j].ID], hasBit[items[j].ID]
			if !biok && !bjok {
				return false
			}
			if !biok {
				return true
			}
			if !bjok {
				return false
			}
			return bi > bj
		})

		var bucket []*graphmodel.Edge
		bits := roaring.New()
		prevBit := -1
		havePrev := false

		flush := func() {
			if len(bucket) == 0 {
				return
			}
			if bits.GetCardinality() <= 1 {
				newEdges[bucket[0].ID] = bucket[0]
				bucket = nil
				bits.Clear()
				return
			}
			msb := int(bits.Maximum())
			lsb := int(bits.Minimum())
			merged := mergeBucket(key, bucket, msb, lsb)
			newEdges[merged.ID] = merged
			bucket = nil
			bits.Clear()
		}

		for _, e := range items {
			if !hasBit[e.ID] {
				flush()
				newEdges[e.ID] = e
				havePrev = false
				continue
			}
			bit := bitOf[e.ID]
			if !havePrev || bit == prevBit-1 {
				bucket = append(bucket, e)
				bits.Add(uint32(bit))
			} else {
				flush()
				bucket = []*graphmodel.Edge{e}
				bits.Add(uint32(bit))
			}
			prevBit = bit
			havePrev = true
		}
		flush()
	}

	g.Edges = newEdges
}

func mergeBucket(key coalesceKey, bucket []*graphmodel.Edge, msb, lsb int) *graphmodel.Edge {
	base := bucket[0]
	merged := graphmodel.NewEdge(base.ID, key.src, key.dst, key.relation, key.flow)
	merged.SignalName = fmt.Sprintf("%s[%d:%d]", key.baseSignal, msb, lsb)
	merged.BitRange = &graphmodel.BitRange{MSB: msb, LSB: lsb}
	merged.CreatedAtStage = base.CreatedAtStage

	bits := make([]int, 0, len(bucket))
	var plist []provenance.List
	for _, e := range bucket {
		if _, bit, ok := splitSignalBit(e.SignalName); ok {
			bits = append(bits, bit)
		}
		var pl provenance.List
		for i, p := range e.Provenance {
			provenance.Add(&pl, fromRef(p), i == e.PrimaryProv)
		}
		plist = append(plist, pl)
	}
	sort.Ints(bits)
	merged.Attributes["merged_bits"] = bits

	primary, all := provenance.Merge(plist)
	merged.Provenance = make([]graphmodel.ProvenanceRef, len(all))
	for i, r := range all {
		merged.Provenance[i] = toRef(r)
	}
	merged.Provenance = append(merged.Provenance, toRef(primary))
	merged.PrimaryProv = len(merged.Provenance) - 1

	return merged
}

func fromRef(r graphmodel.ProvenanceRef) provenance.Record {
	return provenance.Record{
		OriginFile: r.OriginFile,
		OriginLine: r.OriginLine,
		Stage:      provenance.ToolStage(r.Stage),
		Confidence: provenance.Confidence(r.Confidence),
	}
}

// reIDEdges recomputes every edge's id under the §4.1 signature after
// coalescing and rebuilds the edge map keyed by the new ids.
func reIDEdges(g *graphmodel.Graph) {
	newEdges := map[string]*graphmodel.Edge{}
	for _, e := range g.Edges {
		bitRange := ""
		if e.BitRange != nil {
			bitRange = fmt.Sprintf("%d:%d", e.BitRange.MSB, e.BitRange.LSB)
		}
		e.ID = identity.EdgeID(string(e.Relation), e.SrcNode, e.DstNode, string(e.Flow), e.SignalName, bitRange)
		newEdges[e.ID] = e
	}
	g.Edges = newEdges
}
