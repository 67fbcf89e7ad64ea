package graphmodel

// SuperClass is the closed set of super-node roles the View Builder emits.
type SuperClass string

const (
	SuperClassAtomic             SuperClass = "Atomic"
	SuperClassModuleCluster      SuperClass = "ModuleCluster"
	SuperClassSequentialChain    SuperClass = "SequentialChain"
	SuperClassCombinationalCloud SuperClass = "CombinationalCloud"
	SuperClassIOCluster          SuperClass = "IOCluster"
	SuperClassConstraintGroup    SuperClass = "ConstraintGroup"
	SuperClassEliminated         SuperClass = "Eliminated"
)

// AnalysisKind names an immutable metrics bundle attached to a super-node
// or super-edge by the Analysis Aggregator.
type AnalysisKind string

const (
	AnalysisKindTiming AnalysisKind = "timing"
)

// SuperNode is emitted by the View Builder; see spec §3.
type SuperNode struct {
	ID           string
	SuperClass   SuperClass
	MemberNodes  map[string]bool
	MemberEdges  map[string]bool
	Attributes   map[string]interface{}
	Provenance   []ProvenanceRef
	Analysis     map[AnalysisKind]interface{}
}

// NewSuperNode allocates a SuperNode with initialized sets/maps.
func NewSuperNode(id string, class SuperClass) *SuperNode {
	return &SuperNode{
		ID:          id,
		SuperClass:  class,
		MemberNodes: map[string]bool{},
		MemberEdges: map[string]bool{},
		Attributes:  map[string]interface{}{},
		Analysis:    map[AnalysisKind]interface{}{},
	}
}

// SuperEdge is emitted by the View Builder; see spec §3.
type SuperEdge struct {
	ID            string
	SrcSuperNode  string
	DstSuperNode  string
	MemberEdges   map[string]bool
	MemberNodes   map[string]bool // endpoint base nodes
	RelationTypes map[RelationType]bool
	FlowTypes     map[FlowType]bool
	Provenance    []ProvenanceRef
	Analysis      map[AnalysisKind]interface{}
}

// NewSuperEdge allocates a SuperEdge with initialized sets/maps.
func NewSuperEdge(id, src, dst string) *SuperEdge {
	return &SuperEdge{
		ID:            id,
		SrcSuperNode:  src,
		DstSuperNode:  dst,
		MemberEdges:   map[string]bool{},
		MemberNodes:   map[string]bool{},
		RelationTypes: map[RelationType]bool{},
		FlowTypes:     map[FlowType]bool{},
		Analysis:      map[AnalysisKind]interface{}{},
	}
}

// SuperGraph is the View Builder's output: every base node maps to exactly
// one super-node (NodeToSuper is total), super-edges key on (src_sn, dst_sn)
// via SuperEdgeKey.
type SuperGraph struct {
	View         string
	Context      string
	SuperNodes   map[string]*SuperNode
	SuperEdges   map[string]*SuperEdge // keyed by SuperEdgeKey(src, dst)
	NodeToSuper  map[string]string
}

// SuperEdgeKey is the composite lookup key for a SuperGraph's SuperEdges
// map: "{src}|{dst}" — `|` cannot appear in a super-node id (ids are
// SN_.../hex), so the split back into (src, dst) is unambiguous (spec §6).
func SuperEdgeKey(src, dst string) string { return src + "|" + dst }

// NewSuperGraph returns an empty SuperGraph for the given view/context.
func NewSuperGraph(view, context string) *SuperGraph {
	return &SuperGraph{
		View:        view,
		Context:     context,
		SuperNodes:  map[string]*SuperNode{},
		SuperEdges:  map[string]*SuperEdge{},
		NodeToSuper: map[string]string{},
	}
}
