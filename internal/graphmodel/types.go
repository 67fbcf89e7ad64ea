// Package graphmodel holds the base graph entities: Node, Edge, and their
// typed enumerations. Nodes and edges reference each other by string id
// only — never by pointer — so the graph can be content-addressed, hashed,
// and snapshotted without worrying about reference cycles (see design notes
// on arenas).
package graphmodel

// EntityClass is the closed set of hardware entity kinds a Node can be.
type EntityClass string

const (
	ClassModuleInstance EntityClass = "ModuleInstance"
	ClassRTLBlock       EntityClass = "RTLBlock"
	ClassFSM            EntityClass = "FSM"
	ClassFlipFlop       EntityClass = "FlipFlop"
	ClassLUT            EntityClass = "LUT"
	ClassMUX            EntityClass = "MUX"
	ClassDSP            EntityClass = "DSP"
	ClassBRAM           EntityClass = "BRAM"
	ClassIOPort         EntityClass = "IOPort"
	ClassPackagePin     EntityClass = "PackagePin"
	ClassPblock         EntityClass = "Pblock"
	ClassBoardConnector EntityClass = "BoardConnector"
)

// RelationType is the closed set of edge relations.
type RelationType string

const (
	RelationData         RelationType = "Data"
	RelationClock        RelationType = "Clock"
	RelationReset        RelationType = "Reset"
	RelationParameter    RelationType = "Parameter"
	RelationConstraint   RelationType = "Constraint"
	RelationPhysicalMap  RelationType = "PhysicalMap"
)

// FlowType is the closed set of timing-graph roles an edge can play.
type FlowType string

const (
	FlowCombinational FlowType = "Combinational"
	FlowSeqLaunch     FlowType = "SeqLaunch"
	FlowSeqCapture    FlowType = "SeqCapture"
	FlowClockTree     FlowType = "ClockTree"
	FlowAsyncReset    FlowType = "AsyncReset"
)

// BitRange is an inclusive [msb, lsb] bus range produced by coalescing.
type BitRange struct {
	MSB int
	LSB int
}

// Node is a logical or physical hardware entity.
type Node struct {
	ID             string
	EntityClass    EntityClass
	HierPath       string
	LocalName      string
	CanonicalName  string // derived debug label, not stable, never hashed
	Params         map[string]string
	Attributes     map[string]interface{}
	ClockDomain    *string
	ArrivalTime    *float64
	RequiredTime   *float64
	Slack          *float64
	InEdges        []string
	OutEdges       []string
	Provenance     []ProvenanceRef
	PrimaryProv    int // index into Provenance, -1 if none

	// Supplemental bookkeeping fields (SPEC_FULL §4), never consulted by
	// any invariant or matching rule.
	DebugTags      []string
	CreatedAtStage string
}

// Edge is a directed relation between two nodes.
type Edge struct {
	ID           string
	SrcNode      string
	DstNode      string
	Relation     RelationType
	Flow         FlowType
	SignalName   string
	BitRange     *BitRange
	Delay        *float64
	ArrivalTime  *float64
	RequiredTime *float64
	Slack        *float64
	Params       map[string]interface{}
	Attributes   map[string]interface{}
	Provenance   []ProvenanceRef
	PrimaryProv  int

	CreatedAtStage string
}

// ProvenanceRef mirrors provenance.Record but lives in graphmodel to avoid
// an import cycle; internal/netlist converts between the two.
type ProvenanceRef struct {
	OriginFile string
	OriginLine int
	Stage      string
	Confidence string
}

// NewNode allocates a Node with initialized maps/slices and PrimaryProv unset.
func NewNode(id string, class EntityClass) *Node {
	return &Node{
		ID:          id,
		EntityClass: class,
		Params:      map[string]string{},
		Attributes:  map[string]interface{}{},
		PrimaryProv: -1,
	}
}

// NewEdge allocates an Edge with initialized maps and PrimaryProv unset.
func NewEdge(id, src, dst string, relation RelationType, flow FlowType) *Edge {
	return &Edge{
		ID:          id,
		SrcNode:     src,
		DstNode:     dst,
		Relation:    relation,
		Flow:        flow,
		Params:      map[string]interface{}{},
		Attributes:  map[string]interface{}{},
		PrimaryProv: -1,
	}
}
