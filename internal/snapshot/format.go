// Package snapshot serializes a base graph, its SuperGraphs, and a version
// record to a textual YAML format (spec §4.10, §6). Enum values are
// written as their string names; bit_range becomes a 2-tuple; super-edge
// composite keys are written as "{src}|{dst}".
package snapshot

import "github.com/nandgate/hwdkg/internal/graphmodel"

// Version mirrors graphmodel's version record (spec §3).
type Version struct {
	RTLHash        string            `yaml:"rtl_hash"`
	ConstraintHash string            `yaml:"constraint_hash,omitempty"`
	TimingHash     string            `yaml:"timing_hash,omitempty"`
	PolicyVersions map[string]string `yaml:"policy_versions"`
}

// BitRangeDoc is the 2-tuple [msb, lsb] wire form of graphmodel.BitRange.
type BitRangeDoc [2]int

// NodeDoc is the textual form of a graphmodel.Node.
type NodeDoc struct {
	ID             string                 `yaml:"id"`
	EntityClass    string                 `yaml:"entity_class"`
	HierPath       string                 `yaml:"hier_path"`
	LocalName      string                 `yaml:"local_name"`
	CanonicalName  string                 `yaml:"canonical_name,omitempty"`
	Params         map[string]string      `yaml:"params,omitempty"`
	Attributes     map[string]interface{} `yaml:"attributes,omitempty"`
	ClockDomain    *string                `yaml:"clock_domain,omitempty"`
	ArrivalTime    *float64               `yaml:"arrival_time,omitempty"`
	RequiredTime   *float64               `yaml:"required_time,omitempty"`
	Slack          *float64               `yaml:"slack,omitempty"`
	InEdges        []string               `yaml:"in_edges,omitempty"`
	OutEdges       []string               `yaml:"out_edges,omitempty"`
	Provenance     []ProvenanceDoc        `yaml:"provenance,omitempty"`
	PrimaryProv    int                    `yaml:"primary_prov"`
}

// EdgeDoc is the textual form of a graphmodel.Edge.
type EdgeDoc struct {
	ID           string                 `yaml:"id"`
	SrcNode      string                 `yaml:"src_node"`
	DstNode      string                 `yaml:"dst_node"`
	Relation     string                 `yaml:"relation_type"`
	Flow         string                 `yaml:"flow_type"`
	SignalName   string                 `yaml:"signal_name,omitempty"`
	BitRange     *BitRangeDoc           `yaml:"bit_range,omitempty"`
	Delay        *float64               `yaml:"delay,omitempty"`
	ArrivalTime  *float64               `yaml:"arrival_time,omitempty"`
	RequiredTime *float64               `yaml:"required_time,omitempty"`
	Slack        *float64               `yaml:"slack,omitempty"`
	Params       map[string]interface{} `yaml:"params,omitempty"`
	Attributes   map[string]interface{} `yaml:"attributes,omitempty"`
	Provenance   []ProvenanceDoc        `yaml:"provenance,omitempty"`
	PrimaryProv  int                    `yaml:"primary_prov"`
}

// ProvenanceDoc is the textual form of a graphmodel.ProvenanceRef.
type ProvenanceDoc struct {
	OriginFile string `yaml:"origin_file,omitempty"`
	OriginLine int    `yaml:"origin_line,omitempty"`
	Stage      string `yaml:"stage"`
	Confidence string `yaml:"confidence"`
}

// SuperNodeDoc is the textual form of a graphmodel.SuperNode.
type SuperNodeDoc struct {
	ID          string                 `yaml:"id"`
	SuperClass  string                 `yaml:"super_class"`
	MemberNodes []string               `yaml:"member_nodes"`
	MemberEdges []string               `yaml:"member_edges"`
	Attributes  map[string]interface{} `yaml:"attributes,omitempty"`
}

// SuperEdgeDoc is the textual form of a graphmodel.SuperEdge.
type SuperEdgeDoc struct {
	ID            string   `yaml:"id"`
	SrcSuperNode  string   `yaml:"src_super_node"`
	DstSuperNode  string   `yaml:"dst_super_node"`
	MemberEdges   []string `yaml:"member_edges"`
	MemberNodes   []string `yaml:"member_nodes"`
	RelationTypes []string `yaml:"relation_types"`
	FlowTypes     []string `yaml:"flow_types"`
}

// SuperGraphDoc is the textual form of a graphmodel.SuperGraph.
type SuperGraphDoc struct {
	View        string                  `yaml:"view"`
	Context     string                  `yaml:"context"`
	SuperNodes  map[string]SuperNodeDoc `yaml:"super_nodes"`
	SuperEdges  map[string]SuperEdgeDoc `yaml:"super_edges"` // keyed by "{src}|{dst}"
	NodeToSuper map[string]string       `yaml:"node_to_super"`
}

// Document is the top-level snapshot object (spec §6): version, dkg
// {nodes, edges}, optional supergraph.
type Document struct {
	Version    Version                  `yaml:"version"`
	DKG        DKGDoc                   `yaml:"dkg"`
	SuperGraph map[string]SuperGraphDoc `yaml:"supergraph,omitempty"` // keyed by view name
}

// DKGDoc holds the base graph's nodes and edges, keyed by id.
type DKGDoc struct {
	Nodes map[string]NodeDoc `yaml:"nodes"`
	Edges map[string]EdgeDoc `yaml:"edges"`
}

func provToDoc(p []graphmodel.ProvenanceRef) []ProvenanceDoc {
	if len(p) == 0 {
		return nil
	}
	out := make([]ProvenanceDoc, len(p))
	for i, r := range p {
		out[i] = ProvenanceDoc{OriginFile: r.OriginFile, OriginLine: r.OriginLine, Stage: r.Stage, Confidence: r.Confidence}
	}
	return out
}

func docToProv(d []ProvenanceDoc) []graphmodel.ProvenanceRef {
	if len(d) == 0 {
		return nil
	}
	out := make([]graphmodel.ProvenanceRef, len(d))
	for i, r := range d {
		out[i] = graphmodel.ProvenanceRef{OriginFile: r.OriginFile, OriginLine: r.OriginLine, Stage: r.Stage, Confidence: r.Confidence}
	}
	return out
}
