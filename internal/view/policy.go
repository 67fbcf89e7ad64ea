// Package view implements the three-phase PROMOTE/MERGE/ELIMINATE rewrite
// that turns an enriched base graph into a SuperGraph under a per-view,
// per-context node-action policy (spec §4.7).
package view

import "github.com/nandgate/hwdkg/internal/graphmodel"

// View is the closed set of abstraction views the builder can produce.
type View string

const (
	ViewStructural   View = "Structural"
	ViewConnectivity View = "Connectivity"
	ViewPhysical     View = "Physical"
)

// Context is the closed set of build contexts.
type Context string

const (
	ContextDesign     Context = "Design"
	ContextSimulation Context = "Simulation"
)

// Action is the three-way node disposition the policy table assigns.
type Action string

const (
	ActionPromote   Action = "Promote"
	ActionMerge     Action = "Merge"
	ActionEliminate Action = "Eliminate"
)

// NodePolicy is the (action, target super-class) pair returned by a policy
// table lookup. Promote always yields an Atomic super-node and ignores
// MergeClass. For Merge, MergeClass is the merged super-node's class; for
// Eliminate, a non-empty MergeClass is the singleton super-node's class,
// which otherwise defaults to Eliminated (spec §4.7).
type NodePolicy struct {
	Action     Action
	MergeClass graphmodel.SuperClass
}

type policyKey struct {
	context Context
	view    View
	class   graphmodel.EntityClass
}

// PolicyTable is the static (context, view, entity_class) -> NodePolicy map.
// A missing entry defaults to Eliminate/Eliminated.
type PolicyTable map[policyKey]NodePolicy

// Set installs the policy for (context, view, class).
func (t PolicyTable) Set(context Context, view View, class graphmodel.EntityClass, p NodePolicy) {
	t[policyKey{context, view, class}] = p
}

// Lookup resolves the base policy for (context, view, class), defaulting to
// Eliminate/Eliminated on a miss.
func (t PolicyTable) Lookup(context Context, view View, class graphmodel.EntityClass) NodePolicy {
	if p, ok := t[policyKey{context, view, class}]; ok {
		return p
	}
	return NodePolicy{Action: ActionEliminate, MergeClass: graphmodel.SuperClassEliminated}
}

// DefaultPolicyTable returns the built-in policy table. In Structural and
// Connectivity, FlipFlops, ModuleInstances, FSMs and boundary/physical
// entities (ports, pins, connectors, pblocks) are Promoted, and
// combinational logic (RTLBlock/LUT/MUX/DSP/BRAM) merges into a view-
// appropriate cloud. In Physical, pins, connectors and pblocks are
// Promoted, IOPorts merge into an IOCluster, and FlipFlops, logic and
// ModuleInstance/FSM entities merge into a ConstraintGroup (open question
// resolution, recorded in DESIGN.md: the
// spec gives one worked scenario — Connectivity/Design — and leaves the
// remaining view/context combinations to implementation choice).
func DefaultPolicyTable() PolicyTable {
	t := PolicyTable{}

	promoteAtomic := NodePolicy{Action: ActionPromote}
	logicClasses := []graphmodel.EntityClass{
		graphmodel.ClassRTLBlock, graphmodel.ClassLUT, graphmodel.ClassMUX,
		graphmodel.ClassDSP, graphmodel.ClassBRAM,
	}
	boundaryClasses := []graphmodel.EntityClass{
		graphmodel.ClassIOPort, graphmodel.ClassPackagePin,
		graphmodel.ClassBoardConnector, graphmodel.ClassPblock,
	}
	structuralAtomic := []graphmodel.EntityClass{
		graphmodel.ClassModuleInstance, graphmodel.ClassFSM,
	}

	for _, view := range []View{ViewStructural, ViewConnectivity} {
		for _, ctx := range []Context{ContextDesign, ContextSimulation} {
			t.Set(ctx, view, graphmodel.ClassFlipFlop, promoteAtomic)
			for _, c := range boundaryClasses {
				t.Set(ctx, view, c, promoteAtomic)
			}
			for _, c := range structuralAtomic {
				t.Set(ctx, view, c, promoteAtomic)
			}
			mergeClass := graphmodel.SuperClassModuleCluster
			if view == ViewConnectivity {
				mergeClass = graphmodel.SuperClassCombinationalCloud
			}
			for _, c := range logicClasses {
				t.Set(ctx, view, c, NodePolicy{Action: ActionMerge, MergeClass: mergeClass})
			}
		}
	}

	for _, ctx := range []Context{ContextDesign, ContextSimulation} {
		for _, c := range []graphmodel.EntityClass{graphmodel.ClassPackagePin, graphmodel.ClassBoardConnector, graphmodel.ClassPblock} {
			t.Set(ctx, ViewPhysical, c, promoteAtomic)
		}
		t.Set(ctx, ViewPhysical, graphmodel.ClassIOPort, NodePolicy{Action: ActionMerge, MergeClass: graphmodel.SuperClassIOCluster})
		for _, c := range append(append([]graphmodel.EntityClass{graphmodel.ClassFlipFlop}, logicClasses...), structuralAtomic...) {
			t.Set(ctx, ViewPhysical, c, NodePolicy{Action: ActionMerge, MergeClass: graphmodel.SuperClassConstraintGroup})
		}
	}

	return t
}
