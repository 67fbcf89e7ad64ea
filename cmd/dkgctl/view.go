package main

import (
	"fmt"

	"github.com/nandgate/hwdkg/internal/analysis"
	"github.com/nandgate/hwdkg/internal/graphmodel"
	"github.com/nandgate/hwdkg/internal/snapshot"
	"github.com/nandgate/hwdkg/internal/view"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view <snapshot.yaml> <view-name>",
	Short: "Build a named abstraction view and store it in the snapshot",
	Args:  cobra.ExactArgs(2),
	RunE:  runView,
}

func init() {
	viewCmd.Flags().String("context", string(view.ContextDesign), "build context: Design or Simulation")
	viewCmd.Flags().String("policy-version", "default-v1", "policy table version recorded on every super-node/edge")
	viewCmd.Flags().Bool("aggregate", true, "compute timing metrics and alert thresholds on the resulting super-graph")
	viewCmd.Flags().Float64("critical-slack-ns", -0.5, "min_slack below this triggers an Error alert")
	viewCmd.Flags().Float64("warn-slack-ns", 0.2, "min_slack below this (but above critical) triggers a Warn alert")
}

func runView(cmd *cobra.Command, args []string) error {
	path, viewName := args[0], args[1]
	doc, err := snapshot.Load(path)
	if err != nil {
		return err
	}
	g := snapshot.BuildGraph(doc.DKG)

	ctxFlag, _ := cmd.Flags().GetString("context")
	policyVersion, _ := cmd.Flags().GetString("policy-version")

	sg, err := view.Build(g, view.View(viewName), view.Context(ctxFlag), view.DefaultPolicyTable(), policyVersion)
	if err != nil {
		return err
	}
	fmt.Printf("built view %q: %d super-nodes, %d super-edges\n", viewName, len(sg.SuperNodes), len(sg.SuperEdges))

	if doAggregate, _ := cmd.Flags().GetBool("aggregate"); doAggregate {
		analysis.Aggregate(g, sg, analysis.Options{NearCriticalAlpha: analysis.DefaultNearCriticalAlpha})

		criticalNS, _ := cmd.Flags().GetFloat64("critical-slack-ns")
		warnNS, _ := cmd.Flags().GetFloat64("warn-slack-ns")
		alerts := analysis.GenerateAlerts(sg, analysis.Thresholds{CriticalSlackNS: criticalNS, WarnSlackNS: warnNS})
		for _, a := range alerts {
			fmt.Printf("  [%s] %s: %s\n", a.Severity, a.SuperNodeID, a.Reason)
		}
	}

	// Every previously stored view is decoded back to a live SuperGraph so
	// it survives this rewrite alongside the one just built.
	superGraphs := map[string]*graphmodel.SuperGraph{viewName: sg}
	for name, sgDoc := range doc.SuperGraph {
		if name == viewName {
			continue
		}
		superGraphs[name] = snapshot.BuildSuperGraph(sgDoc)
	}

	out := snapshot.BuildDocument(g, doc.Version, superGraphs)
	return snapshot.Write(path, out)
}
