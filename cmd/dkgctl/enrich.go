package main

import (
	"fmt"
	"os"

	"github.com/nandgate/hwdkg/internal/constraint"
	"github.com/nandgate/hwdkg/internal/fieldsource"
	"github.com/nandgate/hwdkg/internal/identity"
	"github.com/nandgate/hwdkg/internal/snapshot"
	"github.com/nandgate/hwdkg/internal/timing"
	"github.com/spf13/cobra"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich <snapshot.yaml>",
	Short: "Layer constraint and timing data onto a snapshot's base graph",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnrich,
}

func init() {
	enrichCmd.Flags().String("constraints", "", "path to a constraint file (.xdc/.sdc-style)")
	enrichCmd.Flags().String("timing", "", "path to a Vivado STA timing report")
	enrichCmd.Flags().String("out", "", "write the enriched graph to this snapshot path (defaults to overwriting the input)")
}

func runEnrich(cmd *cobra.Command, args []string) error {
	path := args[0]
	doc, err := snapshot.Load(path)
	if err != nil {
		return err
	}
	g := snapshot.BuildGraph(doc.DKG)
	updater := fieldsource.NewUpdater()

	constraintsPath, _ := cmd.Flags().GetString("constraints")
	if constraintsPath != "" {
		content, err := os.ReadFile(constraintsPath)
		if err != nil {
			return err
		}
		commands := constraint.ParseFile(string(content))
		proj := constraint.NewProjector(g, updater, diag, constraintsPath)
		n := proj.Apply(commands)
		fmt.Printf("applied %d constraint field writes from %s\n", n, constraintsPath)
		doc.Version.ConstraintHash = identity.FileHash(content)
	}

	timingPath, _ := cmd.Flags().GetString("timing")
	if timingPath != "" {
		content, err := os.ReadFile(timingPath)
		if err != nil {
			return err
		}
		paths := timing.ParseReport(string(content))
		ing := timing.NewIngestor(g, updater, diag, timingPath)
		ing.Apply(paths, 0)
		fmt.Printf("applied %d timing paths from %s\n", len(paths), timingPath)
		doc.Version.TimingHash = identity.FileHash(content)
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = path
	}
	newDoc := snapshot.BuildDocument(g, doc.Version, nil)
	newDoc.SuperGraph = doc.SuperGraph
	return snapshot.Write(out, newDoc)
}
