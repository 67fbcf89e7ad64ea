package main

import (
	"context"
	"fmt"

	"github.com/nandgate/hwdkg/internal/graphmodel"
	"github.com/nandgate/hwdkg/internal/query"
	"github.com/nandgate/hwdkg/internal/querycache"
	"github.com/nandgate/hwdkg/internal/snapshot"
	"github.com/spf13/cobra"
)

func entityClassArg(s string) graphmodel.EntityClass {
	return graphmodel.EntityClass(s)
}

var queryCmd = &cobra.Command{
	Use:   "query <snapshot.yaml>",
	Short: "Run structural and timing queries against a snapshot's base graph",
}

var queryClassCmd = &cobra.Command{
	Use:   "class <snapshot.yaml> <entity-class>",
	Short: "List node ids of a given entity_class",
	Args:  cobra.ExactArgs(2),
	RunE:  runQueryClass,
}

var queryPathCmd = &cobra.Command{
	Use:   "path <snapshot.yaml> <src-node-id> <dst-node-id>",
	Short: "Find the shortest structural path (by hop count) between two nodes",
	Args:  cobra.ExactArgs(3),
	RunE:  runQueryPath,
}

var queryCriticalCmd = &cobra.Command{
	Use:   "critical <snapshot.yaml>",
	Short: "List the N nodes with the worst timing slack",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueryCritical,
}

func init() {
	queryCriticalCmd.Flags().Int("n", 10, "number of nodes to list")
	queryCmd.AddCommand(queryClassCmd, queryPathCmd, queryCriticalCmd)
}

func loadIndex(path string) (*query.Index, error) {
	doc, err := snapshot.Load(path)
	if err != nil {
		return nil, err
	}
	g := snapshot.BuildGraph(doc.DKG)
	return query.NewIndex(g), nil
}

// persistIndexCache mirrors idx's class/relation indices into the sqlite
// query cache under runID, so a later `query class` against the same graph
// can answer straight from sqlite without rebuilding the in-memory index.
func persistIndexCache(ctx context.Context, store *querycache.Store, runID string, idx *query.Index) {
	byClass := make(map[string][]string, len(idx.AllByClass()))
	for class, ids := range idx.AllByClass() {
		byClass[string(class)] = ids
	}
	byRelation := make(map[string][]string, len(idx.AllByRelation()))
	for rel, ids := range idx.AllByRelation() {
		byRelation[string(rel)] = ids
	}
	if err := store.SaveRun(ctx, runID, runID, byClass, byRelation); err != nil {
		diag.Error("query cache: save run", err, map[string]interface{}{"run_id": runID})
	}
}

func runQueryClass(cmd *cobra.Command, args []string) error {
	doc, err := snapshot.Load(args[0])
	if err != nil {
		return err
	}
	runID := doc.Version.RTLHash

	ctx := context.Background()
	store, err := querycache.Open(cfg.Storage.QueryCachePath)
	if err != nil {
		return err
	}
	defer store.Close()

	if ok, err := store.HasRun(ctx, runID); err == nil && ok {
		ids, err := store.NodesByClass(ctx, runID, args[1])
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	}

	g := snapshot.BuildGraph(doc.DKG)
	idx := query.NewIndex(g)
	persistIndexCache(ctx, store, runID, idx)

	ids := idx.NodesByClass(entityClassArg(args[1]))
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

func runQueryPath(cmd *cobra.Command, args []string) error {
	idx, err := loadIndex(args[0])
	if err != nil {
		return err
	}
	hops := idx.ShortestPathHops(args[1], args[2], query.PathOptions{})
	if hops == nil {
		return fmt.Errorf("no path found from %s to %s", args[1], args[2])
	}
	for _, id := range hops {
		fmt.Println(id)
	}
	return nil
}

func runQueryCritical(cmd *cobra.Command, args []string) error {
	idx, err := loadIndex(args[0])
	if err != nil {
		return err
	}
	n, _ := cmd.Flags().GetInt("n")
	for _, node := range idx.CriticalNodesBySlack(n) {
		slack := "n/a"
		if node.Slack != nil {
			slack = fmt.Sprintf("%.3f", *node.Slack)
		}
		fmt.Printf("%s\tslack=%s\n", node.ID, slack)
	}
	return nil
}
