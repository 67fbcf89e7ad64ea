package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nandgate/hwdkg/internal/identity"
	"github.com/nandgate/hwdkg/internal/netlist"
	"github.com/nandgate/hwdkg/internal/netlistir"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <netlist.json>",
	Short: "Rebuild the snapshot every time the netlist file changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().String("out", "", "snapshot path to rewrite on every rebuild (required)")
	watchCmd.Flags().Duration("debounce", 300*time.Millisecond, "minimum time between rebuilds")
}

func runWatch(cmd *cobra.Command, args []string) error {
	netlistPath := args[0]
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return fmt.Errorf("--out is required")
	}
	debounce, _ := cmd.Flags().GetDuration("debounce")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(netlistPath); err != nil {
		return err
	}

	rebuild := func() error {
		content, err := os.ReadFile(netlistPath)
		if err != nil {
			return err
		}
		loader := netlistir.JSONLoader{Path: netlistPath}
		design, err := loader.Load()
		if err != nil {
			return err
		}
		g, err := netlist.Normalize(design)
		if err != nil {
			return err
		}
		rtlHash := identity.FileHash(content)
		if err := writeBuildSnapshot(g, rtlHash, out); err != nil {
			return err
		}
		diag.Info("rebuilt snapshot", map[string]interface{}{"nodes": len(g.Nodes), "edges": len(g.Edges), "out": out})
		return nil
	}

	if err := rebuild(); err != nil {
		diag.Error("initial build failed", err, map[string]interface{}{"path": netlistPath})
	}

	var last time.Time
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if time.Since(last) < debounce {
				continue
			}
			last = time.Now()
			if err := rebuild(); err != nil {
				diag.Error("rebuild failed", err, map[string]interface{}{"path": netlistPath})
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			diag.Error("watcher error", err, nil)
		}
	}
}
