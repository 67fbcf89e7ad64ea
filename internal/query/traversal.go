package query

import (
	"sort"

	"github.com/nandgate/hwdkg/internal/graphmodel"
)

// PathOptions bounds a path search.
type PathOptions struct {
	MaxDepth   int
	DataOnly   bool // restrict traversal to RelationData edges
	ViaFlow    graphmodel.FlowType
}

func (idx *Index) neighborsOut(nodeID string, opts PathOptions) []string {
	n, ok := idx.g.Nodes[nodeID]
	if !ok {
		return nil
	}
	edgeIDs := append([]string(nil), n.OutEdges...)
	sort.Strings(edgeIDs)

	var out []string
	for _, eid := range edgeIDs {
		e, ok := idx.g.Edges[eid]
		if !ok {
			continue
		}
		if opts.DataOnly && e.Relation != graphmodel.RelationData {
			continue
		}
		if opts.ViaFlow != "" && e.Flow != opts.ViaFlow {
			continue
		}
		out = append(out, e.DstNode)
	}
	return out
}

// FindPaths enumerates every simple (cycle-free) path from src to dst up to
// opts.MaxDepth hops, via recursive DFS (spec §4.9).
func (idx *Index) FindPaths(src, dst string, opts PathOptions) [][]string {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = 32
	}

	var results [][]string
	visited := map[string]bool{src: true}
	path := []string{src}

	var dfs func(cur string)
	dfs = func(cur string) {
		if cur == dst {
			found := make([]string, len(path))
			copy(found, path)
			results = append(results, found)
			return
		}
		if len(path) > opts.MaxDepth {
			return
		}
		for _, nbr := range idx.neighborsOut(cur, opts) {
			if visited[nbr] {
				continue
			}
			visited[nbr] = true
			path = append(path, nbr)
			dfs(nbr)
			path = path[:len(path)-1]
			visited[nbr] = false
		}
	}
	dfs(src)

	return results
}

// ShortestPathHops returns the minimum-hop path from src to dst via BFS, or
// nil if unreachable.
func (idx *Index) ShortestPathHops(src, dst string, opts PathOptions) []string {
	if src == dst {
		return []string{src}
	}
	visited := map[string]bool{src: true}
	prev := map[string]string{}
	queue := []string{src}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nbr := range idx.neighborsOut(cur, opts) {
			if visited[nbr] {
				continue
			}
			visited[nbr] = true
			prev[nbr] = cur
			if nbr == dst {
				return reconstructPath(prev, src, dst)
			}
			queue = append(queue, nbr)
		}
	}
	return nil
}

func reconstructPath(prev map[string]string, src, dst string) []string {
	var rev []string
	cur := dst
	for cur != src {
		rev = append(rev, cur)
		cur = prev[cur]
	}
	rev = append(rev, src)
	out := make([]string, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}
	return out
}

// ShortestPathByDelay returns the path from src to dst minimizing
// accumulated edge delay (Dijkstra over non-negative delays; edges with no
// recorded delay are treated as zero-cost).
func (idx *Index) ShortestPathByDelay(src, dst string, opts PathOptions) ([]string, float64) {
	const inf = 1e18
	dist := map[string]float64{src: 0}
	prev := map[string]string{}
	visited := map[string]bool{}

	for {
		cur, curDist := "", inf
		for id, d := range dist {
			if !visited[id] && d < curDist {
				cur, curDist = id, d
			}
		}
		if cur == "" {
			break
		}
		if cur == dst {
			return reconstructPath(prev, src, dst), curDist
		}
		visited[cur] = true

		n := idx.g.Nodes[cur]
		edgeIDs := append([]string(nil), n.OutEdges...)
		sort.Strings(edgeIDs)
		for _, eid := range edgeIDs {
			e := idx.g.Edges[eid]
			if opts.DataOnly && e.Relation != graphmodel.RelationData {
				continue
			}
			delay := 0.0
			if e.Delay != nil {
				delay = *e.Delay
			}
			nd := curDist + delay
			if existing, ok := dist[e.DstNode]; !ok || nd < existing {
				dist[e.DstNode] = nd
				prev[e.DstNode] = cur
			}
		}
	}
	return nil, 0
}

// FanOut runs a bounded BFS forward from root, returning every reached node
// id and the maximum accumulated delay observed on the way to it.
func (idx *Index) FanOut(root string, opts PathOptions) map[string]float64 {
	return idx.fanBFS(root, opts, true)
}

// FanIn runs a bounded BFS backward from root (along in-edges), returning
// every reached node id and the maximum accumulated delay observed.
func (idx *Index) FanIn(root string, opts PathOptions) map[string]float64 {
	return idx.fanBFS(root, opts, false)
}

func (idx *Index) fanBFS(root string, opts PathOptions, forward bool) map[string]float64 {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = 32
	}
	maxDelay := map[string]float64{root: 0}
	depth := map[string]int{root: 0}
	queue := []string{root}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if depth[cur] >= opts.MaxDepth {
			continue
		}

		n := idx.g.Nodes[cur]
		var edgeIDs []string
		if forward {
			edgeIDs = append(edgeIDs, n.OutEdges...)
		} else {
			edgeIDs = append(edgeIDs, n.InEdges...)
		}
		sort.Strings(edgeIDs)

		for _, eid := range edgeIDs {
			e := idx.g.Edges[eid]
			if opts.DataOnly && e.Relation != graphmodel.RelationData {
				continue
			}
			next := e.DstNode
			if !forward {
				next = e.SrcNode
			}
			delay := 0.0
			if e.Delay != nil {
				delay = *e.Delay
			}
			candidate := maxDelay[cur] + delay
			if existing, ok := maxDelay[next]; !ok || candidate > existing {
				maxDelay[next] = candidate
				depth[next] = depth[cur] + 1
				queue = append(queue, next)
			}
		}
	}
	delete(maxDelay, root)
	return maxDelay
}

// CriticalNodesBySlack returns the n nodes with the lowest slack, most
// critical first. Nodes with no slack recorded are excluded.
func (idx *Index) CriticalNodesBySlack(n int) []*graphmodel.Node {
	var candidates []*graphmodel.Node
	for _, node := range idx.g.Nodes {
		if node.Slack != nil {
			candidates = append(candidates, node)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return *candidates[i].Slack < *candidates[j].Slack })
	if n < len(candidates) {
		candidates = candidates[:n]
	}
	return candidates
}

// CriticalEdgesByDelay returns the n edges with the highest delay, worst
// first. Edges with no delay recorded are excluded.
func (idx *Index) CriticalEdgesByDelay(n int) []*graphmodel.Edge {
	var candidates []*graphmodel.Edge
	for _, e := range idx.g.Edges {
		if e.Delay != nil {
			candidates = append(candidates, e)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return *candidates[i].Delay > *candidates[j].Delay })
	if n < len(candidates) {
		candidates = candidates[:n]
	}
	return candidates
}
