// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package graph provides a small directed graph with a non-destructive
// topological sort.
package graph

import (
	"slices"

	"github.com/ezrec/starfish/logger"
)

// Edge is a directed edge from Start to End.
type Edge[T comparable] struct {
	Start T
	End   T
}

// Graph is a directed graph over comparable nodes. Nodes keep their insertion
// order, which is used to break ties when sorting.
type Graph[T comparable] struct {
	log   logger.Logger
	nodes []T
	index map[T]int
	edges []Edge[T]
	seen  map[Edge[T]]bool
}

// New creates an empty graph that reports cycles to log.
func New[T comparable](log logger.Logger) (g *Graph[T]) {
	g = &Graph[T]{
		log:   logger.OrNull(log),
		index: map[T]int{},
		seen:  map[Edge[T]]bool{},
	}

	return
}

// AddNode inserts node if not already present.
func (g *Graph[T]) AddNode(node T) {
	if _, ok := g.index[node]; ok {
		return
	}
	g.index[node] = len(g.nodes)
	g.nodes = append(g.nodes, node)
}

// AddEdge inserts the edge start->end, adding missing endpoints.
// Duplicate edges are ignored.
func (g *Graph[T]) AddEdge(start T, end T) {
	g.AddNode(start)
	g.AddNode(end)

	edge := Edge[T]{Start: start, End: end}
	if g.seen[edge] {
		return
	}
	g.seen[edge] = true
	g.edges = append(g.edges, edge)
}

// Nodes returns a copy of the nodes in insertion order.
func (g *Graph[T]) Nodes() []T {
	return slices.Clone(g.nodes)
}

// Edges returns a copy of the edges in insertion order.
func (g *Graph[T]) Edges() []Edge[T] {
	return slices.Clone(g.edges)
}

// Len returns the node count.
func (g *Graph[T]) Len() int {
	return len(g.nodes)
}

// Sort returns the nodes in topological order.
//
// Kahn's algorithm, run in rounds: every node with no remaining incoming
// edge is emitted in insertion order, then removed with its edges. If nodes
// remain once no node is ready, the graph has a cycle and ErrCycle is
// returned with an empty order. The graph itself is not modified.
func (g *Graph[T]) Sort() (order []T, err error) {
	indegree := make([]int, len(g.nodes))
	out := make([][]int, len(g.nodes))
	for _, edge := range g.edges {
		from := g.index[edge.Start]
		to := g.index[edge.End]
		indegree[to]++
		out[from] = append(out[from], to)
	}

	removed := make([]bool, len(g.nodes))
	order = make([]T, 0, len(g.nodes))
	for len(order) < len(g.nodes) {
		var ready []int
		for n := range g.nodes {
			if !removed[n] && indegree[n] == 0 {
				ready = append(ready, n)
			}
		}
		if len(ready) == 0 {
			order = []T{}
			err = ErrCycle
			return
		}
		for _, n := range ready {
			removed[n] = true
			order = append(order, g.nodes[n])
			for _, to := range out[n] {
				indegree[to]--
			}
		}
	}

	return
}

// TopologicalSort is Sort, with a cycle reported as a warning.
// The caller must treat an empty result from a non-empty graph as
// "run nothing".
func (g *Graph[T]) TopologicalSort() (order []T) {
	order, err := g.Sort()
	if err != nil {
		g.log.Warn(f("%v: did not execute", err))
	}

	return
}
