package engine

import (
	"sort"

	"github.com/rcliao/triage/internal/domain"
)

// Graph is the dependency analysis of one validated batch. An edge from
// A to B means A depends on B; dependents counts run over the reversed
// direction ("how many tasks does B unblock").
type Graph struct {
	// Dependents maps a task id to the number of tasks that directly
	// list it as a dependency.
	Dependents map[int]int
	// InCycle marks tasks that sit on at least one dependency cycle.
	InCycle map[int]bool
	// Cycles holds each detected cycle as the ordered id sequence from
	// its entry point back to itself.
	Cycles [][]int
}

// Traversal colors for cycle detection.
const (
	unvisited = 0
	visiting  = 1
	done      = 2
)

// AnalyzeGraph builds the dependency graph for a validated batch and
// runs cycle detection and dependents counting. Tasks and edges are
// walked in ascending id order, so results are reproducible for a given
// batch regardless of submission order.
func AnalyzeGraph(tasks []domain.Task) *Graph {
	g := &Graph{
		Dependents: make(map[int]int, len(tasks)),
		InCycle:    make(map[int]bool),
	}

	adjacency := make(map[int][]int, len(tasks))
	ids := make([]int, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
		g.Dependents[t.ID] = 0
		adjacency[t.ID] = t.Dependencies
	}
	sort.Ints(ids)

	for _, t := range tasks {
		for _, dep := range t.Dependencies {
			g.Dependents[dep]++
		}
	}

	state := make(map[int]int, len(ids))
	var stack []int

	var visit func(id int)
	visit = func(id int) {
		state[id] = visiting
		stack = append(stack, id)
		for _, dep := range adjacency[id] {
			switch state[dep] {
			case unvisited:
				visit(dep)
			case visiting:
				// Back edge: the stack from dep onward is a cycle.
				g.recordCycle(stack, dep)
			}
		}
		state[id] = done
		stack = stack[:len(stack)-1]
	}

	for _, id := range ids {
		if state[id] == unvisited {
			visit(id)
		}
	}

	return g
}

func (g *Graph) recordCycle(stack []int, entry int) {
	start := 0
	for i, id := range stack {
		if id == entry {
			start = i
			break
		}
	}
	cycle := append([]int(nil), stack[start:]...)
	cycle = append(cycle, entry)
	g.Cycles = append(g.Cycles, cycle)
	for _, id := range cycle {
		g.InCycle[id] = true
	}
}
