package agent

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// End is the terminal pseudo-node every path must reach.
const End = "end"

// Stage is one named processing step. Run takes the state by value and
// returns the updated copy. Every stage except the entry one must return the
// state unmodified when Err is already set.
type Stage interface {
	Name() string
	Run(ctx context.Context, s State) State
}

// Predicate picks the next node after a branch point.
type Predicate func(s State) string

// Graph is a fixed directed graph of stages: named nodes, unconditional
// edges, and explicit branch points with typed predicates. It is built once
// at startup and is safe for concurrent Run calls; all per-run data lives in
// the State.
type Graph struct {
	entry    string
	nodes    map[string]Stage
	edges    map[string]string
	branches map[string]Predicate
	logger   *zap.Logger
}

func NewGraph(entry string, logger *zap.Logger) *Graph {
	return &Graph{
		entry:    entry,
		nodes:    make(map[string]Stage),
		edges:    make(map[string]string),
		branches: make(map[string]Predicate),
		logger:   logger,
	}
}

func (g *Graph) AddNode(stage Stage) {
	g.nodes[stage.Name()] = stage
}

func (g *Graph) AddEdge(from, to string) {
	g.edges[from] = to
}

func (g *Graph) AddBranch(from string, pick Predicate) {
	g.branches[from] = pick
}

// Run executes stages from the entry node until End. The orchestrator only
// evaluates routing; error short-circuiting is each stage's own first action.
func (g *Graph) Run(ctx context.Context, s State) State {
	current := g.entry
	for current != End {
		stage, ok := g.nodes[current]
		if !ok {
			return s.failed(ErrAssembly, fmt.Sprintf("pipeline misconfigured: unknown node %q", current))
		}

		s = stage.Run(ctx, s)
		g.logger.Debug("Stage completed",
			zap.String("request_id", s.RequestID.String()),
			zap.String("stage", current),
			zap.Bool("errored", s.Err != nil),
		)

		if pick, ok := g.branches[current]; ok {
			current = pick(s)
			continue
		}
		next, ok := g.edges[current]
		if !ok {
			return s.failed(ErrAssembly, fmt.Sprintf("pipeline misconfigured: no edge out of %q", current))
		}
		current = next
	}
	return s
}
