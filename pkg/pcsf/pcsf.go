// Package pcsf solves the prize-collecting Steiner forest (and, when a
// root is given, prize-collecting Steiner tree) problem via the
// Goemans-Williamson moat-growth primal-dual approximation: clusters of
// nodes grow simultaneously in simulated time, merging along edges whose
// cost is fully "paid for" by their endpoints' growth, until the target
// number of active clusters remains; a pruning pass then turns the
// resulting merge forest into a final, acyclic edge/node selection.
package pcsf

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kittclouds/gokitt/internal/core"
	"github.com/kittclouds/gokitt/internal/pruning"
)

// NoRoot marks an Input as unrooted (solving for a forest, not a tree).
const NoRoot = core.InvalidID

// PruningMethod selects how the growth simulator's phase-1 edge set is
// turned into a final forest.
type PruningMethod int

const (
	PruningNone PruningMethod = iota
	PruningSimple
	PruningGW
	PruningStrong
)

func (m PruningMethod) String() string {
	switch m {
	case PruningNone:
		return "none"
	case PruningSimple:
		return "simple"
	case PruningGW:
		return "gw"
	case PruningStrong:
		return "strong"
	default:
		return "unknown"
	}
}

// Input is an undirected graph with per-node prizes and per-edge costs,
// and an optional root for the rooted (PCST) specialization.
type Input struct {
	Edges  [][2]int
	Prizes []float64
	Costs  []float64
	Root   int
}

// Result is a pruner's final node and edge selection plus the growth
// simulator's event statistics.
type Result struct {
	Nodes      []int
	Edges      []int
	Statistics core.Statistics
}

// Options carries the one knob this module exposes beyond Solve's
// parameter list: the epsilon governing floating-point tolerance
// throughout the growth simulation.
type Options struct {
	Epsilon float64
}

// DefaultOptions returns Options with Epsilon set to the growth
// simulator's default tolerance.
func DefaultOptions() Options {
	return Options{Epsilon: 1e-9}
}

// translateCoreErr maps internal/core's sentinel errors onto this
// package's own, so callers using errors.Is(err, pcsf.ErrX) never need to
// reach into an internal package's error taxonomy.
func translateCoreErr(err error) error {
	switch {
	case errors.Is(err, core.ErrInvalidArgument):
		return fmt.Errorf("pcsf.Solve: %w: %v", ErrInvalidArgument, err)
	case errors.Is(err, core.ErrIndexOutOfRange):
		return fmt.Errorf("pcsf.Solve: %w: %v", ErrIndexOutOfRange, err)
	case errors.Is(err, core.ErrInternal):
		return fmt.Errorf("pcsf.Solve: %w: %v", ErrInternal, err)
	default:
		return err
	}
}

func pruner(method PruningMethod) (pruning.Pruner, error) {
	switch method {
	case PruningNone:
		return pruning.NonePruner{}, nil
	case PruningSimple:
		return pruning.SimplePruner{}, nil
	case PruningGW:
		return pruning.GWPruner{}, nil
	case PruningStrong:
		return pruning.StrongPruner{}, nil
	default:
		return nil, fmt.Errorf("pcsf.Solve: %w: unknown pruning method %d", ErrInvalidArgument, method)
	}
}

// Solve runs the growth simulation on input down to numClusters active
// clusters, then applies method to derive a final node/edge selection.
// A nil logger discards all log output. opts may supply at most one
// Options value to override defaults (e.g. Epsilon); passing none uses
// DefaultOptions().
func Solve(input Input, numClusters int, method PruningMethod, logger Logger, opts ...Options) (Result, error) {
	if logger == nil {
		logger = NopLogger()
	}
	if len(opts) > 1 {
		return Result{}, fmt.Errorf("pcsf.Solve: %w: at most one Options value may be supplied, got %d", ErrInvalidArgument, len(opts))
	}
	options := DefaultOptions()
	if len(opts) == 1 {
		options = opts[0]
	}

	graph := core.GraphData{
		Edges:  input.Edges,
		Prizes: input.Prizes,
		Costs:  input.Costs,
		Root:   input.Root,
	}

	alg, err := core.New(graph, numClusters, logger, options.Epsilon)
	if err != nil {
		return Result{}, translateCoreErr(err)
	}

	coreResult, err := alg.Run()
	if err != nil {
		return Result{}, translateCoreErr(err)
	}

	p, err := pruner(method)
	if err != nil {
		return Result{}, err
	}

	pruned := p.Prune(pruning.Input{
		Graph:      graph,
		CoreResult: coreResult,
		Logger:     logger,
	})

	sort.Ints(pruned.Nodes)
	sort.Ints(pruned.Edges)

	return Result{
		Nodes:      pruned.Nodes,
		Edges:      pruned.Edges,
		Statistics: coreResult.Statistics,
	}, nil
}
