package agent

import (
	"context"

	"gavanav/internal/knowledge"
	"gavanav/internal/models"
	"gavanav/internal/service"

	"go.uber.org/zap"
)

// Node names of the pipeline graph.
const (
	nodeGuardrail    = "guardrail"
	nodeIntent       = "intent"
	nodeLiveSearch   = "live_search"
	nodeResolution   = "resolution"
	nodeLocation     = "location"
	nodeEligibility  = "eligibility"
	nodeRequirements = "requirements"
	nodeReasoning    = "reasoning"
	nodeAssemble     = "assemble"
)

// Agent runs the service-guidance pipeline: guardrail, intent, then either
// the structured resolution chain or straight to reasoning, and finally
// response assembly. Built once, safe for concurrent runs.
type Agent struct {
	graph  *Graph
	logger *zap.Logger
}

// New wires the fixed pipeline graph. searcher may be nil: the live-search
// node is then left out entirely instead of being skipped at runtime.
func New(catalog *knowledge.Catalog, searcher service.Searcher, reasoner service.Reasoner, logger *zap.Logger) *Agent {
	resolver := knowledge.NewResolver(catalog, logger)

	g := NewGraph(nodeGuardrail, logger)
	g.AddNode(NewGuardrailStage(logger))
	g.AddNode(NewIntentStage(logger))
	g.AddNode(NewResolutionStage(resolver, logger))
	g.AddNode(NewLocationStage(catalog, logger))
	g.AddNode(NewEligibilityStage(logger))
	g.AddNode(NewRequirementsStage(logger))
	g.AddNode(NewReasoningStage(reasoner, logger))
	g.AddNode(NewAssembleStage(logger))

	resolutionEntry := nodeResolution
	if searcher != nil {
		g.AddNode(NewLiveSearchStage(searcher, logger))
		g.AddEdge(nodeLiveSearch, nodeResolution)
		resolutionEntry = nodeLiveSearch
	}

	// Branch point 1: a guardrail rejection terminates the run immediately.
	g.AddBranch(nodeGuardrail, func(s State) string {
		if s.Err != nil {
			return End
		}
		return nodeIntent
	})

	// Branch point 2: general chat skips the structured resolution chain.
	g.AddBranch(nodeIntent, func(s State) string {
		if !NeedsResolution(s) {
			return nodeReasoning
		}
		return resolutionEntry
	})

	g.AddEdge(nodeResolution, nodeLocation)
	g.AddEdge(nodeLocation, nodeEligibility)
	g.AddEdge(nodeEligibility, nodeRequirements)
	g.AddEdge(nodeRequirements, nodeReasoning)
	g.AddEdge(nodeReasoning, nodeAssemble)
	g.AddEdge(nodeAssemble, End)

	return &Agent{
		graph:  g,
		logger: logger,
	}
}

// Run executes one pipeline over the input and returns the terminal state:
// exactly one of Final or Err is populated.
func (a *Agent) Run(ctx context.Context, input models.AgentInput) State {
	s := NewState(input)
	a.logger.Info("Pipeline run started",
		zap.String("request_id", s.RequestID.String()),
		zap.String("category", input.ServiceRequest.ServiceCategory),
		zap.String("service", input.ServiceRequest.ServiceName),
		zap.Bool("has_query", input.UserQuery != ""),
	)

	s = a.graph.Run(ctx, s)

	if s.Err == nil && s.Final == nil {
		s = s.failed(ErrAssembly, "pipeline ended without a terminal state")
	}

	if s.Err != nil {
		a.logger.Info("Pipeline run failed",
			zap.String("request_id", s.RequestID.String()),
			zap.String("kind", string(s.Err.Kind)),
			zap.String("error", s.Err.Message),
		)
	} else {
		a.logger.Info("Pipeline run completed",
			zap.String("request_id", s.RequestID.String()),
			zap.Float64("confidence", s.Final.ConfidenceScore),
		)
	}
	return s
}
