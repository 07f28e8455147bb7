package agent

import (
	"context"

	"gavanav/internal/service"

	"go.uber.org/zap"
)

// LiveSearchStage asks the optional live-search collaborator for freshness
// hints about the requested service. Hints are best-effort: a failed lookup
// logs a warning and the run continues on catalog data alone.
type LiveSearchStage struct {
	searcher service.Searcher
	logger   *zap.Logger
}

func NewLiveSearchStage(searcher service.Searcher, logger *zap.Logger) *LiveSearchStage {
	return &LiveSearchStage{
		searcher: searcher,
		logger:   logger,
	}
}

func (l *LiveSearchStage) Name() string { return nodeLiveSearch }

func (l *LiveSearchStage) Run(ctx context.Context, s State) State {
	if s.Err != nil {
		return s
	}

	query := service.SearchQuery{
		ServiceName: s.Input.ServiceRequest.ServiceName,
		County:      s.Input.UserProfile.County,
	}
	if query.ServiceName == "" {
		query.ServiceName = s.Input.UserQuery
	}

	hints, err := l.searcher.Search(ctx, query)
	if err != nil {
		l.logger.Warn("Live search failed, continuing on catalog data",
			zap.String("request_id", s.RequestID.String()),
			zap.Error(err),
		)
		return s
	}

	s.SearchHints = hints
	l.logger.Debug("Live search hints collected",
		zap.String("request_id", s.RequestID.String()),
		zap.Int("hints", len(hints)),
	)
	return s
}
