package plan

import (
	"context"
	"errors"

	"github.com/rutalab/core/internal/config"
	"github.com/rutalab/core/internal/models"
	"go.uber.org/zap"
)

// Generator produces a raw plan for a validated request.
type Generator interface {
	Generate(ctx context.Context, req PlanRequest) (RawPlan, error)
}

// Store is the persistence adapter surface the orchestrator needs.
type Store interface {
	Save(ctx context.Context, uid string, req PlanRequest, p RawPlan) (string, error)
	ListByUID(ctx context.Context, uid string) ([]models.PlanRecord, error)
	GetByID(ctx context.Context, uid, id string) (*models.PlanRecord, error)
}

// Service orchestrates plan generation: routing between provider and
// fallback, then best-effort persistence.
type Service struct {
	cfg       *config.AppConfig
	log       *zap.Logger
	generator Generator
	store     Store
}

// NewService wires the orchestrator. store may be nil when no document store
// is configured; generation then runs unpersisted.
func NewService(cfg *config.AppConfig, log *zap.Logger, generator Generator, store Store) *Service {
	return &Service{cfg: cfg, log: log, generator: generator, store: store}
}

// Generate runs the full pipeline for a validated request. The returned plan
// carries an "_id" field exactly when persistence succeeded for an
// authenticated principal. Persistence failures never fail the request.
func (s *Service) Generate(ctx context.Context, req PlanRequest, hints RoutingHints, uid string) (RawPlan, error) {
	var p RawPlan

	switch {
	case s.cfg.Plan.ForceMock || hints.Mock():
		s.log.Info("mock plan requested",
			zap.Bool("config_switch", s.cfg.Plan.ForceMock),
			zap.Bool("query_override", hints.QueryMock),
			zap.Bool("header_override", hints.HeaderMock),
		)
		p = SynthesizePrimary(req)

	default:
		generated, err := s.generator.Generate(ctx, req)
		if err != nil {
			if !s.cfg.HasCredentials() {
				s.logProviderError("recovering into fallback plan", err)
				p = SynthesizeRecovery(req)
				break
			}
			s.logProviderError("plan generation failed", err)
			return nil, err
		}
		p = generated
	}

	if p == nil {
		p = RawPlan{}
	}

	if uid != "" && s.store != nil {
		id, err := s.store.Save(ctx, uid, req, p)
		if err != nil {
			// Best effort: a storage hiccup must never break plan delivery.
			s.log.Warn("plan persistence failed", zap.String("uid", uid), zap.Error(err))
		} else {
			p["_id"] = id
		}
	}

	return p, nil
}

// ListRecords returns the principal's stored plans, newest first.
func (s *Service) ListRecords(ctx context.Context, uid string) ([]models.PlanRecord, error) {
	if s.store == nil {
		return []models.PlanRecord{}, nil
	}
	return s.store.ListByUID(ctx, uid)
}

// GetRecord returns one stored plan owned by the principal.
func (s *Service) GetRecord(ctx context.Context, uid, id string) (*models.PlanRecord, error) {
	if s.store == nil {
		return nil, ErrRecordNotFound
	}
	return s.store.GetByID(ctx, uid, id)
}

func (s *Service) logProviderError(msg string, err error) {
	fields := []zap.Field{zap.Error(err)}
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		fields = append(fields, zap.String("cause", provErr.Cause))
		if provErr.UpstreamStatus > 0 {
			fields = append(fields, zap.Int("upstream_status", provErr.UpstreamStatus))
		}
	}
	s.log.Warn(msg, fields...)
}
