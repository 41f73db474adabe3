package proposal

import (
	"context"
	"time"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/domain/customer"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/domain/subsidy"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/monitoring/logging"
	prom "github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/monitoring/prometheus"
	"github.com/hiroba-develop/GrantsDB-Demo/pkg/errors"
)

// Renderer rasterizes a Document into a single-page portrait artifact.
// The PDF implementation lives in internal/infrastructure/pdf.
type Renderer interface {
	Render(ctx context.Context, doc Document) ([]byte, error)
}

// Service resolves the records, builds the document, and invokes the
// renderer.
type Service struct {
	customers customer.Repository
	subsidies subsidy.Repository
	renderer  Renderer
	log       logging.Logger
	metrics   *prom.AppMetrics
}

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a logger.
func WithLogger(log logging.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithMetrics attaches render metrics.
func WithMetrics(m *prom.AppMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService wires the proposal pipeline.
func NewService(customers customer.Repository, subsidies subsidy.Repository, r Renderer, opts ...Option) *Service {
	s := &Service{
		customers: customers,
		subsidies: subsidies,
		renderer:  r,
		log:       logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate renders the proposal PDF for a customer-subsidy pair.  A renderer
// failure surfaces as a single wrapped error; no partial artifact is ever
// returned and no retry is attempted.
func (s *Service) Generate(ctx context.Context, customerID, subsidyID int) ([]byte, error) {
	c, err := s.customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	sub, err := s.subsidies.Get(ctx, subsidyID)
	if err != nil {
		return nil, err
	}

	doc := BuildDocument(c, sub)

	start := time.Now()
	artifact, err := s.renderer.Render(ctx, doc)
	if s.metrics != nil {
		prom.RecordProposalRender(s.metrics, err == nil, time.Since(start), len(artifact))
	}
	if err != nil {
		s.log.Error("proposal render failed",
			logging.Int("customer_id", customerID),
			logging.Int("subsidy_id", subsidyID),
			logging.Err(err))
		return nil, errors.Wrap(err, errors.CodeProposalRenderFailed, "proposal rendering failed")
	}

	s.log.Info("proposal rendered",
		logging.Int("customer_id", customerID),
		logging.Int("subsidy_id", subsidyID),
		logging.Int("bytes", len(artifact)))
	return artifact, nil
}
