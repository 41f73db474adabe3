// Package export produces the bulk CSV download of the subsidy table.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/hiroba-develop/GrantsDB-Demo/internal/domain/subsidy"
	"github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/monitoring/logging"
	prom "github.com/hiroba-develop/GrantsDB-Demo/internal/infrastructure/monitoring/prometheus"
	"github.com/hiroba-develop/GrantsDB-Demo/pkg/errors"
)

// csvHeader is the fixed column set of the export, in order.
var csvHeader = []string{
	"id", "name", "agency", "overview", "amount",
	"rate", "deadline", "target", "conditions", "documents",
}

// listJoiner glues multi-valued columns into one cell.
const listJoiner = "; "

// Service writes subsidy snapshots as RFC 4180 CSV.
type Service struct {
	subsidies subsidy.Repository
	log       logging.Logger
	metrics   *prom.AppMetrics
}

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a logger.
func WithLogger(log logging.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithMetrics attaches export counters.
func WithMetrics(m *prom.AppMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService builds the exporter.
func NewService(subsidies subsidy.Repository, opts ...Option) *Service {
	s := &Service{subsidies: subsidies, log: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubsidiesCSV renders the entire subsidy table, one row per record in store
// order, UTF-8 without BOM.
func (s *Service) SubsidiesCSV(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, s.fail(err)
	}

	subs := s.subsidies.List(ctx)
	for _, sub := range subs {
		row := []string{
			strconv.Itoa(sub.ID),
			sub.Name,
			sub.Agency,
			sub.Overview,
			sub.Amount,
			sub.Rate,
			sub.Deadline,
			sub.Target,
			strings.Join(sub.Conditions, listJoiner),
			strings.Join(sub.Documents, listJoiner),
		}
		if err := w.Write(row); err != nil {
			return nil, s.fail(err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, s.fail(err)
	}

	if s.metrics != nil {
		s.metrics.ExportsTotal.WithLabelValues("success").Inc()
	}
	s.log.Info("subsidy csv exported",
		logging.Int("rows", len(subs)),
		logging.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

func (s *Service) fail(err error) error {
	if s.metrics != nil {
		s.metrics.ExportsTotal.WithLabelValues("failure").Inc()
	}
	return errors.Wrap(err, errors.CodeExportFailed, "csv export failed")
}
