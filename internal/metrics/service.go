package metrics

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/AngelCh415/digmar-dash/internal/ingest"
	"github.com/AngelCh415/digmar-dash/internal/models"
)

// Observer receives one call per load attempt.
type Observer interface {
	ObserveRun(rows, campaigns int, d time.Duration)
	ObserveRejection(reason string)
}

type nopObserver struct{}

func (nopObserver) ObserveRun(int, int, time.Duration) {}
func (nopObserver) ObserveRejection(string)            {}

type Service struct {
	log *slog.Logger
	obs Observer
}

func NewService(log *slog.Logger, obs Observer) *Service {
	if log == nil {
		log = slog.Default()
	}
	if obs == nil {
		obs = nopObserver{}
	}
	return &Service{log: log, obs: obs}
}

// Analyze decodes, validates and runs the pipeline. Every call allocates a
// fresh result; nothing is shared between calls.
func (s *Service) Analyze(r io.Reader) (*models.Result, error) {
	t, err := ingest.ReadCSV(r)
	if err != nil {
		s.reject(err)
		return nil, err
	}
	return s.AnalyzeTable(t), nil
}

func (s *Service) AnalyzeTable(t *ingest.Table) *models.Result {
	start := time.Now()
	res := Run(t.Records)
	d := time.Since(start)
	s.obs.ObserveRun(len(res.Rows), len(res.Campaigns), d)
	s.log.Info("pipeline complete",
		slog.Int("rows", len(res.Rows)),
		slog.Int("campaigns", len(res.Campaigns)),
		slog.Duration("took", d))
	return res
}

func (s *Service) reject(err error) {
	reason := Reason(err)
	s.obs.ObserveRejection(reason)
	var se *ingest.SchemaError
	if errors.As(err, &se) {
		s.log.Warn("input rejected", slog.String("reason", reason), slog.Any("missing", se.Missing))
		return
	}
	s.log.Warn("input rejected", slog.String("reason", reason), slog.String("err", err.Error()))
}

// Reason classifies a load error into a short label.
func Reason(err error) string {
	var pe *ingest.ParseError
	switch {
	case errors.Is(err, ingest.ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, ingest.ErrMissingColumns):
		return "malformed_input"
	case errors.As(err, &pe):
		return "parse_error"
	default:
		return "read_error"
	}
}
