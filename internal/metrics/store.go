package metrics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/deppfellow/carpool/internal/store"
	"github.com/rs/zerolog"
)

// instrumentedStore times every call of the wrapped store.
type instrumentedStore struct {
	next    store.Store
	metrics *Metrics
	logger  *zerolog.Logger
	slow    time.Duration
}

// InstrumentStore decorates next with Prometheus timings. Calls slower
// than slow are logged as warnings; zero disables the warning.
func InstrumentStore(next store.Store, m *Metrics, logger *zerolog.Logger, slow time.Duration) store.Store {
	return &instrumentedStore{next: next, metrics: m, logger: logger, slow: slow}
}

func (s *instrumentedStore) observe(op store.Op, table string, start time.Time, err error) {
	elapsed := time.Since(start)
	s.metrics.ObserveStore(string(op), table, err, elapsed)

	if s.slow > 0 && elapsed > s.slow {
		s.logger.Warn().
			Str("op", string(op)).
			Str("table", table).
			Dur("duration", elapsed).
			Dur("threshold", s.slow).
			Msg("slow store operation")
	}
}

func (s *instrumentedStore) Select(ctx context.Context, table string, q store.Query) ([]json.RawMessage, error) {
	start := time.Now()
	rows, err := s.next.Select(ctx, table, q)
	s.observe(store.OpSelect, table, start, err)
	return rows, err
}

func (s *instrumentedStore) Insert(ctx context.Context, table string, row any) (json.RawMessage, error) {
	start := time.Now()
	out, err := s.next.Insert(ctx, table, row)
	s.observe(store.OpInsert, table, start, err)
	return out, err
}

func (s *instrumentedStore) Delete(ctx context.Context, table string, filters ...store.Filter) error {
	start := time.Now()
	err := s.next.Delete(ctx, table, filters...)
	s.observe(store.OpDelete, table, start, err)
	return err
}

func (s *instrumentedStore) Ping(ctx context.Context) error {
	start := time.Now()
	err := s.next.Ping(ctx)
	s.observe(store.OpPing, "", start, err)
	return err
}

func (s *instrumentedStore) Close() {
	s.next.Close()
}
