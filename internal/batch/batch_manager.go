package batch

import (
	"sort"
	"sync"

	"tcncore/internal/models"
	"tcncore/internal/providers"
	"tcncore/internal/storage"
	"tcncore/internal/structures"
)

// TcnBatchManager coalesces the observation stream in memory before it
// reaches storage. The batch map is strictly transient: a crash loses
// at most one flush interval of unmerged data.
type TcnBatchManager struct {
	mu      sync.Mutex
	batch   map[models.TemporaryContactNumber]models.ObservedTcn
	store   storage.TcnStore
	grouper models.ExposureGrouper
	logger  providers.Logger
}

func NewTcnBatchManager(conf *structures.Config, store storage.TcnStore, logger providers.Logger) *TcnBatchManager {
	return &TcnBatchManager{
		batch:   make(map[models.TemporaryContactNumber]models.ObservedTcn),
		store:   store,
		grouper: models.NewExposureGrouper(conf.Exposure.TimeThreshold),
		logger:  logger,
	}
}

// Push merges the observation into the pending entry for its TCN when
// contiguous, otherwise the new observation replaces the pending one:
// only the most recent pending record per TCN is retained, earlier
// non-contiguous data must already be durable.
func (m *TcnBatchManager) Push(tcn models.ObservedTcn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.batch[tcn.Tcn]; ok {
		if merged, ok := m.grouper.Merge(existing, tcn); ok {
			m.batch[tcn.Tcn] = merged
			return
		}
	}
	m.batch[tcn.Tcn] = tcn
}

func (m *TcnBatchManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.batch)
}

// Flush drains the batch and reconciles it with storage: each drained
// record merges into the latest-starting stored record for its TCN when
// contiguous, else lands as a new row. The lock covers only the drain,
// never the I/O; storage errors propagate and the drained data is lost
// for this cycle (the timer retries with fresh data next tick).
func (m *TcnBatchManager) Flush() error {
	m.mu.Lock()
	drained := m.batch
	m.batch = make(map[models.TemporaryContactNumber]models.ObservedTcn)
	m.mu.Unlock()

	if len(drained) == 0 {
		return nil
	}
	m.logger.Debugf(providers.TypeApp, "Flushing %d pending tcn records", len(drained))

	keys := make([]models.TemporaryContactNumber, 0, len(drained))
	for key := range drained {
		keys = append(keys, key)
	}

	stored, err := m.store.FindTcns(keys)
	if err != nil {
		return err
	}
	byTcn := make(map[models.TemporaryContactNumber][]models.ObservedTcn, len(stored))
	for _, rec := range stored {
		byTcn[rec.Tcn] = append(byTcn[rec.Tcn], rec)
	}

	toStore := make([]models.ObservedTcn, 0, len(drained)+len(stored))
	for key, rec := range drained {
		rows := byTcn[key]
		if len(rows) == 0 {
			toStore = append(toStore, rec)
			continue
		}
		sort.Slice(rows, func(i, j int) bool {
			return rows[i].ContactStart < rows[j].ContactStart
		})
		last := rows[len(rows)-1]
		if merged, ok := m.grouper.Merge(last, rec); ok {
			rows[len(rows)-1] = merged
		} else {
			rows = append(rows, rec)
		}
		toStore = append(toStore, rows...)
	}

	return m.store.Overwrite(keys, toStore)
}
