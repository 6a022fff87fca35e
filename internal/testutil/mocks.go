package testutil

import (
	"sync"
	"time"

	"tcncore/internal/models"
	"tcncore/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Entries returns a snapshot of the recorded log entries.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LogEntry(nil), m.Logs...)
}

// MockMetrics implements providers.MetricsProviderInterface and counts
// calls.
type MockMetrics struct {
	mu             sync.Mutex
	Requests       int
	CacheHits      int
	CacheMisses    int
	Observations   int
	Flushes        int
	FlushErrors    int
	ReportsFetched int
	MatchedReports int
	Alerts         int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) IncObservations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Observations++
}
func (m *MockMetrics) ObserveFlushDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Flushes++
}
func (m *MockMetrics) IncFlushErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FlushErrors++
}
func (m *MockMetrics) AddReportsFetched(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReportsFetched += count
}
func (m *MockMetrics) IncMatchedReports() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MatchedReports++
}
func (m *MockMetrics) AddAlerts(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Alerts += count
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements prefs.Compressor with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

// MockTcnStore implements storage.TcnStore in memory with injectable
// failures. Records keep insertion order.
type MockTcnStore struct {
	mu           sync.Mutex
	Records      []models.ObservedTcn
	AllErr       error
	FindErr      error
	OverwriteErr error
	Overwrites   int
}

func (m *MockTcnStore) All() ([]models.ObservedTcn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AllErr != nil {
		return nil, m.AllErr
	}
	return append([]models.ObservedTcn(nil), m.Records...), nil
}

func (m *MockTcnStore) FindTcns(tcns []models.TemporaryContactNumber) ([]models.ObservedTcn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	wanted := make(map[models.TemporaryContactNumber]struct{}, len(tcns))
	for _, tcn := range tcns {
		wanted[tcn] = struct{}{}
	}
	var found []models.ObservedTcn
	for _, rec := range m.Records {
		if _, ok := wanted[rec.Tcn]; ok {
			found = append(found, rec)
		}
	}
	return found, nil
}

func (m *MockTcnStore) Overwrite(toDelete []models.TemporaryContactNumber, toStore []models.ObservedTcn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.OverwriteErr != nil {
		return m.OverwriteErr
	}
	doomed := make(map[models.TemporaryContactNumber]struct{}, len(toDelete))
	for _, tcn := range toDelete {
		doomed[tcn] = struct{}{}
	}
	var kept []models.ObservedTcn
	for _, rec := range m.Records {
		if _, ok := doomed[rec.Tcn]; !ok {
			kept = append(kept, rec)
		}
	}
	m.Records = append(kept, toStore...)
	m.Overwrites++
	return nil
}

// MockPreferences implements prefs.Preferences in memory.
type MockPreferences struct {
	mu           sync.Mutex
	Watermark    *models.ReportsInterval
	AuthKey      []byte
	TckBlob      []byte
	SetErr       error
	WatermarkLog []models.ReportsInterval
}

func (m *MockPreferences) LastCompletedReportsInterval() *models.ReportsInterval {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Watermark == nil {
		return nil
	}
	interval := *m.Watermark
	return &interval
}

func (m *MockPreferences) SetLastCompletedReportsInterval(interval models.ReportsInterval) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Watermark = &interval
	m.WatermarkLog = append(m.WatermarkLog, interval)
	return nil
}

func (m *MockPreferences) AuthorizationKey() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.AuthKey...)
}

func (m *MockPreferences) SetAuthorizationKey(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.AuthKey = append([]byte(nil), key...)
	return nil
}

func (m *MockPreferences) TemporaryContactKey() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.TckBlob...)
}

func (m *MockPreferences) SetTemporaryContactKey(blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.TckBlob = append([]byte(nil), blob...)
	return nil
}

// MockReportsApi implements reports.ReportsApi with scripted payloads
// per interval number.
type MockReportsApi struct {
	mu                sync.Mutex
	ReportsByInterval map[uint64][]string
	GetErrs           map[uint64]error
	GetCalls          []uint64
	Posted            []string
	PostErr           error
}

func (m *MockReportsApi) GetReports(interval models.ReportsInterval) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls = append(m.GetCalls, interval.Number)
	if err, ok := m.GetErrs[interval.Number]; ok {
		return nil, err
	}
	return m.ReportsByInterval[interval.Number], nil
}

func (m *MockReportsApi) PostReport(encoded string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PostErr != nil {
		return m.PostErr
	}
	m.Posted = append(m.Posted, encoded)
	return nil
}
