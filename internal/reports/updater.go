package reports

import (
	"encoding/base64"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/zeebo/blake3"

	"tcncore/internal/keys"
	"tcncore/internal/match"
	"tcncore/internal/memo"
	"tcncore/internal/models"
	"tcncore/internal/prefs"
	"tcncore/internal/providers"
	"tcncore/internal/storage"
	"tcncore/internal/structures"
)

// ReportsUpdater runs the fetch cycle: enumerate closed retrieval
// intervals past the watermark, fetch and decode their candidate
// reports, match against stored observations, and fold matches into
// exposure alerts. Per-report and per-interval failures are logged and
// skipped; only the observation store read fails the whole cycle.
type ReportsUpdater struct {
	api            ReportsApi
	store          storage.TcnStore
	matcher        *match.ReportMatcher
	grouper        models.ExposureGrouper
	memoMapper     memo.Mapper
	prefs          prefs.Preferences
	cache          providers.CacheProviderInterface
	metrics        providers.MetricsProviderInterface
	logger         providers.Logger
	intervalLength uint64
}

func NewReportsUpdater(
	conf *structures.Config,
	api ReportsApi,
	store storage.TcnStore,
	matcher *match.ReportMatcher,
	preferences prefs.Preferences,
	cache providers.CacheProviderInterface,
	metrics providers.MetricsProviderInterface,
	logger providers.Logger,
) *ReportsUpdater {
	return &ReportsUpdater{
		api:            api,
		store:          store,
		matcher:        matcher,
		grouper:        models.NewExposureGrouper(conf.Exposure.TimeThreshold),
		memoMapper:     memo.NewMapper(),
		prefs:          preferences,
		cache:          cache,
		metrics:        metrics,
		logger:         logger,
		intervalLength: conf.Reports.IntervalLength,
	}
}

func (u *ReportsUpdater) FetchNewReports() ([]models.Alert, error) {
	now := models.Now()

	observed, err := u.store.All()
	if err != nil {
		return nil, fmt.Errorf("reading observed tcns: %w", err)
	}

	interval := u.startInterval(now)
	var attempted []models.ReportsInterval
	firstFailed := -1
	alerts := []models.Alert{}

	for ; interval.StartsBefore(now); interval = interval.Next() {
		attempted = append(attempted, interval)

		encoded, err := u.reportsForInterval(interval)
		if err != nil {
			u.logger.Errorf(providers.TypeApp, "Fetching interval %d failed: %s", interval.Number, err)
			if firstFailed == -1 {
				firstFailed = len(attempted) - 1
			}
			continue
		}

		signed := u.decodeReports(encoded)
		u.metrics.AddReportsFetched(len(signed))

		for _, matched := range u.matcher.Match(observed, signed) {
			u.metrics.IncMatchedReports()
			alerts = append(alerts, u.alertsFor(matched)...)
		}
	}

	u.advanceWatermark(attempted, firstFailed, now)
	u.metrics.AddAlerts(len(alerts))
	return alerts, nil
}

// startInterval resumes after the stored watermark, or begins at the
// interval containing now on first run.
func (u *ReportsUpdater) startInterval(now models.UnixTime) models.ReportsInterval {
	if watermark := u.prefs.LastCompletedReportsInterval(); watermark != nil {
		return watermark.Next()
	}
	return models.IntervalContaining(now, u.intervalLength)
}

// reportsForInterval fetches through the short-TTL payload cache, so a
// re-run over the still-open interval does not refetch.
func (u *ReportsUpdater) reportsForInterval(interval models.ReportsInterval) ([]string, error) {
	key := fmt.Sprintf("reports:%d:%d", interval.Number, interval.Length)
	if data, ok := u.cache.Get(key); ok {
		var cached []string
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	fetched, err := u.api.GetReports(interval)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(fetched); err == nil {
		u.cache.Set(key, data)
	}
	return fetched, nil
}

// decodeReports drops transport strings that fail to decode; one bad
// report never aborts the interval.
func (u *ReportsUpdater) decodeReports(encoded []string) []keys.SignedReport {
	var signed []keys.SignedReport
	for _, s := range encoded {
		raw, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			u.logger.Warnf(providers.TypeApp, "Dropping undecodable report: %s", err)
			continue
		}
		report, err := keys.ParseSignedReport(raw)
		if err != nil {
			u.logger.Warnf(providers.TypeApp, "Dropping malformed report: %s", err)
			continue
		}
		signed = append(signed, report)
	}
	return signed
}

// alertsFor builds one alert per contiguous exposure window of the
// matched report's TCNs.
func (u *ReportsUpdater) alertsFor(matched match.MatchedReport) []models.Alert {
	symptoms, err := u.memoMapper.ToSymptoms(matched.Report.Memo)
	if err != nil {
		u.logger.Warnf(providers.TypeApp, "Dropping matched report with bad memo: %s", err)
		return nil
	}

	var alerts []models.Alert
	for _, exposure := range u.grouper.Group(matched.Tcns) {
		m := exposure.Measurements()
		alerts = append(alerts, models.Alert{
			Id:           alertId(matched.Report.Signature(), m.ContactStart),
			Symptoms:     symptoms,
			ContactStart: m.ContactStart,
			ContactEnd:   m.ContactEnd,
			MinDistance:  m.MinDistance,
			AvgDistance:  m.AvgDistance,
		})
	}
	return alerts
}

// alertId hashes the report signature and appends the exposure start,
// so multiple exposures of one report get distinct ids.
func alertId(signature []byte, contactStart models.UnixTime) string {
	sum := blake3.Sum256(signature)
	return fmt.Sprintf("%x-%d", sum[:16], contactStart)
}

// advanceWatermark persists the most recent attempted interval that is
// fully closed, never moving past the first failed interval.
func (u *ReportsUpdater) advanceWatermark(attempted []models.ReportsInterval, firstFailed int, now models.UnixTime) {
	completed := attempted
	if firstFailed >= 0 {
		completed = attempted[:firstFailed]
	}
	for i := len(completed) - 1; i >= 0; i-- {
		if completed[i].EndsBefore(now) {
			if err := u.prefs.SetLastCompletedReportsInterval(completed[i]); err != nil {
				u.logger.Errorf(providers.TypeApp, "Persisting reports watermark failed: %s", err)
			}
			return
		}
	}
}
