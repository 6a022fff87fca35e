package match

import (
	"sync"

	"tcncore/internal/keys"
	"tcncore/internal/models"
	"tcncore/internal/providers"
)

// MatchedReport associates a verified report with the locally observed
// TCNs found in its derived sequence.
type MatchedReport struct {
	Report keys.Report
	Tcns   []models.ObservedTcn
}

type ReportMatcher struct {
	logger providers.Logger
}

func NewReportMatcher(logger providers.Logger) *ReportMatcher {
	return &ReportMatcher{logger: logger}
}

// Match verifies each candidate and checks its derived TCN sequence
// against the observed set. Signature verification dominates cost and
// reports are independent, so candidates fan out one goroutine each,
// sharing only the read-only observed map. Failed verification drops
// the report, never the batch. Output order is not defined.
func (m *ReportMatcher) Match(observed []models.ObservedTcn, candidates []keys.SignedReport) []MatchedReport {
	byTcn := make(map[models.TemporaryContactNumber]models.ObservedTcn, len(observed))
	for _, obs := range observed {
		byTcn[obs.Tcn] = obs
	}

	results := make([]*MatchedReport, len(candidates))
	var wg sync.WaitGroup
	for i, candidate := range candidates {
		wg.Add(1)
		go func(i int, candidate keys.SignedReport) {
			defer wg.Done()

			report, err := candidate.Verify()
			if err != nil {
				m.logger.Warnf(providers.TypeApp, "Dropping report failing verification: %s", err)
				return
			}

			var matched []models.ObservedTcn
			for _, tcn := range report.TemporaryContactNumbers() {
				if obs, ok := byTcn[tcn]; ok {
					matched = append(matched, obs)
				}
			}
			if len(matched) > 0 {
				results[i] = &MatchedReport{Report: report, Tcns: matched}
			}
		}(i, candidate)
	}
	wg.Wait()

	var out []MatchedReport
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}
