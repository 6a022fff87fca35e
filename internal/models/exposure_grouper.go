package models

import "sort"

// ExposureGrouper partitions observations of the same TCN into
// contiguous exposure windows. The threshold is the single tunable
// bridging policy: gaps strictly smaller than it are merged.
type ExposureGrouper struct {
	TimeThreshold uint64
}

func NewExposureGrouper(timeThreshold uint64) ExposureGrouper {
	return ExposureGrouper{TimeThreshold: timeThreshold}
}

// IsContiguous reports whether b, starting after a, belongs to the same
// exposure episode. Signed arithmetic: overlap counts as contiguous,
// a gap equal to the threshold does not.
func (g ExposureGrouper) IsContiguous(a, b ObservedTcn) bool {
	return int64(b.ContactStart)-int64(a.ContactEnd) < int64(g.TimeThreshold)
}

// Group sorts by contact start and folds a single linear pass: each
// observation joins the last exposure if contiguous with its last
// member, else starts a new one. Non-empty input always yields at
// least one exposure.
func (g ExposureGrouper) Group(tcns []ObservedTcn) []*Exposure {
	sorted := make([]ObservedTcn, len(tcns))
	copy(sorted, tcns)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ContactStart < sorted[j].ContactStart
	})

	var exposures []*Exposure
	for _, tcn := range sorted {
		if len(exposures) == 0 {
			exposures = append(exposures, NewExposure(tcn))
			continue
		}
		last := exposures[len(exposures)-1]
		if g.IsContiguous(last.Last(), tcn) {
			last.Push(tcn)
		} else {
			exposures = append(exposures, NewExposure(tcn))
		}
	}
	return exposures
}

// Merge folds two observations into one if they are contiguous,
// treating the pair as an ad hoc two-element exposure.
func (g ExposureGrouper) Merge(a, b ObservedTcn) (ObservedTcn, bool) {
	if b.ContactStart < a.ContactStart {
		a, b = b, a
	}
	if !g.IsContiguous(a, b) {
		return ObservedTcn{}, false
	}
	e := NewExposure(a)
	e.Push(b)
	return e.Measurements().AsObservedTcn(), true
}
