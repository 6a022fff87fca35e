package models

import "math"

// Exposure is a non-empty group of observations of the same TCN judged
// contiguous in time. Transient: only its measurements get surfaced.
type Exposure struct {
	tcns []ObservedTcn
}

type ExposureMeasurements struct {
	Tcn          TemporaryContactNumber
	ContactStart UnixTime
	ContactEnd   UnixTime
	MinDistance  float32
	AvgDistance  float32
	TotalCount   int
}

func NewExposure(first ObservedTcn) *Exposure {
	return &Exposure{tcns: []ObservedTcn{first}}
}

func (e *Exposure) Push(tcn ObservedTcn) {
	e.tcns = append(e.tcns, tcn)
}

func (e *Exposure) Last() ObservedTcn {
	return e.tcns[len(e.tcns)-1]
}

func (e *Exposure) Tcns() []ObservedTcn {
	return e.tcns
}

// Measurements aggregates the members: earliest start, latest end,
// minimum distance and a count-weighted average of member averages.
// The exposure cannot be empty and every member has TotalCount >= 1,
// so the division is safe.
func (e *Exposure) Measurements() ExposureMeasurements {
	first := e.tcns[0]
	start := first.ContactStart
	end := first.ContactEnd
	minDistance := float32(math.MaxFloat32)

	totalCount := 0
	weightedSum := 0.0
	for _, tcn := range e.tcns {
		if tcn.ContactStart < start {
			start = tcn.ContactStart
		}
		if tcn.ContactEnd > end {
			end = tcn.ContactEnd
		}
		if tcn.MinDistance < minDistance {
			minDistance = tcn.MinDistance
		}
		totalCount += tcn.TotalCount
		weightedSum += float64(tcn.AvgDistance) * float64(tcn.TotalCount)
	}

	return ExposureMeasurements{
		Tcn:          first.Tcn,
		ContactStart: start,
		ContactEnd:   end,
		MinDistance:  minDistance,
		AvgDistance:  float32(weightedSum / float64(totalCount)),
		TotalCount:   totalCount,
	}
}

// AsObservedTcn folds the measurements back into a single record.
func (m ExposureMeasurements) AsObservedTcn() ObservedTcn {
	return ObservedTcn{
		Tcn:          m.Tcn,
		ContactStart: m.ContactStart,
		ContactEnd:   m.ContactEnd,
		MinDistance:  m.MinDistance,
		AvgDistance:  m.AvgDistance,
		TotalCount:   m.TotalCount,
	}
}
