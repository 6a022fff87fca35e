package models

// ObservedTcn is one aggregated proximity observation. Single-reading
// records have ContactStart == ContactEnd and TotalCount == 1; merged
// records are always produced whole by exposure measurements, never
// updated field by field.
type ObservedTcn struct {
	Tcn          TemporaryContactNumber `json:"tcn"`
	ContactStart UnixTime               `json:"contact_start"`
	ContactEnd   UnixTime               `json:"contact_end"`
	MinDistance  float32                `json:"min_distance"`
	AvgDistance  float32                `json:"avg_distance"`
	TotalCount   int                    `json:"total_count"`
}

func NewObservedTcn(tcn TemporaryContactNumber, at UnixTime, distance float32) ObservedTcn {
	return ObservedTcn{
		Tcn:          tcn,
		ContactStart: at,
		ContactEnd:   at,
		MinDistance:  distance,
		AvgDistance:  distance,
		TotalCount:   1,
	}
}
