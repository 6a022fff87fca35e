package models

// ReportsInterval discretizes time into fixed-length epochs for report
// retrieval. Number*Length is the interval's start.
type ReportsInterval struct {
	Number uint64 `json:"number"`
	Length uint64 `json:"length"`
}

func IntervalContaining(t UnixTime, length uint64) ReportsInterval {
	return ReportsInterval{Number: uint64(t) / length, Length: length}
}

func (i ReportsInterval) Start() UnixTime {
	return UnixTime(i.Number * i.Length)
}

func (i ReportsInterval) End() UnixTime {
	return UnixTime(i.Number*i.Length + i.Length)
}

func (i ReportsInterval) Next() ReportsInterval {
	return ReportsInterval{Number: i.Number + 1, Length: i.Length}
}

func (i ReportsInterval) StartsBefore(t UnixTime) bool {
	return i.Start() < t
}

func (i ReportsInterval) EndsBefore(t UnixTime) bool {
	return i.End() < t
}
