package models

// Alert is the final reportable unit surfaced to the host application:
// one matched report exposure window plus its symptom summary. Not
// persisted by the core.
type Alert struct {
	Id           string         `json:"id"`
	Symptoms     PublicSymptoms `json:"symptoms"`
	ContactStart UnixTime       `json:"contact_start"`
	ContactEnd   UnixTime       `json:"contact_end"`
	MinDistance  float32        `json:"min_distance"`
	AvgDistance  float32        `json:"avg_distance"`
}
