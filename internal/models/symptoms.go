package models

type FeverSeverity uint8

const (
	FeverNone FeverSeverity = iota
	FeverMild
	FeverSerious
)

type CoughSeverity uint8

const (
	CoughNone CoughSeverity = iota
	CoughExisting
	CoughWet
	CoughDry
)

// PublicSymptoms is the symptom severity summary carried in a signed
// report's memo. EarliestSymptomTime is nil when the user did not
// provide one.
type PublicSymptoms struct {
	ReportTime          UnixTime      `json:"report_time"`
	EarliestSymptomTime *UnixTime     `json:"earliest_symptom_time,omitempty"`
	FeverSeverity       FeverSeverity `json:"fever_severity"`
	CoughSeverity       CoughSeverity `json:"cough_severity"`
	Breathlessness      bool          `json:"breathlessness"`
	MuscleAches         bool          `json:"muscle_aches"`
	LossSmellOrTaste    bool          `json:"loss_smell_or_taste"`
	Diarrhea            bool          `json:"diarrhea"`
	RunnyNose           bool          `json:"runny_nose"`
	Other               bool          `json:"other"`
	NoSymptoms          bool          `json:"no_symptoms"`
}

// ShouldBeSent reports whether any clinically relevant field is
// non-default; all-default summaries are never submitted.
func (p PublicSymptoms) ShouldBeSent() bool {
	return p.FeverSeverity != FeverNone ||
		p.CoughSeverity != CoughNone ||
		p.Breathlessness ||
		p.MuscleAches ||
		p.LossSmellOrTaste ||
		p.Diarrhea ||
		p.RunnyNose ||
		p.Other ||
		p.NoSymptoms
}
