package models

const (
	SymptomCough            = "cough"
	SymptomBreathlessness   = "breathlessness"
	SymptomFever            = "fever"
	SymptomMuscleAches      = "muscle_aches"
	SymptomLossSmellOrTaste = "loss_smell_or_taste"
	SymptomDiarrhea         = "diarrhea"
	SymptomRunnyNose        = "runny_nose"
	SymptomOther            = "other"
	SymptomNone             = "none"
)

const (
	CoughTypeWet = "wet"
	CoughTypeDry = "dry"
)

// Fever severity thresholds, degrees Fahrenheit.
const (
	seriousFeverThreshold = 100.6
	mildFeverThreshold    = 98.6
)

type CoughInput struct {
	Type string `json:"type,omitempty"`
	Days *int   `json:"days,omitempty"`
}

type FeverInput struct {
	Days               *int     `json:"days,omitempty"`
	HighestTemperature *float32 `json:"highest_temperature,omitempty"`
}

// SymptomInputs is the free-form questionnaire payload produced by the
// host application. Ids select which symptoms apply; the nested inputs
// refine cough and fever.
type SymptomInputs struct {
	Ids             []string   `json:"ids"`
	Cough           CoughInput `json:"cough"`
	Fever           FeverInput `json:"fever"`
	EarliestSymptom *UnixTime  `json:"earliest_symptom,omitempty"`
}

func (s *SymptomInputs) hasId(id string) bool {
	for _, v := range s.Ids {
		if v == id {
			return true
		}
	}
	return false
}

func (s *SymptomInputs) feverSeverity() FeverSeverity {
	if !s.hasId(SymptomFever) {
		return FeverNone
	}
	if s.Fever.HighestTemperature == nil {
		return FeverMild
	}
	switch temp := *s.Fever.HighestTemperature; {
	case temp > seriousFeverThreshold:
		return FeverSerious
	case temp > mildFeverThreshold:
		return FeverMild
	default:
		return FeverNone
	}
}

func (s *SymptomInputs) coughSeverity() CoughSeverity {
	if !s.hasId(SymptomCough) {
		return CoughNone
	}
	switch s.Cough.Type {
	case CoughTypeWet:
		return CoughWet
	case CoughTypeDry:
		return CoughDry
	default:
		return CoughExisting
	}
}

// ToPublicSymptoms reduces the questionnaire to the public summary
// submitted inside a report memo.
func (s *SymptomInputs) ToPublicSymptoms(reportTime UnixTime) PublicSymptoms {
	return PublicSymptoms{
		ReportTime:          reportTime,
		EarliestSymptomTime: s.EarliestSymptom,
		FeverSeverity:       s.feverSeverity(),
		CoughSeverity:       s.coughSeverity(),
		Breathlessness:      s.hasId(SymptomBreathlessness),
		MuscleAches:         s.hasId(SymptomMuscleAches),
		LossSmellOrTaste:    s.hasId(SymptomLossSmellOrTaste),
		Diarrhea:            s.hasId(SymptomDiarrhea),
		RunnyNose:           s.hasId(SymptomRunnyNose),
		Other:               s.hasId(SymptomOther),
		NoSymptoms:          s.hasId(SymptomNone),
	}
}
