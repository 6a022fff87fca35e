package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tempF(v float32) *float32 { return &v }

func TestSymptomInputs_FeverThresholds(t *testing.T) {
	inputs := &SymptomInputs{Ids: []string{SymptomFever}}

	inputs.Fever.HighestTemperature = tempF(101.0)
	assert.Equal(t, FeverSerious, inputs.ToPublicSymptoms(0).FeverSeverity)

	inputs.Fever.HighestTemperature = tempF(99.0)
	assert.Equal(t, FeverMild, inputs.ToPublicSymptoms(0).FeverSeverity)

	inputs.Fever.HighestTemperature = tempF(98.0)
	assert.Equal(t, FeverNone, inputs.ToPublicSymptoms(0).FeverSeverity)
}

func TestSymptomInputs_FeverWithoutTemperature(t *testing.T) {
	inputs := &SymptomInputs{Ids: []string{SymptomFever}}
	assert.Equal(t, FeverMild, inputs.ToPublicSymptoms(0).FeverSeverity)
}

func TestSymptomInputs_NoFeverId(t *testing.T) {
	inputs := &SymptomInputs{Fever: FeverInput{HighestTemperature: tempF(104.0)}}
	assert.Equal(t, FeverNone, inputs.ToPublicSymptoms(0).FeverSeverity)
}

func TestSymptomInputs_CoughSeverity(t *testing.T) {
	inputs := &SymptomInputs{Ids: []string{SymptomCough}}
	assert.Equal(t, CoughExisting, inputs.ToPublicSymptoms(0).CoughSeverity)

	inputs.Cough.Type = CoughTypeWet
	assert.Equal(t, CoughWet, inputs.ToPublicSymptoms(0).CoughSeverity)

	inputs.Cough.Type = CoughTypeDry
	assert.Equal(t, CoughDry, inputs.ToPublicSymptoms(0).CoughSeverity)
}

func TestSymptomInputs_BooleanFlags(t *testing.T) {
	inputs := &SymptomInputs{Ids: []string{
		SymptomBreathlessness, SymptomRunnyNose, SymptomNone,
	}}
	ps := inputs.ToPublicSymptoms(42)

	assert.Equal(t, UnixTime(42), ps.ReportTime)
	assert.True(t, ps.Breathlessness)
	assert.True(t, ps.RunnyNose)
	assert.True(t, ps.NoSymptoms)
	assert.False(t, ps.MuscleAches)
	assert.False(t, ps.Diarrhea)
}

func TestSymptomInputs_EarliestSymptomCarriedOver(t *testing.T) {
	when := UnixTime(1589209754)
	inputs := &SymptomInputs{Ids: []string{SymptomCough}, EarliestSymptom: &when}
	ps := inputs.ToPublicSymptoms(0)

	assert.NotNil(t, ps.EarliestSymptomTime)
	assert.Equal(t, when, *ps.EarliestSymptomTime)
}

func TestPublicSymptoms_ShouldBeSent(t *testing.T) {
	assert.False(t, PublicSymptoms{ReportTime: 100}.ShouldBeSent())
	assert.True(t, PublicSymptoms{CoughSeverity: CoughDry}.ShouldBeSent())
	assert.True(t, PublicSymptoms{FeverSeverity: FeverMild}.ShouldBeSent())
	assert.True(t, PublicSymptoms{NoSymptoms: true}.ShouldBeSent())
	assert.True(t, PublicSymptoms{RunnyNose: true}.ShouldBeSent())
}
