package services

import (
	"encoding/base64"
	"fmt"

	"tcncore/internal/batch"
	"tcncore/internal/keys"
	"tcncore/internal/memo"
	"tcncore/internal/models"
	"tcncore/internal/providers"
	"tcncore/internal/reports"
)

// TracingServiceInterface is the operation surface exposed to the host
// application layer.
type TracingServiceInterface interface {
	RecordTcn(hexTcn string, distance float32) error
	GenerateTcn() (string, error)
	FetchNewReports() ([]models.Alert, error)
	SubmitSymptoms(inputs *models.SymptomInputs) error
	GetBufferSize() int
}

type TracingService struct {
	manager    *batch.TcnBatchManager
	tcnKeys    *keys.TcnKeys
	updater    *reports.ReportsUpdater
	api        reports.ReportsApi
	memoMapper memo.Mapper
	metrics    providers.MetricsProviderInterface
	logger     providers.Logger
}

func NewTracingService(
	manager *batch.TcnBatchManager,
	tcnKeys *keys.TcnKeys,
	updater *reports.ReportsUpdater,
	api reports.ReportsApi,
	metrics providers.MetricsProviderInterface,
	logger providers.Logger,
) TracingServiceInterface {
	return &TracingService{
		manager:    manager,
		tcnKeys:    tcnKeys,
		updater:    updater,
		api:        api,
		memoMapper: memo.NewMapper(),
		metrics:    metrics,
		logger:     logger,
	}
}

// RecordTcn buffers one proximity reading observed by the sensing
// layer.
func (ts *TracingService) RecordTcn(hexTcn string, distance float32) error {
	tcn, err := models.TcnFromHex(hexTcn)
	if err != nil {
		return err
	}
	if distance < 0 {
		return fmt.Errorf("negative distance: %f", distance)
	}

	ts.manager.Push(models.NewObservedTcn(tcn, models.Now(), distance))
	ts.metrics.IncObservations()
	return nil
}

// GenerateTcn returns the TCN to broadcast for the current period.
func (ts *TracingService) GenerateTcn() (string, error) {
	tcn, err := ts.tcnKeys.GenerateTcn()
	if err != nil {
		return "", err
	}
	return tcn.Hex(), nil
}

func (ts *TracingService) FetchNewReports() ([]models.Alert, error) {
	return ts.updater.FetchNewReports()
}

// SubmitSymptoms reduces the questionnaire to a public summary and, if
// it carries anything clinically relevant, signs and posts it.
func (ts *TracingService) SubmitSymptoms(inputs *models.SymptomInputs) error {
	symptoms := inputs.ToPublicSymptoms(models.Now())
	if !symptoms.ShouldBeSent() {
		ts.logger.Infof(providers.TypeApp, "Nothing to report, skipping submission")
		return nil
	}

	signed, err := ts.tcnKeys.CreateReport(ts.memoMapper.ToMemo(symptoms))
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	return ts.api.PostReport(base64.StdEncoding.EncodeToString(signed.Bytes()))
}

func (ts *TracingService) GetBufferSize() int {
	return ts.manager.Len()
}
