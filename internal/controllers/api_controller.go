package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"

	"tcncore/internal/models"
	"tcncore/internal/providers"
	"tcncore/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger  providers.Logger
	service services.TracingServiceInterface
}

func NewApiController(logger providers.Logger, service services.TracingServiceInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
	}
}

func writeJson(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

type recordTcnRequest struct {
	Tcn      string  `json:"tcn"`
	Distance float32 `json:"distance"`
}

// RecordTcn ingests one proximity observation from the sensing layer.
func (ac *ApiController) RecordTcn(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload recordTcnRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := ac.service.RecordTcn(payload.Tcn, payload.Distance); err != nil {
		ac.logger.Warnf(providers.TypePost, "Rejected tcn observation: %s", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// GenerateTcn returns the TCN the device should broadcast now.
func (ac *ApiController) GenerateTcn(w http.ResponseWriter, r *http.Request) {
	tcn, err := ac.service.GenerateTcn()
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "Generating tcn failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJson(w, http.StatusOK, map[string]string{"tcn": tcn})
}

// GetAlerts runs a fetch cycle and returns the resulting exposure
// alerts. Alerts are not persisted here, the caller owns them.
func (ac *ApiController) GetAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := ac.service.FetchNewReports()
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "Fetch cycle failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJson(w, http.StatusOK, alerts)
}

// SubmitSymptoms accepts the questionnaire payload and submits a
// signed report when warranted.
func (ac *ApiController) SubmitSymptoms(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var inputs models.SymptomInputs
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := ac.service.SubmitSymptoms(&inputs); err != nil {
		ac.logger.Errorf(providers.TypePost, "Report submission failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}
