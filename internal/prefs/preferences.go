package prefs

import (
	"os"
	"sync"

	json "github.com/goccy/go-json"

	"tcncore/internal/models"
	"tcncore/internal/providers"
	"tcncore/internal/structures"
)

// Preferences is the durable key-value state the core owns across
// restarts: the reports watermark and the key-ratchet material.
type Preferences interface {
	LastCompletedReportsInterval() *models.ReportsInterval
	SetLastCompletedReportsInterval(interval models.ReportsInterval) error
	AuthorizationKey() []byte
	SetAuthorizationKey(key []byte) error
	TemporaryContactKey() []byte
	SetTemporaryContactKey(blob []byte) error
}

type prefsData struct {
	LastCompletedReportsInterval *models.ReportsInterval `json:"last_completed_reports_interval,omitempty"`
	AuthorizationKey             []byte                  `json:"authorization_key,omitempty"`
	TemporaryContactKey          []byte                  `json:"temporary_contact_key,omitempty"`
}

// FilePreferences persists the state as zstd-compressed JSON, written
// atomically (tmp file, sync, rename).
type FilePreferences struct {
	mu         sync.Mutex
	path       string
	compressor Compressor
	logger     providers.Logger
	data       prefsData
}

func NewFilePreferences(conf *structures.Config, compressor Compressor, logger providers.Logger) (Preferences, error) {
	fp := &FilePreferences{
		path:       conf.Preferences.FilePath,
		compressor: compressor,
		logger:     logger,
	}
	if err := fp.load(); err != nil {
		return nil, err
	}
	return fp, nil
}

func (fp *FilePreferences) load() error {
	raw, err := os.ReadFile(fp.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressed, err := fp.compressor.Decompress(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(decompressed, &fp.data)
}

// save writes the state under fp.mu.
func (fp *FilePreferences) save() error {
	jsonData, err := json.Marshal(fp.data)
	if err != nil {
		return err
	}
	data, err := fp.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fp.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fp.path)
}

func (fp *FilePreferences) LastCompletedReportsInterval() *models.ReportsInterval {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	if fp.data.LastCompletedReportsInterval == nil {
		return nil
	}
	interval := *fp.data.LastCompletedReportsInterval
	return &interval
}

func (fp *FilePreferences) SetLastCompletedReportsInterval(interval models.ReportsInterval) error {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	fp.data.LastCompletedReportsInterval = &interval
	return fp.save()
}

func (fp *FilePreferences) AuthorizationKey() []byte {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return append([]byte(nil), fp.data.AuthorizationKey...)
}

func (fp *FilePreferences) SetAuthorizationKey(key []byte) error {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	fp.data.AuthorizationKey = append([]byte(nil), key...)
	return fp.save()
}

func (fp *FilePreferences) TemporaryContactKey() []byte {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	return append([]byte(nil), fp.data.TemporaryContactKey...)
}

func (fp *FilePreferences) SetTemporaryContactKey(blob []byte) error {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	fp.data.TemporaryContactKey = append([]byte(nil), blob...)
	return fp.save()
}
