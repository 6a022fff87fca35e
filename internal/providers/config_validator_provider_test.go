package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tcncore/internal/structures"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Preferences: structures.PreferencesConfig{
			FilePath: "/tmp/tcncore.prefs",
		},
		Database: structures.DatabaseConfig{
			Host: "localhost",
			Port: 5432,
			User: "tcncore",
			Name: "tcncore",
		},
		Batch: structures.BatchConfig{
			FlushInterval: 10,
		},
		Exposure: structures.ExposureConfig{
			TimeThreshold: 3600,
		},
		Reports: structures.ReportsConfig{
			ApiUrl:         "https://reports.example.org",
			IntervalLength: 21600,
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_RelativePrefsPath(t *testing.T) {
	c := validConfig()
	c.Preferences.FilePath = "relative/prefs.bin"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_MissingReportsUrl(t *testing.T) {
	c := validConfig()
	c.Reports.ApiUrl = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}
