package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type PreferencesConfig struct {
	FilePath string `yaml:"filePath" validate:"required|unixPath"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required|uint|min:1"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Name     string `yaml:"name" validate:"required"`
	SSLMode  string `yaml:"sslMode"`
}

type BatchConfig struct {
	FlushInterval time.Duration `yaml:"flushInterval" validate:"required|min:1"`
}

type ExposureConfig struct {
	// Maximum gap in seconds between two observations of the same TCN
	// for them to count as one exposure episode.
	TimeThreshold uint64 `yaml:"timeThreshold" validate:"required|min:1"`
}

type ReportsConfig struct {
	ApiUrl         string        `yaml:"apiUrl" validate:"required"`
	IntervalLength uint64        `yaml:"intervalLength" validate:"required|min:1"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server            `yaml:"webServer"`
	Logger      LoggerConfig      `yaml:"logger"`
	Preferences PreferencesConfig `yaml:"preferences"`
	Database    DatabaseConfig    `yaml:"database"`
	Batch       BatchConfig       `yaml:"batch"`
	Exposure    ExposureConfig    `yaml:"exposure"`
	Reports     ReportsConfig     `yaml:"reports"`
	Cache       CacheConfig       `yaml:"cache"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}
