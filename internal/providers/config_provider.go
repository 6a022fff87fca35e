package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"tcncore/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "TCNCORE_LOG_LEVEL")
	viper.BindEnv("batch.flushInterval", "TCNCORE_FLUSH_INTERVAL")
	viper.BindEnv("reports.apiUrl", "TCNCORE_REPORTS_API_URL")
	viper.BindEnv("database.host", "TCNCORE_DB_HOST")
	viper.BindEnv("database.password", "TCNCORE_DB_PASSWORD")
	viper.BindEnv("cache.enabled", "TCNCORE_CACHE_ENABLED")
	viper.BindEnv("cache.size", "TCNCORE_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "TcnCoreDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
