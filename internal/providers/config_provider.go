package providers

import (
	"blockd/internal/structures"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "BLOCKD_LOG_LEVEL")
	viper.BindEnv("shield.checkInterval", "BLOCKD_CHECK_INTERVAL")
	viper.BindEnv("store.dir", "BLOCKD_STORE_DIR")
	viper.BindEnv("cache.enabled", "BLOCKD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "BLOCKD_CACHE_SIZE")

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

	if conf.Shield.AttemptTopLimit <= 0 {
		conf.Shield.AttemptTopLimit = 5
	}

	conf.AppName = "BlockScheduleDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
