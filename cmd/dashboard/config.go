package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/zakatkuy/amil/internal/pkg/chat"
	"github.com/zakatkuy/amil/internal/pkg/constants"
	"github.com/zakatkuy/amil/internal/pkg/goldprice"
)

const envPrefix = "AMIL"

func setDefaults() {
	viper.SetDefault(constants.ViperServerAddrKey, ":8080")
	viper.SetDefault(constants.ViperCORSOriginsKey, []string{"http://localhost:3000"})
	viper.SetDefault(constants.ViperLogLevelKey, "info")
	viper.SetDefault(constants.ViperLogDevelopmentKey, false)
	viper.SetDefault(constants.ViperRecordsSourceKey, constants.RecordsSourceFile)
	viper.SetDefault(constants.ViperRecordsPathKey, "data/zakat.csv")
	viper.SetDefault(constants.ViperBoundaryURLKey, constants.DefaultBoundaryURL)
	viper.SetDefault(constants.ViperFetchRetriesKey, 3)
	viper.SetDefault(constants.ViperHTTPTimeoutKey, 30*time.Second)
	viper.SetDefault(constants.ViperGoldPriceModeKey, string(goldprice.ModeJSON))
	viper.SetDefault(constants.ViperGoldPricePathKey, goldprice.DefaultPath)
	viper.SetDefault(constants.ViperChatDefaultKey, chat.BackendAssistant)
}

// loadConfig reads the config file named by --config, then lets AMIL_* variables override it.
func loadConfig(flags *pflag.FlagSet) error {
	setDefaults()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlag(constants.ViperLogLevelKey, flags.Lookup("log-level")); err != nil {
		return fmt.Errorf("viper.BindPFlag: %w", err)
	}
	if err := viper.BindPFlag(constants.ViperServerAddrKey, flags.Lookup("addr")); err != nil {
		return fmt.Errorf("viper.BindPFlag: %w", err)
	}

	path, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("flags.GetString: %w", err)
	}
	if path == "" {
		return nil
	}

	viper.SetConfigFile(path)
	if err = viper.ReadInConfig(); err != nil {
		return fmt.Errorf("viper.ReadInConfig: %w", err)
	}

	return nil
}
