package util

import (
	"fmt"

	"github.com/spf13/viper"
)

// ReadConfig loads the optional config file consumed by the cmd drivers.
// Missing keys fall back to viper defaults set at the call sites.
func ReadConfig() error {
	viper.SetConfigName("mincutx")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./data/")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
