package config

import (
	"time"

	"github.com/spf13/viper"
)

// getDurationOrDefault falls back when the value is unset or does not parse
func getDurationOrDefault(v *viper.Viper, key string, defaultValue time.Duration) time.Duration {
	if d := v.GetDuration(key); d > 0 {
		return d
	}
	return defaultValue
}

func getIntOrDefault(v *viper.Viper, key string, defaultValue int) int {
	if i := v.GetInt(key); i > 0 {
		return i
	}
	return defaultValue
}
