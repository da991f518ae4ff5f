package envar

import (
	"os"
	"strings"
)

const (
	SysEventsVerbose = "SYSEVENTS_VERBOSE"
	SysEventsTrace   = "SYSEVENTS_TRACE"
	SysEventsConfig  = "SYSEVENTS_CONFIG"
)

func Getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	return val
}

// Enabled "", "0", "false", "off" and "no" are false, anything else is true
func Enabled(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "", "0", "false", "off", "no":
		return false
	}
	return true
}
