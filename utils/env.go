package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type parseableEnv interface {
	string | int | bool | time.Duration
}

func parseEnv[T parseableEnv](name, raw string) (T, error) {
	var out T
	switch ptr := any(&out).(type) {
	case *string:
		*ptr = raw
	case *int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return out, fmt.Errorf("environment variable %s: %q is not an integer", name, raw)
		}
		*ptr = v
	case *bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return out, fmt.Errorf("environment variable %s: %q is not a boolean", name, raw)
		}
		*ptr = v
	case *time.Duration:
		v, err := time.ParseDuration(raw)
		if err != nil {
			return out, fmt.Errorf("environment variable %s: %q is not a duration", name, raw)
		}
		*ptr = v
	}
	return out, nil
}

// GetEnv reads an environment variable and parses it into T, returning
// defaultValue when the variable is unset or empty.
func GetEnv[T parseableEnv](name string, defaultValue T) T {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return defaultValue
	}
	value, err := parseEnv[T](name, raw)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return value
}

// GetRequiredEnv reads an environment variable and parses it into T,
// exiting the process when the variable is unset or empty. Only used during
// startup, before any network activity.
func GetRequiredEnv[T parseableEnv](name string) T {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		log.Fatalf("%s environment variable is required", name)
	}
	value, err := parseEnv[T](name, raw)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return value
}
