// Package client provides a Hive (HiveServer2/Kyuubi/Spark Thrift) client
// for metadata introspection and query execution over the gohive driver.
package client

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// defaultHost is used when no host is configured.
	defaultHost = "127.0.0.1"

	// defaultPort is the default HiveServer2 thrift port.
	defaultPort = 10000

	// defaultTimeoutSeconds bounds each statement issued by the client.
	defaultTimeoutSeconds = 30

	// settingsNamespace prefixes carrier-map keys destined for the
	// free-form session configuration map.
	settingsNamespace = "configuration."
)

// Config holds Hive connection configuration.
//
// Configuration carries free-form session settings (spark.*, hive.*) handed
// to the server at connect time; values are normalized to strings by
// NormalizeSettings before they reach the driver.
type Config struct {
	Host           string         `yaml:"host"`
	Port           int            `yaml:"port"`
	Database       string         `yaml:"database"`
	Username       string         `yaml:"username"`
	Password       string         `yaml:"password"`
	Auth           string         `yaml:"auth"`
	Configuration  map[string]any `yaml:"configuration"`
	TimeoutSeconds int            `yaml:"timeout_seconds"`
}

// ValidationError reports a configuration field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("hive config: field %q: %s", e.Field, e.Reason)
}

// FromCarrierMap builds a Config from a flat, prefixed key-value map.
//
// Every entry whose key starts with prefix contributes: keys under the
// "configuration." namespace land in Config.Configuration verbatim, all
// other keys must name a declared Config field. A "port" supplied as a
// digit string is converted to an integer; any other coercion failure,
// an unknown field, or a missing username yields a *ValidationError.
func FromCarrierMap(carrier map[string]any, prefix string) (Config, error) {
	base := make(map[string]any)
	settings := make(map[string]any)

	for key, value := range carrier {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		local := key[len(prefix):]
		if local == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(local, settingsNamespace); ok {
			settings[rest] = value
			continue
		}
		if local == "port" {
			if s, ok := value.(string); ok && isDigits(s) {
				n, _ := strconv.Atoi(s)
				base[local] = n
				continue
			}
		}
		base[local] = value
	}

	return fromFields(base, settings)
}

// fromFields assembles a Config from base fields plus the nested settings
// map, enforcing the declared-field allow-list.
func fromFields(base map[string]any, settings map[string]any) (Config, error) {
	cfg := Config{
		Host:           defaultHost,
		Port:           defaultPort,
		TimeoutSeconds: defaultTimeoutSeconds,
		Configuration:  settings,
	}

	for key, value := range base {
		var err error
		switch key {
		case "host":
			cfg.Host, err = asString(key, value)
		case "port":
			cfg.Port, err = asInt(key, value)
		case "database":
			cfg.Database, err = asString(key, value)
		case "username":
			cfg.Username, err = asString(key, value)
		case "password":
			cfg.Password, err = asString(key, value)
		case "auth":
			cfg.Auth, err = asString(key, value)
		case "timeout_seconds":
			cfg.TimeoutSeconds, err = asInt(key, value)
		default:
			return Config{}, &ValidationError{Field: key, Reason: "unknown field"}
		}
		if err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required fields. Auth is an open enumeration (NONE,
// LDAP, CUSTOM, KERBEROS are the values Hive servers commonly accept)
// and is passed through to the driver unchecked.
func (c Config) Validate() error {
	if c.Username == "" {
		return &ValidationError{Field: "username", Reason: "required"}
	}
	return nil
}

// withDefaults fills zero-valued fields with their defaults.
func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = defaultHost
	}
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.Configuration == nil {
		c.Configuration = map[string]any{}
	}
	return c
}

// NormalizeSettings converts free-form session settings to the string map
// the driver expects: nil becomes the empty string, booleans become
// "true"/"false", everything else uses its default formatting.
func NormalizeSettings(settings map[string]any) map[string]string {
	normalized := make(map[string]string, len(settings))
	for key, value := range settings {
		switch v := value.(type) {
		case nil:
			normalized[key] = ""
		case bool:
			normalized[key] = strconv.FormatBool(v)
		case string:
			normalized[key] = v
		default:
			normalized[key] = fmt.Sprintf("%v", v)
		}
	}
	return normalized
}

// asString coerces a carrier-map value to a string.
func asString(field string, value any) (string, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", &ValidationError{Field: field, Reason: fmt.Sprintf("expected string, got %T", value)}
}

// asInt coerces a carrier-map value to an int. Whole-valued floats are
// accepted because generic decoders (JSON, YAML) deliver numbers as float64.
func asInt(field string, value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	}
	return 0, &ValidationError{Field: field, Reason: fmt.Sprintf("expected integer, got %v (%T)", value, value)}
}

// isDigits reports whether s is a non-empty run of decimal digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
