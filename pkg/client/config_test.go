package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCarrierMap_AllFields(t *testing.T) {
	carrier := map[string]any{
		"warehouse.host":                                   "10.85.24.173",
		"warehouse.port":                                   "10009",
		"warehouse.database":                               "test",
		"warehouse.username":                               "hue",
		"warehouse.password":                               "pass",
		"warehouse.auth":                                   "CUSTOM",
		"warehouse.timeout_seconds":                        60,
		"warehouse.configuration.spark.app.name":           "datacenter_carrier",
		"warehouse.configuration.spark.executor.instances": "1",
		"unrelated.host":                                   "ignored",
	}

	cfg, err := FromCarrierMap(carrier, "warehouse.")
	require.NoError(t, err)

	assert.Equal(t, "10.85.24.173", cfg.Host)
	assert.Equal(t, 10009, cfg.Port)
	assert.Equal(t, "test", cfg.Database)
	assert.Equal(t, "hue", cfg.Username)
	assert.Equal(t, "pass", cfg.Password)
	assert.Equal(t, "CUSTOM", cfg.Auth)
	assert.Equal(t, 60, cfg.TimeoutSeconds)
	assert.Equal(t, map[string]any{
		"spark.app.name":           "datacenter_carrier",
		"spark.executor.instances": "1",
	}, cfg.Configuration)
}

func TestFromCarrierMap_Defaults(t *testing.T) {
	cfg, err := FromCarrierMap(map[string]any{"p.username": "hue"}, "p.")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 10000, cfg.Port)
	assert.Empty(t, cfg.Database)
	assert.Equal(t, "hue", cfg.Username)
	assert.Empty(t, cfg.Password)
	assert.Empty(t, cfg.Auth)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.Empty(t, cfg.Configuration)
}

func TestFromCarrierMap_PortVariants(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantPort int
		wantErr  bool
	}{
		{name: "digit string", value: "10009", wantPort: 10009},
		{name: "native int", value: 10009, wantPort: 10009},
		{name: "whole float (generic decoder)", value: float64(10009), wantPort: 10009},
		{name: "non-numeric string", value: "abc", wantErr: true},
		{name: "fractional float", value: 1.5, wantErr: true},
		{name: "bool", value: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := FromCarrierMap(map[string]any{
				"p.username": "hue",
				"p.port":     tt.value,
			}, "p.")

			if tt.wantErr {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "port", verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPort, cfg.Port)
		})
	}
}

func TestFromCarrierMap_MissingUsername(t *testing.T) {
	_, err := FromCarrierMap(map[string]any{"p.host": "h"}, "p.")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "username", verr.Field)
}

func TestFromCarrierMap_UnknownFieldRejected(t *testing.T) {
	_, err := FromCarrierMap(map[string]any{
		"p.username":    "hue",
		"p.bogus_field": "x",
	}, "p.")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "bogus_field", verr.Field)
	assert.Equal(t, "unknown field", verr.Reason)
}

func TestFromCarrierMap_ExactPrefixKeyIgnored(t *testing.T) {
	cfg, err := FromCarrierMap(map[string]any{
		"p.":         "ignored",
		"p.username": "hue",
	}, "p.")
	require.NoError(t, err)
	assert.Equal(t, "hue", cfg.Username)
}

func TestFromCarrierMap_SettingsNotCoerced(t *testing.T) {
	// Nested settings values pass through untyped; coercion happens at
	// the driver boundary via NormalizeSettings.
	cfg, err := FromCarrierMap(map[string]any{
		"p.username":                   "hue",
		"p.configuration.spark.option": 100,
		"p.configuration.flag":         true,
	}, "p.")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"spark.option": 100, "flag": true}, cfg.Configuration)
}

func TestFromCarrierMap_StringFieldCoercionFails(t *testing.T) {
	_, err := FromCarrierMap(map[string]any{
		"p.username": "hue",
		"p.host":     42,
	}, "p.")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "host", verr.Field)
}

func TestValidate(t *testing.T) {
	t.Run("empty username", func(t *testing.T) {
		err := Config{}.Validate()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("username present", func(t *testing.T) {
		assert.NoError(t, Config{Username: "hue"}.Validate())
	})
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Field: "port", Reason: "expected integer, got abc (string)"}
	assert.Contains(t, err.Error(), `"port"`)
	assert.True(t, errors.As(error(err), new(*ValidationError)))
}

func TestNormalizeSettings(t *testing.T) {
	got := NormalizeSettings(map[string]any{
		"a": nil,
		"b": true,
		"c": 100,
		"d": false,
		"e": "keep",
		"f": 1.5,
	})

	want := map[string]string{
		"a": "",
		"b": "true",
		"c": "100",
		"d": "false",
		"e": "keep",
		"f": "1.5",
	}
	assert.Equal(t, want, got)
}

func TestNormalizeSettings_Empty(t *testing.T) {
	assert.Empty(t, NormalizeSettings(nil))
	assert.Empty(t, NormalizeSettings(map[string]any{}))
}
