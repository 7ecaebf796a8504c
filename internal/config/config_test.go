package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// TestConfig represents a test configuration structure.
type TestConfig struct {
	Config string `help:"Config file path"`

	// Basic types
	StringField string   `toml:"test.string_field" env:"STRING_FIELD"`
	BoolField   bool     `toml:"test.bool_field" env:"BOOL_FIELD"`
	IntField    int      `toml:"test.int_field" env:"INT_FIELD"`
	SliceField  []string `toml:"test.slice_field" env:"SLICE_FIELD"`

	// Nested config
	NestedString string `toml:"nested.value" env:"NESTED_VALUE"`
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfigFromTOML(t *testing.T) {
	path := writeTempConfig(t, `
[test]
string_field = "hello world"
bool_field = true
int_field = 42
slice_field = ["item1", "item2", "item3"]

[nested]
value = "nested value"
`)

	config := &TestConfig{Config: path}
	if err := LoadConfig(config, nil); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.StringField != "hello world" {
		t.Errorf("Expected StringField to be 'hello world', got '%s'", config.StringField)
	}
	if !config.BoolField {
		t.Errorf("Expected BoolField to be true, got %v", config.BoolField)
	}
	if config.IntField != 42 {
		t.Errorf("Expected IntField to be 42, got %d", config.IntField)
	}
	expectedSlice := []string{"item1", "item2", "item3"}
	if !reflect.DeepEqual(config.SliceField, expectedSlice) {
		t.Errorf("Expected SliceField to be %v, got %v", expectedSlice, config.SliceField)
	}
	if config.NestedString != "nested value" {
		t.Errorf("Expected NestedString to be 'nested value', got '%s'", config.NestedString)
	}
}

func TestLoadConfigFromEnvVars(t *testing.T) {
	t.Setenv("STATUSLEDD_STRING_FIELD", "env string")
	t.Setenv("STATUSLEDD_BOOL_FIELD", "false")
	t.Setenv("STATUSLEDD_INT_FIELD", "123")
	t.Setenv("STATUSLEDD_SLICE_FIELD", "a,b,c")

	config := &TestConfig{}
	if err := LoadConfig(config, nil); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.StringField != "env string" {
		t.Errorf("Expected StringField to be 'env string', got '%s'", config.StringField)
	}
	if config.BoolField {
		t.Errorf("Expected BoolField to be false, got %v", config.BoolField)
	}
	if config.IntField != 123 {
		t.Errorf("Expected IntField to be 123, got %d", config.IntField)
	}
	expectedSlice := []string{"a", "b", "c"}
	if !reflect.DeepEqual(config.SliceField, expectedSlice) {
		t.Errorf("Expected SliceField to be %v, got %v", expectedSlice, config.SliceField)
	}
}

func TestLoadConfigEnvOverridesToml(t *testing.T) {
	path := writeTempConfig(t, `
[test]
string_field = "toml value"
bool_field = true
int_field = 100
`)

	t.Setenv("STATUSLEDD_STRING_FIELD", "env override")
	t.Setenv("STATUSLEDD_BOOL_FIELD", "false")

	config := &TestConfig{Config: path}
	if err := LoadConfig(config, nil); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.StringField != "env override" {
		t.Errorf("Expected StringField to be 'env override', got '%s'", config.StringField)
	}
	if config.BoolField {
		t.Errorf("Expected BoolField to be false (env override), got %v", config.BoolField)
	}
	// TOML values are used when no env override exists.
	if config.IntField != 100 {
		t.Errorf("Expected IntField to be 100 (from TOML), got %d", config.IntField)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	config := &TestConfig{Config: "nonexistent_file.toml"}

	// Should not fail when file doesn't exist
	if err := LoadConfig(config, nil); err != nil {
		t.Fatalf("LoadConfig should not fail for missing file: %v", err)
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := writeTempConfig(t, `
[test
invalid toml syntax
`)

	config := &TestConfig{Config: path}
	if err := LoadConfig(config, nil); err == nil {
		t.Fatal("LoadConfig should fail for invalid TOML")
	}
}

func TestGetNestedValue(t *testing.T) {
	data := map[string]any{
		"level1": map[string]any{
			"level2": map[string]any{
				"value": "nested_value",
			},
			"simple": "simple_value",
		},
		"root": "root_value",
	}

	tests := []struct {
		path     string
		expected any
	}{
		{"root", "root_value"},
		{"level1.simple", "simple_value"},
		{"level1.level2.value", "nested_value"},
		{"nonexistent", nil},
		{"level1.nonexistent", nil},
	}

	for _, test := range tests {
		result := getNestedValue(data, test.path)
		if result != test.expected {
			t.Errorf("getNestedValue(%q) = %v, expected %v", test.path, result, test.expected)
		}
	}
}

func TestFieldNameToFlag(t *testing.T) {
	tests := []struct {
		field string
		want  string
	}{
		{"Port", "port"},
		{"BatterySupply", "battery-supply"},
		{"LoggingLevel", "logging-level"},
	}

	for _, tt := range tests {
		if got := fieldNameToFlag(tt.field); got != tt.want {
			t.Errorf("fieldNameToFlag(%q) = %q, want %q", tt.field, got, tt.want)
		}
	}
}

func TestLoadLoggingConfig(t *testing.T) {
	path := writeTempConfig(t, `
[logging]
level = "warn"
format = "json"
indicator = "debug"
animation = "error"
`)

	cfg := LoadLoggingConfig(path)

	if cfg.Level != "warn" {
		t.Errorf("Expected level warn, got %q", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("Expected format json, got %q", cfg.Format)
	}
	if cfg.Modules["indicator"] != "debug" {
		t.Errorf("Expected indicator module at debug, got %q", cfg.Modules["indicator"])
	}
	if cfg.Modules["animation"] != "error" {
		t.Errorf("Expected animation module at error, got %q", cfg.Modules["animation"])
	}
}

func TestLoadLoggingConfigMissingFile(t *testing.T) {
	cfg := LoadLoggingConfig("nonexistent.toml")

	if cfg.Level != "info" || cfg.Format != "text" {
		t.Errorf("Expected defaults for missing file, got level=%q format=%q", cfg.Level, cfg.Format)
	}
	if len(cfg.Modules) != 0 {
		t.Errorf("Expected no module overrides for missing file, got %v", cfg.Modules)
	}
}
