package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/aretw0/envswitch/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the catalog file looked up in the config directory.
const DefaultFileName = "ENVIRONMENTS.yaml"

// ErrDuplicateEnvironment is returned when two environments share a name.
var ErrDuplicateEnvironment = errors.New("duplicate environment name")

// Config is the loaded catalog. It is read once and passed by value to the
// components that need it; nothing mutates it after Load.
type Config struct {
	// Path is the file the catalog was read from (empty for Parse).
	Path         string
	Environments []domain.Environment
	Global       map[string]any
	Templates    map[string]any
}

// rawConfig mirrors the YAML document before typed decoding.
type rawConfig struct {
	Environments []map[string]any `yaml:"environments"`
	Global       map[string]any   `yaml:"global"`
	Templates    map[string]any   `yaml:"templates"`
}

// DefaultPath returns ~/.config/home-manager/ENVIRONMENTS.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(home, ".config", "home-manager", DefaultFileName)
}

// Load reads and decodes the catalog at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file %s not found: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes a catalog document.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing YAML: %w", err)
	}

	cfg := &Config{
		Environments: make([]domain.Environment, 0, len(raw.Environments)),
		Global:       normalizeMap(raw.Global),
		Templates:    normalizeMap(raw.Templates),
	}

	seen := make(map[string]int)
	for i, item := range raw.Environments {
		fields := normalizeMap(item)
		env, err := decodeEnvironment(fields)
		if err != nil {
			name, _ := fields["name"].(string)
			env = domain.Environment{
				Name:    name,
				LoadErr: fmt.Errorf("%w: environments[%d]: %v", domain.ErrInvalidEnvironment, i, err),
			}
		}
		if env.Name != "" {
			if prev, ok := seen[env.Name]; ok {
				return nil, fmt.Errorf("environments[%d]: %w %q (first declared at environments[%d])", i, ErrDuplicateEnvironment, env.Name, prev)
			}
			seen[env.Name] = i
		}
		cfg.Environments = append(cfg.Environments, env)
	}

	return cfg, nil
}

func decodeEnvironment(item map[string]any) (domain.Environment, error) {
	var env domain.Environment
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &env,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
		DecodeHook:       yaml11BoolHook,
	})
	if err != nil {
		return env, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(item); err != nil {
		return env, fmt.Errorf("failed to decode environment: %w", err)
	}
	return env, nil
}

// yaml11BoolHook accepts the YAML 1.1 boolean words that yaml.v3 leaves as
// plain strings.
func yaml11BoolHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
		return data, nil
	}
	switch strings.ToLower(strings.TrimSpace(reflect.ValueOf(data).String())) {
	case "yes", "y", "on", "true":
		return true, nil
	case "no", "n", "off", "false", "":
		return false, nil
	}
	return data, nil
}

// Lookup returns the environment with the given name.
func (c *Config) Lookup(name string) (domain.Environment, bool) {
	for _, env := range c.Environments {
		if env.Name == name {
			return env, true
		}
	}
	return domain.Environment{}, false
}

// Names returns environment names in declaration order, "unknown" for unnamed ones.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Environments))
	for _, env := range c.Environments {
		if env.Name == "" {
			names = append(names, "unknown")
			continue
		}
		names = append(names, env.Name)
	}
	return names
}

// Dir returns the directory containing the catalog, or "." when parsed from memory.
func (c *Config) Dir() string {
	if c.Path == "" {
		return "."
	}
	return filepath.Dir(c.Path)
}

// normalizeMap converts YAML's map[any]any nodes into map[string]any so the
// result can be decoded by mapstructure and encoded as JSON.
func normalizeMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return normalizeMap(val)
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}
