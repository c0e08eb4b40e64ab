package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/staffdesk/errors"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads and parses a staffdesk configuration file. Both YAML
// (staffdesk.yml) and TOML (staffdesk.toml) files are accepted; the
// extension decides the parser.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	if strings.HasSuffix(path, ".toml") {
		return LoadTOMLFromBytes(data)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses YAML configuration data, validates it against the
// embedded schema, and applies defaults and environment overrides.
func LoadFromBytes(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
	}

	return finish(&config)
}

// LoadTOMLFromBytes parses TOML configuration data. TOML configs do not
// carry extension sections; known fields only.
func LoadTOMLFromBytes(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var config Config
	if err := toml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
	}

	return finish(&config)
}

// LoadDefault loads the configuration from the first location found:
// STAFFDESK_CONFIG, ./staffdesk.yml, ./staffdesk.toml,
// ~/.staffdesk/staffdesk.yml. A client is usable without any file, so a
// completely absent config yields pure defaults rather than an error.
func LoadDefault() (*Config, error) {
	if path := os.Getenv("STAFFDESK_CONFIG"); path != "" {
		return Load(path)
	}

	for _, path := range searchPaths() {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	config := &Config{}
	return finish(config)
}

// FindConfigFile returns the path of the active config file, or empty if
// the client is running on pure defaults.
func FindConfigFile() string {
	if path := os.Getenv("STAFFDESK_CONFIG"); path != "" {
		return path
	}
	for _, path := range searchPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func searchPaths() []string {
	paths := []string{"staffdesk.yml", "staffdesk.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".staffdesk", "staffdesk.yml"))
	}
	return paths
}

func finish(config *Config) (*Config, error) {
	validator, err := NewSchemaValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to create validator")
	}
	if err := validator.Validate(config); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigValidation, "schema validation failed")
	}

	config.SetDefaults()

	// Environment always wins over file contents.
	if url := os.Getenv("STAFFDESK_API_URL"); url != "" {
		config.API.BaseURL = strings.TrimRight(url, "/")
	}

	return config, nil
}

// expandEnvVars substitutes ${VAR} and ${VAR:-default} references.
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}
