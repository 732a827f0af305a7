package environments

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Package environments contains named orchestrator environment profiles
// loaded from YAML/JSON files. API keys are never stored in the file; each
// profile names the OS environment variable holding its key.

const defaultRequestTimeoutMs = 30000

// Environment describes one custody orchestrator endpoint profile.
type Environment struct {
	ID               string `json:"id" yaml:"id"`
	Name             string `json:"name" yaml:"name"`
	BaseURL          string `json:"base_url" yaml:"base_url"`
	APIKeyEnv        string `json:"api_key_env" yaml:"api_key_env"`
	RequestTimeoutMs int    `json:"request_timeout_ms" yaml:"request_timeout_ms"`
}

type registryFile struct {
	Environments []Environment `json:"environments" yaml:"environments"`
}

// Registry holds the environment profiles loaded from one file.
type Registry struct {
	mu           sync.RWMutex
	environments []Environment
	idx          map[string]Environment
}

// LoadRegistry loads environment profiles from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("environments file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open environments file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read environments file: %w", err)
	}

	fileReg, err := parseRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(fileReg.Environments) == 0 {
		return nil, errors.New("environments file contains no environments entries")
	}

	reg := &Registry{
		environments: make([]Environment, len(fileReg.Environments)),
		idx:          make(map[string]Environment, len(fileReg.Environments)),
	}

	for i := range fileReg.Environments {
		env := sanitizeEnvironment(fileReg.Environments[i])
		if err := validateEnvironment(env); err != nil {
			return nil, fmt.Errorf("environment[%d]: %w", i, err)
		}
		if _, exists := reg.idx[env.ID]; exists {
			return nil, fmt.Errorf("duplicate environment id %q", env.ID)
		}
		reg.environments[i] = env
		reg.idx[env.ID] = env
	}

	return reg, nil
}

func parseRegistry(data []byte, ext string) (registryFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		if reg, err := unmarshalRegistry(d.name, data, d.fn); err == nil {
			return reg, nil
		}
	}

	return registryFile{}, errors.New("environments file format not recognized (expected YAML or JSON)")
}

func unmarshalRegistry(name string, data []byte, fn func([]byte, any) error) (registryFile, error) {
	var reg registryFile
	if err := fn(data, &reg); err != nil {
		return registryFile{}, fmt.Errorf("decode %s environments: %w", name, err)
	}
	return reg, nil
}

func sanitizeEnvironment(env Environment) Environment {
	env.ID = strings.TrimSpace(env.ID)
	env.Name = strings.TrimSpace(env.Name)
	env.BaseURL = strings.TrimRight(strings.TrimSpace(env.BaseURL), "/")
	env.APIKeyEnv = strings.TrimSpace(env.APIKeyEnv)

	if env.RequestTimeoutMs <= 0 {
		env.RequestTimeoutMs = defaultRequestTimeoutMs
	}

	return env
}

func validateEnvironment(env Environment) error {
	if env.ID == "" {
		return errors.New("id is required")
	}
	if env.Name == "" {
		return fmt.Errorf("name is required for environment %q", env.ID)
	}
	if env.BaseURL == "" {
		return fmt.Errorf("base_url is required for environment %q", env.ID)
	}
	if env.APIKeyEnv == "" {
		return fmt.Errorf("api_key_env is required for environment %q", env.ID)
	}
	return nil
}

// ByID returns the environment profile for the given id, if loaded.
func (r *Registry) ByID(id string) (Environment, bool) {
	if r == nil {
		return Environment{}, false
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return Environment{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	env, ok := r.idx[id]
	return env, ok
}

// All returns a copy of the loaded environment profiles.
func (r *Registry) All() []Environment {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.environments) == 0 {
		return nil
	}
	out := make([]Environment, len(r.environments))
	copy(out, r.environments)
	return out
}

// RequestTimeout returns the per-request timeout for the environment.
func (e Environment) RequestTimeout() time.Duration {
	if e.RequestTimeoutMs <= 0 {
		return defaultRequestTimeoutMs * time.Millisecond
	}
	return time.Duration(e.RequestTimeoutMs) * time.Millisecond
}

// APIKey resolves the API key from the environment variable the profile
// names. An unset or empty variable is an error; keys never live in the file.
func (e Environment) APIKey() (string, error) {
	key := strings.TrimSpace(os.Getenv(e.APIKeyEnv))
	if key == "" {
		return "", fmt.Errorf("environment %q: variable %s is not set", e.ID, e.APIKeyEnv)
	}
	return key, nil
}
