package environments

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeRegistry(t *testing.T, name, raw string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestLoadRegistryYAML(t *testing.T) {
	path := writeRegistry(t, "environments.yaml", `
environments:
  - id: staging
    name: Staging
    base_url: https://staging.api.vaultline.io/
    api_key_env: VAULTLINE_STAGING_API_KEY
    request_timeout_ms: 10000
  - id: production
    name: Production
    base_url: https://api.vaultline.io
    api_key_env: VAULTLINE_API_KEY
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	if got := len(reg.All()); got != 2 {
		t.Fatalf("expected 2 environments, got %d", got)
	}

	staging, ok := reg.ByID("staging")
	if !ok {
		t.Fatalf("staging environment missing")
	}
	if staging.BaseURL != "https://staging.api.vaultline.io" {
		t.Fatalf("trailing slash should be stripped, got %s", staging.BaseURL)
	}
	if staging.RequestTimeout() != 10*time.Second {
		t.Fatalf("RequestTimeout = %s", staging.RequestTimeout())
	}

	prod, _ := reg.ByID("production")
	if prod.RequestTimeout() != 30*time.Second {
		t.Fatalf("default timeout expected 30s, got %s", prod.RequestTimeout())
	}
}

func TestLoadRegistryRejectsDuplicateIDs(t *testing.T) {
	path := writeRegistry(t, "environments.yaml", `
environments:
  - id: dup
    name: One
    base_url: https://one.example.com
    api_key_env: KEY_ONE
  - id: dup
    name: Two
    base_url: https://two.example.com
    api_key_env: KEY_TWO
`)

	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestLoadRegistryRejectsMissingFields(t *testing.T) {
	path := writeRegistry(t, "environments.yaml", `
environments:
  - id: broken
    name: Broken
    base_url: https://example.com
`)

	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected validation error for missing api_key_env")
	}
}

func TestAPIKeyResolvesFromOSEnv(t *testing.T) {
	env := Environment{ID: "staging", APIKeyEnv: "VAULTLINE_TEST_KEY"}

	t.Setenv("VAULTLINE_TEST_KEY", "sk-test-123")
	key, err := env.APIKey()
	if err != nil || key != "sk-test-123" {
		t.Fatalf("APIKey = %q, %v", key, err)
	}

	t.Setenv("VAULTLINE_TEST_KEY", "")
	if _, err := env.APIKey(); err == nil {
		t.Fatalf("expected error for unset key variable")
	}
}
