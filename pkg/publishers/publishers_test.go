package publishers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryEnabledFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: http2
    type: http
    enabled: true
    http:
      url: https://example.com/2
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "http2" {
		t.Fatalf("expected only http2 enabled, got %#v", enabled)
	}
}

func TestLoadRegistryRejectsDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: dup
    type: http
    http:
      url: https://example.com
  - id: dup
    type: http
    http:
      url: https://example.com/2
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestValidatePublisherConfigRejectsMissingHTTP(t *testing.T) {
	err := validatePublisherConfig(PublisherConfig{
		ID:   "h1",
		Type: TypeHTTP,
	})
	if err == nil {
		t.Fatalf("expected validation error for missing http block")
	}
}

func TestValidatePublisherConfigRejectsHalfCredentials(t *testing.T) {
	cfg := sanitizePublisherConfig(PublisherConfig{
		ID:   "s1",
		Type: TypeSNS,
		SNS: &SNSPublisherConfig{
			TopicARN:    "arn:aws:sns:::topic",
			Region:      "us-east-1",
			Credentials: &AWSCredentials{AccessKeyID: "AKIA..."},
		},
	})
	if err := validatePublisherConfig(cfg); err == nil {
		t.Fatalf("expected validation error for half-specified static credentials")
	}
}

func TestValidatePublisherConfigPubSubRequiresProject(t *testing.T) {
	err := validatePublisherConfig(sanitizePublisherConfig(PublisherConfig{
		ID:     "p1",
		Type:   TypePubSub,
		PubSub: &PubSubPublisherConfig{Topic: "topic-1"},
	}))
	if err == nil {
		t.Fatalf("expected validation error for missing pubsub project_id")
	}
}
