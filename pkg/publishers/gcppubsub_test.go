package publishers

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"

	"github.com/vaultline-hq/vaultline-go/internal/domain"
)

func TestPubSubPublisherPublishes(t *testing.T) {
	// Use the in-memory Pub/Sub emulator.
	server := pstest.NewServer()
	defer server.Close()
	defer os.Unsetenv("PUBSUB_EMULATOR_HOST")
	os.Setenv("PUBSUB_EMULATOR_HOST", server.Addr)

	ctx := context.Background()
	client, err := pubsub.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	if _, err := client.CreateTopic(ctx, "topic-1"); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	pub, err := newPubSubPublisher(ctx, PublisherConfig{
		ID:   "pubsub-1",
		Type: TypePubSub,
		PubSub: &PubSubPublisherConfig{
			ProjectID: "test-project",
			Topic:     "topic-1",
		},
	}, nil)
	if err != nil {
		t.Fatalf("newPubSubPublisher: %v", err)
	}

	err = pub.Publish(ctx, NewEvent(KindTransactionBroadcast, domain.Submission{TxID: "tx-1"}))
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
}
