package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestHubShutdownUnblocksDetach(t *testing.T) {
	hub := NewHub(HubParams{})
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	client := newClient(hub, nil, uuid.New())
	hub.register <- client

	cancel()
	select {
	case <-hub.done:
	case <-time.After(time.Second):
		t.Fatal("hub did not shut down")
	}

	finished := make(chan struct{})
	go func() {
		client.detach()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("detach blocked after hub shutdown")
	}
}

func TestHubShutdownClosesClientQueues(t *testing.T) {
	hub := NewHub(HubParams{})
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	client := newClient(hub, nil, uuid.New())
	hub.register <- client

	cancel()
	select {
	case _, open := <-client.send:
		if open {
			t.Fatal("expected send channel closed, got event")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel left open after shutdown")
	}
}
