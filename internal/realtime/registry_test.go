package realtime

import (
	"testing"

	"github.com/google/uuid"
)

func TestRegistryBindAndResolve(t *testing.T) {
	registry := NewRegistry()
	userID := uuid.New()

	registry.Bind(1, userID)
	registry.Bind(2, userID)

	if got := registry.Len(); got != 2 {
		t.Fatalf("expected 2 connections, got %d", got)
	}
	if conns := registry.Connections(userID); len(conns) != 2 {
		t.Fatalf("expected both connections for the user, got %v", conns)
	}
	if owner, ok := registry.UserFor(1); !ok || owner != userID {
		t.Fatal("expected connection 1 resolved to the user")
	}
}

func TestRegistryUnbind(t *testing.T) {
	registry := NewRegistry()
	userID := uuid.New()
	registry.Bind(7, userID)

	owner, ok := registry.Unbind(7)
	if !ok || owner != userID {
		t.Fatal("expected unbind to return the owner")
	}
	if _, ok := registry.UserFor(7); ok {
		t.Fatal("expected connection gone after unbind")
	}
	if conns := registry.Connections(userID); len(conns) != 0 {
		t.Fatalf("expected no connections left, got %v", conns)
	}

	if _, ok := registry.Unbind(7); ok {
		t.Fatal("expected second unbind to report missing")
	}
}

func TestRegistryIsolatesUsers(t *testing.T) {
	registry := NewRegistry()
	alpha := uuid.New()
	beta := uuid.New()

	registry.Bind(1, alpha)
	registry.Bind(2, beta)

	if conns := registry.Connections(alpha); len(conns) != 1 || conns[0] != 1 {
		t.Fatalf("expected only connection 1 for the first user, got %v", conns)
	}
	registry.Unbind(1)
	if conns := registry.Connections(beta); len(conns) != 1 {
		t.Fatal("expected the second user's connection untouched")
	}
}
