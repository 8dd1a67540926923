package main

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeServer struct {
	mu        sync.Mutex
	stopped   chan struct{}
	serveErr  error
	addr      string
	shutdowns int
}

func newFakeServer() *fakeServer {
	return &fakeServer{stopped: make(chan struct{})}
}

func (s *fakeServer) Serve(addr string) error {
	s.mu.Lock()
	s.addr = addr
	serveErr := s.serveErr
	s.mu.Unlock()
	if serveErr != nil {
		return serveErr
	}
	<-s.stopped
	return nil
}

func (s *fakeServer) Shutdown(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shutdowns == 0 {
		close(s.stopped)
	}
	s.shutdowns++
	return nil
}

func TestServeUntilDoneShutsDownOnCancel(t *testing.T) {
	server := newFakeServer()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serveUntilDone(ctx, server, ":0", nil, zap.NewNop()) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatalf("serve loop did not return after cancel")
	}
	server.mu.Lock()
	defer server.mu.Unlock()
	assert.Equal(t, 1, server.shutdowns)
}

func TestServeUntilDoneReturnsServeError(t *testing.T) {
	server := newFakeServer()
	server.serveErr = errors.New("address in use")

	err := serveUntilDone(context.Background(), server, ":8080", nil, zap.NewNop())
	require.EqualError(t, err, "address in use")
	server.mu.Lock()
	defer server.mu.Unlock()
	assert.Equal(t, ":8080", server.addr)
	assert.Equal(t, 1, server.shutdowns)
}
