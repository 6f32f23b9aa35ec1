package sse

import (
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

// BroadcasterSuite is a test suite for Broadcaster operations.
type BroadcasterSuite struct {
	suite.Suite
	broadcaster *Broadcaster
}

func (s *BroadcasterSuite) SetupTest() {
	s.broadcaster = NewBroadcaster()
}

func TestBroadcasterSuite(t *testing.T) {
	suite.Run(t, new(BroadcasterSuite))
}

// mockResponseWriter implements http.ResponseWriter and http.Flusher.
type mockResponseWriter struct {
	header     http.Header
	body       []byte
	statusCode int
	mu         sync.Mutex
}

func newMockResponseWriter() *mockResponseWriter {
	return &mockResponseWriter{header: make(http.Header), statusCode: http.StatusOK}
}

func (m *mockResponseWriter) Header() http.Header { return m.header }

func (m *mockResponseWriter) Write(data []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.body = append(m.body, data...)
	return len(data), nil
}

func (m *mockResponseWriter) WriteHeader(statusCode int) { m.statusCode = statusCode }

func (m *mockResponseWriter) Flush() {}

func (m *mockResponseWriter) GetBody() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.body)
}

// nonFlushingWriter lacks http.Flusher on purpose.
type nonFlushingWriter struct{ header http.Header }

func (n *nonFlushingWriter) Header() http.Header       { return n.header }
func (n *nonFlushingWriter) Write(b []byte) (int, error) { return len(b), nil }
func (n *nonFlushingWriter) WriteHeader(int)           {}

func (s *BroadcasterSuite) TestNewBroadcaster() {
	s.NotNil(s.broadcaster.clients)
	s.Equal(0, s.broadcaster.ClientCount())
}

func (s *BroadcasterSuite) TestAddRemoveClient() {
	w := newMockResponseWriter()

	client, err := s.broadcaster.AddClient(w)
	s.Require().NoError(err)
	s.Equal(1, s.broadcaster.ClientCount())

	s.broadcaster.RemoveClient(client)
	s.Equal(0, s.broadcaster.ClientCount())
}

func (s *BroadcasterSuite) TestAddClient_NoFlusher() {
	_, err := s.broadcaster.AddClient(&nonFlushingWriter{header: make(http.Header)})
	s.Error(err)
}

func (s *BroadcasterSuite) TestBroadcast() {
	w := newMockResponseWriter()
	client, err := s.broadcaster.AddClient(w)
	s.Require().NoError(err)
	defer s.broadcaster.RemoveClient(client)

	s.broadcaster.Broadcast(Event{Entity: "prompt", Action: "created", ID: "p-1"})

	body := w.GetBody()
	s.True(strings.HasPrefix(body, "data: "))
	s.Contains(body, `"entity":"prompt"`)
	s.Contains(body, `"action":"created"`)
	s.Contains(body, `"id":"p-1"`)
}

func (s *BroadcasterSuite) TestBroadcast_NoClients() {
	// Must not panic or block with nobody listening.
	s.broadcaster.Broadcast(Event{Entity: "settings", Action: "updated"})
}
