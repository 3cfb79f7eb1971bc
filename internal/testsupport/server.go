package testsupport

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Publish is one request captured by a NtfyServer.
type Publish struct {
	Method string
	Path   string
	Header http.Header
	Body   string
}

// NtfyServer is an HTTPS stand-in for an ntfy instance. It records every
// publish and answers with a fixed status code.
type NtfyServer struct {
	server *httptest.Server
	status int

	mu        sync.Mutex
	publishes []Publish
}

// NewNtfyServer starts a TLS server that answers status and closes it when
// the test ends.
func NewNtfyServer(t testing.TB, status int) *NtfyServer {
	t.Helper()

	s := &NtfyServer{status: status}
	s.server = httptest.NewTLSServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.server.Close)
	return s
}

func (s *NtfyServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.publishes = append(s.publishes, Publish{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   string(body),
	})
	s.mu.Unlock()
	w.WriteHeader(s.status)
}

// Host returns host:port, the form used as a server host setting.
func (s *NtfyServer) Host() string {
	return strings.TrimPrefix(s.server.URL, "https://")
}

// Client returns an HTTP client that trusts the server's certificate.
func (s *NtfyServer) Client() *http.Client {
	return s.server.Client()
}

// Publishes returns a copy of the requests received so far.
func (s *NtfyServer) Publishes() []Publish {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Publish(nil), s.publishes...)
}
