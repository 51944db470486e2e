package smartemailing

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// reply is a canned response of the fake service.
type reply struct {
	status int
	body   string
}

type request struct {
	method string
	path   string
	body   string
	user   string
	token  string
}

// fakeService answers "METHOD /path" keys with canned replies and records
// every request. Unknown routes get a 404 with a service message.
type fakeService struct {
	t      *testing.T
	server *httptest.Server
	routes map[string]reply

	mu       sync.Mutex
	requests []request
}

func newFakeService(t *testing.T, routes map[string]reply) *fakeService {
	t.Helper()
	fs := &fakeService{t: t, routes: routes}
	fs.server = httptest.NewServer(http.HandlerFunc(fs.handle))
	t.Cleanup(fs.server.Close)
	return fs
}

func (fs *fakeService) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	user, token, _ := r.BasicAuth()

	fs.mu.Lock()
	fs.requests = append(fs.requests, request{
		method: r.Method,
		path:   r.URL.Path,
		body:   string(body),
		user:   user,
		token:  token,
	})
	fs.mu.Unlock()

	rep, ok := fs.routes[r.Method+" "+r.URL.Path]
	if !ok {
		rep = reply{status: http.StatusNotFound, body: `{"status":"error","message":"Route not found"}`}
	}
	if rep.status == 0 {
		rep.status = http.StatusOK
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rep.status)
	w.Write([]byte(rep.body))
}

func (fs *fakeService) recorded() []request {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]request, len(fs.requests))
	copy(out, fs.requests)
	return out
}

func (fs *fakeService) client(opts ...Option) *Client {
	fs.t.Helper()
	opts = append([]Option{WithBaseURL(fs.server.URL)}, opts...)
	client, err := New("api-user", "api-token", opts...)
	if err != nil {
		fs.t.Fatalf("New() error = %v", err)
	}
	return client
}

// panickingTransport panics on every round trip.
type panickingTransport struct{}

func (panickingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	panic("transport exploded")
}
