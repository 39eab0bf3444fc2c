package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tokotitoh/marketplace-client/internal/infrastructure/clients/tokotitoh"
)

// testBackend is a fake tokotitoh API for service tests. It records every
// request and answers from a configurable handler; the default handler
// serves empty row lists.
type testBackend struct {
	server *httptest.Server

	mu       sync.Mutex
	requests []*http.Request
	handler  http.HandlerFunc
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	b := &testBackend{}
	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, r.Clone(r.Context()))
		handler := b.handler
		b.mu.Unlock()

		if handler != nil {
			handler(w, r)
			return
		}
		w.Write([]byte(`{"items":{"rows":[]}}`))
	}))
	t.Cleanup(b.server.Close)
	return b
}

func (b *testBackend) client() *tokotitoh.HTTPClient {
	return tokotitoh.NewClient(tokotitoh.Config{
		BaseURL:     b.server.URL,
		BearerToken: "tokotitohapi",
		PartnerCode: "id.marketplace.tokotitoh",
	})
}

func (b *testBackend) respond(handler http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handler = handler
}

func (b *testBackend) requestCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

func (b *testBackend) lastRequest() *http.Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		return nil
	}
	return b.requests[len(b.requests)-1]
}

// adRowsBody builds a {items:{rows:[...]}} envelope with n minimal ads
// whose ids start at firstID
func adRowsBody(n int, firstID int64) string {
	rows := make([]string, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, fmt.Sprintf(`{"id":%d,"title":"iklan %d","price":1000}`, firstID+int64(i), firstID+int64(i)))
	}
	return `{"items":{"rows":[` + strings.Join(rows, ",") + `]}}`
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
