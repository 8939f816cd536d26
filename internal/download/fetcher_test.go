package download

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	payload := []byte("segment-bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/seg1.ts":
			w.Write(payload)
		case "/slow.ts":
			time.Sleep(200 * time.Millisecond)
			w.Write(payload)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	dir := t.TempDir()
	fetcher := NewHTTPFetcher(5*time.Second, newTestLogger())

	dest := filepath.Join(dir, "seg1.ts")
	ok, err := fetcher.Fetch(context.Background(), server.URL+"/seg1.ts", dest)
	if err != nil {
		t.Fatalf("Fetch() returned error: %v", err)
	}
	if !ok {
		t.Fatal("Fetch() = false, expected true")
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("destination file not written: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("written bytes = %q, expected %q", data, payload)
	}
}

func TestHTTPFetcher_Fetch_SlowStreamSucceeds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		for i := 0; i < 8; i++ {
			w.Write([]byte{'a'})
			flusher.Flush()
			time.Sleep(50 * time.Millisecond)
		}
	}))
	defer server.Close()

	// The whole transfer (~400ms) exceeds the timeout, but no single gap
	// between reads does; a steadily flowing segment must not be cut off.
	fetcher := NewHTTPFetcher(200*time.Millisecond, newTestLogger())
	dest := filepath.Join(t.TempDir(), "slow-stream.ts")

	ok, err := fetcher.Fetch(context.Background(), server.URL+"/slow-stream.ts", dest)
	if err != nil {
		t.Fatalf("Fetch() returned error: %v", err)
	}
	if !ok {
		t.Fatal("Fetch() = false for a steadily flowing segment")
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("destination file not written: %v", err)
	}
	if len(data) != 8 {
		t.Errorf("written %d bytes, expected 8", len(data))
	}
}

func TestHTTPFetcher_Fetch_StalledBodyFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("head"))
		w.(http.Flusher).Flush()
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte("tail"))
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(100*time.Millisecond, newTestLogger())
	dest := filepath.Join(t.TempDir(), "stalled.ts")

	ok, err := fetcher.Fetch(context.Background(), server.URL+"/stalled.ts", dest)
	if err != nil {
		t.Fatalf("stalled body must be non-fatal, got error: %v", err)
	}
	if ok {
		t.Error("Fetch() = true for a stalled body, expected false")
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("truncated segment left on disk")
	}
}

func TestHTTPFetcher_Fetch_PartialContentAccepted(t *testing.T) {
	payload := []byte("range-bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPartialContent)
		w.Write(payload)
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(5*time.Second, newTestLogger())
	dest := filepath.Join(t.TempDir(), "partial.ts")

	ok, err := fetcher.Fetch(context.Background(), server.URL+"/partial.ts", dest)
	if err != nil {
		t.Fatalf("Fetch() returned error: %v", err)
	}
	if !ok {
		t.Fatal("Fetch() = false for 206 Partial Content, expected true")
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("destination file not written: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("written bytes = %q, expected %q", data, payload)
	}
}

func TestHTTPFetcher_Fetch_HTTPFailureIsCounted(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	fetcher := NewHTTPFetcher(5*time.Second, newTestLogger())
	dest := filepath.Join(t.TempDir(), "missing.ts")

	ok, err := fetcher.Fetch(context.Background(), server.URL+"/missing.ts", dest)
	if err != nil {
		t.Fatalf("HTTP failure must be non-fatal, got error: %v", err)
	}
	if ok {
		t.Error("Fetch() = true for 404, expected false")
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("destination file exists after failed fetch")
	}
}

func TestHTTPFetcher_Fetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(50*time.Millisecond, newTestLogger())
	dest := filepath.Join(t.TempDir(), "slow.ts")

	ok, err := fetcher.Fetch(context.Background(), server.URL+"/slow.ts", dest)
	if err != nil {
		t.Fatalf("timeout must be non-fatal, got error: %v", err)
	}
	if ok {
		t.Error("Fetch() = true for timed-out request, expected false")
	}
}

func TestHTTPFetcher_Fetch_UnwritableDestination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data"))
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(5*time.Second, newTestLogger())
	dest := filepath.Join(t.TempDir(), "no-such-dir", "seg.ts")

	ok, err := fetcher.Fetch(context.Background(), server.URL+"/seg.ts", dest)
	if err == nil {
		t.Fatal("unwritable destination must be unrecoverable, got nil error")
	}
	if ok {
		t.Error("Fetch() = true with error, expected false")
	}
}
