package client

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ironsheep/image-size-mcp/internal/config"
	"github.com/ironsheep/image-size-mcp/internal/probe"
)

func testConfig() *config.Config {
	return &config.Config{
		HTTP: config.HTTP{UserAgent: "image-size-mcp/test", Accept: "image/*"},
		Authorization: config.Authorization{
			Token:  "Bearer secret",
			Cookie: "sid=abc123",
		},
	}
}

func gifHeader(width, height uint16) []byte {
	b := []byte("GIF89a")
	b = binary.LittleEndian.AppendUint16(b, width)
	b = binary.LittleEndian.AppendUint16(b, height)
	return append(b, 0, 0, 0)
}

func TestParseCookie(t *testing.T) {
	tests := []struct {
		in        string
		wantName  string
		wantValue string
	}{
		{"", "", ""},
		{"sid=abc", "sid", "abc"},
		{" sid = a=b ", "sid", "a=b"},
		{"rawvalue", "session", "rawvalue"},
	}
	for _, tt := range tests {
		name, value := parseCookie(tt.in)
		if name != tt.wantName || value != tt.wantValue {
			t.Errorf("parseCookie(%q) = (%q, %q), want (%q, %q)", tt.in, name, value, tt.wantName, tt.wantValue)
		}
	}
}

func TestFetch_SendsHeaders(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Header().Set("Content-Type", "image/gif")
		w.Write(gifHeader(5, 6))
	}))
	defer srv.Close()

	resp, err := NewRestyClient(testConfig()).Fetch(context.Background(), srv.URL+"/a.gif")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	defer resp.Body.Close()

	if !resp.OK() {
		t.Errorf("expected OK, got %d", resp.StatusCode)
	}
	if resp.ContentType != "image/gif" {
		t.Errorf("ContentType: got %q", resp.ContentType)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if len(body) != 13 {
		t.Errorf("body: got %d bytes, want 13", len(body))
	}

	if ua := got.Header.Get("User-Agent"); ua != "image-size-mcp/test" {
		t.Errorf("User-Agent: got %q", ua)
	}
	if auth := got.Header.Get("Authorization"); auth != "Bearer secret" {
		t.Errorf("Authorization: got %q", auth)
	}
	if c, err := got.Cookie("sid"); err != nil || c.Value != "abc123" {
		t.Errorf("cookie sid: got %v, %v", c, err)
	}
}

func TestFetch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	resp, err := NewRestyClient(testConfig()).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.OK() || resp.StatusCode != http.StatusNotFound {
		t.Errorf("got status %d, want 404", resp.StatusCode)
	}
}

func TestFetch_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if _, err := NewRestyClient(testConfig()).Fetch(context.Background(), url); err == nil {
		t.Error("expected an error from a closed server")
	}
}

// The probe closes the body once the header parses, so a server streaming an
// endless payload sees its write fail instead of finishing.
func TestProbe_StopsReadingAfterHeader(t *testing.T) {
	aborted := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/gif")
		w.Write(gifHeader(320, 200))
		w.(http.Flusher).Flush()

		filler := make([]byte, 32*1024)
		for i := 0; i < 10000; i++ {
			if _, err := w.Write(filler); err != nil {
				close(aborted)
				return
			}
			w.(http.Flusher).Flush()
		}
	}))
	defer srv.Close()

	p := probe.New(NewRestyClient(testConfig()), probe.WithChunkSize(64))
	d, err := p.Probe(context.Background(), srv.URL+"/big.gif")
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if d.Width != 320 || d.Height != 200 {
		t.Errorf("got %dx%d, want 320x200", d.Width, d.Height)
	}

	select {
	case <-aborted:
	case <-time.After(10 * time.Second):
		t.Error("server kept streaming after the probe finished")
	}
}

func TestProbe_HTTPErrorIsFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := probe.New(NewRestyClient(testConfig())).Probe(context.Background(), srv.URL)
	if !errors.Is(err, probe.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
	var te *probe.TransportError
	if !errors.As(err, &te) || te.StatusCode != http.StatusForbidden {
		t.Errorf("expected status 403 in %v", err)
	}
}

func TestProbe_DeadlineInterruptsStalledServer(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("GIF8"))
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := probe.New(NewRestyClient(testConfig())).Probe(ctx, srv.URL)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}
