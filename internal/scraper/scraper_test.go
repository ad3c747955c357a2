package scraper

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/bbwaa-awards/internal/logger"
)

func TestFetch(t *testing.T) {
	tests := []struct {
		name        string
		htmlContent string
		statusCode  int
		wantError   bool
		wantTables  int
	}{
		{
			name: "successful fetch with tables",
			htmlContent: `
				<html>
					<body>
						<table><tr><th class="a">Player</th></tr></table>
						<table><tr><th class="b">Voter</th></tr></table>
					</body>
				</html>
			`,
			statusCode: http.StatusOK,
			wantTables: 2,
		},
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			wantError:  true,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			wantError:  true,
		},
		{
			name:        "empty page",
			htmlContent: `<html><body><p>No results yet</p></body></html>`,
			statusCode:  http.StatusOK,
			wantTables:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if userAgent := r.Header.Get("User-Agent"); userAgent != UserAgent {
					t.Errorf("User-Agent = %q, want %q", userAgent, UserAgent)
				}
				if r.Method != http.MethodGet {
					t.Errorf("Method = %s, want GET", r.Method)
				}

				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.htmlContent))
			}))
			defer server.Close()

			s := New()
			doc, err := s.Fetch(context.Background(), server.URL+"/15-al-cy/")

			if tt.wantError {
				if doc != nil {
					t.Error("Fetch() returned a document alongside an error")
				}
				var fetchErr *FetchError
				if !errors.As(err, &fetchErr) {
					t.Fatalf("Fetch() error = %v, want *FetchError", err)
				}
				if fetchErr.StatusCode != tt.statusCode {
					t.Errorf("StatusCode = %d, want %d", fetchErr.StatusCode, tt.statusCode)
				}
				if !strings.Contains(fetchErr.Error(), "/15-al-cy/") {
					t.Errorf("Error() = %q, should name the URL", fetchErr.Error())
				}
				return
			}

			if err != nil {
				t.Fatalf("Fetch() unexpected error: %v", err)
			}
			if got := doc.Find("table").Length(); got != tt.wantTables {
				t.Errorf("document has %d tables, want %d", got, tt.wantTables)
			}
		})
	}
}

func TestFetch_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := New().Fetch(context.Background(), url)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Fetch() error = %v, want *FetchError", err)
	}
	if fetchErr.Err == nil {
		t.Error("FetchError.Err is nil for a transport failure")
	}
}

func TestFetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	s := NewWithOptions(Options{Timeout: 20 * time.Millisecond})
	if _, err := s.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("Fetch() expected timeout error, got nil")
	}
}

func TestFetch_Canceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<table></table>"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Fetch(ctx, server.URL)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch() error = %v, want context.Canceled", err)
	}
}

func TestFetch_VerboseLogging(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose logs failure", true, true},
		{"quiet stays silent", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			s := NewWithOptions(Options{
				Verbose: tt.verbose,
				Logger:  logger.New(logger.LevelDebug, &buf),
			})

			s.Fetch(context.Background(), server.URL)

			logged := strings.Contains(buf.String(), "Failed to fetch page")
			if logged != tt.wantLog {
				t.Errorf("logged = %v, want %v (output %q)", logged, tt.wantLog, buf.String())
			}
			if tt.wantLog && !strings.Contains(buf.String(), `"status":404`) {
				t.Errorf("log should include status code: %q", buf.String())
			}
		})
	}
}

func TestNewWithOptions(t *testing.T) {
	s := New()
	if s.client == nil {
		t.Fatal("scraper client is nil")
	}
	if s.client.Timeout != Timeout {
		t.Errorf("default timeout = %v, want %v", s.client.Timeout, Timeout)
	}
	if s.userAgent != UserAgent {
		t.Errorf("default userAgent = %q", s.userAgent)
	}

	custom := NewWithOptions(Options{UserAgent: "test-agent", Timeout: -1})
	if custom.client.Timeout != 0 {
		t.Errorf("negative timeout should disable it, got %v", custom.client.Timeout)
	}
	if custom.userAgent != "test-agent" {
		t.Errorf("userAgent = %q, want test-agent", custom.userAgent)
	}
}
