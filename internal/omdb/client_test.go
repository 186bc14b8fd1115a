package omdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/popcorn/internal/domain"
	tu "github.com/mmcdole/popcorn/internal/testing"
)

func TestClient(t *testing.T) {
	t.Run("Search", func(t *testing.T) {
		t.Run("Maps results", func(t *testing.T) {
			srv := tu.NewFakeOMDb(t)
			c := NewClient(srv.URL, "key", nil)

			got, err := c.Search(context.Background(), "Inception")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("expected 1 result, got %d", len(got))
			}
			want := domain.MovieSummary{ID: tu.InceptionID, Title: "Inception", Year: "2010", PosterURL: "https://img.example/inception.jpg"}
			if got[0] != want {
				t.Errorf("expected %+v, got %+v", want, got[0])
			}
			if srv.LastAPIKey() != "key" {
				t.Errorf("expected apikey to be sent, got %q", srv.LastAPIKey())
			}
		})

		t.Run("Negative result is ErrNotFound", func(t *testing.T) {
			srv := tu.NewFakeOMDb(t)
			c := NewClient(srv.URL, "key", nil)

			_, err := c.Search(context.Background(), "zzzzzz")
			if !errors.Is(err, domain.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})

		t.Run("Unparsable body is ErrMalformedResponse", func(t *testing.T) {
			srv := tu.NewFakeOMDb(t)
			srv.SetSearch("broken", "<html>oops</html>")
			c := NewClient(srv.URL, "key", nil)

			_, err := c.Search(context.Background(), "broken")
			if !errors.Is(err, domain.ErrMalformedResponse) {
				t.Errorf("expected ErrMalformedResponse, got %v", err)
			}
		})

		t.Run("Missing Search field is ErrMalformedResponse", func(t *testing.T) {
			srv := tu.NewFakeOMDb(t)
			srv.SetSearch("odd", map[string]string{"Response": "True"})
			c := NewClient(srv.URL, "key", nil)

			_, err := c.Search(context.Background(), "odd")
			if !errors.Is(err, domain.ErrMalformedResponse) {
				t.Errorf("expected ErrMalformedResponse, got %v", err)
			}
		})

		t.Run("Missing API key surfaces as a network error", func(t *testing.T) {
			srv := tu.NewFakeOMDb(t)
			c := NewClient(srv.URL, "", nil)

			_, err := c.Search(context.Background(), "Inception")
			if !errors.Is(err, domain.ErrNetwork) {
				t.Fatalf("expected ErrNetwork, got %v", err)
			}
			var se *StatusError
			if !errors.As(err, &se) || se.StatusCode != http.StatusUnauthorized {
				t.Errorf("expected 401 StatusError, got %v", err)
			}
			if se.Message != "No API key provided." {
				t.Errorf("expected API error text, got %q", se.Message)
			}
		})

		t.Run("Unreachable server is ErrNetwork", func(t *testing.T) {
			srv := httptest.NewServer(http.NotFoundHandler())
			url := srv.URL
			srv.Close()

			c := NewClient(url, "key", nil)
			_, err := c.Search(context.Background(), "Inception")
			if !errors.Is(err, domain.ErrNetwork) {
				t.Errorf("expected ErrNetwork, got %v", err)
			}
		})

		t.Run("Cancellation is returned untouched", func(t *testing.T) {
			srv := tu.NewFakeOMDb(t)
			release := srv.Block()
			defer release()
			c := NewClient(srv.URL, "key", nil)

			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				time.Sleep(20 * time.Millisecond)
				cancel()
			}()

			_, err := c.Search(ctx, "Inception")
			if !errors.Is(err, context.Canceled) {
				t.Fatalf("expected context.Canceled, got %v", err)
			}
			if errors.Is(err, domain.ErrNetwork) {
				t.Error("cancellation must not be reported as a network failure")
			}
			if !IsCanceled(err) {
				t.Error("expected IsCanceled to report true")
			}
		})
	})

	t.Run("Detail", func(t *testing.T) {
		t.Run("Maps detail", func(t *testing.T) {
			srv := tu.NewFakeOMDb(t)
			c := NewClient(srv.URL, "key", nil)

			d, err := c.Detail(context.Background(), tu.InceptionID)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if d.ID != tu.InceptionID || d.Title != "Inception" {
				t.Errorf("unexpected identity %q %q", d.ID, d.Title)
			}
			if d.RuntimeMinutes != 148 {
				t.Errorf("expected runtime 148, got %d", d.RuntimeMinutes)
			}
			if d.ExternalRating != 8.8 {
				t.Errorf("expected rating 8.8, got %v", d.ExternalRating)
			}
			if d.Director != "Christopher Nolan" || d.ReleaseDate != "16 Jul 2010" {
				t.Errorf("unexpected detail %+v", d)
			}
		})

		t.Run("Response False is ErrNotFound", func(t *testing.T) {
			srv := tu.NewFakeOMDb(t)
			srv.SetDetail("tt0000000", map[string]string{"Response": "False"})
			c := NewClient(srv.URL, "key", nil)

			_, err := c.Detail(context.Background(), "tt0000000")
			if !errors.Is(err, domain.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})

		t.Run("Server error is ErrNetwork", func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer srv.Close()
			c := NewClient(srv.URL, "key", nil)

			_, err := c.Detail(context.Background(), tu.InceptionID)
			if !errors.Is(err, domain.ErrNetwork) {
				t.Errorf("expected ErrNetwork, got %v", err)
			}
		})
	})

	t.Run("Options", func(t *testing.T) {
		t.Run("Rate limit", func(t *testing.T) {
			c := NewClient("http://example.invalid", "key", nil, WithRateLimit(2))
			if c.limiter == nil {
				t.Fatal("expected limiter")
			}
			c = NewClient("http://example.invalid", "key", nil, WithRateLimit(0))
			if c.limiter != nil {
				t.Error("expected no limiter for rps=0")
			}
		})

		t.Run("Timeout and client", func(t *testing.T) {
			c := NewClient("http://example.invalid", "key", nil, WithTimeout(3*time.Second))
			if c.httpClient.Timeout != 3*time.Second {
				t.Errorf("expected 3s timeout, got %v", c.httpClient.Timeout)
			}
			hc := &http.Client{}
			c = NewClient("http://example.invalid", "key", nil, WithHTTPClient(hc))
			if c.httpClient != hc {
				t.Error("expected custom client")
			}
		})
	})
}

func TestRedact(t *testing.T) {
	q := map[string][]string{"apikey": {"secret"}, "s": {"Inception"}}
	got := redact(q)
	if got != "apikey=%2A%2A%2A&s=Inception" {
		t.Errorf("unexpected redacted query %q", got)
	}
}
