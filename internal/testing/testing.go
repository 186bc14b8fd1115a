// package testing contains shared testing utilities
package testing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

// InceptionID is the IMDb id used across fixtures
const InceptionID = "tt1375666"

// InceptionSearch is a one-hit search payload
var InceptionSearch = map[string]any{
	"Search": []map[string]string{
		{"Title": "Inception", "Year": "2010", "imdbID": InceptionID, "Type": "movie", "Poster": "https://img.example/inception.jpg"},
	},
	"totalResults": "1",
	"Response":     "True",
}

// InceptionDetail is a detail payload
var InceptionDetail = map[string]string{
	"Title":      "Inception",
	"Year":       "2010",
	"Released":   "16 Jul 2010",
	"Runtime":    "148 min",
	"Genre":      "Action, Adventure, Sci-Fi",
	"Director":   "Christopher Nolan",
	"Actors":     "Leonardo DiCaprio, Joseph Gordon-Levitt, Elliot Page",
	"Plot":       "A thief who steals corporate secrets through the use of dream-sharing technology.",
	"Poster":     "https://img.example/inception.jpg",
	"imdbRating": "8.8",
	"imdbID":     InceptionID,
	"Type":       "movie",
	"Response":   "True",
}

// NotFound is OMDb's negative result
var NotFound = map[string]string{"Response": "False", "Error": "Movie not found!"}

// FakeOMDb is an httptest server answering OMDb-style queries
type FakeOMDb struct {
	*httptest.Server

	mu       sync.Mutex
	searches map[string]any // query -> payload
	details  map[string]any // id -> payload
	gate     chan struct{}  // when set, requests block until closed
	calls    atomic.Int32
	lastKey  atomic.Value
}

// NewFakeOMDb starts a fake server preloaded with the Inception fixtures
func NewFakeOMDb(t *testing.T) *FakeOMDb {
	t.Helper()
	f := &FakeOMDb{
		searches: map[string]any{"Inception": InceptionSearch},
		details:  map[string]any{InceptionID: InceptionDetail},
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Close)
	return f
}

func (f *FakeOMDb) handle(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	q := r.URL.Query()
	f.lastKey.Store(q.Get("apikey"))

	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}

	if q.Get("apikey") == "" {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"Response": "False", "Error": "No API key provided."})
		return
	}

	var payload any = NotFound
	f.mu.Lock()
	if s := q.Get("s"); s != "" {
		if p, ok := f.searches[s]; ok {
			payload = p
		}
	} else if id := q.Get("i"); id != "" {
		if p, ok := f.details[id]; ok {
			payload = p
		}
	}
	f.mu.Unlock()

	if raw, ok := payload.(string); ok {
		w.Write([]byte(raw))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

// SetSearch registers a payload for a query; a string payload is written raw
func (f *FakeOMDb) SetSearch(query string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches[query] = payload
}

// SetDetail registers a payload for an id; a string payload is written raw
func (f *FakeOMDb) SetDetail(id string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.details[id] = payload
}

// Block makes every request wait until the returned func is called
func (f *FakeOMDb) Block() (release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	gate := make(chan struct{})
	f.gate = gate
	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			f.gate = nil
			f.mu.Unlock()
			close(gate)
		})
	}
}

// Calls returns how many requests reached the server
func (f *FakeOMDb) Calls() int {
	return int(f.calls.Load())
}

// LastAPIKey returns the apikey parameter of the most recent request
func (f *FakeOMDb) LastAPIKey() string {
	v, _ := f.lastKey.Load().(string)
	return v
}
