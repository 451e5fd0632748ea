package flickr

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

const searchBody = `{
	"photos": {
		"page": 1, "pages": 3, "perpage": 2, "total": 6,
		"photo": [
			{"id": "52841773170", "owner": "12345678@N00", "secret": "abc123", "server": "65535", "title": "Harbour at dusk", "media": "photo"},
			{"id": "52841773171", "owner": "12345678@N00", "secret": "def456", "server": "65535", "title": "Gulls", "media": "video"}
		]
	},
	"stat": "ok"
}`

func newStub(t *testing.T, body string, hits *int32) *Client {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	client := NewClient("test-key")
	client.SetBaseURL(ts.URL)
	client.SetHTTPClient(ts.Client())
	return client
}

// TestSearchFieldMapping checks the wire envelope maps down to the compact
// photo view, including the constructed static URL.
func TestSearchFieldMapping(t *testing.T) {
	client := newStub(t, searchBody, nil)

	page, err := client.Search("harbour", "", 1, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Page != 1 || page.Pages != 3 || page.Total != 6 {
		t.Errorf("pagination = %+v, want page 1 of 3, total 6", page)
	}
	if len(page.Photos) != 2 {
		t.Fatalf("got %d photos, want 2", len(page.Photos))
	}

	first := page.Photos[0]
	if first.ID != "52841773170" || first.Title != "Harbour at dusk" || first.Media != "photo" {
		t.Errorf("first photo = %+v, want mapped id/title/media", first)
	}
	wantURL := "https://live.staticflickr.com/65535/52841773170_abc123_b.jpg"
	if first.URL != wantURL {
		t.Errorf("URL = %q, want %q", first.URL, wantURL)
	}
	if page.Photos[1].Media != "video" {
		t.Errorf("second photo media = %q, want video", page.Photos[1].Media)
	}
}

// TestSearchCachesPages checks a repeated query is served from cache.
func TestSearchCachesPages(t *testing.T) {
	var hits int32
	client := newStub(t, searchBody, &hits)

	if _, err := client.Search("harbour", "", 1, 2); err != nil {
		t.Fatalf("first Search: %v", err)
	}
	if _, err := client.Search("harbour", "", 1, 2); err != nil {
		t.Fatalf("second Search: %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("stub hit %d times, want 1 (second call cached)", got)
	}
}

// TestSearchAPIError surfaces the Flickr error envelope.
func TestSearchAPIError(t *testing.T) {
	client := newStub(t, `{"stat":"fail","code":100,"message":"Invalid API Key"}`, nil)

	_, err := client.Search("harbour", "", 1, 2)
	if err == nil {
		t.Fatal("Search should fail on stat=fail")
	}
	if !strings.Contains(err.Error(), "Invalid API Key") {
		t.Errorf("error %q should carry the API message", err)
	}
}

// TestStaticURL pins the live.staticflickr.com layout.
func TestStaticURL(t *testing.T) {
	got := StaticURL("65535", "52841773170", "abc123")
	want := "https://live.staticflickr.com/65535/52841773170_abc123_b.jpg"
	if got != want {
		t.Errorf("StaticURL = %q, want %q", got, want)
	}
}
