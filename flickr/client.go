// Package flickr is a thin client for the Flickr REST API, mapping search
// results down to the compact photo view the web UI and the frame need.
package flickr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	ttlworker "github.com/FloatTech/ttl"
	"github.com/bytedance/sonic"
	"golang.org/x/time/rate"

	"github.com/ellied/framecast/tool"
	"github.com/ellied/framecast/types"
)

const (
	DefaultBaseURL = "https://api.flickr.com/services/rest/"
	// CacheTTL keeps result pages around long enough for UI paging back and
	// forth without re-hitting the API.
	CacheTTL = 5 * time.Minute
)

// Client talks to the Flickr REST API. Calls are rate limited (free API keys
// are throttled server-side) and result pages are cached per query.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	cache   *ttlworker.Cache[string, types.PhotoPage]
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		http:    tool.GetHttpClient(),
		limiter: rate.NewLimiter(rate.Limit(2), 5),
		cache:   ttlworker.NewCache[string, types.PhotoPage](CacheTTL),
	}
}

// SetBaseURL overrides the API endpoint (tests point this at a local stub).
func (c *Client) SetBaseURL(u string) {
	if u != "" {
		c.baseURL = u
	}
}

// SetHTTPClient overrides the underlying HTTP client.
func (c *Client) SetHTTPClient(h *http.Client) {
	if h != nil {
		c.http = h
	}
}

// wire shapes of the Flickr JSON envelope.
type searchResponse struct {
	Photos struct {
		Page    int         `json:"page"`
		Pages   int         `json:"pages"`
		PerPage int         `json:"perpage"`
		Total   int         `json:"total"`
		Photo   []wirePhoto `json:"photo"`
	} `json:"photos"`
	Stat    string `json:"stat"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type wirePhoto struct {
	ID     string `json:"id"`
	Owner  string `json:"owner"`
	Secret string `json:"secret"`
	Server string `json:"server"`
	Title  string `json:"title"`
	Media  string `json:"media"`
}

// Search returns one page of photos matching tags and/or a user. Empty tags
// and user fall back to the photostream of the configured user.
func (c *Client) Search(tags, userID string, page, perPage int) (types.PhotoPage, error) {
	params := url.Values{}
	params.Set("method", "flickr.photos.search")
	if tags != "" {
		params.Set("tags", tags)
		params.Set("tag_mode", "all")
	}
	if userID != "" {
		params.Set("user_id", userID)
	}
	params.Set("sort", "date-posted-desc")
	return c.fetchPage(params, page, perPage)
}

// Recent returns one page of the most recent public uploads.
func (c *Client) Recent(page, perPage int) (types.PhotoPage, error) {
	params := url.Values{}
	params.Set("method", "flickr.photos.getRecent")
	return c.fetchPage(params, page, perPage)
}

func (c *Client) fetchPage(params url.Values, page, perPage int) (types.PhotoPage, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 || perPage > 500 {
		perPage = 100
	}
	params.Set("api_key", c.apiKey)
	params.Set("format", "json")
	params.Set("nojsoncallback", "1")
	params.Set("extras", "media")
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	cacheKey := params.Encode()
	if cached, ok := cacheGet(c.cache, cacheKey); ok {
		tool.DefaultLogger.Debugf("Flickr cache hit: %s page %d", params.Get("method"), page)
		return cached, nil
	}

	if err := c.limiter.Wait(context.Background()); err != nil {
		return types.PhotoPage{}, fmt.Errorf("flickr rate limiter: %w", err)
	}

	resp, err := c.http.Get(c.baseURL + "?" + params.Encode())
	if err != nil {
		return types.PhotoPage{}, fmt.Errorf("flickr request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close response body: %v", err)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return types.PhotoPage{}, fmt.Errorf("flickr returned status: %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.PhotoPage{}, fmt.Errorf("failed reading flickr response: %w", err)
	}

	var wire searchResponse
	if err := sonic.Unmarshal(body, &wire); err != nil {
		return types.PhotoPage{}, fmt.Errorf("failed to parse flickr response: %w", err)
	}
	if wire.Stat != "ok" {
		return types.PhotoPage{}, fmt.Errorf("flickr error %d: %s", wire.Code, wire.Message)
	}

	result := types.PhotoPage{
		Page:    wire.Photos.Page,
		Pages:   wire.Photos.Pages,
		PerPage: wire.Photos.PerPage,
		Total:   wire.Photos.Total,
		Photos:  make([]types.Photo, 0, len(wire.Photos.Photo)),
	}
	for _, p := range wire.Photos.Photo {
		media := p.Media
		if media == "" {
			media = "photo"
		}
		result.Photos = append(result.Photos, types.Photo{
			ID:     p.ID,
			Title:  p.Title,
			Owner:  p.Owner,
			Server: p.Server,
			Secret: p.Secret,
			Media:  media,
			URL:    StaticURL(p.Server, p.ID, p.Secret),
		})
	}

	c.cache.Set(cacheKey, result)
	return result, nil
}

// StaticURL builds the direct large-size image URL for a photo.
func StaticURL(server, id, secret string) string {
	return fmt.Sprintf("https://live.staticflickr.com/%s/%s_%s_b.jpg", server, id, secret)
}

// cacheGet wraps the TTL cache's zero-value Get with an existence check.
func cacheGet(c *ttlworker.Cache[string, types.PhotoPage], key string) (types.PhotoPage, bool) {
	page := c.Get(key)
	if page.Photos == nil {
		return types.PhotoPage{}, false
	}
	return page, true
}
