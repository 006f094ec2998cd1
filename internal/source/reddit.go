package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wallstonks/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const (
	redditBaseURL     = "https://www.reddit.com"
	defaultRedditUA   = "wallstonks/2.0 (market forecast engine)"
	redditTitleCap    = 30
	maxRedditPostSize = 100
)

// RedditClient fetches recent post titles for a subreddit via the public
// JSON listing.
type RedditClient struct {
	client    *http.Client
	baseURL   string
	userAgent string
	tracer    trace.Tracer
}

func NewRedditClient(tracer trace.Tracer) *RedditClient {
	return &RedditClient{
		client:    &http.Client{Timeout: 15 * time.Second},
		baseURL:   redditBaseURL,
		userAgent: defaultRedditUA,
		tracer:    tracer,
	}
}

// FetchHot returns up to limit recent hot-post titles from the subreddit,
// capped at 30 per community.
func (c *RedditClient) FetchHot(ctx context.Context, subreddit string, limit int) ([]domain.Headline, error) {
	_, span := c.tracer.Start(ctx, "reddit.fetch-hot")
	defer span.End()

	subreddit = strings.TrimSpace(subreddit)
	if subreddit == "" {
		return nil, parseError("reddit", fmt.Errorf("subreddit is required"))
	}
	if limit <= 0 || limit > redditTitleCap {
		limit = redditTitleCap
	}

	base := strings.TrimRight(c.baseURL, "/")
	u := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", base, url.PathEscape(subreddit), min(limit, maxRedditPostSize))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, transportError("reddit:"+subreddit, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, transportError("reddit:"+subreddit, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, transportError("reddit:"+subreddit, fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	var payload struct {
		Data struct {
			Children []struct {
				Data struct {
					Title      string  `json:"title"`
					Permalink  string  `json:"permalink"`
					CreatedUTC float64 `json:"created_utc"`
				} `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, parseError("reddit:"+subreddit, err)
	}

	items := make([]domain.Headline, 0, len(payload.Data.Children))
	for _, row := range payload.Data.Children {
		if len(items) >= limit {
			break
		}
		title := sanitizeText(row.Data.Title, 300)
		if title == "" {
			continue
		}
		var publishedAt *time.Time
		if row.Data.CreatedUTC > 0 {
			t := time.Unix(int64(row.Data.CreatedUTC), 0).UTC()
			publishedAt = &t
		}
		items = append(items, domain.Headline{
			Source:      "reddit:" + subreddit,
			Title:       title,
			Link:        base + strings.TrimSpace(row.Data.Permalink),
			PublishedAt: publishedAt,
		})
	}
	return items, nil
}

func sanitizeText(in string, maxLen int) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return ""
	}
	in = strings.ReplaceAll(in, "\n", " ")
	in = strings.ReplaceAll(in, "\r", " ")
	in = strings.Join(strings.Fields(in), " ")
	if maxLen > 0 && len(in) > maxLen {
		in = in[:maxLen]
	}
	return in
}
