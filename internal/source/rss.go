package source

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wallstonks/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// Cap on items taken from a single feed fetch.
const rssItemCap = 25

// RSSClient fetches headlines from one RSS feed.
type RSSClient struct {
	client *http.Client
	tracer trace.Tracer
}

func NewRSSClient(tracer trace.Tracer) *RSSClient {
	return &RSSClient{
		client: &http.Client{Timeout: 15 * time.Second},
		tracer: tracer,
	}
}

// FetchHeadlines returns up to 25 headlines from the feed, tagged with the
// given source name.
func (c *RSSClient) FetchHeadlines(ctx context.Context, feedURL, sourceName string) ([]domain.Headline, error) {
	_, span := c.tracer.Start(ctx, "rss.fetch-headlines")
	defer span.End()

	feedURL = strings.TrimSpace(feedURL)
	if feedURL == "" {
		return nil, parseError("rss", fmt.Errorf("feed url is required"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, transportError("rss:"+sourceName, err)
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")
	req.Header.Set("User-Agent", defaultRedditUA)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, transportError("rss:"+sourceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, transportError("rss:"+sourceName, fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError("rss:"+sourceName, err)
	}

	var rss struct {
		Channel struct {
			Items []struct {
				Title   string `xml:"title"`
				Link    string `xml:"link"`
				PubDate string `xml:"pubDate"`
			} `xml:"item"`
		} `xml:"channel"`
	}
	if err := xml.Unmarshal(body, &rss); err != nil {
		return nil, parseError("rss:"+sourceName, err)
	}

	items := make([]domain.Headline, 0, min(rssItemCap, len(rss.Channel.Items)))
	for i, row := range rss.Channel.Items {
		if i >= rssItemCap {
			break
		}
		title := sanitizeText(row.Title, 300)
		if title == "" {
			continue
		}
		var publishedAt *time.Time
		if t := parseRSSDate(row.PubDate); !t.IsZero() {
			publishedAt = &t
		}
		items = append(items, domain.Headline{
			Source:      sourceName,
			Title:       title,
			Link:        sanitizeText(row.Link, 500),
			PublishedAt: publishedAt,
		})
	}
	return items, nil
}

func parseRSSDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822, time.RFC3339}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
