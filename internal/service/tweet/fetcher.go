package tweet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/inbucket/html2text"
	"golang.org/x/net/html"

	"github.com/Hawkhub/tg-tw-answering-bot/internal/core"
	"github.com/Hawkhub/tg-tw-answering-bot/pkg/log"
	"github.com/Hawkhub/tg-tw-answering-bot/pkg/retry"
)

const (
	defaultSyndicationBase = "https://cdn.syndication.twimg.com/tweet-result"
	defaultPageBase        = "https://x.com"

	maxResponseSize     = 2 << 20 // 2MB
	defaultFetchTimeout = 15 * time.Second
	maxSnippetLen       = 280
)

// Fetcher retrieves tweet content without authenticated platform access.
// It is strictly best effort: each tier may fail for reasons outside our
// control (login walls, rate limits, markup changes) and failures
// downgrade to the next tier rather than surfacing as errors.
type Fetcher struct {
	client  *http.Client
	retrier *retry.Retrier

	syndicationBase string
	pageBase        string
}

func NewFetcher() *Fetcher {
	return NewFetcherWithTimeout(defaultFetchTimeout, nil)
}

func NewFetcherWithTimeout(timeout time.Duration, retryCfg *retry.Config) *Fetcher {
	if retryCfg == nil {
		retryCfg = retry.NewDefaultConfig()
		retryCfg.MaxRetries = 2
	}
	return &Fetcher{
		client:          &http.Client{Timeout: timeout},
		retrier:         retry.NewRetrier(retryCfg),
		syndicationBase: defaultSyndicationBase,
		pageBase:        defaultPageBase,
	}
}

// Fetch runs the tiers in order: the syndication JSON endpoint, then an
// og:meta scrape of the status page, then a reconstructed-link-only
// result. It never returns an error; the zero-content result still
// carries the canonical source URL.
func (f *Fetcher) Fetch(ctx context.Context, username, tweetID string) core.TweetContent {
	logger := log.FromCtx(ctx)
	source := CanonicalURL(username, tweetID)

	content, err := f.fromSyndication(ctx, tweetID)
	if err == nil && (content.Text != "" || len(content.MediaURLs) > 0) {
		content.Source = source
		logger.Debug().Str("tweet", tweetID).Msg("fetched tweet via syndication endpoint")
		return content
	}
	if err != nil {
		logger.Warn().Err(err).Str("tweet", tweetID).Msg("syndication fetch failed")
	}

	content, err = f.fromPage(ctx, username, tweetID)
	if err == nil && (content.Text != "" || len(content.MediaURLs) > 0) {
		content.Source = source
		logger.Debug().Str("tweet", tweetID).Msg("fetched tweet via page scrape")
		return content
	}
	if err != nil {
		logger.Warn().Err(err).Str("tweet", tweetID).Msg("page scrape failed")
	}

	logger.Warn().Str("tweet", tweetID).Msg("all tweet fetch tiers failed, returning minimal result")
	return core.TweetContent{
		Text:   fmt.Sprintf("Tweet by @%s - content could not be retrieved automatically", username),
		Source: source,
	}
}

// syndicationTweet is the subset of the syndication endpoint's response we
// consume.
type syndicationTweet struct {
	Text   string `json:"text"`
	Photos []struct {
		URL string `json:"url"`
	} `json:"photos"`
	Video struct {
		Variants []struct {
			Type string `json:"type"`
			Src  string `json:"src"`
		} `json:"variants"`
	} `json:"video"`
}

func (f *Fetcher) fromSyndication(ctx context.Context, tweetID string) (core.TweetContent, error) {
	url := fmt.Sprintf("%s?id=%s&lang=en", f.syndicationBase, tweetID)

	body, err := f.get(ctx, url)
	if err != nil {
		return core.TweetContent{}, err
	}

	var tw syndicationTweet
	if err := json.Unmarshal(body, &tw); err != nil {
		return core.TweetContent{}, fmt.Errorf("failed to parse syndication response: %w", err)
	}

	content := core.TweetContent{Text: strings.TrimSpace(tw.Text)}
	for _, p := range tw.Photos {
		if p.URL != "" {
			content.MediaURLs = append(content.MediaURLs, p.URL)
		}
	}
	for _, v := range tw.Video.Variants {
		if v.Type == "video/mp4" && v.Src != "" {
			content.MediaURLs = append(content.MediaURLs, v.Src)
			break
		}
	}
	return content, nil
}

func (f *Fetcher) fromPage(ctx context.Context, username, tweetID string) (core.TweetContent, error) {
	url := fmt.Sprintf("%s/%s/status/%s", f.pageBase, username, tweetID)

	body, err := f.get(ctx, url)
	if err != nil {
		return core.TweetContent{}, err
	}

	var content core.TweetContent
	content.Text, content.MediaURLs = extractOpenGraph(body)

	if content.Text == "" {
		// Last resort on this tier: flatten the page and keep a snippet.
		text, err := html2text.FromString(string(body), html2text.Options{OmitLinks: true})
		if err == nil {
			text = strings.TrimSpace(text)
			if len(text) > maxSnippetLen {
				text = text[:maxSnippetLen]
			}
			content.Text = text
		}
	}
	return content, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := f.retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", core.BotUserAgent)
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")

		resp, err := f.client.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		if err != nil {
			return fmt.Errorf("failed to read body: %w", err)
		}
		return nil
	})
	return body, err
}

// extractOpenGraph pulls og:description and og:image values out of a
// status page's head.
func extractOpenGraph(body []byte) (description string, images []string) {
	root, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return "", nil
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var property, content string
			for _, a := range n.Attr {
				switch a.Key {
				case "property", "name":
					property = a.Val
				case "content":
					content = a.Val
				}
			}
			switch property {
			case "og:description", "description":
				if description == "" {
					description = strings.TrimSpace(content)
				}
			case "og:image":
				if content != "" {
					images = append(images, content)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return description, images
}
