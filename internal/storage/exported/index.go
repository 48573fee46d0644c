package exported

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/Hawkhub/tg-tw-answering-bot/internal/core"
	"github.com/Hawkhub/tg-tw-answering-bot/pkg/log"
)

var (
	exportFileRe = regexp.MustCompile(`^messages\d*\.html$`)
	messageIDRe  = regexp.MustCompile(`^message(\d+)$`)
)

// Index is a stateless search over a directory tree of static channel
// export pages. It reads whatever is on disk at call time and caches
// nothing; results are a pure function of the export tree.
type Index struct {
	root string
}

func NewIndex(root string) *Index {
	return &Index{root: root}
}

// Search scans every messages[N].html file under the root for message
// blocks whose text contains query, case-insensitively. Results are
// ordered ascending by numeric message id across all files — export dates
// come in formats that are not comparably parseable, but ids are monotonic
// with chronological order.
//
// A missing root directory is a normal condition and yields an empty
// result. Files that fail to parse are logged and skipped.
func (idx *Index) Search(ctx context.Context, query string) []core.ExportedMessage {
	logger := log.FromCtx(ctx)

	if _, err := os.Stat(idx.root); err != nil {
		logger.Debug().Str("root", idx.root).Msg("export directory not found, skipping history search")
		return nil
	}

	needle := strings.ToLower(query)

	var results []core.ExportedMessage
	err := filepath.WalkDir(idx.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("failed to walk export directory")
			return nil
		}
		if d.IsDir() || !exportFileRe.MatchString(d.Name()) {
			return nil
		}

		matches, err := searchFile(path, needle)
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("failed to parse export file")
			return nil
		}
		results = append(results, matches...)
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Str("root", idx.root).Msg("export directory walk failed")
	}

	sort.SliceStable(results, func(i, j int) bool {
		return numericID(results[i].MessageID) < numericID(results[j].MessageID)
	})

	logger.Debug().Int("count", len(results)).Str("query", query).Msg("searched exported history")
	return results
}

func searchFile(path, needle string) ([]core.ExportedMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	root, err := html.Parse(f)
	if err != nil {
		return nil, err
	}

	var matches []core.ExportedMessage

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" {
			if m := messageIDRe.FindStringSubmatch(attr(n, "id")); m != nil {
				if msg, ok := extractMessage(n, path, m[1], needle); ok {
					matches = append(matches, msg)
				}
				// Message blocks do not nest.
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return matches, nil
}

// extractMessage pulls the searchable fields out of a single message block.
// Blocks without a text div are not searchable and never match.
func extractMessage(block *html.Node, path, id, needle string) (core.ExportedMessage, bool) {
	textDiv := findDivWithClass(block, "text")
	if textDiv == nil {
		return core.ExportedMessage{}, false
	}

	text := strings.TrimSpace(textContent(textDiv))
	if !strings.Contains(strings.ToLower(text), needle) {
		return core.ExportedMessage{}, false
	}

	msg := core.ExportedMessage{
		MessageID: id,
		Text:      text,
		FilePath:  path,
	}

	if dateDiv := findDivWithClasses(block, "pull_right", "date", "details"); dateDiv != nil {
		msg.Date = attr(dateDiv, "title")
	}
	if fromDiv := findDivWithClass(block, "from_name"); fromDiv != nil {
		msg.From = strings.TrimSpace(textContent(fromDiv))
	}
	msg.TwitterLinks = twitterLinks(textDiv)

	return msg, true
}

// twitterLinks collects hrefs under n that point at the tracked social
// media domain.
func twitterLinks(n *html.Node) []string {
	var links []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			href := attr(n, "href")
			if strings.Contains(href, "twitter.com") || strings.Contains(href, "x.com") {
				links = append(links, href)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return links
}

func findDivWithClass(root *html.Node, class string) *html.Node {
	return findDivWithClasses(root, class)
}

func findDivWithClasses(root *html.Node, classes ...string) *html.Node {
	var found *html.Node

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "div" && hasClasses(n, classes...) {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for c := root.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return found
}

func hasClasses(n *html.Node, classes ...string) bool {
	have := strings.Fields(attr(n, "class"))
	for _, want := range classes {
		ok := false
		for _, c := range have {
			if c == want {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return sb.String()
}

func numericID(id string) int64 {
	v, _ := strconv.ParseInt(id, 10, 64)
	return v
}
