package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/net/html"

	"github.com/shieldsna/shield/pkg/shield/logging"
)

const searchURL = "https://www.reddit.com/r/%s/search.json"

// listing mirrors the subset of Reddit's search response the collector uses.
type listing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
		After string `json:"after"`
	} `json:"data"`
}

type redditPost struct {
	ID         string  `json:"id"`
	Author     string  `json:"author"`
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	CreatedUTC float64 `json:"created_utc"`
	Subreddit  string  `json:"subreddit"`
	LinkID     string  `json:"link_id"` // "t3_<id>" on comments, empty on submissions
}

func main() {
	var (
		subs   = flag.String("subreddits", "news+worldnews+conspiracy", "Subreddits to search, joined with +")
		query  = flag.String("query", "hoax", "Search query")
		limit  = flag.Int("limit", 100, "Maximum posts to fetch")
		output = flag.String("output", "testdata/reddit/posts.csv", "Output CSV path")
	)
	flag.Parse()

	log := logging.New()

	// Optional .env carries REDDIT_USER_AGENT; Reddit rejects default Go UAs.
	_ = godotenv.Load()
	userAgent := os.Getenv("REDDIT_USER_AGENT")
	if userAgent == "" {
		userAgent = "shield-collector/0.1"
	}

	log.WithFields(logging.Fields{
		"subreddits": *subs,
		"query":      *query,
		"limit":      *limit,
	}).Info("fetching posts")

	posts, err := fetch(*subs, *query, *limit, userAgent)
	if err != nil {
		log.WithError(err).Fatal("fetch")
	}

	if err := os.MkdirAll(filepath.Dir(*output), 0o755); err != nil {
		log.WithError(err).Fatal("create output directory")
	}
	if err := writeCSV(*output, posts); err != nil {
		log.WithError(err).Fatal("write output")
	}
	log.WithFields(logging.Fields{"posts": len(posts), "path": *output}).Info("done")
}

func fetch(subs, query string, limit int, userAgent string) ([]redditPost, error) {
	client := &http.Client{Timeout: 15 * time.Second}

	var posts []redditPost
	after := ""
	for len(posts) < limit {
		page := limit - len(posts)
		if page > 100 {
			page = 100
		}

		params := url.Values{}
		params.Set("q", query)
		params.Set("restrict_sr", "1")
		params.Set("limit", strconv.Itoa(page))
		if after != "" {
			params.Set("after", after)
		}

		req, err := http.NewRequest(http.MethodGet,
			fmt.Sprintf(searchURL, subs)+"?"+params.Encode(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("reddit: status %d", resp.StatusCode)
		}

		var lst listing
		err = json.NewDecoder(resp.Body).Decode(&lst)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		if len(lst.Data.Children) == 0 {
			break
		}
		for _, child := range lst.Data.Children {
			posts = append(posts, child.Data)
		}
		after = lst.Data.After
		if after == "" {
			break
		}
	}
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func writeCSV(path string, posts []redditPost) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"id", "author", "linked_submission_id", "created_utc", "subreddit", "clean_title", "content"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, p := range posts {
		row := []string{
			p.ID,
			p.Author,
			strings.TrimPrefix(p.LinkID, "t3_"),
			strconv.FormatInt(int64(p.CreatedUTC), 10),
			p.Subreddit,
			stripHTML(p.Title),
			stripHTML(p.Selftext),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// stripHTML removes markup from Reddit's HTML-encoded text fields.
func stripHTML(text string) string {
	if text == "" {
		return ""
	}
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return text
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.Join(strings.Fields(b.String()), " ")
}
