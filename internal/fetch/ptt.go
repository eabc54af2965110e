package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/mkuo/stockpulse/internal/model"
	"github.com/mkuo/stockpulse/internal/sentiment"
	"github.com/mkuo/stockpulse/internal/worker"
)

const pttBaseURL = "https://www.ptt.cc"

// pttDateLayout matches the forum's article timestamp,
// e.g. "Thu Aug 21 12:34:56 2025"
const pttDateLayout = "Mon Jan 2 15:04:05 2006"

var (
	ansiEscapeRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	blankRunsRE  = regexp.MustCompile(`\n{3,}`)
)

// PTT scrapes a board of the PTT web frontend: list pages walked
// backwards from the newest, article pages fetched concurrently.
type PTT struct {
	client  *Client
	board   string
	pages   int
	workers int
}

// NewPTT creates a scraper for the given board
func NewPTT(client *Client, board string, pages, workers int) *PTT {
	if pages <= 0 {
		pages = 1
	}
	if workers <= 0 {
		workers = 1
	}
	return &PTT{client: client, board: board, pages: pages, workers: workers}
}

func (p *PTT) Name() string { return string(model.SourcePTT) }

// Fetch walks list pages, then pulls every article on the worker pool.
// Articles that fail to fetch or parse are skipped, not fatal.
func (p *PTT) Fetch(ctx context.Context) ([]model.Post, error) {
	pageURL := fmt.Sprintf("%s/bbs/%s/index.html", pttBaseURL, p.board)

	var entries []pttListEntry
	for i := 0; i < p.pages && pageURL != ""; i++ {
		body, err := p.client.Get(ctx, pageURL, overAgeCookie())
		if err != nil {
			if i == 0 {
				return nil, fmt.Errorf("board %s: %w", p.board, err)
			}
			break
		}
		page, prevURL, err := parsePTTList(body)
		if err != nil {
			return nil, fmt.Errorf("parse list %s: %w", pageURL, err)
		}
		entries = append(entries, page...)
		pageURL = prevURL
	}

	pool := worker.NewPool(p.workers)
	pool.Start()
	go func() {
		for i, e := range entries {
			pool.Submit(&pttArticleJob{client: p.client, board: p.board, entry: e, index: i})
		}
		pool.Close()
	}()
	results := pool.Wait()

	fetched := make([]*pttArticleResult, 0, len(results))
	for _, r := range results {
		ar := r.(*pttArticleResult)
		if ar.err != nil {
			continue
		}
		fetched = append(fetched, ar)
	}
	// pool results arrive in completion order, restore list order
	sort.Slice(fetched, func(i, j int) bool { return fetched[i].index < fetched[j].index })

	posts := make([]model.Post, 0, len(fetched))
	for _, ar := range fetched {
		posts = append(posts, ar.post)
	}
	return posts, nil
}

// overAgeCookie passes the forum's age gate
func overAgeCookie() *http.Cookie {
	return &http.Cookie{Name: "over18", Value: "1"}
}

type pttListEntry struct {
	Title string
	URL   string
}

type pttArticleJob struct {
	client *Client
	board  string
	entry  pttListEntry
	index  int
}

type pttArticleResult struct {
	post  model.Post
	index int
	err   error
}

func (r *pttArticleResult) GetError() error { return r.err }

func (j *pttArticleJob) Execute(ctx context.Context) worker.Result {
	body, err := j.client.Get(ctx, j.entry.URL, overAgeCookie())
	if err != nil {
		return &pttArticleResult{index: j.index, err: err}
	}

	post, err := parsePTTArticle(body)
	if err != nil {
		return &pttArticleResult{index: j.index, err: fmt.Errorf("parse %s: %w", j.entry.URL, err)}
	}

	post.Title = j.entry.Title
	post.URL = j.entry.URL
	post.Source = model.SourcePTT
	post.Board = j.board
	return &pttArticleResult{post: post, index: j.index}
}

// parsePTTList extracts article entries and the previous-page URL from
// a board index page. Deleted articles have no link and are skipped.
func parsePTTList(body []byte) ([]pttListEntry, string, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, "", fmt.Errorf("parse html: %w", err)
	}

	var entries []pttListEntry
	for _, rent := range findAll(doc, func(n *html.Node) bool {
		return isElem(n, "div") && hasClass(n, "r-ent")
	}) {
		titleDiv := findFirst(rent, func(n *html.Node) bool {
			return isElem(n, "div") && hasClass(n, "title")
		})
		if titleDiv == nil {
			continue
		}
		link := findFirst(titleDiv, func(n *html.Node) bool { return isElem(n, "a") })
		if link == nil {
			continue
		}
		entries = append(entries, pttListEntry{
			Title: strings.TrimSpace(nodeText(link, nil)),
			URL:   pttBaseURL + attrVal(link, "href"),
		})
	}

	prevURL := ""
	paging := findFirst(doc, func(n *html.Node) bool {
		return isElem(n, "div") && hasClass(n, "btn-group-paging")
	})
	if paging != nil {
		for _, a := range findAll(paging, func(n *html.Node) bool { return isElem(n, "a") }) {
			if strings.Contains(nodeText(a, nil), "上頁") {
				if href := attrVal(a, "href"); href != "" {
					prevURL = pttBaseURL + href
				}
				break
			}
		}
	}
	return entries, prevURL, nil
}

// parsePTTArticle extracts author, timestamp, body text, comments and
// the derived reaction tallies from an article page. The caller fills
// Title, URL, Source and Board from the list entry.
func parsePTTArticle(body []byte) (model.Post, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return model.Post{}, fmt.Errorf("parse html: %w", err)
	}

	main := findFirst(doc, func(n *html.Node) bool {
		return isElem(n, "div") && attrVal(n, "id") == "main-content"
	})
	if main == nil {
		return model.Post{}, fmt.Errorf("no main-content div")
	}

	excluded := make(map[*html.Node]bool)
	meta := make(map[string]string)

	for _, ml := range findAll(main, func(n *html.Node) bool {
		return isElem(n, "div") && (hasClass(n, "article-metaline") || hasClass(n, "article-metaline-right"))
	}) {
		excluded[ml] = true
		tag := findFirst(ml, func(n *html.Node) bool {
			return isElem(n, "span") && hasClass(n, "article-meta-tag")
		})
		val := findFirst(ml, func(n *html.Node) bool {
			return isElem(n, "span") && hasClass(n, "article-meta-value")
		})
		if tag != nil && val != nil {
			meta[strings.TrimSpace(nodeText(tag, nil))] = strings.TrimSpace(nodeText(val, nil))
		}
	}

	var comments []model.Comment
	for _, push := range findAll(main, func(n *html.Node) bool {
		return isElem(n, "div") && hasClass(n, "push")
	}) {
		excluded[push] = true
		tag := findFirst(push, func(n *html.Node) bool {
			return isElem(n, "span") && hasClass(n, "push-tag")
		})
		user := findFirst(push, func(n *html.Node) bool {
			return isElem(n, "span") && hasClass(n, "push-userid")
		})
		content := findFirst(push, func(n *html.Node) bool {
			return isElem(n, "span") && hasClass(n, "push-content")
		})
		if tag == nil || user == nil || content == nil {
			continue
		}
		comments = append(comments, model.Comment{
			Tag:  strings.TrimSpace(nodeText(tag, nil)),
			User: strings.TrimSpace(nodeText(user, nil)),
			Body: strings.TrimSpace(strings.TrimLeft(nodeText(content, nil), ": ")),
		})
	}

	// trailing f2 spans hold the site's URL footer
	for _, f2 := range findAll(main, func(n *html.Node) bool {
		return isElem(n, "span") && hasClass(n, "f2")
	}) {
		excluded[f2] = true
	}

	text := nodeText(main, excluded)
	text = ansiEscapeRE.ReplaceAllString(text, "")
	text = blankRunsRE.ReplaceAllString(text, "\n\n")
	// drop the signature block
	if idx := strings.Index(text, "\n--\n"); idx >= 0 {
		text = text[:idx]
	}

	post := model.Post{
		Author:   meta["作者"],
		Body:     strings.TrimSpace(text),
		Comments: comments,
	}
	if ts, err := time.Parse(pttDateLayout, meta["時間"]); err == nil {
		post.Timestamp = ts
	}
	post.Reactions.Push, post.Reactions.Boo, post.Reactions.Arrow = sentiment.TallyComments(comments)
	return post, nil
}
