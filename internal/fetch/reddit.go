package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mkuo/stockpulse/internal/model"
)

const redditBaseURL = "https://www.reddit.com"

// Reddit pulls the hot listing of one or more subreddits through the
// public JSON API. Comments are fetched per post only when asked for,
// it roughly doubles the request count.
type Reddit struct {
	client        *Client
	subreddits    []string
	limit         int
	fetchComments bool
}

// NewReddit creates a scraper for the given subreddits. Limit is
// clamped to the API maximum of 100 posts per subreddit.
func NewReddit(client *Client, subreddits []string, limit int, fetchComments bool) *Reddit {
	if limit <= 0 {
		limit = 25
	}
	if limit > 100 {
		limit = 100
	}
	return &Reddit{client: client, subreddits: subreddits, limit: limit, fetchComments: fetchComments}
}

func (r *Reddit) Name() string { return string(model.SourceReddit) }

// Fetch pulls all configured subreddits in order. One failing
// subreddit does not abort the rest; the error is returned only when
// every subreddit failed.
func (r *Reddit) Fetch(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	var firstErr error
	failed := 0

	for _, sub := range r.subreddits {
		batch, err := r.fetchSubreddit(ctx, sub)
		if err != nil {
			failed++
			if firstErr == nil {
				firstErr = fmt.Errorf("r/%s: %w", sub, err)
			}
			continue
		}
		posts = append(posts, batch...)
	}

	if failed == len(r.subreddits) && firstErr != nil {
		return nil, firstErr
	}
	return posts, nil
}

func (r *Reddit) fetchSubreddit(ctx context.Context, subreddit string) ([]model.Post, error) {
	url := fmt.Sprintf("%s/r/%s/hot.json?limit=%d&raw_json=1", redditBaseURL, subreddit, r.limit)
	body, err := r.client.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	posts, err := parseRedditListing(body, subreddit)
	if err != nil {
		return nil, err
	}

	if r.fetchComments {
		for i := range posts {
			comments, err := r.fetchPostComments(ctx, posts[i].URL)
			if err != nil {
				continue
			}
			posts[i].Comments = comments
		}
	}
	return posts, nil
}

func (r *Reddit) fetchPostComments(ctx context.Context, postURL string) ([]model.Comment, error) {
	url := strings.TrimRight(postURL, "/") + ".json?limit=50&raw_json=1"
	body, err := r.client.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return parseRedditComments(body)
}

type redditListing struct {
	Data struct {
		Children []struct {
			Kind string `json:"kind"`
			Data struct {
				Title       string  `json:"title"`
				Permalink   string  `json:"permalink"`
				Author      string  `json:"author"`
				Selftext    string  `json:"selftext"`
				Score       int     `json:"score"`
				UpvoteRatio float64 `json:"upvote_ratio"`
				CreatedUTC  float64 `json:"created_utc"`
				Stickied    bool    `json:"stickied"`
				Body        string  `json:"body"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func parseRedditListing(body []byte, subreddit string) ([]model.Post, error) {
	var listing redditListing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}

	posts := make([]model.Post, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		d := child.Data
		if d.Stickied {
			continue
		}
		posts = append(posts, model.Post{
			Title:     d.Title,
			Body:      d.Selftext,
			URL:       redditBaseURL + d.Permalink,
			Author:    d.Author,
			Source:    model.SourceReddit,
			Board:     subreddit,
			Timestamp: time.Unix(int64(d.CreatedUTC), 0).UTC(),
			Reactions: model.Reactions{
				Score:       d.Score,
				UpvoteRatio: d.UpvoteRatio,
			},
		})
	}
	return posts, nil
}

// parseRedditComments reads the second listing of a post's .json view.
// Deleted and removed comments are dropped.
func parseRedditComments(body []byte) ([]model.Comment, error) {
	var listings []redditListing
	if err := json.Unmarshal(body, &listings); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}
	if len(listings) < 2 {
		return nil, nil
	}

	var comments []model.Comment
	for _, child := range listings[1].Data.Children {
		if child.Kind != "t1" {
			continue
		}
		d := child.Data
		if d.Body == "" || d.Body == "[deleted]" || d.Body == "[removed]" {
			continue
		}
		comments = append(comments, model.Comment{
			User:  d.Author,
			Body:  d.Body,
			Score: d.Score,
		})
	}
	return comments, nil
}
