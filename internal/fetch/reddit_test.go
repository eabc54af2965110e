package fetch

import (
	"testing"

	"github.com/mkuo/stockpulse/internal/model"
)

const redditListingFixture = `{
  "kind": "Listing",
  "data": {
    "children": [
      {
        "kind": "t3",
        "data": {
          "title": "Daily Discussion Thread",
          "permalink": "/r/wallstreetbets/comments/aaa/daily/",
          "author": "AutoModerator",
          "selftext": "",
          "score": 50,
          "upvote_ratio": 0.9,
          "created_utc": 1755700000,
          "stickied": true
        }
      },
      {
        "kind": "t3",
        "data": {
          "title": "NVDA to the moon",
          "permalink": "/r/wallstreetbets/comments/bbb/nvda/",
          "author": "yolo_trader",
          "selftext": "calls printing, diamond hands",
          "score": 1200,
          "upvote_ratio": 0.93,
          "created_utc": 1755700100,
          "stickied": false
        }
      }
    ]
  }
}`

func TestParseRedditListing(t *testing.T) {
	posts, err := parseRedditListing([]byte(redditListingFixture), "wallstreetbets")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(posts) != 1 {
		t.Fatalf("expected 1 post (stickied skipped), got %d", len(posts))
	}
	p := posts[0]
	if p.Title != "NVDA to the moon" {
		t.Errorf("title = %q", p.Title)
	}
	if p.URL != "https://www.reddit.com/r/wallstreetbets/comments/bbb/nvda/" {
		t.Errorf("url = %q", p.URL)
	}
	if p.Source != model.SourceReddit || p.Board != "wallstreetbets" {
		t.Errorf("source/board = %s/%s", p.Source, p.Board)
	}
	if p.Reactions.Score != 1200 || p.Reactions.UpvoteRatio != 0.93 {
		t.Errorf("reactions = %+v", p.Reactions)
	}
	if p.Timestamp.Unix() != 1755700100 {
		t.Errorf("timestamp = %v", p.Timestamp)
	}
}

const redditCommentsFixture = `[
  {"kind": "Listing", "data": {"children": [{"kind": "t3", "data": {"title": "NVDA to the moon"}}]}},
  {"kind": "Listing", "data": {"children": [
    {"kind": "t1", "data": {"author": "bear_gang", "body": "puts on open", "score": -3}},
    {"kind": "t1", "data": {"author": "[deleted]", "body": "[removed]", "score": 1}},
    {"kind": "t1", "data": {"author": "quant_guy", "body": "IV is insane", "score": 42}},
    {"kind": "more", "data": {"body": ""}}
  ]}}
]`

func TestParseRedditComments(t *testing.T) {
	comments, err := parseRedditComments([]byte(redditCommentsFixture))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(comments) != 2 {
		t.Fatalf("expected 2 comments (removed and 'more' skipped), got %d", len(comments))
	}
	if comments[0].User != "bear_gang" || comments[0].Score != -3 {
		t.Errorf("comment 0 = %+v", comments[0])
	}
	if comments[1].Body != "IV is insane" || comments[1].Score != 42 {
		t.Errorf("comment 1 = %+v", comments[1])
	}
}

func TestParseRedditListing_Malformed(t *testing.T) {
	if _, err := parseRedditListing([]byte("<html>rate limited</html>"), "stocks"); err == nil {
		t.Error("expected error for non-JSON body")
	}
}
