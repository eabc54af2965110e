package model

import "time"

// Source identifies where a post was fetched from
type Source string

const (
	SourcePTT    Source = "ptt"
	SourceReddit Source = "reddit"
)

// Comment is a single reply attached to a post
type Comment struct {
	Tag   string `json:"tag,omitempty"` // PTT: 推 / 噓 / → (empty for Reddit)
	User  string `json:"user,omitempty"`
	Body  string `json:"body"`
	Score int    `json:"score,omitempty"` // Reddit: upvotes - downvotes
}

// Reactions holds the source-specific reaction counters of a post.
// PTT posts carry push/boo/arrow tallies; Reddit posts carry the
// net score and the upvote ratio. Unused fields stay zero.
type Reactions struct {
	Push  int `json:"push,omitempty"`
	Boo   int `json:"boo,omitempty"`
	Arrow int `json:"arrow,omitempty"`

	Score       int     `json:"score,omitempty"`        // upvotes - downvotes
	UpvoteRatio float64 `json:"upvote_ratio,omitempty"` // 0.0–1.0, 0.5 is neutral
}

// Post is one discussion item. Immutable once constructed; produced by
// the fetch layer and owned by the caller for one analysis batch.
type Post struct {
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	URL       string    `json:"url"`
	Author    string    `json:"author,omitempty"`
	Source    Source    `json:"source"`
	Board     string    `json:"board,omitempty"` // PTT board or subreddit
	Timestamp time.Time `json:"timestamp,omitempty"`
	Reactions Reactions `json:"reactions"`
	Comments  []Comment `json:"comments,omitempty"`
}

// FullText returns the searchable text of a post: title, body and all
// comment bodies. Keyword and entity scans operate on this.
func (p *Post) FullText() string {
	n := len(p.Title) + len(p.Body) + 2
	for i := range p.Comments {
		n += len(p.Comments[i].Body) + 1
	}
	buf := make([]byte, 0, n)
	buf = append(buf, p.Title...)
	buf = append(buf, ' ')
	buf = append(buf, p.Body...)
	for i := range p.Comments {
		buf = append(buf, ' ')
		buf = append(buf, p.Comments[i].Body...)
	}
	return string(buf)
}
