// Package post defines the typed post record shared by all analysis stages.
package post

import (
	"strings"
	"time"
)

// Label values for the binary ground truth.
const (
	LabelReal = 0
	LabelHoax = 1
)

// Post is one social-media post or comment. Rows are validated once at the
// ingestion boundary; stages downstream treat them as immutable snapshots.
type Post struct {
	ID         string // unique within a batch
	Author     string
	LinkedID   string // id of the submission this post replies to, "" for top-level posts
	Title      string
	Body       string
	CreatedUTC int64 // Unix epoch seconds, UTC
	Subreddit  string
	Label      int // LabelHoax or LabelReal, meaningful only when HasLabel
	HasLabel   bool
}

// Created returns the post timestamp in UTC.
func (p Post) Created() time.Time {
	return time.Unix(p.CreatedUTC, 0).UTC()
}

// Text joins title and body into the text used for classification and
// sentiment scoring.
func (p Post) Text() string {
	if p.Body == "" {
		return p.Title
	}
	if p.Title == "" {
		return p.Body
	}
	return p.Title + " " + p.Body
}

// IsHoax reports whether the post carries the hoax ground-truth label.
func (p Post) IsHoax() bool {
	return p.HasLabel && p.Label == LabelHoax
}

// Month returns the UTC calendar month of the post as "YYYY-MM".
func (p Post) Month() string {
	return p.Created().Format("2006-01")
}

// Valid reports whether the post has the fields every stage requires.
func (p Post) Valid() bool {
	return strings.TrimSpace(p.ID) != "" && strings.TrimSpace(p.Author) != ""
}
