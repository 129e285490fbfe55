// Package dataset loads post tables from CSV into typed records, validating
// rows once at the ingestion boundary.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shieldsna/shield/pkg/shield/internalerr"
	"github.com/shieldsna/shield/pkg/shield/post"
)

// Columns the loader understands. The label and text columns are optional;
// everything else is required in the header.
const (
	colID        = "id"
	colAuthor    = "author"
	colLinked    = "linked_submission_id"
	colCreated   = "created_utc"
	colSubreddit = "subreddit"
	colTitle     = "clean_title"
	colContent   = "content"
	colLabel     = "2_way_label"
)

var requiredColumns = []string{colID, colAuthor, colLinked, colCreated, colSubreddit}

// Result is a loaded batch plus the count of rows excluded for row-level
// malformation (bad timestamp, missing id or author).
type Result struct {
	Posts    []post.Post
	Excluded int
}

// LoadCSV reads a post table from path.
func LoadCSV(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a post table from r. A missing required column fails the
// whole load with ErrMissingColumn and no partial output; a malformed row
// only excludes that row.
func Read(r io.Reader) (*Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("column %q: %w", name, internalerr.ErrMissingColumn)
		}
	}
	if _, hasTitle := cols[colTitle]; !hasTitle {
		if _, hasContent := cols[colContent]; !hasContent {
			return nil, fmt.Errorf("column %q or %q: %w", colTitle, colContent, internalerr.ErrMissingColumn)
		}
	}

	res := &Result{}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Excluded++
			continue
		}

		p, ok := parseRow(record, cols)
		if !ok {
			res.Excluded++
			continue
		}
		res.Posts = append(res.Posts, p)
	}
	return res, nil
}

func parseRow(record []string, cols map[string]int) (post.Post, bool) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	p := post.Post{
		ID:        field(colID),
		Author:    field(colAuthor),
		LinkedID:  field(colLinked),
		Subreddit: field(colSubreddit),
		Title:     field(colTitle),
		Body:      field(colContent),
	}
	if p.ID == "" || p.Author == "" {
		return post.Post{}, false
	}

	created := field(colCreated)
	// Timestamps arrive as epoch seconds, occasionally with a fractional
	// part from upstream exports.
	secs, err := strconv.ParseFloat(created, 64)
	if err != nil {
		return post.Post{}, false
	}
	p.CreatedUTC = int64(secs)

	if raw := field(colLabel); raw != "" {
		label, err := strconv.Atoi(raw)
		if err != nil || (label != post.LabelReal && label != post.LabelHoax) {
			return post.Post{}, false
		}
		p.Label = label
		p.HasLabel = true
	}
	return p, true
}
