package post

import (
	"testing"
	"time"
)

func TestText(t *testing.T) {
	p := Post{Title: "headline", Body: "details"}
	if got := p.Text(); got != "headline details" {
		t.Errorf("Text() = %q", got)
	}
	if got := (Post{Title: "headline"}).Text(); got != "headline" {
		t.Errorf("title-only Text() = %q", got)
	}
	if got := (Post{Body: "details"}).Text(); got != "details" {
		t.Errorf("body-only Text() = %q", got)
	}
}

func TestMonthIsUTC(t *testing.T) {
	// 2023-01-31 23:30 UTC stays in January regardless of local zone.
	p := Post{CreatedUTC: time.Date(2023, 1, 31, 23, 30, 0, 0, time.UTC).Unix()}
	if got := p.Month(); got != "2023-01" {
		t.Errorf("Month() = %q, want 2023-01", got)
	}
}

func TestIsHoax(t *testing.T) {
	if (Post{Label: LabelHoax}).IsHoax() {
		t.Error("label without HasLabel should not count as hoax")
	}
	if !(Post{Label: LabelHoax, HasLabel: true}).IsHoax() {
		t.Error("labeled hoax post should report IsHoax")
	}
	if (Post{Label: LabelReal, HasLabel: true}).IsHoax() {
		t.Error("real post should not report IsHoax")
	}
}

func TestValid(t *testing.T) {
	if !(Post{ID: "p1", Author: "u1"}).Valid() {
		t.Error("post with id and author should be valid")
	}
	if (Post{ID: "p1"}).Valid() || (Post{Author: "u1"}).Valid() {
		t.Error("missing id or author should be invalid")
	}
	if (Post{ID: "  ", Author: "u1"}).Valid() {
		t.Error("whitespace id should be invalid")
	}
}
