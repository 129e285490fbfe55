package textnorm

import (
	"reflect"
	"testing"

	"github.com/shieldsna/shield/pkg/shield/stopwords"
)

func TestNormalizeLowercases(t *testing.T) {
	if got := Normalize("Breaking NEWS"); got != "breaking news" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeStripsURLs(t *testing.T) {
	cases := map[string]string{
		"read this https://example.com/a?b=c now": "read this now",
		"see http://foo.bar":                      "see",
		"at www.example.org/path today":           "at today",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeStripsMentionsAndHashtags(t *testing.T) {
	if got := Normalize("thanks @user for #hoax coverage"); got != "thanks for coverage" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeStripsPunctuation(t *testing.T) {
	if got := Normalize("wait... what?! (really)"); got != "wait what really" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	if got := Normalize("  a \t b \n\n c  "); got != "a b c" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Plain text",
		"Visit https://example.com NOW!!!",
		"@a #b c... d   e",
		"can't won't don't",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestTokenizeFiltersStopwords(t *testing.T) {
	tok := NewTokenizer([]string{"the", "a", "is"})
	got := tok.Tokenize("The bomb threat is a HOAX!")
	want := []string{"bomb", "threat", "hoax"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTokenizeFiltersContractions(t *testing.T) {
	// Normalize strips the apostrophe before filtering, so the stopword
	// entry "don't" must catch the token "dont".
	tok := NewTokenizer(stopwords.English())
	got := tok.Tokenize("don't panic, it isn't real")
	want := []string{"panic", "real"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	tok := NewTokenizer(nil)
	if got := tok.Tokenize("   "); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestAddStopword(t *testing.T) {
	tok := NewTokenizer(nil)
	tok.AddStopword("Noise")
	got := tok.Tokenize("signal noise")
	want := []string{"signal"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
