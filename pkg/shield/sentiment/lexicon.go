package sentiment

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Lexicon maps lower-cased words to valence scores, roughly on the VADER
// [-4, 4] scale. Positive values indicate positive sentiment.
type Lexicon map[string]float64

// DefaultLexicon returns the built-in valence lexicon. It is a compact
// list tuned for news/social-post vocabulary rather than a full VADER
// import; LoadLexicon can extend or override it from a word-list file.
func DefaultLexicon() Lexicon {
	return Lexicon{
		// positive
		"good": 1.9, "great": 3.1, "excellent": 2.7, "amazing": 2.8,
		"awesome": 3.1, "love": 3.2, "loved": 2.9, "best": 3.2,
		"better": 1.9, "happy": 2.7, "joy": 2.8, "wonderful": 2.7,
		"win": 2.8, "won": 2.7, "success": 2.7, "successful": 2.8,
		"safe": 1.9, "safety": 1.8, "peace": 2.5, "peaceful": 2.4,
		"hope": 1.9, "hopeful": 2.3, "true": 1.8, "truth": 1.6,
		"help": 1.7, "helped": 1.8, "support": 1.7, "trust": 2.1,
		"calm": 1.3, "relief": 1.9, "rescue": 1.6, "rescued": 1.9,
		"celebrate": 2.7, "praise": 2.4, "thanks": 1.9, "thank": 1.9,
		"free": 1.7, "heal": 2.0, "recover": 1.6, "recovered": 1.8,
		"confirmed": 1.1, "verified": 1.5, "genuine": 1.7, "real": 1.2,
		// negative
		"bad": -2.5, "worse": -2.1, "worst": -3.1, "terrible": -2.1,
		"horrible": -2.5, "awful": -2.0, "hate": -2.7, "hated": -2.6,
		"fear": -2.2, "afraid": -2.0, "scared": -2.2, "scary": -2.2,
		"panic": -2.4, "threat": -2.4, "threats": -2.3, "danger": -2.4,
		"dangerous": -2.3, "kill": -3.4, "killed": -3.2, "killing": -3.2,
		"death": -2.9, "dead": -3.0, "die": -2.9, "died": -2.7,
		"bomb": -3.0, "bombing": -3.1, "attack": -2.4, "attacked": -2.5,
		"war": -2.9, "violence": -3.1, "violent": -2.9, "shooting": -3.0,
		"hoax": -1.9, "fake": -2.1, "false": -1.6, "lie": -2.4,
		"lies": -2.3, "lying": -2.4, "fraud": -2.8, "scam": -2.6,
		"misleading": -1.9, "deceive": -2.4, "deception": -2.3,
		"crisis": -2.3, "disaster": -2.7, "emergency": -1.9,
		"alarm": -1.4, "warning": -1.4, "evacuate": -1.8,
		"evacuation": -1.7, "victim": -2.0, "victims": -2.1,
		"injured": -2.2, "hurt": -2.2, "damage": -2.0, "destroyed": -2.7,
		"terror": -3.1, "terrorist": -3.2, "terrorism": -3.2,
		"crime": -2.5, "criminal": -2.4, "arrested": -1.6, "riot": -2.4,
		"angry": -2.3, "anger": -2.2, "outrage": -2.4, "sad": -2.1,
		"tragedy": -3.0, "tragic": -2.9, "wrong": -2.1, "problem": -1.7,
		"failure": -2.3, "failed": -2.0, "lost": -1.3, "loss": -1.9,
	}
}

// boosters scale the valence of the following sentiment word.
var boosters = map[string]float64{
	"very": 0.293, "really": 0.293, "extremely": 0.293, "absolutely": 0.293,
	"completely": 0.293, "totally": 0.293, "highly": 0.293, "so": 0.293,
	"incredibly": 0.293, "utterly": 0.293,
	"slightly": -0.293, "somewhat": -0.293, "barely": -0.293,
	"hardly": -0.293, "kind": -0.293, "sort": -0.293, "marginally": -0.293,
}

// negations flip the valence of a nearby sentiment word.
var negations = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "none": {}, "nobody": {},
	"nothing": {}, "neither": {}, "nor": {}, "cannot": {}, "cant": {},
	"dont": {}, "doesnt": {}, "didnt": {}, "wont": {}, "wouldnt": {},
	"isnt": {}, "arent": {}, "wasnt": {}, "werent": {}, "without": {},
}

// lexiconFile is the YAML word-list format: word -> valence.
type lexiconFile struct {
	Words map[string]float64 `yaml:"words"`
}

// LoadLexicon reads a YAML word list from path and merges it over the
// built-in lexicon. File entries win on conflict.
func LoadLexicon(path string) (Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	var lf lexiconFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	lex := DefaultLexicon()
	for word, valence := range lf.Words {
		lex[word] = valence
	}
	return lex, nil
}
