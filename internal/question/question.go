package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Question is one multiple-choice record as served by the question feed.
// It is read-only for this system: fetched, formatted, sent, discarded.
type Question struct {
	ID          ID     `json:"id"`
	Text        string `json:"question"`
	OptionA     string `json:"option_a"`
	OptionB     string `json:"option_b"`
	OptionC     string `json:"option_c"`
	OptionD     string `json:"option_d"`
	Correct     string `json:"correct"`
	Explanation string `json:"explanation"`
}

// ID is an opaque identifier, used only for logging. The feed is not
// consistent about its type (numeric vs string), so accept both.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		return json.Unmarshal(b, (*string)(id))
	}
	*id = ID(b)
	return nil
}

func (id ID) String() string { return string(id) }

// Options returns the four answer choices in A..D order, trimmed.
// Blank entries are substituted with a generic placeholder so a poll
// always carries four selectable options.
func (q *Question) Options() []string {
	raw := []string{q.OptionA, q.OptionB, q.OptionC, q.OptionD}
	out := make([]string, len(raw))
	for i, opt := range raw {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			opt = fmt.Sprintf("Option %c", 'A'+i)
		}
		out[i] = opt
	}
	return out
}

// CorrectIndex maps the correct-answer designator to an option index.
// The designator is case-insensitive A-D; anything unrecognized falls
// back to index 0. That fallback can mask bad rows in the feed, but it
// is the feed's documented contract, so it is kept rather than treated
// as an error.
func (q *Question) CorrectIndex() int {
	switch strings.ToUpper(strings.TrimSpace(q.Correct)) {
	case "A":
		return 0
	case "B":
		return 1
	case "C":
		return 2
	case "D":
		return 3
	default:
		return 0
	}
}
