package question

import (
	"encoding/json"
	"testing"
)

func TestCorrectIndex(t *testing.T) {
	cases := []struct {
		designator string
		want       int
	}{
		{"A", 0},
		{"a", 0},
		{"B", 1},
		{"b", 1},
		{"C", 2},
		{"D", 3},
		{" d ", 3},
		{"Z", 0},  // unrecognized falls back to the first option
		{"", 0},
		{"AB", 0},
	}
	for _, tc := range cases {
		q := Question{Correct: tc.designator}
		if got := q.CorrectIndex(); got != tc.want {
			t.Errorf("CorrectIndex(%q) = %d, want %d", tc.designator, got, tc.want)
		}
	}
}

func TestOptionsSubstitutesBlanks(t *testing.T) {
	q := Question{
		OptionA: "  Ahmedabad ",
		OptionB: "Gandhinagar",
		OptionC: "   ",
		OptionD: "",
	}
	got := q.Options()
	want := []string{"Ahmedabad", "Gandhinagar", "Option C", "Option D"}
	if len(got) != len(want) {
		t.Fatalf("Options() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Options()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIDUnmarshalAcceptsStringAndNumber(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`{"id": 42}`, "42"},
		{`{"id": "q-17"}`, "q-17"},
		{`{"id": "q\"1"}`, `q"1`},
		{`{"id": null}`, ""},
	}
	for _, tc := range cases {
		var q Question
		if err := json.Unmarshal([]byte(tc.raw), &q); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.raw, err)
		}
		if q.ID.String() != tc.want {
			t.Errorf("id from %s = %q, want %q", tc.raw, q.ID.String(), tc.want)
		}
	}
}
