package game

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func classes(t *testing.T, candidate, solution string) []Classification {
	t.Helper()
	row, err := Classify(candidate, solution)
	if err != nil {
		t.Fatalf("classify %q vs %q: %v", candidate, solution, err)
	}
	out := make([]Classification, 0, WordLength)
	for i, l := range row {
		if l.Glyph != rune(candidate[i]) {
			t.Fatalf("glyph %d: got %q want %q", i, l.Glyph, candidate[i])
		}
		out = append(out, l.Class)
	}
	return out
}

func TestClassifyScenarios(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		solution  string
		want      []Classification
	}{
		{
			name:      "repeated letter only one in solution",
			candidate: "nouns",
			solution:  "snaps",
			want:      []Classification{Present, Absent, Absent, Absent, Correct},
		},
		{
			name:      "exact match",
			candidate: "snaps",
			solution:  "snaps",
			want:      []Classification{Correct, Correct, Correct, Correct, Correct},
		},
		{
			name:      "no overlap",
			candidate: "abcde",
			solution:  "fghij",
			want:      []Classification{Absent, Absent, Absent, Absent, Absent},
		},
		{
			name:      "two a in candidate one in solution",
			candidate: "aabxy",
			solution:  "crane",
			want:      []Classification{Present, Absent, Absent, Absent, Absent},
		},
		{
			name:      "correct consumes before present",
			candidate: "spoon",
			solution:  "moons",
			want:      []Classification{Present, Absent, Correct, Present, Present},
		},
		{
			name:      "later correct wins over earlier present",
			candidate: "eerie",
			solution:  "crane",
			want:      []Classification{Absent, Absent, Present, Absent, Correct},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classes(t, tt.candidate, tt.solution)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("position %d: got %s want %s (all %v)", i, got[i], tt.want[i], got)
				}
			}
		})
	}
}

func TestClassifyRejectsBadInput(t *testing.T) {
	if _, err := Classify("abcd", "abcde"); !errors.Is(err, ErrLength) {
		t.Fatalf("short candidate: got %v want ErrLength", err)
	}
	if _, err := Classify("abcdef", "abcdef"); !errors.Is(err, ErrLength) {
		t.Fatalf("long words: got %v want ErrLength", err)
	}
	if _, err := Classify("ABCDE", "abcde"); !errors.Is(err, ErrAlphabet) {
		t.Fatalf("uppercase: got %v want ErrAlphabet", err)
	}
}

func TestClassifyTallyBoundAndPurity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	word := func() string {
		// Small alphabet to force repeated letters.
		var b strings.Builder
		for i := 0; i < WordLength; i++ {
			b.WriteByte("abc"[rng.Intn(3)])
		}
		return b.String()
	}
	for n := 0; n < 2000; n++ {
		cand, sol := word(), word()
		first, err := Classify(cand, sol)
		if err != nil {
			t.Fatalf("classify: %v", err)
		}
		second, _ := Classify(cand, sol)
		if first != second {
			t.Fatalf("%q vs %q not deterministic: %v then %v", cand, sol, first, second)
		}

		marked := map[rune]int{}
		for _, l := range first {
			if l.Class == Correct || l.Class == Present {
				marked[l.Glyph]++
			}
		}
		for r, c := range marked {
			if limit := strings.Count(sol, string(r)); c > limit {
				t.Fatalf("%q vs %q: %c marked %d times, solution has %d", cand, sol, r, c, limit)
			}
		}
		if cand == sol && !IsSolved(first) {
			t.Fatalf("%q vs itself not solved: %v", cand, first)
		}
	}
}

func TestIsSolved(t *testing.T) {
	solved, _ := Classify("crane", "crane")
	if !IsSolved(solved) {
		t.Fatalf("identical words should solve")
	}
	near, _ := Classify("crank", "crane")
	if IsSolved(near) {
		t.Fatalf("crank vs crane should not solve")
	}
	if IsSolved(BlankRow()) {
		t.Fatalf("blank row should not solve")
	}
}

func TestBoardRecordOnlyTouchesAddressedRow(t *testing.T) {
	b := NewBoard()
	guesses := []string{"crane", "slate", "moist"}
	for i, g := range guesses {
		before := b.Rows()
		row, _ := Classify(g, "pious")
		if err := b.Record(i+1, row); err != nil {
			t.Fatalf("record %d: %v", i+1, err)
		}
		after := b.Rows()
		for k := range after {
			if k == i {
				if after[k] != row {
					t.Fatalf("row %d not stored", k)
				}
				continue
			}
			if after[k] != before[k] {
				t.Fatalf("record %d changed row %d", i+1, k+1)
			}
		}
	}
	if b.Played() != len(guesses) {
		t.Fatalf("played: got %d want %d", b.Played(), len(guesses))
	}
}

func TestBoardRecordErrors(t *testing.T) {
	b := NewBoard()
	row, _ := Classify("crane", "slate")

	if err := b.Record(7, row); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("record 7: got %v want ErrOutOfRange", err)
	}
	if err := b.Record(0, row); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("record 0: got %v want ErrOutOfRange", err)
	}
	if err := b.Record(2, row); !errors.Is(err, ErrOutOfOrder) {
		t.Fatalf("record 2 first: got %v want ErrOutOfOrder", err)
	}
	if err := b.Record(1, BlankRow()); !errors.Is(err, ErrIncompleteRow) {
		t.Fatalf("blank row: got %v want ErrIncompleteRow", err)
	}
	for i := 1; i <= MaxAttempts; i++ {
		if err := b.Record(i, row); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
	if err := b.Record(7, row); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("record 7 on full board: got %v want ErrOutOfRange", err)
	}
}

func TestNewBoardIsBlank(t *testing.T) {
	rows := NewBoard().Rows()
	if len(rows) != MaxAttempts {
		t.Fatalf("rows: got %d want %d", len(rows), MaxAttempts)
	}
	for i, r := range rows {
		if r != BlankRow() {
			t.Fatalf("row %d not blank: %v", i, r)
		}
		if r.Word() != "     " {
			t.Fatalf("row %d word: got %q", i, r.Word())
		}
	}
}
