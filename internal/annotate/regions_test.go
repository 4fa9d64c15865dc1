package annotate

import (
	"errors"
	"reflect"
	"testing"
)

func tokensFrom(t *testing.T, lines ...string) []Token {
	t.Helper()
	out := make([]Token, len(lines))
	for i, line := range lines {
		out[i] = NewToken(line, i, DefaultPrefix)
	}
	return out
}

func TestValidateRegionsReturnsInputUnchanged(t *testing.T) {
	cases := [][]string{
		{"//@@ Doc"},
		{"//@@ Doc", "//@{", "//@}"},
		{"//@@ Doc", "//@{", "//@}", "//@ text", "//@{", "//@}"},
		{"//@@ A", "//@{", "//@@ B", "//@}"},
	}
	for _, lines := range cases {
		tokens := tokensFrom(t, lines...)
		got, err := ValidateRegions(tokens)
		if err != nil {
			t.Fatalf("ValidateRegions(%v): %v", lines, err)
		}
		if !reflect.DeepEqual(got, tokens) {
			t.Fatalf("expected identity result for %v", lines)
		}
	}
}

func TestValidateRegionsFailures(t *testing.T) {
	cases := []struct {
		name  string
		lines []string
		kind  error
		line  int
	}{
		{
			name:  "closer before opener",
			lines: []string{"//@@ Doc", "//@}", "//@{"},
			kind:  ErrUnmatchedCloser,
			line:  2,
		},
		{
			name:  "second opener",
			lines: []string{"//@@ Doc", "//@{", "//@ text", "//@{", "//@}", "//@}"},
			kind:  ErrUnclosedRegion,
			line:  4,
		},
		{
			name:  "extra closer",
			lines: []string{"//@@ Doc", "//@{", "//@}", "//@}"},
			kind:  ErrUnmatchedCloser,
			line:  4,
		},
		{
			name:  "dangling opener blames first token",
			lines: []string{"//@@ Doc", "//@ text", "//@{", "//@ more"},
			kind:  ErrUnclosedRegion,
			line:  1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateRegions(tokensFrom(t, tc.lines...))
			if !errors.Is(err, tc.kind) {
				t.Fatalf("expected %v, got %v", tc.kind, err)
			}
			if got := LineOf(err); got != tc.line {
				t.Fatalf("expected line %d, got %d", tc.line, got)
			}
		})
	}
}

func TestValidateRegionsEmpty(t *testing.T) {
	got, err := ValidateRegions(nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty success, got %v %v", got, err)
	}
}
