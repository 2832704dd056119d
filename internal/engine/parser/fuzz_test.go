package parser

import (
	"bagrules/internal/core/errors"
	"testing"
)

func FuzzParse(f *testing.F) {
	f.Add(exampleRules)
	f.Add("shiny gold bags contain 2 dark red bags.\ndark red bags contain no other bags.")
	f.Add("bags contain")
	f.Add("x bags contain 1 y bag, 2 z bags.")
	f.Fuzz(func(t *testing.T, text string) {
		g, err := Parse(text, nil)
		if err != nil {
			if g != nil {
				t.Fatalf("partial graph returned alongside error %v", err)
			}
			code := errors.CodeOf(err)
			if code != errors.CodeParse && code != errors.CodeDuplicate && code != errors.CodeInternal {
				t.Fatalf("unexpected error code %s: %v", code, err)
			}
			return
		}
		if g.Len() > g.Table().Len() {
			t.Fatalf("more definitions (%d) than interned names (%d)", g.Len(), g.Table().Len())
		}
	})
}
