package commit

import (
	"reflect"
	"testing"
)

func TestParse_Header(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		wantType Type
		scope    string
		desc     string
		breaking bool
	}{
		{
			name:     "plain feat",
			message:  "feat: add widgets",
			wantType: TypeFeat,
			desc:     "add widgets",
		},
		{
			name:     "scoped fix",
			message:  "fix(parser): handle empty input",
			wantType: TypeFix,
			scope:    "parser",
			desc:     "handle empty input",
		},
		{
			name:     "breaking bang with scope",
			message:  "feat(api)!: remove v1 endpoints",
			wantType: TypeFeat,
			scope:    "api",
			desc:     "remove v1 endpoints",
			breaking: true,
		},
		{
			name:     "breaking bang without scope",
			message:  "refactor!: rename public types",
			wantType: TypeRefactor,
			desc:     "rename public types",
			breaking: true,
		},
		{
			name:     "empty scope treated as none",
			message:  "chore(): tidy",
			wantType: TypeChore,
			desc:     "tidy",
		},
		{
			name:     "description whitespace trimmed",
			message:  "docs:   update readme  ",
			wantType: TypeDocs,
			desc:     "update readme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Parse("abc123", tt.message)
			if !c.Conventional() {
				t.Fatalf("Parse(%q) classified as unconventional", tt.message)
			}
			if c.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", c.Type, tt.wantType)
			}
			if c.Scope != tt.scope {
				t.Errorf("Scope = %q, want %q", c.Scope, tt.scope)
			}
			if c.Description != tt.desc {
				t.Errorf("Description = %q, want %q", c.Description, tt.desc)
			}
			if c.Breaking != tt.breaking {
				t.Errorf("Breaking = %v, want %v", c.Breaking, tt.breaking)
			}
		})
	}
}

func TestParse_Unconventional(t *testing.T) {
	messages := []string{
		"add widgets",                  // no separator
		"feat:no space after colon",    // missing mandatory space
		"feature: not a known type",    // unknown type token
		"Feat: wrong case",             // type tokens are case-sensitive
		"feat(api: unbalanced scope",   // malformed scope
		"Merge branch 'main' into dev", // merge commit
		"",
	}

	for _, msg := range messages {
		c := Parse("abc123", msg)
		if c.Conventional() {
			t.Errorf("Parse(%q) = %+v, want unconventional", msg, c)
		}
		if c.Raw != msg {
			t.Errorf("Raw = %q, want original message preserved", c.Raw)
		}
		if c.Breaking {
			t.Errorf("Parse(%q) marked breaking", msg)
		}
	}
}

func TestParse_BreakingFooter(t *testing.T) {
	t.Run("space form", func(t *testing.T) {
		c := Parse("abc", "fix: patch the hole\n\nBREAKING CHANGE: config file format changed")
		if !c.Breaking {
			t.Fatal("expected breaking")
		}
		if c.BreakingDescription != "config file format changed" {
			t.Errorf("BreakingDescription = %q", c.BreakingDescription)
		}
	})

	t.Run("hyphen form", func(t *testing.T) {
		c := Parse("abc", "fix: patch\n\nBREAKING-CHANGE: removed a flag")
		if !c.Breaking {
			t.Fatal("expected breaking")
		}
		if c.BreakingDescription != "removed a flag" {
			t.Errorf("BreakingDescription = %q", c.BreakingDescription)
		}
	})

	t.Run("first footer wins", func(t *testing.T) {
		c := Parse("abc", "fix: patch\n\nBREAKING CHANGE: first\nBREAKING-CHANGE: second")
		if c.BreakingDescription != "first" {
			t.Errorf("BreakingDescription = %q, want %q", c.BreakingDescription, "first")
		}
	})

	t.Run("missing blank line still counts", func(t *testing.T) {
		c := Parse("abc", "feat: add widget\nBREAKING CHANGE: widget API replaced")
		if !c.Breaking {
			t.Fatal("expected breaking")
		}
		if c.BreakingDescription != "widget API replaced" {
			t.Errorf("BreakingDescription = %q", c.BreakingDescription)
		}
	})

	t.Run("token is case-sensitive", func(t *testing.T) {
		c := Parse("abc", "fix: patch\n\nbreaking change: nope")
		if c.Breaking {
			t.Error("lowercase footer should not mark breaking")
		}
	})

	t.Run("bang falls back to description", func(t *testing.T) {
		c := Parse("abc", "feat!: remove API")
		if !c.Breaking {
			t.Fatal("expected breaking")
		}
		if c.BreakingDescription != "remove API" {
			t.Errorf("BreakingDescription = %q, want summary", c.BreakingDescription)
		}
	})
}

func TestParse_Body(t *testing.T) {
	c := Parse("abc", "feat: add things\n\nfirst paragraph\nstill first\n\nsecond paragraph")
	want := []string{"first paragraph\nstill first", "second paragraph"}
	if !reflect.DeepEqual(c.Body, want) {
		t.Errorf("Body = %q, want %q", c.Body, want)
	}
}

func TestShortSHA(t *testing.T) {
	c := Commit{SHA: "0123456789abcdef"}
	if got := c.ShortSHA(); got != "0123456" {
		t.Errorf("ShortSHA = %q", got)
	}

	c = Commit{SHA: "ab12"}
	if got := c.ShortSHA(); got != "ab12" {
		t.Errorf("ShortSHA = %q", got)
	}
}
