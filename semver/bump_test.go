package semver

import (
	"errors"
	"testing"

	"github.com/randalmurphal/releaseflow/commit"
)

func classify(messages ...string) []commit.Commit {
	commits := make([]commit.Commit, len(messages))
	for i, m := range messages {
		commits[i] = commit.Parse("abc123", m)
	}
	return commits
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		messages []string
		want     Bump
	}{
		{
			name:     "feat and fix take minor",
			current:  "1.2.3",
			messages: []string{"feat: add X", "fix: correct Y"},
			want:     BumpMinor,
		},
		{
			name:     "fix and perf take patch",
			current:  "1.2.3",
			messages: []string{"fix: a", "perf: b"},
			want:     BumpPatch,
		},
		{
			name:     "breaking takes major at 1.0+",
			current:  "2.0.0",
			messages: []string{"feat!: remove API"},
			want:     BumpMajor,
		},
		{
			name:     "breaking stays minor pre-1.0",
			current:  "0.4.0",
			messages: []string{"feat!: remove API"},
			want:     BumpMinor,
		},
		{
			name:     "breaking footer counts",
			current:  "1.0.0",
			messages: []string{"fix: patch\n\nBREAKING CHANGE: format changed"},
			want:     BumpMajor,
		},
		{
			name:     "chores alone need no release",
			current:  "1.2.3",
			messages: []string{"chore: update deps", "docs: fix typo", "ci: cache modules"},
			want:     BumpNone,
		},
		{
			name:     "unconventional commits are ignored",
			current:  "1.2.3",
			messages: []string{"wip", "Merge branch 'main'"},
			want:     BumpNone,
		},
		{
			name:     "empty history",
			current:  "1.2.3",
			messages: nil,
			want:     BumpNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(classify(tt.messages...), MustParse(tt.current))
			if got != tt.want {
				t.Errorf("Resolve = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolve_Monotonic(t *testing.T) {
	current := MustParse("1.2.3")
	messages := []string{"chore: deps", "fix: a", "feat: b", "feat!: c"}

	prev := BumpNone
	for i := range messages {
		got := Resolve(classify(messages[:i+1]...), current)
		if got < prev {
			t.Fatalf("bump decreased from %v to %v after commit %d", prev, got, i)
		}
		prev = got
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		current string
		bump    Bump
		want    string
	}{
		{"1.2.3", BumpMinor, "1.3.0"},
		{"1.2.3", BumpPatch, "1.2.4"},
		{"2.0.0", BumpMajor, "3.0.0"},
		{"0.4.0", BumpMinor, "0.5.0"},
		{"1.2.3", BumpNone, "1.2.3"},
		{"1.3.0-rc.1", BumpMajor, "2.0.0"}, // major clears the pre-release label
	}

	for _, tt := range tests {
		got := Apply(MustParse(tt.current), tt.bump)
		if got.String() != tt.want {
			t.Errorf("Apply(%s, %v) = %s, want %s", tt.current, tt.bump, got, tt.want)
		}
	}
}

func TestNextPrerelease_Sequencing(t *testing.T) {
	base := MustParse("1.3.0")
	label := "rc"

	var known []Version
	var prev Version
	for i, want := range []string{"1.3.0-rc.1", "1.3.0-rc.2", "1.3.0-rc.3"} {
		got, err := NextPrerelease(base, label, known)
		if err != nil {
			t.Fatalf("NextPrerelease #%d: %v", i+1, err)
		}
		if got.String() != want {
			t.Fatalf("NextPrerelease #%d = %s, want %s", i+1, got, want)
		}
		if i > 0 && !prev.LessThan(got) {
			t.Fatalf("%s is not greater than %s", got, prev)
		}
		known = append(known, got)
		prev = got
	}
}

func TestNextPrerelease_IgnoresOtherSeries(t *testing.T) {
	base := MustParse("1.3.0")
	known := []Version{
		MustParse("1.3.0-beta.4"), // other label
		MustParse("1.2.0-rc.9"),   // other base
		MustParse("1.2.0"),        // stable
	}

	got, err := NextPrerelease(base, "rc", known)
	if err != nil {
		t.Fatalf("NextPrerelease: %v", err)
	}
	if got.String() != "1.3.0-rc.1" {
		t.Errorf("got %s, want 1.3.0-rc.1", got)
	}
}

func TestNextPrerelease_Mismatch(t *testing.T) {
	base := MustParse("1.3.0")
	known := []Version{MustParse("1.3.0-rc.alpha")}

	_, err := NextPrerelease(base, "rc", known)
	var mismatch *PrereleaseError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want PrereleaseError", err)
	}
}
