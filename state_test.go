package releaseflow

import (
	"strings"
	"testing"

	"github.com/randalmurphal/releaseflow/release"
	"github.com/randalmurphal/releaseflow/semver"
)

func TestNewState(t *testing.T) {
	a := NewState()
	b := NewState()

	if a.RunID == "" {
		t.Fatal("RunID is empty")
	}
	if a.RunID == b.RunID {
		t.Errorf("two states share RunID %q", a.RunID)
	}
	if !strings.Contains(a.RunID, "-") {
		t.Errorf("RunID %q lacks date prefix", a.RunID)
	}
}

func TestStateWith(t *testing.T) {
	base := NewState()

	t.Run("issue does not mutate original", func(t *testing.T) {
		next := base.WithIssue(Issue{Key: "FLOW-1", Summary: "x"})
		if base.Issue != nil {
			t.Error("original state gained an issue")
		}
		if next.Issue == nil || next.Issue.Key != "FLOW-1" {
			t.Errorf("next.Issue = %+v", next.Issue)
		}
	})

	t.Run("release records version", func(t *testing.T) {
		result := &release.Result{NextVersion: semver.MustParse("1.2.0")}
		next := base.WithRelease(result)
		if next.Version.String() != "1.2.0" {
			t.Errorf("Version = %s, want 1.2.0", next.Version)
		}
		if base.Release != nil {
			t.Error("original state gained a release")
		}
	})
}
