package changelog

import (
	"fmt"
	"strings"
	"time"

	"github.com/randalmurphal/releaseflow/commit"
	"github.com/randalmurphal/releaseflow/semver"
)

// Section is the heading of one grouped block in a changelog entry.
type Section string

const (
	SectionBreaking Section = "Breaking Changes"
	SectionFeatures Section = "Features"
	SectionFixes    Section = "Fixes"
)

// sectionOrder fixes the rendered order of sections.
var sectionOrder = []Section{SectionBreaking, SectionFeatures, SectionFixes}

// Line is one rendered change within a section.
type Line struct {
	Scope       string // bracketed when present
	Description string
	SHA         string // abbreviated commit reference, may be empty
	Breaking    string // breaking description, appended as a continuation
}

// Entry is a structured changelog entry for a single version. Sections hold
// only non-empty groups, in the fixed Breaking Changes, Features, Fixes
// order, and lines preserve the chronological order of the input commits.
type Entry struct {
	Version  semver.Version
	Date     time.Time
	Sections []SectionLines
}

// SectionLines pairs a section heading with its ordered lines.
type SectionLines struct {
	Section Section
	Lines   []Line
}

// Render groups classified commits into a changelog entry for version.
// Breaking commits land in Breaking Changes regardless of type, features in
// Features, fixes and performance work in Fixes. Commits of other recognized
// types, and unconventional commits, are left out. Render is pure: the same
// inputs always produce the same entry.
func Render(version semver.Version, date time.Time, commits []commit.Commit) Entry {
	grouped := map[Section][]Line{}
	for _, c := range commits {
		section, ok := sectionFor(c)
		if !ok {
			continue
		}
		line := Line{
			Scope:       c.Scope,
			Description: c.Description,
			SHA:         c.ShortSHA(),
		}
		if section == SectionBreaking {
			line.Breaking = c.BreakingDescription
		}
		grouped[section] = append(grouped[section], line)
	}

	entry := Entry{Version: version, Date: date}
	for _, s := range sectionOrder {
		if lines := grouped[s]; len(lines) > 0 {
			entry.Sections = append(entry.Sections, SectionLines{Section: s, Lines: lines})
		}
	}
	return entry
}

// sectionFor maps a commit to its section, mirroring the bump rule table.
func sectionFor(c commit.Commit) (Section, bool) {
	switch {
	case !c.Conventional():
		return "", false
	case c.Breaking:
		return SectionBreaking, true
	case c.Type == commit.TypeFeat:
		return SectionFeatures, true
	case c.Type == commit.TypeFix, c.Type == commit.TypePerf:
		return SectionFixes, true
	default:
		return "", false
	}
}

// Markdown renders the entry as markdown text. Rendering is idempotent:
// calling it twice yields byte-identical output.
func (e Entry) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s - %s\n", e.Version, e.Date.Format("2006-01-02"))
	for _, section := range e.Sections {
		fmt.Fprintf(&b, "\n### %s\n\n", section.Section)
		for _, line := range section.Lines {
			b.WriteString("- ")
			if line.Scope != "" {
				fmt.Fprintf(&b, "[%s] ", line.Scope)
			}
			b.WriteString(line.Description)
			if line.SHA != "" {
				fmt.Fprintf(&b, " (%s)", line.SHA)
			}
			b.WriteString("\n")
			if line.Breaking != "" && line.Breaking != line.Description {
				fmt.Fprintf(&b, "  %s\n", line.Breaking)
			}
		}
	}

	return b.String()
}

// IsEmpty reports whether the entry has no rendered sections.
func (e Entry) IsEmpty() bool {
	return len(e.Sections) == 0
}

// Prepend inserts the entry's markdown at the top of an existing changelog
// document, keeping a leading top-level title in place if the document has
// one. It returns the new document text.
func Prepend(document string, e Entry) string {
	rendered := e.Markdown()

	lines := strings.SplitN(document, "\n", 2)
	if len(lines) > 0 && strings.HasPrefix(lines[0], "# ") {
		rest := ""
		if len(lines) == 2 {
			rest = strings.TrimLeft(lines[1], "\n")
		}
		out := lines[0] + "\n\n" + rendered
		if rest != "" {
			out += "\n" + rest
		}
		return out
	}

	if strings.TrimSpace(document) == "" {
		return rendered
	}
	return rendered + "\n" + strings.TrimLeft(document, "\n")
}
