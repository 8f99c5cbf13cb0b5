package commit

import "strings"

// Type is a conventional-commit type token.
type Type string

const (
	TypeFeat     Type = "feat"
	TypeFix      Type = "fix"
	TypeChore    Type = "chore"
	TypeDocs     Type = "docs"
	TypeStyle    Type = "style"
	TypeRefactor Type = "refactor"
	TypePerf     Type = "perf"
	TypeTest     Type = "test"
	TypeBuild    Type = "build"
	TypeCI       Type = "ci"
	TypeRevert   Type = "revert"

	// TypeUnknown marks a commit whose header does not follow the
	// conventional-commit grammar. Unknown commits carry no version
	// effect and are left out of changelog sections.
	TypeUnknown Type = ""
)

// knownTypes is the closed set of recognized type tokens, case-sensitive.
var knownTypes = map[Type]bool{
	TypeFeat:     true,
	TypeFix:      true,
	TypeChore:    true,
	TypeDocs:     true,
	TypeStyle:    true,
	TypeRefactor: true,
	TypePerf:     true,
	TypeTest:     true,
	TypeBuild:    true,
	TypeCI:       true,
	TypeRevert:   true,
}

// Breaking-change footer tokens, each followed by ": " and a description.
const (
	breakingFooter       = "BREAKING CHANGE: "
	breakingFooterHyphen = "BREAKING-CHANGE: "
)

// Commit is the parsed representation of one commit message.
type Commit struct {
	Type                Type     // TypeUnknown when the header is not conventional
	Scope               string   // Optional scope from type(scope), empty () counts as none
	Description         string   // Summary line content after type/scope, trimmed
	Body                []string // Paragraphs after the blank line separator
	Breaking            bool     // ! before the colon, or a breaking-change footer
	BreakingDescription string   // Footer text if present, else the description
	SHA                 string   // Opaque commit identifier for changelog traceability
	Raw                 string   // Original message, preserved for unconventional commits
}

// Conventional reports whether the commit header parsed as conventional syntax.
func (c Commit) Conventional() bool {
	return c.Type != TypeUnknown
}

// ShortSHA returns an abbreviated commit identifier for display.
func (c Commit) ShortSHA() string {
	if len(c.SHA) > 7 {
		return c.SHA[:7]
	}
	return c.SHA
}

// Parse classifies a raw commit message. It never fails: messages that do
// not follow the conventional-commit grammar come back with TypeUnknown and
// the raw text preserved, so a messy history still flows through the rest
// of the release pipeline.
func Parse(sha, message string) Commit {
	c := Commit{SHA: sha, Raw: message}

	normalized := strings.ReplaceAll(message, "\r\n", "\n")
	header, rest, _ := strings.Cut(normalized, "\n")

	typ, scope, bang, description, ok := parseHeader(header)
	if !ok {
		return c
	}

	c.Type = typ
	c.Scope = scope
	c.Description = description
	c.Body = paragraphs(rest)

	// Footers are recognized on any line after the header, even without
	// the blank-line separator. Tolerant on purpose: hand-written
	// messages often skip the blank line, and a breaking change must not
	// slip through over formatting.
	for _, line := range strings.Split(rest, "\n") {
		desc, found := cutBreakingFooter(line)
		if !found {
			continue
		}
		c.Breaking = true
		if c.BreakingDescription == "" {
			// First matching footer wins.
			c.BreakingDescription = desc
		}
	}

	if bang {
		c.Breaking = true
	}
	if c.Breaking && c.BreakingDescription == "" {
		c.BreakingDescription = c.Description
	}

	return c
}

// parseHeader splits "type(scope)!: description" into its parts.
// The mandatory ": " separator and a recognized type token are required.
func parseHeader(header string) (typ Type, scope string, bang bool, description string, ok bool) {
	head, desc, found := strings.Cut(header, ": ")
	if !found {
		return TypeUnknown, "", false, "", false
	}

	if strings.HasSuffix(head, "!") {
		bang = true
		head = strings.TrimSuffix(head, "!")
	}

	if open := strings.IndexByte(head, '('); open >= 0 {
		if !strings.HasSuffix(head, ")") {
			return TypeUnknown, "", false, "", false
		}
		scope = head[open+1 : len(head)-1]
		head = head[:open]
	}

	typ = Type(head)
	if !knownTypes[typ] {
		return TypeUnknown, "", false, "", false
	}

	return typ, scope, bang, strings.TrimSpace(desc), true
}

// cutBreakingFooter returns the description of a breaking-change footer line.
func cutBreakingFooter(line string) (string, bool) {
	if desc, found := strings.CutPrefix(line, breakingFooter); found {
		return strings.TrimSpace(desc), true
	}
	if desc, found := strings.CutPrefix(line, breakingFooterHyphen); found {
		return strings.TrimSpace(desc), true
	}
	return "", false
}

// paragraphs splits the body block into trimmed, non-empty paragraphs.
func paragraphs(body string) []string {
	var out []string
	for _, p := range strings.Split(body, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
