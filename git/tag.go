package git

import "strings"

// Tags returns all tag names in the repository.
func (g *Context) Tags() ([]string, error) {
	output, err := g.runGit("tag", "--list")
	if err != nil {
		return nil, &Error{Op: "list tags", Err: err}
	}
	if output == "" {
		return nil, nil
	}

	var tags []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			tags = append(tags, line)
		}
	}
	return tags, nil
}

// CreateTag creates a lightweight tag at HEAD.
func (g *Context) CreateTag(name string) error {
	if _, err := g.runGit("tag", name); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return ErrTagExists
		}
		return &Error{Op: "create tag", Err: err}
	}
	return nil
}
