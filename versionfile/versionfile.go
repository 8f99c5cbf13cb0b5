package versionfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/releaseflow/semver"
)

// Format identifies a supported versioned-file format.
type Format string

const (
	FormatCargo       Format = "Cargo.toml"
	FormatPyProject   Format = "pyproject.toml"
	FormatPackageJSON Format = "package.json"
	FormatChart       Format = "Chart.yaml"
)

// detectOrder fixes the scan order of supported files.
var detectOrder = []Format{FormatCargo, FormatPyProject, FormatPackageJSON, FormatChart}

// Errors for versioned-file handling.
var (
	// ErrNoVersionedFiles indicates no supported metadata file was found.
	ErrNoVersionedFiles = errors.New("no supported versioned files found")

	// ErrVersionMissing indicates the file lacks its version property.
	ErrVersionMissing = errors.New("version property missing")
)

// File is one project metadata file that records the project version.
type File struct {
	Path   string
	Format Format
}

// Detect scans dir for supported versioned files.
// Returns ErrNoVersionedFiles when none exist.
func Detect(dir string) ([]File, error) {
	var files []File
	for _, format := range detectOrder {
		path := filepath.Join(dir, string(format))
		if _, err := os.Stat(path); err == nil {
			files = append(files, File{Path: path, Format: format})
		}
	}
	if len(files) == 0 {
		return nil, ErrNoVersionedFiles
	}
	return files, nil
}

// Read parses the file and returns the version it records. Version strings
// that do not parse as semantic versions surface the file name and the
// offending text.
func (f File) Read() (semver.Version, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return semver.Version{}, fmt.Errorf("read %s: %w", f.Path, err)
	}

	raw, err := extractVersion(f.Format, data)
	if err != nil {
		return semver.Version{}, fmt.Errorf("%s: %w", f.Path, err)
	}

	v, err := semver.Parse(raw)
	if err != nil {
		return semver.Version{}, fmt.Errorf("%s: %w", f.Path, err)
	}
	return v, nil
}

// Write replaces the recorded version with next, preserving the rest of the
// file byte for byte. The file must already hold a valid version.
func (f File) Write(next semver.Version) error {
	current, err := f.Read()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", f.Path, err)
	}

	updated, err := replaceVersion(f.Format, data, current.String(), next.String())
	if err != nil {
		return fmt.Errorf("%s: %w", f.Path, err)
	}

	info, err := os.Stat(f.Path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", f.Path, err)
	}
	if err := os.WriteFile(f.Path, updated, info.Mode()); err != nil {
		return fmt.Errorf("write %s: %w", f.Path, err)
	}
	return nil
}

// WriteAll writes next into every file, stopping at the first failure.
// It returns the paths written.
func WriteAll(files []File, next semver.Version) ([]string, error) {
	var written []string
	for _, f := range files {
		if err := f.Write(next); err != nil {
			return written, err
		}
		written = append(written, f.Path)
	}
	return written, nil
}

// extractVersion pulls the raw version string out of parsed file content.
func extractVersion(format Format, data []byte) (string, error) {
	switch format {
	case FormatCargo:
		var doc struct {
			Package struct {
				Version string `toml:"version"`
			} `toml:"package"`
		}
		if err := toml.Unmarshal(data, &doc); err != nil {
			return "", fmt.Errorf("parse: %w", err)
		}
		if doc.Package.Version == "" {
			return "", fmt.Errorf("%w: package.version", ErrVersionMissing)
		}
		return doc.Package.Version, nil

	case FormatPyProject:
		var doc struct {
			Tool struct {
				Poetry struct {
					Version string `toml:"version"`
				} `toml:"poetry"`
			} `toml:"tool"`
		}
		if err := toml.Unmarshal(data, &doc); err != nil {
			return "", fmt.Errorf("parse: %w", err)
		}
		if doc.Tool.Poetry.Version == "" {
			return "", fmt.Errorf("%w: tool.poetry.version", ErrVersionMissing)
		}
		return doc.Tool.Poetry.Version, nil

	case FormatPackageJSON:
		var doc struct {
			Version string `json:"version"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return "", fmt.Errorf("parse: %w", err)
		}
		if doc.Version == "" {
			return "", fmt.Errorf("%w: version", ErrVersionMissing)
		}
		return doc.Version, nil

	case FormatChart:
		var doc struct {
			Version string `yaml:"version"`
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return "", fmt.Errorf("parse: %w", err)
		}
		if doc.Version == "" {
			return "", fmt.Errorf("%w: version", ErrVersionMissing)
		}
		return doc.Version, nil

	default:
		return "", fmt.Errorf("unsupported format %q", format)
	}
}

// replaceVersion rewrites the one version assignment Read resolves, leaving
// every other occurrence of the same value alone. A dependency pinned at the
// project's own version must survive the bump untouched.
func replaceVersion(format Format, data []byte, current, next string) ([]byte, error) {
	start, end := tableBounds(format, data)
	loc := versionPattern(format, current).FindSubmatchIndex(data[start:end])
	if loc == nil {
		return nil, errors.New("version assignment not found for replacement")
	}

	var buf bytes.Buffer
	buf.Write(data[:start+loc[3]])
	buf.WriteString(next)
	buf.Write(data[start+loc[4]:])
	return buf.Bytes(), nil
}

// tableBounds returns the byte range of the TOML table owning the version
// property. Formats without tables search the whole file.
func tableBounds(format Format, data []byte) (int, int) {
	var header *regexp.Regexp
	switch format {
	case FormatCargo:
		header = regexp.MustCompile(`(?m)^\[package\][ \t]*$`)
	case FormatPyProject:
		header = regexp.MustCompile(`(?m)^\[tool\.poetry\][ \t]*$`)
	default:
		return 0, len(data)
	}

	loc := header.FindIndex(data)
	if loc == nil {
		return 0, len(data)
	}
	if rest := regexp.MustCompile(`(?m)^\[`).FindIndex(data[loc[1]:]); rest != nil {
		return loc[0], loc[1] + rest[0]
	}
	return loc[0], len(data)
}

// versionPattern matches the version assignment carrying current, capturing
// the surrounding text so replacement touches only the value.
func versionPattern(format Format, current string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(current)
	switch format {
	case FormatPackageJSON:
		return regexp.MustCompile(`("version"\s*:\s*")` + quoted + `(")`)
	case FormatChart:
		return regexp.MustCompile(`(?m)^(version:\s*["']?)` + quoted + `(["']?\s*)$`)
	default: // TOML formats
		return regexp.MustCompile(`(?m)^(\s*version\s*=\s*")` + quoted + `(")`)
	}
}
