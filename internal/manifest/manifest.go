// Package manifest finds and updates the project version across the build
// manifests present in a repository: package.json, Cargo.toml,
// pyproject.toml, and a plain VERSION file.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/semver"
)

// Kind identifies a supported manifest format.
type Kind int

const (
	PackageJSON Kind = iota
	CargoToml
	PyProject
	VersionFile
)

func (k Kind) String() string {
	switch k {
	case PackageJSON:
		return "package.json"
	case CargoToml:
		return "Cargo.toml"
	case PyProject:
		return "pyproject.toml"
	default:
		return "VERSION"
	}
}

// File is one discovered manifest.
type File struct {
	Path string
	Kind Kind
}

// Discover returns the manifests present in dir, in a fixed precedence
// order: package.json, Cargo.toml, pyproject.toml, VERSION.
func Discover(dir string) []File {
	var files []File
	for _, k := range []Kind{PackageJSON, CargoToml, PyProject, VersionFile} {
		path := filepath.Join(dir, k.String())
		if _, err := os.Stat(path); err == nil {
			files = append(files, File{Path: path, Kind: k})
		}
	}
	return files
}

// Current reads the version from the highest-precedence manifest in dir.
func Current(dir string) (string, error) {
	files := Discover(dir)
	if len(files) == 0 {
		return "", fmt.Errorf("no version manifest found in %s", dir)
	}
	return Read(files[0])
}

// Read extracts the version string from one manifest.
func Read(f File) (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", f.Path, err)
	}

	switch f.Kind {
	case PackageJSON:
		var pkg struct {
			Version string `json:"version"`
		}
		if err := json.Unmarshal(data, &pkg); err != nil {
			return "", fmt.Errorf("parsing %s: %w", f.Path, err)
		}
		return pkg.Version, nil

	case CargoToml:
		var doc struct {
			Package struct {
				Version string `toml:"version"`
			} `toml:"package"`
		}
		if err := toml.Unmarshal(data, &doc); err != nil {
			return "", fmt.Errorf("parsing %s: %w", f.Path, err)
		}
		return doc.Package.Version, nil

	case PyProject:
		var doc struct {
			Project struct {
				Version string `toml:"version"`
			} `toml:"project"`
			Tool struct {
				Poetry struct {
					Version string `toml:"version"`
				} `toml:"poetry"`
			} `toml:"tool"`
		}
		if err := toml.Unmarshal(data, &doc); err != nil {
			return "", fmt.Errorf("parsing %s: %w", f.Path, err)
		}
		if doc.Project.Version != "" {
			return doc.Project.Version, nil
		}
		return doc.Tool.Poetry.Version, nil

	default:
		return strings.TrimSpace(string(data)), nil
	}
}

var versionLine = regexp.MustCompile(`(?m)^(\s*"?version"?\s*[:=]\s*)"[^"]*"`)

// Apply rewrites the version in one manifest. Edits are line-based so the
// rest of the file keeps its formatting and comments; only the first version
// assignment is touched.
func Apply(f File, newVersion string) error {
	if f.Kind == VersionFile {
		return os.WriteFile(f.Path, []byte(newVersion+"\n"), 0o644)
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", f.Path, err)
	}

	replaced := false
	out := versionLine.ReplaceAllStringFunc(string(data), func(m string) string {
		if replaced {
			return m
		}
		replaced = true
		sub := versionLine.FindStringSubmatch(m)
		return sub[1] + `"` + newVersion + `"`
	})
	if !replaced {
		return fmt.Errorf("no version field in %s", f.Path)
	}

	return os.WriteFile(f.Path, []byte(out), 0o644)
}

// SyncAll applies newVersion to every discovered manifest in dir and returns
// the paths updated.
func SyncAll(dir, newVersion string) ([]string, error) {
	var updated []string
	for _, f := range Discover(dir) {
		if err := Apply(f, newVersion); err != nil {
			return updated, err
		}
		updated = append(updated, f.Path)
	}
	return updated, nil
}

// Bump increments one part of a semantic version. part is "major", "minor",
// or "patch"; the input may carry or omit a leading "v", and the output
// matches the input's style.
func Bump(version, part string) (string, error) {
	hadPrefix := strings.HasPrefix(version, "v")
	v := version
	if !hadPrefix {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("invalid version %q", version)
	}
	v = semver.Canonical(v)

	parts := strings.SplitN(strings.TrimPrefix(v, "v"), ".", 3)
	major, _ := strconv.Atoi(parts[0])
	minor, _ := strconv.Atoi(parts[1])
	patch, _ := strconv.Atoi(strings.SplitN(parts[2], "-", 2)[0])

	switch part {
	case "major":
		major, minor, patch = major+1, 0, 0
	case "minor":
		minor, patch = minor+1, 0
	case "patch":
		patch++
	default:
		return "", fmt.Errorf("unknown bump part %q", part)
	}

	out := fmt.Sprintf("%d.%d.%d", major, minor, patch)
	if hadPrefix {
		out = "v" + out
	}
	return out, nil
}
