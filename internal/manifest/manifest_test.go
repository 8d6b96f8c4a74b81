package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBump(t *testing.T) {
	tests := []struct {
		version, part, want string
	}{
		{"0.3.1", "patch", "0.3.2"},
		{"0.3.1", "minor", "0.4.0"},
		{"0.3.1", "major", "1.0.0"},
		{"v1.2.3", "minor", "v1.3.0"},
		{"2.0", "patch", "2.0.1"}, // canonicalized before bumping
	}
	for _, tt := range tests {
		got, err := Bump(tt.version, tt.part)
		require.NoError(t, err, tt.version)
		assert.Equal(t, tt.want, got)
	}
}

func TestBumpRejectsGarbage(t *testing.T) {
	_, err := Bump("not-a-version", "patch")
	assert.Error(t, err)

	_, err = Bump("1.2.3", "mega")
	assert.Error(t, err)
}

func TestReadPackageJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "package.json", `{"name": "demo", "version": "1.4.2"}`)

	got, err := Read(File{Path: path, Kind: PackageJSON})
	require.NoError(t, err)
	assert.Equal(t, "1.4.2", got)
}

func TestReadCargoToml(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Cargo.toml", "[package]\nname = \"demo\"\nversion = \"0.9.0\"\n")

	got, err := Read(File{Path: path, Kind: CargoToml})
	require.NoError(t, err)
	assert.Equal(t, "0.9.0", got)
}

func TestReadPyProject(t *testing.T) {
	dir := t.TempDir()

	path := writeFile(t, dir, "pyproject.toml", "[project]\nname = \"demo\"\nversion = \"0.3.1\"\n")
	got, err := Read(File{Path: path, Kind: PyProject})
	require.NoError(t, err)
	assert.Equal(t, "0.3.1", got)

	// Poetry layout.
	writeFile(t, dir, "pyproject.toml", "[tool.poetry]\nname = \"demo\"\nversion = \"0.7.7\"\n")
	got, err = Read(File{Path: path, Kind: PyProject})
	require.NoError(t, err)
	assert.Equal(t, "0.7.7", got)
}

func TestApplyPreservesFormatting(t *testing.T) {
	dir := t.TempDir()
	content := "# build manifest\n[package]\nname = \"demo\"  # the name\nversion = \"0.9.0\"\nedition = \"2021\"\n"
	path := writeFile(t, dir, "Cargo.toml", content)

	require.NoError(t, Apply(File{Path: path, Kind: CargoToml}, "0.10.0"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `version = "0.10.0"`)
	assert.Contains(t, out, "# build manifest")
	assert.Contains(t, out, "# the name")
}

func TestApplyTouchesOnlyFirstVersion(t *testing.T) {
	dir := t.TempDir()
	content := "{\n  \"version\": \"1.0.0\",\n  \"dependencies\": {\n    \"version\": \"9.9.9\"\n  }\n}\n"
	path := writeFile(t, dir, "package.json", content)

	require.NoError(t, Apply(File{Path: path, Kind: PackageJSON}, "1.1.0"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": "1.1.0"`)
	assert.Contains(t, string(data), `"version": "9.9.9"`)
}

func TestDiscoverAndSyncAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"version": "1.0.0"}`)
	writeFile(t, dir, "pyproject.toml", "[project]\nversion = \"1.0.0\"\n")
	writeFile(t, dir, "VERSION", "1.0.0\n")

	files := Discover(dir)
	require.Len(t, files, 3)
	assert.Equal(t, PackageJSON, files[0].Kind)

	updated, err := SyncAll(dir, "1.1.0")
	require.NoError(t, err)
	assert.Len(t, updated, 3)

	for _, f := range files {
		got, err := Read(f)
		require.NoError(t, err)
		assert.Equal(t, "1.1.0", got, f.Kind.String())
	}
}

func TestCurrentNoManifest(t *testing.T) {
	_, err := Current(t.TempDir())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "no version manifest"))
}
