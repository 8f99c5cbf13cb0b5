package testutil

import "testing"

// CargoManifest renders a minimal Cargo.toml recording the given version.
func CargoManifest(version string) string {
	return "[package]\nname = \"widget\"\nversion = \"" + version + "\"\n"
}

// SetupReleaseRepo builds a repository one release past v1.0.0: a tagged
// baseline carrying a Cargo.toml, then a feature and a fix commit.
func SetupReleaseRepo(t *testing.T) string {
	t.Helper()

	dir := SetupTestRepo(t)
	WriteAndCommit(t, dir, "Cargo.toml", CargoManifest("1.0.0"), "chore: add manifest")
	Tag(t, dir, "v1.0.0")

	WriteAndCommit(t, dir, "feature.txt", "feature\n", "feat(api): add report endpoint")
	WriteAndCommit(t, dir, "fix.txt", "fix\n", "fix: handle empty input")

	return dir
}
