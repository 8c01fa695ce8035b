package pyprofile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katichai/pyqa/internal/pyprofile"
)

func TestDetectFindsFrameworksFromRequirements(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "requirements.txt"),
		[]byte("Django==4.2\nrequests==2.31\npytest==7.4\n"),
		0o644,
	))

	profile, err := pyprofile.Detect(dir)
	require.NoError(t, err)

	assert.Contains(t, profile.Frameworks, pyprofile.Django)
	assert.Contains(t, profile.Frameworks, pyprofile.Pytest)
	assert.NotContains(t, profile.Frameworks, pyprofile.Flask)
	assert.Contains(t, profile.ManifestFiles, "requirements.txt")
}

func TestDetectIgnoresCommentedLines(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "requirements.txt"),
		[]byte("# flask==2.0\nnumpy==1.26\n"),
		0o644,
	))

	profile, err := pyprofile.Detect(dir)
	require.NoError(t, err)

	assert.Contains(t, profile.Frameworks, pyprofile.NumPy)
	assert.NotContains(t, profile.Frameworks, pyprofile.Flask)
}

func TestDetectReturnsEmptyProfileWithoutManifests(t *testing.T) {
	dir := t.TempDir()

	profile, err := pyprofile.Detect(dir)
	require.NoError(t, err)
	assert.Empty(t, profile.Frameworks)
	assert.Empty(t, profile.ManifestFiles)
}
