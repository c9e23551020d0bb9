package prtemplate

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func TestRead_NoTemplate(t *testing.T) {
	content, path, err := NewReader(t.TempDir()).Read()

	require.NoError(t, err)
	assert.Empty(t, content)
	assert.Empty(t, path)
}

func TestRead_GithubTemplate(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, ".github/pull_request_template.md", "\n## Summary\n\n## Testing\n")

	content, path, err := NewReader(root).Read()

	require.NoError(t, err)
	assert.Equal(t, "## Summary\n\n## Testing", content)
	assert.Equal(t, filepath.Join(root, ".github", "pull_request_template.md"), path)
}

func TestRead_Precedence(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "pull_request_template.md", "root")
	writeTemplate(t, root, "docs/pull_request_template.md", "docs")

	content, _, err := NewReader(root).Read()

	require.NoError(t, err)
	assert.Equal(t, "docs", content)
}

func TestRead_SkipsBlankTemplate(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, ".github/pull_request_template.md", "   \n")
	writeTemplate(t, root, "pull_request_template.md", "fallback")

	content, _, err := NewReader(root).Read()

	require.NoError(t, err)
	assert.Equal(t, "fallback", content)
}

func TestRead_UnreadableTemplate(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	root := t.TempDir()
	writeTemplate(t, root, ".github/pull_request_template.md", "secret")
	require.NoError(t, os.Chmod(filepath.Join(root, ".github", "pull_request_template.md"), 0000))

	_, _, err := NewReader(root).Read()
	assert.Error(t, err)
}
