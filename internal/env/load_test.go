package env

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := `
# overrides
PLAYGROUND_WIDTH=1024
export PLAYGROUND_LOG_LEVEL = "debug"
TITLE='my playground'
EMPTY=
`
	vars, err := Parse(bufio.NewScanner(strings.NewReader(src)))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"PLAYGROUND_WIDTH":     "1024",
		"PLAYGROUND_LOG_LEVEL": "debug",
		"TITLE":                "my playground",
		"EMPTY":                "",
	}, vars)

	_, err = Parse(bufio.NewScanner(strings.NewReader("no equals sign")))
	assert.Error(t, err)
	_, err = Parse(bufio.NewScanner(strings.NewReader(`A="unterminated`)))
	assert.Error(t, err)
}

func TestLoadKeepsExistingVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PLAYGROUND_TEST_A=file\nPLAYGROUND_TEST_B=file\n"), 0644))
	t.Setenv("PLAYGROUND_TEST_A", "process")
	t.Setenv("PLAYGROUND_TEST_B", "")
	require.NoError(t, os.Unsetenv("PLAYGROUND_TEST_B"))

	require.NoError(t, Load(path))
	assert.Equal(t, "process", os.Getenv("PLAYGROUND_TEST_A"))
	assert.Equal(t, "file", os.Getenv("PLAYGROUND_TEST_B"))

	assert.NoError(t, Load(filepath.Join(t.TempDir(), "missing.env")))
}
