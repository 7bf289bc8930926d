package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runJsoncol runs the CLI via `go run` and returns the combined output and
// exit error, if any.
func runJsoncol(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmdArgs := append([]string{"run", "../../main.go"}, args...)
	cmd := exec.Command("go", cmdArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func TestEndToEnd_ArrayToArrow(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "jsoncol-e2e")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	inputFile := filepath.Join(tempDir, "input.json")
	require.NoError(t, os.WriteFile(inputFile, []byte(`[{"a":1},{"a":2}]`), 0644))
	outputFile := filepath.Join(tempDir, "output.arrow")

	output, err := runJsoncol(t, inputFile, outputFile)
	require.NoError(t, err, "CLI command failed: %s", output)

	stat, err := os.Stat(outputFile)
	require.NoError(t, err)
	assert.Greater(t, stat.Size(), int64(0))
	assert.Contains(t, output, "conversion complete")
}

func TestEndToEnd_LenientSkipsBadLine(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "jsoncol-e2e")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	inputFile := filepath.Join(tempDir, "input.jsonl")
	content := "{\"a\": 1}\nthis is not json\n{\"a\": 3}\n"
	require.NoError(t, os.WriteFile(inputFile, []byte(content), 0644))
	outputFile := filepath.Join(tempDir, "output.arrow")

	output, err := runJsoncol(t, inputFile, outputFile)
	require.NoError(t, err, "CLI command failed: %s", output)

	_, err = os.Stat(outputFile)
	require.NoError(t, err)
	assert.Contains(t, output, "skipping malformed JSON line")
	assert.Contains(t, output, `"skipped":1`)
}

func TestEndToEnd_StrictFails(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "jsoncol-e2e")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	inputFile := filepath.Join(tempDir, "input.jsonl")
	content := "{\"a\": 1}\nthis is not json\n{\"a\": 3}\n"
	require.NoError(t, os.WriteFile(inputFile, []byte(content), 0644))
	outputFile := filepath.Join(tempDir, "output.arrow")

	output, err := runJsoncol(t, "--strict", inputFile, outputFile)
	require.Error(t, err, "strict mode must exit non-zero: %s", output)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())

	_, statErr := os.Stat(outputFile)
	assert.True(t, os.IsNotExist(statErr), "no output file on strict failure")
	assert.Contains(t, output, "line 2")
}

func TestEndToEnd_EmptyInput(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "jsoncol-e2e")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	inputFile := filepath.Join(tempDir, "empty.json")
	require.NoError(t, os.WriteFile(inputFile, []byte(""), 0644))
	outputFile := filepath.Join(tempDir, "output.arrow")

	output, err := runJsoncol(t, inputFile, outputFile)
	require.NoError(t, err, "CLI command failed: %s", output)

	_, err = os.Stat(outputFile)
	require.NoError(t, err)
	assert.Contains(t, output, `"rows":0`)
}

func TestEndToEnd_MissingInput(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "jsoncol-e2e")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	inputFile := filepath.Join(tempDir, "does-not-exist.json")
	outputFile := filepath.Join(tempDir, "output.arrow")

	output, err := runJsoncol(t, inputFile, outputFile)
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())

	_, statErr := os.Stat(outputFile)
	assert.True(t, os.IsNotExist(statErr))
	assert.Contains(t, output, "not found")
}

func TestEndToEnd_ParquetByExtension(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "jsoncol-e2e")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	inputFile := filepath.Join(tempDir, "input.json")
	require.NoError(t, os.WriteFile(inputFile, []byte(`[{"x":"a"},{"x":"b"}]`), 0644))
	outputFile := filepath.Join(tempDir, "output.parquet")

	output, err := runJsoncol(t, inputFile, outputFile)
	require.NoError(t, err, "CLI command failed: %s", output)

	stat, err := os.Stat(outputFile)
	require.NoError(t, err)
	assert.Greater(t, stat.Size(), int64(0))
	assert.Contains(t, output, `"format":"parquet"`)
}

func TestEndToEnd_Preview(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "jsoncol-e2e")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	inputFile := filepath.Join(tempDir, "input.json")
	require.NoError(t, os.WriteFile(inputFile, []byte(`[{"name":"alice"},{"name":"bob"}]`), 0644))
	outputFile := filepath.Join(tempDir, "output.arrow")

	output, err := runJsoncol(t, "--preview", "2", inputFile, outputFile)
	require.NoError(t, err, "CLI command failed: %s", output)
	assert.Contains(t, output, "alice")
	assert.Contains(t, output, "bob")
}

func TestEndToEnd_Version(t *testing.T) {
	output, err := runJsoncol(t, "--version")
	require.NoError(t, err, "CLI command failed: %s", output)
	assert.True(t, strings.HasPrefix(output, "jsoncol version"))
}
