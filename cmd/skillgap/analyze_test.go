package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCommand_MissingInputs(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "analyze")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "at least one of --resume, --job-description or --job-url must be provided")
}

func TestAnalyzeCommand_MutuallyExclusiveSources(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{
		"job_description": "Python developer wanted.",
		"job_url": "https://example.com/job"
	}`), 0o644))

	cmd := exec.Command(binaryPath, "analyze", "--config", configPath)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "mutually exclusive")
}

func TestAnalyzeCommand_InMemoryRun(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "analyze",
		"--job-description", "Looking for Python and Docker experience.",
		"--role", "software_engineer")

	// Clear DATABASE_URL so the run uses the seed catalog.
	cmd.Env = envWithout("DATABASE_URL")

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "Readiness score:")
	assert.Contains(t, string(output), "Recommended courses:")
}

func TestAnalyzeCommand_UnknownRole(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "analyze",
		"--job-description", "Python developer wanted.",
		"--role", "quantum_wizard")
	cmd.Env = envWithout("DATABASE_URL")

	output, err := cmd.CombinedOutput()
	assert.Error(t, err)
	assert.Contains(t, string(output), "unknown target role")
}

func envWithout(key string) []string {
	var env []string
	for _, e := range os.Environ() {
		if len(e) <= len(key) || e[:len(key)+1] != key+"=" {
			env = append(env, e)
		}
	}
	return env
}
