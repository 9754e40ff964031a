//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Bucket     string
	ReadKey    string
	WriteKey   string
	CosmicPath string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Bucket:     os.Getenv("COSMIC_BUCKET"),
		ReadKey:    os.Getenv("COSMIC_READ_KEY"),
		WriteKey:   os.Getenv("COSMIC_WRITE_KEY"),
		CosmicPath: getCosmicPath(),
		Verbose:    os.Getenv("COSMIC_VERBOSE") == "true",
	}
}

// getCosmicPath determines the path to the cosmic binary
func getCosmicPath() string {
	if path := os.Getenv("COSMIC_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../cosmic",
		"./cosmic",
		"../cosmic",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "cosmic"
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Bucket == "" || config.ReadKey == "" {
		t.Skip("COSMIC_BUCKET or COSMIC_READ_KEY not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.CosmicPath); err != nil {
		t.Skipf("cosmic binary not found at %s, skipping integration test", config.CosmicPath)
	}
}

// SkipIfReadOnly skips tests that mutate the bucket
func (config *TestConfig) SkipIfReadOnly(t *testing.T) {
	t.Helper()

	if config.WriteKey == "" {
		t.Skip("COSMIC_WRITE_KEY not set, skipping write workflow")
	}
}

// CommandRunner runs the cosmic binary against the configured bucket
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a cosmic command and returns output. Keys are passed through
// the environment so they never appear in the process arguments.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	// #nosec G204
	cmd := exec.Command(runner.config.CosmicPath, args...)
	cmd.Env = append(os.Environ(),
		"COSMIC_BUCKET="+runner.config.Bucket,
		"COSMIC_READ_KEY="+runner.config.ReadKey,
		"COSMIC_WRITE_KEY="+runner.config.WriteKey,
	)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.CosmicPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// RunJSON executes a command with JSON output and decodes the result
func (runner *CommandRunner) RunJSON(target any, args ...string) {
	runner.t.Helper()

	stdout, stderr, err := runner.Run(append(args, "--output", "json")...)
	require.NoError(runner.t, err, "command %v failed: %s", args, stderr)
	require.NoError(runner.t, json.Unmarshal([]byte(stdout), target), "invalid JSON output: %s", stdout)
}

// CleanupObject deletes an object, ignoring errors
func (runner *CommandRunner) CleanupObject(id string) {
	if id == "" {
		return
	}

	_, _, _ = runner.Run("objects", "delete", id, "--force")
}

// GenerateTestName generates a unique name for test resources
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
