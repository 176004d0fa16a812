package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/dockbar/internal/interfaces"
	"github.com/Norgate-AV/dockbar/internal/logger"
	"github.com/Norgate-AV/dockbar/internal/testutil"
	"github.com/Norgate-AV/dockbar/internal/version"
)

// resetFlags resets all flags to their default values between tests
func resetFlags() {
	_ = RootCmd.PersistentFlags().Set("verbose", "false")
	_ = RootCmd.PersistentFlags().Set("logs", "false")
	_ = RootCmd.PersistentFlags().Set("config", "")
}

// useMockPlatform routes sessions onto shell with a silent logger
func useMockPlatform(t *testing.T, shell *testutil.MockShell) {
	t.Helper()

	oldLogger, oldPlatform := newLogger, newPlatform

	newLogger = func(logger.Options) (logger.LoggerInterface, error) {
		return logger.NewNoOpLogger(), nil
	}
	newPlatform = func(logger.LoggerInterface) (interfaces.Platform, error) {
		return shell, nil
	}

	t.Cleanup(func() {
		newLogger, newPlatform = oldLogger, oldPlatform
		resetFlags()
	})
}

// executeCommand runs the root command and returns what it wrote to stdout
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	RootCmd.SetArgs(args)

	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetArgs(nil)
	})

	err := RootCmd.Execute()

	return buf.String(), err
}

// TestHandleLogsFlag tests the --logs flag functionality
func TestHandleLogsFlag(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "dockbar", "dockbar.log")

	t.Setenv("LOCALAPPDATA", tmpDir)
	t.Setenv("DOCKBAR_CONFIG", filepath.Join(tmpDir, "missing.yaml"))

	testContent := "Test log content\nLine 2\nLine 3"
	require.NoError(t, os.MkdirAll(filepath.Dir(logPath), 0o755))
	require.NoError(t, os.WriteFile(logPath, []byte(testContent), 0o644))

	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	exitCalled := false
	var exitCode int
	mockExit := func(code int) {
		exitCalled = true
		exitCode = code
	}

	err := handleLogsFlag(&Config{ShowLogs: true}, mockExit)
	assert.NoError(t, err)

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)

	assert.True(t, exitCalled, "Should call exit function for --logs flag")
	assert.Equal(t, 0, exitCode, "Should exit with code 0 for --logs")
	assert.Contains(t, buf.String(), testContent, "Should print log file content to stdout")
}

func TestLogOptions_FollowSettingsFile(t *testing.T) {
	logDir := t.TempDir()
	path := testutil.WriteConfigFile(t, "logging:\n  dir: "+filepath.ToSlash(logDir)+"\n  max_size_mb: 16\n  max_backups: 1\n  compress: false\n")

	opts := logOptions(&Config{ConfigPath: path, Verbose: true})

	assert.Equal(t, filepath.Join(logDir, "dockbar.log"), opts.Path())
	assert.Equal(t, 16, opts.MaxSizeMB)
	assert.Equal(t, 1, opts.MaxBackups)
	assert.Equal(t, logger.DefaultMaxAgeDays, opts.MaxAgeDays)
	assert.False(t, opts.Compress)
	assert.True(t, opts.Verbose)
}

func TestLogOptions_BrokenSettingsUseDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("LOCALAPPDATA", tmpDir)

	path := testutil.WriteConfigFile(t, "logging: [not, a, map]\n")

	opts := logOptions(&Config{ConfigPath: path})

	assert.Equal(t, filepath.Join(tmpDir, "dockbar", "dockbar.log"), opts.Path())
	assert.Equal(t, logger.DefaultMaxSizeMB, opts.MaxSizeMB)
	assert.True(t, opts.Compress)
}

func TestHandleLogsFlag_NotSet(t *testing.T) {
	t.Parallel()

	exitCalled := false

	err := handleLogsFlag(&Config{}, func(int) { exitCalled = true })

	assert.NoError(t, err)
	assert.False(t, exitCalled)
}

// TestRootCmd_Version tests --version flag
func TestRootCmd_Version(t *testing.T) {
	resetFlags()

	output, err := executeCommand(t, "--version")

	assert.NoError(t, err)
	assert.Contains(t, output, version.GetVersion(), "Should print version information")
}

// TestRootCmd_Help tests --help flag
func TestRootCmd_Help(t *testing.T) {
	resetFlags()

	output, err := executeCommand(t, "--help")

	assert.NoError(t, err)
	assert.Contains(t, output, "dockbar", "Should show usage")
	assert.Contains(t, output, "app bars", "Should show description")
	assert.Contains(t, output, "--verbose", "Should list verbose flag")
	assert.Contains(t, output, "--config", "Should list config flag")
	assert.Contains(t, output, "--logs", "Should list logs flag")

	for _, sub := range []string{"attach", "monitors", "workarea", "taskbar"} {
		assert.Contains(t, output, sub, "Should list %s command", sub)
	}
}

// TestRootCmd_Flags tests flag parsing
func TestRootCmd_Flags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		args           []string
		expectedConfig Config
	}{
		{
			name: "no flags",
			args: []string{},
		},
		{
			name:           "verbose flag short",
			args:           []string{"-V"},
			expectedConfig: Config{Verbose: true},
		},
		{
			name:           "logs flag long",
			args:           []string{"--logs"},
			expectedConfig: Config{ShowLogs: true},
		},
		{
			name:           "config flag short",
			args:           []string{"-c", "bars.yaml"},
			expectedConfig: Config{ConfigPath: "bars.yaml"},
		},
		{
			name:           "all flags",
			args:           []string{"--verbose", "--logs", "--config", "bars.yaml"},
			expectedConfig: Config{Verbose: true, ShowLogs: true, ConfigPath: "bars.yaml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// A fresh command avoids sharing flag state with RootCmd
			cmd := &cobra.Command{Use: "test"}
			cmd.PersistentFlags().BoolP("verbose", "V", false, "enable verbose output")
			cmd.PersistentFlags().BoolP("logs", "l", false, "print log file")
			cmd.PersistentFlags().StringP("config", "c", "", "settings file")

			err := cmd.ParseFlags(tt.args)
			assert.NoError(t, err, "Flag parsing should not error")

			assert.Equal(t, tt.expectedConfig, *NewConfigFromFlags(cmd))
		})
	}
}

// TestRootCmd_InvalidFlag tests behavior with unknown flags
func TestRootCmd_InvalidFlag(t *testing.T) {
	resetFlags()

	var stderr bytes.Buffer
	RootCmd.SetErr(&stderr)
	t.Cleanup(func() { RootCmd.SetErr(nil) })

	_, err := executeCommand(t, "--invalid-flag")

	assert.Error(t, err, "Should return error for invalid flag")
	assert.Contains(t, stderr.String(), "unknown flag", "Error message should mention unknown flag")
}

func TestRunSession_InvalidConfig(t *testing.T) {
	shell := testutil.NewMockShell()
	useMockPlatform(t, shell)

	path := testutil.WriteConfigFile(t, "negotiation:\n  max_attempts: 0\n")

	_, err := executeCommand(t, "--config", path, "workarea", "apply")

	assert.ErrorContains(t, err, "invalid config")
	assert.Empty(t, shell.InstalledWorkAreas, "Nothing should reach the shell")
}

func TestRunSession_RecoversPanic(t *testing.T) {
	shell := testutil.NewMockShell()
	useMockPlatform(t, shell)

	cmd := &cobra.Command{Use: "boom"}
	cmd.Flags().String("config", testutil.WriteConfigFile(t, ""), "")

	err := runSession(cmd, func(*session) error {
		panic("boom")
	})

	assert.ErrorContains(t, err, "panic: boom")
}
