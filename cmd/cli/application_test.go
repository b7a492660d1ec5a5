package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/checkup/cmd/cli"
)

const (
	testCheckCommandNameConstant      = "check"
	testConfigurationFileNameConstant = "config.yaml"
)

func executeApplication(testInstance *testing.T, arguments ...string) (string, int, error) {
	testInstance.Helper()

	application := cli.NewApplication()
	outputBuffer := &bytes.Buffer{}
	application.RootCommand().SetOut(outputBuffer)
	application.RootCommand().SetErr(outputBuffer)
	application.RootCommand().SetArgs(arguments)

	exitCode, executionError := application.Execute()
	return outputBuffer.String(), exitCode, executionError
}

func TestNewApplicationRegistersCheckCommand(testInstance *testing.T) {
	application := cli.NewApplication()

	commandNames := make([]string, 0)
	for _, registeredCommand := range application.RootCommand().Commands() {
		commandNames = append(commandNames, registeredCommand.Name())
	}

	require.Contains(testInstance, commandNames, testCheckCommandNameConstant)
}

func TestApplicationExecuteWithChecksDisabled(testInstance *testing.T) {
	_, exitCode, executionError := executeApplication(
		testInstance,
		testCheckCommandNameConstant,
		"--check-git=no",
		"--check-home=no",
	)

	require.NoError(testInstance, executionError)
	require.Zero(testInstance, exitCode)
}

func TestApplicationEmbeddedDefaultsFlowIntoCheckCommand(testInstance *testing.T) {
	printedOutput, exitCode, executionError := executeApplication(
		testInstance,
		testCheckCommandNameConstant,
		"--print-config",
		"--check-git=no",
		"--check-home=no",
	)

	require.NoError(testInstance, executionError)
	require.Zero(testInstance, exitCode)
	require.Contains(testInstance, printedOutput, "Configuration:")
	require.Contains(testInstance, printedOutput, "probe_timeout_seconds: 60")
	require.Contains(testInstance, printedOutput, "venv")
	require.Contains(testInstance, printedOutput, "smtp_port: 587")
}

func TestApplicationConfigurationFileOverridesDefaults(testInstance *testing.T) {
	configurationContent := "checks:\n  git:\n    root: /tmp/configured-root\n"
	configurationPath := filepath.Join(testInstance.TempDir(), testConfigurationFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(configurationContent), 0o644))

	printedOutput, _, executionError := executeApplication(
		testInstance,
		"--config", configurationPath,
		testCheckCommandNameConstant,
		"--print-config",
		"--check-git=no",
		"--check-home=no",
	)

	require.NoError(testInstance, executionError)
	require.Contains(testInstance, printedOutput, "root: /tmp/configured-root")
	require.Contains(testInstance, printedOutput, "Configuration file: "+configurationPath)
}

func TestApplicationRejectsUnsupportedLogLevel(testInstance *testing.T) {
	_, _, executionError := executeApplication(
		testInstance,
		"--log-level", "verbose",
		testCheckCommandNameConstant,
	)

	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "unable to create logger")
}
