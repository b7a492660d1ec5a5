package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/checkup/internal/execshell"
	"github.com/temirov/checkup/internal/ui"
)

func buildStatusCommand() execshell.ShellCommand {
	return execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        []string{"status"},
			WorkingDirectory: "/srv/code/project",
		},
	}
}

func TestCommandEventFormatterMessages(testInstance *testing.T) {
	formatter := ui.CommandEventFormatter{}
	command := buildStatusCommand()

	testCases := []struct {
		name            string
		buildMessage    func() string
		expectedMessage string
	}{
		{
			name:            "started",
			buildMessage:    func() string { return formatter.BuildStartedMessage(command) },
			expectedMessage: "Running git status (in /srv/code/project)",
		},
		{
			name:            "success",
			buildMessage:    func() string { return formatter.BuildSuccessMessage(command) },
			expectedMessage: "Completed git status (in /srv/code/project)",
		},
		{
			name: "failure_with_stderr",
			buildMessage: func() string {
				return formatter.BuildFailureMessage(command, execshell.ExecutionResult{ExitCode: 128, StandardError: "fatal: not a git repository"})
			},
			expectedMessage: "git status (in /srv/code/project) failed with exit code 128: fatal: not a git repository",
		},
		{
			name: "execution_failure",
			buildMessage: func() string {
				return formatter.BuildExecutionFailureMessage(command, errors.New("executable not found"))
			},
			expectedMessage: "git status (in /srv/code/project) failed: executable not found",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedMessage, testCase.buildMessage())
		})
	}
}

func TestLoggingCommandObserverLevels(testInstance *testing.T) {
	observerCore, observedLogs := observer.New(zap.DebugLevel)
	commandObserver := ui.NewLoggingCommandObserver(zap.New(observerCore))
	command := buildStatusCommand()

	commandObserver.CommandStarted(command)
	commandObserver.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 0})
	commandObserver.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 1})
	commandObserver.CommandExecutionFailed(command, errors.New("boom"))

	allEntries := observedLogs.All()
	require.Len(testInstance, allEntries, 4)
	require.Equal(testInstance, zap.DebugLevel, allEntries[0].Level)
	require.Equal(testInstance, zap.DebugLevel, allEntries[1].Level)
	require.Equal(testInstance, zap.InfoLevel, allEntries[2].Level)
	require.Equal(testInstance, zap.WarnLevel, allEntries[3].Level)
}
