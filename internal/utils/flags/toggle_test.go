package flags_test

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/temirov/checkup/internal/utils/flags"
)

const testToggleFlagNameConstant = "check-git"

func TestAddToggleFlagParsesLiterals(testInstance *testing.T) {
	testCases := []struct {
		name          string
		arguments     []string
		defaultValue  bool
		expectedValue bool
		expectError   bool
	}{
		{name: "default_preserved", arguments: nil, defaultValue: true, expectedValue: true},
		{name: "bare_flag_enables", arguments: []string{"--check-git"}, defaultValue: false, expectedValue: true},
		{name: "no_literal_disables", arguments: []string{"--check-git=no"}, defaultValue: true, expectedValue: false},
		{name: "yes_literal_enables", arguments: []string{"--check-git=yes"}, defaultValue: false, expectedValue: true},
		{name: "off_literal_disables", arguments: []string{"--check-git=off"}, defaultValue: true, expectedValue: false},
		{name: "numeric_literal_enables", arguments: []string{"--check-git=1"}, defaultValue: false, expectedValue: true},
		{name: "invalid_literal_rejected", arguments: []string{"--check-git=sometimes"}, defaultValue: true, expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			flagSet := pflag.NewFlagSet("checkup", pflag.ContinueOnError)
			var toggleTarget bool
			flags.AddToggleFlag(flagSet, &toggleTarget, testToggleFlagNameConstant, testCase.defaultValue, "run the git repository check")

			parseError := flagSet.Parse(testCase.arguments)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedValue, toggleTarget)
		})
	}
}
