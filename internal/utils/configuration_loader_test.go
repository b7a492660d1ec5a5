package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/checkup/internal/utils"
)

const (
	testConfigurationNameConstant     = "config"
	testConfigurationTypeConstant     = "yaml"
	testEnvironmentPrefixConstant     = "CHECKUPTEST"
	testConfigurationContentConstant  = "common:\n  log_level: debug\nchecks:\n  git:\n    root: /srv/code\n"
	testEmbeddedConfigurationConstant = "common:\n  log_level: warn\n  log_format: console\n"
)

type testConfigurationSchema struct {
	Common struct {
		LogLevel  string `mapstructure:"log_level"`
		LogFormat string `mapstructure:"log_format"`
	} `mapstructure:"common"`
	Checks struct {
		Git struct {
			Root string `mapstructure:"root"`
		} `mapstructure:"git"`
	} `mapstructure:"checks"`
}

func writeTemporaryConfiguration(testInstance *testing.T, content string) string {
	testInstance.Helper()
	configurationPath := filepath.Join(testInstance.TempDir(), "config.yaml")
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(content), 0o600))
	return configurationPath
}

func TestConfigurationLoaderLoadConfiguration(testInstance *testing.T) {
	testCases := []struct {
		name              string
		embeddedContent   string
		fileContent       string
		defaultValues     map[string]any
		expectedLogLevel  string
		expectedLogFormat string
		expectedRoot      string
	}{
		{
			name:             "file_overrides_defaults",
			fileContent:      testConfigurationContentConstant,
			defaultValues:    map[string]any{"common.log_level": "info", "common.log_format": "structured"},
			expectedLogLevel: "debug", expectedLogFormat: "structured", expectedRoot: "/srv/code",
		},
		{
			name:             "embedded_defaults_apply_without_file",
			embeddedContent:  testEmbeddedConfigurationConstant,
			expectedLogLevel: "warn", expectedLogFormat: "console",
		},
		{
			name:             "file_overrides_embedded",
			embeddedContent:  testEmbeddedConfigurationConstant,
			fileContent:      testConfigurationContentConstant,
			expectedLogLevel: "debug", expectedLogFormat: "console", expectedRoot: "/srv/code",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			loader := utils.NewConfigurationLoader(
				testConfigurationNameConstant,
				testConfigurationTypeConstant,
				testEnvironmentPrefixConstant,
				nil,
			)
			if len(testCase.embeddedContent) > 0 {
				loader.SetEmbeddedConfiguration([]byte(testCase.embeddedContent), testConfigurationTypeConstant)
			}

			configurationFilePath := ""
			if len(testCase.fileContent) > 0 {
				configurationFilePath = writeTemporaryConfiguration(testInstance, testCase.fileContent)
			}

			var loadedSchema testConfigurationSchema
			metadata, loadError := loader.LoadConfiguration(configurationFilePath, testCase.defaultValues, &loadedSchema)
			require.NoError(testInstance, loadError)

			require.Equal(testInstance, testCase.expectedLogLevel, loadedSchema.Common.LogLevel)
			require.Equal(testInstance, testCase.expectedLogFormat, loadedSchema.Common.LogFormat)
			require.Equal(testInstance, testCase.expectedRoot, loadedSchema.Checks.Git.Root)
			if len(configurationFilePath) > 0 {
				require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
			}
		})
	}
}

func TestConfigurationLoaderRejectsMalformedFile(testInstance *testing.T) {
	loader := utils.NewConfigurationLoader(
		testConfigurationNameConstant,
		testConfigurationTypeConstant,
		testEnvironmentPrefixConstant,
		nil,
	)

	configurationFilePath := writeTemporaryConfiguration(testInstance, "common: [unbalanced")

	var loadedSchema testConfigurationSchema
	_, loadError := loader.LoadConfiguration(configurationFilePath, nil, &loadedSchema)
	require.Error(testInstance, loadError)
}
