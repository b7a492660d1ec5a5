package checker

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/temirov/checkup/internal/discovery"
	"github.com/temirov/checkup/internal/execshell"
	"github.com/temirov/checkup/internal/homecheck"
	"github.com/temirov/checkup/internal/notify"
	"github.com/temirov/checkup/internal/repostatus"
	"github.com/temirov/checkup/internal/utils"
	flagutils "github.com/temirov/checkup/internal/utils/flags"
	pathutils "github.com/temirov/checkup/internal/utils/path"
)

const (
	commandUseConstant   = "check"
	commandShortConstant = "Audit git repositories and the home directory"
	commandLongConstant  = "check finds dirty and unpushed git repositories beneath a root directory and unwanted files in the home directory, then prints and/or emails the combined report."

	rootFlagNameConstant         = "root"
	rootFlagUsageConstant        = "Directory beneath which to check recursively for git repositories."
	reportFlagNameConstant       = "report"
	reportFlagDescriptionConstant = "report destination"
	checkGitFlagNameConstant     = "check-git"
	checkGitFlagUsageConstant    = "check git repositories for uncommitted files and unpushed branches"
	checkHomeFlagNameConstant    = "check-home"
	checkHomeFlagUsageConstant   = "check home directory contents against the allow-list policy"
	policyFileFlagNameConstant   = "policy-file"
	policyFileFlagUsageConstant  = "Path to a standalone YAML allow-list policy for the home check."
	printConfigFlagNameConstant  = "print-config"
	printConfigFlagUsageConstant = "Print the effective configuration before running."

	notifyPasswordEnvironmentVariableConstant = "CHECKUP_NOTIFY_PASSWORD"

	printConfigHeaderConstant                  = "Configuration:"
	configurationFileLineTemplateConstant      = "Configuration file: %s\n"
	configurationRenderFailureTemplateConstant = "unable to render configuration: %w"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the resolved command configuration.
type ConfigurationProvider func() CommandConfiguration

// StatusFlagsReceiver observes the status flags a completed run produced so
// the process can exit with them.
type StatusFlagsReceiver func(statusFlags StatusFlags)

// NotifyPasswordProvider supplies the SMTP password. The default reads the
// CHECKUP_NOTIFY_PASSWORD environment variable so the secret never lives in
// the configuration file.
type NotifyPasswordProvider func() string

// CommandBuilder assembles the check cobra command with configurable
// dependencies. Unset dependencies resolve to their production
// implementations.
type CommandBuilder struct {
	LoggerProvider         LoggerProvider
	ConfigurationProvider  ConfigurationProvider
	StatusFlagsReceiver    StatusFlagsReceiver
	NotifyPasswordProvider NotifyPasswordProvider
	Discoverer             RepositoryDiscoverer
	Scanner                RepositoryScanner
	HomeChecker            HomePolicyChecker
	Notifier               notify.Notifier
	GitExecutor            repostatus.GitExecutor
	CommandEventsObserver  execshell.CommandEventObserver
	HomeExpander           *pathutils.HomeExpander

	rootFlagValue        string
	reportFlagValue      string
	checkGitFlagValue    bool
	checkHomeFlagValue   bool
	policyFileFlagValue  string
	printConfigFlagValue bool
}

// Build constructs the cobra command for checkup runs.
func (builder *CommandBuilder) Build() *cobra.Command {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortConstant,
		Long:  commandLongConstant,
		RunE:  builder.run,
	}

	command.Flags().StringVar(&builder.rootFlagValue, rootFlagNameConstant, "", rootFlagUsageConstant)
	command.Flags().StringVar(
		&builder.reportFlagValue,
		reportFlagNameConstant,
		string(ReportModePrint),
		flagutils.FormatChoiceUsage(string(ReportModePrint), ReportModeChoices, reportFlagDescriptionConstant),
	)
	flagutils.AddToggleFlag(command.Flags(), &builder.checkGitFlagValue, checkGitFlagNameConstant, true, checkGitFlagUsageConstant)
	flagutils.AddToggleFlag(command.Flags(), &builder.checkHomeFlagValue, checkHomeFlagNameConstant, true, checkHomeFlagUsageConstant)
	command.Flags().StringVar(&builder.policyFileFlagValue, policyFileFlagNameConstant, "", policyFileFlagUsageConstant)
	command.Flags().BoolVar(&builder.printConfigFlagValue, printConfigFlagNameConstant, false, printConfigFlagUsageConstant)

	return command
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()

	if builder.printConfigFlagValue {
		if printError := builder.printConfiguration(command, configuration); printError != nil {
			return printError
		}
	}

	options, optionsError := builder.resolveOptions(command, configuration)
	if optionsError != nil {
		return optionsError
	}

	scanner, scannerError := builder.resolveScanner(configuration, logger)
	if scannerError != nil {
		return scannerError
	}

	service := NewService(
		builder.resolveDiscoverer(configuration),
		scanner,
		builder.resolveHomeChecker(),
		builder.resolveNotifier(configuration, options.ReportMode),
		logger,
		command.OutOrStdout(),
	)

	statusFlags, runError := service.Run(command.Context(), options)
	if runError != nil {
		return runError
	}

	if builder.StatusFlagsReceiver != nil {
		builder.StatusFlagsReceiver(statusFlags)
	}
	return nil
}

func (builder *CommandBuilder) resolveOptions(command *cobra.Command, configuration CommandConfiguration) (CommandOptions, error) {
	reportMode, reportModeError := ParseReportMode(builder.reportFlagValue)
	if reportModeError != nil {
		return CommandOptions{}, reportModeError
	}

	checkGit := configuration.Checks.Git.Enabled
	if command.Flags().Changed(checkGitFlagNameConstant) {
		checkGit = builder.checkGitFlagValue
	}
	checkHome := configuration.Checks.Home.Enabled
	if command.Flags().Changed(checkHomeFlagNameConstant) {
		checkHome = builder.checkHomeFlagValue
	}

	gitRoot := configuration.Checks.Git.Root
	if command.Flags().Changed(rootFlagNameConstant) {
		gitRoot = builder.rootFlagValue
	}
	gitRoot = builder.resolveHomeExpander().Expand(gitRoot)

	allowPolicy, policyError := builder.resolveAllowPolicy(command, configuration)
	if policyError != nil {
		return CommandOptions{}, policyError
	}

	options := CommandOptions{
		GitRoot:     gitRoot,
		ReportMode:  reportMode,
		CheckGit:    checkGit,
		CheckHome:   checkHome,
		AllowPolicy: allowPolicy,
	}
	return options, nil
}

func (builder *CommandBuilder) resolveAllowPolicy(command *cobra.Command, configuration CommandConfiguration) (homecheck.AllowPolicy, error) {
	policyFilePath := configuration.Checks.Home.PolicyFile
	if command.Flags().Changed(policyFileFlagNameConstant) {
		policyFilePath = builder.policyFileFlagValue
	}

	if len(policyFilePath) > 0 {
		return homecheck.LoadPolicyDocument(builder.resolveHomeExpander().Expand(policyFilePath))
	}

	return homecheck.AllowPolicy{
		NoLookNames:        configuration.Checks.Home.NoLook,
		LookSubdirectories: configuration.Checks.Home.Look,
	}, nil
}

func (builder *CommandBuilder) printConfiguration(command *cobra.Command, configuration CommandConfiguration) error {
	renderedConfiguration, renderError := yaml.Marshal(configuration)
	if renderError != nil {
		return fmt.Errorf(configurationRenderFailureTemplateConstant, renderError)
	}
	contextAccessor := utils.NewCommandContextAccessor()
	if configurationFilePath, pathAvailable := contextAccessor.ConfigurationFilePath(command.Context()); pathAvailable && len(configurationFilePath) > 0 {
		fmt.Fprintf(command.OutOrStdout(), configurationFileLineTemplateConstant, configurationFilePath)
	}
	fmt.Fprintln(command.OutOrStdout(), printConfigHeaderConstant)
	fmt.Fprintln(command.OutOrStdout(), string(renderedConfiguration))
	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return CommandConfiguration{}
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveHomeExpander() *pathutils.HomeExpander {
	if builder.HomeExpander != nil {
		return builder.HomeExpander
	}
	return pathutils.NewHomeExpander()
}

func (builder *CommandBuilder) resolveDiscoverer(configuration CommandConfiguration) RepositoryDiscoverer {
	if builder.Discoverer != nil {
		return builder.Discoverer
	}
	return discovery.NewFilesystemRepositoryDiscoverer(configuration.Checks.Git.Excludes)
}

func (builder *CommandBuilder) resolveScanner(configuration CommandConfiguration, logger *zap.Logger) (RepositoryScanner, error) {
	if builder.Scanner != nil {
		return builder.Scanner, nil
	}

	gitExecutor := builder.GitExecutor
	if gitExecutor == nil {
		shellExecutor, executorError := execshell.NewShellExecutorWithObserver(logger, execshell.NewOSCommandRunner(), builder.CommandEventsObserver)
		if executorError != nil {
			return nil, executorError
		}
		gitExecutor = shellExecutor
	}

	probe := repostatus.NewProbe(gitExecutor, logger)
	probeTimeout := time.Duration(configuration.Checks.Git.ProbeTimeoutSeconds) * time.Second
	return repostatus.NewConcurrentScanner(probe, configuration.Checks.Git.Workers, probeTimeout), nil
}

func (builder *CommandBuilder) resolveHomeChecker() HomePolicyChecker {
	if builder.HomeChecker != nil {
		return builder.HomeChecker
	}
	return homecheck.NewChecker()
}

func (builder *CommandBuilder) resolveNotifier(configuration CommandConfiguration, reportMode ReportMode) notify.Notifier {
	if builder.Notifier != nil {
		return builder.Notifier
	}
	if !reportMode.IncludesEmail() || len(configuration.Notify.Host) == 0 {
		return nil
	}

	passwordProvider := builder.NotifyPasswordProvider
	if passwordProvider == nil {
		passwordProvider = func() string { return os.Getenv(notifyPasswordEnvironmentVariableConstant) }
	}
	return notify.NewSMTPNotifier(configuration.Notify, passwordProvider())
}
