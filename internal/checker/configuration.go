package checker

import (
	"github.com/temirov/checkup/internal/discovery"
	"github.com/temirov/checkup/internal/notify"
)

// Configuration keys relative to the prefix handed to
// DefaultConfigurationValues.
const (
	gitEnabledConfigKeyConstant          = "checks.git.enabled"
	gitRootConfigKeyConstant             = "checks.git.root"
	gitExcludesConfigKeyConstant         = "checks.git.excludes"
	gitWorkersConfigKeyConstant          = "checks.git.workers"
	gitProbeTimeoutConfigKeyConstant     = "checks.git.probe_timeout_seconds"
	homeEnabledConfigKeyConstant         = "checks.home.enabled"
	configurationKeySeparatorConstant    = "."
	defaultGitRootConstant               = "~"
	defaultProbeTimeoutSecondsConstant   = 60
)

// CommandConfiguration mirrors the persisted configuration for the check
// command.
type CommandConfiguration struct {
	Checks ChecksConfiguration       `mapstructure:"checks" yaml:"checks"`
	Notify notify.SMTPConfiguration  `mapstructure:"notify" yaml:"notify"`
}

// ChecksConfiguration groups the two independent scans.
type ChecksConfiguration struct {
	Git  GitCheckConfiguration  `mapstructure:"git" yaml:"git"`
	Home HomeCheckConfiguration `mapstructure:"home" yaml:"home"`
}

// GitCheckConfiguration configures repository discovery and scanning.
type GitCheckConfiguration struct {
	Enabled             bool     `mapstructure:"enabled" yaml:"enabled"`
	Root                string   `mapstructure:"root" yaml:"root"`
	Excludes            []string `mapstructure:"excludes" yaml:"excludes"`
	Workers             int      `mapstructure:"workers" yaml:"workers"`
	ProbeTimeoutSeconds int      `mapstructure:"probe_timeout_seconds" yaml:"probe_timeout_seconds"`
}

// HomeCheckConfiguration configures the home directory audit. The allow-list
// may live inline in the configuration file or in a standalone policy file;
// PolicyFile wins when both are present.
type HomeCheckConfiguration struct {
	Enabled    bool                `mapstructure:"enabled" yaml:"enabled"`
	PolicyFile string              `mapstructure:"policy_file" yaml:"policy_file"`
	NoLook     []string            `mapstructure:"no_look" yaml:"no_look"`
	Look       map[string][]string `mapstructure:"look" yaml:"look"`
}

// DefaultConfigurationValues exposes configuration defaults registered with
// the application's configuration loader. The prefix positions the keys
// inside the application's configuration tree.
func DefaultConfigurationValues(prefix string) map[string]any {
	keyFor := func(relativeKey string) string {
		if len(prefix) == 0 {
			return relativeKey
		}
		return prefix + configurationKeySeparatorConstant + relativeKey
	}

	return map[string]any{
		keyFor(gitEnabledConfigKeyConstant):      true,
		keyFor(gitRootConfigKeyConstant):         defaultGitRootConstant,
		keyFor(gitExcludesConfigKeyConstant):     append([]string{}, discovery.DefaultExcludedSegments...),
		keyFor(gitWorkersConfigKeyConstant):      0,
		keyFor(gitProbeTimeoutConfigKeyConstant): defaultProbeTimeoutSecondsConstant,
		keyFor(homeEnabledConfigKeyConstant):     true,
	}
}
