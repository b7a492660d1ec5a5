package homecheck

import (
	"fmt"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

const (
	policyReadFailureTemplateConstant   = "unable to read policy file %s: %w"
	policyParseFailureTemplateConstant  = "unable to parse policy file %s: %w"
	policyDecodeFailureTemplateConstant = "unable to decode policy file %s: %w"
)

// AllowPolicy names the home entries permitted to exist. NoLookNames are
// top-level entries accepted without inspection. LookSubdirectories maps a
// top-level entry that must itself be inspected to the entry names permitted
// inside it.
type AllowPolicy struct {
	NoLookNames        []string            `mapstructure:"no_look" yaml:"no_look"`
	LookSubdirectories map[string][]string `mapstructure:"look" yaml:"look"`
}

// LoadPolicyDocument reads an allow-list policy from a standalone YAML file.
func LoadPolicyDocument(policyFilePath string) (AllowPolicy, error) {
	policyContents, readError := os.ReadFile(policyFilePath)
	if readError != nil {
		return AllowPolicy{}, fmt.Errorf(policyReadFailureTemplateConstant, policyFilePath, readError)
	}

	var rawPolicyDocument map[string]any
	if parseError := yaml.Unmarshal(policyContents, &rawPolicyDocument); parseError != nil {
		return AllowPolicy{}, fmt.Errorf(policyParseFailureTemplateConstant, policyFilePath, parseError)
	}

	var allowPolicy AllowPolicy
	if decodeError := mapstructure.Decode(rawPolicyDocument, &allowPolicy); decodeError != nil {
		return AllowPolicy{}, fmt.Errorf(policyDecodeFailureTemplateConstant, policyFilePath, decodeError)
	}
	return allowPolicy, nil
}
