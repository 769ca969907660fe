package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	toggleFlagTypeName        = "toggle"
	toggleFlagTrueLiteral     = "true"
	toggleFlagAcceptedListing = "true, false, yes, no, on, off, 1, 0"
	toggleFlagInvalidFormat   = "invalid value %q for --%s; accepted values: %s"
)

var toggleFlagLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// toggleFlagValue is a boolean flag that accepts yes/no style literals and may be given bare.
type toggleFlagValue struct {
	target   *bool
	flagName string
}

func (value *toggleFlagValue) Set(input string) error {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = toggleFlagTrueLiteral
	}
	parsed, ok := toggleFlagLiterals[normalized]
	if !ok {
		return fmt.Errorf(toggleFlagInvalidFormat, input, value.flagName, toggleFlagAcceptedListing)
	}
	*value.target = parsed
	return nil
}

func (value *toggleFlagValue) String() string {
	if value == nil || value.target == nil {
		return "false"
	}
	return strconv.FormatBool(*value.target)
}

func (value *toggleFlagValue) Type() string {
	return toggleFlagTypeName
}

// registerToggleFlag adds a toggle flag to flagSet bound to target.
func registerToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	if flagSet == nil || target == nil {
		return
	}
	*target = defaultValue
	flagSet.Var(&toggleFlagValue{target: target, flagName: name}, name, usage)
	if lookup := flagSet.Lookup(name); lookup != nil {
		lookup.DefValue = strconv.FormatBool(defaultValue)
		lookup.NoOptDefVal = toggleFlagTrueLiteral
	}
}

// normalizeToggleFlagArguments rewrites "--flag literal" into "--flag=literal" for toggle flags
// so that a following yes/no literal is not mistaken for a positional path.
func normalizeToggleFlagArguments(command *cobra.Command, arguments []string) []string {
	toggleFlags := map[string]struct{}{}
	collectToggleFlagNames(command, toggleFlags)
	if len(toggleFlags) == 0 {
		return arguments
	}
	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		currentArgument := arguments[index]
		if currentArgument == "--" {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		flagName := strings.TrimPrefix(currentArgument, "--")
		_, isToggle := toggleFlags[flagName]
		if isToggle && strings.HasPrefix(currentArgument, "--") && index+1 < len(arguments) {
			literal := strings.ToLower(strings.TrimSpace(arguments[index+1]))
			if _, valid := toggleFlagLiterals[literal]; valid {
				normalized = append(normalized, "--"+flagName+"="+arguments[index+1])
				index++
				continue
			}
		}
		normalized = append(normalized, currentArgument)
	}
	return normalized
}

func collectToggleFlagNames(command *cobra.Command, target map[string]struct{}) {
	if command == nil {
		return
	}
	visit := func(flag *pflag.Flag) {
		if flag.Value != nil && flag.Value.Type() == toggleFlagTypeName {
			target[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(visit)
	command.Flags().VisitAll(visit)
	for _, child := range command.Commands() {
		collectToggleFlagNames(child, target)
	}
}
