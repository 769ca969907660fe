package cli

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestRegisterToggleFlagParsesValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		defaultValue bool
		arguments    []string
		expected     bool
		expectedArgs []string
		expectError  bool
	}{
		{
			name:         "defaults_to_false",
			defaultValue: false,
			arguments:    []string{},
			expected:     false,
		},
		{
			name:         "sets_true_without_value",
			defaultValue: false,
			arguments:    []string{"--print"},
			expected:     true,
		},
		{
			name:         "sets_false_with_equals",
			defaultValue: true,
			arguments:    []string{"--print=false"},
			expected:     false,
		},
		{
			name:         "sets_false_with_no_literal",
			defaultValue: true,
			arguments:    []string{"--print", "no"},
			expected:     false,
		},
		{
			name:         "keeps_following_path_positional",
			defaultValue: false,
			arguments:    []string{"--print", "./project"},
			expected:     true,
			expectedArgs: []string{"./project"},
		},
		{
			name:         "rejects_invalid_literal",
			defaultValue: false,
			arguments:    []string{"--print=maybe"},
			expectError:  true,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			command := &cobra.Command{Use: "toggle-test"}
			flagValue := !testCase.defaultValue
			registerToggleFlag(command.Flags(), &flagValue, "print", testCase.defaultValue, "print the tree")
			parseErr := command.ParseFlags(normalizeToggleFlagArguments(command, testCase.arguments))
			if testCase.expectError {
				if parseErr == nil {
					t.Fatalf("expected parse error for arguments %v", testCase.arguments)
				}
				return
			}
			if parseErr != nil {
				t.Fatalf("unexpected parse error: %v", parseErr)
			}
			if flagValue != testCase.expected {
				t.Fatalf("expected %t, got %t", testCase.expected, flagValue)
			}
			remaining := command.Flags().Args()
			if len(remaining) != len(testCase.expectedArgs) {
				t.Fatalf("expected positional arguments %v, got %v", testCase.expectedArgs, remaining)
			}
			for index := range remaining {
				if remaining[index] != testCase.expectedArgs[index] {
					t.Fatalf("expected positional arguments %v, got %v", testCase.expectedArgs, remaining)
				}
			}
		})
	}
}
