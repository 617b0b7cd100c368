package confirm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/studytracker/studyctl/pkg/cli/ui/confirm"
	"github.com/stretchr/testify/require"
)

//nolint:paralleltest,tparallel // Subtests cannot run in parallel - they share stdin and TTY state
func TestConfirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"y_confirms", "y\n", true},
		{"yes_confirms", "yes\n", true},
		{"yes_uppercase_confirms", "YES\n", true},
		{"n_denies", "n\n", false},
		{"no_denies", "no\n", false},
		{"empty_denies", "\n", false},
		{"random_text_denies", "maybe\n", false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			restoreTTY := confirm.SetTTYCheckerForTests(func() bool { return true })
			defer restoreTTY()

			restoreStdin := confirm.SetStdinReaderForTests(strings.NewReader(testCase.input))
			defer restoreStdin()

			var buf bytes.Buffer

			prompter := confirm.NewStdinPrompter()
			result := prompter.Confirm(&buf, "Delete and recreate cluster?")

			require.Equal(t, testCase.expected, result)
			require.Contains(t, buf.String(), "Delete and recreate cluster?")
		})
	}
}

//nolint:paralleltest // Shares TTY checker state
func TestConfirm_NonTTYDeclines(t *testing.T) {
	restoreTTY := confirm.SetTTYCheckerForTests(func() bool { return false })
	defer restoreTTY()

	var buf bytes.Buffer

	prompter := confirm.NewStdinPrompter()
	require.False(t, prompter.Confirm(&buf, "Delete and recreate cluster?"))
	require.Empty(t, buf.String())
}
