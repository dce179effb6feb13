package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/julianstephens/habitlit/internal/keyring"
	"github.com/julianstephens/habitlit/internal/storage"
	"github.com/julianstephens/habitlit/internal/storage/postgres"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("habit \"Read\" not found"),
			expected: "Error: habit \"Read\" not found",
		},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("failed to load completions: %w", errors.New("database is locked")),
			expected: "Error: failed to load completions: database is locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Format(tt.err); result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "unknown", err: errors.New("disk full"), want: ""},
		{name: "not initialized", err: fmt.Errorf("%w, run 'habitlit init' first", storage.ErrNotInitialized), want: "init"},
		{name: "wrapped not found", err: fmt.Errorf("habit 7: %w", storage.ErrNotFound), want: "habit list --all"},
		{name: "keyring empty", err: fmt.Errorf("no connection string: %w", keyring.ErrNotFound), want: "config set-connection"},
		{name: "keyring unavailable", err: keyring.ErrKeyringUnavailable, want: "HABITLIT_DB_CONNECTION"},
		{name: "bad dsn", err: postgres.ErrInvalidConnectionString, want: "postgres://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hint(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("Hint() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Hint() = %q, want it to mention %q", got, tt.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe(errors.New("disk full")); got != "Error: disk full" {
		t.Errorf("Describe() = %q", got)
	}
	got := Describe(fmt.Errorf("goal abc: %w", storage.ErrNotFound))
	lines := strings.Split(got, "\n")
	if len(lines) != 2 || lines[0] != "Error: goal abc: not found" {
		t.Errorf("Describe() = %q", got)
	}
}

func TestWithHint(t *testing.T) {
	err := errors.New("connection refused")

	if got := WithHint(nil, "ignored"); got != "" {
		t.Errorf("WithHint(nil) = %q, want empty", got)
	}
	if got := WithHint(err, ""); got != "Error: connection refused" {
		t.Errorf("WithHint(err, \"\") = %q", got)
	}
	got := WithHint(err, "run 'habitlit init' first")
	if !strings.HasPrefix(got, "Error: connection refused\n") || !strings.HasSuffix(got, "run 'habitlit init' first") {
		t.Errorf("WithHint() = %q", got)
	}
}

// TestFatal runs Fatal in a subprocess and checks the exit code and stderr.
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(fmt.Errorf("%w, run 'habitlit init' first", storage.ErrNotInitialized))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: storage not initialized") {
			t.Errorf("Fatal() stderr = %q, want the error", stderr.String())
		}
		if !strings.Contains(stderr.String(), "habitlit init'.") {
			t.Errorf("Fatal() stderr = %q, want the init hint", stderr.String())
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")

	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
