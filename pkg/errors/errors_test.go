package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	cause := errors.New("unexpected EOF")
	for _, tc := range []struct {
		err  *Error
		want string
	}{
		{New(ErrCodeInvalidPattern, "unknown filter specified: %s", "*"), "INVALID_PATTERN: unknown filter specified: *"},
		{Wrap(ErrCodeInvalidManifest, cause, "decode %s", "project.assets.json"), "INVALID_MANIFEST: decode project.assets.json: unexpected EOF"},
	} {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("Error() = %q, want %q", got, tc.want)
		}
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidManifest, cause, "decode")

	if errors.Unwrap(err) != cause || !errors.Is(err, cause) {
		t.Error("Wrap should expose its cause to errors.Unwrap and errors.Is")
	}
	var coded *Error
	if !errors.As(fmt.Errorf("project Web: %w", err), &coded) || coded.Code != ErrCodeInvalidManifest {
		t.Errorf("errors.As through fmt wrapping = %v", coded)
	}
}

func TestIs(t *testing.T) {
	nested := Wrap(ErrCodeExtractionFailed, New(ErrCodeInvalidIdentifier, "bad id"), "project Web")

	for _, tc := range []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"same code", New(ErrCodeInvalidSolution, "x"), ErrCodeInvalidSolution, true},
		{"other code", New(ErrCodeInvalidSolution, "x"), ErrCodeExtractionFailed, false},
		{"outer of chain", nested, ErrCodeExtractionFailed, true},
		{"inner of chain", nested, ErrCodeInvalidIdentifier, true},
		{"behind fmt", fmt.Errorf("solution a.sln: %w", New(ErrCodeInvalidSolution, "missing")), ErrCodeInvalidSolution, true},
		{"uncoded", errors.New("plain"), ErrCodeInvalidPattern, false},
		{"nil", nil, ErrCodeInvalidPattern, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := Is(tc.err, tc.code); got != tc.want {
				t.Errorf("Is(%v, %s) = %v, want %v", tc.err, tc.code, got, tc.want)
			}
		})
	}
}

func TestGetCodeIsOutermost(t *testing.T) {
	nested := Wrap(ErrCodeExtractionFailed, New(ErrCodePackageNotFound, "Serilog"), "project Web")
	if got := GetCode(nested); got != ErrCodeExtractionFailed {
		t.Errorf("GetCode(nested) = %s", got)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %s", got)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %s", got)
	}
}

func TestIsConfiguration(t *testing.T) {
	for _, tc := range []struct {
		err  error
		want bool
	}{
		{New(ErrCodeInvalidPattern, "x"), true},
		{New(ErrCodeInvalidSolution, "x"), true},
		{New(ErrCodeInvalidConfig, "x"), true},
		{fmt.Errorf("solution: %w", New(ErrCodeInvalidIdentifier, "x")), true},
		{New(ErrCodeExtractionFailed, "x"), false},
		{New(ErrCodePackageNotFound, "x"), false},
		{Wrap(ErrCodeExtractionFailed, New(ErrCodeInvalidIdentifier, "x"), "y"), false},
		{errors.New("x"), false},
	} {
		if got := IsConfiguration(tc.err); got != tc.want {
			t.Errorf("IsConfiguration(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestUserMessage(t *testing.T) {
	for _, tc := range []struct {
		err  error
		want string
	}{
		{New(ErrCodeInvalidSolution, "solution not found: a.sln"), "solution not found: a.sln"},
		{errors.New("disk full"), "disk full"},
		{Wrap(ErrCodeInvalidConfig, errors.New("line 3"), "parse sdv.toml"), "parse sdv.toml: line 3"},
		{Wrap(ErrCodeExtractionFailed, New(ErrCodePackageNotFound, "Serilog 3.1.0"), "project Web"), "project Web: Serilog 3.1.0"},
	} {
		if got := UserMessage(tc.err); got != tc.want {
			t.Errorf("UserMessage(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
