package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	cause := errors.New("unexpected EOF")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"formatted message", New(ErrCodeInvalidInput, "unknown mode: %s", "zigzag"), "INVALID_INPUT: unknown mode: zigzag"},
		{"with cause", Wrap(ErrCodeInvalidFormat, cause, "decode %s", "pattern"), "INVALID_FORMAT: decode pattern: unexpected EOF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeCache, cause, "redis ping")

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if UserMessage(err) != "redis ping" {
		t.Errorf("UserMessage() = %q, want the message without code or cause", UserMessage(err))
	}
}

func TestCodeLookup(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    Code
		userMsg string
	}{
		{"coded", New(ErrCodeFileNotFound, "no such file: g.json"), ErrCodeFileNotFound, "no such file: g.json"},
		{"outermost code wins", Wrap(ErrCodeCache, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeCache, "outer"},
		{"behind fmt.Errorf", fmt.Errorf("order: %w", New(ErrCodeUnsupported, "mode")), ErrCodeUnsupported, "mode"},
		{"plain error", errors.New("plain"), "", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(err, %q) = false", tt.code)
			}
			if Is(tt.err, ErrCodeInternal) {
				t.Error("Is(err, INTERNAL) = true for an unrelated code")
			}
			if got := UserMessage(tt.err); got != tt.userMsg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.userMsg)
			}
		})
	}

	if GetCode(nil) != "" || Is(nil, "") {
		t.Error("nil error should have no code")
	}
}

func TestCheckLimit(t *testing.T) {
	tests := []struct {
		name    string
		n, max  int
		wantErr bool
	}{
		{"under", 3, 5, false},
		{"equal", 5, 5, false},
		{"over", 6, 5, true},
		{"disabled", 1000, 0, false},
		{"negative max disables", 1000, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckLimit("pattern", tt.n, tt.max)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckLimit(%d, %d) error = %v, wantErr %v", tt.n, tt.max, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeLimitExceeded) {
				t.Errorf("CheckLimit() code = %v, want %v", GetCode(err), ErrCodeLimitExceeded)
			}
		})
	}
}

func TestCodeIsInput(t *testing.T) {
	tests := []struct {
		code Code
		want bool
	}{
		{ErrCodeInvalidInput, true},
		{ErrCodeInvalidFormat, true},
		{ErrCodeInvalidConfig, true},
		{ErrCodeNotFound, true},
		{ErrCodeFileNotFound, true},
		{ErrCodeLimitExceeded, true},
		{ErrCodeCache, false},
		{ErrCodeInternal, false},
		{ErrCodeUnsupported, false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.IsInput(); got != tt.want {
				t.Errorf("%q.IsInput() = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestSentinelSurvivesWrapping(t *testing.T) {
	sentinel := New(ErrCodeNotFound, "pattern not found")
	wrapped := fmt.Errorf("match: %w", New(ErrCodeNotFound, "pattern not found"))

	if !errors.Is(wrapped, sentinel) {
		t.Error("errors.Is should match an equal sentinel through fmt.Errorf")
	}
	if errors.Is(wrapped, New(ErrCodeNotFound, "other")) {
		t.Error("errors.Is should not match a different message")
	}
	if errors.Is(wrapped, New(ErrCodeInvalidInput, "pattern not found")) {
		t.Error("errors.Is should not match a different code")
	}
}
