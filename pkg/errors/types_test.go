package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeGeometryRange, "layout holds at most 8 widgets")

	if err == nil {
		t.Fatal("New should return non-nil error")
	}

	if err.Code != ErrCodeGeometryRange {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeGeometryRange)
	}

	if err.Message != "layout holds at most 8 widgets" {
		t.Errorf("Message = %v", err.Message)
	}

	if err.Underlying != nil {
		t.Error("Underlying should be nil for New error")
	}

	if len(err.Stack) == 0 {
		t.Error("Stack should be captured")
	}
}

func TestNewf(t *testing.T) {
	err := Newf(ErrCodeScreenNotFound, "screen %d not saved", 4)
	if err.Message != "screen 4 not saved" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestWrap(t *testing.T) {
	underlying := errors.New("cell outside region")
	err := Wrap(underlying, ErrCodeBackendFailure, "draw failed")

	if err == nil {
		t.Fatal("Wrap should return non-nil error")
	}

	if err.Underlying != underlying {
		t.Error("Underlying should be preserved")
	}

	if !strings.Contains(err.Error(), "cell outside region") {
		t.Error("Error string should include underlying error")
	}

	if !errors.Is(err, underlying) {
		t.Error("errors.Is should see the underlying error")
	}
}

func TestWrap_Nil(t *testing.T) {
	if err := Wrap(nil, ErrCodeInternal, "test"); err != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestError_ContextIsSorted(t *testing.T) {
	err := New(ErrCodeBackendFailure, "print outside region").
		WithContext("row", 4).
		WithContext("col", 2)

	want := "[BACKEND_FAILURE] print outside region {col: 2, row: 4}"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsCode(t *testing.T) {
	inner := New(ErrCodeStaleReference, "draw before bind")
	outer := Wrap(inner, ErrCodeBackendFailure, "layout draw")
	wrapped := fmt.Errorf("driver: %w", outer)

	tests := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{"nil", nil, ErrCodeInternal, false},
		{"plain error", errors.New("x"), ErrCodeInternal, false},
		{"direct", inner, ErrCodeStaleReference, true},
		{"outer code", outer, ErrCodeBackendFailure, true},
		{"inner code through wrap", outer, ErrCodeStaleReference, true},
		{"through fmt wrap", wrapped, ErrCodeStaleReference, true},
		{"absent", outer, ErrCodeGeometryRange, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCode(tt.err, tt.code); got != tt.want {
				t.Errorf("IsCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %q, want empty", got)
	}
	if got := GetCode(errors.New("plain")); got != ErrCodeInternal {
		t.Errorf("GetCode(plain) = %q, want INTERNAL", got)
	}
	err := fmt.Errorf("ctx: %w", New(ErrCodeConfigInvalid, "bad key"))
	if got := GetCode(err); got != ErrCodeConfigInvalid {
		t.Errorf("GetCode() = %q, want CONFIG_INVALID", got)
	}
}

func TestStackTrace(t *testing.T) {
	err := New(ErrCodeInternal, "boom")
	trace := err.StackTrace()
	if !strings.HasPrefix(trace, "Stack trace:\n") {
		t.Errorf("unexpected trace header: %q", trace)
	}
	if !strings.Contains(trace, "TestStackTrace") {
		t.Error("trace should include the calling test")
	}
}

func TestStackStartsAtCaller(t *testing.T) {
	for name, err := range map[string]*Error{
		"New":  New(ErrCodeInternal, "boom"),
		"Newf": Newf(ErrCodeInternal, "boom %d", 1),
		"Wrap": Wrap(fmt.Errorf("cause"), ErrCodeInternal, "boom"),
	} {
		if len(err.Stack) == 0 {
			t.Fatalf("%s: empty stack", name)
		}
		if got := err.Stack[0].Function; !strings.HasSuffix(got, ".TestStackStartsAtCaller") {
			t.Errorf("%s: first frame = %q, want the calling test", name, got)
		}
		if !strings.HasSuffix(err.Stack[0].File, "types_test.go") {
			t.Errorf("%s: first frame file = %q", name, err.Stack[0].File)
		}
	}
}
