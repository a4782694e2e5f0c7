package errors

import (
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr/funcr"
)

var errTest = stderrors.New("test failure")

func TestRecyclerErrorString(t *testing.T) {
	err := &RecyclerError{
		Op:       "recycler.Submit",
		Kind:     KindReentrant,
		Position: NoPosition,
		Err:      errTest,
	}
	want := "recycler.Submit [reentrant]: test failure"
	if got := err.Error(); got != want {
		t.Errorf("RecyclerError.Error() = %q, want %q", got, want)
	}
}

func TestRecyclerErrorWithPosition(t *testing.T) {
	err := &RecyclerError{
		Op:       "recycler.BindSlot",
		Kind:     KindContract,
		Position: 7,
		Err:      errTest,
	}
	got := err.Error()
	if !strings.Contains(got, "position=7") {
		t.Errorf("error string %q should contain %q", got, "position=7")
	}
	if !stderrors.Is(err, errTest) {
		t.Error("expected RecyclerError to unwrap to the underlying error")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindContract, "contract"},
		{KindReentrant, "reentrant"},
		{KindHook, "hook"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	want := "panic: test panic"
	if got := err.Error(); got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestPanicErrorStringWithOp(t *testing.T) {
	err := &PanicError{
		Op:    "recycler.BindSlot",
		Value: "test panic",
	}
	want := "panic in recycler.BindSlot: test panic"
	if got := err.Error(); got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var captured *RecyclerError
	handler := &testHandler{
		onError: func(err *RecyclerError) {
			captured = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	Report(&RecyclerError{
		Op:       "test.op",
		Kind:     KindContract,
		Position: NoPosition,
		Err:      errTest,
	})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportNil(t *testing.T) {
	called := false
	handler := &testHandler{
		onError: func(*RecyclerError) { called = true },
		onPanic: func(*PanicError) { called = true },
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	Report(nil)
	ReportPanic(nil)

	if called {
		t.Error("nil reports should not reach the handler")
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	handler := &testHandler{
		onPanic: func(err *PanicError) {
			captured = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", captured.Value, "intentional test panic")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
	if captured.StackTrace == "" {
		t.Error("expected a stack trace")
	}
}

func TestRecoverWithCallback(t *testing.T) {
	oldHandler := DefaultHandler
	SetHandler(&testHandler{})
	defer SetHandler(oldHandler)

	var got any
	func() {
		defer RecoverWithCallback("test.callback", func(r any) { got = r })
		panic(42)
	}()

	if got != 42 {
		t.Errorf("callback received %v, want 42", got)
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Fatal("expected non-empty stack trace")
	}
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	oldHandler := DefaultHandler
	defer SetHandler(oldHandler)

	SetHandler(nil)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandler(t *testing.T) {
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{})

	h := &LogHandler{Logger: logger}
	h.HandleError(&RecyclerError{
		Op:       "recycler.BindSlot",
		Kind:     KindContract,
		Position: 3,
		Err:      errTest,
	})
	h.HandlePanic(&PanicError{Op: "recycler.RecycleSlot", Value: "boom"})
	h.HandleError(nil)
	h.HandlePanic(nil)

	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %v", len(lines), lines)
	}
	for _, want := range []string{`"op"="recycler.BindSlot"`, `"position"=3`, `"error"="test failure"`} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("line %q should contain %q", lines[0], want)
		}
	}
	if !strings.Contains(lines[1], `"value"="boom"`) {
		t.Errorf("line %q should contain the panic value", lines[1])
	}
}

func TestLogHandlerVerboseIncludesStack(t *testing.T) {
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{})

	h := &LogHandler{Verbose: true, Logger: logger}
	h.HandlePanic(&PanicError{Value: "boom", StackTrace: "frame"})

	if len(lines) != 1 || !strings.Contains(lines[0], `"stack"="frame"`) {
		t.Errorf("expected stack in verbose output, got %v", lines)
	}
}

type testHandler struct {
	onError func(*RecyclerError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *RecyclerError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
