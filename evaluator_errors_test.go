package prefs

import (
	"errors"
	"testing"
)

func TestWrapEvaluationErrorCreatesMetadata(t *testing.T) {
	base := errors.New("boom")
	err := wrapEvaluationError("expr", "source - missing", "NUMBER_OF_SLICES->FIRST_SLICE_INDEX", base)

	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %T", err)
	}
	if evalErr.Engine != "expr" {
		t.Fatalf("expected engine expr, got %q", evalErr.Engine)
	}
	if evalErr.Expr != "source - missing" {
		t.Fatalf("expected expression metadata, got %q", evalErr.Expr)
	}
	if evalErr.Rule != "NUMBER_OF_SLICES->FIRST_SLICE_INDEX" {
		t.Fatalf("expected rule metadata, got %q", evalErr.Rule)
	}
	if !errors.Is(evalErr.Err, base) {
		t.Fatalf("wrapped error should unwrap to base error")
	}
}

func TestWrapEvaluationErrorAugmentsExisting(t *testing.T) {
	base := errors.New("compile failure")
	existing := &EvaluationError{
		Engine: "expr",
		Err:    base,
	}

	err := wrapEvaluationError("cel", "source - 1", "A->B", existing)
	if !errors.Is(err, base) {
		t.Fatalf("expected base error to unwrap")
	}
	if existing.Engine != "expr" {
		t.Fatalf("existing engine should not be overwritten, got %q", existing.Engine)
	}
	if existing.Expr != "source - 1" {
		t.Fatalf("expression should be filled, got %q", existing.Expr)
	}
	if existing.Rule != "A->B" {
		t.Fatalf("rule should be filled, got %q", existing.Rule)
	}
}

func TestWrapEvaluatorErrorKeepsPrefixedErrors(t *testing.T) {
	prefixed := errors.New("prefs: already wrapped")
	if got := wrapEvaluatorError("expr", prefixed); got != prefixed {
		t.Fatalf("expected prefixed error to pass through, got %v", got)
	}
	plain := errors.New("plain")
	got := wrapEvaluatorError("cel", plain)
	if !errors.Is(got, plain) {
		t.Fatalf("expected wrapped error to unwrap to plain")
	}
	if got.Error() != "prefs: cel evaluator: plain" {
		t.Fatalf("unexpected message %q", got.Error())
	}
	if wrapEvaluatorError("expr", nil) != nil {
		t.Fatalf("expected nil passthrough")
	}
}
