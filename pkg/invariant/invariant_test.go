package invariant_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/yaklabco/rsfmt/pkg/invariant"
)

func TestAssert(t *testing.T) {
	t.Parallel()

	t.Run("passes when condition holds", func(t *testing.T) {
		t.Parallel()

		var err error
		func() {
			defer invariant.Recover(&err)
			invariant.Assert(true, "never")
		}()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("recovers violation with context", func(t *testing.T) {
		t.Parallel()

		var err error
		func() {
			defer invariant.Recover(&err)
			invariant.Assert(false, "bad span", "start", 4, "end", 2)
		}()
		if err == nil {
			t.Fatal("expected error")
		}
		if !errors.Is(err, invariant.ErrViolation) {
			t.Errorf("expected ErrViolation, got %v", err)
		}
		want := "bad span (end=2, start=4)"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()

		var err error
		func() {
			defer invariant.Recover(&err)
			invariant.Unreachable("kind", "weird")
		}()
		var v *invariant.Violation
		if !errors.As(err, &v) {
			t.Fatalf("expected *Violation, got %T", err)
		}
		if v.Context["kind"] != "weird" {
			t.Errorf("context kind = %v", v.Context["kind"])
		}
	})
}

func TestRecoverRepanicsForeignValues(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("expected re-panic with boom, got %v", r)
		}
	}()

	var err error
	func() {
		defer invariant.Recover(&err)
		panic("boom")
	}()
}

func TestSpliceOnce(t *testing.T) {
	t.Parallel()

	items := []string{"a", "b", "c"}
	got := invariant.SpliceOnce(items, "b")
	if !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("SpliceOnce = %v", got)
	}

	tests := []struct {
		name  string
		items []string
	}{
		{"missing", []string{"a", "c"}},
		{"duplicated", []string{"b", "a", "b"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var err error
			func() {
				defer invariant.Recover(&err)
				invariant.SpliceOnce(testCase.items, "b")
			}()
			if !errors.Is(err, invariant.ErrViolation) {
				t.Errorf("expected violation, got %v", err)
			}
		})
	}
}

func TestReplaceOnce(t *testing.T) {
	t.Parallel()

	got := invariant.ReplaceOnce([]int{1, 2, 3}, 2, 7, 8)
	if !slices.Equal(got, []int{1, 7, 8, 3}) {
		t.Errorf("ReplaceOnce = %v", got)
	}

	var err error
	func() {
		defer invariant.Recover(&err)
		invariant.ReplaceOnce([]int{1, 2, 2}, 2)
	}()
	if err == nil {
		t.Error("expected violation for duplicated target")
	}
}
