package payrollid

import (
	"context"
	"errors"
	"testing"
)

type stubScanner struct {
	max string
	err error
}

func (s *stubScanner) FindMaxTempPayrollID(_ context.Context, _ string) (string, error) {
	return s.max, s.err
}

func TestGenerator_Next_TakesMaxAcrossStores(t *testing.T) {
	t.Parallel()

	gen := NewGenerator(
		&stubScanner{max: "TEMP10620003"},
		&stubScanner{max: "TEMP10620007"},
		nil, nil,
	)

	id, err := gen.Next(context.Background(), 1062)
	if err != nil {
		t.Fatalf("Next returned error: %v", err)
	}
	if id != "TEMP10620008" {
		t.Fatalf("expected TEMP10620008, got %s", id)
	}
}

func TestGenerator_Next_EmptyStores(t *testing.T) {
	t.Parallel()

	gen := NewGenerator(&stubScanner{}, &stubScanner{}, nil, nil)

	id, err := gen.Next(context.Background(), 1062)
	if err != nil {
		t.Fatalf("Next returned error: %v", err)
	}
	if id != "TEMP10620001" {
		t.Fatalf("expected TEMP10620001, got %s", id)
	}
}

func TestGenerator_Next_IgnoresUnparseableSuffix(t *testing.T) {
	t.Parallel()

	gen := NewGenerator(
		&stubScanner{max: "TEMP1062XYZ"},
		&stubScanner{max: "TEMP10620002"},
		nil, nil,
	)

	id, err := gen.Next(context.Background(), 1062)
	if err != nil {
		t.Fatalf("Next returned error: %v", err)
	}
	if id != "TEMP10620003" {
		t.Fatalf("expected TEMP10620003, got %s", id)
	}
}

func TestGenerator_Next_NaturalWidthBeyondFourDigits(t *testing.T) {
	t.Parallel()

	gen := NewGenerator(
		&stubScanner{max: "TEMP106210000"},
		&stubScanner{},
		nil, nil,
	)

	id, err := gen.Next(context.Background(), 1062)
	if err != nil {
		t.Fatalf("Next returned error: %v", err)
	}
	if id != "TEMP106210001" {
		t.Fatalf("expected TEMP106210001, got %s", id)
	}
}

func TestGenerator_Next_StrictlyIncreasing(t *testing.T) {
	t.Parallel()

	employees := &stubScanner{}
	gen := NewGenerator(employees, &stubScanner{}, nil, nil)

	first, err := gen.Next(context.Background(), 42)
	if err != nil {
		t.Fatalf("Next returned error: %v", err)
	}
	// 採番された ID が永続化された状態を模す。
	employees.max = first

	second, err := gen.Next(context.Background(), 42)
	if err != nil {
		t.Fatalf("Next returned error: %v", err)
	}
	if first != "TEMP420001" || second != "TEMP420002" {
		t.Fatalf("expected consecutive ids, got %s then %s", first, second)
	}
}

func TestGenerator_Next_UpdatesCache(t *testing.T) {
	t.Parallel()

	cache := NewCache()
	gen := NewGenerator(&stubScanner{max: "TEMP10620004"}, &stubScanner{}, cache, nil)

	if _, err := gen.Next(context.Background(), 1062); err != nil {
		t.Fatalf("Next returned error: %v", err)
	}
	if got := cache.Get("TEMP1062"); got != 5 {
		t.Fatalf("expected cache value 5, got %d", got)
	}
}

func TestGenerator_Next_StoreError(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection refused")
	gen := NewGenerator(&stubScanner{}, &stubScanner{err: storeErr}, nil, nil)

	if _, err := gen.Next(context.Background(), 1062); !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestGenerator_WarmCache(t *testing.T) {
	t.Parallel()

	cache := NewCache()
	gen := NewGenerator(&stubScanner{max: "TEMP10620009"}, &stubScanner{}, cache, nil)

	if err := gen.WarmCache(context.Background(), []int32{1062, 0}); err != nil {
		t.Fatalf("WarmCache returned error: %v", err)
	}
	if got := cache.Get("TEMP1062"); got != 9 {
		t.Fatalf("expected warmed value 9, got %d", got)
	}
	if got := cache.Get("TEMP0"); got != 0 {
		t.Fatalf("expected zero-code campus to be skipped, got %d", got)
	}
}
