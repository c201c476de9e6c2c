package task

import (
	"sync/atomic"
	"testing"
)

func TestCreateDestroyRunsOnce(t *testing.T) {
	var ran int32
	tk := Create(func(arg any) {
		atomic.AddInt32(&ran, int32(arg.(int)))
	}, 7)
	tk.Destroy()
	if got := atomic.LoadInt32(&ran); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
}

func TestRunAllJoinsEveryWorker(t *testing.T) {
	const n = 50
	var total atomic.Int64
	args := make([]any, n)
	for i := range args {
		args[i] = i
	}
	RunAll(func(arg any) {
		total.Add(int64(arg.(int)))
	}, args)
	var want int64
	for i := 0; i < n; i++ {
		want += int64(i)
	}
	if got := total.Load(); got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestRunAllSingleArgRunsInline(t *testing.T) {
	called := false
	RunAll(func(arg any) { called = true }, []any{1})
	if !called {
		t.Fatal("fn was never called")
	}
}

func TestRunAllEmptyIsNoop(t *testing.T) {
	RunAll(func(arg any) { t.Fatal("should not be called") }, nil)
}
