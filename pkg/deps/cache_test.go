package deps

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	pkgerrors "github.com/matzehuels/pkgsync/pkg/errors"
)

func staticLookup(versions map[string]string, calls *atomic.Int32) Lookup {
	return LookupFunc(func(_ context.Context, name string) (string, error) {
		if calls != nil {
			calls.Add(1)
		}
		v, ok := versions[name]
		if !ok {
			return "", ErrUnknown
		}
		return v, nil
	})
}

func TestCacheSeededAndLazy(t *testing.T) {
	var calls atomic.Int32
	c := NewCache(staticLookup(map[string]string{"b": "~2.0.0"}, &calls), map[string]string{"a": "~1.0.0"})
	ctx := context.Background()

	if v, err := c.Version(ctx, "a"); err != nil || v != "~1.0.0" {
		t.Errorf("Version(a) = %q, %v", v, err)
	}
	if calls.Load() != 0 {
		t.Error("seeded entry should not hit the lookup")
	}
	for range 3 {
		if v, err := c.Version(ctx, "b"); err != nil || v != "~2.0.0" {
			t.Errorf("Version(b) = %q, %v", v, err)
		}
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("lookup called %d times, want 1", n)
	}
	if diff := cmp.Diff(map[string]string{"a": "~1.0.0", "b": "~2.0.0"}, c.Snapshot()); diff != "" {
		t.Errorf("Snapshot() mismatch (-want +got):\n%s", diff)
	}
}

func TestCacheSeedIsCopied(t *testing.T) {
	seed := map[string]string{"a": "1"}
	c := NewCache(nil, seed)
	seed["b"] = "2"
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCacheCoalescesConcurrentLookups(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	lookup := LookupFunc(func(ctx context.Context, name string) (string, error) {
		calls.Add(1)
		<-release
		return "~1.0.0", nil
	})
	c := NewCache(lookup, nil)

	var wg sync.WaitGroup
	results := make([]string, 10)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = c.Version(context.Background(), "slow")
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Errorf("lookup called %d times, want 1", n)
	}
	for i, r := range results {
		if r != "~1.0.0" {
			t.Errorf("results[%d] = %q", i, r)
		}
	}
}

func TestCacheLookupFailure(t *testing.T) {
	boom := errors.New("registry down")
	c := NewCache(LookupFunc(func(context.Context, string) (string, error) { return "", boom }), nil)

	_, err := c.Version(context.Background(), "left-pad")
	if !pkgerrors.Is(err, pkgerrors.ErrCodeLookup) {
		t.Errorf("Version() error = %v, want LOOKUP_FAILED", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("Version() error should wrap the cause, got %v", err)
	}
	if c.Len() != 0 {
		t.Error("failed lookups must not be cached")
	}
}

func TestResolveAll(t *testing.T) {
	var calls atomic.Int32
	c := NewCache(staticLookup(map[string]string{"a": "1", "b": "2", "c": "3"}, &calls), nil)

	got, err := c.ResolveAll(context.Background(), []string{"c", "a", "b", "a"})
	if err != nil {
		t.Fatalf("ResolveAll() error: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"a": "1", "b": "2", "c": "3"}, got); diff != "" {
		t.Errorf("ResolveAll() mismatch (-want +got):\n%s", diff)
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("lookup called %d times, want 3", n)
	}
}

func TestResolveAllFailsFast(t *testing.T) {
	c := NewCache(staticLookup(map[string]string{"a": "1"}, nil), nil)
	c.SetWorkers(1)

	_, err := c.ResolveAll(context.Background(), []string{"a", "missing"})
	if !pkgerrors.Is(err, pkgerrors.ErrCodeLookup) {
		t.Errorf("ResolveAll() error = %v, want LOOKUP_FAILED", err)
	}
	if !errors.Is(err, ErrUnknown) {
		t.Errorf("ResolveAll() error should wrap ErrUnknown, got %v", err)
	}
}
