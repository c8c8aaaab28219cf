package cache

import (
	"errors"
	"sync"
	"testing"
)

func TestCache_Basic(t *testing.T) {
	c := New[string, int]()

	c.Set("a", 1)
	c.Set("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", v, ok)
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Errorf("Get(b) = %d, %v; want 2, true", v, ok)
	}
	if _, ok := c.Get("c"); ok {
		t.Error("Get(c) should return false for missing key")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d; want 2", c.Len())
	}
}

func TestCache_FirstPublishWins(t *testing.T) {
	c := New[string, int]()

	if got := c.Set("a", 1); got != 1 {
		t.Errorf("Set(a, 1) = %d; want 1", got)
	}
	// A second publish for the same key keeps the original value.
	if got := c.Set("a", 2); got != 1 {
		t.Errorf("Set(a, 2) = %d; want existing 1", got)
	}
	if v, _ := c.Get("a"); v != 1 {
		t.Errorf("Get(a) = %d; want 1", v)
	}
}

func TestCache_GetOrCompute(t *testing.T) {
	c := New[string, int]()
	calls := 0

	v, err := c.GetOrCompute("a", func() (int, error) {
		calls++
		return 42, nil
	})
	if err != nil || v != 42 {
		t.Fatalf("GetOrCompute = %d, %v; want 42, nil", v, err)
	}

	// Second call served from cache, no rebuild.
	v, err = c.GetOrCompute("a", func() (int, error) {
		calls++
		return 0, nil
	})
	if err != nil || v != 42 {
		t.Fatalf("GetOrCompute = %d, %v; want 42, nil", v, err)
	}
	if calls != 1 {
		t.Errorf("build calls = %d; want 1", calls)
	}
}

func TestCache_GetOrComputeError(t *testing.T) {
	c := New[string, int]()
	boom := errors.New("compile failed")

	_, err := c.GetOrCompute("a", func() (int, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v; want %v", err, boom)
	}

	// A failed build caches nothing; the next attempt retries.
	v, err := c.GetOrCompute("a", func() (int, error) {
		return 7, nil
	})
	if err != nil || v != 7 {
		t.Fatalf("GetOrCompute after failure = %d, %v; want 7, nil", v, err)
	}
}

func TestCache_ConcurrentFirstUse(t *testing.T) {
	c := New[string, int]()

	const goroutines = 16
	results := make([]int, goroutines)

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			v, err := c.GetOrCompute("shared", func() (int, error) {
				return i, nil
			})
			if err != nil {
				t.Error(err)
				return
			}
			results[i] = v
		}(i)
	}
	wg.Wait()

	// Duplicate builds are allowed, but every caller must observe the same
	// published value.
	for i := 1; i < goroutines; i++ {
		if results[i] != results[0] {
			t.Fatalf("results[%d] = %d, results[0] = %d; all callers must agree", i, results[i], results[0])
		}
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d; want 1", c.Len())
	}
}

func TestCache_Stats(t *testing.T) {
	c := New[string, int]()

	c.Get("missing")
	c.Set("a", 1)
	c.Get("a")

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 || s.Size != 1 {
		t.Errorf("Stats = %+v; want 1 hit, 1 miss, size 1", s)
	}
}
