package cache

import "testing"

func TestCacheGetSet(t *testing.T) {
	c := New[string, int](0)
	if _, ok := c.Get("a", 1); ok {
		t.Error("Get() on empty cache ok = true")
	}
	c.Set("a", 1, 1)
	if v, ok := c.Get("a", 2); !ok || v != 1 {
		t.Errorf("Get(a) = %v, %v, want 1, true", v, ok)
	}
	c.Set("a", 5, 3)
	if v, _ := c.Get("a", 3); v != 5 {
		t.Errorf("Get(a) after Set = %d, want 5", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCacheGetOrCreate(t *testing.T) {
	c := New[int, string](0)
	calls := 0
	create := func() string {
		calls++
		return "v"
	}
	c.GetOrCreate(1, 1, create)
	c.GetOrCreate(1, 2, create)
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
	st := c.Stats()
	if st.Hits != 1 || st.Misses != 1 || st.HitRate != 0.5 || st.Len != 1 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestCacheExpireBefore(t *testing.T) {
	tests := []struct {
		name     string
		stamps   map[int]uint64
		expire   uint64
		wantLeft []int
	}{
		{
			name:     "nothing old",
			stamps:   map[int]uint64{1: 5, 2: 5},
			expire:   5,
			wantLeft: []int{1, 2},
		},
		{
			name:     "all old",
			stamps:   map[int]uint64{1: 1, 2: 2},
			expire:   3,
			wantLeft: nil,
		},
		{
			name:     "partial",
			stamps:   map[int]uint64{1: 1, 2: 2, 3: 3},
			expire:   2,
			wantLeft: []int{2, 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New[int, int](0)
			// Insert in stamp order.
			for s := uint64(0); s <= 10; s++ {
				for k, ks := range tt.stamps {
					if ks == s {
						c.Set(k, k, s)
					}
				}
			}
			removed := c.ExpireBefore(tt.expire)
			if removed != len(tt.stamps)-len(tt.wantLeft) {
				t.Errorf("ExpireBefore() = %d, want %d", removed, len(tt.stamps)-len(tt.wantLeft))
			}
			if c.Len() != len(tt.wantLeft) {
				t.Fatalf("Len() = %d, want %d", c.Len(), len(tt.wantLeft))
			}
			for _, k := range tt.wantLeft {
				if _, ok := c.Get(k, 100); !ok {
					t.Errorf("key %d expired, want kept", k)
				}
			}
		})
	}
}

func TestCacheTouchKeepsEntryAlive(t *testing.T) {
	c := New[string, int](0)
	c.Set("old", 1, 1)
	c.Set("new", 2, 2)
	c.Get("old", 3)

	c.ExpireBefore(3)
	if _, ok := c.Get("old", 3); !ok {
		t.Error("entry used at the current stamp was expired")
	}
	if _, ok := c.Get("new", 3); ok {
		t.Error("entry last used at stamp 2 survived ExpireBefore(3)")
	}
}

func TestCacheSoftLimit(t *testing.T) {
	c := New[int, int](4)
	for i := 0; i < 5; i++ {
		c.Set(i, i, uint64(i))
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3 after eviction", c.Len())
	}
	if _, ok := c.Get(0, 5); ok {
		t.Error("oldest entry survived eviction")
	}
	if _, ok := c.Get(4, 5); !ok {
		t.Error("newest entry was evicted")
	}
	if st := c.Stats(); st.Evictions != 2 || st.Capacity != 4 {
		t.Errorf("Stats() = %+v, want 2 evictions, capacity 4", st)
	}
}

func TestCacheDeleteFunc(t *testing.T) {
	c := New[int, int](0)
	for k := 1; k <= 4; k++ {
		c.Set(k, k, 1)
	}
	if n := c.DeleteFunc(func(k int) bool { return k%2 == 0 }); n != 2 {
		t.Errorf("DeleteFunc(even) = %d, want 2", n)
	}
	if _, ok := c.Get(3, 1); !ok {
		t.Error("DeleteFunc removed an odd key")
	}
	if n := c.ExpireBefore(100); n != 2 {
		t.Errorf("ExpireBefore() after DeleteFunc = %d, want 2", n)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}
