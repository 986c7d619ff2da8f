package cache

import (
	"testing"
	"time"
)

func TestTTLCacheSetGet(t *testing.T) {
	c := NewTTLCache()

	if err := c.SetBytes("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("SetBytes: %v", err)
	}
	b, ok, err := c.GetBytes("k")
	if err != nil || !ok {
		t.Fatalf("GetBytes: ok=%v err=%v", ok, err)
	}
	if string(b) != "v" {
		t.Fatalf("got %q, want %q", b, "v")
	}
}

func TestTTLCacheMiss(t *testing.T) {
	c := NewTTLCache()
	_, ok, err := c.GetBytes("absent")
	if err != nil {
		t.Fatalf("GetBytes: %v", err)
	}
	if ok {
		t.Fatal("expected miss")
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache()
	if err := c.SetBytes("k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("SetBytes: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	_, ok, _ := c.GetBytes("k")
	if ok {
		t.Fatal("expected entry to expire")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	c := NewTTLCache()
	in := map[string]int{"a": 1, "b": 2}

	if err := SetJSON(c, "m", in, time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	var out map[string]int
	ok, err := GetJSON(c, "m", &out)
	if err != nil || !ok {
		t.Fatalf("GetJSON: ok=%v err=%v", ok, err)
	}
	if out["a"] != 1 || out["b"] != 2 {
		t.Fatalf("got %v", out)
	}
}
