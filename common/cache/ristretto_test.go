package cache

import (
	"testing"
	"time"
)

func TestGeneralCache_SetGet(t *testing.T) {
	c, err := NewGeneralCache(1<<20, time.Minute)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	defer c.Close()

	c.SetBytes("a", []byte(`{"ok":true}`))
	c.Set("b", 42)
	c.Wait()

	if b, ok := c.GetBytes("a"); !ok || string(b) != `{"ok":true}` {
		t.Fatalf("unexpected bytes %q %v", b, ok)
	}
	if v, ok := c.Get("b"); !ok || v.(int) != 42 {
		t.Fatalf("unexpected value %v %v", v, ok)
	}
	if _, ok := c.GetBytes("b"); ok {
		t.Fatalf("int value should not read as bytes")
	}

	c.Delete("a")
	if _, ok := c.GetBytes("a"); ok {
		t.Fatalf("deleted key still present")
	}
}
