package memory

import (
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	c := New()

	c.Set("key", "value", time.Minute)

	got, ok := c.Get("key")
	if !ok {
		t.Fatal("Get() should find fresh entry")
	}
	if got != "value" {
		t.Errorf("Get() = %v, want value", got)
	}
}

func TestCache_Miss(t *testing.T) {
	c := New()

	if _, ok := c.Get("absent"); ok {
		t.Error("Get() should miss for unknown key")
	}
}

func TestCache_Expiry(t *testing.T) {
	c := New()

	c.Set("key", "value", 20*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	if _, ok := c.Get("key"); ok {
		t.Error("Get() should miss after TTL")
	}
}

func TestCache_Delete(t *testing.T) {
	c := New()

	c.Set("key", "value", time.Minute)
	c.Delete("key")

	if _, ok := c.Get("key"); ok {
		t.Error("Get() should miss after Delete")
	}
}
