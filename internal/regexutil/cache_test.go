package regexutil

import "testing"

func TestCacheReturnsSameInstance(t *testing.T) {
	c := NewCache()

	first := c.Get(`foo\d+`, "i")
	second := c.Get(`foo\d+`, "i")
	if first == nil {
		t.Fatal("expected pattern to compile")
	}
	if first != second {
		t.Error("expected identical compiled instance on second call")
	}
	if !first.MatchString("FOO42") {
		t.Error("flags were not applied to the compiled pattern")
	}
}

func TestCacheDistinguishesFlags(t *testing.T) {
	c := NewCache()

	plain := c.Get("foo", "")
	insensitive := c.Get("foo", "i")
	if plain == insensitive {
		t.Error("expected distinct entries for distinct flags")
	}
	if c.Len() != 2 {
		t.Errorf("expected 2 cache entries, got %d", c.Len())
	}
}

func TestCacheInvalidPattern(t *testing.T) {
	c := NewCache()

	if re := c.Get("(unclosed", ""); re != nil {
		t.Error("expected nil for invalid pattern")
	}
	// Second call must not retry compilation; the sentinel stays nil.
	if re := c.Get("(unclosed", ""); re != nil {
		t.Error("expected nil on repeated lookup of invalid pattern")
	}
	if c.Len() != 1 {
		t.Errorf("expected a single cached entry, got %d", c.Len())
	}
}
