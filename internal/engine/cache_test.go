package engine

import "testing"

func TestTokenCacheGetPutRoundTrip(t *testing.T) {
	tc := NewTokenCache(10)
	key := CacheKey{Text: "hello", Lang: "eng", Format: 0}

	if _, ok := tc.Get(key); ok {
		t.Fatal("Get on empty cache returned ok=true")
	}

	tc.Put(key, CacheEntry{Str: "hola"})
	entry, ok := tc.Get(key)
	if !ok || entry.Str != "hola" {
		t.Fatalf("Get after Put = %+v, ok=%v, want Str=hola, ok=true", entry, ok)
	}
}

func TestTokenCacheZeroCapacityDisablesCaching(t *testing.T) {
	tc := NewTokenCache(0)
	key := CacheKey{Text: "x", Lang: "", Format: 0}

	tc.Put(key, CacheEntry{Str: "y"})
	if _, ok := tc.Get(key); ok {
		t.Fatal("zero-capacity cache returned a hit after Put")
	}
}

func TestTokenCacheDropsWritesPastCapacity(t *testing.T) {
	tc := NewTokenCache(1)
	tc.Put(CacheKey{Text: "a"}, CacheEntry{Str: "1"})
	tc.Put(CacheKey{Text: "b"}, CacheEntry{Str: "2"})

	if _, ok := tc.Get(CacheKey{Text: "a"}); !ok {
		t.Fatal("first entry should remain cached")
	}
	if _, ok := tc.Get(CacheKey{Text: "b"}); ok {
		t.Fatal("second entry should have been dropped once capacity was reached")
	}
}

func TestTokenCacheDistinguishesFormatAndLang(t *testing.T) {
	tc := NewTokenCache(10)
	tc.Put(CacheKey{Text: "x", Lang: "eng", Format: 0}, CacheEntry{Str: "str-result"})
	tc.Put(CacheKey{Text: "x", Lang: "fra", Format: 0}, CacheEntry{Str: "other-lang"})
	tc.Put(CacheKey{Text: "x", Lang: "eng", Format: 1}, CacheEntry{Str: "other-format"})

	e, ok := tc.Get(CacheKey{Text: "x", Lang: "eng", Format: 0})
	if !ok || e.Str != "str-result" {
		t.Fatalf("got %+v ok=%v, want str-result", e, ok)
	}
}
