package cache

import (
	"errors"
	"reflect"
	"testing"

	"pagebrief/models"
)

// fakeStore records durable-layer traffic.
type fakeStore struct {
	entries map[string]models.SummaryResult
	fail    bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[string]models.SummaryResult)}
}

func (f *fakeStore) GetSummary(key string) (models.SummaryResult, bool, error) {
	if f.fail {
		return models.SummaryResult{}, false, errors.New("store unavailable")
	}
	r, ok := f.entries[key]
	return r, ok, nil
}

func (f *fakeStore) PutSummary(key string, result models.SummaryResult) error {
	if f.fail {
		return errors.New("store unavailable")
	}
	f.entries[key] = result
	return nil
}

func TestCacheRoundTrip(t *testing.T) {
	store := newFakeStore()
	c := New(store, nil)

	key := models.PageKey("https://example.com/article")
	want := models.SummaryResult{Bullets: []string{"point one", "point two"}}

	c.Put(key, want)

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("Get() missed after Put()")
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
	if _, ok := store.entries[key.Key]; !ok {
		t.Error("Put() did not reach durable storage")
	}
}

func TestCachePromotesDurableHits(t *testing.T) {
	store := newFakeStore()
	key := models.PageKey("https://example.com/seen-before")
	want := models.SummaryResult{Bullets: []string{"from disk"}}
	store.entries[key.Key] = want

	c := New(store, nil)

	got, ok := c.Get(key)
	if !ok || !reflect.DeepEqual(got, want) {
		t.Fatalf("Get() = %+v, %v; want durable hit", got, ok)
	}

	// A second lookup must come from memory even if the store fails.
	store.fail = true
	got, ok = c.Get(key)
	if !ok || !reflect.DeepEqual(got, want) {
		t.Errorf("Get() after promotion = %+v, %v; want memory hit", got, ok)
	}
}

func TestAdHocKeysNeverPersisted(t *testing.T) {
	store := newFakeStore()
	c := New(store, nil)

	key := models.TextKey("https://example.com/page", "some selected text from the page")
	result := models.SummaryResult{Bullets: []string{"selection summary"}}

	c.Put(key, result)

	if len(store.entries) != 0 {
		t.Errorf("ad-hoc entry reached durable storage: %v", store.entries)
	}
	if got, ok := c.Get(key); !ok || !reflect.DeepEqual(got, result) {
		t.Errorf("Get() = %+v, %v; want transient memory hit", got, ok)
	}
}

func TestAdHocKeysSkipDurableLookup(t *testing.T) {
	store := newFakeStore()
	key := models.TextKey("https://example.com/page", "selection")
	// Even if something durable exists under the same key, ad-hoc lookups
	// must not touch the store.
	store.entries[key.Key] = models.SummaryResult{Bullets: []string{"stale"}}
	store.fail = true

	c := New(store, nil)
	if _, ok := c.Get(key); ok {
		t.Error("ad-hoc Get() consulted durable storage")
	}
}

func TestCacheMissWithoutDurable(t *testing.T) {
	c := New(nil, nil)
	if _, ok := c.Get(models.PageKey("https://example.com/none")); ok {
		t.Error("Get() reported a hit on an empty cache")
	}
}

func TestForget(t *testing.T) {
	c := New(nil, nil)
	key := models.PageKey("https://example.com/page")
	c.Put(key, models.SummaryResult{Bullets: []string{"x"}})
	c.Forget(key)
	if _, ok := c.Get(key); ok {
		t.Error("Get() hit after Forget()")
	}
}

func TestTextKeyDerivation(t *testing.T) {
	a := models.TextKey("https://example.com", "identical prefix text")
	b := models.TextKey("https://example.com", "identical prefix text")
	if a.Key != b.Key {
		t.Error("identical selections produced different keys")
	}
	if !a.AdHoc {
		t.Error("TextKey() not marked ad-hoc")
	}

	c := models.TextKey("https://example.com", "different selection text")
	if a.Key == c.Key {
		t.Error("different selections produced the same key")
	}
	if models.PageKey("https://example.com").Key == a.Key {
		t.Error("page key collided with text key")
	}
}
