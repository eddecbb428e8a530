package db

import (
	"path/filepath"
	"testing"
)

func providers(t *testing.T) map[string]Provider {
	t.Helper()
	dir := t.TempDir()

	boltProvider, err := NewBoltProvider(filepath.Join(dir, "state.db"))
	if err != nil {
		t.Fatalf("bolt open failed: %v", err)
	}
	levelProvider, err := NewLevelDBProvider(filepath.Join(dir, "leveldb"))
	if err != nil {
		t.Fatalf("leveldb open failed: %v", err)
	}

	return map[string]Provider{
		"memory":  NewMemoryProvider(),
		"bolt":    boltProvider,
		"leveldb": levelProvider,
	}
}

func TestProviderCRUD(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			defer p.Close()

			key := []byte("wallet:last_provider")

			got, err := p.Get(key)
			if err != nil || got != nil {
				t.Errorf("absent key: got %v %v, want nil nil", got, err)
			}

			if err := p.Put(key, []byte("custody")); err != nil {
				t.Fatalf("put failed: %v", err)
			}
			got, err = p.Get(key)
			if err != nil || string(got) != "custody" {
				t.Errorf("get after put: %s %v", got, err)
			}

			has, err := p.Has(key)
			if err != nil || !has {
				t.Errorf("has after put: %v %v", has, err)
			}

			if err := p.Delete(key); err != nil {
				t.Fatalf("delete failed: %v", err)
			}
			got, err = p.Get(key)
			if err != nil || got != nil {
				t.Errorf("get after delete: %v %v", got, err)
			}
		})
	}
}

func TestProviderBatchAtomicity(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			defer p.Close()

			p.Put([]byte("stale"), []byte("x"))

			batch := p.Batch()
			defer batch.Close()
			batch.Put([]byte("launches"), []byte("[]"))
			batch.Put([]byte("launches:version"), []byte("1"))
			batch.Delete([]byte("stale"))
			if err := batch.Write(); err != nil {
				t.Fatalf("batch write failed: %v", err)
			}

			if v, _ := p.Get([]byte("launches:version")); string(v) != "1" {
				t.Errorf("batched put missing: %s", v)
			}
			if v, _ := p.Get([]byte("stale")); v != nil {
				t.Errorf("batched delete missing: %s", v)
			}
		})
	}
}

func TestProviderCloseIsIdempotent(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			if err := p.Close(); err != nil {
				t.Fatalf("close failed: %v", err)
			}
			if err := p.Close(); err != nil {
				t.Errorf("second close failed: %v", err)
			}
		})
	}
}
