package launchcache

import (
	"testing"
	"time"

	"github.com/holiman/uint256"

	"startex/db"
	"startex/events"
)

func record(startupID, assetID uint64, txID string) LaunchedRecord {
	return LaunchedRecord{
		StartupID:    startupID,
		Name:         "Acme",
		Description:  "robots for startups",
		AssetID:      assetID,
		UnitName:     "ACME",
		Supply:       uint256.NewInt(1_000_000),
		Decimals:     6,
		LaunchPrice:  "10",
		Creator:      "creator-addr",
		TokenizeTxID: txID,
		RecordedAt:   time.Now().Unix(),
	}
}

func TestAppendAndLoadAll(t *testing.T) {
	cache := NewCache(db.NewMemoryProvider(), events.NewBus())

	if err := cache.Append(record(1, 100, "tx-a")); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := cache.Append(record(2, 200, "tx-b")); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	records := cache.LoadAll()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// most recent first
	if records[0].TokenizeTxID != "tx-b" || records[1].TokenizeTxID != "tx-a" {
		t.Errorf("records out of order: %s, %s", records[0].TokenizeTxID, records[1].TokenizeTxID)
	}
	if records[0].Supply.Dec() != "1000000" {
		t.Errorf("supply changed in round trip: %s", records[0].Supply.Dec())
	}
}

func TestAppendIsIdempotentByTxID(t *testing.T) {
	cache := NewCache(db.NewMemoryProvider(), events.NewBus())

	for i := 0; i < 3; i++ {
		if err := cache.Append(record(1, 100, "tx-a")); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}
	if got := len(cache.LoadAll()); got != 1 {
		t.Errorf("expected 1 record after replay, got %d", got)
	}
}

func TestAppendValidates(t *testing.T) {
	cache := NewCache(db.NewMemoryProvider(), events.NewBus())

	if err := cache.Append(LaunchedRecord{TokenizeTxID: "tx"}); err == nil {
		t.Error("record without asset id accepted")
	}
	if err := cache.Append(LaunchedRecord{AssetID: 1}); err == nil {
		t.Error("record without tx id accepted")
	}
}

func TestLoadAllMissingStoreReadsEmpty(t *testing.T) {
	cache := NewCache(db.NewMemoryProvider(), events.NewBus())
	if got := cache.LoadAll(); len(got) != 0 {
		t.Errorf("expected empty list, got %d records", len(got))
	}
}

func TestLoadAllCorruptStoreReadsEmpty(t *testing.T) {
	store := db.NewMemoryProvider()
	if err := store.Put([]byte(launchesKey), []byte("{not json")); err != nil {
		t.Fatalf("seed store failed: %v", err)
	}

	cache := NewCache(store, events.NewBus())
	if got := cache.LoadAll(); len(got) != 0 {
		t.Errorf("corrupt store must read as empty, got %d records", len(got))
	}
}

func TestClear(t *testing.T) {
	cache := NewCache(db.NewMemoryProvider(), events.NewBus())

	cache.Append(record(1, 100, "tx-a"))
	if err := cache.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if got := len(cache.LoadAll()); got != 0 {
		t.Errorf("expected empty list after clear, got %d", got)
	}
}

func TestAppendPublishesEvent(t *testing.T) {
	bus := events.NewBus()
	cache := NewCache(db.NewMemoryProvider(), bus)
	_, ch := bus.Subscribe()

	if err := cache.Append(record(7, 700, "tx-e")); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	select {
	case ev := <-ch:
		rec, ok := ev.(*events.LaunchRecorded)
		if !ok {
			t.Fatalf("expected LaunchRecorded, got %s", ev.Type())
		}
		if rec.StartupID() != 7 || rec.AssetID() != 700 {
			t.Errorf("wrong ids in event: %d %d", rec.StartupID(), rec.AssetID())
		}
	case <-time.After(time.Second):
		t.Error("timeout waiting for LaunchRecorded")
	}
}

func TestTwoWritersSharingOneStoreConverge(t *testing.T) {
	store := db.NewMemoryProvider()
	writerA := NewCache(store, events.NewBus())
	writerB := NewCache(store, events.NewBus())

	if err := writerA.Append(record(1, 100, "tx-a")); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := writerB.Append(record(2, 200, "tx-b")); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	// both writers see both records
	for name, c := range map[string]*Cache{"A": writerA, "B": writerB} {
		records := c.LoadAll()
		if len(records) != 2 {
			t.Errorf("writer %s sees %d records, want 2", name, len(records))
		}
	}
}

func TestPollObservesExternalAppend(t *testing.T) {
	store := db.NewMemoryProvider()
	writer := NewCache(store, events.NewBus())

	observerBus := events.NewBus()
	observer := NewCache(store, observerBus)
	_, ch := observerBus.Subscribe()

	if err := writer.Append(record(3, 300, "tx-c")); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	observer.pollOnce()

	select {
	case ev := <-ch:
		rec, ok := ev.(*events.LaunchRecorded)
		if !ok {
			t.Fatalf("expected LaunchRecorded, got %s", ev.Type())
		}
		if rec.AssetID() != 300 {
			t.Errorf("wrong asset id in event: %d", rec.AssetID())
		}
	case <-time.After(time.Second):
		t.Error("timeout waiting for observed append")
	}

	// a second poll with no new writes stays quiet
	observer.pollOnce()
	select {
	case ev := <-ch:
		t.Errorf("unexpected second event %s", ev.Type())
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPollIgnoresOwnAppends(t *testing.T) {
	bus := events.NewBus()
	cache := NewCache(db.NewMemoryProvider(), bus)

	if err := cache.Append(record(4, 400, "tx-d")); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	_, ch := bus.Subscribe()

	cache.pollOnce()
	select {
	case ev := <-ch:
		t.Errorf("own append re-announced as %s", ev.Type())
	case <-time.After(50 * time.Millisecond):
	}
}
