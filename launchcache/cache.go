package launchcache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"startex/db"
	"startex/errors"
	"startex/events"
	"startex/exception"
	"startex/jsonx"
	"startex/logx"
)

const (
	launchesKey = "launches"
	versionKey  = "launches:version"

	// DefaultWatchInterval paces the cross-process version poll
	DefaultWatchInterval = 2 * time.Second
)

// Cache is the append-only projection of completed launches, most recent
// first. Reads never fail the caller: a missing or corrupt store reads as
// empty, because the chain remains the source of truth and the projection
// can always be rebuilt from it.
//
// Writes go through a read-modify-write of the full list plus a version
// bump in one batch, so concurrent writers sharing the store converge and
// watchers in other processes can detect the change.
type Cache struct {
	mu    sync.Mutex
	store db.Provider
	bus   *events.Bus

	// version this process last wrote or observed, so the watcher does not
	// re-announce its own appends
	seenVersion uint64
}

// NewCache creates a cache over the shared store
func NewCache(store db.Provider, bus *events.Bus) *Cache {
	c := &Cache{store: store, bus: bus}
	c.seenVersion = c.readVersion()
	return c
}

// LoadAll returns all recorded launches, most recent first. It never
// returns an error: unreadable state is logged and read as empty.
func (c *Cache) LoadAll() []LaunchedRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked()
}

func (c *Cache) loadLocked() []LaunchedRecord {
	raw, err := c.store.Get([]byte(launchesKey))
	if err != nil {
		logx.Warn("LAUNCHCACHE", "store read failed, treating as empty: ", err)
		return []LaunchedRecord{}
	}
	if raw == nil {
		return []LaunchedRecord{}
	}
	var records []LaunchedRecord
	if err := jsonx.Unmarshal(raw, &records); err != nil {
		logx.Warn("LAUNCHCACHE", "corrupt launch list, treating as empty: ", err)
		return []LaunchedRecord{}
	}
	return records
}

// Append records one launch at the head of the list. Appending a record
// whose tokenize tx id is already present is a no-op, so replaying a
// confirmed flow cannot duplicate entries.
func (c *Cache) Append(record LaunchedRecord) error {
	if record.AssetID == 0 || record.TokenizeTxID == "" {
		return errors.NewInvalidParameter("launch record needs an asset id and a transaction id")
	}
	if record.RecordedAt == 0 {
		record.RecordedAt = time.Now().Unix()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.loadLocked()
	for _, existing := range records {
		if existing.TokenizeTxID == record.TokenizeTxID {
			return nil
		}
	}
	records = append([]LaunchedRecord{record}, records...)

	raw, err := jsonx.Marshal(records)
	if err != nil {
		return err
	}

	next := c.readVersion() + 1
	batch := c.store.Batch()
	defer batch.Close()
	batch.Put([]byte(launchesKey), raw)
	batch.Put([]byte(versionKey), []byte(strconv.FormatUint(next, 10)))
	if err := batch.Write(); err != nil {
		return err
	}
	c.seenVersion = next

	logx.Info("LAUNCHCACHE", "Recorded launch | startup_id=", record.StartupID, " asset_id=", record.AssetID)
	c.bus.Publish(events.NewLaunchRecorded(record.StartupID, record.AssetID))
	return nil
}

// Clear drops the projection. On-chain state is untouched; the next reader
// simply sees an empty list.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.readVersion() + 1
	batch := c.store.Batch()
	defer batch.Close()
	batch.Delete([]byte(launchesKey))
	batch.Put([]byte(versionKey), []byte(strconv.FormatUint(next, 10)))
	if err := batch.Write(); err != nil {
		return err
	}
	c.seenVersion = next
	return nil
}

// Watch polls the shared version key so appends made by other processes
// over the same store surface here as LaunchRecorded events. It returns
// after spawning; cancel the context to stop the watcher.
func (c *Cache) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	exception.SafeGo("launchcache-watch", func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.pollOnce()
			}
		}
	})
}

func (c *Cache) pollOnce() {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.readVersion()
	if current == c.seenVersion {
		return
	}
	c.seenVersion = current

	records := c.loadLocked()
	if len(records) == 0 {
		return
	}
	head := records[0]
	logx.Debug("LAUNCHCACHE", "Observed external append | asset_id=", head.AssetID)
	c.bus.Publish(events.NewLaunchRecorded(head.StartupID, head.AssetID))
}

func (c *Cache) readVersion() uint64 {
	raw, err := c.store.Get([]byte(versionKey))
	if err != nil || raw == nil {
		return 0
	}
	v, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
