package rules

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

const (
	remoteBodyKey = "remote:body"
	remoteETagKey = "remote:etag"

	// remoteMaxBody caps how much of a remote response is read. A rule
	// table larger than this is not a rule table.
	remoteMaxBody = 8 << 20
)

// Refresher periodically fetches a remote rule table from an HTTP(S)
// endpoint returning a JSON typo -> correction object.
//
// Retrieval is conditional: the last ETag is replayed via If-None-Match and
// a 304 resolves to "no update". Transport failures leave the previously
// cached table in place; the next attempt happens after the configured
// interval, never sooner. When a Badger DB is supplied the body and ETag
// are persisted so a restart starts from the last good table without
// touching the network.
type Refresher struct {
	url      string
	client   *http.Client
	db       *badger.DB // may be nil: no persistence
	interval time.Duration
	apply    func(map[string]string)

	mu          sync.Mutex
	etag        string
	lastAttempt time.Time
}

// NewRefresher creates a Refresher. apply receives each freshly parsed
// table; it must not retain the map beyond installing it.
func NewRefresher(url string, db *badger.DB, interval time.Duration, apply func(map[string]string)) *Refresher {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Refresher{
		url:      url,
		client:   &http.Client{Timeout: 15 * time.Second},
		db:       db,
		interval: interval,
		apply:    apply,
	}
}

// LoadCached installs the last persisted remote table, if any. Called once
// at startup, before the first network attempt.
func (r *Refresher) LoadCached() {
	if r.db == nil {
		return
	}
	var body []byte
	var etag string
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(remoteBodyKey))
		if err != nil {
			return err
		}
		if body, err = item.ValueCopy(nil); err != nil {
			return err
		}
		if item, err = txn.Get([]byte(remoteETagKey)); err == nil {
			var v []byte
			if v, err = item.ValueCopy(nil); err == nil {
				etag = string(v)
			}
		}
		return nil
	})
	if err != nil {
		return // nothing cached yet
	}
	table, err := decodeRemote(body)
	if err != nil {
		log.Printf("rules: discarding corrupt cached remote table: %v", err)
		return
	}
	r.mu.Lock()
	r.etag = etag
	r.mu.Unlock()
	r.apply(table)
}

// Refresh performs one conditional fetch. Attempts inside the configured
// interval are skipped silently. A 304, a transport error and a non-200
// status all resolve to "no update"; only the transport/status cases are
// reported as an error so the caller can log them.
func (r *Refresher) Refresh(ctx context.Context) error {
	r.mu.Lock()
	if time.Since(r.lastAttempt) < r.interval {
		r.mu.Unlock()
		return nil
	}
	r.lastAttempt = time.Now()
	etag := r.etag
	r.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return fmt.Errorf("build remote request: %w", err)
	}
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch remote table: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotModified:
		return nil
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("fetch remote table: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, remoteMaxBody))
	if err != nil {
		return fmt.Errorf("read remote table: %w", err)
	}
	table, err := decodeRemote(body)
	if err != nil {
		return fmt.Errorf("decode remote table: %w", err)
	}

	newETag := resp.Header.Get("ETag")
	r.mu.Lock()
	r.etag = newETag
	r.mu.Unlock()
	r.persist(body, newETag)
	r.apply(table)
	return nil
}

// Run refreshes on the configured interval until ctx is cancelled.
// Failures are logged and swallowed; the cached table stays in effect.
func (r *Refresher) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		if err := r.Refresh(ctx); err != nil {
			log.Printf("rules: remote refresh: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

func (r *Refresher) persist(body []byte, etag string) {
	if r.db == nil {
		return
	}
	err := r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(remoteBodyKey), body); err != nil {
			return err
		}
		return txn.Set([]byte(remoteETagKey), []byte(etag))
	})
	if err != nil {
		log.Printf("rules: persist remote table: %v", err)
	}
}

func decodeRemote(body []byte) (map[string]string, error) {
	var obj map[string]string
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, err
	}
	table := make(map[string]string, len(obj))
	for k, v := range obj {
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.ToLower(strings.TrimSpace(v))
		if k == "" || v == "" {
			continue
		}
		table[k] = v
	}
	return table, nil
}
