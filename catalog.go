package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// fallbackCatalog is the built-in reference table used when no external
// catalog source is reachable. Three staples keep the app usable in
// degraded mode.
var fallbackCatalog = []foodItem{
	{Name: "白飯", Unit: "碗", Calories: 280, ProteinG: 5},
	{Name: "雞胸肉", Unit: "份", Calories: 180, ProteinG: 35},
	{Name: "炒青菜", Unit: "份", Calories: 150, ProteinG: 3},
}

// catalogKey is the key-value store key the seed tool writes the full
// reference table under. Checked when no CATALOG_URL is configured.
const catalogKey = "foodCatalog"

// foodCatalog is the immutable reference table. Entry order is fixed at load
// time and is significant: name lookup returns the first match.
type foodCatalog struct {
	items []foodItem
}

// newFoodCatalog copies items so later mutation of the source slice can't
// reach into the catalog.
func newFoodCatalog(items []foodItem) *foodCatalog {
	c := &foodCatalog{items: make([]foodItem, len(items))}
	copy(c.items, items)
	return c
}

// findByName returns the first entry (in catalog order) whose name contains
// query as a case-sensitive substring. First match wins even when a short
// query matches several entries — "雞" finds 雞腿 and never 雞胸肉 if 雞腿 is
// listed earlier. Empty-query handling is the caller's job.
func (c *foodCatalog) findByName(query string) (foodItem, bool) {
	for _, item := range c.items {
		if strings.Contains(item.Name, query) {
			return item, true
		}
	}
	return foodItem{}, false
}

// search returns every entry whose name contains query, in catalog order.
// Used by the catalog browse endpoint, not by logging.
func (c *foodCatalog) search(query string) []foodItem {
	matches := []foodItem{}
	for _, item := range c.items {
		if strings.Contains(item.Name, query) {
			matches = append(matches, item)
		}
	}
	return matches
}

// entries returns a copy of the full table for the presentation layer.
func (c *foodCatalog) entries() []foodItem {
	out := make([]foodItem, len(c.items))
	copy(out, c.items)
	return out
}

/* ─── Loading ────────────────────────────────────────────────────────── */

// loadCatalog resolves the reference table once at startup. Source order:
// an HTTP URL if configured, otherwise the key-value store's catalogKey
// (written by cmd/seed-catalog). Any failure — unreachable source, bad
// status, malformed or empty JSON — substitutes the built-in fallback and
// returns a non-nil error for the caller to log. The returned catalog is
// always usable.
func loadCatalog(ctx context.Context, kv kvStore, url string) (*foodCatalog, error) {
	var raw []byte
	var err error

	switch {
	case url != "":
		raw, err = fetchCatalog(ctx, url)
	case kv != nil:
		raw, err = kv.Get(ctx, catalogKey)
		if errors.Is(err, errAbsent) {
			err = fmt.Errorf("catalog key %q not seeded: %w", catalogKey, err)
		}
	default:
		err = errors.New("no catalog source configured")
	}
	if err != nil {
		return newFoodCatalog(fallbackCatalog), err
	}

	var items []foodItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return newFoodCatalog(fallbackCatalog), fmt.Errorf("parse catalog: %w", err)
	}
	if len(items) == 0 {
		return newFoodCatalog(fallbackCatalog), errors.New("catalog source returned no entries")
	}
	return newFoodCatalog(items), nil
}

// fetchCatalog GETs the catalog JSON. Uses raw net/http — a one-shot fetch
// doesn't justify a client dependency.
func fetchCatalog(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog source returned status %d", resp.StatusCode)
	}
	return body, nil
}
