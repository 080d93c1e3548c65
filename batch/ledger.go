// Package batch reads the URL list, drives the capture engine over it
// sequentially, and persists the outcome ledger after every single URL so
// an interrupted run can resume without redoing completed work.
package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/use-agent/chartshot/models"
)

// Ledger is the ordered sequence of outcome records backing results.json.
// It is owned exclusively by the batch driver; the on-disk file is always
// a complete snapshot of all completed work.
type Ledger struct {
	path    string
	records []*models.Record
}

// LoadLedger reads an existing ledger file, or returns an empty ledger
// when the file does not exist yet.
func LoadLedger(path string) (*Ledger, error) {
	l := &Ledger{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return l, nil
		}
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	if err := json.Unmarshal(data, &l.records); err != nil {
		return nil, fmt.Errorf("parse ledger %s: %w", path, err)
	}
	return l, nil
}

// Len returns the number of records in the ledger.
func (l *Ledger) Len() int { return len(l.records) }

// Records returns the in-memory record sequence.
func (l *Ledger) Records() []*models.Record { return l.records }

// Recorded returns the set of URLs already present in the ledger. By
// default that includes URLs whose prior attempt failed, so they are
// never retried across runs; with retryFailed set, failed records are
// left out of the set and their URLs become eligible again.
func (l *Ledger) Recorded(retryFailed bool) map[string]struct{} {
	seen := make(map[string]struct{}, len(l.records))
	for _, r := range l.records {
		if retryFailed && r.Status == models.StatusError {
			continue
		}
		seen[r.URL] = struct{}{}
	}
	return seen
}

// Upsert appends the record, or replaces an existing record with the same
// URL (only possible on a retry-failed run). URLs stay unique within the
// ledger either way.
func (l *Ledger) Upsert(rec *models.Record) {
	for i, r := range l.records {
		if r.URL == rec.URL {
			l.records[i] = rec
			return
		}
	}
	l.records = append(l.records, rec)
}

// Save rewrites the whole ledger file from the in-memory sequence. The
// write goes through a temp file followed by a rename, so a crash in the
// middle of a save leaves the previous complete snapshot intact.
func (l *Ledger) Save() error {
	data, err := json.MarshalIndent(l.records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}

	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		return fmt.Errorf("replace ledger: %w", err)
	}
	return nil
}

// LedgerPath returns the canonical ledger location under an output root.
func LedgerPath(root string) string {
	return filepath.Join(root, "results.json")
}
