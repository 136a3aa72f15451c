package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"fraudwatch/internal/models"
)

// snapshotFile is the on-disk layout of a snapshot.
type snapshotFile struct {
	Transactions []models.Transaction `json:"transactions"`
	Alerts       []models.Alert       `json:"alerts"`
	SavedAt      time.Time            `json:"saved_at"`
}

// Snapshotter periodically writes both in-memory stores to a JSON file and
// restores them on startup. Writes are serialized through a single
// goroutine; a failed write is logged and reported, never fatal.
type Snapshotter struct {
	path     string
	interval time.Duration
	txRepo   *TransactionRepository
	alRepo   *AlertRepository
	onError  func(err error)

	mu      sync.RWMutex
	lastErr error

	stop chan struct{}
	done chan struct{}
}

// NewSnapshotter creates a snapshotter for the given stores. onError is
// invoked on every failed write (may be nil).
func NewSnapshotter(path string, interval time.Duration, txRepo *TransactionRepository, alRepo *AlertRepository, onError func(err error)) *Snapshotter {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Snapshotter{
		path:     path,
		interval: interval,
		txRepo:   txRepo,
		alRepo:   alRepo,
		onError:  onError,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Load restores the stores from the snapshot file. A missing file is not an
// error; a corrupt one is reported and the stores start empty.
func (s *Snapshotter) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap snapshotFile
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}

	s.txRepo.restore(snap.Transactions)
	s.alRepo.restore(snap.Alerts)
	log.Printf("restored snapshot: %d transactions, %d alerts (saved %s)",
		len(snap.Transactions), len(snap.Alerts), snap.SavedAt.Format(time.RFC3339))
	return nil
}

// Start launches the periodic snapshot loop.
func (s *Snapshotter) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.write()
			case <-s.stop:
				s.write()
				return
			}
		}
	}()
}

// Stop flushes a final snapshot and stops the loop.
func (s *Snapshotter) Stop() {
	close(s.stop)
	<-s.done
}

// LastError returns the error of the most recent write attempt, nil if it
// succeeded. Exposed through the status endpoint.
func (s *Snapshotter) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Snapshotter) write() {
	snap := snapshotFile{
		Transactions: s.txRepo.snapshot(),
		Alerts:       s.alRepo.snapshot(),
		SavedAt:      time.Now().UTC(),
	}

	err := s.writeFile(snap)

	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		log.Printf("snapshot write failed: %v", err)
		if s.onError != nil {
			s.onError(err)
		}
	}
}

func (s *Snapshotter) writeFile(snap snapshotFile) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	// Write to a temp file first so readers never see a torn snapshot.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
