package scheduler

import (
	"sync"

	"github.com/robfig/cron/v3"
)

// JobStore is the mutable job table the reconciler drives. The table
// is a cache rebuilt from the design rows; it is never treated as a
// store of record.
type JobStore interface {
	// Get returns the cron spec currently registered under id.
	Get(id string) (string, bool)
	Add(id, spec string, cmd func()) error
	Modify(id, spec string, cmd func()) error
	Remove(id string)
}

type cronEntry struct {
	entryID cron.EntryID
	spec    string
}

// CronJobStore backs the JobStore with a robfig cron runner.
type CronJobStore struct {
	cron    *cron.Cron
	mu      sync.Mutex
	entries map[string]cronEntry
}

func NewCronJobStore() *CronJobStore {
	return &CronJobStore{
		cron:    cron.New(),
		entries: make(map[string]cronEntry),
	}
}

func (s *CronJobStore) Start() {
	s.cron.Start()
}

// Stop stops triggering new runs; a running job completes.
func (s *CronJobStore) Stop() {
	s.cron.Stop()
}

func (s *CronJobStore) Get(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	return entry.spec, ok
}

func (s *CronJobStore) Add(id, spec string, cmd func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entryID, err := s.cron.AddFunc(spec, cmd)
	if err != nil {
		return err
	}
	s.entries[id] = cronEntry{entryID: entryID, spec: spec}
	return nil
}

// Modify swaps the trigger under an id. The old entry is removed only
// after the new spec parses, so a bad spec never drops a live job.
func (s *CronJobStore) Modify(id, spec string, cmd func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entryID, err := s.cron.AddFunc(spec, cmd)
	if err != nil {
		return err
	}
	if old, ok := s.entries[id]; ok {
		s.cron.Remove(old.entryID)
	}
	s.entries[id] = cronEntry{entryID: entryID, spec: spec}
	return nil
}

func (s *CronJobStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.entries[id]; ok {
		s.cron.Remove(entry.entryID)
		delete(s.entries, id)
	}
}
