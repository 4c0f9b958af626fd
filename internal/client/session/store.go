// Package session owns the signed-in member state: an in-memory copy, a
// durable JSON blob in the metadata repository, and change notification —
// both in-process subscribers and detection of writes made by another
// process sharing the same local database.
package session

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"github.com/collectivehq/collective/internal/client/models"
	"github.com/collectivehq/collective/internal/client/repositories/metadata"
	"github.com/collectivehq/collective/internal/client/tokens"
	"github.com/collectivehq/collective/internal/logging"
)

const (
	blobKey     = "session"
	revisionKey = "session_rev"
)

// ProfileFetcher is the one backend operation the store needs.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context) (models.Session, error)
}

// Store keeps the in-memory session and the persisted blob equal after every
// mutating operation. All writes to the blob go through persistLocked, which
// also bumps the revision counter other processes watch.
type Store struct {
	mu      sync.RWMutex
	cur     models.Session
	lastRev int64

	meta    metadata.Repository
	tokens  tokens.Store
	fetcher ProfileFetcher
	log     logging.Logger

	subs []func(models.Session)
}

func NewStore(meta metadata.Repository, toks tokens.Store, fetcher ProfileFetcher, log logging.Logger) *Store {
	return &Store{meta: meta, tokens: toks, fetcher: fetcher, log: log}
}

// Current returns a snapshot of the session. The zero Session means nobody
// is signed in.
func (s *Store) Current() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Subscribe registers fn to run after every session change, including
// changes detected from another process. Not safe to call concurrently with
// notifications; register subscribers during startup.
func (s *Store) Subscribe(fn func(models.Session)) {
	s.subs = append(s.subs, fn)
}

func (s *Store) notify(snapshot models.Session) {
	for _, fn := range s.subs {
		fn(snapshot)
	}
}

// Initialize restores the persisted snapshot for immediate use, then — when
// an access token exists — fetches the authoritative profile and overwrites
// both copies. A blob that fails to parse counts as no session. The fetch
// error, if any, is returned so the route guard can map it; the restored
// snapshot stays in place except when the failure is terminal (the API
// client's logout hook clears it then).
func (s *Store) Initialize(ctx context.Context) error {
	restored, rev, err := s.load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	adminMode := s.cur.AdminMode || restored.AdminMode
	s.cur = restored
	s.cur.AdminMode = adminMode
	s.lastRev = rev
	snapshot := s.cur
	s.mu.Unlock()
	s.notify(snapshot)

	access, err := s.tokens.Get(ctx, tokens.Access)
	if err != nil {
		return err
	}
	refresh, err := s.tokens.Get(ctx, tokens.Refresh)
	if err != nil {
		return err
	}
	if access == "" && refresh == "" {
		return nil
	}

	fetched, err := s.fetcher.FetchProfile(ctx)
	if err != nil {
		return err
	}
	return s.SetProfile(ctx, fetched)
}

// SetProfile replaces the session with an authoritative profile, preserving
// the locally toggled admin mode, and persists the result.
func (s *Store) SetProfile(ctx context.Context, profile models.Session) error {
	s.mu.Lock()
	profile.AdminMode = s.cur.AdminMode && profile.IsAdmin
	s.cur = profile
	err := s.persistLocked(ctx)
	snapshot := s.cur
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(snapshot)
	return nil
}

// Update shallow-merges patch into the current session and persists the
// merged result.
func (s *Store) Update(ctx context.Context, patch models.SessionPatch) error {
	s.mu.Lock()
	s.cur = patch.Apply(s.cur)
	err := s.persistLocked(ctx)
	snapshot := s.cur
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(snapshot)
	return nil
}

// Logout clears the in-memory session, the persisted blob and both tokens.
// Safe to call repeatedly.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.cur = models.Session{}

	err := s.meta.Delete(ctx, blobKey)
	if err == nil {
		err = s.bumpRevisionLocked(ctx)
	}
	if err == nil {
		err = s.tokens.Clear(ctx)
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.notify(models.Session{})
	return nil
}

// persistLocked writes the current session blob and bumps the revision.
// Callers must hold mu and notify subscribers after releasing it.
func (s *Store) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.cur)
	if err != nil {
		return err
	}
	if err := s.meta.Set(ctx, blobKey, data); err != nil {
		return err
	}
	return s.bumpRevisionLocked(ctx)
}

func (s *Store) bumpRevisionLocked(ctx context.Context) error {
	rev, err := s.readRevision(ctx)
	if err != nil {
		return err
	}
	rev++
	if err := s.meta.Set(ctx, revisionKey, []byte(strconv.FormatInt(rev, 10))); err != nil {
		return err
	}
	s.lastRev = rev
	return nil
}

func (s *Store) readRevision(ctx context.Context) (int64, error) {
	raw, err := s.meta.Get(ctx, revisionKey)
	if err != nil {
		return 0, err
	}
	if len(raw) == 0 {
		return 0, nil
	}
	rev, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		// Corrupt counter: start over rather than fail.
		return 0, nil
	}
	return rev, nil
}

// load reads the persisted blob and revision. A corrupt blob yields an empty
// session, never an error.
func (s *Store) load(ctx context.Context) (models.Session, int64, error) {
	rev, err := s.readRevision(ctx)
	if err != nil {
		return models.Session{}, 0, err
	}

	raw, err := s.meta.Get(ctx, blobKey)
	if err != nil {
		return models.Session{}, 0, err
	}
	if len(raw) == 0 {
		return models.Session{}, rev, nil
	}

	var restored models.Session
	if err := json.Unmarshal(raw, &restored); err != nil {
		s.log.Warn(ctx, "stored session blob is corrupt, treating as absent")
		return models.Session{}, rev, nil
	}
	return restored, rev, nil
}

// CheckExternal reloads the session if another process has bumped the
// revision since our last write or check. Returns true when a change was
// picked up.
func (s *Store) CheckExternal(ctx context.Context) (bool, error) {
	rev, err := s.readRevision(ctx)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	if rev == s.lastRev {
		s.mu.Unlock()
		return false, nil
	}
	s.mu.Unlock()

	restored, rev, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	s.cur = restored
	s.lastRev = rev
	snapshot := s.cur
	s.mu.Unlock()

	s.log.Debug(ctx, "session changed externally, reloaded")
	s.notify(snapshot)
	return true, nil
}
