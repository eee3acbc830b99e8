// Package store persists user profiles in a single JSON file, loaded
// wholesale and rewritten wholesale on each mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fabianqube/Telegram-Weather-Bot/internal/domain"
)

// Outcome describes what an UpsertLocation call did.
type Outcome int

const (
	// OutcomeCreatedProfile means the user had no (valid) profile, so one
	// was created with defaults and the location appended.
	OutcomeCreatedProfile Outcome = iota
	// OutcomeAdded means the location was appended to an existing profile.
	OutcomeAdded
	// OutcomeDuplicate means the location was already saved; storage was
	// not touched. Not an error.
	OutcomeDuplicate
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreatedProfile:
		return "created_profile"
	case OutcomeAdded:
		return "added"
	case OutcomeDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// ProfileStore is the persistence port for user profiles.
type ProfileStore interface {
	// UpsertLocation runs load-or-create, membership check, append,
	// persist as one atomic step and returns the outcome together with
	// the resulting profile.
	UpsertLocation(ctx context.Context, userID, location string) (Outcome, domain.UserProfile, error)

	// Profile returns the stored profile for userID, reporting whether
	// one exists.
	Profile(ctx context.Context, userID string) (domain.UserProfile, bool, error)
}

// FileStore implements ProfileStore over a JSON file. The on-disk format
// has no row-level addressing, so a single mutex serializes every
// load-modify-save cycle; writes go through a temp file and rename so a
// reader never observes a partial store.
type FileStore struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
}

// New creates a FileStore persisting to path.
func New(path string, logger *slog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

func (s *FileStore) UpsertLocation(ctx context.Context, userID, location string) (Outcome, domain.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return 0, domain.UserProfile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return 0, domain.UserProfile{}, err
	}

	profile, existed := s.decodeProfile(data, userID)

	outcome := OutcomeAdded
	if !existed {
		outcome = OutcomeCreatedProfile
	}

	if profile.HasLocation(location) {
		return OutcomeDuplicate, profile, nil
	}
	profile.AddLocation(location)

	raw, err := json.Marshal(profile)
	if err != nil {
		return 0, domain.UserProfile{}, fmt.Errorf("encode profile: %w", err)
	}
	data[userID] = raw

	if err := s.save(data); err != nil {
		return 0, domain.UserProfile{}, err
	}
	s.logger.Info("location saved", "user_id", userID, "location", location, "outcome", outcome.String())
	return outcome, profile, nil
}

func (s *FileStore) Profile(ctx context.Context, userID string) (domain.UserProfile, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserProfile{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return domain.UserProfile{}, false, err
	}
	if _, ok := data[userID]; !ok {
		return domain.UserProfile{}, false, nil
	}
	profile, existed := s.decodeProfile(data, userID)
	return profile, existed, nil
}

// decodeProfile parses the stored record for userID. A record that fails
// to parse or validate is discarded and replaced by a fresh default
// profile; resetting beats attempting a partial repair of an unknown
// shape. Returns existed=false when the result is a fresh profile.
func (s *FileStore) decodeProfile(data map[string]json.RawMessage, userID string) (domain.UserProfile, bool) {
	raw, ok := data[userID]
	if !ok {
		return domain.NewProfile(), false
	}

	var profile domain.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil || !profile.Valid() {
		s.logger.Warn("invalid stored profile, resetting", "user_id", userID)
		return domain.NewProfile(), false
	}
	return profile, true
}

// load reads the whole store. An absent file is initialized to an empty
// mapping so first use never fails with not-found.
func (s *FileStore) load() (map[string]json.RawMessage, error) {
	content, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		if err := s.save(map[string]json.RawMessage{}); err != nil {
			return nil, err
		}
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}

	data := map[string]json.RawMessage{}
	if err := json.Unmarshal(content, &data); err != nil {
		// The file as a whole is unreadable. Start over from an empty
		// mapping; the profiles are re-creatable and a broken store would
		// otherwise wedge every save.
		s.logger.Warn("store file is corrupt, resetting", "path", s.path, "error", err)
		return map[string]json.RawMessage{}, nil
	}
	return data, nil
}

// save rewrites the whole store via temp-file-plus-rename.
func (s *FileStore) save(data map[string]json.RawMessage) error {
	content, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}
