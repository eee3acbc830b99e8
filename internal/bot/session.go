package bot

import "sync"

// Step identifies the dialog step a chat is in. Sessions are ephemeral:
// they live in process memory and are lost on restart, which is accepted
// because resumable dialogs are out of scope.
type Step string

const (
	StepIdle                    Step = "idle"
	StepAwaitingWeatherLocation Step = "awaiting_weather_location"
	StepAwaitingSaveLocation    Step = "awaiting_save_location"
)

// SessionStore tracks dialog steps per chat. Implementations must be safe
// for concurrent use; concurrent events for the same chat are an accepted
// race where the last write wins.
type SessionStore interface {
	Step(chatID int64) Step
	Set(chatID int64, step Step)
	Clear(chatID int64)
	Active() int
}

// MemorySessionStore keeps sessions in a mutex-guarded map. A chat with no
// entry is implicitly idle.
type MemorySessionStore struct {
	mu    sync.RWMutex
	steps map[int64]Step
}

// NewMemorySessionStore creates an empty session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{steps: make(map[int64]Step)}
}

func (s *MemorySessionStore) Step(chatID int64) Step {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if step, ok := s.steps[chatID]; ok {
		return step
	}
	return StepIdle
}

func (s *MemorySessionStore) Set(chatID int64, step Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if step == StepIdle {
		delete(s.steps, chatID)
		return
	}
	s.steps[chatID] = step
}

func (s *MemorySessionStore) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.steps, chatID)
}

// Active returns the number of chats currently awaiting input.
func (s *MemorySessionStore) Active() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.steps)
}
