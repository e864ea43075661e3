package duel

import (
	"sync"
	"sync/atomic"
	"time"
)

// ActionRecord is one immutable entry of a session's live event log.
type ActionRecord struct {
	ActorID   string    `json:"actor_id"`
	ActorName string    `json:"actor_name"`
	Payload   string    `json:"payload"`
	TargetID  string    `json:"target_id,omitempty"`
	IsCorrect bool      `json:"is_correct"`
	Score     int       `json:"score"`
	Feedback  string    `json:"feedback"`
	Timestamp time.Time `json:"timestamp"`
}

// LiveState is the fast-mutating in-memory mirror of one session. All map
// and log access happens under mu; the engine holds it across evaluate,
// persist and broadcast so concurrent actors in the same session cannot
// lose updates. The running flag is the cancellation signal for bot loops.
type LiveState struct {
	mu      sync.Mutex
	running atomic.Bool

	Scores    map[string]int
	HP        map[string]int
	Cooldowns map[string]int64
	Log       []ActionRecord
}

func newLiveState() *LiveState {
	s := &LiveState{
		Scores:    make(map[string]int),
		HP:        make(map[string]int),
		Cooldowns: make(map[string]int64),
	}
	s.running.Store(true)
	return s
}

func (s *LiveState) Running() bool { return s.running.Load() }
func (s *LiveState) Stop()         { s.running.Store(false) }

// untouched reports whether no gameplay ever landed here. Callers hold mu.
func (s *LiveState) untouched() bool {
	return len(s.Scores) == 0 && len(s.HP) == 0 && len(s.Cooldowns) == 0 && len(s.Log) == 0
}

// Registry owns the mapping from session code to live state.
type Registry struct {
	mu     sync.Mutex
	states map[string]*LiveState
}

func NewRegistry() *Registry {
	return &Registry{states: make(map[string]*LiveState)}
}

// GetOrCreate returns the live state for a code, creating it atomically so
// exactly one caller wins initialization.
func (r *Registry) GetOrCreate(code string) *LiveState {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.states[code]; ok {
		return s
	}
	s := newLiveState()
	r.states[code] = s
	return s
}

func (r *Registry) Get(code string) (*LiveState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.states[code]
	return s, ok
}

// Remove drops a session's live state. The state itself stays valid for
// holders of the pointer; only the lookup is released.
func (r *Registry) Remove(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, code)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}
