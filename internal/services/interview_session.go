package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionState is the live interview call lifecycle.
type SessionState string

const (
	SessionIdle       SessionState = "idle"
	SessionLoading    SessionState = "loading"
	SessionConnecting SessionState = "connecting"
	SessionActive     SessionState = "active"
	SessionEnding     SessionState = "ending"
	SessionEnded      SessionState = "ended"
)

// Session event types, mirroring the voice provider's client SDK.
const (
	EventCallStart    = "call-start"
	EventCallEnd      = "call-end"
	EventSpeechStart  = "speech-start"
	EventSpeechEnd    = "speech-end"
	EventVolumeLevel  = "volume-level"
	EventTranscript   = "transcript"
	EventStatusUpdate = "status-update"
	EventError        = "error"
)

// TranscriptSegment is one finalized speaker turn.
type TranscriptSegment struct {
	Role string
	Text string
}

// SessionEvent is one asynchronous update pushed from the client while the
// call runs.
type SessionEvent struct {
	Type           string
	Role           string
	Transcript     string
	TranscriptType string // "partial" or "final"
	Status         string
	Level          float64
	Message        string
}

// InterviewSession accumulates one live interview. Handlers mutate state
// under the mutex and return immediately; nothing here blocks on I/O.
// The durable transcript only ever receives finalized segments; the partial
// segment is a scratch value overwritten until the provider finalizes it.
type InterviewSession struct {
	ID            string
	ApplicationID uuid.UUID
	StepID        uuid.UUID
	AssistantID   string

	mu         sync.Mutex
	state      SessionState
	transcript []TranscriptSegment
	partial    *TranscriptSegment
	speaking   bool
	volume     float64
	lastError  string
	startedAt  time.Time
	endedAt    time.Time
	claimed    bool
}

func newInterviewSession(applicationID, stepID uuid.UUID, assistantID string) *InterviewSession {
	return &InterviewSession{
		ID:            uuid.New().String(),
		ApplicationID: applicationID,
		StepID:        stepID,
		AssistantID:   assistantID,
		state:         SessionConnecting,
	}
}

// State returns the current lifecycle state.
func (s *InterviewSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// HandleEvent applies one provider event. It returns true when this event
// moved the session into the ended state, which is the caller's cue to fire
// the one-shot analysis trigger.
func (s *InterviewSession) HandleEvent(ev SessionEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Type {
	case EventCallStart:
		if s.state == SessionConnecting || s.state == SessionLoading {
			s.state = SessionActive
			s.startedAt = time.Now()
			s.transcript = nil
			s.partial = nil
		}
	case EventTranscript:
		if s.state != SessionActive {
			return false
		}
		if ev.TranscriptType == "final" {
			s.transcript = append(s.transcript, TranscriptSegment{Role: ev.Role, Text: ev.Transcript})
			s.partial = nil
		} else {
			s.partial = &TranscriptSegment{Role: ev.Role, Text: ev.Transcript}
		}
	case EventSpeechStart:
		s.speaking = true
	case EventSpeechEnd:
		s.speaking = false
	case EventVolumeLevel:
		s.volume = ev.Level
	case EventError:
		// Surfaced to the client but the call keeps going.
		s.lastError = ev.Message
	case EventCallEnd:
		return s.markEndedLocked()
	case EventStatusUpdate:
		// Provider-initiated termination is handled identically to a
		// user-initiated one.
		if ev.Status == "ended" {
			return s.markEndedLocked()
		}
	}

	return false
}

// Finish moves the session to ending and then ended, for explicit user
// termination. Returns true when this call performed the transition.
func (s *InterviewSession) Finish() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == SessionEnded {
		return false
	}
	s.state = SessionEnding
	return s.markEndedLocked()
}

func (s *InterviewSession) markEndedLocked() bool {
	if s.state == SessionEnded {
		return false
	}
	s.state = SessionEnded
	s.endedAt = time.Now()
	s.partial = nil
	return true
}

// ClaimAnalysis atomically claims the one-shot analysis trigger. Only the
// first caller after the session ends gets true; double-fire on re-render or
// reconnect finds the claim already taken.
func (s *InterviewSession) ClaimAnalysis() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SessionEnded || s.claimed {
		return false
	}
	s.claimed = true
	return true
}

// ReleaseClaim undoes a claim whose analysis failed, so a manual retry can
// claim again.
func (s *InterviewSession) ReleaseClaim() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claimed = false
}

// FormattedTranscript renders the finalized segments with speaker labels.
// The partial scratch segment is never included.
func (s *InterviewSession) FormattedTranscript() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	for i, seg := range s.transcript {
		if i > 0 {
			b.WriteString("\n")
		}
		if seg.Role == "assistant" {
			fmt.Fprintf(&b, "Nala (Interviewer): %s", seg.Text)
		} else {
			fmt.Fprintf(&b, "Candidate: %s", seg.Text)
		}
	}
	return b.String()
}

// DurationSeconds reports the call length once the session has ended.
func (s *InterviewSession) DurationSeconds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.startedAt.IsZero() || s.endedAt.IsZero() {
		return 0
	}
	return int(s.endedAt.Sub(s.startedAt) / time.Second)
}

// LastError returns the most recent surfaced call error, if any.
func (s *InterviewSession) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// SessionRegistry tracks in-flight interview sessions by handle.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*InterviewSession
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*InterviewSession),
	}
}

func (r *SessionRegistry) Add(session *InterviewSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
}

func (r *SessionRegistry) Get(id string) (*InterviewSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	return session, ok
}

func (r *SessionRegistry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
