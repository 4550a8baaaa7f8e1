package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession() *InterviewSession {
	return newInterviewSession(uuid.New(), uuid.New(), "assistant-1")
}

func TestSessionLifecycle(t *testing.T) {
	session := newTestSession()
	assert.Equal(t, SessionConnecting, session.State())

	ended := session.HandleEvent(SessionEvent{Type: EventCallStart})
	assert.False(t, ended)
	assert.Equal(t, SessionActive, session.State())

	ended = session.HandleEvent(SessionEvent{Type: EventCallEnd})
	assert.True(t, ended)
	assert.Equal(t, SessionEnded, session.State())

	// A second call-end must not report a fresh transition.
	ended = session.HandleEvent(SessionEvent{Type: EventCallEnd})
	assert.False(t, ended)
}

func TestSessionStatusUpdateEnds(t *testing.T) {
	session := newTestSession()
	session.HandleEvent(SessionEvent{Type: EventCallStart})

	ended := session.HandleEvent(SessionEvent{Type: EventStatusUpdate, Status: "in-progress"})
	assert.False(t, ended)
	assert.Equal(t, SessionActive, session.State())

	ended = session.HandleEvent(SessionEvent{Type: EventStatusUpdate, Status: "ended"})
	assert.True(t, ended)
	assert.Equal(t, SessionEnded, session.State())
}

func TestSessionErrorDoesNotEndCall(t *testing.T) {
	session := newTestSession()
	session.HandleEvent(SessionEvent{Type: EventCallStart})

	ended := session.HandleEvent(SessionEvent{Type: EventError, Message: "network blip"})
	assert.False(t, ended)
	assert.Equal(t, SessionActive, session.State())
	assert.Equal(t, "network blip", session.LastError())
}

func TestSessionTranscriptAccumulation(t *testing.T) {
	session := newTestSession()
	session.HandleEvent(SessionEvent{Type: EventCallStart})

	// Partials overwrite each other and never reach the durable transcript.
	session.HandleEvent(SessionEvent{Type: EventTranscript, Role: "assistant", Transcript: "Tell me", TranscriptType: "partial"})
	session.HandleEvent(SessionEvent{Type: EventTranscript, Role: "assistant", Transcript: "Tell me about", TranscriptType: "partial"})
	assert.Empty(t, session.FormattedTranscript())

	session.HandleEvent(SessionEvent{Type: EventTranscript, Role: "assistant", Transcript: "Tell me about yourself.", TranscriptType: "final"})
	session.HandleEvent(SessionEvent{Type: EventTranscript, Role: "user", Transcript: "I build APIs in Go.", TranscriptType: "final"})

	got := session.FormattedTranscript()
	assert.Equal(t, "Nala (Interviewer): Tell me about yourself.\nCandidate: I build APIs in Go.", got)
}

func TestSessionTranscriptIgnoredBeforeStart(t *testing.T) {
	session := newTestSession()

	session.HandleEvent(SessionEvent{Type: EventTranscript, Role: "user", Transcript: "early words", TranscriptType: "final"})
	assert.Empty(t, session.FormattedTranscript())
}

func TestSessionClaimAnalysisAtMostOnce(t *testing.T) {
	session := newTestSession()
	session.HandleEvent(SessionEvent{Type: EventCallStart})

	// Cannot claim while the call is still running.
	assert.False(t, session.ClaimAnalysis())

	require.True(t, session.HandleEvent(SessionEvent{Type: EventCallEnd}))

	assert.True(t, session.ClaimAnalysis())
	assert.False(t, session.ClaimAnalysis())

	// A failed analysis releases the claim for a retry.
	session.ReleaseClaim()
	assert.True(t, session.ClaimAnalysis())
}

func TestSessionFinish(t *testing.T) {
	session := newTestSession()
	session.HandleEvent(SessionEvent{Type: EventCallStart})

	assert.True(t, session.Finish())
	assert.Equal(t, SessionEnded, session.State())
	assert.False(t, session.Finish())
}

func TestSessionRegistry(t *testing.T) {
	registry := NewSessionRegistry()
	session := newTestSession()

	registry.Add(session)

	got, ok := registry.Get(session.ID)
	require.True(t, ok)
	assert.Equal(t, session, got)

	registry.Remove(session.ID)
	_, ok = registry.Get(session.ID)
	assert.False(t, ok)
}
