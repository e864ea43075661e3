package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDuelSessionParticipants(t *testing.T) {
	sess := &DuelSession{CreatorTeam: TeamRed}

	assert.True(t, sess.AddParticipant(Participant{UserID: "a", Username: "A", Team: TeamRed}))
	assert.True(t, sess.AddParticipant(Participant{UserID: "b", Username: "B", Team: TeamBlue}))
	assert.False(t, sess.AddParticipant(Participant{UserID: "a", Username: "A2"}), "duplicate ids are rejected")
	assert.Len(t, sess.Participants, 2)

	assert.True(t, sess.HasParticipant("b"))
	assert.False(t, sess.HasParticipant("c"))
	assert.Equal(t, TeamBlue, sess.ParticipantTeam("b"))
	assert.Empty(t, sess.ParticipantTeam("c"))
}

func TestDuelSessionTeams(t *testing.T) {
	assert.False(t, (&DuelSession{}).TeamMode())
	assert.True(t, (&DuelSession{CreatorTeam: TeamRed}).TeamMode())
	assert.False(t, (&DuelSession{CreatorTeam: "purple"}).TeamMode())

	assert.Equal(t, TeamBlue, (&DuelSession{CreatorTeam: TeamRed}).OpposingTeam())
	assert.Equal(t, TeamRed, (&DuelSession{CreatorTeam: TeamBlue}).OpposingTeam())
	assert.Empty(t, (&DuelSession{}).OpposingTeam())
}
