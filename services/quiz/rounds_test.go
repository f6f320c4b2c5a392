package quiz

import (
	quiz_constants "Spotiquiz/constants/quiz"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitQuestionsStartsFirstRound(t *testing.T) {
	s, emitter, clock := newTestStore()
	code, _ := s.CreateRoom(host)
	require.NoError(t, s.JoinRoom(code, guest))

	questions := sampleQuestions(2)
	require.NoError(t, s.SubmitQuestions(code, host, questions))

	sent := emitter.named(quiz_constants.EventSendQuestions)
	require.Len(t, sent, 1)
	assert.Equal(t, questions, sent[0].Payload)
	assert.ElementsMatch(t, []PlayerHandle{host, guest}, sent[0].To)

	starts := emitter.named(quiz_constants.EventQuestionStart)
	require.Len(t, starts, 1)
	want := clock.Now().Add(15 * time.Second).UnixMilli()
	assert.Equal(t, QuestionStartPayload{Index: 0, Deadline: want}, starts[0].Payload)

	assert.Equal(t, []string{
		quiz_constants.EventStartGame,
		quiz_constants.EventSendQuestions,
		quiz_constants.EventQuestionStart,
	}, emitter.sequence())

	snap, _ := s.Snapshot(code)
	assert.Equal(t, PhaseRoundActive, snap.Phase)
	assert.Equal(t, 0, snap.CurrentQuestionIndex)
	assert.Equal(t, clock.Now().Add(15*time.Second), snap.RoundDeadline)
	assert.Equal(t, 1, clock.Active())
}

func TestSubmitQuestionsHostOnly(t *testing.T) {
	s, emitter, clock := newTestStore()
	code, _ := s.CreateRoom(host)
	require.NoError(t, s.JoinRoom(code, guest))

	err := s.SubmitQuestions(code, guest, sampleQuestions(3))
	assert.ErrorIs(t, err, ErrUnauthorizedHost)

	snap, _ := s.Snapshot(code)
	assert.Empty(t, snap.Questions)
	assert.Equal(t, -1, snap.CurrentQuestionIndex)
	assert.Empty(t, emitter.named(quiz_constants.EventSendQuestions))
	assert.Equal(t, 0, clock.Active())
}

func TestSubmitQuestionsNeedsSecondPlayer(t *testing.T) {
	s, _, _ := newTestStore()
	code, _ := s.CreateRoom(host)

	assert.ErrorIs(t, s.SubmitQuestions(code, host, sampleQuestions(1)), ErrQuestionsAlreadySet)
	assert.ErrorIs(t, s.SubmitQuestions("missing", host, sampleQuestions(1)), ErrRoomNotFound)
}

func TestSubmitQuestionsOnlyOnce(t *testing.T) {
	s, emitter, _ := newTestStore()
	code := startedRoom(s, 2)

	assert.ErrorIs(t, s.SubmitQuestions(code, host, sampleQuestions(5)), ErrQuestionsAlreadySet)
	snap, _ := s.Snapshot(code)
	assert.Len(t, snap.Questions, 2)
	assert.Equal(t, 0, snap.CurrentQuestionIndex)
	assert.Len(t, emitter.named(quiz_constants.EventSendQuestions), 1)
}

func TestSubmitQuestionsTruncatesToTen(t *testing.T) {
	s, emitter, _ := newTestStore()
	code := startedRoom(s, 14)

	snap, _ := s.Snapshot(code)
	assert.Len(t, snap.Questions, quiz_constants.MaxQuestions)
	sent := emitter.named(quiz_constants.EventSendQuestions)
	assert.Len(t, sent[0].Payload, quiz_constants.MaxQuestions)
}

func TestSubmitQuestionsRejectsMalformedSets(t *testing.T) {
	tests := []struct {
		name      string
		questions []Question
	}{
		{"empty", nil},
		{"single option", []Question{{Text: "?", Options: []string{"only"}, Answer: 0}}},
		{"answer past options", []Question{{Text: "?", Options: []string{"a", "b"}, Answer: 2}}},
		{"negative answer", []Question{{Text: "?", Options: []string{"a", "b"}, Answer: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, emitter, _ := newTestStore()
			code, _ := s.CreateRoom(host)
			require.NoError(t, s.JoinRoom(code, guest))

			assert.ErrorIs(t, s.SubmitQuestions(code, host, tt.questions), ErrInvalidQuestions)
			assert.Empty(t, emitter.named(quiz_constants.EventSendQuestions))

			// the host can still send a good set afterwards
			assert.NoError(t, s.SubmitQuestions(code, host, sampleQuestions(1)))
		})
	}
}

func TestBothAnswerCorrectlyEndsRoundImmediately(t *testing.T) {
	s, emitter, clock := newTestStore()
	code := startedRoom(s, 2)

	require.NoError(t, s.SubmitAnswer(code, host, Answer{QuestionIndex: 0, SelectedIndex: 0, AnswerTimeMs: 0}))
	assert.Empty(t, emitter.named(quiz_constants.EventQuestionEnd))
	require.NoError(t, s.SubmitAnswer(code, guest, Answer{QuestionIndex: 0, SelectedIndex: 0, AnswerTimeMs: 5000}))

	ends := emitter.named(quiz_constants.EventQuestionEnd)
	require.Len(t, ends, 1)
	assert.Equal(t, QuestionEndPayload{
		Index:        0,
		CorrectIndex: 0,
		Scores:       map[PlayerHandle]int{host: 1000, guest: 606},
	}, ends[0].Payload)

	answered := emitter.named(quiz_constants.EventPlayerAnswered)
	require.Len(t, answered, 2)
	assert.Equal(t, PlayerAnsweredPayload{PlayerID: host, IsCorrect: true}, answered[0].Payload)

	// round 1 started without the clock moving, and round 0's timer is gone
	snap, _ := s.Snapshot(code)
	assert.Equal(t, 1, snap.CurrentQuestionIndex)
	assert.Equal(t, PhaseRoundActive, snap.Phase)
	assert.Empty(t, snap.Answered)
	assert.Equal(t, 1, clock.Active())
}

func TestIncorrectAnswerScoresNothing(t *testing.T) {
	s, _, _ := newTestStore()
	code := startedRoom(s, 2)

	require.NoError(t, s.SubmitAnswer(code, host, Answer{QuestionIndex: 0, SelectedIndex: 3, AnswerTimeMs: 10}))
	snap, _ := s.Snapshot(code)
	assert.Equal(t, 0, snap.Scores[host])
	assert.Equal(t, []PlayerHandle{host}, snap.Answered)
}

func TestDuplicateAnswerIsIgnored(t *testing.T) {
	s, emitter, _ := newTestStore()
	code := startedRoom(s, 2)

	require.NoError(t, s.SubmitAnswer(code, host, Answer{QuestionIndex: 0, SelectedIndex: 1, AnswerTimeMs: 100}))
	err := s.SubmitAnswer(code, host, Answer{QuestionIndex: 0, SelectedIndex: 0, AnswerTimeMs: 0})
	assert.ErrorIs(t, err, ErrDuplicateAnswer)

	snap, _ := s.Snapshot(code)
	assert.Equal(t, 0, snap.Scores[host])
	assert.Len(t, emitter.named(quiz_constants.EventPlayerAnswered), 1)
}

func TestStaleAndForeignAnswers(t *testing.T) {
	s, _, _ := newTestStore()
	code := startedRoom(s, 2)

	assert.ErrorIs(t, s.SubmitAnswer(code, host, Answer{QuestionIndex: 1, SelectedIndex: 1}), ErrStaleAnswer)
	assert.ErrorIs(t, s.SubmitAnswer(code, host, Answer{QuestionIndex: -1, SelectedIndex: 0}), ErrStaleAnswer)
	assert.ErrorIs(t, s.SubmitAnswer(code, "intruder", Answer{QuestionIndex: 0, SelectedIndex: 0}), ErrNotInRoom)
	assert.ErrorIs(t, s.SubmitAnswer("missing", host, Answer{QuestionIndex: 0}), ErrRoomNotFound)

	snap, _ := s.Snapshot(code)
	assert.Empty(t, snap.Answered)
	assert.Equal(t, map[PlayerHandle]int{host: 0, guest: 0}, snap.Scores)
}

func TestDeadlineClosesRound(t *testing.T) {
	s, emitter, clock := newTestStore()
	code := startedRoom(s, 2)

	require.NoError(t, s.SubmitAnswer(code, host, Answer{QuestionIndex: 0, SelectedIndex: 0, AnswerTimeMs: 2000}))

	clock.Advance(14 * time.Second)
	assert.Empty(t, emitter.named(quiz_constants.EventQuestionEnd))

	clock.Advance(time.Second)
	ends := emitter.named(quiz_constants.EventQuestionEnd)
	require.Len(t, ends, 1)
	payload := ends[0].Payload.(QuestionEndPayload)
	assert.Equal(t, 0, payload.Index)
	assert.Equal(t, AnswerScore(2000), payload.Scores[host])
	assert.Equal(t, 0, payload.Scores[guest])

	// next round runs on a fresh deadline
	starts := emitter.named(quiz_constants.EventQuestionStart)
	require.Len(t, starts, 2)
	assert.Equal(t, clock.Now().Add(15*time.Second).UnixMilli(), starts[1].Payload.(QuestionStartPayload).Deadline)
}

func TestAllAnsweredThenDeadlineClosesOnce(t *testing.T) {
	s, emitter, clock := newTestStore()
	code := startedRoom(s, 3)

	require.NoError(t, s.SubmitAnswer(code, host, Answer{QuestionIndex: 0, SelectedIndex: 0}))
	require.NoError(t, s.SubmitAnswer(code, guest, Answer{QuestionIndex: 0, SelectedIndex: 2}))

	// round 0's callback fires late anyway
	clock.fireAll()

	perIndex := map[int]int{}
	for _, ev := range emitter.named(quiz_constants.EventQuestionEnd) {
		perIndex[ev.Payload.(QuestionEndPayload).Index]++
	}
	// fireAll also ran round 1's timer, which legitimately closes round 1
	assert.Equal(t, map[int]int{0: 1, 1: 1}, perIndex)
}

func TestDeadlineThenLateAnswerClosesOnce(t *testing.T) {
	s, emitter, clock := newTestStore()
	code := startedRoom(s, 3)

	require.NoError(t, s.SubmitAnswer(code, host, Answer{QuestionIndex: 0, SelectedIndex: 0}))
	clock.Advance(quiz_constants.RoundDuration)

	err := s.SubmitAnswer(code, guest, Answer{QuestionIndex: 0, SelectedIndex: 0, AnswerTimeMs: 14999})
	assert.ErrorIs(t, err, ErrStaleAnswer)

	ends := emitter.named(quiz_constants.EventQuestionEnd)
	require.Len(t, ends, 1)
	assert.Equal(t, 0, ends[0].Payload.(QuestionEndPayload).Scores[guest])
}

func TestSingleQuestionGameEndsWithLeaderboard(t *testing.T) {
	s, emitter, clock := newTestStore()
	code := startedRoom(s, 1)
	require.NoError(t, s.SetPlayerName(code, guest, "Kim"))

	require.NoError(t, s.SubmitAnswer(code, host, Answer{QuestionIndex: 0, SelectedIndex: 1, AnswerTimeMs: 100}))
	require.NoError(t, s.SubmitAnswer(code, guest, Answer{QuestionIndex: 0, SelectedIndex: 0, AnswerTimeMs: 3000}))

	seq := emitter.sequence()
	require.GreaterOrEqual(t, len(seq), 2)
	assert.Equal(t, []string{quiz_constants.EventQuestionEnd, quiz_constants.EventGameOver}, seq[len(seq)-2:])

	over := emitter.named(quiz_constants.EventGameOver)
	require.Len(t, over, 1)
	assert.Equal(t, GameOverPayload{Leaderboard: []LeaderboardEntry{
		{PlayerID: guest, Name: "Kim", Score: AnswerScore(3000)},
		{PlayerID: host, Name: string(host), Score: 0},
	}}, over[0].Payload)

	snap, ok := s.Snapshot(code)
	require.True(t, ok, "room stays until players leave")
	assert.Equal(t, PhaseGameOver, snap.Phase)
	assert.Equal(t, 0, clock.Active())

	assert.ErrorIs(t, s.SubmitAnswer(code, host, Answer{QuestionIndex: 1}), ErrStaleAnswer)
	assert.ErrorIs(t, s.SubmitQuestions(code, host, sampleQuestions(1)), ErrQuestionsAlreadySet)
}

func TestFullGameByTimeouts(t *testing.T) {
	s, emitter, clock := newTestStore()
	startedRoom(s, 3)

	for i := 0; i < 3; i++ {
		clock.Advance(quiz_constants.RoundDuration)
	}

	assert.Len(t, emitter.named(quiz_constants.EventQuestionStart), 3)
	assert.Len(t, emitter.named(quiz_constants.EventQuestionEnd), 3)
	assert.Len(t, emitter.named(quiz_constants.EventGameOver), 1)
	assert.Equal(t, 0, clock.Active())
}

func TestMaxQuestionsOption(t *testing.T) {
	s, _, _ := newTestStore(WithMaxQuestions(3))
	code := startedRoom(s, 8)
	snap, _ := s.Snapshot(code)
	assert.Len(t, snap.Questions, 3)

	s2, _, _ := newTestStore(WithMaxQuestions(50))
	code2 := startedRoom(s2, 12)
	snap2, _ := s2.Snapshot(code2)
	assert.Len(t, snap2.Questions, quiz_constants.MaxQuestions)
}

func TestDisconnectMidRoundKeepsDeadline(t *testing.T) {
	s, emitter, clock := newTestStore()
	code := startedRoom(s, 2)

	s.RemoveConnection(guest)
	assert.Empty(t, emitter.named(quiz_constants.EventQuestionEnd))

	clock.Advance(quiz_constants.RoundDuration)
	ends := emitter.named(quiz_constants.EventQuestionEnd)
	require.Len(t, ends, 1)
	assert.Equal(t, []PlayerHandle{host}, ends[0].To)

	snap, _ := s.Snapshot(code)
	assert.Equal(t, 1, snap.CurrentQuestionIndex)
}

func TestDisconnectOfLastUnansweredPlayerClosesRound(t *testing.T) {
	s, emitter, _ := newTestStore()
	code := startedRoom(s, 2)

	require.NoError(t, s.SubmitAnswer(code, host, Answer{QuestionIndex: 0, SelectedIndex: 0}))
	s.RemoveConnection(guest)

	ends := emitter.named(quiz_constants.EventQuestionEnd)
	require.Len(t, ends, 1)
	assert.Equal(t, map[PlayerHandle]int{host: 1000}, ends[0].Payload.(QuestionEndPayload).Scores)

	snap, _ := s.Snapshot(code)
	assert.Equal(t, 1, snap.CurrentQuestionIndex)
}

func TestHostLeavingKeepsHostFixed(t *testing.T) {
	s, _, _ := newTestStore()
	code, _ := s.CreateRoom(host)
	require.NoError(t, s.JoinRoom(code, guest))

	s.RemoveConnection(host)
	require.NoError(t, s.JoinRoom(code, "socket-3"))

	snap, _ := s.Snapshot(code)
	assert.Equal(t, host, snap.Host)
	assert.ErrorIs(t, s.SubmitQuestions(code, guest, sampleQuestions(1)), ErrUnauthorizedHost)
}
