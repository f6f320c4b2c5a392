package quiz

import (
	quiz_constants "Spotiquiz/constants/quiz"
	"fmt"
	"log"
	"time"
)

// CloseReason tags what ended a round. Whichever arrives first wins; the
// other becomes a no-op because the round index has moved on.
type CloseReason string

const (
	CloseAllAnswered CloseReason = "all_answered"
	CloseDeadline    CloseReason = "deadline"
)

// Answer is what a client submits for the current round.
type Answer struct {
	QuestionIndex int   `json:"questionIndex"`
	SelectedIndex int   `json:"selectedIndex"`
	AnswerTimeMs  int64 `json:"answerTimeMs"`
}

// ValidateQuestions rejects sets the rounds could not grade: no questions,
// fewer than two options, or an answer index outside the options.
func ValidateQuestions(questions []Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidQuestions)
	}
	for i, q := range questions {
		if len(q.Options) < 2 {
			return fmt.Errorf("%w: question %d has %d options", ErrInvalidQuestions, i, len(q.Options))
		}
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			return fmt.Errorf("%w: question %d answer %d out of range", ErrInvalidQuestions, i, q.Answer)
		}
	}
	return nil
}

// SubmitQuestions installs the host's question set and starts round one.
// Only the host may call it, and only once both players are in.
func (s *RoomStore) SubmitQuestions(code string, p PlayerHandle, questions []Question) error {
	r, ok := s.lookup(code)
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.deleted {
		return ErrRoomNotFound
	}
	if p != r.host {
		log.Printf("[QUESTIONS-IGNORED] %s is not the host of room %s", p, code)
		return ErrUnauthorizedHost
	}
	if r.phase != PhaseAwaitingQuestions {
		log.Printf("[QUESTIONS-IGNORED] Room %s is in phase %s", code, r.phase)
		return ErrQuestionsAlreadySet
	}

	if len(questions) > s.maxQuestions {
		questions = questions[:s.maxQuestions]
	}
	if err := ValidateQuestions(questions); err != nil {
		log.Printf("[QUESTIONS-ERROR] Room %s: %v", code, err)
		return err
	}

	r.questions = make([]Question, len(questions))
	copy(r.questions, questions)
	r.currentQuestionIndex = -1
	log.Printf("[QUESTIONS] Host %s set %d questions for room %s", p, len(r.questions), code)

	s.broadcast(r, quiz_constants.EventSendQuestions, r.questions)
	s.startNextRound(r)
	return nil
}

// startNextRound advances to the next question, or finishes the game when
// none is left. Caller holds r.mu.
func (s *RoomStore) startNextRound(r *Room) {
	r.currentQuestionIndex++
	r.answeredThisRound = make(map[PlayerHandle]struct{})

	if r.currentQuestionIndex >= len(r.questions) || r.currentQuestionIndex >= s.maxQuestions {
		s.finishGame(r)
		return
	}

	index := r.currentQuestionIndex
	deadline := s.clock.Now().Add(s.roundDuration)
	r.roundDeadline = deadline
	r.phase = PhaseRoundActive

	log.Printf("[ROUND-START] Room %s round %d, deadline %s", r.Code, index, deadline.Format(time.RFC3339))
	s.broadcast(r, quiz_constants.EventQuestionStart, QuestionStartPayload{
		Index:    index,
		Deadline: deadline.UnixMilli(),
	})

	r.stopTimer()
	r.timer = s.clock.AfterFunc(s.roundDuration, func() {
		s.onDeadline(r, index)
	})
	s.notifyUpdated(r)
}

func (s *RoomStore) onDeadline(r *Room, index int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.deleted {
		log.Printf("[ROUND-TIMEOUT-INFO] Room %s already deleted, skipping", r.Code)
		return
	}
	s.closeRound(r, index, CloseDeadline)
}

// closeRound ends round index exactly once: it reveals the answer and the
// scores, then moves on. Returns false when the round had already ended.
// Caller holds r.mu.
func (s *RoomStore) closeRound(r *Room, index int, reason CloseReason) bool {
	if r.phase != PhaseRoundActive || r.currentQuestionIndex != index {
		log.Printf("[ROUND-END-INFO] Round %d of room %s already ended, skipping (%s)", index, r.Code, reason)
		return false
	}

	r.stopTimer()
	r.phase = PhaseRoundGrading
	r.roundDeadline = time.Time{}

	log.Printf("[ROUND-END] Room %s round %d closed (%s)", r.Code, index, reason)
	s.broadcast(r, quiz_constants.EventQuestionEnd, QuestionEndPayload{
		Index:        index,
		CorrectIndex: r.questions[index].Answer,
		Scores:       r.scoresCopy(),
	})

	s.startNextRound(r)
	return true
}

// SubmitAnswer grades p's answer for the current round. Stale and repeated
// answers are rejected without touching any score.
func (s *RoomStore) SubmitAnswer(code string, p PlayerHandle, answer Answer) error {
	r, ok := s.lookup(code)
	if !ok {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.deleted {
		return ErrRoomNotFound
	}
	if !r.isMember(p) {
		return ErrNotInRoom
	}
	if r.phase != PhaseRoundActive || answer.QuestionIndex != r.currentQuestionIndex {
		return ErrStaleAnswer
	}
	if _, done := r.answeredThisRound[p]; done {
		return ErrDuplicateAnswer
	}

	question := r.questions[r.currentQuestionIndex]
	isCorrect := answer.SelectedIndex == question.Answer
	gained := ScoreFor(isCorrect, answer.AnswerTimeMs)
	r.scores[p] += gained
	r.answeredThisRound[p] = struct{}{}

	log.Printf("[ANSWER] %s answered round %d of room %s: correct=%t +%d",
		p, r.currentQuestionIndex, code, isCorrect, gained)
	s.broadcast(r, quiz_constants.EventPlayerAnswered, PlayerAnsweredPayload{
		PlayerID:  p,
		IsCorrect: isCorrect,
	})

	if r.allAnswered() {
		r.stopTimer()
		s.closeRound(r, r.currentQuestionIndex, CloseAllAnswered)
	} else {
		s.notifyUpdated(r)
	}
	return nil
}
