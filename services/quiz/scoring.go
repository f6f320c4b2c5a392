package quiz

import (
	quiz_constants "Spotiquiz/constants/quiz"
	"math"
)

// AnswerScore returns the points awarded for a correct answer given after
// elapsedMs milliseconds: 1000 at zero latency, decaying exponentially, never
// below 100. Negative latencies are treated as zero.
func AnswerScore(elapsedMs int64) int {
	if elapsedMs < 0 {
		elapsedMs = 0
	}
	decayed := math.Floor(quiz_constants.MaxAnswerScore *
		math.Exp(-float64(elapsedMs)/quiz_constants.ScoreDecayWindow))
	return max(quiz_constants.MinAnswerScore, int(decayed))
}

// ScoreFor is AnswerScore for correct answers and 0 otherwise.
func ScoreFor(correct bool, elapsedMs int64) int {
	if !correct {
		return 0
	}
	return AnswerScore(elapsedMs)
}
