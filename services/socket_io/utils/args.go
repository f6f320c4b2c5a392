package socketio_utils

import (
	"Spotiquiz/services/quiz"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Ack replies to the client that emitted the event.
type Ack func(payload any)

var errMissingField = errors.New("missing field")

// AckFrom splits off the trailing acknowledgement callback socket.io appends
// when the client passed one. ack is nil when there is none.
func AckFrom(args []any) (Ack, []any) {
	if len(args) == 0 {
		return nil, args
	}
	fn := reflect.ValueOf(args[len(args)-1])
	if fn.Kind() != reflect.Func {
		return nil, args
	}
	return func(payload any) { callAck(fn, payload) }, args[:len(args)-1]
}

// callAck invokes fn with payload as its only argument. Both func(...any)
// and func([]any, error) shaped callbacks are accepted.
func callAck(fn reflect.Value, payload any) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ACK-ERROR] callback %s rejected payload: %v", fn.Type(), r)
		}
	}()

	t := fn.Type()
	in := make([]reflect.Value, t.NumIn())
	for i := range in {
		pt := t.In(i)
		switch {
		case i == 0 && pt.Kind() == reflect.Slice && pt.Elem().Kind() == reflect.Interface:
			list := reflect.MakeSlice(pt, 1, 1)
			if payload != nil {
				list.Index(0).Set(reflect.ValueOf(payload))
			}
			in[i] = list
		case i == 0 && payload != nil && reflect.TypeOf(payload).AssignableTo(pt):
			in[i] = reflect.ValueOf(payload)
		default:
			in[i] = reflect.Zero(pt)
		}
	}
	if t.IsVariadic() {
		fn.CallSlice(in)
		return
	}
	fn.Call(in)
}

// StringArg returns args[i] trimmed when it is a string.
func StringArg(args []any, i int) (string, bool) {
	s, ok := RawStringArg(args, i)
	return strings.TrimSpace(s), ok
}

// RawStringArg returns args[i] as sent when it is a string.
func RawStringArg(args []any, i int) (string, bool) {
	if i >= len(args) {
		return "", false
	}
	s, ok := args[i].(string)
	return s, ok
}

// Int64Arg accepts the number shapes a JSON decoder may hand over, plus
// numeric strings.
func Int64Arg(args []any, i int) (int64, bool) {
	if i >= len(args) {
		return 0, false
	}
	return toInt64(args[i])
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	}
	return 0, false
}

// DecodeQuestions re-reads a decoded JSON value as a question list.
func DecodeQuestions(raw any) ([]quiz.Question, error) {
	if raw == nil {
		return nil, fmt.Errorf("questions: %w", errMissingField)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("questions: %w", err)
	}
	var questions []quiz.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("questions: %w", err)
	}
	return questions, nil
}

type answerArg struct {
	QuestionIndex *float64 `json:"questionIndex"`
	SelectedIndex *float64 `json:"selectedIndex"`
	AnswerTimeMs  float64  `json:"answerTimeMs"`
}

// DecodeAnswer reads a submitAnswer payload. Client timings are often
// fractional milliseconds and get rounded.
func DecodeAnswer(raw any) (quiz.Answer, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return quiz.Answer{}, fmt.Errorf("answer: %w", err)
	}
	var arg answerArg
	if err := json.Unmarshal(data, &arg); err != nil {
		return quiz.Answer{}, fmt.Errorf("answer: %w", err)
	}
	if arg.QuestionIndex == nil || arg.SelectedIndex == nil {
		return quiz.Answer{}, fmt.Errorf("answer: %w", errMissingField)
	}
	questionIndex, ok := toInt64(*arg.QuestionIndex)
	if !ok {
		return quiz.Answer{}, fmt.Errorf("answer: questionIndex %v is not an integer", *arg.QuestionIndex)
	}
	selectedIndex, ok := toInt64(*arg.SelectedIndex)
	if !ok {
		return quiz.Answer{}, fmt.Errorf("answer: selectedIndex %v is not an integer", *arg.SelectedIndex)
	}
	return quiz.Answer{
		QuestionIndex: int(questionIndex),
		SelectedIndex: int(selectedIndex),
		AnswerTimeMs:  clampMillis(arg.AnswerTimeMs),
	}, nil
}

// clampMillis rounds a client timing into int64 range. Negative values are
// left for the scorer to clamp.
func clampMillis(ms float64) int64 {
	ms = math.Round(ms)
	switch {
	case ms >= math.MaxInt64:
		return math.MaxInt64
	case ms <= math.MinInt64:
		return math.MinInt64
	}
	return int64(ms)
}
