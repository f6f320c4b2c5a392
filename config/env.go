package config

import (
	quiz_constants "Spotiquiz/constants/quiz"
	"log"
	"os"
	"strconv"
	"time"
)

// GetEnv returns the value of key, or fallback when it is unset or empty.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[CONFIG-ERROR] %s=%q is not an integer, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func GetEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[CONFIG-ERROR] %s=%q is not a boolean, using %t", key, v, fallback)
		return fallback
	}
	return b
}

// GetEnvDuration accepts Go durations ("15s") or a bare number of seconds.
func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("[CONFIG-ERROR] %s=%q is not a duration, using %s", key, v, fallback)
	return fallback
}

// QuizSettings are the tunables of the room store.
type QuizSettings struct {
	RoundDuration  time.Duration
	MaxQuestions   int
	NameMaxLength  int
	RoomCodeLength int
}

func LoadQuizSettings() QuizSettings {
	s := QuizSettings{
		RoundDuration:  GetEnvDuration("QUIZ_ROUND_DURATION", quiz_constants.RoundDuration),
		MaxQuestions:   GetEnvInt("QUIZ_MAX_QUESTIONS", quiz_constants.MaxQuestions),
		NameMaxLength:  GetEnvInt("QUIZ_NAME_MAX_LEN", quiz_constants.MaxPlayerNameLength),
		RoomCodeLength: GetEnvInt("QUIZ_ROOM_CODE_LEN", quiz_constants.RoomCodeLength),
	}
	if s.RoundDuration <= 0 {
		s.RoundDuration = quiz_constants.RoundDuration
	}
	if s.MaxQuestions <= 0 || s.MaxQuestions > quiz_constants.MaxQuestions {
		s.MaxQuestions = quiz_constants.MaxQuestions
	}
	if s.NameMaxLength <= 0 {
		s.NameMaxLength = quiz_constants.MaxPlayerNameLength
	}
	if s.RoomCodeLength <= 0 || s.RoomCodeLength > 32 {
		s.RoomCodeLength = quiz_constants.RoomCodeLength
	}
	return s
}
