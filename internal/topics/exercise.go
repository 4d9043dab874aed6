package topics

import (
	"regexp"
	"strings"
)

// ExerciseParams are the pieces of an exercise request recognized in learner
// input. Empty fields mean the parameter was not mentioned.
type ExerciseParams struct {
	Type      string // "reading", "writing", "vocabulary" or "quiz"
	Direction string // "target-to-english" or "english-to-target"
	Topic     string
}

var (
	readingRe    = regexp.MustCompile(`(?i)\b(reading|read)\b`)
	writingRe    = regexp.MustCompile(`(?i)\b(writing|write)\b`)
	vocabularyRe = regexp.MustCompile(`(?i)\b(vocabulary|vocab|words)\b`)
	quizRe       = regexp.MustCompile(`(?i)\b(quiz|test|practice)\b`)
	directionRe  = regexp.MustCompile(`(?i)\b(from|to)\s+(\w+)\b`)
	topicRe      = regexp.MustCompile(`(?i)about\s+([a-zA-Z\s]+)`)
)

// ParseExerciseParams extracts exercise type, translation direction, and
// topic from a learner request.
func ParseExerciseParams(text string) ExerciseParams {
	var params ExerciseParams

	switch {
	case readingRe.MatchString(text):
		params.Type = "reading"
	case writingRe.MatchString(text):
		params.Type = "writing"
	case vocabularyRe.MatchString(text):
		params.Type = "vocabulary"
	case quizRe.MatchString(text):
		params.Type = "quiz"
	}

	if m := directionRe.FindStringSubmatch(text); m != nil {
		direction := strings.ToLower(m[1])
		language := strings.ToLower(m[2])
		if direction == "to" && language == "english" {
			params.Direction = "target-to-english"
		} else if direction == "from" && language == "english" {
			params.Direction = "english-to-target"
		}
	}

	if m := topicRe.FindStringSubmatch(text); m != nil {
		params.Topic = strings.TrimSpace(m[1])
	}

	return params
}
