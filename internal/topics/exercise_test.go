package topics

import "testing"

func TestParseExerciseParams(t *testing.T) {
	tests := []struct {
		name string
		text string
		want ExerciseParams
	}{
		{
			name: "reading with topic",
			text: "Give me a reading exercise about winter sports",
			want: ExerciseParams{Type: "reading", Topic: "winter sports"},
		},
		{
			name: "vocabulary",
			text: "I need some vocab practice",
			want: ExerciseParams{Type: "vocabulary"},
		},
		{
			name: "quiz",
			text: "quiz me please",
			want: ExerciseParams{Type: "quiz"},
		},
		{
			name: "direction to english",
			text: "translate this to english",
			want: ExerciseParams{Direction: "target-to-english"},
		},
		{
			name: "direction from english",
			text: "exercises from english sentences",
			want: ExerciseParams{Direction: "english-to-target"},
		},
		{
			name: "reading wins over quiz",
			text: "a reading test",
			want: ExerciseParams{Type: "reading"},
		},
		{
			name: "nothing recognized",
			text: "hello there",
			want: ExerciseParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseExerciseParams(tt.text)
			if got != tt.want {
				t.Errorf("ParseExerciseParams(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}
