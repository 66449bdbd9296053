package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestATSScoreComponents(t *testing.T) {
	tests := []struct {
		name    string
		context string
		want    int
	}{
		{
			name:    "empty context",
			context: "",
			want:    0,
		},
		{
			name:    "skills experience projects and credential",
			context: "python, sql, docker, aws, experience of 3 years, developed projects, bachelor degree",
			want:    80, // 20 skills + 25 experience + 20 projects + 15 credential
		},
		{
			name:    "skill coverage capped at 40",
			context: "python java sql api docker aws react node machine learning data",
			want:    40,
		},
		{
			name:    "experience signal alone",
			context: "ten years at the same firm",
			want:    25,
		},
		{
			name:    "case insensitive",
			context: "PYTHON Developer with EXPERIENCE",
			want:    30, // python + experience
		},
		{
			name:    "total capped at 100",
			context: "python java sql api docker aws react node machine learning data, 9 years experience, developed projects, master certification",
			want:    100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ATSScore(tt.context))
		})
	}
}

func TestATSScoreIsPure(t *testing.T) {
	context := strings.Repeat("python developer with experience on aws projects. ", 3)
	first := ATSScore(context)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ATSScore(context))
	}
	assert.GreaterOrEqual(t, first, 0)
	assert.LessOrEqual(t, first, 100)
}
