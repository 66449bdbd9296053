package rag

import "strings"

// atsSkills is the fixed keyword list for the coverage component. Each
// distinct hit is worth 5 points, capped at 40.
var atsSkills = []string{
	"python", "java", "sql", "api", "docker", "aws",
	"react", "node", "machine learning", "data",
}

// ATSScore computes the deterministic 0-100 compatibility score from the
// retrieved context. It is a pure function of its input: no model, no state,
// no randomness, so the score stays reproducible even when generation fails.
func ATSScore(context string) int {
	context = strings.ToLower(context)

	score := 0

	hits := 0
	for _, skill := range atsSkills {
		if strings.Contains(context, skill) {
			hits++
		}
	}
	score += min(hits*5, 40)

	if strings.Contains(context, "experience") || strings.Contains(context, "years") {
		score += 25
	}

	if strings.Contains(context, "project") || strings.Contains(context, "developed") {
		score += 20
	}

	if strings.Contains(context, "bachelor") || strings.Contains(context, "master") ||
		strings.Contains(context, "certification") {
		score += 15
	}

	return min(score, 100)
}
