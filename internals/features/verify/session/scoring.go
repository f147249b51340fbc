package session

import "math"

// PassThreshold is the fixed pass mark in percent.
const PassThreshold = 80

// ComputeScore returns round(100 * correct / total) and the pass flag.
// A zero-length question set scores 0 and fails; the questions step
// already rejects empty sets, this is the guard for the unreachable
// case.
func ComputeScore(questions []Question, answers []int) (score int, passed bool) {
	total := len(questions)
	if total == 0 {
		return 0, false
	}

	correct := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.Correct {
			correct++
		}
	}

	score = int(math.Round(100 * float64(correct) / float64(total)))
	return score, score >= PassThreshold
}
