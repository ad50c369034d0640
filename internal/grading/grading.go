// Package grading scores a submission against its exam.
package grading

import (
	"math"
	"strconv"
	"strings"

	"github.com/example/examdesk/pkg/models"
)

// DefaultPassMarks is the threshold used when the exam cannot be found
const DefaultPassMarks = 50

// Outcome is the score of one submission
type Outcome struct {
	Score      float64
	TotalMarks float64
	Percentage float64
	PassMarks  float64 // +Inf when the exam sets no threshold
	Status     string
}

// Grade matches answers to the exam's questions by position. Answers beyond
// the last question are ignored; questions without an answer do not count
// towards the total. A nil exam scores zero against defaultPass. An exam
// without passMarks has no reachable threshold, so it always fails.
func Grade(exam *models.Exam, answers []string, defaultPass float64) Outcome {
	out := Outcome{PassMarks: defaultPass}

	if exam != nil {
		out.PassMarks = math.Inf(1)
		if exam.PassMarks != nil {
			out.PassMarks = *exam.PassMarks
		}
		for i, answer := range answers {
			if i >= len(exam.Questions) {
				break
			}
			q := exam.Questions[i]
			out.TotalMarks += q.Marks
			if answer == q.CorrectAnswer {
				out.Score += q.Marks
			}
		}
	}

	out.Percentage = Percentage(out.Score, out.TotalMarks)
	out.Status = models.ResultFailed
	if out.Percentage >= out.PassMarks {
		out.Status = models.ResultPassed
	}
	return out
}

// Percentage returns part/total*100 rounded to one decimal, or 0 when total is 0
func Percentage(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return Round1(part / total * 100)
}

// Round1 rounds v to one decimal place. Rounding works on the exact binary
// value of v, with ties away from zero, so 0.15 (stored just below) gives 0.1
// and 0.25 gives 0.3.
func Round1(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= 1<<53 {
		return v
	}
	neg := v < 0
	if neg {
		v = -v
	}

	// 60 fractional digits are enough to decide the tenths digit exactly
	s := strconv.FormatFloat(v, 'f', 60, 64)
	dot := strings.IndexByte(s, '.')
	n, err := strconv.ParseUint(s[:dot]+s[dot+1:dot+2], 10, 64)
	if err != nil {
		return v
	}
	if s[dot+2] >= '5' {
		n++
	}

	r := float64(n) / 10
	if neg {
		return -r
	}
	return r
}
