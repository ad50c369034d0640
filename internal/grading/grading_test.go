package grading

import (
	"math"
	"testing"

	"github.com/example/examdesk/pkg/models"
)

func twoQuestionExam() *models.Exam {
	return &models.Exam{
		ID:        "EXAM001",
		PassMarks: models.PassMark(50),
		Questions: []models.Question{
			{ID: "Q001", Marks: 40, CorrectAnswer: "A"},
			{ID: "Q002", Marks: 60, CorrectAnswer: "B"},
		},
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name       string
		exam       *models.Exam
		answers    []string
		wantScore  float64
		wantTotal  float64
		wantPct    float64
		wantStatus string
	}{
		{
			name:       "all correct",
			exam:       twoQuestionExam(),
			answers:    []string{"A", "B"},
			wantScore:  100,
			wantTotal:  100,
			wantPct:    100,
			wantStatus: models.ResultPassed,
		},
		{
			name:       "second wrong",
			exam:       twoQuestionExam(),
			answers:    []string{"A", "X"},
			wantScore:  40,
			wantTotal:  100,
			wantPct:    40,
			wantStatus: models.ResultFailed,
		},
		{
			name:       "fewer answers than questions",
			exam:       twoQuestionExam(),
			answers:    []string{"A"},
			wantScore:  40,
			wantTotal:  40,
			wantPct:    100,
			wantStatus: models.ResultPassed,
		},
		{
			name:       "extra answers ignored",
			exam:       twoQuestionExam(),
			answers:    []string{"X", "B", "C", "D"},
			wantScore:  60,
			wantTotal:  100,
			wantPct:    60,
			wantStatus: models.ResultPassed,
		},
		{
			name:       "case sensitive comparison",
			exam:       twoQuestionExam(),
			answers:    []string{"a", "b"},
			wantScore:  0,
			wantTotal:  100,
			wantPct:    0,
			wantStatus: models.ResultFailed,
		},
		{
			name:       "missing exam",
			exam:       nil,
			answers:    []string{"A", "B"},
			wantStatus: models.ResultFailed,
		},
		{
			name:       "no answers",
			exam:       twoQuestionExam(),
			answers:    nil,
			wantStatus: models.ResultFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Grade(tt.exam, tt.answers, DefaultPassMarks)
			if got.Score != tt.wantScore {
				t.Errorf("score = %v, want %v", got.Score, tt.wantScore)
			}
			if got.TotalMarks != tt.wantTotal {
				t.Errorf("totalMarks = %v, want %v", got.TotalMarks, tt.wantTotal)
			}
			if got.Percentage != tt.wantPct {
				t.Errorf("percentage = %v, want %v", got.Percentage, tt.wantPct)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", got.Status, tt.wantStatus)
			}
		})
	}
}

func TestGradeThreshold(t *testing.T) {
	exam := twoQuestionExam()
	exam.PassMarks = models.PassMark(40)

	got := Grade(exam, []string{"A", "X"}, DefaultPassMarks)
	if got.Status != models.ResultPassed {
		t.Fatalf("40%% against a 40%% threshold should pass, got %q", got.Status)
	}
	if got.PassMarks != 40 {
		t.Fatalf("expected exam threshold, got %v", got.PassMarks)
	}

	missing := Grade(nil, nil, 65)
	if missing.PassMarks != 65 {
		t.Fatalf("expected default threshold 65, got %v", missing.PassMarks)
	}

	zero := twoQuestionExam()
	zero.PassMarks = models.PassMark(0)
	if got := Grade(zero, []string{"X"}, DefaultPassMarks); got.Status != models.ResultPassed {
		t.Fatalf("a zero threshold should pass everything, got %q", got.Status)
	}
}

func TestGradeWithoutPassMarksFails(t *testing.T) {
	exam := twoQuestionExam()
	exam.PassMarks = nil

	for _, answers := range [][]string{{"X"}, {"A", "B"}} {
		got := Grade(exam, answers, DefaultPassMarks)
		if got.Status != models.ResultFailed {
			t.Errorf("answers %v: status = %q, want failed", answers, got.Status)
		}
		if !math.IsInf(got.PassMarks, 1) {
			t.Errorf("answers %v: expected no reachable threshold, got %v", answers, got.PassMarks)
		}
	}
}

func TestPercentageRounding(t *testing.T) {
	tests := []struct {
		part, total float64
		want        float64
	}{
		{1, 3, 33.3},
		{2, 3, 66.7},
		{1, 8, 12.5},
		{3, 2000, 0.1},
		{49, 400, 12.3},
		{0, 10, 0},
		{5, 0, 0},
	}

	for _, tt := range tests {
		if got := Percentage(tt.part, tt.total); got != tt.want {
			t.Errorf("Percentage(%v, %v) = %v, want %v", tt.part, tt.total, got, tt.want)
		}
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.15, 0.1}, // stored as 0.1499...
		{0.25, 0.3}, // exact tie rounds away from zero
		{0.35, 0.3}, // stored as 0.3499...
		{12.25, 12.3},
		{99.95, 100}, // stored as 99.950000000000003
		{-0.25, -0.3},
		{7, 7},
		{0, 0},
	}

	for _, tt := range tests {
		if got := Round1(tt.in); got != tt.want {
			t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
