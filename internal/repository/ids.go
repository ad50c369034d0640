package repository

import (
	"fmt"

	"github.com/example/examdesk/pkg/models"
)

// Id prefixes
const (
	prefixExam       = "EXAM"
	prefixQuestion   = "Q"
	prefixSubmission = "SUB"
	prefixResult     = "RES"
)

// nextID issues the next sequential id for prefix. The stored counter only
// grows, so ids are not reused; it never falls below the collection size so
// documents written without counters continue where they left off.
func nextID(doc *models.AppData, prefix string, count int) string {
	if doc.Sequences == nil {
		doc.Sequences = make(map[string]int)
	}
	n := doc.Sequences[prefix]
	if n < count {
		n = count
	}
	n++
	doc.Sequences[prefix] = n
	return fmt.Sprintf("%s%03d", prefix, n)
}
