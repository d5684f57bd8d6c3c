package models

import "fmt"

// Counter is a durable named integer used to draw unique increasing numbers.
// The value only moves forward through atomic increment-and-fetch; the
// reconciler may rewrite it to match observed persisted data.
type Counter struct {
	Key   string `json:"key"`
	Value int64  `json:"value"`
}

// InstitutionCodeCounterKey is the single global counter institution codes
// are drawn from.
const InstitutionCodeCounterKey = "institution-code"

// StudentSeqCounterKey returns the per-institution-per-year counter key for
// roll-number sequences.
func StudentSeqCounterKey(institutionID int64, yearYY string) string {
	return fmt.Sprintf("student-seq:%d:%s", institutionID, yearYY)
}
