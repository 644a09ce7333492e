package roc

import (
	"errors"
	"fmt"
)

var (
	// ErrNoConditionPositives means no true-condition bases or peaks exist,
	// leaving the true positive rate undefined.
	ErrNoConditionPositives = errors.New("no condition-positive units: true positive rate is undefined")

	// ErrNoConditionNegatives means no false-condition bases or peaks exist,
	// leaving the false positive rate undefined.
	ErrNoConditionNegatives = errors.New("no condition-negative units: false positive rate is undefined")
)

// PartitionError reports the base totals of a partition that does not cover
// the reference set exactly once.
type PartitionError struct {
	TP, TN, FP, FN int
	Reference      int
}

// Labeled is the summed base count of the four labeled stores.
func (e *PartitionError) Labeled() int {
	return e.TP + e.TN + e.FP + e.FN
}

func (e *PartitionError) Error() string {
	return fmt.Sprintf("labeled bases do not partition the reference: TP %d + TN %d + FP %d + FN %d = %d, but the reference has %d (difference %d)",
		e.TP, e.TN, e.FP, e.FN, e.Labeled(), e.Reference, e.Labeled()-e.Reference)
}

// MissingStoreError is returned when a partition lacks one of its stores.
type MissingStoreError struct {
	Label string
}

func (e *MissingStoreError) Error() string {
	return fmt.Sprintf("partition has no %s store", e.Label)
}
