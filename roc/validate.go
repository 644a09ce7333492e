package roc

// CheckPartition confirms that the labeled stores partition reference: their
// base totals must sum to the reference total exactly. A mismatch returns a
// *PartitionError carrying every total.
func CheckPartition(p Partition, reference IntervalStore) error {
	if err := p.check(); err != nil {
		return err
	}

	e := &PartitionError{
		TP:        p.TP.TotalBases(),
		TN:        p.TN.TotalBases(),
		FP:        p.FP.TotalBases(),
		FN:        p.FN.TotalBases(),
		Reference: reference.TotalBases(),
	}

	if e.Labeled() != e.Reference {
		return e
	}

	return nil
}

// ValidatePartition reports whether the labeled stores partition reference.
// Point generation on a partition that fails this check is not trustworthy.
func ValidatePartition(p Partition, reference IntervalStore) bool {
	return CheckPartition(p, reference) == nil
}
