package errors

// CheckLimit returns an ErrCodeLimitExceeded error when n exceeds max.
// A max of zero or less disables the check.
//
// The graph core has no notion of size limits: the subgraph search is
// exponential in the worst case, so callers bound it before invoking it.
func CheckLimit(what string, n, max int) error {
	if max > 0 && n > max {
		return New(ErrCodeLimitExceeded, "%s has %d nodes (max %d)", what, n, max)
	}
	return nil
}
