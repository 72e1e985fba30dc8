package encode

// permits returns the number of in-flight frame-task permits: the
// worker count plus an optional buffer of extra tasks. Each permit
// runs one whole frame task (decode, compress, write chunk files).
// Always at least 1.
func permits(workers, buffer int) int {
	if workers+buffer < 1 {
		return 1
	}
	return workers + buffer
}
