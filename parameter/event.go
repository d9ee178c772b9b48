package parameter

// Desktop op queue sizing. Power of two for mask indexing.
const (
	// OpQueueSize bounds pending frame-boundary operations. Input
	// bursts (drag sequences) peak well under this between frames.
	OpQueueSize = 256

	// OpBufferMask converts a monotonic index to a ring slot
	OpBufferMask = OpQueueSize - 1
)
