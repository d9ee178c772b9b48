package parameter

import "time"

// Bell service tuning
const (
	// BellSampleRate for the beep speaker
	BellSampleRate = 44100

	// BellFrequency of the sine burst in Hz
	BellFrequency = 880.0

	// BellDuration of one ring
	BellDuration = 90 * time.Millisecond

	// BellMinInterval rate-limits rings; bursts collapse into one
	BellMinInterval = 150 * time.Millisecond
)
