package application

import "time"

// Clock supplies the current instant.
type Clock interface {
	NowUTC() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) NowUTC() time.Time { return time.Now().UTC() }
