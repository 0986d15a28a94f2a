package clock

import "time"

// Clock is the injectable time source. Anything gating behavior on
// wall-clock time takes a Clock instead of calling time.Now directly.
type Clock interface {
	Now() time.Time
}

type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always reports the same instant. Test helper.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }
