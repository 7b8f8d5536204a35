package mock

import "io"

// noopRSC implements io.ReadSeekCloser with no-op Close.
type noopRSC struct{ io.ReadSeeker }

func (noopRSC) Close() error { return nil }

// NewReadSeekCloser wraps r with a no-op Close.
func NewReadSeekCloser(r io.ReadSeeker) io.ReadSeekCloser { return noopRSC{r} }

// TrackingRSC records whether it was closed.
type TrackingRSC struct {
	io.ReadSeeker
	Closed bool
}

func (t *TrackingRSC) Close() error {
	t.Closed = true
	return nil
}
