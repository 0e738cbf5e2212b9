package searcher

import (
	"context"
	"time"
)

// Never is a stop predicate that never fires.
func Never() bool { return false }

// StopAfter fires once d has elapsed since the call, or when inner fires.
func StopAfter(d time.Duration, inner func() bool) func() bool {
	deadline := time.Now().Add(d)
	return func() bool {
		return !time.Now().Before(deadline) || (inner != nil && inner())
	}
}

// StopOnContext fires when ctx is done.
func StopOnContext(ctx context.Context) func() bool {
	return func() bool {
		return ctx.Err() != nil
	}
}
