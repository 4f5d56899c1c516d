package report

import (
	"math"
	"sync/atomic"

	"fortio.org/safecast"

	"veld/internal/diag"
)

// tally counts logged problems per severity. The three registers are
// independent: reading them while other problems are still in flight
// yields whatever was logged-and-returned by that point, which is what
// the finish report documents.
type tally struct {
	errors   atomic.Int64
	warnings atomic.Int64
	infos    atomic.Int64
}

func (t *tally) bump(sev diag.Severity) {
	switch sev {
	case diag.SevError:
		t.errors.Add(1)
	case diag.SevWarning:
		t.warnings.Add(1)
	case diag.SevInfo:
		t.infos.Add(1)
	}
}

// wireCount narrows a counter value to the protocol's int32.
func wireCount(n int64) int32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[int32](n)
	if err != nil {
		return math.MaxInt32
	}
	return v
}
