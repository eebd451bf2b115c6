package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IDGenerator hands out item ids. Every call within one session must return a
// value never returned before.
type IDGenerator interface {
	NextID() string
}

// CounterGenerator issues "1", "2", "3", ...
type CounterGenerator struct {
	n uint64
}

func (g *CounterGenerator) NextID() string {
	g.n++
	return strconv.FormatUint(g.n, 10)
}

// TimeGenerator derives ids from the wall clock in nanoseconds. Two calls in
// the same tick (or a clock that steps backwards) get last+1 instead.
type TimeGenerator struct {
	Now  func() time.Time
	last int64
}

func (g *TimeGenerator) NextID() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	v := now().UnixNano()
	if v <= g.last {
		v = g.last + 1
	}
	g.last = v
	return strconv.FormatInt(v, 10)
}

// UUIDGenerator issues random v4 UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NextID() string { return uuid.NewString() }

// NewIDGenerator returns the generator registered under name:
// "counter" (default when empty), "time" or "uuid".
func NewIDGenerator(name string) (IDGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "counter":
		return &CounterGenerator{}, nil
	case "time":
		return &TimeGenerator{}, nil
	case "uuid":
		return UUIDGenerator{}, nil
	}
	return nil, fmt.Errorf("unknown id generator %q (want counter, time or uuid)", name)
}
