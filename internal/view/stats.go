// Package view computes read-only projections of a packing-list snapshot.
// Nothing here mutates its input.
package view

import (
	"math"

	"github.com/prime-mcgowan/packing-list/internal/model"
)

// StatsState picks which footer message a renderer shows.
type StatsState int

const (
	StateEmpty StatsState = iota
	StateInProgress
	StateComplete
)

func (s StatsState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateInProgress:
		return "in_progress"
	case StateComplete:
		return "complete"
	}
	return "unknown"
}

func (s StatsState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Stats summarizes a snapshot. Percentage is only meaningful when State is
// not StateEmpty.
type Stats struct {
	Total      int        `json:"total"`
	Packed     int        `json:"packed"`
	Percentage int        `json:"percentage"`
	State      StatsState `json:"state"`
}

func (s Stats) IsEmpty() bool    { return s.State == StateEmpty }
func (s Stats) IsComplete() bool { return s.State == StateComplete }

// ComputeStats counts items and packed items. An empty list never divides.
func ComputeStats(items []model.Item) Stats {
	st := Stats{Total: len(items)}
	if st.Total == 0 {
		st.State = StateEmpty
		return st
	}
	for _, it := range items {
		if it.Packed {
			st.Packed++
		}
	}
	st.Percentage = int(math.Round(float64(st.Packed) / float64(st.Total) * 100))
	st.State = StateInProgress
	if st.Percentage == 100 {
		st.State = StateComplete
	}
	return st
}
