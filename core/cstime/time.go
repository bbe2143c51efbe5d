// Package cstime converts between the network-canonical clock (seconds
// since the UNIX epoch, agreed upon by every honest node from block
// headers) and the local node's monotonic wall clock, and computes round
// end times from it.
package cstime

import (
	"time"

	"github.com/quorumkit/tendermint/ext"
)

// SysTime returns the system-time instant corresponding to secs seconds
// past the UNIX epoch.
func SysTime(secs uint64) time.Time {
	return time.Unix(int64(secs), 0)
}

// Instant pairs a canonical (network-agreed) second count with the
// wall-clock Instant representing it on the local node. Both are fixed when
// the Instant is built; later instants are derived from it with Plus.
type Instant struct {
	canonical uint64
	instant   time.Time
}

// New creates an Instant anchoring canonical seconds to "now" on the local
// clock.
func New(canonical uint64) Instant {
	return Instant{canonical: canonical, instant: time.Now()}
}

// Canonical returns the network-agreed seconds-since-epoch value.
func (i Instant) Canonical() uint64 {
	return i.canonical
}

// WallClock returns the local wall-clock time corresponding to Canonical.
func (i Instant) WallClock() time.Time {
	return i.instant
}

// Plus derives a new Instant `secs` seconds after i, advancing both the
// canonical value and the local wall-clock anchor by the same amount so the
// two representations never diverge.
func (i Instant) Plus(secs uint64) Instant {
	return Instant{
		canonical: i.canonical + secs,
		instant:   i.instant.Add(time.Duration(secs) * time.Second),
	}
}

// RoundOffset is the number of seconds end_time(r) is placed after start(r):
// BLOCK_TIME + 2*(r+1), per spec §4.2.
func RoundOffset(blockTime uint64, round ext.RoundNumber) uint64 {
	return blockTime + 2*(uint64(round)+1)
}

// EndTime computes end_time(r) given the round's start instant.
func EndTime(blockTime uint64, round ext.RoundNumber, start Instant) Instant {
	return start.Plus(RoundOffset(blockTime, round))
}

// stepFraction is the number of seconds after the round start at which a
// step's deadline falls: numerator*(round+1), so it grows linearly with the
// round like RoundOffset itself. Propose, prevote and precommit use
// numerators 1, 2 and 3; the result is not a fraction of the round length,
// and clampToEnd caps it at end_time(r).
func stepFraction(round ext.RoundNumber, numerator uint64) uint64 {
	return numerator * (uint64(round) + 1)
}

// ProposeDeadline is the absolute instant by which a proposal must arrive
// before the propose timeout fires.
func ProposeDeadline(blockTime uint64, round ext.RoundNumber, start Instant) Instant {
	return clampToEnd(blockTime, round, start, start.Plus(stepFraction(round, 1)))
}

// PrevoteDeadline is the absolute instant by which prevote quorum must be
// reached before the prevote timeout fires.
func PrevoteDeadline(blockTime uint64, round ext.RoundNumber, start Instant) Instant {
	return clampToEnd(blockTime, round, start, start.Plus(stepFraction(round, 2)))
}

// PrecommitDeadline is the absolute instant by which precommit quorum must
// be reached before the precommit timeout fires.
func PrecommitDeadline(blockTime uint64, round ext.RoundNumber, start Instant) Instant {
	return clampToEnd(blockTime, round, start, start.Plus(stepFraction(round, 3)))
}

// clampToEnd enforces the invariant that no step deadline exceeds end_time(r).
func clampToEnd(blockTime uint64, round ext.RoundNumber, start, deadline Instant) Instant {
	end := EndTime(blockTime, round, start)
	if deadline.Canonical() > end.Canonical() {
		return end
	}
	return deadline
}
