// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package matchtimer implements the match countdown and its end-of-match alarm.

# Countdown

A Timer holds a configured duration (default 10:00) and the time left.
While running, the time left is computed from a deadline on the clock, so
a Snapshot is always accurate to the clock and never drifts:

	t := matchtimer.New(matchtimer.WithPublisher(hub))
	t.Preset(7)
	t.Start()
	snap := t.Snapshot() // snap.Display == "07:00"

The duration can only be changed while the timer is stopped. Minutes are
clamped to 0-90 and seconds to 0-59. Starting a finished timer reloads the
full duration; starting with a zero duration fails with ErrZeroDuration.

# Alarm

When time runs out the timer publishes timer.finished and, if sound is on,
publishes timer.alarm with AlarmSequence immediately and every
AlarmInterval after that. The alarm stops on Dismiss, Reset, a new Start,
or when sound is switched off.

# Snapshots

Snapshot returns a models.TimerResponse with the time left rounded up to
whole seconds, the MM:SS display, progress as a percentage of the
duration, and whether the match is in its final minute.
*/
package matchtimer
