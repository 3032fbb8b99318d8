// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package matchtimer

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/team-sorter/models"
)

const (
	DefaultMinutes = 10
	MaxMinutes     = 90
	MaxSeconds     = 59

	// AlarmInterval is how often the beep sequence repeats once time is up
	AlarmInterval = 1500 * time.Millisecond
)

// Presets are the one-tap match lengths, in minutes
var Presets = []int{5, 7, 10, 15, 20}

// Event types published by the timer
const (
	EventStarted   = "timer.started"
	EventPaused    = "timer.paused"
	EventReset     = "timer.reset"
	EventUpdated   = "timer.updated"
	EventFinished  = "timer.finished"
	EventAlarm     = "timer.alarm"
	EventDismissed = "timer.dismissed"
)

var (
	ErrRunning       = errors.New("timer is running")
	ErrZeroDuration  = errors.New("timer duration is zero")
	ErrInvalidPreset = errors.New("unknown preset")
)

// Beep is one tone of the alarm, offset from the start of the sequence
type Beep struct {
	FrequencyHz int `json:"frequency_hz"`
	DurationMs  int `json:"duration_ms"`
	OffsetMs    int `json:"offset_ms"`
}

// AlarmSequence is played when time runs out and every AlarmInterval after
var AlarmSequence = []Beep{
	{FrequencyHz: 800, DurationMs: 150, OffsetMs: 0},
	{FrequencyHz: 1000, DurationMs: 150, OffsetMs: 200},
	{FrequencyHz: 800, DurationMs: 150, OffsetMs: 400},
}

// Publisher receives timer events. It is called with the timer lock held
// and must not call back into the Timer.
type Publisher interface {
	Publish(kind string, data any)
}

// Recorder counts alarm rings
type Recorder interface {
	ObserveAlarm()
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, any) {}

type nopRecorder struct{}

func (nopRecorder) ObserveAlarm() {}

// Timer is a match countdown with a repeating alarm.
//
// While running, the remaining time is derived from a deadline on the
// clock, so reads never depend on a ticking goroutine.
type Timer struct {
	mu        sync.Mutex
	clock     clockwork.Clock
	publisher Publisher
	recorder  Recorder

	duration  time.Duration
	remaining time.Duration // when stopped
	deadline  time.Time     // when running
	running   bool
	finished  bool
	sound     bool

	expiry    clockwork.Timer
	alarmStop chan struct{}
	gen       uint64 // invalidates stale expiry callbacks
}

type Option func(*Timer)

func WithClock(clock clockwork.Clock) Option {
	return func(t *Timer) { t.clock = clock }
}

func WithPublisher(p Publisher) Option {
	return func(t *Timer) {
		if p != nil {
			t.publisher = p
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(t *Timer) {
		if r != nil {
			t.recorder = r
		}
	}
}

// WithDuration sets the initial match length (clamped like SetDuration)
func WithDuration(minutes, seconds int) Option {
	return func(t *Timer) {
		t.duration = clampDuration(minutes, seconds)
		t.remaining = t.duration
	}
}

// New returns a stopped timer set to ten minutes with sound on
func New(opts ...Option) *Timer {
	t := &Timer{
		clock:     clockwork.NewRealClock(),
		publisher: nopPublisher{},
		recorder:  nopRecorder{},
		duration:  DefaultMinutes * time.Minute,
		remaining: DefaultMinutes * time.Minute,
		sound:     true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func clampDuration(minutes, seconds int) time.Duration {
	minutes = min(max(minutes, 0), MaxMinutes)
	seconds = min(max(seconds, 0), MaxSeconds)
	return time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
}

// SetDuration changes the match length and reloads the countdown.
// Minutes are clamped to 0-90 and seconds to 0-59.
func (t *Timer) SetDuration(minutes, seconds int) (models.TimerResponse, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return t.snapshotLocked(), ErrRunning
	}

	t.duration = clampDuration(minutes, seconds)
	t.remaining = t.duration
	t.finished = false
	t.stopAlarmLocked()

	snap := t.snapshotLocked()
	t.publisher.Publish(EventUpdated, snap)
	return snap, nil
}

// Preset sets one of the predefined match lengths
func (t *Timer) Preset(minutes int) (models.TimerResponse, error) {
	if !slices.Contains(Presets, minutes) {
		return t.Snapshot(), fmt.Errorf("%w: %d minutes", ErrInvalidPreset, minutes)
	}
	return t.SetDuration(minutes, 0)
}

// Start runs the countdown. A finished timer starts over from the full
// duration. Starting a running timer is a no-op.
func (t *Timer) Start() (models.TimerResponse, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return t.snapshotLocked(), nil
	}
	if t.remaining <= 0 {
		t.remaining = t.duration
	}
	if t.remaining <= 0 {
		return t.snapshotLocked(), ErrZeroDuration
	}

	t.finished = false
	t.stopAlarmLocked()
	t.running = true
	t.deadline = t.clock.Now().Add(t.remaining)

	t.gen++
	gen := t.gen
	t.expiry = t.clock.AfterFunc(t.remaining, func() { t.expire(gen) })

	snap := t.snapshotLocked()
	t.publisher.Publish(EventStarted, snap)
	slog.Info("match timer started", "remaining_sec", snap.RemainingSec)
	return snap, nil
}

// Pause freezes the countdown
func (t *Timer) Pause() models.TimerResponse {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return t.snapshotLocked()
	}

	remaining := t.deadline.Sub(t.clock.Now())
	if remaining <= 0 {
		t.finishLocked()
		return t.snapshotLocked()
	}

	t.stopExpiryLocked()
	t.running = false
	t.remaining = remaining

	snap := t.snapshotLocked()
	t.publisher.Publish(EventPaused, snap)
	return snap
}

// Reset stops the countdown, silences the alarm and reloads the duration
func (t *Timer) Reset() models.TimerResponse {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopExpiryLocked()
	t.stopAlarmLocked()
	t.running = false
	t.finished = false
	t.remaining = t.duration

	snap := t.snapshotLocked()
	t.publisher.Publish(EventReset, snap)
	return snap
}

// Dismiss acknowledges the end of the match and silences the alarm
func (t *Timer) Dismiss() models.TimerResponse {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.finished = false
	t.stopAlarmLocked()

	snap := t.snapshotLocked()
	t.publisher.Publish(EventDismissed, snap)
	return snap
}

// SetSound turns the alarm on or off; turning it off silences a ringing alarm
func (t *Timer) SetSound(enabled bool) models.TimerResponse {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sound = enabled
	if !enabled {
		t.stopAlarmLocked()
	}

	snap := t.snapshotLocked()
	t.publisher.Publish(EventUpdated, snap)
	return snap
}

// Ringing reports whether the alarm loop is active
func (t *Timer) Ringing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.alarmStop != nil
}

// Snapshot returns the current countdown state
func (t *Timer) Snapshot() models.TimerResponse {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// Close stops the countdown and the alarm without publishing anything
func (t *Timer) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopExpiryLocked()
	t.stopAlarmLocked()
	t.running = false
}

func (t *Timer) expire(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.gen || !t.running {
		return
	}
	t.finishLocked()
}

// finishLocked marks the match over and starts the alarm. Must hold t.mu.
func (t *Timer) finishLocked() {
	t.stopExpiryLocked()
	t.running = false
	t.finished = true
	t.remaining = 0

	t.publisher.Publish(EventFinished, t.snapshotLocked())
	slog.Info("match timer finished", "sound", t.sound)

	if t.sound {
		stop := make(chan struct{})
		t.alarmStop = stop
		go t.alarm(stop)
	}
}

func (t *Timer) alarm(stop chan struct{}) {
	ticker := t.clock.NewTicker(AlarmInterval)
	defer ticker.Stop()

	t.ring(stop)
	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			t.ring(stop)
		}
	}
}

func (t *Timer) ring(stop chan struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.alarmStop != stop {
		return
	}
	t.publisher.Publish(EventAlarm, AlarmSequence)
	t.recorder.ObserveAlarm()
}

// Must hold t.mu.
func (t *Timer) stopAlarmLocked() {
	if t.alarmStop != nil {
		close(t.alarmStop)
		t.alarmStop = nil
	}
}

// Must hold t.mu.
func (t *Timer) stopExpiryLocked() {
	t.gen++
	if t.expiry != nil {
		t.expiry.Stop()
		t.expiry = nil
	}
}

// Must hold t.mu.
func (t *Timer) snapshotLocked() models.TimerResponse {
	remaining := t.remaining
	if t.running {
		remaining = max(t.deadline.Sub(t.clock.Now()), 0)
	}

	durationSec := int(t.duration / time.Second)
	remainingSec := int((remaining + time.Second - 1) / time.Second)

	var progress float64
	if durationSec > 0 {
		progress = float64(durationSec-remainingSec) / float64(durationSec) * 100
		progress = min(max(progress, 0), 100)
	}

	return models.TimerResponse{
		DurationSec:  durationSec,
		RemainingSec: remainingSec,
		Display:      FormatClock(remainingSec),
		Progress:     progress,
		FinalMinute:  remainingSec > 0 && remainingSec <= 60,
		Running:      t.running,
		Finished:     t.finished,
		Sound:        t.sound,
	}
}

// FormatClock renders seconds as MM:SS
func FormatClock(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}
