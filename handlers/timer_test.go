// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/team-sorter/models"
	"github.com/danielhkuo/team-sorter/testutil"
)

func decodeTimer(t *testing.T, w *httptest.ResponseRecorder) models.TimerResponse {
	t.Helper()
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.TimerResponse
	testutil.AssertJSON(t, w, &resp)
	return resp
}

func TestGetTimer(t *testing.T) {
	timer, _ := testutil.NewTestTimer(t)
	handler := NewTimerHandler(timer)

	w := httptest.NewRecorder()
	handler.GetTimer(w, testutil.MakeRequest("GET", "/timer", nil, nil))

	resp := decodeTimer(t, w)
	if resp.Display != "10:00" || resp.Running || !resp.Sound {
		t.Errorf("Unexpected default timer %+v", resp)
	}
}

func TestSetDuration(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		display string
	}{
		{"regular", `{"minutes":7,"seconds":30}`, "07:30"},
		{"clamped", `{"minutes":200,"seconds":99}`, "90:59"},
		{"negative", `{"minutes":-3,"seconds":-3}`, "00:00"},
		{"strings", `{"minutes":"12","seconds":"5"}`, "12:05"},
		{"garbage", `{"minutes":"soon","seconds":20}`, "00:20"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			timer, _ := testutil.NewTestTimer(t)
			handler := NewTimerHandler(timer)

			w := httptest.NewRecorder()
			handler.SetDuration(w, httptest.NewRequest("PUT", "/timer", strings.NewReader(tc.body)))

			resp := decodeTimer(t, w)
			if resp.Display != tc.display {
				t.Errorf("Expected %s, got %s", tc.display, resp.Display)
			}
		})
	}
}

func TestPreset(t *testing.T) {
	timer, _ := testutil.NewTestTimer(t)
	handler := NewTimerHandler(timer)

	req := testutil.MakeRequest("POST", "/timer/preset/15", nil, nil)
	req.SetPathValue("minutes", "15")
	w := httptest.NewRecorder()
	handler.Preset(w, req)

	if resp := decodeTimer(t, w); resp.DurationSec != 900 {
		t.Errorf("Expected 900s, got %d", resp.DurationSec)
	}

	for _, bad := range []string{"abc", "8"} {
		req := testutil.MakeRequest("POST", "/timer/preset/"+bad, nil, nil)
		req.SetPathValue("minutes", bad)
		w := httptest.NewRecorder()
		handler.Preset(w, req)
		testutil.AssertError(t, w, http.StatusBadRequest)
	}
}

func TestTimerLifecycle(t *testing.T) {
	timer, clock := testutil.NewTestTimer(t)
	handler := NewTimerHandler(timer)

	w := httptest.NewRecorder()
	handler.Start(w, testutil.MakeRequest("POST", "/timer/start", nil, nil))
	if resp := decodeTimer(t, w); !resp.Running {
		t.Fatal("Expected timer to be running")
	}

	// Duration is locked while running
	w = httptest.NewRecorder()
	handler.SetDuration(w, httptest.NewRequest("PUT", "/timer", strings.NewReader(`{"minutes":5}`)))
	testutil.AssertError(t, w, http.StatusConflict)

	clock.Advance(65 * time.Second)

	w = httptest.NewRecorder()
	handler.Pause(w, testutil.MakeRequest("POST", "/timer/pause", nil, nil))
	resp := decodeTimer(t, w)
	if resp.Running || resp.Display != "08:55" {
		t.Errorf("Expected paused at 08:55, got %+v", resp)
	}

	w = httptest.NewRecorder()
	handler.Reset(w, testutil.MakeRequest("POST", "/timer/reset", nil, nil))
	if resp := decodeTimer(t, w); resp.Display != "10:00" {
		t.Errorf("Expected reset to 10:00, got %s", resp.Display)
	}

	w = httptest.NewRecorder()
	handler.Dismiss(w, testutil.MakeRequest("POST", "/timer/dismiss", nil, nil))
	if resp := decodeTimer(t, w); resp.Finished {
		t.Error("Expected dismissed timer not to be finished")
	}
}

func TestStart_ZeroDurationConflict(t *testing.T) {
	timer, _ := testutil.NewTestTimer(t)
	handler := NewTimerHandler(timer)

	handler.SetDuration(httptest.NewRecorder(), httptest.NewRequest("PUT", "/timer", strings.NewReader(`{"minutes":0,"seconds":0}`)))

	w := httptest.NewRecorder()
	handler.Start(w, testutil.MakeRequest("POST", "/timer/start", nil, nil))
	testutil.AssertError(t, w, http.StatusConflict)
}

func TestSetSound(t *testing.T) {
	timer, _ := testutil.NewTestTimer(t)
	handler := NewTimerHandler(timer)

	w := httptest.NewRecorder()
	handler.SetSound(w, testutil.MakeRequest("PUT", "/timer/sound", map[string]bool{"enabled": false}, nil))
	if resp := decodeTimer(t, w); resp.Sound {
		t.Error("Expected sound off")
	}

	w = httptest.NewRecorder()
	handler.SetSound(w, httptest.NewRequest("PUT", "/timer/sound", strings.NewReader("oops")))
	testutil.AssertError(t, w, http.StatusBadRequest)
}
