package models

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to JobStatus
		want     bool
	}{
		{JobStatusSearching, JobStatusAccepted, true},
		{JobStatusAccepted, JobStatusPickedUp, true},
		{JobStatusPickedUp, JobStatusInTransit, true},
		{JobStatusInTransit, JobStatusCompleted, true},

		{JobStatusSearching, JobStatusPickedUp, false},
		{JobStatusAccepted, JobStatusInTransit, false},
		{JobStatusAccepted, JobStatusCompleted, false},
		{JobStatusCompleted, JobStatusAccepted, false},
		{JobStatusInTransit, JobStatusPickedUp, false},

		{JobStatusSearching, JobStatusCancelled, true},
		{JobStatusAccepted, JobStatusCancelled, true},
		{JobStatusPickedUp, JobStatusCancelled, true},
		{JobStatusInTransit, JobStatusCancelled, true},
		{JobStatusCompleted, JobStatusCancelled, false},
		{JobStatusCancelled, JobStatusCancelled, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestJobStatusPredicates(t *testing.T) {
	for _, s := range []JobStatus{JobStatusAccepted, JobStatusPickedUp, JobStatusInTransit} {
		if !s.IsActive() {
			t.Errorf("%s should be active", s)
		}
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	for _, s := range []JobStatus{JobStatusCompleted, JobStatusCancelled} {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
		if s.IsActive() {
			t.Errorf("%s should not be active", s)
		}
	}
	if JobStatusSearching.IsActive() {
		t.Error("searching should not count as occupying a driver")
	}
}
