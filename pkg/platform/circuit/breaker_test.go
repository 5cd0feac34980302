package circuit

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreaker_InitialState(t *testing.T) {
	b := New("ratelimit-redis")
	assert.False(t, b.IsOpen())
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, "ratelimit-redis", b.Name())
	assert.Equal(t, "closed", b.State().String())
}

func TestBreaker_DefaultThresholds(t *testing.T) {
	b := New("defaults", WithFailureThreshold(0), WithSuccessThreshold(-1))
	for range 4 {
		b.RecordFailure()
	}
	assert.False(t, b.IsOpen())
	b.RecordFailure()
	assert.True(t, b.IsOpen())
	assert.Equal(t, "open", b.State().String())

	b.RecordSuccess()
	b.RecordSuccess()
	assert.True(t, b.IsOpen())
	b.RecordSuccess()
	assert.False(t, b.IsOpen())
}

// Each event is 'f' for a primary failure or 's' for a primary success.
func TestBreaker_Sequences(t *testing.T) {
	tests := []struct {
		name      string
		failures  int
		successes int
		events    string
		wantOpen  bool
		// outcome of the last event
		wantFallback bool
		wantChange   StateChange
	}{
		{
			name:     "below failure threshold stays closed",
			failures: 3, successes: 1,
			events:   "ff",
			wantOpen: false,
		},
		{
			name:     "reaching failure threshold opens",
			failures: 3, successes: 1,
			events:       "fff",
			wantOpen:     true,
			wantFallback: true,
			wantChange:   StateChange{Opened: true},
		},
		{
			name:     "failures while open report fallback without a change",
			failures: 1, successes: 1,
			events:       "ff",
			wantOpen:     true,
			wantFallback: true,
		},
		{
			name:     "success while closed clears failure streak",
			failures: 3, successes: 1,
			events:   "ffsff",
			wantOpen: false,
		},
		{
			name:     "closed streak restarts after success",
			failures: 3, successes: 1,
			events:       "ffsfff",
			wantOpen:     true,
			wantFallback: true,
			wantChange:   StateChange{Opened: true},
		},
		{
			name:     "needs success threshold to close",
			failures: 1, successes: 2,
			events:       "fs",
			wantOpen:     true,
			wantFallback: true,
		},
		{
			name:     "success threshold closes",
			failures: 1, successes: 2,
			events:     "fss",
			wantOpen:   false,
			wantChange: StateChange{Closed: true},
		},
		{
			name:     "failure while open restarts success count",
			failures: 1, successes: 3,
			events:       "fssfss",
			wantOpen:     true,
			wantFallback: true,
		},
		{
			name:     "closes after full success run",
			failures: 1, successes: 3,
			events:     "fssfsss",
			wantOpen:   false,
			wantChange: StateChange{Closed: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("store", WithFailureThreshold(tt.failures), WithSuccessThreshold(tt.successes))

			var fallback bool
			var change StateChange
			for _, ev := range tt.events {
				switch ev {
				case 'f':
					fallback, change = b.RecordFailure()
				case 's':
					var primary bool
					primary, change = b.RecordSuccess()
					fallback = !primary
				}
			}

			assert.Equal(t, tt.wantOpen, b.IsOpen())
			assert.Equal(t, tt.wantFallback, fallback)
			assert.Equal(t, tt.wantChange, change)
		})
	}
}

func TestBreaker_ConcurrentUse(t *testing.T) {
	b := New("concurrent", WithFailureThreshold(50))
	var wg sync.WaitGroup
	for range 100 {
		wg.Go(func() {
			b.RecordFailure()
		})
	}
	wg.Wait()
	assert.True(t, b.IsOpen())
}
