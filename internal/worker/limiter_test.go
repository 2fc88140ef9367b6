package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/adscout/internal/model"
)

func newTestPacer(f float64) (*Pacer, *[]time.Duration) {
	p := NewPacer(model.DefaultConfig().Pacing)
	p.rand = func() float64 { return f }

	var slept []time.Duration
	p.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return p, &slept
}

func TestPacer_DelayWithinRange(t *testing.T) {
	tests := []struct {
		kind     Pause
		min, max time.Duration
	}{
		{PauseProfile, 1500 * time.Millisecond, 3500 * time.Millisecond},
		{PausePost, 2 * time.Second, 5 * time.Second},
		{PauseAccount, 3 * time.Second, 7 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			low, _ := newTestPacer(0)
			high, _ := newTestPacer(0.999999)
			mid, _ := newTestPacer(0.5)

			assert.Equal(t, tt.min, low.Delay(tt.kind))
			assert.Less(t, high.Delay(tt.kind), tt.max+time.Millisecond)
			assert.Equal(t, tt.min+(tt.max-tt.min)/2, mid.Delay(tt.kind))
		})
	}
}

func TestPacer_PauseSleepsAndAccumulates(t *testing.T) {
	p, slept := newTestPacer(0)

	require.NoError(t, p.Pause(context.Background(), PauseProfile))
	require.NoError(t, p.Pause(context.Background(), PauseAccount))

	assert.Equal(t, []time.Duration{1500 * time.Millisecond, 3 * time.Second}, *slept)
	assert.Equal(t, 4500*time.Millisecond, p.Slept())
}

func TestPacer_DegenerateRange(t *testing.T) {
	cfg := model.DefaultConfig().Pacing
	cfg.Post = model.DelayRange{Min: time.Second, Max: time.Second}
	p := NewPacer(cfg)

	assert.Equal(t, time.Second, p.Delay(PausePost))
}

func TestPacer_PageCeiling(t *testing.T) {
	cfg := model.DefaultConfig().Pacing
	cfg.PagesPerMin = 1
	cfg.PageLoadBurst = 2
	p := NewPacer(cfg)

	ctx := context.Background()
	require.NoError(t, p.Wait(ctx))
	require.NoError(t, p.Wait(ctx))

	ctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	assert.Error(t, p.Wait(ctx), "third load exceeds the burst")
}

func TestPacer_NoCeiling(t *testing.T) {
	cfg := model.DefaultConfig().Pacing
	cfg.PagesPerMin = 0
	p := NewPacer(cfg)

	for i := 0; i < 100; i++ {
		require.NoError(t, p.Wait(context.Background()))
	}
}

func TestSleepCtx_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepCtx(ctx, time.Hour), context.Canceled)
}
