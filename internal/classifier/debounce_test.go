package classifier

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"permission-wizard/internal/model"
)

func countingClassifier(calls *atomic.Int32) RankClassifier {
	return classifierFunc(func(_ context.Context, in Input) (Result, error) {
		calls.Add(1)
		return ClassifyLocal(in), nil
	})
}

func TestDebouncer_Supersedes(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(countingClassifier(&calls), 100*time.Millisecond)

	var (
		wg       sync.WaitGroup
		firstErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = d.Classify(context.Background(), "rank-1", Input{Name: "VI"})
	}()

	time.Sleep(20 * time.Millisecond)
	res, err := d.Classify(context.Background(), "rank-1", Input{Name: "VIP"})
	wg.Wait()

	require.NoError(t, err)
	assert.Equal(t, model.LevelVIP, res.Level)
	assert.ErrorIs(t, firstErr, SupersededError)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncer_IndependentKeys(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(countingClassifier(&calls), 20*time.Millisecond)

	var wg sync.WaitGroup
	results := make([]Result, 2)
	for i, name := range []string{"Admin", "Owner"} {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			res, err := d.Classify(context.Background(), name, Input{Name: name})
			assert.NoError(t, err)
			results[i] = res
		}(i, name)
	}
	wg.Wait()

	assert.Equal(t, model.LevelAdmin, results[0].Level)
	assert.Equal(t, model.LevelOwner, results[1].Level)
	assert.Equal(t, int32(2), calls.Load())
}

func TestDebouncer_ParentCancelled(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(countingClassifier(&calls), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Classify(ctx, "rank-1", Input{Name: "VIP"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}
