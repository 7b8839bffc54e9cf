package refresher_test

import (
	"context"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pagefresh/internal/adapters/store/memory"
	"go.trai.ch/pagefresh/internal/core/domain"
	"go.uber.org/mock/gomock"
)

func TestStart_SnapshotAndWait(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		provider := newProvider(ctrl)
		tasks := industryTasks(3)
		provider.EXPECT().Generate(gomock.Any(), gomock.Any(), "").Return(content("x"), nil).Times(3)

		cfg := baseConfig()
		cfg.InterCallDelay = time.Minute

		h := newRefresher(t, ctrl, provider, memory.NewStore(), cfg).Start(context.Background(), tasks)
		assert.Equal(t, "run-1", h.ID())

		// The worker is now parked in the first pause.
		synctest.Wait()
		rep, finished, err := h.Snapshot()
		require.NoError(t, err)
		assert.False(t, finished)
		assert.Equal(t, 1, rep.Processed())

		final, err := h.Wait()
		require.NoError(t, err)
		assert.Equal(t, 3, final.Succeeded)

		select {
		case <-h.Done():
		default:
			t.Fatal("Done should be closed after Wait")
		}

		rep, finished, err = h.Snapshot()
		require.NoError(t, err)
		assert.True(t, finished)
		assert.Equal(t, 3, rep.Processed())
	})
}

func TestStart_Cancel(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		provider := newProvider(ctrl)
		store := memory.NewStore()
		tasks := industryTasks(3)
		provider.EXPECT().Generate(gomock.Any(), tasks[0], "").Return(content("a"), nil)

		cfg := baseConfig()
		cfg.InterCallDelay = time.Hour

		h := newRefresher(t, ctrl, provider, store, cfg).Start(context.Background(), tasks)
		synctest.Wait()
		h.Cancel()

		rep, err := h.Wait()
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, []domain.Outcome{domain.OutcomeSucceeded}, outcomes(rep))
		assert.Equal(t, 1, store.Len())
	})
}

func TestStart_SnapshotIsACopy(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		provider := newProvider(ctrl)
		provider.EXPECT().Generate(gomock.Any(), gomock.Any(), "").Return(content("x"), nil)

		h := newRefresher(t, ctrl, provider, memory.NewStore(), baseConfig()).
			Start(context.Background(), industryTasks(1))
		_, _ = h.Wait()

		rep, _, _ := h.Snapshot()
		rep.Results[0].Outcome = domain.OutcomeFailed

		again, _, _ := h.Snapshot()
		assert.Equal(t, domain.OutcomeSucceeded, again.Results[0].Outcome)
	})
}
