package async_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/preferencial-eng/incendio/pkg/domain/model"
	"github.com/preferencial-eng/incendio/pkg/utils/async"
)

func TestDispatch(t *testing.T) {
	t.Run("Handler runs", func(t *testing.T) {
		done := make(chan struct{})
		async.Dispatch(context.Background(), func(ctx context.Context) error {
			close(done)
			return nil
		})

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("handler did not run")
		}
	})

	t.Run("Auth context survives the request context", func(t *testing.T) {
		reqCtx, cancel := context.WithCancel(context.Background())
		reqCtx = model.WithAuthContext(reqCtx, &model.AuthContext{
			UserID: "user-1",
			Email:  "maria@example.com",
		})

		got := make(chan *model.AuthContext, 1)
		async.Dispatch(reqCtx, func(ctx context.Context) error {
			// The originating request is already gone by now
			gt.NoError(t, ctx.Err())
			authCtx, ok := model.GetAuthContext(ctx)
			gt.True(t, ok)
			got <- authCtx
			return nil
		})
		cancel()

		select {
		case authCtx := <-got:
			gt.Equal(t, "maria@example.com", authCtx.Email)
		case <-time.After(2 * time.Second):
			t.Fatal("handler did not run")
		}
	})

	t.Run("Handler error does not propagate", func(t *testing.T) {
		done := make(chan struct{})
		async.Dispatch(context.Background(), func(ctx context.Context) error {
			defer close(done)
			return goerr.New("delivery failed")
		})
		<-done
	})

	t.Run("Panic is recovered", func(t *testing.T) {
		entered := make(chan struct{})
		async.Dispatch(context.Background(), func(ctx context.Context) error {
			close(entered)
			panic("boom")
		})
		<-entered
		// Give the recover path a moment; the test passing at all shows
		// the panic never escaped the goroutine
		time.Sleep(50 * time.Millisecond)
	})
}
