package internal

import (
	"context"
	"os"
	"sync"

	"github.com/google/uuid"
)

// Configurer accepts configuration as a map of environment variables;
// components validate lazily on Open rather than on Configure.
type Configurer interface {
	Configure(envs map[string]string) error
}

type Opener interface {
	Open(ctx context.Context) error
	Closer
}

type Closer interface {
	Close(ctx context.Context) error
}

type Clearer interface {
	Clear(ctx context.Context) error
}

type ctxKeyCorrelationId struct{}

func CtxWithCorrelationId(ctx context.Context, correlationId string) context.Context {
	return context.WithValue(ctx, ctxKeyCorrelationId{}, correlationId)
}

func CorrelationIdFromCtx(ctx context.Context) string {
	if correlationId, ok := ctx.Value(ctxKeyCorrelationId{}).(string); ok {
		return correlationId
	}
	return ""
}

func GenerateId() string {
	return uuid.Must(uuid.NewRandom()).String()
}

// LaunchContext returns a context that is cancelled when an os signal is
// received (or when the returned cancel function is called).
func LaunchContext(wg *sync.WaitGroup, osSignal chan os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	wg.Add(1)
	go func() {
		defer wg.Done()

		select {
		case <-ctx.Done():
		case <-osSignal:
			cancel()
		}
	}()
	return ctx, cancel
}
