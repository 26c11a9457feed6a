package event

import (
	"context"
	"sync"
	"github.com/heartmarshall/stockcheck-backend/internal/notify"
)

var _ publisher = &publisherMock{}

type publisherMock struct {
	PublishFunc func(ctx context.Context, c notify.Change)

	calls struct {
		Publish []struct {
			Ctx context.Context
			C   notify.Change
		}
	}
	lockPublish sync.RWMutex
}

func (mock *publisherMock) Publish(ctx context.Context, c notify.Change) {
	if mock.PublishFunc == nil {
		panic("publisherMock.PublishFunc: method is nil but publisher.Publish was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   notify.Change
	}{
		Ctx: ctx,
		C:   c,
	}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	mock.PublishFunc(ctx, c)
}

func (mock *publisherMock) PublishCalls() []struct {
	Ctx context.Context
	C   notify.Change
} {
	mock.lockPublish.RLock()
	calls := mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}
