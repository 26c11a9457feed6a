package check

import (
	"context"
	"sync"
	"github.com/google/uuid"
	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

var _ eventRepo = &eventRepoMock{}

type eventRepoMock struct {
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (domain.Event, error)
	GetForShareFunc func(ctx context.Context, id uuid.UUID) (domain.Event, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetForShare []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByID     sync.RWMutex
	lockGetForShare sync.RWMutex
}

func (mock *eventRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	if mock.GetByIDFunc == nil {
		panic("eventRepoMock.GetByIDFunc: method is nil but eventRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *eventRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *eventRepoMock) GetForShare(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	if mock.GetForShareFunc == nil {
		panic("eventRepoMock.GetForShareFunc: method is nil but eventRepo.GetForShare was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetForShare.Lock()
	mock.calls.GetForShare = append(mock.calls.GetForShare, callInfo)
	mock.lockGetForShare.Unlock()
	return mock.GetForShareFunc(ctx, id)
}

func (mock *eventRepoMock) GetForShareCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetForShare.RLock()
	calls := mock.calls.GetForShare
	mock.lockGetForShare.RUnlock()
	return calls
}
