package check

import (
	"context"
	"sync"
	"github.com/google/uuid"
	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

var _ loadRepo = &loadRepoMock{}

type loadRepoMock struct {
	LockFunc        func(ctx context.Context, eventID uuid.UUID, nodeID uuid.UUID) error
	UpsertFunc      func(ctx context.Context, s domain.LoadState) (domain.LoadState, error)
	ListByEventFunc func(ctx context.Context, eventID uuid.UUID) ([]domain.LoadState, error)
	ClearLoadedFunc func(ctx context.Context, eventID uuid.UUID, nodeIDs []uuid.UUID, setBy string) ([]domain.LoadState, error)

	calls struct {
		Lock []struct {
			Ctx     context.Context
			EventID uuid.UUID
			NodeID  uuid.UUID
		}
		Upsert []struct {
			Ctx context.Context
			S   domain.LoadState
		}
		ListByEvent []struct {
			Ctx     context.Context
			EventID uuid.UUID
		}
		ClearLoaded []struct {
			Ctx     context.Context
			EventID uuid.UUID
			NodeIDs []uuid.UUID
			SetBy   string
		}
	}
	lockLock        sync.RWMutex
	lockUpsert      sync.RWMutex
	lockListByEvent sync.RWMutex
	lockClearLoaded sync.RWMutex
}

func (mock *loadRepoMock) Lock(ctx context.Context, eventID uuid.UUID, nodeID uuid.UUID) error {
	if mock.LockFunc == nil {
		panic("loadRepoMock.LockFunc: method is nil but loadRepo.Lock was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EventID uuid.UUID
		NodeID  uuid.UUID
	}{
		Ctx:     ctx,
		EventID: eventID,
		NodeID:  nodeID,
	}
	mock.lockLock.Lock()
	mock.calls.Lock = append(mock.calls.Lock, callInfo)
	mock.lockLock.Unlock()
	return mock.LockFunc(ctx, eventID, nodeID)
}

func (mock *loadRepoMock) LockCalls() []struct {
	Ctx     context.Context
	EventID uuid.UUID
	NodeID  uuid.UUID
} {
	mock.lockLock.RLock()
	calls := mock.calls.Lock
	mock.lockLock.RUnlock()
	return calls
}

func (mock *loadRepoMock) Upsert(ctx context.Context, s domain.LoadState) (domain.LoadState, error) {
	if mock.UpsertFunc == nil {
		panic("loadRepoMock.UpsertFunc: method is nil but loadRepo.Upsert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   domain.LoadState
	}{
		Ctx: ctx,
		S:   s,
	}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, s)
}

func (mock *loadRepoMock) UpsertCalls() []struct {
	Ctx context.Context
	S   domain.LoadState
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}

func (mock *loadRepoMock) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.LoadState, error) {
	if mock.ListByEventFunc == nil {
		panic("loadRepoMock.ListByEventFunc: method is nil but loadRepo.ListByEvent was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EventID uuid.UUID
	}{
		Ctx:     ctx,
		EventID: eventID,
	}
	mock.lockListByEvent.Lock()
	mock.calls.ListByEvent = append(mock.calls.ListByEvent, callInfo)
	mock.lockListByEvent.Unlock()
	return mock.ListByEventFunc(ctx, eventID)
}

func (mock *loadRepoMock) ListByEventCalls() []struct {
	Ctx     context.Context
	EventID uuid.UUID
} {
	mock.lockListByEvent.RLock()
	calls := mock.calls.ListByEvent
	mock.lockListByEvent.RUnlock()
	return calls
}

func (mock *loadRepoMock) ClearLoaded(ctx context.Context, eventID uuid.UUID, nodeIDs []uuid.UUID, setBy string) ([]domain.LoadState, error) {
	if mock.ClearLoadedFunc == nil {
		panic("loadRepoMock.ClearLoadedFunc: method is nil but loadRepo.ClearLoaded was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EventID uuid.UUID
		NodeIDs []uuid.UUID
		SetBy   string
	}{
		Ctx:     ctx,
		EventID: eventID,
		NodeIDs: nodeIDs,
		SetBy:   setBy,
	}
	mock.lockClearLoaded.Lock()
	mock.calls.ClearLoaded = append(mock.calls.ClearLoaded, callInfo)
	mock.lockClearLoaded.Unlock()
	return mock.ClearLoadedFunc(ctx, eventID, nodeIDs, setBy)
}

func (mock *loadRepoMock) ClearLoadedCalls() []struct {
	Ctx     context.Context
	EventID uuid.UUID
	NodeIDs []uuid.UUID
	SetBy   string
} {
	mock.lockClearLoaded.RLock()
	calls := mock.calls.ClearLoaded
	mock.lockClearLoaded.RUnlock()
	return calls
}
