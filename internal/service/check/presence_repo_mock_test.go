package check

import (
	"context"
	"sync"
	"time"
	"github.com/google/uuid"
	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

var _ presenceRepo = &presenceRepoMock{}

type presenceRepoMock struct {
	TouchFunc     func(ctx context.Context, eventID uuid.UUID, actor string, subtreeID *uuid.UUID) (domain.PresenceEntry, error)
	ListSinceFunc func(ctx context.Context, eventID uuid.UUID, since time.Time) ([]domain.PresenceEntry, error)

	calls struct {
		Touch []struct {
			Ctx       context.Context
			EventID   uuid.UUID
			Actor     string
			SubtreeID *uuid.UUID
		}
		ListSince []struct {
			Ctx     context.Context
			EventID uuid.UUID
			Since   time.Time
		}
	}
	lockTouch     sync.RWMutex
	lockListSince sync.RWMutex
}

func (mock *presenceRepoMock) Touch(ctx context.Context, eventID uuid.UUID, actor string, subtreeID *uuid.UUID) (domain.PresenceEntry, error) {
	if mock.TouchFunc == nil {
		panic("presenceRepoMock.TouchFunc: method is nil but presenceRepo.Touch was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		EventID   uuid.UUID
		Actor     string
		SubtreeID *uuid.UUID
	}{
		Ctx:       ctx,
		EventID:   eventID,
		Actor:     actor,
		SubtreeID: subtreeID,
	}
	mock.lockTouch.Lock()
	mock.calls.Touch = append(mock.calls.Touch, callInfo)
	mock.lockTouch.Unlock()
	return mock.TouchFunc(ctx, eventID, actor, subtreeID)
}

func (mock *presenceRepoMock) TouchCalls() []struct {
	Ctx       context.Context
	EventID   uuid.UUID
	Actor     string
	SubtreeID *uuid.UUID
} {
	mock.lockTouch.RLock()
	calls := mock.calls.Touch
	mock.lockTouch.RUnlock()
	return calls
}

func (mock *presenceRepoMock) ListSince(ctx context.Context, eventID uuid.UUID, since time.Time) ([]domain.PresenceEntry, error) {
	if mock.ListSinceFunc == nil {
		panic("presenceRepoMock.ListSinceFunc: method is nil but presenceRepo.ListSince was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EventID uuid.UUID
		Since   time.Time
	}{
		Ctx:     ctx,
		EventID: eventID,
		Since:   since,
	}
	mock.lockListSince.Lock()
	mock.calls.ListSince = append(mock.calls.ListSince, callInfo)
	mock.lockListSince.Unlock()
	return mock.ListSinceFunc(ctx, eventID, since)
}

func (mock *presenceRepoMock) ListSinceCalls() []struct {
	Ctx     context.Context
	EventID uuid.UUID
	Since   time.Time
} {
	mock.lockListSince.RLock()
	calls := mock.calls.ListSince
	mock.lockListSince.RUnlock()
	return calls
}
