package rest

import (
	"context"
	"sync"
	"github.com/google/uuid"
	"github.com/heartmarshall/stockcheck-backend/internal/domain"
	"github.com/heartmarshall/stockcheck-backend/internal/service/event"
)

var _ eventService = &eventServiceMock{}

type eventServiceMock struct {
	CreateEventFunc     func(ctx context.Context, input event.CreateEventInput) (domain.Event, error)
	GetEventFunc        func(ctx context.Context, id uuid.UUID) (domain.Event, error)
	ListEventsFunc      func(ctx context.Context, input event.ListEventsInput) ([]domain.Event, error)
	SetEventStatusFunc  func(ctx context.Context, input event.SetEventStatusInput) (domain.Event, error)
	SetInclusionsFunc   func(ctx context.Context, input event.SetInclusionsInput) (domain.Event, error)
	ListActivityFunc    func(ctx context.Context, eventID uuid.UUID, limit int, offset int) ([]domain.AuditRecord, error)
	CreateShareLinkFunc func(ctx context.Context, eventID uuid.UUID) (domain.ShareLink, error)
	RevokeShareLinkFunc func(ctx context.Context, eventID uuid.UUID) error

	calls struct {
		CreateEvent []struct {
			Ctx   context.Context
			Input event.CreateEventInput
		}
		GetEvent []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListEvents []struct {
			Ctx   context.Context
			Input event.ListEventsInput
		}
		SetEventStatus []struct {
			Ctx   context.Context
			Input event.SetEventStatusInput
		}
		SetInclusions []struct {
			Ctx   context.Context
			Input event.SetInclusionsInput
		}
		ListActivity []struct {
			Ctx     context.Context
			EventID uuid.UUID
			Limit   int
			Offset  int
		}
		CreateShareLink []struct {
			Ctx     context.Context
			EventID uuid.UUID
		}
		RevokeShareLink []struct {
			Ctx     context.Context
			EventID uuid.UUID
		}
	}
	lockCreateEvent     sync.RWMutex
	lockGetEvent        sync.RWMutex
	lockListEvents      sync.RWMutex
	lockSetEventStatus  sync.RWMutex
	lockSetInclusions   sync.RWMutex
	lockListActivity    sync.RWMutex
	lockCreateShareLink sync.RWMutex
	lockRevokeShareLink sync.RWMutex
}

func (mock *eventServiceMock) CreateEvent(ctx context.Context, input event.CreateEventInput) (domain.Event, error) {
	if mock.CreateEventFunc == nil {
		panic("eventServiceMock.CreateEventFunc: method is nil but eventService.CreateEvent was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input event.CreateEventInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockCreateEvent.Lock()
	mock.calls.CreateEvent = append(mock.calls.CreateEvent, callInfo)
	mock.lockCreateEvent.Unlock()
	return mock.CreateEventFunc(ctx, input)
}

func (mock *eventServiceMock) CreateEventCalls() []struct {
	Ctx   context.Context
	Input event.CreateEventInput
} {
	mock.lockCreateEvent.RLock()
	calls := mock.calls.CreateEvent
	mock.lockCreateEvent.RUnlock()
	return calls
}

func (mock *eventServiceMock) GetEvent(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	if mock.GetEventFunc == nil {
		panic("eventServiceMock.GetEventFunc: method is nil but eventService.GetEvent was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetEvent.Lock()
	mock.calls.GetEvent = append(mock.calls.GetEvent, callInfo)
	mock.lockGetEvent.Unlock()
	return mock.GetEventFunc(ctx, id)
}

func (mock *eventServiceMock) GetEventCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetEvent.RLock()
	calls := mock.calls.GetEvent
	mock.lockGetEvent.RUnlock()
	return calls
}

func (mock *eventServiceMock) ListEvents(ctx context.Context, input event.ListEventsInput) ([]domain.Event, error) {
	if mock.ListEventsFunc == nil {
		panic("eventServiceMock.ListEventsFunc: method is nil but eventService.ListEvents was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input event.ListEventsInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockListEvents.Lock()
	mock.calls.ListEvents = append(mock.calls.ListEvents, callInfo)
	mock.lockListEvents.Unlock()
	return mock.ListEventsFunc(ctx, input)
}

func (mock *eventServiceMock) ListEventsCalls() []struct {
	Ctx   context.Context
	Input event.ListEventsInput
} {
	mock.lockListEvents.RLock()
	calls := mock.calls.ListEvents
	mock.lockListEvents.RUnlock()
	return calls
}

func (mock *eventServiceMock) SetEventStatus(ctx context.Context, input event.SetEventStatusInput) (domain.Event, error) {
	if mock.SetEventStatusFunc == nil {
		panic("eventServiceMock.SetEventStatusFunc: method is nil but eventService.SetEventStatus was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input event.SetEventStatusInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockSetEventStatus.Lock()
	mock.calls.SetEventStatus = append(mock.calls.SetEventStatus, callInfo)
	mock.lockSetEventStatus.Unlock()
	return mock.SetEventStatusFunc(ctx, input)
}

func (mock *eventServiceMock) SetEventStatusCalls() []struct {
	Ctx   context.Context
	Input event.SetEventStatusInput
} {
	mock.lockSetEventStatus.RLock()
	calls := mock.calls.SetEventStatus
	mock.lockSetEventStatus.RUnlock()
	return calls
}

func (mock *eventServiceMock) SetInclusions(ctx context.Context, input event.SetInclusionsInput) (domain.Event, error) {
	if mock.SetInclusionsFunc == nil {
		panic("eventServiceMock.SetInclusionsFunc: method is nil but eventService.SetInclusions was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input event.SetInclusionsInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockSetInclusions.Lock()
	mock.calls.SetInclusions = append(mock.calls.SetInclusions, callInfo)
	mock.lockSetInclusions.Unlock()
	return mock.SetInclusionsFunc(ctx, input)
}

func (mock *eventServiceMock) SetInclusionsCalls() []struct {
	Ctx   context.Context
	Input event.SetInclusionsInput
} {
	mock.lockSetInclusions.RLock()
	calls := mock.calls.SetInclusions
	mock.lockSetInclusions.RUnlock()
	return calls
}

func (mock *eventServiceMock) ListActivity(ctx context.Context, eventID uuid.UUID, limit int, offset int) ([]domain.AuditRecord, error) {
	if mock.ListActivityFunc == nil {
		panic("eventServiceMock.ListActivityFunc: method is nil but eventService.ListActivity was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EventID uuid.UUID
		Limit   int
		Offset  int
	}{
		Ctx:     ctx,
		EventID: eventID,
		Limit:   limit,
		Offset:  offset,
	}
	mock.lockListActivity.Lock()
	mock.calls.ListActivity = append(mock.calls.ListActivity, callInfo)
	mock.lockListActivity.Unlock()
	return mock.ListActivityFunc(ctx, eventID, limit, offset)
}

func (mock *eventServiceMock) ListActivityCalls() []struct {
	Ctx     context.Context
	EventID uuid.UUID
	Limit   int
	Offset  int
} {
	mock.lockListActivity.RLock()
	calls := mock.calls.ListActivity
	mock.lockListActivity.RUnlock()
	return calls
}

func (mock *eventServiceMock) CreateShareLink(ctx context.Context, eventID uuid.UUID) (domain.ShareLink, error) {
	if mock.CreateShareLinkFunc == nil {
		panic("eventServiceMock.CreateShareLinkFunc: method is nil but eventService.CreateShareLink was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EventID uuid.UUID
	}{
		Ctx:     ctx,
		EventID: eventID,
	}
	mock.lockCreateShareLink.Lock()
	mock.calls.CreateShareLink = append(mock.calls.CreateShareLink, callInfo)
	mock.lockCreateShareLink.Unlock()
	return mock.CreateShareLinkFunc(ctx, eventID)
}

func (mock *eventServiceMock) CreateShareLinkCalls() []struct {
	Ctx     context.Context
	EventID uuid.UUID
} {
	mock.lockCreateShareLink.RLock()
	calls := mock.calls.CreateShareLink
	mock.lockCreateShareLink.RUnlock()
	return calls
}

func (mock *eventServiceMock) RevokeShareLink(ctx context.Context, eventID uuid.UUID) error {
	if mock.RevokeShareLinkFunc == nil {
		panic("eventServiceMock.RevokeShareLinkFunc: method is nil but eventService.RevokeShareLink was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EventID uuid.UUID
	}{
		Ctx:     ctx,
		EventID: eventID,
	}
	mock.lockRevokeShareLink.Lock()
	mock.calls.RevokeShareLink = append(mock.calls.RevokeShareLink, callInfo)
	mock.lockRevokeShareLink.Unlock()
	return mock.RevokeShareLinkFunc(ctx, eventID)
}

func (mock *eventServiceMock) RevokeShareLinkCalls() []struct {
	Ctx     context.Context
	EventID uuid.UUID
} {
	mock.lockRevokeShareLink.RLock()
	calls := mock.calls.RevokeShareLink
	mock.lockRevokeShareLink.RUnlock()
	return calls
}
