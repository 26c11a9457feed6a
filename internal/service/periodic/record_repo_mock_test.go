package periodic

import (
	"context"
	"sync"
	"github.com/google/uuid"
	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

var _ recordRepo = &recordRepoMock{}

type recordRepoMock struct {
	AppendFunc        func(ctx context.Context, rec domain.VerificationRecord) (domain.VerificationRecord, error)
	LockRootFunc      func(ctx context.Context, rootID uuid.UUID) error
	LatestByNodesFunc func(ctx context.Context, nodeIDs []uuid.UUID) ([]domain.VerificationRecord, error)
	HistoryFunc       func(ctx context.Context, nodeIDs []uuid.UUID, limit int) ([]domain.VerificationRecord, error)

	calls struct {
		Append []struct {
			Ctx context.Context
			Rec domain.VerificationRecord
		}
		LockRoot []struct {
			Ctx    context.Context
			RootID uuid.UUID
		}
		LatestByNodes []struct {
			Ctx     context.Context
			NodeIDs []uuid.UUID
		}
		History []struct {
			Ctx     context.Context
			NodeIDs []uuid.UUID
			Limit   int
		}
	}
	lockAppend        sync.RWMutex
	lockLockRoot      sync.RWMutex
	lockLatestByNodes sync.RWMutex
	lockHistory       sync.RWMutex
}

func (mock *recordRepoMock) Append(ctx context.Context, rec domain.VerificationRecord) (domain.VerificationRecord, error) {
	if mock.AppendFunc == nil {
		panic("recordRepoMock.AppendFunc: method is nil but recordRepo.Append was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Rec domain.VerificationRecord
	}{
		Ctx: ctx,
		Rec: rec,
	}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, callInfo)
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, rec)
}

func (mock *recordRepoMock) AppendCalls() []struct {
	Ctx context.Context
	Rec domain.VerificationRecord
} {
	mock.lockAppend.RLock()
	calls := mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}

func (mock *recordRepoMock) LockRoot(ctx context.Context, rootID uuid.UUID) error {
	if mock.LockRootFunc == nil {
		panic("recordRepoMock.LockRootFunc: method is nil but recordRepo.LockRoot was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		RootID uuid.UUID
	}{
		Ctx:    ctx,
		RootID: rootID,
	}
	mock.lockLockRoot.Lock()
	mock.calls.LockRoot = append(mock.calls.LockRoot, callInfo)
	mock.lockLockRoot.Unlock()
	return mock.LockRootFunc(ctx, rootID)
}

func (mock *recordRepoMock) LockRootCalls() []struct {
	Ctx    context.Context
	RootID uuid.UUID
} {
	mock.lockLockRoot.RLock()
	calls := mock.calls.LockRoot
	mock.lockLockRoot.RUnlock()
	return calls
}

func (mock *recordRepoMock) LatestByNodes(ctx context.Context, nodeIDs []uuid.UUID) ([]domain.VerificationRecord, error) {
	if mock.LatestByNodesFunc == nil {
		panic("recordRepoMock.LatestByNodesFunc: method is nil but recordRepo.LatestByNodes was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		NodeIDs []uuid.UUID
	}{
		Ctx:     ctx,
		NodeIDs: nodeIDs,
	}
	mock.lockLatestByNodes.Lock()
	mock.calls.LatestByNodes = append(mock.calls.LatestByNodes, callInfo)
	mock.lockLatestByNodes.Unlock()
	return mock.LatestByNodesFunc(ctx, nodeIDs)
}

func (mock *recordRepoMock) LatestByNodesCalls() []struct {
	Ctx     context.Context
	NodeIDs []uuid.UUID
} {
	mock.lockLatestByNodes.RLock()
	calls := mock.calls.LatestByNodes
	mock.lockLatestByNodes.RUnlock()
	return calls
}

func (mock *recordRepoMock) History(ctx context.Context, nodeIDs []uuid.UUID, limit int) ([]domain.VerificationRecord, error) {
	if mock.HistoryFunc == nil {
		panic("recordRepoMock.HistoryFunc: method is nil but recordRepo.History was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		NodeIDs []uuid.UUID
		Limit   int
	}{
		Ctx:     ctx,
		NodeIDs: nodeIDs,
		Limit:   limit,
	}
	mock.lockHistory.Lock()
	mock.calls.History = append(mock.calls.History, callInfo)
	mock.lockHistory.Unlock()
	return mock.HistoryFunc(ctx, nodeIDs, limit)
}

func (mock *recordRepoMock) HistoryCalls() []struct {
	Ctx     context.Context
	NodeIDs []uuid.UUID
	Limit   int
} {
	mock.lockHistory.RLock()
	calls := mock.calls.History
	mock.lockHistory.RUnlock()
	return calls
}
