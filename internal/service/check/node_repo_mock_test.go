package check

import (
	"context"
	"sync"
	"github.com/google/uuid"
	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

var _ nodeRepo = &nodeRepoMock{}

type nodeRepoMock struct {
	ListSubtreesFunc func(ctx context.Context, rootIDs []uuid.UUID) ([]domain.StockNode, error)

	calls struct {
		ListSubtrees []struct {
			Ctx     context.Context
			RootIDs []uuid.UUID
		}
	}
	lockListSubtrees sync.RWMutex
}

func (mock *nodeRepoMock) ListSubtrees(ctx context.Context, rootIDs []uuid.UUID) ([]domain.StockNode, error) {
	if mock.ListSubtreesFunc == nil {
		panic("nodeRepoMock.ListSubtreesFunc: method is nil but nodeRepo.ListSubtrees was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		RootIDs []uuid.UUID
	}{
		Ctx:     ctx,
		RootIDs: rootIDs,
	}
	mock.lockListSubtrees.Lock()
	mock.calls.ListSubtrees = append(mock.calls.ListSubtrees, callInfo)
	mock.lockListSubtrees.Unlock()
	return mock.ListSubtreesFunc(ctx, rootIDs)
}

func (mock *nodeRepoMock) ListSubtreesCalls() []struct {
	Ctx     context.Context
	RootIDs []uuid.UUID
} {
	mock.lockListSubtrees.RLock()
	calls := mock.calls.ListSubtrees
	mock.lockListSubtrees.RUnlock()
	return calls
}
