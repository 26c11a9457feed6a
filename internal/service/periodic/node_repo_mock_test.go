package periodic

import (
	"context"
	"sync"
	"github.com/google/uuid"
	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

var _ nodeRepo = &nodeRepoMock{}

type nodeRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (domain.StockNode, error)
	ListAllFunc func(ctx context.Context) ([]domain.StockNode, error)
	UpdateFunc  func(ctx context.Context, n domain.StockNode) (domain.StockNode, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ListAll []struct {
			Ctx context.Context
		}
		Update []struct {
			Ctx context.Context
			N   domain.StockNode
		}
	}
	lockGetByID sync.RWMutex
	lockListAll sync.RWMutex
	lockUpdate  sync.RWMutex
}

func (mock *nodeRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.StockNode, error) {
	if mock.GetByIDFunc == nil {
		panic("nodeRepoMock.GetByIDFunc: method is nil but nodeRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *nodeRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *nodeRepoMock) ListAll(ctx context.Context) ([]domain.StockNode, error) {
	if mock.ListAllFunc == nil {
		panic("nodeRepoMock.ListAllFunc: method is nil but nodeRepo.ListAll was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockListAll.Lock()
	mock.calls.ListAll = append(mock.calls.ListAll, callInfo)
	mock.lockListAll.Unlock()
	return mock.ListAllFunc(ctx)
}

func (mock *nodeRepoMock) ListAllCalls() []struct {
	Ctx context.Context
} {
	mock.lockListAll.RLock()
	calls := mock.calls.ListAll
	mock.lockListAll.RUnlock()
	return calls
}

func (mock *nodeRepoMock) Update(ctx context.Context, n domain.StockNode) (domain.StockNode, error) {
	if mock.UpdateFunc == nil {
		panic("nodeRepoMock.UpdateFunc: method is nil but nodeRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		N   domain.StockNode
	}{
		Ctx: ctx,
		N:   n,
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, n)
}

func (mock *nodeRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	N   domain.StockNode
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
