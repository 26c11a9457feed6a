package stock

import (
	"context"
	"sync"
	"time"
	"github.com/google/uuid"
	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

var _ nodeRepo = &nodeRepoMock{}

type nodeRepoMock struct {
	GetByIDFunc            func(ctx context.Context, id uuid.UUID) (domain.StockNode, error)
	ListAllFunc            func(ctx context.Context) ([]domain.StockNode, error)
	ListSubtreesFunc       func(ctx context.Context, rootIDs []uuid.UUID) ([]domain.StockNode, error)
	ListExpiringBeforeFunc func(ctx context.Context, day time.Time) ([]domain.StockNode, error)
	LockForestFunc         func(ctx context.Context) error
	CreateFunc             func(ctx context.Context, n domain.StockNode) (domain.StockNode, error)
	CreateBatchFunc        func(ctx context.Context, nodes []domain.StockNode) error
	UpdateFunc             func(ctx context.Context, n domain.StockNode) (domain.StockNode, error)
	MoveFunc               func(ctx context.Context, id uuid.UUID, parentID *uuid.UUID, position int) error
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListAll []struct {
			Ctx context.Context
		}
		ListSubtrees []struct {
			Ctx     context.Context
			RootIDs []uuid.UUID
		}
		ListExpiringBefore []struct {
			Ctx context.Context
			Day time.Time
		}
		LockForest []struct {
			Ctx context.Context
		}
		Create []struct {
			Ctx context.Context
			N   domain.StockNode
		}
		CreateBatch []struct {
			Ctx   context.Context
			Nodes []domain.StockNode
		}
		Update []struct {
			Ctx context.Context
			N   domain.StockNode
		}
		Move []struct {
			Ctx      context.Context
			ID       uuid.UUID
			ParentID *uuid.UUID
			Position int
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockGetByID            sync.RWMutex
	lockListAll            sync.RWMutex
	lockListSubtrees       sync.RWMutex
	lockListExpiringBefore sync.RWMutex
	lockLockForest         sync.RWMutex
	lockCreate             sync.RWMutex
	lockCreateBatch        sync.RWMutex
	lockUpdate             sync.RWMutex
	lockMove               sync.RWMutex
	lockDelete             sync.RWMutex
}

func (mock *nodeRepoMock) GetByID(ctx context.Context, id uuid.UUID) (domain.StockNode, error) {
	if mock.GetByIDFunc == nil {
		panic("nodeRepoMock.GetByIDFunc: method is nil but nodeRepo.GetByID was just called")
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

func (mock *nodeRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
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

func (mock *nodeRepoMock) ListExpiringBefore(ctx context.Context, day time.Time) ([]domain.StockNode, error) {
	if mock.ListExpiringBeforeFunc == nil {
		panic("nodeRepoMock.ListExpiringBeforeFunc: method is nil but nodeRepo.ListExpiringBefore was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Day time.Time
	}{
		Ctx: ctx,
		Day: day,
	}
	mock.lockListExpiringBefore.Lock()
	mock.calls.ListExpiringBefore = append(mock.calls.ListExpiringBefore, callInfo)
	mock.lockListExpiringBefore.Unlock()
	return mock.ListExpiringBeforeFunc(ctx, day)
}

func (mock *nodeRepoMock) ListExpiringBeforeCalls() []struct {
	Ctx context.Context
	Day time.Time
} {
	mock.lockListExpiringBefore.RLock()
	calls := mock.calls.ListExpiringBefore
	mock.lockListExpiringBefore.RUnlock()
	return calls
}

func (mock *nodeRepoMock) LockForest(ctx context.Context) error {
	if mock.LockForestFunc == nil {
		panic("nodeRepoMock.LockForestFunc: method is nil but nodeRepo.LockForest was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockLockForest.Lock()
	mock.calls.LockForest = append(mock.calls.LockForest, callInfo)
	mock.lockLockForest.Unlock()
	return mock.LockForestFunc(ctx)
}

func (mock *nodeRepoMock) LockForestCalls() []struct {
	Ctx context.Context
} {
	mock.lockLockForest.RLock()
	calls := mock.calls.LockForest
	mock.lockLockForest.RUnlock()
	return calls
}

func (mock *nodeRepoMock) Create(ctx context.Context, n domain.StockNode) (domain.StockNode, error) {
	if mock.CreateFunc == nil {
		panic("nodeRepoMock.CreateFunc: method is nil but nodeRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		N   domain.StockNode
	}{
		Ctx: ctx,
		N:   n,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, n)
}

func (mock *nodeRepoMock) CreateCalls() []struct {
	Ctx context.Context
	N   domain.StockNode
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *nodeRepoMock) CreateBatch(ctx context.Context, nodes []domain.StockNode) error {
	if mock.CreateBatchFunc == nil {
		panic("nodeRepoMock.CreateBatchFunc: method is nil but nodeRepo.CreateBatch was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Nodes []domain.StockNode
	}{
		Ctx:   ctx,
		Nodes: nodes,
	}
	mock.lockCreateBatch.Lock()
	mock.calls.CreateBatch = append(mock.calls.CreateBatch, callInfo)
	mock.lockCreateBatch.Unlock()
	return mock.CreateBatchFunc(ctx, nodes)
}

func (mock *nodeRepoMock) CreateBatchCalls() []struct {
	Ctx   context.Context
	Nodes []domain.StockNode
} {
	mock.lockCreateBatch.RLock()
	calls := mock.calls.CreateBatch
	mock.lockCreateBatch.RUnlock()
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

func (mock *nodeRepoMock) Move(ctx context.Context, id uuid.UUID, parentID *uuid.UUID, position int) error {
	if mock.MoveFunc == nil {
		panic("nodeRepoMock.MoveFunc: method is nil but nodeRepo.Move was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       uuid.UUID
		ParentID *uuid.UUID
		Position int
	}{
		Ctx:      ctx,
		ID:       id,
		ParentID: parentID,
		Position: position,
	}
	mock.lockMove.Lock()
	mock.calls.Move = append(mock.calls.Move, callInfo)
	mock.lockMove.Unlock()
	return mock.MoveFunc(ctx, id, parentID, position)
}

func (mock *nodeRepoMock) MoveCalls() []struct {
	Ctx      context.Context
	ID       uuid.UUID
	ParentID *uuid.UUID
	Position int
} {
	mock.lockMove.RLock()
	calls := mock.calls.Move
	mock.lockMove.RUnlock()
	return calls
}

func (mock *nodeRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("nodeRepoMock.DeleteFunc: method is nil but nodeRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *nodeRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
