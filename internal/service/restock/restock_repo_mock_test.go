package restock

import (
	"context"
	"sync"
	"github.com/google/uuid"
	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

var _ restockRepo = &restockRepoMock{}

type restockRepoMock struct {
	ListItemsFunc   func(ctx context.Context) ([]domain.RestockItem, error)
	GetItemFunc     func(ctx context.Context, id uuid.UUID) (domain.RestockItem, error)
	CreateItemFunc  func(ctx context.Context, it domain.RestockItem) (domain.RestockItem, error)
	UpdateItemFunc  func(ctx context.Context, it domain.RestockItem) (domain.RestockItem, error)
	DeleteItemFunc  func(ctx context.Context, id uuid.UUID) error
	ListBatchesFunc func(ctx context.Context, itemID *uuid.UUID) ([]domain.RestockBatch, error)
	GetBatchFunc    func(ctx context.Context, id uuid.UUID) (domain.RestockBatch, error)
	CreateBatchFunc func(ctx context.Context, b domain.RestockBatch) (domain.RestockBatch, error)
	UpdateBatchFunc func(ctx context.Context, b domain.RestockBatch) (domain.RestockBatch, error)
	DeleteBatchFunc func(ctx context.Context, id uuid.UUID) error
	ListOptionsFunc func(ctx context.Context, nodeID uuid.UUID) ([]domain.RestockOption, error)

	calls struct {
		ListItems []struct {
			Ctx context.Context
		}
		GetItem []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		CreateItem []struct {
			Ctx context.Context
			It  domain.RestockItem
		}
		UpdateItem []struct {
			Ctx context.Context
			It  domain.RestockItem
		}
		DeleteItem []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ListBatches []struct {
			Ctx    context.Context
			ItemID *uuid.UUID
		}
		GetBatch []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		CreateBatch []struct {
			Ctx context.Context
			B   domain.RestockBatch
		}
		UpdateBatch []struct {
			Ctx context.Context
			B   domain.RestockBatch
		}
		DeleteBatch []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ListOptions []struct {
			Ctx    context.Context
			NodeID uuid.UUID
		}
	}
	lockListItems   sync.RWMutex
	lockGetItem     sync.RWMutex
	lockCreateItem  sync.RWMutex
	lockUpdateItem  sync.RWMutex
	lockDeleteItem  sync.RWMutex
	lockListBatches sync.RWMutex
	lockGetBatch    sync.RWMutex
	lockCreateBatch sync.RWMutex
	lockUpdateBatch sync.RWMutex
	lockDeleteBatch sync.RWMutex
	lockListOptions sync.RWMutex
}

func (mock *restockRepoMock) ListItems(ctx context.Context) ([]domain.RestockItem, error) {
	if mock.ListItemsFunc == nil {
		panic("restockRepoMock.ListItemsFunc: method is nil but restockRepo.ListItems was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockListItems.Lock()
	mock.calls.ListItems = append(mock.calls.ListItems, callInfo)
	mock.lockListItems.Unlock()
	return mock.ListItemsFunc(ctx)
}

func (mock *restockRepoMock) ListItemsCalls() []struct {
	Ctx context.Context
} {
	mock.lockListItems.RLock()
	calls := mock.calls.ListItems
	mock.lockListItems.RUnlock()
	return calls
}

func (mock *restockRepoMock) GetItem(ctx context.Context, id uuid.UUID) (domain.RestockItem, error) {
	if mock.GetItemFunc == nil {
		panic("restockRepoMock.GetItemFunc: method is nil but restockRepo.GetItem was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockGetItem.Lock()
	mock.calls.GetItem = append(mock.calls.GetItem, callInfo)
	mock.lockGetItem.Unlock()
	return mock.GetItemFunc(ctx, id)
}

func (mock *restockRepoMock) GetItemCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetItem.RLock()
	calls := mock.calls.GetItem
	mock.lockGetItem.RUnlock()
	return calls
}

func (mock *restockRepoMock) CreateItem(ctx context.Context, it domain.RestockItem) (domain.RestockItem, error) {
	if mock.CreateItemFunc == nil {
		panic("restockRepoMock.CreateItemFunc: method is nil but restockRepo.CreateItem was just called")
	}
	callInfo := struct {
		Ctx context.Context
		It  domain.RestockItem
	}{
		Ctx: ctx,
		It:  it,
	}
	mock.lockCreateItem.Lock()
	mock.calls.CreateItem = append(mock.calls.CreateItem, callInfo)
	mock.lockCreateItem.Unlock()
	return mock.CreateItemFunc(ctx, it)
}

func (mock *restockRepoMock) CreateItemCalls() []struct {
	Ctx context.Context
	It  domain.RestockItem
} {
	mock.lockCreateItem.RLock()
	calls := mock.calls.CreateItem
	mock.lockCreateItem.RUnlock()
	return calls
}

func (mock *restockRepoMock) UpdateItem(ctx context.Context, it domain.RestockItem) (domain.RestockItem, error) {
	if mock.UpdateItemFunc == nil {
		panic("restockRepoMock.UpdateItemFunc: method is nil but restockRepo.UpdateItem was just called")
	}
	callInfo := struct {
		Ctx context.Context
		It  domain.RestockItem
	}{
		Ctx: ctx,
		It:  it,
	}
	mock.lockUpdateItem.Lock()
	mock.calls.UpdateItem = append(mock.calls.UpdateItem, callInfo)
	mock.lockUpdateItem.Unlock()
	return mock.UpdateItemFunc(ctx, it)
}

func (mock *restockRepoMock) UpdateItemCalls() []struct {
	Ctx context.Context
	It  domain.RestockItem
} {
	mock.lockUpdateItem.RLock()
	calls := mock.calls.UpdateItem
	mock.lockUpdateItem.RUnlock()
	return calls
}

func (mock *restockRepoMock) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteItemFunc == nil {
		panic("restockRepoMock.DeleteItemFunc: method is nil but restockRepo.DeleteItem was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockDeleteItem.Lock()
	mock.calls.DeleteItem = append(mock.calls.DeleteItem, callInfo)
	mock.lockDeleteItem.Unlock()
	return mock.DeleteItemFunc(ctx, id)
}

func (mock *restockRepoMock) DeleteItemCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockDeleteItem.RLock()
	calls := mock.calls.DeleteItem
	mock.lockDeleteItem.RUnlock()
	return calls
}

func (mock *restockRepoMock) ListBatches(ctx context.Context, itemID *uuid.UUID) ([]domain.RestockBatch, error) {
	if mock.ListBatchesFunc == nil {
		panic("restockRepoMock.ListBatchesFunc: method is nil but restockRepo.ListBatches was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ItemID *uuid.UUID
	}{
		Ctx:    ctx,
		ItemID: itemID,
	}
	mock.lockListBatches.Lock()
	mock.calls.ListBatches = append(mock.calls.ListBatches, callInfo)
	mock.lockListBatches.Unlock()
	return mock.ListBatchesFunc(ctx, itemID)
}

func (mock *restockRepoMock) ListBatchesCalls() []struct {
	Ctx    context.Context
	ItemID *uuid.UUID
} {
	mock.lockListBatches.RLock()
	calls := mock.calls.ListBatches
	mock.lockListBatches.RUnlock()
	return calls
}

func (mock *restockRepoMock) GetBatch(ctx context.Context, id uuid.UUID) (domain.RestockBatch, error) {
	if mock.GetBatchFunc == nil {
		panic("restockRepoMock.GetBatchFunc: method is nil but restockRepo.GetBatch was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockGetBatch.Lock()
	mock.calls.GetBatch = append(mock.calls.GetBatch, callInfo)
	mock.lockGetBatch.Unlock()
	return mock.GetBatchFunc(ctx, id)
}

func (mock *restockRepoMock) GetBatchCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetBatch.RLock()
	calls := mock.calls.GetBatch
	mock.lockGetBatch.RUnlock()
	return calls
}

func (mock *restockRepoMock) CreateBatch(ctx context.Context, b domain.RestockBatch) (domain.RestockBatch, error) {
	if mock.CreateBatchFunc == nil {
		panic("restockRepoMock.CreateBatchFunc: method is nil but restockRepo.CreateBatch was just called")
	}
	callInfo := struct {
		Ctx context.Context
		B   domain.RestockBatch
	}{
		Ctx: ctx,
		B:   b,
	}
	mock.lockCreateBatch.Lock()
	mock.calls.CreateBatch = append(mock.calls.CreateBatch, callInfo)
	mock.lockCreateBatch.Unlock()
	return mock.CreateBatchFunc(ctx, b)
}

func (mock *restockRepoMock) CreateBatchCalls() []struct {
	Ctx context.Context
	B   domain.RestockBatch
} {
	mock.lockCreateBatch.RLock()
	calls := mock.calls.CreateBatch
	mock.lockCreateBatch.RUnlock()
	return calls
}

func (mock *restockRepoMock) UpdateBatch(ctx context.Context, b domain.RestockBatch) (domain.RestockBatch, error) {
	if mock.UpdateBatchFunc == nil {
		panic("restockRepoMock.UpdateBatchFunc: method is nil but restockRepo.UpdateBatch was just called")
	}
	callInfo := struct {
		Ctx context.Context
		B   domain.RestockBatch
	}{
		Ctx: ctx,
		B:   b,
	}
	mock.lockUpdateBatch.Lock()
	mock.calls.UpdateBatch = append(mock.calls.UpdateBatch, callInfo)
	mock.lockUpdateBatch.Unlock()
	return mock.UpdateBatchFunc(ctx, b)
}

func (mock *restockRepoMock) UpdateBatchCalls() []struct {
	Ctx context.Context
	B   domain.RestockBatch
} {
	mock.lockUpdateBatch.RLock()
	calls := mock.calls.UpdateBatch
	mock.lockUpdateBatch.RUnlock()
	return calls
}

func (mock *restockRepoMock) DeleteBatch(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteBatchFunc == nil {
		panic("restockRepoMock.DeleteBatchFunc: method is nil but restockRepo.DeleteBatch was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockDeleteBatch.Lock()
	mock.calls.DeleteBatch = append(mock.calls.DeleteBatch, callInfo)
	mock.lockDeleteBatch.Unlock()
	return mock.DeleteBatchFunc(ctx, id)
}

func (mock *restockRepoMock) DeleteBatchCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockDeleteBatch.RLock()
	calls := mock.calls.DeleteBatch
	mock.lockDeleteBatch.RUnlock()
	return calls
}

func (mock *restockRepoMock) ListOptions(ctx context.Context, nodeID uuid.UUID) ([]domain.RestockOption, error) {
	if mock.ListOptionsFunc == nil {
		panic("restockRepoMock.ListOptionsFunc: method is nil but restockRepo.ListOptions was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		NodeID uuid.UUID
	}{
		Ctx:    ctx,
		NodeID: nodeID,
	}
	mock.lockListOptions.Lock()
	mock.calls.ListOptions = append(mock.calls.ListOptions, callInfo)
	mock.lockListOptions.Unlock()
	return mock.ListOptionsFunc(ctx, nodeID)
}

func (mock *restockRepoMock) ListOptionsCalls() []struct {
	Ctx    context.Context
	NodeID uuid.UUID
} {
	mock.lockListOptions.RLock()
	calls := mock.calls.ListOptions
	mock.lockListOptions.RUnlock()
	return calls
}
