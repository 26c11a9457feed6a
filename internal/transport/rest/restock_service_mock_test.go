package rest

import (
	"context"
	"sync"
	"github.com/google/uuid"
	"github.com/heartmarshall/stockcheck-backend/internal/domain"
	"github.com/heartmarshall/stockcheck-backend/internal/service/restock"
)

var _ restockService = &restockServiceMock{}

type restockServiceMock struct {
	ListItemsFunc   func(ctx context.Context) ([]domain.RestockItem, error)
	CreateItemFunc  func(ctx context.Context, input restock.CreateItemInput) (domain.RestockItem, error)
	UpdateItemFunc  func(ctx context.Context, input restock.UpdateItemInput) (domain.RestockItem, error)
	DeleteItemFunc  func(ctx context.Context, id uuid.UUID) error
	ListBatchesFunc func(ctx context.Context, itemID *uuid.UUID) ([]domain.RestockBatch, error)
	CreateBatchFunc func(ctx context.Context, input restock.CreateBatchInput) (domain.RestockBatch, error)
	UpdateBatchFunc func(ctx context.Context, input restock.UpdateBatchInput) (domain.RestockBatch, error)
	DeleteBatchFunc func(ctx context.Context, id uuid.UUID) error
	OptionsFunc     func(ctx context.Context, nodeID uuid.UUID) ([]domain.RestockOption, error)

	calls struct {
		ListItems []struct {
			Ctx context.Context
		}
		CreateItem []struct {
			Ctx   context.Context
			Input restock.CreateItemInput
		}
		UpdateItem []struct {
			Ctx   context.Context
			Input restock.UpdateItemInput
		}
		DeleteItem []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ListBatches []struct {
			Ctx    context.Context
			ItemID *uuid.UUID
		}
		CreateBatch []struct {
			Ctx   context.Context
			Input restock.CreateBatchInput
		}
		UpdateBatch []struct {
			Ctx   context.Context
			Input restock.UpdateBatchInput
		}
		DeleteBatch []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		Options []struct {
			Ctx    context.Context
			NodeID uuid.UUID
		}
	}
	lockListItems   sync.RWMutex
	lockCreateItem  sync.RWMutex
	lockUpdateItem  sync.RWMutex
	lockDeleteItem  sync.RWMutex
	lockListBatches sync.RWMutex
	lockCreateBatch sync.RWMutex
	lockUpdateBatch sync.RWMutex
	lockDeleteBatch sync.RWMutex
	lockOptions     sync.RWMutex
}

func (mock *restockServiceMock) ListItems(ctx context.Context) ([]domain.RestockItem, error) {
	if mock.ListItemsFunc == nil {
		panic("restockServiceMock.ListItemsFunc: method is nil but restockService.ListItems was just called")
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

func (mock *restockServiceMock) ListItemsCalls() []struct {
	Ctx context.Context
} {
	mock.lockListItems.RLock()
	calls := mock.calls.ListItems
	mock.lockListItems.RUnlock()
	return calls
}

func (mock *restockServiceMock) CreateItem(ctx context.Context, input restock.CreateItemInput) (domain.RestockItem, error) {
	if mock.CreateItemFunc == nil {
		panic("restockServiceMock.CreateItemFunc: method is nil but restockService.CreateItem was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input restock.CreateItemInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockCreateItem.Lock()
	mock.calls.CreateItem = append(mock.calls.CreateItem, callInfo)
	mock.lockCreateItem.Unlock()
	return mock.CreateItemFunc(ctx, input)
}

func (mock *restockServiceMock) CreateItemCalls() []struct {
	Ctx   context.Context
	Input restock.CreateItemInput
} {
	mock.lockCreateItem.RLock()
	calls := mock.calls.CreateItem
	mock.lockCreateItem.RUnlock()
	return calls
}

func (mock *restockServiceMock) UpdateItem(ctx context.Context, input restock.UpdateItemInput) (domain.RestockItem, error) {
	if mock.UpdateItemFunc == nil {
		panic("restockServiceMock.UpdateItemFunc: method is nil but restockService.UpdateItem was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input restock.UpdateItemInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockUpdateItem.Lock()
	mock.calls.UpdateItem = append(mock.calls.UpdateItem, callInfo)
	mock.lockUpdateItem.Unlock()
	return mock.UpdateItemFunc(ctx, input)
}

func (mock *restockServiceMock) UpdateItemCalls() []struct {
	Ctx   context.Context
	Input restock.UpdateItemInput
} {
	mock.lockUpdateItem.RLock()
	calls := mock.calls.UpdateItem
	mock.lockUpdateItem.RUnlock()
	return calls
}

func (mock *restockServiceMock) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteItemFunc == nil {
		panic("restockServiceMock.DeleteItemFunc: method is nil but restockService.DeleteItem was just called")
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

func (mock *restockServiceMock) DeleteItemCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockDeleteItem.RLock()
	calls := mock.calls.DeleteItem
	mock.lockDeleteItem.RUnlock()
	return calls
}

func (mock *restockServiceMock) ListBatches(ctx context.Context, itemID *uuid.UUID) ([]domain.RestockBatch, error) {
	if mock.ListBatchesFunc == nil {
		panic("restockServiceMock.ListBatchesFunc: method is nil but restockService.ListBatches was just called")
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

func (mock *restockServiceMock) ListBatchesCalls() []struct {
	Ctx    context.Context
	ItemID *uuid.UUID
} {
	mock.lockListBatches.RLock()
	calls := mock.calls.ListBatches
	mock.lockListBatches.RUnlock()
	return calls
}

func (mock *restockServiceMock) CreateBatch(ctx context.Context, input restock.CreateBatchInput) (domain.RestockBatch, error) {
	if mock.CreateBatchFunc == nil {
		panic("restockServiceMock.CreateBatchFunc: method is nil but restockService.CreateBatch was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input restock.CreateBatchInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockCreateBatch.Lock()
	mock.calls.CreateBatch = append(mock.calls.CreateBatch, callInfo)
	mock.lockCreateBatch.Unlock()
	return mock.CreateBatchFunc(ctx, input)
}

func (mock *restockServiceMock) CreateBatchCalls() []struct {
	Ctx   context.Context
	Input restock.CreateBatchInput
} {
	mock.lockCreateBatch.RLock()
	calls := mock.calls.CreateBatch
	mock.lockCreateBatch.RUnlock()
	return calls
}

func (mock *restockServiceMock) UpdateBatch(ctx context.Context, input restock.UpdateBatchInput) (domain.RestockBatch, error) {
	if mock.UpdateBatchFunc == nil {
		panic("restockServiceMock.UpdateBatchFunc: method is nil but restockService.UpdateBatch was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input restock.UpdateBatchInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockUpdateBatch.Lock()
	mock.calls.UpdateBatch = append(mock.calls.UpdateBatch, callInfo)
	mock.lockUpdateBatch.Unlock()
	return mock.UpdateBatchFunc(ctx, input)
}

func (mock *restockServiceMock) UpdateBatchCalls() []struct {
	Ctx   context.Context
	Input restock.UpdateBatchInput
} {
	mock.lockUpdateBatch.RLock()
	calls := mock.calls.UpdateBatch
	mock.lockUpdateBatch.RUnlock()
	return calls
}

func (mock *restockServiceMock) DeleteBatch(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteBatchFunc == nil {
		panic("restockServiceMock.DeleteBatchFunc: method is nil but restockService.DeleteBatch was just called")
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

func (mock *restockServiceMock) DeleteBatchCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockDeleteBatch.RLock()
	calls := mock.calls.DeleteBatch
	mock.lockDeleteBatch.RUnlock()
	return calls
}

func (mock *restockServiceMock) Options(ctx context.Context, nodeID uuid.UUID) ([]domain.RestockOption, error) {
	if mock.OptionsFunc == nil {
		panic("restockServiceMock.OptionsFunc: method is nil but restockService.Options was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		NodeID uuid.UUID
	}{
		Ctx:    ctx,
		NodeID: nodeID,
	}
	mock.lockOptions.Lock()
	mock.calls.Options = append(mock.calls.Options, callInfo)
	mock.lockOptions.Unlock()
	return mock.OptionsFunc(ctx, nodeID)
}

func (mock *restockServiceMock) OptionsCalls() []struct {
	Ctx    context.Context
	NodeID uuid.UUID
} {
	mock.lockOptions.RLock()
	calls := mock.calls.Options
	mock.lockOptions.RUnlock()
	return calls
}
