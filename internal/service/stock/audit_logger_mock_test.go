package stock

import (
	"context"
	"sync"
	"github.com/google/uuid"
	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

var _ auditLogger = &auditLoggerMock{}

type auditLoggerMock struct {
	LogFunc         func(ctx context.Context, record domain.AuditRecord) error
	GetByEntityFunc func(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error)

	calls struct {
		Log []struct {
			Ctx    context.Context
			Record domain.AuditRecord
		}
		GetByEntity []struct {
			Ctx        context.Context
			EntityType domain.EntityType
			EntityID   uuid.UUID
			Limit      int
		}
	}
	lockLog         sync.RWMutex
	lockGetByEntity sync.RWMutex
}

func (mock *auditLoggerMock) Log(ctx context.Context, record domain.AuditRecord) error {
	if mock.LogFunc == nil {
		panic("auditLoggerMock.LogFunc: method is nil but auditLogger.Log was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Record domain.AuditRecord
	}{
		Ctx:    ctx,
		Record: record,
	}
	mock.lockLog.Lock()
	mock.calls.Log = append(mock.calls.Log, callInfo)
	mock.lockLog.Unlock()
	return mock.LogFunc(ctx, record)
}

func (mock *auditLoggerMock) LogCalls() []struct {
	Ctx    context.Context
	Record domain.AuditRecord
} {
	mock.lockLog.RLock()
	calls := mock.calls.Log
	mock.lockLog.RUnlock()
	return calls
}

func (mock *auditLoggerMock) GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	if mock.GetByEntityFunc == nil {
		panic("auditLoggerMock.GetByEntityFunc: method is nil but auditLogger.GetByEntity was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		EntityType domain.EntityType
		EntityID   uuid.UUID
		Limit      int
	}{
		Ctx:        ctx,
		EntityType: entityType,
		EntityID:   entityID,
		Limit:      limit,
	}
	mock.lockGetByEntity.Lock()
	mock.calls.GetByEntity = append(mock.calls.GetByEntity, callInfo)
	mock.lockGetByEntity.Unlock()
	return mock.GetByEntityFunc(ctx, entityType, entityID, limit)
}

func (mock *auditLoggerMock) GetByEntityCalls() []struct {
	Ctx        context.Context
	EntityType domain.EntityType
	EntityID   uuid.UUID
	Limit      int
} {
	mock.lockGetByEntity.RLock()
	calls := mock.calls.GetByEntity
	mock.lockGetByEntity.RUnlock()
	return calls
}
