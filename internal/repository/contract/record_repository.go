package contract

import (
	"context"

	"hr-assistant-be/internal/entity"
	"hr-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RecordRepository interface {
	Create(ctx context.Context, record *entity.EmployeeRecord) error
	Update(ctx context.Context, record *entity.EmployeeRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EmployeeRecord, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EmployeeRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
