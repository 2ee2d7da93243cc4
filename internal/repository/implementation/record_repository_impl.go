package implementation

import (
	"context"
	"errors"

	"hr-assistant-be/internal/entity"
	"hr-assistant-be/internal/mapper"
	"hr-assistant-be/internal/model"
	"hr-assistant-be/internal/repository/contract"
	"hr-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RecordMapper
}

func NewRecordRepository(db *gorm.DB) contract.RecordRepository {
	return &RecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewRecordMapper(),
	}
}

func (r *RecordRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RecordRepositoryImpl) Create(ctx context.Context, record *entity.EmployeeRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *RecordRepositoryImpl) Update(ctx context.Context, record *entity.EmployeeRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *RecordRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.EmployeeRecord{}, id).Error
}

func (r *RecordRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EmployeeRecord, error) {
	var m model.EmployeeRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RecordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EmployeeRecord, error) {
	var models []*model.EmployeeRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.EmployeeRecord, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *RecordRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.EmployeeRecord{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
