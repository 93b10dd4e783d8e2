package repository

import (
	"errors"

	"go-taller-records/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceRecordRepository interface {
	Create(record *model.ServiceRecord) error
	FindAll(area *model.ServiceArea) ([]model.ServiceRecord, error)
	FindByID(id uuid.UUID) (*model.ServiceRecord, error)
	Update(record *model.ServiceRecord) error
	Delete(id uuid.UUID) error
}

type serviceRecordRepo struct {
	db *gorm.DB
}

func NewServiceRecordRepo(db *gorm.DB) ServiceRecordRepository {
	return &serviceRecordRepo{db}
}

func (r *serviceRecordRepo) Create(record *model.ServiceRecord) error {
	return r.db.Create(record).Error
}

func (r *serviceRecordRepo) FindAll(area *model.ServiceArea) ([]model.ServiceRecord, error) {
	var records []model.ServiceRecord
	query := r.db.Order("created_at DESC")
	if area != nil {
		query = query.Where("area = ?", *area)
	}
	err := query.Find(&records).Error
	return records, err
}

func (r *serviceRecordRepo) FindByID(id uuid.UUID) (*model.ServiceRecord, error) {
	var record model.ServiceRecord
	err := r.db.First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *serviceRecordRepo) Update(record *model.ServiceRecord) error {
	return r.db.Save(record).Error
}

func (r *serviceRecordRepo) Delete(id uuid.UUID) error {
	result := r.db.Delete(&model.ServiceRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
