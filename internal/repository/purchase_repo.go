package repository

import (
	"errors"

	"go-taller-records/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrRecordNotFound is returned when the requested record does not exist.
var ErrRecordNotFound = errors.New("record not found")

// PurchaseRepository is the single path to the purchase store. No caching,
// no retries: every call is one round trip that fully succeeds or fully fails.
type PurchaseRepository interface {
	Create(record *model.PurchaseRecord) error
	// FindAll returns every record ordered by date descending. When
	// voucherType is non-nil it applies a single equality filter.
	FindAll(voucherType *model.VoucherType) ([]model.PurchaseRecord, error)
	FindByID(id uuid.UUID) (*model.PurchaseRecord, error)
	Update(record *model.PurchaseRecord) error
	Delete(id uuid.UUID) error
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

func (r *purchaseRepo) Create(record *model.PurchaseRecord) error {
	return r.db.Create(record).Error
}

func (r *purchaseRepo) FindAll(voucherType *model.VoucherType) ([]model.PurchaseRecord, error) {
	var records []model.PurchaseRecord
	query := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Order("date DESC")
	if voucherType != nil {
		query = query.Where("voucher_type = ?", *voucherType)
	}
	err := query.Find(&records).Error
	return records, err
}

func (r *purchaseRepo) FindByID(id uuid.UUID) (*model.PurchaseRecord, error) {
	var record model.PurchaseRecord
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Update replaces the header and the full item set. Items have no identity
// outside their parent, so the old rows are dropped and rewritten.
func (r *purchaseRepo) Update(record *model.PurchaseRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_record_id = ?", record.ID).Delete(&model.LineItem{}).Error; err != nil {
			return err
		}
		for i := range record.Items {
			record.Items[i].ID = uuid.Nil
			record.Items[i].PurchaseRecordID = record.ID
			record.Items[i].SortOrder = i
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(record).Error
	})
}

func (r *purchaseRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_record_id = ?", id).Delete(&model.LineItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.PurchaseRecord{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRecordNotFound
		}
		return nil
	})
}
