package service

import (
	"errors"
	"sort"

	"go-taller-records/internal/model"
	"go-taller-records/internal/repository"

	"github.com/google/uuid"
)

var errStoreDown = errors.New("store unavailable")

// memoryPurchaseRepo is an in-memory gateway standing in for the store.
// It counts calls so tests can assert that validation failures never
// reach the gateway, and failNext injects one storage failure.
type memoryPurchaseRepo struct {
	records map[uuid.UUID]model.PurchaseRecord

	createCalls int
	updateCalls int
	deleteCalls int

	failNext error
}

func newMemoryPurchaseRepo() *memoryPurchaseRepo {
	return &memoryPurchaseRepo{records: make(map[uuid.UUID]model.PurchaseRecord)}
}

func (r *memoryPurchaseRepo) takeFailure() error {
	err := r.failNext
	r.failNext = nil
	return err
}

func cloneRecord(record model.PurchaseRecord) model.PurchaseRecord {
	clone := record
	clone.Items = append([]model.LineItem(nil), record.Items...)
	return clone
}

func (r *memoryPurchaseRepo) Create(record *model.PurchaseRecord) error {
	r.createCalls++
	if err := r.takeFailure(); err != nil {
		return err
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	for i := range record.Items {
		if record.Items[i].ID == uuid.Nil {
			record.Items[i].ID = uuid.New()
		}
		record.Items[i].PurchaseRecordID = record.ID
	}
	r.records[record.ID] = cloneRecord(*record)
	return nil
}

func (r *memoryPurchaseRepo) FindAll(voucherType *model.VoucherType) ([]model.PurchaseRecord, error) {
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	records := make([]model.PurchaseRecord, 0, len(r.records))
	for _, record := range r.records {
		if voucherType != nil && record.VoucherType != *voucherType {
			continue
		}
		records = append(records, cloneRecord(record))
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date > records[j].Date
		}
		return records[i].ID.String() < records[j].ID.String()
	})
	return records, nil
}

func (r *memoryPurchaseRepo) FindByID(id uuid.UUID) (*model.PurchaseRecord, error) {
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	record, ok := r.records[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	clone := cloneRecord(record)
	return &clone, nil
}

func (r *memoryPurchaseRepo) Update(record *model.PurchaseRecord) error {
	r.updateCalls++
	if err := r.takeFailure(); err != nil {
		return err
	}
	if _, ok := r.records[record.ID]; !ok {
		return repository.ErrRecordNotFound
	}
	r.records[record.ID] = cloneRecord(*record)
	return nil
}

func (r *memoryPurchaseRepo) Delete(id uuid.UUID) error {
	r.deleteCalls++
	if err := r.takeFailure(); err != nil {
		return err
	}
	if _, ok := r.records[id]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(r.records, id)
	return nil
}
