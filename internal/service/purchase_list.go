package service

import (
	"strings"

	"go-taller-records/internal/model"
	"go-taller-records/internal/repository"

	"github.com/google/uuid"
)

// Filters are the client-side predicates applied over a loaded collection.
// Dates are inclusive ISO YYYY-MM-DD bounds compared lexicographically;
// empty means unset. Search is a case-insensitive substring match.
type Filters struct {
	VoucherType *model.VoucherType
	DateStart   string
	DateEnd     string
	Search      string
}

// PurchaseListService holds the loaded purchase collection for the list
// view. Filtering never touches the loaded slice; deletes mutate it only
// after the gateway confirms.
type PurchaseListService struct {
	repo    repository.PurchaseRepository
	records []model.PurchaseRecord
}

func NewPurchaseListService(repo repository.PurchaseRepository) *PurchaseListService {
	return &PurchaseListService{repo: repo}
}

// Load replaces the in-memory collection from the gateway, optionally
// pre-filtered by voucher type.
func (s *PurchaseListService) Load(voucherType *model.VoucherType) error {
	records, err := s.repo.FindAll(voucherType)
	if err != nil {
		return err
	}
	s.records = records
	return nil
}

// Records returns the loaded collection.
func (s *PurchaseListService) Records() []model.PurchaseRecord {
	return s.records
}

// Filtered applies the client-side predicates over the loaded collection.
func (s *PurchaseListService) Filtered(f Filters) []model.PurchaseRecord {
	return ApplyFilters(s.records, f)
}

// Delete removes the record through the gateway and, only on success,
// drops it from the in-memory collection.
func (s *PurchaseListService) Delete(id uuid.UUID) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	for i, record := range s.records {
		if record.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			break
		}
	}
	return nil
}

// ApplyFilters is pure: it never mutates or reorders its input. A record
// passes when it is inside the date bounds and, if a search term is set,
// when any header or item field matches.
func ApplyFilters(records []model.PurchaseRecord, f Filters) []model.PurchaseRecord {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	filtered := make([]model.PurchaseRecord, 0, len(records))
	for _, record := range records {
		if f.DateStart != "" && record.Date < f.DateStart {
			continue
		}
		if f.DateEnd != "" && record.Date > f.DateEnd {
			continue
		}
		if term != "" && !matchesSearch(record, term) {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered
}

// matchesSearch scans provider and voucher number, then each item's
// description and technical report number. Any single hit matches.
func matchesSearch(record model.PurchaseRecord, term string) bool {
	if strings.Contains(strings.ToLower(record.Provider), term) {
		return true
	}
	if strings.Contains(strings.ToLower(record.VoucherNumber), term) {
		return true
	}
	for _, item := range record.Items {
		if strings.Contains(strings.ToLower(item.Description), term) {
			return true
		}
		if strings.Contains(strings.ToLower(item.TechReportNum), term) {
			return true
		}
	}
	return false
}

// AggregateTotal sums the stored totals of the visible subset.
func AggregateTotal(records []model.PurchaseRecord) float64 {
	var total float64
	for _, record := range records {
		total += toFloat(record.Total)
	}
	return round2(total)
}
