package service

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"go-taller-records/internal/model"
	"go-taller-records/internal/repository"
	"go-taller-records/pkg/validator"

	"github.com/google/uuid"
)

// EditorState tracks the purchase editor lifecycle.
type EditorState string

const (
	EditorLoading EditorState = "LOADING"
	EditorReady   EditorState = "READY"
	EditorSaving  EditorState = "SAVING"
	EditorSaved   EditorState = "SAVED"
)

type EditorMode string

const (
	ModeCreate EditorMode = "CREATE"
	ModeUpdate EditorMode = "UPDATE"
)

var (
	ErrProviderRequired      = errors.New("provider is required")
	ErrVoucherTypeRequired   = errors.New("voucher type is required")
	ErrVoucherNumberRequired = errors.New("voucher number is required")
	ErrAtLeastOneItem        = errors.New("at least one item required")
	ErrSaveInProgress        = errors.New("a save is in progress")
	ErrItemNotFound          = errors.New("item not found")
	ErrUnknownField          = errors.New("unknown field")
)

// PurchaseEditor holds a purchase header and its ordered items in memory.
// Nothing touches the store until Save; derived values (item amounts, the
// header total) are recomputed explicitly after each mutation.
type PurchaseEditor struct {
	repo   repository.PurchaseRepository
	mode   EditorMode
	state  EditorState
	record model.PurchaseRecord
}

// NewPurchaseEditor starts a create-mode editor with one zeroed line item.
func NewPurchaseEditor(repo repository.PurchaseRepository) *PurchaseEditor {
	e := &PurchaseEditor{repo: repo, mode: ModeCreate, state: EditorReady}
	e.record.Items = []model.LineItem{newLineItem()}
	return e
}

// OpenPurchaseEditor starts an update-mode editor on an existing record.
// A missing record surfaces repository.ErrRecordNotFound so the caller can
// redirect to the list.
func OpenPurchaseEditor(repo repository.PurchaseRepository, id uuid.UUID) (*PurchaseEditor, error) {
	e := &PurchaseEditor{repo: repo, mode: ModeUpdate, state: EditorLoading}
	record, err := repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	e.record = *record
	if len(e.record.Items) == 0 {
		e.record.Items = []model.LineItem{newLineItem()}
	}
	e.state = EditorReady
	return e, nil
}

func newLineItem() model.LineItem {
	item := model.LineItem{}
	item.ID = uuid.New()
	return item
}

func (e *PurchaseEditor) State() EditorState { return e.state }

func (e *PurchaseEditor) Mode() EditorMode { return e.mode }

// Record returns a snapshot of the in-memory record.
func (e *PurchaseEditor) Record() model.PurchaseRecord {
	snapshot := e.record
	snapshot.Items = append([]model.LineItem(nil), e.record.Items...)
	return snapshot
}

// Items returns a snapshot of the current line items.
func (e *PurchaseEditor) Items() []model.LineItem {
	return append([]model.LineItem(nil), e.record.Items...)
}

// SetField updates one header field. No validation happens until Save.
func (e *PurchaseEditor) SetField(name string, value string) error {
	if e.state == EditorSaving {
		return ErrSaveInProgress
	}
	switch name {
	case "date":
		e.record.Date = value
	case "provider":
		e.record.Provider = value
	case "voucher_type":
		e.record.VoucherType = model.VoucherType(value)
	case "voucher_number":
		e.record.VoucherNumber = value
	default:
		return ErrUnknownField
	}
	return nil
}

// AddItem appends a zeroed line item and returns its id.
func (e *PurchaseEditor) AddItem() (uuid.UUID, error) {
	if e.state == EditorSaving {
		return uuid.Nil, ErrSaveInProgress
	}
	item := newLineItem()
	e.record.Items = append(e.record.Items, item)
	return item.ID, nil
}

// RemoveItem drops a line item. The last remaining item cannot be removed.
func (e *PurchaseEditor) RemoveItem(itemID uuid.UUID) error {
	if e.state == EditorSaving {
		return ErrSaveInProgress
	}
	if len(e.record.Items) <= 1 {
		return ErrAtLeastOneItem
	}
	for i, item := range e.record.Items {
		if item.ID == itemID {
			e.record.Items = append(e.record.Items[:i], e.record.Items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

// EditItem updates one field of one line item. Editing quantity or unit
// price recomputes that item's amount immediately, two-decimal rounded.
func (e *PurchaseEditor) EditItem(itemID uuid.UUID, field string, value interface{}) error {
	if e.state == EditorSaving {
		return ErrSaveInProgress
	}
	for i := range e.record.Items {
		item := &e.record.Items[i]
		if item.ID != itemID {
			continue
		}
		switch field {
		case "quantity":
			item.Quantity = toFloat(value)
			item.Amount = round2(item.Quantity * item.UnitPrice)
		case "unit_price":
			item.UnitPrice = toFloat(value)
			item.Amount = round2(item.Quantity * item.UnitPrice)
		case "description":
			item.Description = toString(value)
		case "tech_report_num":
			item.TechReportNum = toString(value)
		case "boleta_fisica":
			item.BoletaFisica = toString(value)
		case "factura_elect":
			item.FacturaElect = toString(value)
		case "boleta_elect":
			item.BoletaElect = toString(value)
		case "observation":
			item.Observation = toString(value)
		default:
			return ErrUnknownField
		}
		return nil
	}
	return ErrItemNotFound
}

// Save validates the required header fields, recomputes the total and
// persists through the gateway. Validation failures abort before any
// gateway call. On a storage failure the editor returns to READY so the
// user can retry by repeating the action.
func (e *PurchaseEditor) Save() error {
	if e.state == EditorSaving {
		return ErrSaveInProgress
	}
	e.record.Provider = strings.TrimSpace(e.record.Provider)
	e.record.VoucherNumber = strings.TrimSpace(e.record.VoucherNumber)
	if err := e.validate(); err != nil {
		return err
	}

	e.state = EditorSaving
	var total float64
	for i := range e.record.Items {
		item := &e.record.Items[i]
		item.Amount = round2(item.Quantity * item.UnitPrice)
		item.SortOrder = i
		total += item.Amount
	}
	e.record.Total = round2(total)

	var err error
	if e.mode == ModeCreate {
		err = e.repo.Create(&e.record)
	} else {
		err = e.repo.Update(&e.record)
	}
	if err != nil {
		e.state = EditorReady
		return err
	}
	if e.mode == ModeCreate {
		e.state = EditorSaved
	} else {
		e.state = EditorReady
	}
	return nil
}

func (e *PurchaseEditor) validate() error {
	for _, fieldErr := range validator.ValidateStruct(&e.record) {
		switch {
		case strings.Contains(fieldErr.FailedField, "Provider"):
			return ErrProviderRequired
		case strings.Contains(fieldErr.FailedField, "VoucherType"):
			return ErrVoucherTypeRequired
		case strings.Contains(fieldErr.FailedField, "VoucherNumber"):
			return ErrVoucherNumberRequired
		}
	}
	if len(e.record.Items) == 0 {
		return ErrAtLeastOneItem
	}
	return nil
}

// PurchaseDraft is the submitted form payload the HTTP surface replays
// onto an editor.
type PurchaseDraft struct {
	Date          string          `json:"date"`
	Provider      string          `json:"provider"`
	VoucherType   string          `json:"voucher_type"`
	VoucherNumber string          `json:"voucher_number"`
	Items         []LineItemDraft `json:"items"`
}

type LineItemDraft struct {
	Quantity      float64 `json:"quantity"`
	Description   string  `json:"description"`
	UnitPrice     float64 `json:"unit_price"`
	TechReportNum string  `json:"tech_report_num"`
	BoletaFisica  string  `json:"boleta_fisica"`
	FacturaElect  string  `json:"factura_elect"`
	BoletaElect   string  `json:"boleta_elect"`
	Observation   string  `json:"observation"`
}

// ApplyDraft replays a submitted form through the regular field and item
// operations, so derived amounts and the item-count rule hold the same way
// they do for interactive edits.
func (e *PurchaseEditor) ApplyDraft(draft PurchaseDraft) error {
	headers := map[string]string{
		"date":           draft.Date,
		"provider":       draft.Provider,
		"voucher_type":   draft.VoucherType,
		"voucher_number": draft.VoucherNumber,
	}
	for name, value := range headers {
		if err := e.SetField(name, value); err != nil {
			return err
		}
	}
	// Shrink back to a single item, then rebuild in draft order.
	for len(e.record.Items) > 1 {
		last := e.record.Items[len(e.record.Items)-1]
		if err := e.RemoveItem(last.ID); err != nil {
			return err
		}
	}
	for i, item := range draft.Items {
		id := e.record.Items[0].ID
		if i > 0 {
			var err error
			id, err = e.AddItem()
			if err != nil {
				return err
			}
		}
		edits := []struct {
			field string
			value interface{}
		}{
			{"quantity", item.Quantity},
			{"unit_price", item.UnitPrice},
			{"description", item.Description},
			{"tech_report_num", item.TechReportNum},
			{"boleta_fisica", item.BoletaFisica},
			{"factura_elect", item.FacturaElect},
			{"boleta_elect", item.BoletaElect},
			{"observation", item.Observation},
		}
		for _, edit := range edits {
			if err := e.EditItem(id, edit.field, edit.value); err != nil {
				return err
			}
		}
	}
	return nil
}

// round2 is the single rounding primitive for money.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// toFloat coerces a loosely typed value to a number; non-numeric is 0.
func toFloat(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func toString(value interface{}) string {
	s, _ := value.(string)
	return s
}
