package model

import "gorm.io/datatypes"

// ServiceArea tags which workshop area produced a service record.
type ServiceArea string

const (
	AreaHardware    ServiceArea = "hardware"
	AreaSoftware    ServiceArea = "software"
	AreaElectronics ServiceArea = "electronics"
	AreaTesting     ServiceArea = "testing"
)

// ServiceRecord is one per-area service history entry. The per-area form
// fields live in the schemaless Fields bag; each area has its own layout,
// resolved by the render package.
type ServiceRecord struct {
	BaseModel
	Area       ServiceArea `gorm:"type:varchar(20);not null;index" json:"area" validate:"required,oneof=hardware software electronics testing"`
	Client     string      `gorm:"type:varchar(255)" json:"client"`
	Equipment  string      `gorm:"type:varchar(255)" json:"equipment"`
	Technician string      `gorm:"type:varchar(255)" json:"technician"`

	Fields datatypes.JSONMap `json:"fields"`
}
