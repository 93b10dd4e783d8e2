package repository

import (
	"testing"

	"go-taller-records/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestServiceRecordRepoRoundTrip(t *testing.T) {
	repo := NewServiceRecordRepo(newTestDB(t))

	record := &model.ServiceRecord{
		Area:       model.AreaHardware,
		Client:     "Juan Pérez",
		Equipment:  "Laptop HP 14",
		Technician: "C. Ramos",
		Fields: datatypes.JSONMap{
			"enciende":  true,
			"reparable": "SI",
		},
	}
	require.NoError(t, repo.Create(record))

	found, err := repo.FindByID(record.ID)
	require.NoError(t, err)
	require.Equal(t, model.AreaHardware, found.Area)
	require.Equal(t, true, found.Fields["enciende"])
	require.Equal(t, "SI", found.Fields["reparable"])
}

func TestServiceRecordRepoFindAllAreaFilter(t *testing.T) {
	repo := NewServiceRecordRepo(newTestDB(t))
	require.NoError(t, repo.Create(&model.ServiceRecord{Area: model.AreaHardware}))
	require.NoError(t, repo.Create(&model.ServiceRecord{Area: model.AreaSoftware}))

	area := model.AreaSoftware
	records, err := repo.FindAll(&area)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, model.AreaSoftware, records[0].Area)

	all, err := repo.FindAll(nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestServiceRecordRepoDelete(t *testing.T) {
	repo := NewServiceRecordRepo(newTestDB(t))
	record := &model.ServiceRecord{Area: model.AreaTesting}
	require.NoError(t, repo.Create(record))

	require.NoError(t, repo.Delete(record.ID))
	_, err := repo.FindByID(record.ID)
	require.ErrorIs(t, err, ErrRecordNotFound)

	require.ErrorIs(t, repo.Delete(uuid.New()), ErrRecordNotFound)
}
