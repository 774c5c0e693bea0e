package services

import (
	"testing"

	"residence-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestFinanceService_CRUD(t *testing.T) {
	db := newTestDB(t)
	createTestHouse(t, db, "maison-1", "Maison 1")
	svc := NewFinanceService(db)

	t.Run("manual rows default to editable and manuel origin", func(t *testing.T) {
		op, err := svc.Create(OperationInput{
			Date:    "2026-03-15",
			HouseID: "maison-1",
			Type:    models.OperationTypeSortie,
			Motif:   "Achat produits ménagers",
			Montant: 45.5,
		})
		require.NoError(t, err)
		assert.True(t, op.Editable)
		assert.Equal(t, models.OriginManual, op.Origine)

		updated, err := svc.Update(op.ID, OperationUpdate{Montant: floatPtr(50)})
		require.NoError(t, err)
		assert.Equal(t, 50.0, updated.Montant)

		require.NoError(t, svc.Delete(op.ID))
		_, err = svc.Get(op.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		_, err := svc.Create(OperationInput{Date: "yesterday", HouseID: "maison-1", Type: models.OperationTypeEntree})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestFinanceService_NonEditableRows(t *testing.T) {
	db := newTestDB(t)
	createTestHouse(t, db, "maison-1", "Maison 1")
	svc := NewFinanceService(db)

	op, err := svc.Create(OperationInput{
		Date:     "2026-03-15",
		HouseID:  "maison-1",
		Type:     models.OperationTypeEntree,
		Motif:    "Avance réservation - Alice Martin",
		Montant:  150,
		Origine:  models.OriginReservation,
		Editable: boolPtr(false),
	})
	require.NoError(t, err)

	t.Run("editable false survives the round trip", func(t *testing.T) {
		var stored models.FinancialOperation
		require.NoError(t, db.First(&stored, "id = ?", op.ID).Error)
		assert.False(t, stored.Editable)
	})

	t.Run("update is rejected", func(t *testing.T) {
		_, err := svc.Update(op.ID, OperationUpdate{Montant: floatPtr(999)})
		assert.ErrorIs(t, err, ErrNotEditable)

		unchanged, err := svc.Get(op.ID)
		require.NoError(t, err)
		assert.Equal(t, 150.0, unchanged.Montant)
	})

	t.Run("delete is rejected", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(op.ID), ErrNotEditable)
		_, err := svc.Get(op.ID)
		require.NoError(t, err)
	})
}

func TestFinanceService_List(t *testing.T) {
	db := newTestDB(t)
	createTestHouse(t, db, "maison-1", "Maison 1")
	createTestHouse(t, db, "maison-2", "Maison 2")
	svc := NewFinanceService(db)

	seed := []OperationInput{
		{Date: "2026-01-10", HouseID: "maison-1", Type: models.OperationTypeEntree, Montant: 100},
		{Date: "2026-02-20", HouseID: "maison-1", Type: models.OperationTypeSortie, Montant: 30},
		{Date: "2026-02-25", HouseID: "maison-2", Type: models.OperationTypeEntree, Montant: 200},
		{Date: "2025-12-31", HouseID: "maison-1", Type: models.OperationTypeEntree, Montant: 70},
	}
	for _, input := range seed {
		_, err := svc.Create(input)
		require.NoError(t, err)
	}

	t.Run("by house", func(t *testing.T) {
		ops, err := svc.List(OperationFilters{HouseID: "maison-1"})
		require.NoError(t, err)
		assert.Len(t, ops, 3)
	})

	t.Run("by type", func(t *testing.T) {
		ops, err := svc.List(OperationFilters{Type: models.OperationTypeSortie})
		require.NoError(t, err)
		assert.Len(t, ops, 1)
	})

	t.Run("by year and month", func(t *testing.T) {
		ops, err := svc.List(OperationFilters{Year: 2026, Month: 2})
		require.NoError(t, err)
		assert.Len(t, ops, 2)
	})

	t.Run("month without year is ignored", func(t *testing.T) {
		ops, err := svc.List(OperationFilters{Month: 2})
		require.NoError(t, err)
		assert.Len(t, ops, 4)
	})

	t.Run("newest first", func(t *testing.T) {
		ops, err := svc.List(OperationFilters{})
		require.NoError(t, err)
		require.Len(t, ops, 4)
		assert.Equal(t, 200.0, ops[0].Montant)
	})
}

func TestFinanceService_Summary(t *testing.T) {
	db := newTestDB(t)
	createTestHouse(t, db, "maison-1", "Maison 1")
	svc := NewFinanceService(db)

	seed := []OperationInput{
		{Date: "2026-02-05", HouseID: "maison-1", Type: models.OperationTypeEntree, Montant: 300},
		{Date: "2026-02-18", HouseID: "maison-1", Type: models.OperationTypeSortie, Montant: 80},
		{Date: "2026-03-01", HouseID: "maison-1", Type: models.OperationTypeEntree, Montant: 50},
	}
	for _, input := range seed {
		_, err := svc.Create(input)
		require.NoError(t, err)
	}

	t.Run("one month", func(t *testing.T) {
		summary, err := svc.Summary("maison-1", 2026, 2)
		require.NoError(t, err)
		assert.Equal(t, 300.0, summary.TotalEntrees)
		assert.Equal(t, 80.0, summary.TotalSorties)
		assert.Equal(t, 220.0, summary.Balance)
		assert.Equal(t, 2, summary.OperationCount)
		require.NotNil(t, summary.Period)
		assert.Equal(t, "2026-02", *summary.Period)
	})

	t.Run("whole year", func(t *testing.T) {
		summary, err := svc.Summary("maison-1", 2026, 0)
		require.NoError(t, err)
		assert.Equal(t, 350.0, summary.TotalEntrees)
		require.NotNil(t, summary.Period)
		assert.Equal(t, "2026", *summary.Period)
	})

	t.Run("no period", func(t *testing.T) {
		summary, err := svc.Summary("maison-1", 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 3, summary.OperationCount)
		assert.Nil(t, summary.Period)
	})
}

func TestFinanceService_MonthlyRevenue(t *testing.T) {
	db := newTestDB(t)
	createTestHouse(t, db, "maison-1", "Maison 1")
	svc := NewFinanceService(db)

	seed := []OperationInput{
		{Date: "2026-01-10", HouseID: "maison-1", Type: models.OperationTypeEntree, Montant: 100},
		{Date: "2026-01-20", HouseID: "maison-1", Type: models.OperationTypeEntree, Montant: 50},
		{Date: "2026-07-04", HouseID: "maison-1", Type: models.OperationTypeEntree, Montant: 500},
		{Date: "2026-07-05", HouseID: "maison-1", Type: models.OperationTypeSortie, Montant: 999},
		{Date: "2025-07-05", HouseID: "maison-1", Type: models.OperationTypeEntree, Montant: 42},
	}
	for _, input := range seed {
		_, err := svc.Create(input)
		require.NoError(t, err)
	}

	revenue, err := svc.MonthlyRevenue(2026, "")
	require.NoError(t, err)
	require.Len(t, revenue, 12)

	assert.Equal(t, "01", revenue[0].Month)
	assert.Equal(t, 150.0, revenue[0].Revenue)
	assert.Equal(t, "07", revenue[6].Month)
	assert.Equal(t, 500.0, revenue[6].Revenue)
	for _, bucket := range []int{1, 2, 3, 4, 7, 8, 9, 10, 11} {
		assert.Zero(t, revenue[bucket].Revenue, "month %s", revenue[bucket].Month)
	}
}
