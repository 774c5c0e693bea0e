package services

import (
	"testing"
	"time"

	"residence-backend/models"
	"residence-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) (d time.Time) {
	t.Helper()
	d, err := utils.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestDashboardService_Metrics(t *testing.T) {
	db := newTestDB(t)
	createTestHouse(t, db, "maison-1", "Maison 1")
	createTestHouse(t, db, "maison-2", "Maison 2")
	checkins := NewCheckinService(db)
	maintenance := NewMaintenanceService(db)
	svc := NewDashboardService(db)

	_, err := checkins.Create(CheckinInput{
		HouseID: "maison-1", GuestName: "A",
		ArrivalDate: "2026-06-01", DepartureDate: "2026-06-04",
	})
	require.NoError(t, err)
	_, err = checkins.Create(CheckinInput{
		HouseID: "maison-2", GuestName: "B",
		ArrivalDate: "2026-05-30", DepartureDate: "2026-06-01",
	})
	require.NoError(t, err)
	_, err = maintenance.Create(MaintenanceInput{
		HouseID: "maison-1", IssueType: "plomberie", ReportedAt: "2026-05-20",
	})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Reservation{
		ID: "r1", HouseID: "maison-1", GuestName: "C",
		CheckinDate:  mustDate(t, "2026-07-01"),
		CheckoutDate: mustDate(t, "2026-07-05"),
		AdvancePaid:  100,
	}).Error)
	require.NoError(t, db.Create(&models.Reservation{
		ID: "r2", HouseID: "maison-1", GuestName: "D",
		CheckinDate:  mustDate(t, "2026-07-10"),
		CheckoutDate: mustDate(t, "2026-07-12"),
	}).Error)
	require.NoError(t, db.Create(&models.Reservation{
		ID: "r3", HouseID: "maison-2", GuestName: "E",
		CheckinDate:  mustDate(t, "2026-07-20"),
		CheckoutDate: mustDate(t, "2026-07-22"),
	}).Error)

	m, err := svc.Metrics(mustDate(t, "2026-06-01"))
	require.NoError(t, err)

	assert.EqualValues(t, 1, m.CheckinToday)
	assert.EqualValues(t, 1, m.CheckoutToday)
	assert.EqualValues(t, 1, m.MaintenancesTodo)
	// No categories exist, so every house trivially counts as ready.
	assert.EqualValues(t, 2, m.HousesReady)
	assert.EqualValues(t, 2, m.PaymentsCompleted)
	assert.EqualValues(t, 1, m.PaymentsOpen)
	assert.EqualValues(t, 1, m.AdvancePayments)
}

func TestDashboardService_ReadyHouses(t *testing.T) {
	db := newTestDB(t)
	createTestHouse(t, db, "maison-1", "Maison 1")
	createTestHouse(t, db, "maison-2", "Maison 2")
	checklist := NewChecklistService(db)
	svc := NewDashboardService(db)

	require.NoError(t, db.Create(&models.ChecklistCategory{Name: "Cuisine"}).Error)
	require.NoError(t, db.Create(&models.ChecklistCategory{Name: "Chambres"}).Error)

	var categories []models.ChecklistCategory
	require.NoError(t, db.Order("id ASC").Find(&categories).Error)

	ready, err := svc.countReadyHouses()
	require.NoError(t, err)
	assert.Zero(t, ready)

	_, err = checklist.CompleteCategory("maison-1", categories[0].ID, true)
	require.NoError(t, err)
	ready, err = svc.countReadyHouses()
	require.NoError(t, err)
	assert.Zero(t, ready)

	_, err = checklist.CompleteCategory("maison-1", categories[1].ID, true)
	require.NoError(t, err)
	ready, err = svc.countReadyHouses()
	require.NoError(t, err)
	assert.EqualValues(t, 1, ready)
}

func TestDashboardService_Occupancy(t *testing.T) {
	db := newTestDB(t)
	createTestHouse(t, db, "maison-1", "Maison 1")
	createTestHouse(t, db, "maison-2", "Maison 2")
	createTestHouse(t, db, "maison-3", "Maison 3")
	checkins := NewCheckinService(db)
	svc := NewDashboardService(db)

	_, err := checkins.Create(CheckinInput{
		HouseID: "maison-1", GuestName: "A",
		ArrivalDate: "2026-06-01", DepartureDate: "2026-06-04",
	})
	require.NoError(t, err)

	t.Run("arrival day is occupied", func(t *testing.T) {
		data, err := svc.Occupancy(mustDate(t, "2026-06-01"))
		require.NoError(t, err)
		assert.EqualValues(t, 1, data.Occupied)
		assert.EqualValues(t, 2, data.Free)
	})

	t.Run("mid stay is occupied", func(t *testing.T) {
		data, err := svc.Occupancy(mustDate(t, "2026-06-03"))
		require.NoError(t, err)
		assert.EqualValues(t, 1, data.Occupied)
	})

	t.Run("departure day is free", func(t *testing.T) {
		data, err := svc.Occupancy(mustDate(t, "2026-06-04"))
		require.NoError(t, err)
		assert.Zero(t, data.Occupied)
		assert.EqualValues(t, 3, data.Free)
	})
}

func TestDashboardService_RevenueSeries(t *testing.T) {
	db := newTestDB(t)
	createTestHouse(t, db, "maison-1", "Maison 1")
	finance := NewFinanceService(db)
	svc := NewDashboardService(db)

	seed := []OperationInput{
		{Date: "2026-06-01", HouseID: "maison-1", Type: models.OperationTypeEntree, Montant: 100},
		{Date: "2026-06-01", HouseID: "maison-1", Type: models.OperationTypeEntree, Montant: 50},
		{Date: "2026-06-03", HouseID: "maison-1", Type: models.OperationTypeEntree, Montant: 200},
		{Date: "2026-06-03", HouseID: "maison-1", Type: models.OperationTypeSortie, Montant: 999},
		{Date: "2026-06-10", HouseID: "maison-1", Type: models.OperationTypeEntree, Montant: 1},
	}
	for _, input := range seed {
		_, err := finance.Create(input)
		require.NoError(t, err)
	}

	series, err := svc.RevenueSeries(mustDate(t, "2026-06-01"), mustDate(t, "2026-06-05"))
	require.NoError(t, err)
	require.Len(t, series, 5)

	assert.Equal(t, RevenuePoint{Jour: "2026-06-01", Revenus: 150}, series[0])
	assert.Equal(t, RevenuePoint{Jour: "2026-06-02", Revenus: 0}, series[1])
	assert.Equal(t, RevenuePoint{Jour: "2026-06-03", Revenus: 200}, series[2])
	assert.Equal(t, RevenuePoint{Jour: "2026-06-04", Revenus: 0}, series[3])
	assert.Equal(t, RevenuePoint{Jour: "2026-06-05", Revenus: 0}, series[4])
}

func TestDashboardService_HouseStats(t *testing.T) {
	db := newTestDB(t)
	createTestHouse(t, db, "maison-1", "Maison 1")
	createTestHouse(t, db, "maison-2", "Maison 2")
	checkins := NewCheckinService(db)
	finance := NewFinanceService(db)
	maintenance := NewMaintenanceService(db)
	svc := NewDashboardService(db)

	_, err := checkins.Create(CheckinInput{
		HouseID: "maison-1", GuestName: "A",
		ArrivalDate: "2026-06-01", DepartureDate: "2026-06-03",
	})
	require.NoError(t, err)
	_, err = checkins.Create(CheckinInput{
		HouseID: "maison-1", GuestName: "B",
		ArrivalDate: "2026-06-10", DepartureDate: "2026-06-14",
	})
	require.NoError(t, err)
	_, err = finance.Create(OperationInput{
		Date: "2026-06-01", HouseID: "maison-1", Type: models.OperationTypeEntree, Montant: 500,
	})
	require.NoError(t, err)
	_, err = maintenance.Create(MaintenanceInput{
		HouseID: "maison-1", IssueType: "plomberie", ReportedAt: "2026-06-02",
	})
	require.NoError(t, err)

	stats, err := svc.HouseStatsAll()
	require.NoError(t, err)
	require.Len(t, stats, 2)

	first := stats[0]
	assert.Equal(t, "maison-1", first.HouseID)
	assert.Equal(t, "Maison 1", first.Name)
	assert.Equal(t, 500.0, first.TotalRevenue)
	assert.EqualValues(t, 1, first.MaintenanceIssues)
	assert.InDelta(t, 3.0, first.AverageStayDuration, 0.01)
	require.NotNil(t, first.LastCheckout)
	assert.Equal(t, "2026-06-14", *first.LastCheckout)

	second := stats[1]
	assert.Equal(t, "maison-2", second.HouseID)
	assert.Zero(t, second.TotalRevenue)
	assert.Nil(t, second.LastCheckout)
}

func TestDashboardService_PeriodStats(t *testing.T) {
	db := newTestDB(t)
	createTestHouse(t, db, "maison-1", "Maison 1")
	createTestHouse(t, db, "maison-2", "Maison 2")
	checkins := NewCheckinService(db)
	finance := NewFinanceService(db)
	svc := NewDashboardService(db)

	_, err := finance.Create(OperationInput{
		Date: "2026-06-05", HouseID: "maison-1", Type: models.OperationTypeEntree, Montant: 600,
	})
	require.NoError(t, err)
	_, err = finance.Create(OperationInput{
		Date: "2026-06-20", HouseID: "maison-1", Type: models.OperationTypeSortie, Montant: 100,
	})
	require.NoError(t, err)
	_, err = finance.Create(OperationInput{
		Date: "2026-07-01", HouseID: "maison-1", Type: models.OperationTypeEntree, Montant: 999,
	})
	require.NoError(t, err)

	// Six occupied days in June, plus a stay straddling the month end that
	// contributes its clipped overlap.
	_, err = checkins.Create(CheckinInput{
		HouseID: "maison-1", GuestName: "A",
		ArrivalDate: "2026-06-01", DepartureDate: "2026-06-07",
	})
	require.NoError(t, err)
	_, err = checkins.Create(CheckinInput{
		HouseID: "maison-2", GuestName: "B",
		ArrivalDate: "2026-06-28", DepartureDate: "2026-07-03",
	})
	require.NoError(t, err)

	t.Run("one month", func(t *testing.T) {
		stats, err := svc.PeriodStatsFor(2026, 6)
		require.NoError(t, err)

		assert.Equal(t, "2026-06", stats.Period)
		assert.Equal(t, 600.0, stats.TotalRevenue)
		assert.Equal(t, 100.0, stats.TotalExpenses)
		assert.Equal(t, 500.0, stats.NetProfit)
		assert.EqualValues(t, 2, stats.GuestCount)
		assert.Equal(t, 300.0, stats.AverageStayValue)
		// 6 + 3 occupied days over 2 houses * 30 days.
		assert.InDelta(t, 9.0/60.0*100, stats.OccupancyRate, 0.01)
	})

	t.Run("whole year", func(t *testing.T) {
		stats, err := svc.PeriodStatsFor(2026, 0)
		require.NoError(t, err)
		assert.Equal(t, "2026", stats.Period)
		assert.Equal(t, 1599.0, stats.TotalRevenue)
	})
}
