package services

import (
	"fmt"
	"time"

	"residence-backend/models"
	"residence-backend/utils"

	"gorm.io/gorm"
)

// DashboardService is the read side: every method scans and aggregates, none
// mutates.
type DashboardService struct {
	DB *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db}
}

type DashboardMetrics struct {
	CheckinToday      int64 `json:"checkinToday"`
	CheckoutToday     int64 `json:"checkoutToday"`
	MaintenancesTodo  int64 `json:"maintenancesTodo"`
	HousesReady       int64 `json:"housesReady"`
	PaymentsCompleted int64 `json:"paymentsCompleted"`
	PaymentsOpen      int64 `json:"paymentsOpen"`
	AdvancePayments   int64 `json:"advancePayments"`
}

type OccupancyData struct {
	Occupied int64 `json:"occupied"`
	Free     int64 `json:"free"`
}

type RevenuePoint struct {
	Jour    string  `json:"jour"`
	Revenus float64 `json:"revenus"`
}

type DashboardResponse struct {
	Metrics   DashboardMetrics `json:"metrics"`
	Occupancy OccupancyData    `json:"occupancy"`
	Revenue   []RevenuePoint   `json:"revenue"`
}

type HouseStats struct {
	HouseID             string  `json:"houseId"`
	Name                string  `json:"name"`
	TotalRevenue        float64 `json:"totalRevenue"`
	OccupancyRate       float64 `json:"occupancyRate"`
	MaintenanceIssues   int64   `json:"maintenanceIssues"`
	AverageStayDuration float64 `json:"averageStayDuration"`
	LastCheckout        *string `json:"lastCheckout"`
}

type PeriodStats struct {
	Period           string  `json:"period"`
	TotalRevenue     float64 `json:"totalRevenue"`
	TotalExpenses    float64 `json:"totalExpenses"`
	NetProfit        float64 `json:"netProfit"`
	OccupancyRate    float64 `json:"occupancyRate"`
	GuestCount       int64   `json:"guestCount"`
	AverageStayValue float64 `json:"averageStayValue"`
}

func dayRange(d time.Time) (time.Time, time.Time) {
	start := utils.TruncateToDay(d)
	return start, start.AddDate(0, 0, 1)
}

// Metrics computes the dashboard counters for one date.
func (s *DashboardService) Metrics(date time.Time) (DashboardMetrics, error) {
	var m DashboardMetrics
	dayStart, dayEnd := dayRange(date)

	if err := s.DB.Model(&models.CheckIn{}).
		Where("arrival_date >= ? AND arrival_date < ?", dayStart, dayEnd).
		Count(&m.CheckinToday).Error; err != nil {
		return m, err
	}
	if err := s.DB.Model(&models.CheckIn{}).
		Where("departure_date >= ? AND departure_date < ?", dayStart, dayEnd).
		Count(&m.CheckoutToday).Error; err != nil {
		return m, err
	}
	if err := s.DB.Model(&models.MaintenanceIssue{}).
		Where("status = ?", models.MaintenanceStatusUnresolved).
		Count(&m.MaintenancesTodo).Error; err != nil {
		return m, err
	}

	housesReady, err := s.countReadyHouses()
	if err != nil {
		return m, err
	}
	m.HousesReady = housesReady

	if err := s.DB.Model(&models.CheckIn{}).Count(&m.PaymentsCompleted).Error; err != nil {
		return m, err
	}
	var totalReservations int64
	if err := s.DB.Model(&models.Reservation{}).Count(&totalReservations).Error; err != nil {
		return m, err
	}
	if open := totalReservations - m.PaymentsCompleted; open > 0 {
		m.PaymentsOpen = open
	}
	if err := s.DB.Model(&models.Reservation{}).
		Where("advance_paid > 0").
		Count(&m.AdvancePayments).Error; err != nil {
		return m, err
	}
	return m, nil
}

// countReadyHouses counts houses whose ready-category count equals the total
// category count. With zero categories every house trivially matches; earlier
// versions reported 0 in that case, the equality rule is intentional.
func (s *DashboardService) countReadyHouses() (int64, error) {
	var totalCategories int64
	if err := s.DB.Model(&models.ChecklistCategory{}).Count(&totalCategories).Error; err != nil {
		return 0, err
	}

	var houses []models.House
	if err := s.DB.Find(&houses).Error; err != nil {
		return 0, err
	}

	var ready int64
	for _, house := range houses {
		var readyCategories int64
		if err := s.DB.Model(&models.HouseCategoryStatus{}).
			Where("house_id = ? AND is_ready = ?", house.ID, true).
			Count(&readyCategories).Error; err != nil {
			return 0, err
		}
		if readyCategories == totalCategories {
			ready++
		}
	}
	return ready, nil
}

// Occupancy counts check-ins spanning the date: arrival <= d < departure, so
// the checkout day itself is free.
func (s *DashboardService) Occupancy(date time.Time) (OccupancyData, error) {
	var data OccupancyData
	day := utils.TruncateToDay(date)

	var totalHouses int64
	if err := s.DB.Model(&models.House{}).Count(&totalHouses).Error; err != nil {
		return data, err
	}
	if err := s.DB.Model(&models.CheckIn{}).
		Where("arrival_date <= ? AND departure_date > ?", day, day).
		Count(&data.Occupied).Error; err != nil {
		return data, err
	}
	if free := totalHouses - data.Occupied; free > 0 {
		data.Free = free
	}
	return data, nil
}

// RevenueSeries sums entree operations per day over the inclusive range and
// dense-fills: every calendar day appears, missing days report 0.
func (s *DashboardService) RevenueSeries(start, end time.Time) ([]RevenuePoint, error) {
	start = utils.TruncateToDay(start)
	end = utils.TruncateToDay(end)

	var operations []models.FinancialOperation
	if err := s.DB.
		Where("type = ?", models.OperationTypeEntree).
		Where("date >= ? AND date < ?", start, end.AddDate(0, 0, 1)).
		Find(&operations).Error; err != nil {
		return nil, fmt.Errorf("failed to load revenue series: %w", err)
	}

	totals := make(map[string]float64)
	for _, op := range operations {
		totals[utils.FormatDate(op.Date.UTC())] += op.Montant
	}

	var series []RevenuePoint
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := utils.FormatDate(day)
		series = append(series, RevenuePoint{Jour: key, Revenus: totals[key]})
	}
	return series, nil
}

// Dashboard bundles metrics, occupancy and the trailing 15-day revenue series
// into one payload.
func (s *DashboardService) Dashboard(date time.Time) (DashboardResponse, error) {
	metrics, err := s.Metrics(date)
	if err != nil {
		return DashboardResponse{}, err
	}
	occupancy, err := s.Occupancy(date)
	if err != nil {
		return DashboardResponse{}, err
	}
	end := utils.Today()
	revenue, err := s.RevenueSeries(end.AddDate(0, 0, -14), end)
	if err != nil {
		return DashboardResponse{}, err
	}
	return DashboardResponse{Metrics: metrics, Occupancy: occupancy, Revenue: revenue}, nil
}

// HouseStatsAll computes per-house lifetime stats.
func (s *DashboardService) HouseStatsAll() ([]HouseStats, error) {
	var houses []models.House
	if err := s.DB.Find(&houses).Error; err != nil {
		return nil, fmt.Errorf("failed to list houses: %w", err)
	}

	stats := make([]HouseStats, 0, len(houses))
	for _, house := range houses {
		hs := HouseStats{HouseID: house.ID, Name: house.Name}

		var revenue *float64
		if err := s.DB.Model(&models.FinancialOperation{}).
			Where("house_id = ? AND type = ?", house.ID, models.OperationTypeEntree).
			Select("SUM(montant)").
			Scan(&revenue).Error; err != nil {
			return nil, err
		}
		if revenue != nil {
			hs.TotalRevenue = *revenue
		}

		if err := s.DB.Model(&models.MaintenanceIssue{}).
			Where("house_id = ? AND status = ?", house.ID, models.MaintenanceStatusUnresolved).
			Count(&hs.MaintenanceIssues).Error; err != nil {
			return nil, err
		}

		// Trailing 30-day occupancy: one check-in counts one occupied day.
		var recentArrivals int64
		if err := s.DB.Model(&models.CheckIn{}).
			Where("house_id = ? AND arrival_date >= ?", house.ID, utils.Today().AddDate(0, 0, -30)).
			Count(&recentArrivals).Error; err != nil {
			return nil, err
		}
		hs.OccupancyRate = float64(recentArrivals) / 30 * 100
		if hs.OccupancyRate > 100 {
			hs.OccupancyRate = 100
		}

		var checkins []models.CheckIn
		if err := s.DB.Where("house_id = ?", house.ID).Find(&checkins).Error; err != nil {
			return nil, err
		}
		if len(checkins) > 0 {
			totalDays := 0.0
			var latestDeparture time.Time
			for _, c := range checkins {
				totalDays += c.DepartureDate.Sub(c.ArrivalDate).Hours() / 24
				if c.DepartureDate.After(latestDeparture) {
					latestDeparture = c.DepartureDate
				}
			}
			hs.AverageStayDuration = totalDays / float64(len(checkins))
			last := utils.FormatDate(latestDeparture.UTC())
			hs.LastCheckout = &last
		}

		stats = append(stats, hs)
	}
	return stats, nil
}

// PeriodStatsFor aggregates ledger totals and stay-day occupancy for a
// calendar year or one month of it.
func (s *DashboardService) PeriodStatsFor(year, month int) (PeriodStats, error) {
	start, end := utils.PeriodRange(year, month)

	stats := PeriodStats{Period: fmt.Sprintf("%d", year)}
	if month != 0 {
		stats.Period = fmt.Sprintf("%d-%02d", year, month)
	}

	var operations []models.FinancialOperation
	if err := s.DB.
		Where("date >= ? AND date < ?", start, end).
		Find(&operations).Error; err != nil {
		return stats, fmt.Errorf("failed to load period operations: %w", err)
	}
	for _, op := range operations {
		switch op.Type {
		case models.OperationTypeEntree:
			stats.TotalRevenue += op.Montant
		case models.OperationTypeSortie:
			stats.TotalExpenses += op.Montant
		}
	}
	stats.NetProfit = stats.TotalRevenue - stats.TotalExpenses

	if err := s.DB.Model(&models.CheckIn{}).
		Where("arrival_date >= ? AND arrival_date < ?", start, end).
		Count(&stats.GuestCount).Error; err != nil {
		return stats, err
	}
	if stats.GuestCount > 0 {
		stats.AverageStayValue = stats.TotalRevenue / float64(stats.GuestCount)
	}

	var totalHouses int64
	if err := s.DB.Model(&models.House{}).Count(&totalHouses).Error; err != nil {
		return stats, err
	}

	// Occupied days are the per-stay overlaps with the period, clipped to its
	// bounds.
	var stays []models.CheckIn
	if err := s.DB.
		Where("arrival_date < ? AND departure_date > ?", end, start).
		Find(&stays).Error; err != nil {
		return stats, err
	}
	occupiedDays := 0.0
	for _, stay := range stays {
		from := stay.ArrivalDate
		if from.Before(start) {
			from = start
		}
		to := stay.DepartureDate
		if to.After(end) {
			to = end
		}
		if days := to.Sub(from).Hours() / 24; days > 0 {
			occupiedDays += days
		}
	}
	maxDays := float64(totalHouses) * float64(utils.DaysIn(year, month))
	if maxDays > 0 {
		stats.OccupancyRate = occupiedDays / maxDays * 100
		if stats.OccupancyRate > 100 {
			stats.OccupancyRate = 100
		}
	}
	return stats, nil
}
