package services

import (
	"errors"
	"fmt"

	"residence-backend/models"
	"residence-backend/utils"

	"gorm.io/gorm"
)

type FinanceService struct {
	DB *gorm.DB
}

func NewFinanceService(db *gorm.DB) *FinanceService {
	return &FinanceService{DB: db}
}

type OperationFilters struct {
	HouseID string
	Type    string
	Origine string
	Month   int
	Year    int
}

type OperationInput struct {
	Date          string
	HouseID       string
	Type          string
	Motif         string
	Montant       float64
	Origine       string
	PieceJointe   string
	Editable      *bool
	ReservationID *string
	CheckinID     *string
	MaintenanceID *string
}

type OperationUpdate struct {
	Date        *string
	HouseID     *string
	Type        *string
	Motif       *string
	Montant     *float64
	Origine     *string
	PieceJointe *string
	Editable    *bool
}

type FinancialSummary struct {
	TotalEntrees   float64 `json:"totalEntrees"`
	TotalSorties   float64 `json:"totalSorties"`
	Balance        float64 `json:"balance"`
	OperationCount int     `json:"operationCount"`
	Period         *string `json:"period"`
}

type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// periodScope narrows a query to the calendar period described by year and
// optional month. Month/year filters are compiled to [start, end) ranges so
// they behave identically on MySQL and SQLite.
func periodScope(q *gorm.DB, year, month int) *gorm.DB {
	if year == 0 {
		return q
	}
	start, end := utils.PeriodRange(year, month)
	return q.Where("date >= ? AND date < ?", start, end)
}

func (s *FinanceService) List(filters OperationFilters) ([]models.FinancialOperation, error) {
	q := s.DB.Order("date DESC")
	if filters.HouseID != "" {
		q = q.Where("house_id = ?", filters.HouseID)
	}
	if filters.Type != "" {
		q = q.Where("type = ?", filters.Type)
	}
	if filters.Origine != "" {
		q = q.Where("origine = ?", filters.Origine)
	}
	if filters.Year != 0 {
		q = periodScope(q, filters.Year, filters.Month)
	}

	var operations []models.FinancialOperation
	if err := q.Find(&operations).Error; err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	return operations, nil
}

func (s *FinanceService) Get(id string) (*models.FinancialOperation, error) {
	var op models.FinancialOperation
	if err := s.DB.First(&op, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load operation: %w", err)
	}
	return &op, nil
}

func (s *FinanceService) Create(input OperationInput) (*models.FinancialOperation, error) {
	date, err := utils.ParseDate(input.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	origine := input.Origine
	if origine == "" {
		origine = models.OriginManual
	}
	editable := true
	if input.Editable != nil {
		editable = *input.Editable
	}

	op := models.FinancialOperation{
		Date:          date,
		HouseID:       input.HouseID,
		Type:          input.Type,
		Motif:         input.Motif,
		Montant:       input.Montant,
		Origine:       origine,
		PieceJointe:   input.PieceJointe,
		Editable:      editable,
		ReservationID: input.ReservationID,
		CheckinID:     input.CheckinID,
		MaintenanceID: input.MaintenanceID,
	}

	if err := s.DB.Create(&op).Error; err != nil {
		return nil, fmt.Errorf("failed to create operation: %w", err)
	}
	return &op, nil
}

// Update rejects non-editable (system-derived) rows and otherwise applies the
// provided fields.
func (s *FinanceService) Update(id string, input OperationUpdate) (*models.FinancialOperation, error) {
	op, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !op.Editable {
		return nil, ErrNotEditable
	}

	if input.Date != nil {
		date, err := utils.ParseDate(*input.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		op.Date = date
	}
	if input.HouseID != nil {
		op.HouseID = *input.HouseID
	}
	if input.Type != nil {
		op.Type = *input.Type
	}
	if input.Motif != nil {
		op.Motif = *input.Motif
	}
	if input.Montant != nil {
		op.Montant = *input.Montant
	}
	if input.Origine != nil {
		op.Origine = *input.Origine
	}
	if input.PieceJointe != nil {
		op.PieceJointe = *input.PieceJointe
	}
	if input.Editable != nil {
		op.Editable = *input.Editable
	}

	if err := s.DB.Save(op).Error; err != nil {
		return nil, fmt.Errorf("failed to update operation: %w", err)
	}
	return op, nil
}

// Delete rejects non-editable rows; system-derived rows only disappear when
// their origin record is deleted.
func (s *FinanceService) Delete(id string) error {
	op, err := s.Get(id)
	if err != nil {
		return err
	}
	if !op.Editable {
		return ErrNotEditable
	}
	return s.DB.Delete(op).Error
}

// Summary totals entrees and sorties for one house, optionally narrowed to a
// calendar year/month.
func (s *FinanceService) Summary(houseID string, year, month int) (FinancialSummary, error) {
	q := s.DB.Where("house_id = ?", houseID)
	q = periodScope(q, year, month)

	var operations []models.FinancialOperation
	if err := q.Find(&operations).Error; err != nil {
		return FinancialSummary{}, fmt.Errorf("failed to load summary: %w", err)
	}

	summary := FinancialSummary{OperationCount: len(operations)}
	for _, op := range operations {
		switch op.Type {
		case models.OperationTypeEntree:
			summary.TotalEntrees += op.Montant
		case models.OperationTypeSortie:
			summary.TotalSorties += op.Montant
		}
	}
	summary.Balance = summary.TotalEntrees - summary.TotalSorties

	if year != 0 && month != 0 {
		period := fmt.Sprintf("%d-%02d", year, month)
		summary.Period = &period
	} else if year != 0 {
		period := fmt.Sprintf("%d", year)
		summary.Period = &period
	}
	return summary, nil
}

// MonthlyRevenue returns 12 buckets for the year, one per month, missing
// months reported as 0.
func (s *FinanceService) MonthlyRevenue(year int, houseID string) ([]MonthlyRevenue, error) {
	q := s.DB.Where("type = ?", models.OperationTypeEntree)
	q = periodScope(q, year, 0)
	if houseID != "" {
		q = q.Where("house_id = ?", houseID)
	}

	var operations []models.FinancialOperation
	if err := q.Find(&operations).Error; err != nil {
		return nil, fmt.Errorf("failed to load monthly revenue: %w", err)
	}

	totals := make(map[int]float64, 12)
	for _, op := range operations {
		totals[int(op.Date.UTC().Month())] += op.Montant
	}

	result := make([]MonthlyRevenue, 0, 12)
	for month := 1; month <= 12; month++ {
		result = append(result, MonthlyRevenue{
			Month:   fmt.Sprintf("%02d", month),
			Revenue: totals[month],
		})
	}
	return result, nil
}
