package services

import (
	"errors"
	"fmt"

	"residence-backend/models"
	"residence-backend/utils"

	"gorm.io/gorm"
)

type MaintenanceService struct {
	DB *gorm.DB
}

func NewMaintenanceService(db *gorm.DB) *MaintenanceService {
	return &MaintenanceService{DB: db}
}

type MaintenanceInput struct {
	HouseID         string
	IssueType       string
	ReportedAt      string
	AssignedTo      string
	Comment         string
	Status          string
	PhotoIssueURL   string
	PhotoInvoiceURL string
	LaborCost       *float64
}

type MaintenanceUpdate struct {
	HouseID         *string
	IssueType       *string
	ReportedAt      *string
	AssignedTo      *string
	Comment         *string
	Status          *string
	PhotoIssueURL   *string
	PhotoInvoiceURL *string
	LaborCost       *float64
}

type MaintenanceFilters struct {
	HouseID    string
	Status     string
	AssignedTo string
}

type MaintenanceStats struct {
	Total      int64   `json:"total"`
	Resolue    int64   `json:"resolue"`
	NonResolue int64   `json:"non_resolue"`
	TotalCost  float64 `json:"total_cost"`
}

func (s *MaintenanceService) Types() ([]models.MaintenanceType, error) {
	var types []models.MaintenanceType
	if err := s.DB.Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to list maintenance types: %w", err)
	}
	return types, nil
}

func (s *MaintenanceService) List(filters MaintenanceFilters) ([]models.MaintenanceIssue, error) {
	q := s.DB.Order("reported_at DESC")
	if filters.HouseID != "" {
		q = q.Where("house_id = ?", filters.HouseID)
	}
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}
	if filters.AssignedTo != "" {
		q = q.Where("assigned_to LIKE ?", "%"+filters.AssignedTo+"%")
	}

	var issues []models.MaintenanceIssue
	if err := q.Find(&issues).Error; err != nil {
		return nil, fmt.Errorf("failed to list maintenance issues: %w", err)
	}
	return issues, nil
}

func (s *MaintenanceService) Get(id string) (*models.MaintenanceIssue, error) {
	var issue models.MaintenanceIssue
	if err := s.DB.First(&issue, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load maintenance issue: %w", err)
	}
	return &issue, nil
}

func (s *MaintenanceService) Create(input MaintenanceInput) (*models.MaintenanceIssue, error) {
	reported, err := utils.ParseDate(input.ReportedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	status := input.Status
	if status == "" {
		status = models.MaintenanceStatusUnresolved
	}

	issue := models.MaintenanceIssue{
		HouseID:         input.HouseID,
		IssueType:       input.IssueType,
		ReportedAt:      reported,
		AssignedTo:      input.AssignedTo,
		Comment:         input.Comment,
		Status:          status,
		PhotoIssueURL:   input.PhotoIssueURL,
		PhotoInvoiceURL: input.PhotoInvoiceURL,
		LaborCost:       input.LaborCost,
	}

	if err := s.DB.Create(&issue).Error; err != nil {
		return nil, fmt.Errorf("failed to create maintenance issue: %w", err)
	}
	return &issue, nil
}

// Update applies the provided fields. When the status crosses the
// non-resolue -> resolue edge with a positive labor cost, the derived sortie
// ledger row is inserted in the same transaction. Re-resolving an already
// resolved issue never duplicates the row.
func (s *MaintenanceService) Update(id string, input MaintenanceUpdate) (*models.MaintenanceIssue, error) {
	var issue models.MaintenanceIssue

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&issue, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		wasResolved := issue.Resolved()

		if input.HouseID != nil {
			issue.HouseID = *input.HouseID
		}
		if input.IssueType != nil {
			issue.IssueType = *input.IssueType
		}
		if input.ReportedAt != nil {
			reported, err := utils.ParseDate(*input.ReportedAt)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrValidation, err)
			}
			issue.ReportedAt = reported
		}
		if input.AssignedTo != nil {
			issue.AssignedTo = *input.AssignedTo
		}
		if input.Comment != nil {
			issue.Comment = *input.Comment
		}
		if input.Status != nil {
			issue.Status = *input.Status
		}
		if input.PhotoIssueURL != nil {
			issue.PhotoIssueURL = *input.PhotoIssueURL
		}
		if input.PhotoInvoiceURL != nil {
			issue.PhotoInvoiceURL = *input.PhotoInvoiceURL
		}
		if input.LaborCost != nil {
			issue.LaborCost = input.LaborCost
		}

		if err := tx.Save(&issue).Error; err != nil {
			return fmt.Errorf("failed to update maintenance issue: %w", err)
		}

		if issue.Resolved() && !wasResolved && issue.LaborCost != nil && *issue.LaborCost > 0 {
			return createMaintenanceOperation(tx, &issue)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// Delete removes linked ledger rows first, then the issue.
func (s *MaintenanceService) Delete(id string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var issue models.MaintenanceIssue
		if err := tx.First(&issue, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := deleteLinkedOperations(tx, "maintenance_id", id); err != nil {
			return err
		}
		return tx.Delete(&issue).Error
	})
}

// Stats summarizes issue counts and the resolved labor cost, optionally for
// one house.
func (s *MaintenanceService) Stats(houseID string) (MaintenanceStats, error) {
	q := s.DB
	if houseID != "" {
		q = q.Where("house_id = ?", houseID)
	}

	var issues []models.MaintenanceIssue
	if err := q.Find(&issues).Error; err != nil {
		return MaintenanceStats{}, fmt.Errorf("failed to load maintenance stats: %w", err)
	}

	stats := MaintenanceStats{Total: int64(len(issues))}
	for _, issue := range issues {
		if issue.Resolved() {
			stats.Resolue++
			if issue.LaborCost != nil {
				stats.TotalCost += *issue.LaborCost
			}
		}
	}
	stats.NonResolue = stats.Total - stats.Resolue
	return stats, nil
}
