package services

import (
	"errors"
	"fmt"
	"time"

	"residence-backend/models"
	"residence-backend/utils"

	"gorm.io/gorm"
)

type ChecklistService struct {
	DB *gorm.DB
}

func NewChecklistService(db *gorm.DB) *ChecklistService {
	return &ChecklistService{DB: db}
}

type ChecklistItemInput struct {
	HouseID         string
	StepNumber      int
	CategoryName    string
	Description     string
	ProductRequired string
	Type            string
}

type ChecklistItemUpdate struct {
	StepNumber      *int
	CategoryName    *string
	Description     *string
	ProductRequired *string
	Type            *string
}

type CategoryProgress struct {
	Maison             string  `json:"maison"`
	Categorie          string  `json:"categorie"`
	CompletedTasks     int64   `json:"completedTasks"`
	TotalTasks         int64   `json:"totalTasks"`
	ProgressPercentage float64 `json:"progressPercentage"`
	IsReady            bool    `json:"isReady"`
}

type HouseReadiness struct {
	Maison              string  `json:"maison"`
	IsReady             bool    `json:"isReady"`
	CompletedCategories int64   `json:"completedCategories"`
	TotalCategories     int64   `json:"totalCategories"`
	CompletedTasks      int64   `json:"completedTasks"`
	TotalTasks          int64   `json:"totalTasks"`
	LastUpdated         *string `json:"lastUpdated"`
}

func (s *ChecklistService) Categories() ([]models.ChecklistCategory, error) {
	var categories []models.ChecklistCategory
	if err := s.DB.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list checklist categories: %w", err)
	}
	return categories, nil
}

// Items lists a house's checklist items, optionally filtered by category name.
func (s *ChecklistService) Items(houseID, categoryName string) ([]models.ChecklistItem, error) {
	q := s.DB.Preload("Category").Where("house_id = ?", houseID)
	if categoryName != "" {
		q = q.Joins("JOIN checklist_categories ON checklist_categories.id = checklist_items.category_id").
			Where("checklist_categories.name = ?", categoryName)
	}
	var items []models.ChecklistItem
	if err := q.Order("step_number ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list checklist items: %w", err)
	}
	return items, nil
}

func (s *ChecklistService) GetItem(id string) (*models.ChecklistItem, error) {
	var item models.ChecklistItem
	if err := s.DB.Preload("Category").First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("checklist item %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load checklist item: %w", err)
	}
	return &item, nil
}

// findOrCreateCategory resolves a category by name, creating it on first use.
func (s *ChecklistService) findOrCreateCategory(tx *gorm.DB, name string) (*models.ChecklistCategory, error) {
	var category models.ChecklistCategory
	err := tx.First(&category, "name = ?", name).Error
	if err == nil {
		return &category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	category = models.ChecklistCategory{Name: name}
	if err := tx.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to create checklist category: %w", err)
	}
	return &category, nil
}

func (s *ChecklistService) CreateItem(input ChecklistItemInput) (*models.ChecklistItem, error) {
	if input.CategoryName == "" {
		return nil, validationErrorf("category name is required")
	}
	if input.Description == "" {
		return nil, validationErrorf("description is required")
	}

	var item models.ChecklistItem
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		category, err := s.findOrCreateCategory(tx, input.CategoryName)
		if err != nil {
			return err
		}
		item = models.ChecklistItem{
			HouseID:         input.HouseID,
			StepNumber:      input.StepNumber,
			CategoryID:      category.ID,
			Description:     input.Description,
			ProductRequired: input.ProductRequired,
			Type:            input.Type,
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checklist item: %w", err)
	}
	return s.GetItem(item.ID)
}

func (s *ChecklistService) UpdateItem(id string, update ChecklistItemUpdate) (*models.ChecklistItem, error) {
	item, err := s.GetItem(id)
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if update.CategoryName != nil {
			category, err := s.findOrCreateCategory(tx, *update.CategoryName)
			if err != nil {
				return err
			}
			item.CategoryID = category.ID
		}
		if update.StepNumber != nil {
			item.StepNumber = *update.StepNumber
		}
		if update.Description != nil {
			item.Description = *update.Description
		}
		if update.ProductRequired != nil {
			item.ProductRequired = *update.ProductRequired
		}
		if update.Type != nil {
			item.Type = *update.Type
		}
		// GetItem preloads Category; saving the stale association would
		// write the old foreign key back, so it is skipped here.
		return tx.Omit("Category").Save(item).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update checklist item: %w", err)
	}
	return s.GetItem(id)
}

// DeleteItem removes an item and any completion rows referencing it.
func (s *ChecklistService) DeleteItem(id string) error {
	item, err := s.GetItem(id)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", item.ID).
			Delete(&models.HouseChecklistStatus{}).Error; err != nil {
			return fmt.Errorf("failed to delete checklist statuses: %w", err)
		}
		if err := tx.Delete(item).Error; err != nil {
			return fmt.Errorf("failed to delete checklist item: %w", err)
		}
		return nil
	})
}

func (s *ChecklistService) HouseStatus(houseID string) ([]models.HouseChecklistStatus, error) {
	var statuses []models.HouseChecklistStatus
	if err := s.DB.Where("house_id = ?", houseID).Find(&statuses).Error; err != nil {
		return nil, fmt.Errorf("failed to list checklist statuses: %w", err)
	}
	return statuses, nil
}

// CompleteTask upserts the completion row for one item in one house, stamping
// the moment and the actor.
func (s *ChecklistService) CompleteTask(houseID, itemID string, completed bool, actor string) (*models.HouseChecklistStatus, error) {
	if _, err := s.GetItem(itemID); err != nil {
		return nil, err
	}

	var status models.HouseChecklistStatus
	err := s.DB.First(&status, "house_id = ? AND item_id = ?", houseID, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		status = models.HouseChecklistStatus{HouseID: houseID, ItemID: itemID}
		err = nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load checklist status: %w", err)
	}

	status.IsCompleted = completed
	status.CompletedAt = nil
	if completed {
		now := time.Now().UTC()
		status.CompletedAt = &now
	}
	status.UpdatedBy = actor
	if err := s.DB.Save(&status).Error; err != nil {
		return nil, fmt.Errorf("failed to save checklist status: %w", err)
	}
	return &status, nil
}

// CompleteCategory sets the manual ready flag for a whole category of a house.
func (s *ChecklistService) CompleteCategory(houseID string, categoryID int, ready bool) (*models.HouseCategoryStatus, error) {
	var category models.ChecklistCategory
	if err := s.DB.First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("checklist category %d: %w", categoryID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load checklist category: %w", err)
	}

	var status models.HouseCategoryStatus
	err := s.DB.First(&status, "house_id = ? AND category_id = ?", houseID, categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		status = models.HouseCategoryStatus{HouseID: houseID, CategoryID: categoryID}
		err = nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load category status: %w", err)
	}

	status.IsReady = ready
	status.ReadyAt = nil
	if ready {
		now := time.Now().UTC()
		status.ReadyAt = &now
	}
	if err := s.DB.Save(&status).Error; err != nil {
		return nil, fmt.Errorf("failed to save category status: %w", err)
	}
	return &status, nil
}

// Readiness reports whether every category of the house is flagged ready. A
// house with no categories at all counts as ready.
func (s *ChecklistService) Readiness(houseID string) (HouseReadiness, error) {
	readiness := HouseReadiness{Maison: houseID}

	if err := s.DB.Model(&models.ChecklistItem{}).
		Where("house_id = ?", houseID).
		Count(&readiness.TotalTasks).Error; err != nil {
		return readiness, err
	}
	if err := s.DB.Model(&models.HouseChecklistStatus{}).
		Where("house_id = ? AND is_completed = ?", houseID, true).
		Count(&readiness.CompletedTasks).Error; err != nil {
		return readiness, err
	}
	if err := s.DB.Model(&models.ChecklistCategory{}).
		Count(&readiness.TotalCategories).Error; err != nil {
		return readiness, err
	}
	if err := s.DB.Model(&models.HouseCategoryStatus{}).
		Where("house_id = ? AND is_ready = ?", houseID, true).
		Count(&readiness.CompletedCategories).Error; err != nil {
		return readiness, err
	}
	readiness.IsReady = readiness.CompletedCategories == readiness.TotalCategories

	var latest models.HouseChecklistStatus
	err := s.DB.
		Where("house_id = ? AND completed_at IS NOT NULL", houseID).
		Order("completed_at DESC").
		First(&latest).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return readiness, err
	}
	if latest.CompletedAt != nil {
		last := latest.CompletedAt.UTC().Format(utils.TimestampLayout)
		readiness.LastUpdated = &last
	}
	return readiness, nil
}

// Progress reports per-category task completion for one house.
func (s *ChecklistService) Progress(houseID string) ([]CategoryProgress, error) {
	categories, err := s.Categories()
	if err != nil {
		return nil, err
	}

	progress := make([]CategoryProgress, 0, len(categories))
	for _, category := range categories {
		cp := CategoryProgress{Maison: houseID, Categorie: category.Name}

		if err := s.DB.Model(&models.ChecklistItem{}).
			Where("house_id = ? AND category_id = ?", houseID, category.ID).
			Count(&cp.TotalTasks).Error; err != nil {
			return nil, err
		}
		if err := s.DB.Model(&models.HouseChecklistStatus{}).
			Joins("JOIN checklist_items ON checklist_items.id = house_checklist_statuses.item_id").
			Where("house_checklist_statuses.house_id = ? AND house_checklist_statuses.is_completed = ?", houseID, true).
			Where("checklist_items.category_id = ?", category.ID).
			Count(&cp.CompletedTasks).Error; err != nil {
			return nil, err
		}
		if cp.TotalTasks > 0 {
			cp.ProgressPercentage = float64(cp.CompletedTasks) / float64(cp.TotalTasks) * 100
		}

		var status models.HouseCategoryStatus
		err := s.DB.First(&status, "house_id = ? AND category_id = ?", houseID, category.ID).Error
		if err == nil {
			cp.IsReady = status.IsReady
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		progress = append(progress, cp)
	}
	return progress, nil
}
