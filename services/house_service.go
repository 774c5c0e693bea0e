package services

import (
	"errors"
	"fmt"

	"residence-backend/models"

	"gorm.io/gorm"
)

// HouseService manages the house catalog. IDs are caller-chosen slugs, not
// generated uuids, so the same identifiers work across environments.
type HouseService struct {
	DB *gorm.DB
}

func NewHouseService(db *gorm.DB) *HouseService {
	return &HouseService{DB: db}
}

func (s *HouseService) List() ([]models.House, error) {
	var houses []models.House
	if err := s.DB.Order("id ASC").Find(&houses).Error; err != nil {
		return nil, fmt.Errorf("failed to list houses: %w", err)
	}
	return houses, nil
}

func (s *HouseService) Get(id string) (*models.House, error) {
	var house models.House
	if err := s.DB.First(&house, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("house %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load house: %w", err)
	}
	return &house, nil
}

func (s *HouseService) Create(id, name string) (*models.House, error) {
	if id == "" {
		return nil, validationErrorf("house id is required")
	}
	if name == "" {
		return nil, validationErrorf("house name is required")
	}
	var existing models.House
	if err := s.DB.First(&existing, "id = ?", id).Error; err == nil {
		return nil, validationErrorf("house %s already exists", id)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check house: %w", err)
	}

	house := models.House{ID: id, Name: name}
	if err := s.DB.Create(&house).Error; err != nil {
		return nil, fmt.Errorf("failed to create house: %w", err)
	}
	return &house, nil
}

func (s *HouseService) Update(id, name string) (*models.House, error) {
	house, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, validationErrorf("house name is required")
	}
	house.Name = name
	if err := s.DB.Save(house).Error; err != nil {
		return nil, fmt.Errorf("failed to update house: %w", err)
	}
	return house, nil
}

func (s *HouseService) Delete(id string) error {
	house, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.DB.Delete(house).Error; err != nil {
		return fmt.Errorf("failed to delete house: %w", err)
	}
	return nil
}
