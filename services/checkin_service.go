package services

import (
	"errors"
	"fmt"

	"residence-backend/models"
	"residence-backend/utils"

	"gorm.io/gorm"
)

type CheckinService struct {
	DB *gorm.DB
}

func NewCheckinService(db *gorm.DB) *CheckinService {
	return &CheckinService{DB: db}
}

type CheckinInput struct {
	ReservationID  string
	HouseID        string
	GuestName      string
	Phone          string
	Email          string
	ArrivalDate    string
	DepartureDate  string
	AdvancePaid    float64
	CheckinPayment float64
	TotalAmount    float64
	Inventory      models.Inventaire
	Manager        string
	Remarks        string
}

type CheckinUpdate struct {
	GuestName      *string
	Phone          *string
	Email          *string
	ArrivalDate    *string
	DepartureDate  *string
	AdvancePaid    *float64
	CheckinPayment *float64
	TotalAmount    *float64
	Inventory      *models.Inventaire
	Manager        *string
	Remarks        *string
}

type CheckoutInput struct {
	GuestName    string
	CheckoutDate string
	Inventory    *models.Inventaire
	DamagesNotes string
	Manager      string
}

func (s *CheckinService) List(houseID string) ([]models.CheckIn, error) {
	var checkins []models.CheckIn
	q := s.DB.Order("arrival_date DESC")
	if houseID != "" {
		q = q.Where("house_id = ?", houseID)
	}
	if err := q.Find(&checkins).Error; err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	return checkins, nil
}

func (s *CheckinService) Get(id string) (*models.CheckIn, error) {
	var checkin models.CheckIn
	if err := s.DB.First(&checkin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load check-in: %w", err)
	}
	return &checkin, nil
}

// Create stores the check-in and, when a payment was taken at the desk,
// inserts the derived entree ledger row in the same transaction. The derived
// row is independent of any reservation-advance row; both may coexist.
func (s *CheckinService) Create(input CheckinInput) (*models.CheckIn, error) {
	arrival, err := utils.ParseDate(input.ArrivalDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	departure, err := utils.ParseDate(input.DepartureDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !arrival.Before(departure) {
		return nil, validationErrorf("arrival date must be before departure date")
	}

	checkin := models.CheckIn{
		ReservationID:  input.ReservationID,
		HouseID:        input.HouseID,
		GuestName:      input.GuestName,
		Phone:          input.Phone,
		Email:          input.Email,
		ArrivalDate:    arrival,
		DepartureDate:  departure,
		AdvancePaid:    input.AdvancePaid,
		CheckinPayment: input.CheckinPayment,
		TotalAmount:    input.TotalAmount,
		Inventory:      input.Inventory.ToJSON(),
		Manager:        input.Manager,
		Remarks:        input.Remarks,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&checkin).Error; err != nil {
			return fmt.Errorf("failed to create check-in: %w", err)
		}
		if checkin.CheckinPayment > 0 {
			return createCheckinOperation(tx, &checkin)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &checkin, nil
}

// Update applies the provided fields; a payment change updates the linked
// checkin-origin ledger row in place (never lazily creates one).
func (s *CheckinService) Update(id string, input CheckinUpdate) (*models.CheckIn, error) {
	var checkin models.CheckIn

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&checkin, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if input.GuestName != nil {
			checkin.GuestName = *input.GuestName
		}
		if input.Phone != nil {
			checkin.Phone = *input.Phone
		}
		if input.Email != nil {
			checkin.Email = *input.Email
		}
		if input.ArrivalDate != nil {
			arrival, err := utils.ParseDate(*input.ArrivalDate)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrValidation, err)
			}
			checkin.ArrivalDate = arrival
		}
		if input.DepartureDate != nil {
			departure, err := utils.ParseDate(*input.DepartureDate)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrValidation, err)
			}
			checkin.DepartureDate = departure
		}
		if input.AdvancePaid != nil {
			checkin.AdvancePaid = *input.AdvancePaid
		}

		paymentChanged := false
		if input.CheckinPayment != nil {
			checkin.CheckinPayment = *input.CheckinPayment
			paymentChanged = true
		}
		if input.TotalAmount != nil {
			checkin.TotalAmount = *input.TotalAmount
		}
		if input.Inventory != nil {
			checkin.Inventory = input.Inventory.ToJSON()
		}
		if input.Manager != nil {
			checkin.Manager = *input.Manager
		}
		if input.Remarks != nil {
			checkin.Remarks = *input.Remarks
		}

		if !checkin.ArrivalDate.Before(checkin.DepartureDate) {
			return validationErrorf("arrival date must be before departure date")
		}

		if err := tx.Save(&checkin).Error; err != nil {
			return fmt.Errorf("failed to update check-in: %w", err)
		}
		if paymentChanged {
			return syncCheckinOperation(tx, &checkin)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &checkin, nil
}

// Delete removes linked ledger rows and any checkout record, then the
// check-in.
func (s *CheckinService) Delete(id string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var checkin models.CheckIn
		if err := tx.First(&checkin, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := deleteLinkedOperations(tx, "checkin_id", id); err != nil {
			return err
		}
		if err := tx.Where("checkin_id = ?", id).Delete(&models.CheckOut{}).Error; err != nil {
			return err
		}
		return tx.Delete(&checkin).Error
	})
}

// Checkout records the guest departure for an existing check-in.
func (s *CheckinService) Checkout(checkinID string, input CheckoutInput) (*models.CheckOut, error) {
	checkin, err := s.Get(checkinID)
	if err != nil {
		return nil, err
	}

	checkoutDate, err := utils.ParseDate(input.CheckoutDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	checkout := models.CheckOut{
		CheckinID:    checkinID,
		HouseID:      checkin.HouseID,
		GuestName:    input.GuestName,
		CheckoutDate: checkoutDate,
		DamagesNotes: input.DamagesNotes,
		Manager:      input.Manager,
	}
	if input.Inventory != nil {
		checkout.CheckoutInventory = input.Inventory.ToJSON()
	}

	if err := s.DB.Create(&checkout).Error; err != nil {
		return nil, fmt.Errorf("failed to create checkout: %w", err)
	}
	return &checkout, nil
}

func (s *CheckinService) ListCheckouts(houseID string) ([]models.CheckOut, error) {
	var checkouts []models.CheckOut
	q := s.DB.Order("checkout_date DESC")
	if houseID != "" {
		q = q.Where("house_id = ?", houseID)
	}
	if err := q.Find(&checkouts).Error; err != nil {
		return nil, fmt.Errorf("failed to list checkouts: %w", err)
	}
	return checkouts, nil
}
