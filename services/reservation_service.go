package services

import (
	"errors"
	"fmt"

	"residence-backend/models"
	"residence-backend/utils"

	"gorm.io/gorm"
)

type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

type ReservationInput struct {
	HouseID     string
	GuestName   string
	Phone       string
	Email       string
	Checkin     string
	Checkout    string
	AdvancePaid float64
}

type ReservationUpdate struct {
	GuestName   *string
	Phone       *string
	Email       *string
	Checkin     *string
	Checkout    *string
	AdvancePaid *float64
}

func (s *ReservationService) List(houseID string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	q := s.DB.Order("checkin_date DESC")
	if houseID != "" {
		q = q.Where("house_id = ?", houseID)
	}
	if err := q.Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}

func (s *ReservationService) Get(id string) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.First(&reservation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load reservation: %w", err)
	}
	return &reservation, nil
}

// Create validates dates, stores the reservation and, when an advance was
// paid, inserts the derived entree ledger row in the same transaction.
func (s *ReservationService) Create(input ReservationInput) (*models.Reservation, error) {
	checkin, err := utils.ParseDate(input.Checkin)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	checkout, err := utils.ParseDate(input.Checkout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !checkin.Before(checkout) {
		return nil, validationErrorf("check-in date must be before check-out date")
	}
	if checkin.Before(utils.Today()) {
		return nil, validationErrorf("check-in date cannot be in the past")
	}

	reservation := models.Reservation{
		HouseID:      input.HouseID,
		GuestName:    input.GuestName,
		Phone:        input.Phone,
		Email:        input.Email,
		CheckinDate:  checkin,
		CheckoutDate: checkout,
		AdvancePaid:  input.AdvancePaid,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reservation).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		if reservation.AdvancePaid > 0 {
			return createReservationOperation(tx, &reservation)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Update applies the provided fields and keeps the linked ledger row in sync
// when the advance changes, all in one transaction.
func (s *ReservationService) Update(id string, input ReservationUpdate) (*models.Reservation, error) {
	var reservation models.Reservation

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reservation, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if input.GuestName != nil {
			reservation.GuestName = *input.GuestName
		}
		if input.Phone != nil {
			reservation.Phone = *input.Phone
		}
		if input.Email != nil {
			reservation.Email = *input.Email
		}
		if input.Checkin != nil {
			checkin, err := utils.ParseDate(*input.Checkin)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrValidation, err)
			}
			if checkin.Before(utils.Today()) {
				return validationErrorf("check-in date cannot be in the past")
			}
			reservation.CheckinDate = checkin
		}
		if input.Checkout != nil {
			checkout, err := utils.ParseDate(*input.Checkout)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrValidation, err)
			}
			reservation.CheckoutDate = checkout
		}

		advanceChanged := false
		if input.AdvancePaid != nil {
			reservation.AdvancePaid = *input.AdvancePaid
			advanceChanged = true
		}

		if !reservation.CheckinDate.Before(reservation.CheckoutDate) {
			return validationErrorf("check-in date must be before check-out date")
		}

		if err := tx.Save(&reservation).Error; err != nil {
			return fmt.Errorf("failed to update reservation: %w", err)
		}
		if advanceChanged {
			return syncReservationOperation(tx, &reservation)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Delete removes the reservation's linked ledger rows first, then the
// reservation itself.
func (s *ReservationService) Delete(id string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.First(&reservation, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := deleteLinkedOperations(tx, "reservation_id", id); err != nil {
			return err
		}
		return tx.Delete(&reservation).Error
	})
}

// CheckAvailability counts reservations of the same house whose stay overlaps
// [checkin, checkout), excluding the reservation itself.
func (s *ReservationService) CheckAvailability(id, checkin, checkout string) (bool, int64, error) {
	start, err := utils.ParseDate(checkin)
	if err != nil {
		return false, 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	end, err := utils.ParseDate(checkout)
	if err != nil {
		return false, 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	current, err := s.Get(id)
	if err != nil {
		return false, 0, err
	}

	var conflicts int64
	err = s.DB.Model(&models.Reservation{}).
		Where("house_id = ? AND id <> ?", current.HouseID, id).
		Where("checkin_date < ? AND checkout_date > ?", end, start).
		Count(&conflicts).Error
	if err != nil {
		return false, 0, fmt.Errorf("failed to check availability: %w", err)
	}
	return conflicts == 0, conflicts, nil
}
