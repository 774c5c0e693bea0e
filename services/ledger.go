package services

import (
	"errors"
	"fmt"

	"residence-backend/models"

	"gorm.io/gorm"
)

// Ledger synchronizer: keeps FinancialOperation rows consistent with the
// entity that produced them. Every helper takes the caller's transaction so
// the derived row commits or rolls back together with the entity write.

func reservationAdvanceMotif(guestName string) string {
	return fmt.Sprintf("Avance réservation - %s", guestName)
}

func checkinPaymentMotif(guestName string) string {
	return fmt.Sprintf("Paiement accommodation - %s", guestName)
}

func maintenanceRepairMotif(issueType, assignedTo string) string {
	return fmt.Sprintf("Réparation %s - %s", issueType, assignedTo)
}

// createReservationOperation inserts the entree row derived from a
// reservation advance. Caller checks AdvancePaid > 0.
func createReservationOperation(tx *gorm.DB, r *models.Reservation) error {
	op := models.FinancialOperation{
		Date:          r.CheckinDate,
		HouseID:       r.HouseID,
		Type:          models.OperationTypeEntree,
		Motif:         reservationAdvanceMotif(r.GuestName),
		Montant:       r.AdvancePaid,
		Origine:       models.OriginReservation,
		Editable:      false,
		ReservationID: &r.ID,
	}
	return tx.Create(&op).Error
}

// syncReservationOperation updates the linked reservation-origin row in
// place, or lazily creates one when none exists and the new advance is
// positive. Updating the advance to 0 keeps the existing row (its amount goes
// to 0); the row is never deleted here.
func syncReservationOperation(tx *gorm.DB, r *models.Reservation) error {
	var op models.FinancialOperation
	err := tx.
		Where("reservation_id = ? AND origine = ?", r.ID, models.OriginReservation).
		First(&op).Error
	if err == nil {
		return tx.Model(&op).Updates(map[string]interface{}{
			"montant": r.AdvancePaid,
			"motif":   reservationAdvanceMotif(r.GuestName),
			"date":    r.CheckinDate,
		}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if r.AdvancePaid > 0 {
		return createReservationOperation(tx, r)
	}
	return nil
}

// createCheckinOperation inserts the entree row for a check-in payment. The
// row keeps both back-references so it survives reservation-side lookups, but
// its origin is checkin and it coexists with any reservation-derived row.
func createCheckinOperation(tx *gorm.DB, c *models.CheckIn) error {
	op := models.FinancialOperation{
		Date:      c.ArrivalDate,
		HouseID:   c.HouseID,
		Type:      models.OperationTypeEntree,
		Motif:     checkinPaymentMotif(c.GuestName),
		Montant:   c.CheckinPayment,
		Origine:   models.OriginCheckin,
		Editable:  false,
		CheckinID: &c.ID,
	}
	if c.ReservationID != "" {
		reservationID := c.ReservationID
		op.ReservationID = &reservationID
	}
	return tx.Create(&op).Error
}

// syncCheckinOperation updates the linked checkin-origin row in place when it
// exists. Unlike the reservation path there is deliberately no lazy-create
// branch; that asymmetry is part of the contract.
func syncCheckinOperation(tx *gorm.DB, c *models.CheckIn) error {
	var op models.FinancialOperation
	err := tx.
		Where("checkin_id = ? AND origine = ?", c.ID, models.OriginCheckin).
		First(&op).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return tx.Model(&op).Updates(map[string]interface{}{
		"montant": c.CheckinPayment,
		"motif":   checkinPaymentMotif(c.GuestName),
		"date":    c.ArrivalDate,
	}).Error
}

// createMaintenanceOperation inserts the sortie row for a resolved issue.
// Only the non-resolue -> resolue edge fires this; callers guard the edge and
// the positive labor cost.
func createMaintenanceOperation(tx *gorm.DB, issue *models.MaintenanceIssue) error {
	op := models.FinancialOperation{
		Date:          issue.ReportedAt,
		HouseID:       issue.HouseID,
		Type:          models.OperationTypeSortie,
		Motif:         maintenanceRepairMotif(issue.IssueType, issue.AssignedTo),
		Montant:       *issue.LaborCost,
		Origine:       models.OriginMaintenance,
		PieceJointe:   issue.PhotoInvoiceURL,
		Editable:      false,
		MaintenanceID: &issue.ID,
	}
	return tx.Create(&op).Error
}

// deleteLinkedOperations removes every ledger row back-referencing the given
// entity. column is one of reservation_id, checkin_id, maintenance_id.
func deleteLinkedOperations(tx *gorm.DB, column, id string) error {
	return tx.
		Where(fmt.Sprintf("%s = ?", column), id).
		Delete(&models.FinancialOperation{}).Error
}
