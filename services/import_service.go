package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"residence-backend/models"
	"residence-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ImportService loads a db.json export into the store. Rows whose primary key
// already exists are skipped, so re-running an import is harmless.
type ImportService struct {
	DB *gorm.DB
}

func NewImportService(db *gorm.DB) *ImportService {
	return &ImportService{DB: db}
}

// dump mirrors the db.json layout. All keys are the export's wire names.
type dump struct {
	Users                []importUser           `json:"users"`
	Houses               []importHouse          `json:"houses"`
	ChecklistCategories  []importCategory       `json:"checklistCategories"`
	Reservations         []importReservation    `json:"reservations"`
	Checkins             []importCheckin        `json:"checkins"`
	FinancialOperations  []importOperation      `json:"financialOperations"`
	MaintenanceIssues    []importMaintenance    `json:"maintenanceIssues"`
	ChecklistItems       []importChecklistItem  `json:"checklistItems"`
	HouseChecklistStatus []importItemStatus     `json:"houseChecklistStatus"`
	HouseCategoryStatus  []importCategoryStatus `json:"houseCategoryStatus"`
}

type importUser struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"password_hash"`
	Role         string  `json:"role"`
	CreatedAt    string  `json:"created_at"`
	LastLogin    *string `json:"last_login"`
}

type importHouse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type importCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type importReservation struct {
	ID            string  `json:"id"`
	Maison        string  `json:"maison"`
	Nom           string  `json:"nom"`
	Telephone     string  `json:"telephone"`
	Email         string  `json:"email"`
	Checkin       string  `json:"checkin"`
	Checkout      string  `json:"checkout"`
	MontantAvance float64 `json:"montantAvance"`
}

type importCheckin struct {
	ID              string          `json:"id"`
	ReservationID   string          `json:"reservationId"`
	Maison          string          `json:"maison"`
	Nom             string          `json:"nom"`
	Telephone       string          `json:"telephone"`
	Email           string          `json:"email"`
	DateArrivee     string          `json:"dateArrivee"`
	DateDepart      string          `json:"dateDepart"`
	AvancePaye      float64         `json:"avancePaye"`
	PaiementCheckin float64         `json:"paiementCheckin"`
	MontantTotal    float64         `json:"montantTotal"`
	Inventaire      json.RawMessage `json:"inventaire"`
	Responsable     string          `json:"responsable"`
	Remarques       string          `json:"remarques"`
}

type importOperation struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	Maison        string  `json:"maison"`
	Type          string  `json:"type"`
	Motif         string  `json:"motif"`
	Montant       float64 `json:"montant"`
	Origine       string  `json:"origine"`
	PieceJointe   string  `json:"pieceJointe"`
	Editable      bool    `json:"editable"`
	ReservationID *string `json:"reservationId"`
	CheckinID     *string `json:"checkinId"`
	MaintenanceID *string `json:"maintenanceId"`
}

type importMaintenance struct {
	ID              string   `json:"id"`
	Maison          string   `json:"maison"`
	TypePanne       string   `json:"typePanne"`
	DateDeclaration string   `json:"dateDeclaration"`
	Assigne         string   `json:"assigne"`
	Commentaire     string   `json:"commentaire"`
	Statut          string   `json:"statut"`
	PhotoPanne      string   `json:"photoPanne"`
	PhotoFacture    string   `json:"photoFacture"`
	PrixMainOeuvre  *float64 `json:"prixMainOeuvre"`
}

type importChecklistItem struct {
	ID               string `json:"id"`
	Maison           string `json:"maison"`
	Etape            int    `json:"etape"`
	Categorie        string `json:"categorie"`
	Description      string `json:"description"`
	ProduitAUtiliser string `json:"produitAUtiliser"`
	Type             string `json:"type"`
}

type importItemStatus struct {
	ID              string  `json:"id"`
	Maison          string  `json:"maison"`
	ChecklistItemID string  `json:"checklistItemId"`
	Completed       bool    `json:"completed"`
	CompletedAt     *string `json:"completedAt"`
	UpdatedBy       string  `json:"updatedBy"`
}

type importCategoryStatus struct {
	ID         string  `json:"id"`
	Maison     string  `json:"maison"`
	CategoryID int     `json:"categoryId"`
	IsReady    bool    `json:"isReady"`
	ReadyAt    *string `json:"readyAt"`
}

func parseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

// exists reports whether a row with the given primary key is already present.
func exists(tx *gorm.DB, model interface{}, id interface{}) (bool, error) {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ImportFile reads a db.json export and inserts its rows in dependency order.
func (s *ImportService) ImportFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}
	var data dump
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("invalid import file: %w", err)
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.importUsers(tx, data.Users); err != nil {
			return err
		}
		if err := s.importHouses(tx, data.Houses); err != nil {
			return err
		}
		if err := s.importCategories(tx, data.ChecklistCategories); err != nil {
			return err
		}
		if err := s.importReservations(tx, data.Reservations); err != nil {
			return err
		}
		if err := s.importCheckins(tx, data.Checkins); err != nil {
			return err
		}
		if err := s.importOperations(tx, data.FinancialOperations); err != nil {
			return err
		}
		if err := s.importMaintenance(tx, data.MaintenanceIssues); err != nil {
			return err
		}
		if err := s.importChecklistItems(tx, data.ChecklistItems); err != nil {
			return err
		}
		if err := s.importItemStatuses(tx, data.HouseChecklistStatus); err != nil {
			return err
		}
		return s.importCategoryStatuses(tx, data.HouseCategoryStatus)
	})
}

func (s *ImportService) importUsers(tx *gorm.DB, rows []importUser) error {
	imported := 0
	for _, row := range rows {
		found, err := exists(tx, &models.User{}, row.ID)
		if err != nil {
			return err
		}
		if found {
			continue
		}
		user := models.User{
			ID:           row.ID,
			Email:        row.Email,
			PasswordHash: row.PasswordHash,
			Role:         row.Role,
		}
		if created := parseTimestamp(row.CreatedAt); created != nil {
			user.CreatedAt = *created
		}
		if row.LastLogin != nil {
			user.LastLogin = parseTimestamp(*row.LastLogin)
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to import user %s: %w", row.ID, err)
		}
		imported++
	}
	log.Printf("✅ Imported %d users", imported)
	return nil
}

func (s *ImportService) importHouses(tx *gorm.DB, rows []importHouse) error {
	imported := 0
	for _, row := range rows {
		found, err := exists(tx, &models.House{}, row.ID)
		if err != nil {
			return err
		}
		if found {
			continue
		}
		if err := tx.Create(&models.House{ID: row.ID, Name: row.Name}).Error; err != nil {
			return fmt.Errorf("failed to import house %s: %w", row.ID, err)
		}
		imported++
	}
	log.Printf("✅ Imported %d houses", imported)
	return nil
}

func (s *ImportService) importCategories(tx *gorm.DB, rows []importCategory) error {
	imported := 0
	for _, row := range rows {
		found, err := exists(tx, &models.ChecklistCategory{}, row.ID)
		if err != nil {
			return err
		}
		if found {
			continue
		}
		if err := tx.Create(&models.ChecklistCategory{ID: row.ID, Name: row.Name}).Error; err != nil {
			return fmt.Errorf("failed to import category %d: %w", row.ID, err)
		}
		imported++
	}
	log.Printf("✅ Imported %d checklist categories", imported)
	return nil
}

func (s *ImportService) importReservations(tx *gorm.DB, rows []importReservation) error {
	imported := 0
	for _, row := range rows {
		found, err := exists(tx, &models.Reservation{}, row.ID)
		if err != nil {
			return err
		}
		if found {
			continue
		}
		checkin, err := utils.ParseDate(row.Checkin)
		if err != nil {
			return fmt.Errorf("reservation %s: %w", row.ID, err)
		}
		checkout, err := utils.ParseDate(row.Checkout)
		if err != nil {
			return fmt.Errorf("reservation %s: %w", row.ID, err)
		}
		reservation := models.Reservation{
			ID:           row.ID,
			HouseID:      row.Maison,
			GuestName:    row.Nom,
			Phone:        row.Telephone,
			Email:        row.Email,
			CheckinDate:  checkin,
			CheckoutDate: checkout,
			AdvancePaid:  row.MontantAvance,
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return fmt.Errorf("failed to import reservation %s: %w", row.ID, err)
		}
		imported++
	}
	log.Printf("✅ Imported %d reservations", imported)
	return nil
}

func (s *ImportService) importCheckins(tx *gorm.DB, rows []importCheckin) error {
	imported := 0
	for _, row := range rows {
		found, err := exists(tx, &models.CheckIn{}, row.ID)
		if err != nil {
			return err
		}
		if found {
			continue
		}
		arrival, err := utils.ParseDate(row.DateArrivee)
		if err != nil {
			return fmt.Errorf("checkin %s: %w", row.ID, err)
		}
		departure, err := utils.ParseDate(row.DateDepart)
		if err != nil {
			return fmt.Errorf("checkin %s: %w", row.ID, err)
		}
		checkin := models.CheckIn{
			ID:             row.ID,
			ReservationID:  row.ReservationID,
			HouseID:        row.Maison,
			GuestName:      row.Nom,
			Phone:          row.Telephone,
			Email:          row.Email,
			ArrivalDate:    arrival,
			DepartureDate:  departure,
			AdvancePaid:    row.AvancePaye,
			CheckinPayment: row.PaiementCheckin,
			TotalAmount:    row.MontantTotal,
			Inventory:      datatypes.JSON(row.Inventaire),
			Manager:        row.Responsable,
			Remarks:        row.Remarques,
		}
		if err := tx.Create(&checkin).Error; err != nil {
			return fmt.Errorf("failed to import checkin %s: %w", row.ID, err)
		}
		imported++
	}
	log.Printf("✅ Imported %d checkins", imported)
	return nil
}

func (s *ImportService) importOperations(tx *gorm.DB, rows []importOperation) error {
	imported := 0
	for _, row := range rows {
		found, err := exists(tx, &models.FinancialOperation{}, row.ID)
		if err != nil {
			return err
		}
		if found {
			continue
		}
		date, err := utils.ParseDate(row.Date)
		if err != nil {
			return fmt.Errorf("operation %s: %w", row.ID, err)
		}
		operation := models.FinancialOperation{
			ID:            row.ID,
			Date:          date,
			HouseID:       row.Maison,
			Type:          row.Type,
			Motif:         row.Motif,
			Montant:       row.Montant,
			Origine:       row.Origine,
			PieceJointe:   row.PieceJointe,
			Editable:      row.Editable,
			ReservationID: row.ReservationID,
			CheckinID:     row.CheckinID,
			MaintenanceID: row.MaintenanceID,
		}
		if err := tx.Create(&operation).Error; err != nil {
			return fmt.Errorf("failed to import operation %s: %w", row.ID, err)
		}
		imported++
	}
	log.Printf("✅ Imported %d financial operations", imported)
	return nil
}

func (s *ImportService) importMaintenance(tx *gorm.DB, rows []importMaintenance) error {
	imported := 0
	for _, row := range rows {
		found, err := exists(tx, &models.MaintenanceIssue{}, row.ID)
		if err != nil {
			return err
		}
		if found {
			continue
		}
		reported, err := utils.ParseDate(row.DateDeclaration)
		if err != nil {
			return fmt.Errorf("maintenance %s: %w", row.ID, err)
		}
		issue := models.MaintenanceIssue{
			ID:              row.ID,
			HouseID:         row.Maison,
			IssueType:       row.TypePanne,
			ReportedAt:      reported,
			AssignedTo:      row.Assigne,
			Comment:         row.Commentaire,
			Status:          row.Statut,
			PhotoIssueURL:   row.PhotoPanne,
			PhotoInvoiceURL: row.PhotoFacture,
			LaborCost:       row.PrixMainOeuvre,
		}
		if issue.Status == "" {
			issue.Status = models.MaintenanceStatusUnresolved
		}
		if err := tx.Create(&issue).Error; err != nil {
			return fmt.Errorf("failed to import maintenance %s: %w", row.ID, err)
		}
		imported++
	}
	log.Printf("✅ Imported %d maintenance issues", imported)
	return nil
}

func (s *ImportService) importChecklistItems(tx *gorm.DB, rows []importChecklistItem) error {
	var categories []models.ChecklistCategory
	if err := tx.Find(&categories).Error; err != nil {
		return err
	}
	byName := make(map[string]int, len(categories))
	for _, category := range categories {
		byName[category.Name] = category.ID
	}

	imported := 0
	for _, row := range rows {
		found, err := exists(tx, &models.ChecklistItem{}, row.ID)
		if err != nil {
			return err
		}
		if found {
			continue
		}
		categoryID, ok := byName[row.Categorie]
		if !ok {
			log.Printf("⚠️  Unknown checklist category %q, skipping item %s", row.Categorie, row.ID)
			continue
		}
		item := models.ChecklistItem{
			ID:              row.ID,
			HouseID:         row.Maison,
			StepNumber:      row.Etape,
			CategoryID:      categoryID,
			Description:     row.Description,
			ProductRequired: row.ProduitAUtiliser,
			Type:            row.Type,
		}
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("failed to import checklist item %s: %w", row.ID, err)
		}
		imported++
	}
	log.Printf("✅ Imported %d checklist items", imported)
	return nil
}

func (s *ImportService) importItemStatuses(tx *gorm.DB, rows []importItemStatus) error {
	imported := 0
	for _, row := range rows {
		found, err := exists(tx, &models.HouseChecklistStatus{}, row.ID)
		if err != nil {
			return err
		}
		if found {
			continue
		}
		status := models.HouseChecklistStatus{
			ID:          row.ID,
			HouseID:     row.Maison,
			ItemID:      row.ChecklistItemID,
			IsCompleted: row.Completed,
			UpdatedBy:   row.UpdatedBy,
		}
		if row.CompletedAt != nil {
			status.CompletedAt = parseTimestamp(*row.CompletedAt)
		}
		if err := tx.Create(&status).Error; err != nil {
			return fmt.Errorf("failed to import checklist status %s: %w", row.ID, err)
		}
		imported++
	}
	log.Printf("✅ Imported %d house checklist statuses", imported)
	return nil
}

func (s *ImportService) importCategoryStatuses(tx *gorm.DB, rows []importCategoryStatus) error {
	imported := 0
	for _, row := range rows {
		found, err := exists(tx, &models.HouseCategoryStatus{}, row.ID)
		if err != nil {
			return err
		}
		if found {
			continue
		}
		status := models.HouseCategoryStatus{
			ID:         row.ID,
			HouseID:    row.Maison,
			CategoryID: row.CategoryID,
			IsReady:    row.IsReady,
		}
		if row.ReadyAt != nil {
			status.ReadyAt = parseTimestamp(*row.ReadyAt)
		}
		if err := tx.Create(&status).Error; err != nil {
			return fmt.Errorf("failed to import category status %s: %w", row.ID, err)
		}
		imported++
	}
	log.Printf("✅ Imported %d house category statuses", imported)
	return nil
}
