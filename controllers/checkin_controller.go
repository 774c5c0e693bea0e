package controllers

import (
	"net/http"

	"residence-backend/models"
	"residence-backend/services"
	"residence-backend/utils"

	"github.com/gin-gonic/gin"
)

type CheckinController struct {
	CheckinSvc *services.CheckinService
}

func NewCheckinController(svc *services.CheckinService) *CheckinController {
	return &CheckinController{CheckinSvc: svc}
}

type CheckInResponse struct {
	ID              string            `json:"id"`
	Maison          string            `json:"maison"`
	Nom             string            `json:"nom"`
	Telephone       string            `json:"telephone"`
	Email           string            `json:"email"`
	DateArrivee     string            `json:"dateArrivee"`
	DateDepart      string            `json:"dateDepart"`
	AvancePaye      float64           `json:"avancePaye"`
	PaiementCheckin float64           `json:"paiementCheckin"`
	MontantTotal    float64           `json:"montantTotal"`
	Inventaire      models.Inventaire `json:"inventaire"`
	Responsable     string            `json:"responsable"`
	Remarques       string            `json:"remarques"`
	ReservationID   string            `json:"reservationId"`
}

func toCheckInResponse(ci *models.CheckIn) CheckInResponse {
	return CheckInResponse{
		ID:              ci.ID,
		Maison:          ci.HouseID,
		Nom:             ci.GuestName,
		Telephone:       ci.Phone,
		Email:           ci.Email,
		DateArrivee:     utils.FormatDate(ci.ArrivalDate),
		DateDepart:      utils.FormatDate(ci.DepartureDate),
		AvancePaye:      ci.AdvancePaid,
		PaiementCheckin: ci.CheckinPayment,
		MontantTotal:    ci.TotalAmount,
		Inventaire:      models.InventaireFromJSON(ci.Inventory),
		Responsable:     ci.Manager,
		Remarques:       ci.Remarks,
		ReservationID:   ci.ReservationID,
	}
}

type CheckOutResponse struct {
	ID               string             `json:"id"`
	CheckinID        string             `json:"checkinId"`
	Maison           string             `json:"maison"`
	Nom              string             `json:"nom"`
	DateDepart       string             `json:"dateDepart"`
	InventaireSortie *models.Inventaire `json:"inventaireSortie"`
	NotesDommages    string             `json:"notesDommages"`
	Responsable      string             `json:"responsable"`
}

func toCheckOutResponse(co *models.CheckOut) CheckOutResponse {
	response := CheckOutResponse{
		ID:            co.ID,
		CheckinID:     co.CheckinID,
		Maison:        co.HouseID,
		Nom:           co.GuestName,
		DateDepart:    utils.FormatDate(co.CheckoutDate),
		NotesDommages: co.DamagesNotes,
		Responsable:   co.Manager,
	}
	if len(co.CheckoutInventory) > 0 {
		inv := models.InventaireFromJSON(co.CheckoutInventory)
		response.InventaireSortie = &inv
	}
	return response
}

type checkinCreatePayload struct {
	ReservationID   string            `json:"reservationId"`
	Maison          string            `json:"maison" binding:"required"`
	Nom             string            `json:"nom" binding:"required"`
	Telephone       string            `json:"telephone"`
	Email           string            `json:"email"`
	DateArrivee     string            `json:"dateArrivee" binding:"required"`
	DateDepart      string            `json:"dateDepart" binding:"required"`
	AvancePaye      float64           `json:"avancePaye"`
	PaiementCheckin float64           `json:"paiementCheckin"`
	MontantTotal    float64           `json:"montantTotal"`
	Inventaire      models.Inventaire `json:"inventaire"`
	Responsable     string            `json:"responsable"`
	Remarques       string            `json:"remarques"`
}

type checkinUpdatePayload struct {
	Nom             *string            `json:"nom"`
	Telephone       *string            `json:"telephone"`
	Email           *string            `json:"email"`
	DateArrivee     *string            `json:"dateArrivee"`
	DateDepart      *string            `json:"dateDepart"`
	AvancePaye      *float64           `json:"avancePaye"`
	PaiementCheckin *float64           `json:"paiementCheckin"`
	MontantTotal    *float64           `json:"montantTotal"`
	Inventaire      *models.Inventaire `json:"inventaire"`
	Responsable     *string            `json:"responsable"`
	Remarques       *string            `json:"remarques"`
}

type checkoutCreatePayload struct {
	Nom              string             `json:"nom" binding:"required"`
	DateDepart       string             `json:"dateDepart" binding:"required"`
	InventaireSortie *models.Inventaire `json:"inventaireSortie"`
	NotesDommages    string             `json:"notesDommages"`
	Responsable      string             `json:"responsable"`
}

// GET /checkins
func (ctrl *CheckinController) List(c *gin.Context) {
	checkins, err := ctrl.CheckinSvc.List(c.Query("maison"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response := make([]CheckInResponse, 0, len(checkins))
	for i := range checkins {
		response = append(response, toCheckInResponse(&checkins[i]))
	}
	c.JSON(http.StatusOK, response)
}

// GET /checkins/:id
func (ctrl *CheckinController) Get(c *gin.Context) {
	checkin, err := ctrl.CheckinSvc.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCheckInResponse(checkin))
}

// POST /checkins
func (ctrl *CheckinController) Create(c *gin.Context) {
	var payload checkinCreatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, err)
		return
	}

	checkin, err := ctrl.CheckinSvc.Create(services.CheckinInput{
		ReservationID:  payload.ReservationID,
		HouseID:        payload.Maison,
		GuestName:      payload.Nom,
		Phone:          payload.Telephone,
		Email:          payload.Email,
		ArrivalDate:    payload.DateArrivee,
		DepartureDate:  payload.DateDepart,
		AdvancePaid:    payload.AvancePaye,
		CheckinPayment: payload.PaiementCheckin,
		TotalAmount:    payload.MontantTotal,
		Inventory:      payload.Inventaire,
		Manager:        payload.Responsable,
		Remarks:        payload.Remarques,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCheckInResponse(checkin))
}

// PUT /checkins/:id
func (ctrl *CheckinController) Update(c *gin.Context) {
	var payload checkinUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, err)
		return
	}

	checkin, err := ctrl.CheckinSvc.Update(c.Param("id"), services.CheckinUpdate{
		GuestName:      payload.Nom,
		Phone:          payload.Telephone,
		Email:          payload.Email,
		ArrivalDate:    payload.DateArrivee,
		DepartureDate:  payload.DateDepart,
		AdvancePaid:    payload.AvancePaye,
		CheckinPayment: payload.PaiementCheckin,
		TotalAmount:    payload.MontantTotal,
		Inventory:      payload.Inventaire,
		Manager:        payload.Responsable,
		Remarks:        payload.Remarques,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCheckInResponse(checkin))
}

// DELETE /checkins/:id
func (ctrl *CheckinController) Delete(c *gin.Context) {
	if err := ctrl.CheckinSvc.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Check-in deleted successfully")
}

// POST /checkins/:id/checkout
func (ctrl *CheckinController) CreateCheckout(c *gin.Context) {
	var payload checkoutCreatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, err)
		return
	}

	checkout, err := ctrl.CheckinSvc.Checkout(c.Param("id"), services.CheckoutInput{
		GuestName:    payload.Nom,
		CheckoutDate: payload.DateDepart,
		Inventory:    payload.InventaireSortie,
		DamagesNotes: payload.NotesDommages,
		Manager:      payload.Responsable,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCheckOutResponse(checkout))
}

// GET /checkins/checkouts/
func (ctrl *CheckinController) ListCheckouts(c *gin.Context) {
	checkouts, err := ctrl.CheckinSvc.ListCheckouts(c.Query("maison"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response := make([]CheckOutResponse, 0, len(checkouts))
	for i := range checkouts {
		response = append(response, toCheckOutResponse(&checkouts[i]))
	}
	c.JSON(http.StatusOK, response)
}
