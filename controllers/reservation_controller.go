package controllers

import (
	"net/http"

	"residence-backend/models"
	"residence-backend/services"
	"residence-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	ReservationSvc *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{ReservationSvc: svc}
}

// ReservationResponse is the wire shape the frontend expects. Field names are
// a fixed contract.
type ReservationResponse struct {
	ID            string  `json:"id"`
	Maison        string  `json:"maison"`
	Nom           string  `json:"nom"`
	Telephone     string  `json:"telephone"`
	Email         string  `json:"email"`
	Checkin       string  `json:"checkin"`
	Checkout      string  `json:"checkout"`
	MontantAvance float64 `json:"montantAvance"`
}

func toReservationResponse(r *models.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:            r.ID,
		Maison:        r.HouseID,
		Nom:           r.GuestName,
		Telephone:     r.Phone,
		Email:         r.Email,
		Checkin:       utils.FormatDate(r.CheckinDate),
		Checkout:      utils.FormatDate(r.CheckoutDate),
		MontantAvance: r.AdvancePaid,
	}
}

type reservationCreatePayload struct {
	Maison        string  `json:"maison" binding:"required"`
	Nom           string  `json:"nom" binding:"required"`
	Telephone     string  `json:"telephone"`
	Email         string  `json:"email"`
	Checkin       string  `json:"checkin" binding:"required"`
	Checkout      string  `json:"checkout" binding:"required"`
	MontantAvance float64 `json:"montantAvance"`
}

type reservationUpdatePayload struct {
	Nom           *string  `json:"nom"`
	Telephone     *string  `json:"telephone"`
	Email         *string  `json:"email"`
	Checkin       *string  `json:"checkin"`
	Checkout      *string  `json:"checkout"`
	MontantAvance *float64 `json:"montantAvance"`
}

// GET /reservations
func (ctrl *ReservationController) List(c *gin.Context) {
	reservations, err := ctrl.ReservationSvc.List(c.Query("maison"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response := make([]ReservationResponse, 0, len(reservations))
	for i := range reservations {
		response = append(response, toReservationResponse(&reservations[i]))
	}
	c.JSON(http.StatusOK, response)
}

// GET /reservations/:id
func (ctrl *ReservationController) Get(c *gin.Context) {
	reservation, err := ctrl.ReservationSvc.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(reservation))
}

// POST /reservations
func (ctrl *ReservationController) Create(c *gin.Context) {
	var payload reservationCreatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, err)
		return
	}

	reservation, err := ctrl.ReservationSvc.Create(services.ReservationInput{
		HouseID:     payload.Maison,
		GuestName:   payload.Nom,
		Phone:       payload.Telephone,
		Email:       payload.Email,
		Checkin:     payload.Checkin,
		Checkout:    payload.Checkout,
		AdvancePaid: payload.MontantAvance,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(reservation))
}

// PUT /reservations/:id
func (ctrl *ReservationController) Update(c *gin.Context) {
	var payload reservationUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, err)
		return
	}

	reservation, err := ctrl.ReservationSvc.Update(c.Param("id"), services.ReservationUpdate{
		GuestName:   payload.Nom,
		Phone:       payload.Telephone,
		Email:       payload.Email,
		Checkin:     payload.Checkin,
		Checkout:    payload.Checkout,
		AdvancePaid: payload.MontantAvance,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(reservation))
}

// DELETE /reservations/:id
func (ctrl *ReservationController) Delete(c *gin.Context) {
	if err := ctrl.ReservationSvc.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Reservation deleted successfully")
}

// GET /reservations/:id/availability?checkin=...&checkout=...
func (ctrl *ReservationController) CheckAvailability(c *gin.Context) {
	checkin := c.Query("checkin")
	checkout := c.Query("checkout")
	if checkin == "" || checkout == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "checkin and checkout query parameters are required"})
		return
	}

	available, conflicts, err := ctrl.ReservationSvc.CheckAvailability(c.Param("id"), checkin, checkout)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available, "conflicts": conflicts})
}
