package controllers

import (
	"net/http"
	"strconv"

	"residence-backend/models"
	"residence-backend/services"
	"residence-backend/utils"

	"github.com/gin-gonic/gin"
)

type FinanceController struct {
	FinanceSvc *services.FinanceService
}

func NewFinanceController(svc *services.FinanceService) *FinanceController {
	return &FinanceController{FinanceSvc: svc}
}

type FinancialOperationResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Maison      string  `json:"maison"`
	Type        string  `json:"type"`
	Motif       string  `json:"motif"`
	Montant     float64 `json:"montant"`
	Origine     string  `json:"origine"`
	PieceJointe string  `json:"pieceJointe"`
	Editable    bool    `json:"editable"`
}

func toOperationResponse(op *models.FinancialOperation) FinancialOperationResponse {
	return FinancialOperationResponse{
		ID:          op.ID,
		Date:        utils.FormatDate(op.Date),
		Maison:      op.HouseID,
		Type:        op.Type,
		Motif:       op.Motif,
		Montant:     op.Montant,
		Origine:     op.Origine,
		PieceJointe: op.PieceJointe,
		Editable:    op.Editable,
	}
}

type operationCreatePayload struct {
	Date        string  `json:"date" binding:"required"`
	Maison      string  `json:"maison" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Motif       string  `json:"motif" binding:"required"`
	Montant     float64 `json:"montant"`
	Origine     string  `json:"origine"`
	PieceJointe string  `json:"pieceJointe"`
	Editable    *bool   `json:"editable"`
}

type operationUpdatePayload struct {
	Date        *string  `json:"date"`
	Maison      *string  `json:"maison"`
	Type        *string  `json:"type"`
	Motif       *string  `json:"motif"`
	Montant     *float64 `json:"montant"`
	Origine     *string  `json:"origine"`
	PieceJointe *string  `json:"pieceJointe"`
	Editable    *bool    `json:"editable"`
}

func intQuery(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}

// GET /finance
func (ctrl *FinanceController) List(c *gin.Context) {
	operations, err := ctrl.FinanceSvc.List(services.OperationFilters{
		HouseID: c.Query("maison"),
		Type:    c.Query("type"),
		Origine: c.Query("origine"),
		Month:   intQuery(c, "month"),
		Year:    intQuery(c, "year"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response := make([]FinancialOperationResponse, 0, len(operations))
	for i := range operations {
		response = append(response, toOperationResponse(&operations[i]))
	}
	c.JSON(http.StatusOK, response)
}

// GET /finance/:id
func (ctrl *FinanceController) Get(c *gin.Context) {
	operation, err := ctrl.FinanceSvc.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOperationResponse(operation))
}

// POST /finance
func (ctrl *FinanceController) Create(c *gin.Context) {
	var payload operationCreatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, err)
		return
	}

	operation, err := ctrl.FinanceSvc.Create(services.OperationInput{
		Date:        payload.Date,
		HouseID:     payload.Maison,
		Type:        payload.Type,
		Motif:       payload.Motif,
		Montant:     payload.Montant,
		Origine:     payload.Origine,
		PieceJointe: payload.PieceJointe,
		Editable:    payload.Editable,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOperationResponse(operation))
}

// PUT /finance/:id
func (ctrl *FinanceController) Update(c *gin.Context) {
	var payload operationUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, err)
		return
	}

	operation, err := ctrl.FinanceSvc.Update(c.Param("id"), services.OperationUpdate{
		Date:        payload.Date,
		HouseID:     payload.Maison,
		Type:        payload.Type,
		Motif:       payload.Motif,
		Montant:     payload.Montant,
		Origine:     payload.Origine,
		PieceJointe: payload.PieceJointe,
		Editable:    payload.Editable,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOperationResponse(operation))
}

// DELETE /finance/:id
func (ctrl *FinanceController) Delete(c *gin.Context) {
	if err := ctrl.FinanceSvc.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Financial operation deleted successfully")
}

// GET /finance/summary/:houseId
func (ctrl *FinanceController) Summary(c *gin.Context) {
	summary, err := ctrl.FinanceSvc.Summary(c.Param("houseId"), intQuery(c, "year"), intQuery(c, "month"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GET /finance/revenue/monthly?year=YYYY
func (ctrl *FinanceController) MonthlyRevenue(c *gin.Context) {
	year := intQuery(c, "year")
	if year == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "year query parameter is required"})
		return
	}
	revenue, err := ctrl.FinanceSvc.MonthlyRevenue(year, c.Query("houseId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, revenue)
}
