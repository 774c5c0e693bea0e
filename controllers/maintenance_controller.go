package controllers

import (
	"net/http"

	"residence-backend/models"
	"residence-backend/services"
	"residence-backend/utils"

	"github.com/gin-gonic/gin"
)

type MaintenanceController struct {
	MaintenanceSvc *services.MaintenanceService
}

func NewMaintenanceController(svc *services.MaintenanceService) *MaintenanceController {
	return &MaintenanceController{MaintenanceSvc: svc}
}

type MaintenanceIssueResponse struct {
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

func toMaintenanceResponse(issue *models.MaintenanceIssue) MaintenanceIssueResponse {
	return MaintenanceIssueResponse{
		ID:              issue.ID,
		Maison:          issue.HouseID,
		TypePanne:       issue.IssueType,
		DateDeclaration: utils.FormatDate(issue.ReportedAt),
		Assigne:         issue.AssignedTo,
		Commentaire:     issue.Comment,
		Statut:          issue.Status,
		PhotoPanne:      issue.PhotoIssueURL,
		PhotoFacture:    issue.PhotoInvoiceURL,
		PrixMainOeuvre:  issue.LaborCost,
	}
}

type maintenanceCreatePayload struct {
	Maison          string   `json:"maison" binding:"required"`
	TypePanne       string   `json:"typePanne" binding:"required"`
	DateDeclaration string   `json:"dateDeclaration" binding:"required"`
	Assigne         string   `json:"assigne"`
	Commentaire     string   `json:"commentaire"`
	Statut          string   `json:"statut"`
	PhotoPanne      string   `json:"photoPanne"`
	PhotoFacture    string   `json:"photoFacture"`
	PrixMainOeuvre  *float64 `json:"prixMainOeuvre"`
}

type maintenanceUpdatePayload struct {
	TypePanne       *string  `json:"typePanne"`
	DateDeclaration *string  `json:"dateDeclaration"`
	Assigne         *string  `json:"assigne"`
	Commentaire     *string  `json:"commentaire"`
	Statut          *string  `json:"statut"`
	PhotoPanne      *string  `json:"photoPanne"`
	PhotoFacture    *string  `json:"photoFacture"`
	PrixMainOeuvre  *float64 `json:"prixMainOeuvre"`
}

type MaintenanceTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GET /maintenance/types
func (ctrl *MaintenanceController) Types(c *gin.Context) {
	types, err := ctrl.MaintenanceSvc.Types()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response := make([]MaintenanceTypeResponse, 0, len(types))
	for _, t := range types {
		response = append(response, MaintenanceTypeResponse{ID: t.ID, Name: t.Label})
	}
	c.JSON(http.StatusOK, response)
}

// GET /maintenance
func (ctrl *MaintenanceController) List(c *gin.Context) {
	issues, err := ctrl.MaintenanceSvc.List(services.MaintenanceFilters{
		HouseID:    c.Query("houseId"),
		Status:     c.Query("status"),
		AssignedTo: c.Query("assignedTo"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response := make([]MaintenanceIssueResponse, 0, len(issues))
	for i := range issues {
		response = append(response, toMaintenanceResponse(&issues[i]))
	}
	c.JSON(http.StatusOK, response)
}

// GET /maintenance/:id
func (ctrl *MaintenanceController) Get(c *gin.Context) {
	issue, err := ctrl.MaintenanceSvc.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMaintenanceResponse(issue))
}

// POST /maintenance
func (ctrl *MaintenanceController) Create(c *gin.Context) {
	var payload maintenanceCreatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, err)
		return
	}

	issue, err := ctrl.MaintenanceSvc.Create(services.MaintenanceInput{
		HouseID:         payload.Maison,
		IssueType:       payload.TypePanne,
		ReportedAt:      payload.DateDeclaration,
		AssignedTo:      payload.Assigne,
		Comment:         payload.Commentaire,
		Status:          payload.Statut,
		PhotoIssueURL:   payload.PhotoPanne,
		PhotoInvoiceURL: payload.PhotoFacture,
		LaborCost:       payload.PrixMainOeuvre,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMaintenanceResponse(issue))
}

// PUT /maintenance/:id
func (ctrl *MaintenanceController) Update(c *gin.Context) {
	var payload maintenanceUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, err)
		return
	}

	issue, err := ctrl.MaintenanceSvc.Update(c.Param("id"), services.MaintenanceUpdate{
		IssueType:       payload.TypePanne,
		ReportedAt:      payload.DateDeclaration,
		AssignedTo:      payload.Assigne,
		Comment:         payload.Commentaire,
		Status:          payload.Statut,
		PhotoIssueURL:   payload.PhotoPanne,
		PhotoInvoiceURL: payload.PhotoFacture,
		LaborCost:       payload.PrixMainOeuvre,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMaintenanceResponse(issue))
}

// DELETE /maintenance/:id
func (ctrl *MaintenanceController) Delete(c *gin.Context) {
	if err := ctrl.MaintenanceSvc.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Maintenance issue deleted successfully")
}

// GET /maintenance/stats/summary
func (ctrl *MaintenanceController) Stats(c *gin.Context) {
	stats, err := ctrl.MaintenanceSvc.Stats(c.Query("houseId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
