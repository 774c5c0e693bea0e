package controllers

import (
	"net/http"

	"residence-backend/models"
	"residence-backend/services"
	"residence-backend/utils"

	"github.com/gin-gonic/gin"
)

type ChecklistController struct {
	ChecklistSvc *services.ChecklistService
}

func NewChecklistController(svc *services.ChecklistService) *ChecklistController {
	return &ChecklistController{ChecklistSvc: svc}
}

type ChecklistItemResponse struct {
	ID               string `json:"id"`
	Maison           string `json:"maison"`
	Etape            int    `json:"etape"`
	Categorie        string `json:"categorie"`
	Description      string `json:"description"`
	ProduitAUtiliser string `json:"produitAUtiliser"`
	Type             string `json:"type"`
}

func toChecklistItemResponse(item *models.ChecklistItem) ChecklistItemResponse {
	return ChecklistItemResponse{
		ID:               item.ID,
		Maison:           item.HouseID,
		Etape:            item.StepNumber,
		Categorie:        item.Category.Name,
		Description:      item.Description,
		ProduitAUtiliser: item.ProductRequired,
		Type:             item.Type,
	}
}

type HouseChecklistStatusResponse struct {
	ID              string  `json:"id"`
	Maison          string  `json:"maison"`
	ChecklistItemID string  `json:"checklistItemId"`
	Completed       bool    `json:"completed"`
	CompletedAt     *string `json:"completedAt"`
	UpdatedBy       string  `json:"updatedBy"`
}

func toStatusResponse(status *models.HouseChecklistStatus) HouseChecklistStatusResponse {
	response := HouseChecklistStatusResponse{
		ID:              status.ID,
		Maison:          status.HouseID,
		ChecklistItemID: status.ItemID,
		Completed:       status.IsCompleted,
		UpdatedBy:       status.UpdatedBy,
	}
	if status.CompletedAt != nil {
		completed := status.CompletedAt.UTC().Format(utils.TimestampLayout)
		response.CompletedAt = &completed
	}
	return response
}

type checklistItemCreatePayload struct {
	Maison           string `json:"maison" binding:"required"`
	Etape            int    `json:"etape"`
	Categorie        string `json:"categorie" binding:"required"`
	Description      string `json:"description" binding:"required"`
	ProduitAUtiliser string `json:"produitAUtiliser"`
	Type             string `json:"type"`
}

type checklistItemUpdatePayload struct {
	Etape            *int    `json:"etape"`
	Categorie        *string `json:"categorie"`
	Description      *string `json:"description"`
	ProduitAUtiliser *string `json:"produitAUtiliser"`
	Type             *string `json:"type"`
}

type taskCompletionPayload struct {
	TaskID    string `json:"taskId" binding:"required"`
	Completed *bool  `json:"completed" binding:"required"`
}

type categoryCompletionPayload struct {
	CategoryID int   `json:"categoryId" binding:"required"`
	Completed  *bool `json:"completed" binding:"required"`
}

// GET /checklist/categories
func (ctrl *ChecklistController) Categories(c *gin.Context) {
	categories, err := ctrl.ChecklistSvc.Categories()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GET /checklist/items?maison=...&categorie=...
func (ctrl *ChecklistController) Items(c *gin.Context) {
	items, err := ctrl.ChecklistSvc.Items(c.Query("maison"), c.Query("categorie"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response := make([]ChecklistItemResponse, 0, len(items))
	for i := range items {
		response = append(response, toChecklistItemResponse(&items[i]))
	}
	c.JSON(http.StatusOK, response)
}

// GET /checklist/items/:id
func (ctrl *ChecklistController) GetItem(c *gin.Context) {
	item, err := ctrl.ChecklistSvc.GetItem(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toChecklistItemResponse(item))
}

// POST /checklist/items
func (ctrl *ChecklistController) CreateItem(c *gin.Context) {
	var payload checklistItemCreatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, err)
		return
	}

	item, err := ctrl.ChecklistSvc.CreateItem(services.ChecklistItemInput{
		HouseID:         payload.Maison,
		StepNumber:      payload.Etape,
		CategoryName:    payload.Categorie,
		Description:     payload.Description,
		ProductRequired: payload.ProduitAUtiliser,
		Type:            payload.Type,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toChecklistItemResponse(item))
}

// PUT /checklist/items/:id
func (ctrl *ChecklistController) UpdateItem(c *gin.Context) {
	var payload checklistItemUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, err)
		return
	}

	item, err := ctrl.ChecklistSvc.UpdateItem(c.Param("id"), services.ChecklistItemUpdate{
		StepNumber:      payload.Etape,
		CategoryName:    payload.Categorie,
		Description:     payload.Description,
		ProductRequired: payload.ProduitAUtiliser,
		Type:            payload.Type,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toChecklistItemResponse(item))
}

// DELETE /checklist/items/:id
func (ctrl *ChecklistController) DeleteItem(c *gin.Context) {
	if err := ctrl.ChecklistSvc.DeleteItem(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Checklist item deleted successfully")
}

// GET /checklist/status/:houseId
func (ctrl *ChecklistController) HouseStatus(c *gin.Context) {
	statuses, err := ctrl.ChecklistSvc.HouseStatus(c.Param("houseId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response := make([]HouseChecklistStatusResponse, 0, len(statuses))
	for i := range statuses {
		response = append(response, toStatusResponse(&statuses[i]))
	}
	c.JSON(http.StatusOK, response)
}

// POST /checklist/status/:houseId/complete
func (ctrl *ChecklistController) CompleteTask(c *gin.Context) {
	var payload taskCompletionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, err)
		return
	}

	actor := c.GetString("userID")
	status, err := ctrl.ChecklistSvc.CompleteTask(c.Param("houseId"), payload.TaskID, *payload.Completed, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStatusResponse(status))
}

// POST /checklist/categories/:houseId/complete
func (ctrl *ChecklistController) CompleteCategory(c *gin.Context) {
	var payload categoryCompletionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, err)
		return
	}

	if _, err := ctrl.ChecklistSvc.CompleteCategory(c.Param("houseId"), payload.CategoryID, *payload.Completed); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Category status updated successfully")
}

// GET /checklist/readiness/:houseId
func (ctrl *ChecklistController) Readiness(c *gin.Context) {
	readiness, err := ctrl.ChecklistSvc.Readiness(c.Param("houseId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, readiness)
}

// GET /checklist/progress/:houseId
func (ctrl *ChecklistController) Progress(c *gin.Context) {
	progress, err := ctrl.ChecklistSvc.Progress(c.Param("houseId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}
