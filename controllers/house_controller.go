package controllers

import (
	"net/http"

	"residence-backend/services"
	"residence-backend/utils"

	"github.com/gin-gonic/gin"
)

type HouseController struct {
	HouseSvc *services.HouseService
}

func NewHouseController(svc *services.HouseService) *HouseController {
	return &HouseController{HouseSvc: svc}
}

type housePayload struct {
	ID   string `json:"id"`
	Name string `json:"name" binding:"required"`
}

// GET /houses
func (ctrl *HouseController) List(c *gin.Context) {
	houses, err := ctrl.HouseSvc.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, houses)
}

// GET /houses/:id
func (ctrl *HouseController) Get(c *gin.Context) {
	house, err := ctrl.HouseSvc.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, house)
}

// POST /houses
func (ctrl *HouseController) Create(c *gin.Context) {
	var payload housePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, err)
		return
	}
	house, err := ctrl.HouseSvc.Create(payload.ID, payload.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, house)
}

// PUT /houses/:id
func (ctrl *HouseController) Update(c *gin.Context) {
	var payload housePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadPayload(c, err)
		return
	}
	house, err := ctrl.HouseSvc.Update(c.Param("id"), payload.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, house)
}

// DELETE /houses/:id
func (ctrl *HouseController) Delete(c *gin.Context) {
	if err := ctrl.HouseSvc.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "House deleted successfully")
}
