package controllers

import (
	"net/http"
	"strconv"
	"time"

	"residence-backend/services"
	"residence-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardSvc *services.DashboardService
}

func NewDashboardController(svc *services.DashboardService) *DashboardController {
	return &DashboardController{DashboardSvc: svc}
}

// dateQuery reads an optional YYYY-MM-DD query parameter, defaulting to today.
func dateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return utils.Today(), true
	}
	d, err := utils.ParseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid date format: " + raw})
		return time.Time{}, false
	}
	return d, true
}

// GET /dashboard/metrics
func (ctrl *DashboardController) Metrics(c *gin.Context) {
	date, ok := dateQuery(c, "date")
	if !ok {
		return
	}
	metrics, err := ctrl.DashboardSvc.Metrics(date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// GET /dashboard/occupancy
func (ctrl *DashboardController) Occupancy(c *gin.Context) {
	date, ok := dateQuery(c, "date")
	if !ok {
		return
	}
	occupancy, err := ctrl.DashboardSvc.Occupancy(date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, occupancy)
}

// GET /dashboard/revenue?dateFrom=...&dateTo=...&days=15
func (ctrl *DashboardController) Revenue(c *gin.Context) {
	end := utils.Today()
	days := 15
	if raw := c.Query("days"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			days = v
		}
	}
	start := end.AddDate(0, 0, -(days - 1))

	if raw := c.Query("dateFrom"); raw != "" {
		d, err := utils.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid date format: " + raw})
			return
		}
		start = d
	}
	if raw := c.Query("dateTo"); raw != "" {
		d, err := utils.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid date format: " + raw})
			return
		}
		end = d
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "dateTo must not precede dateFrom"})
		return
	}

	series, err := ctrl.DashboardSvc.RevenueSeries(start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

// GET /dashboard
func (ctrl *DashboardController) Dashboard(c *gin.Context) {
	date, ok := dateQuery(c, "date")
	if !ok {
		return
	}
	dashboard, err := ctrl.DashboardSvc.Dashboard(date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// GET /dashboard/house-stats
func (ctrl *DashboardController) HouseStats(c *gin.Context) {
	stats, err := ctrl.DashboardSvc.HouseStatsAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /dashboard/period-stats?year=YYYY&month=MM
func (ctrl *DashboardController) PeriodStats(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "year query parameter is required"})
		return
	}
	month := 0
	if raw := c.Query("month"); raw != "" {
		month, err = strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "month must be between 1 and 12"})
			return
		}
	}

	stats, err := ctrl.DashboardSvc.PeriodStatsFor(year, month)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
