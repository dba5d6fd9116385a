package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetPredictionHandler returns the latest inventory prediction for a center,
// generating one when none exists.
func (hb *HandlerBundle) GetPredictionHandler(c *gin.Context) {
	prediction, err := hb.Predictions.GetLatest(c.Param("id"))
	if err != nil {
		getLogger(c).Error("Failed to load prediction", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load prediction"})
		return
	}
	c.JSON(http.StatusOK, prediction)
}

// RegeneratePredictionHandler forces a fresh forecast run.
func (hb *HandlerBundle) RegeneratePredictionHandler(c *gin.Context) {
	var req struct {
		HorizonDays int `json:"horizonDays"`
	}
	_ = c.ShouldBindJSON(&req)

	prediction, err := hb.Predictions.Regenerate(c.Param("id"), req.HorizonDays)
	if err != nil {
		getLogger(c).Error("Failed to regenerate prediction", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to regenerate prediction"})
		return
	}
	c.JSON(http.StatusOK, prediction)
}

// GetPredictionHistoryHandler lists past forecast runs for a center.
func (hb *HandlerBundle) GetPredictionHistoryHandler(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	history, err := hb.Predictions.GetHistory(c.Param("id"), limit)
	if err != nil {
		getLogger(c).Error("Failed to load prediction history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}
	c.JSON(http.StatusOK, history)
}

// GetPredictionStatsHandler aggregates a center's forecast history.
func (hb *HandlerBundle) GetPredictionStatsHandler(c *gin.Context) {
	stats, err := hb.Predictions.GetStats(c.Param("id"))
	if err != nil {
		getLogger(c).Error("Failed to load prediction stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
