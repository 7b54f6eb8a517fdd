package system_healthcheck

import (
	"net/http"

	"taskboard/internal/util/logger"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

type HealthcheckController struct{}

func GetHealthcheckController() *HealthcheckController {
	return &HealthcheckController{}
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/system/healthcheck", c.Healthcheck)
}

// Healthcheck
// @Summary Service health and host resource usage
// @Tags system
// @Produce json
// @Success 200 {object} map[string]any
// @Router /system/healthcheck [get]
func (c *HealthcheckController) Healthcheck(ctx *gin.Context) {
	response := gin.H{"status": "ok"}

	if memoryStats, err := mem.VirtualMemory(); err == nil {
		response["memory_used_percent"] = memoryStats.UsedPercent
	} else {
		logger.GetLogger().Warn("failed to read memory stats", "error", err)
	}

	if diskStats, err := disk.Usage("/"); err == nil {
		response["disk_used_percent"] = diskStats.UsedPercent
	} else {
		logger.GetLogger().Warn("failed to read disk stats", "error", err)
	}

	ctx.JSON(http.StatusOK, response)
}
