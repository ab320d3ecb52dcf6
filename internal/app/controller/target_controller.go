package controller

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/recipe-box/internal/app/model"
	"github.com/ikkim/recipe-box/internal/app/service"
	apperrors "github.com/ikkim/recipe-box/internal/errors"
	"github.com/ikkim/recipe-box/internal/middleware"
)

const (
	MsgTargetsSaved   = "Targets saved successfully."
	MsgInvalidTargets = "Invalid input."
)

// TargetController serves the monitoring dashboard's /load and /save
type TargetController struct {
	targetService service.TargetService
}

func NewTargetController(targetService service.TargetService) *TargetController {
	return &TargetController{targetService: targetService}
}

// Load 타겟 그룹 목록
func (ctrl *TargetController) Load(c *gin.Context) {
	groups, err := ctrl.targetService.LoadGroups()
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to load targets", err)
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, groups)
}

// Save 타겟 그룹 저장 후 Prometheus reload
func (ctrl *TargetController) Save(c *gin.Context) {
	var raw []json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil || raw == nil {
		middleware.GetLoggerFromContext(c).Warn("Rejected targets payload", map[string]interface{}{
			"code": apperrors.TargetsInvalidInput,
		})
		c.String(http.StatusBadRequest, MsgInvalidTargets)
		return
	}

	// entries that are not {group, targets[]} objects are skipped
	groups := make([]model.TargetGroup, 0, len(raw))
	for _, item := range raw {
		var g model.TargetGroup
		if err := json.Unmarshal(item, &g); err != nil {
			continue
		}
		groups = append(groups, g)
	}

	if err := ctrl.targetService.SaveGroups(c.Request.Context(), groups); err != nil {
		apperrors.InternalError(c, "Failed to save targets.")
		return
	}
	c.String(http.StatusOK, MsgTargetsSaved)
}
