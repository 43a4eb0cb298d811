package shopping

import (
	"fmt"
	"net/http"

	shoppingService "meal-planner/internal/core/shopping"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// HandleExport 匯出單一餐計畫的購物清單
func (h *Handler) HandleExport(c *gin.Context) {
	format, ok := exportFormat(c)
	if !ok {
		return
	}

	list, ok := h.shoppingList(c)
	if !ok {
		return
	}
	writeExport(c, list.Sheet(), format, "shopping-list-"+list.MealPlanID)
}

// HandleConsolidatedExport 匯出合併購物清單
func (h *Handler) HandleConsolidatedExport(c *gin.Context) {
	format, ok := exportFormat(c)
	if !ok {
		return
	}

	list, ok := h.consolidated(c)
	if !ok {
		return
	}
	writeExport(c, list.Sheet(), format, "shopping-list-"+list.StartDate+"_"+list.EndDate)
}

func exportFormat(c *gin.Context) (shoppingService.Format, bool) {
	format, err := shoppingService.ParseFormat(c.Query("format"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, common.ErrUnsupportedFormat.Response(err.Error()))
		return "", false
	}
	return format, true
}

func writeExport(c *gin.Context, sheet shoppingService.Sheet, format shoppingService.Format, name string) {
	body, err := shoppingService.Export(sheet, format)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, name, format.Extension()))
	c.Data(http.StatusOK, format.ContentType(), body)
}
