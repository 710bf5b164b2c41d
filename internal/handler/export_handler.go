package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindfulme/internal/service"
)

const msgNoExportData = "No data to export."

// DownloadLogs 以 CSV 附件形式下载全部活动记录
func (a *API) DownloadLogs(c *gin.Context) {
	data, err := a.exports.CSV(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoActivities) {
			a.metrics.observeExport("empty")
			c.String(http.StatusNotFound, msgNoExportData)
			return
		}
		a.metrics.observeExport("error")
		log.Printf("[export] request=%s: %v", requestID(c), err)
		c.String(http.StatusInternalServerError, "Failed to export data.")
		return
	}

	a.metrics.observeExport("ok")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", service.ExportFileName(a.now())))
	c.Data(http.StatusOK, "text/csv", data)
}
