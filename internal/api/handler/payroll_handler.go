package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"cz4r/internal/dto"
	"cz4r/internal/service"
	"cz4r/pkg/response"
)

// PayrollHandler per-worker pay period reports
type PayrollHandler struct {
	payrollSvc service.PayrollService
}

// NewPayrollHandler creates a PayrollHandler.
func NewPayrollHandler(payrollSvc service.PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollSvc: payrollSvc}
}

func readWorkerDataQuery(c *gin.Context) (*dto.WorkerDataQuery, error) {
	f := newFields(c.Request.URL.Query())
	q := &dto.WorkerDataQuery{
		WorkerID: f.int64("worker").Ptr(),
		From:     f.date("start_date").Ptr(),
		To:       f.date("end_date").Ptr(),
	}
	return q, f.err
}

// WorkerData GET /admin/worker-data?worker=&start_date=&end_date=
func (h *PayrollHandler) WorkerData(c *gin.Context) {
	q, err := readWorkerDataQuery(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	page, err := h.payrollSvc.WorkerData(c.Request.Context(), q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.HTML(c, http.StatusOK, "workerdata.html", gin.H{"title": "CZ4R Payroll", "page": page})
}

// Export GET /admin/api/v1/worker-data.xlsx
func (h *PayrollHandler) Export(c *gin.Context) {
	q, err := readWorkerDataQuery(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	buf, filename, err := h.payrollSvc.Export(c.Request.Context(), q)
	if err != nil {
		response.Fail(c, err)
		return
	}

	const xlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsx, buf.Bytes())
}
