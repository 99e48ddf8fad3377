package httpapi

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Rohanpawar9921/Swasthya/internal/service"
)

// HealthInputHandler 健康数据上报与统计
type HealthInputHandler struct {
	reports service.ReportService
	logger  *zap.Logger
	now     func() time.Time
}

func NewHealthInputHandler(reports service.ReportService, logger *zap.Logger) *HealthInputHandler {
	return &HealthInputHandler{
		reports: reports,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Submit 提交健康数据（user/hospital 角色，角色门已在路由层把关）
func (h *HealthInputHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusInternalServerError, Fail("Server error"))
		return
	}

	var req service.SubmitReportRequest
	if err := readBodyJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("Invalid request body"))
		return
	}

	view, err := h.reports.Submit(r.Context(), user, req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, Ok("Health data submitted successfully", map[string]any{
		"data": view,
	}))
}

// MySubmissions 查询调用者自己的上报记录（最近 50 条）
func (h *HealthInputHandler) MySubmissions(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusInternalServerError, Fail("Server error"))
		return
	}

	views, err := h.reports.MySubmissions(r.Context(), user.UserID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// All 全量上报列表（government 角色），支持 status/role/limit 过滤
func (h *HealthInputHandler) All(w http.ResponseWriter, r *http.Request) {
	views, err := h.reports.ListAll(r.Context(), service.ListReportsRequest{
		Status: r.URL.Query().Get("status"),
		Role:   r.URL.Query().Get("role"),
		Limit:  parseIntQuery(r, "limit", 100),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// Stats 上报统计（任意已认证角色）
func (h *HealthInputHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reports.Stats(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Export 导出全部上报为 Excel（government 角色）
func (h *HealthInputHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.reports.ExportXLSX(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+service.ExportFilename(h.now())+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
