package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Rohanpawar9921/Swasthya/internal/service"
)

// SensorHandler 传感器读数读写（公开接口，直通 Store）
type SensorHandler struct {
	sensors service.SensorService
	logger  *zap.Logger
}

func NewSensorHandler(sensors service.SensorService, logger *zap.Logger) *SensorHandler {
	return &SensorHandler{sensors: sensors, logger: logger}
}

// List 最近 50 条读数
func (h *SensorHandler) List(w http.ResponseWriter, r *http.Request) {
	readings, err := h.sensors.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, readings)
}

// Latest 最近 10 条读数
func (h *SensorHandler) Latest(w http.ResponseWriter, r *http.Request) {
	readings, err := h.sensors.Latest(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, readings)
}

// ByArea 按区域查询（路径段 /api/sensor-data/location/{area}）
func (h *SensorHandler) ByArea(w http.ResponseWriter, r *http.Request) {
	area := strings.TrimPrefix(r.URL.Path, "/api/sensor-data/location/")
	if area == "" || strings.Contains(area, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	readings, err := h.sensors.ByArea(r.Context(), area)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, readings)
}

// Ingest 写入一条读数
func (h *SensorHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req service.IngestReadingRequest
	if err := readBodyJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("Invalid request body"))
		return
	}

	reading, err := h.sensors.Ingest(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, reading)
}

// Stats 全历史聚合统计
func (h *SensorHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.sensors.Stats(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
