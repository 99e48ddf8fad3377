package repository

import (
	"context"

	"github.com/Rohanpawar9921/Swasthya/internal/domain"
)

// SensorStats 传感器读数聚合统计（全历史，按需重算）
type SensorStats struct {
	AvgAQI          float64 `json:"avgAQI"`
	MaxAQI          float64 `json:"maxAQI"`
	MinAQI          float64 `json:"minAQI"`
	TotalAdmissions int     `json:"totalAdmissions"`
	AvgHealthScore  float64 `json:"avgHealthScore"`
	ReadingCount    int     `json:"readingCount"`
}

// SensorsRepo 传感器读数仓库接口（Sensor Store，读写直通，无业务逻辑）
type SensorsRepo interface {
	CreateReading(ctx context.Context, r *domain.SensorReading) error

	// ListReadings timestamp 倒序
	ListReadings(ctx context.Context, limit int) ([]domain.SensorReading, error)

	// ListByArea 按区域查询，timestamp 倒序
	ListByArea(ctx context.Context, area string, limit int) ([]domain.SensorReading, error)

	Stats(ctx context.Context) (*SensorStats, error)
}
