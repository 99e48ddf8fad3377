package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/Rohanpawar9921/Swasthya/internal/domain"
)

// MemorySensorsRepo 内存传感器读数仓库（无 DB 模式 / 单元测试用）
type MemorySensorsRepo struct {
	mu       sync.RWMutex
	readings []domain.SensorReading
}

func NewMemorySensorsRepo() *MemorySensorsRepo {
	return &MemorySensorsRepo{}
}

var _ SensorsRepo = (*MemorySensorsRepo)(nil)

func (r *MemorySensorsRepo) CreateReading(_ context.Context, reading *domain.SensorReading) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readings = append(r.readings, *reading)
	return nil
}

func (r *MemorySensorsRepo) ListReadings(_ context.Context, limit int) ([]domain.SensorReading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.SensorReading, len(r.readings))
	copy(out, r.readings)
	sortByTimestampDesc(out)
	return clampReadings(out, limit), nil
}

func (r *MemorySensorsRepo) ListByArea(_ context.Context, area string, limit int) ([]domain.SensorReading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.SensorReading, 0)
	for _, reading := range r.readings {
		if reading.Location.Area == area {
			out = append(out, reading)
		}
	}
	sortByTimestampDesc(out)
	return clampReadings(out, limit), nil
}

func (r *MemorySensorsRepo) Stats(_ context.Context) (*SensorStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &SensorStats{}
	if len(r.readings) == 0 {
		return stats, nil
	}

	var aqiSum, scoreSum float64
	var scoreCount int
	stats.MinAQI = r.readings[0].AirQuality.AQI
	stats.MaxAQI = r.readings[0].AirQuality.AQI

	for _, reading := range r.readings {
		aqi := reading.AirQuality.AQI
		aqiSum += aqi
		if aqi < stats.MinAQI {
			stats.MinAQI = aqi
		}
		if aqi > stats.MaxAQI {
			stats.MaxAQI = aqi
		}
		if reading.HealthImpact.HospitalAdmissions != nil {
			stats.TotalAdmissions += *reading.HealthImpact.HospitalAdmissions
		}
		if reading.HealthImpact.HealthImpactScore != nil {
			scoreSum += *reading.HealthImpact.HealthImpactScore
			scoreCount++
		}
	}

	stats.ReadingCount = len(r.readings)
	stats.AvgAQI = aqiSum / float64(len(r.readings))
	if scoreCount > 0 {
		stats.AvgHealthScore = scoreSum / float64(scoreCount)
	}
	return stats, nil
}

func sortByTimestampDesc(readings []domain.SensorReading) {
	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].Timestamp.After(readings[j].Timestamp)
	})
}

func clampReadings(readings []domain.SensorReading, limit int) []domain.SensorReading {
	if limit > 0 && len(readings) > limit {
		return readings[:limit]
	}
	return readings
}
