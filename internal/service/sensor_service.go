package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Rohanpawar9921/Swasthya/internal/domain"
	"github.com/Rohanpawar9921/Swasthya/internal/repository"
	"github.com/google/uuid"
)

const (
	sensorListLimit   = 50
	sensorLatestLimit = 10
	sensorAreaLimit   = 20
)

// SensorService 传感器读数读写与统计（直通 Store，无业务规则）
type SensorService interface {
	List(ctx context.Context) ([]domain.SensorReading, error)
	Latest(ctx context.Context) ([]domain.SensorReading, error)
	ByArea(ctx context.Context, area string) ([]domain.SensorReading, error)
	Ingest(ctx context.Context, req IngestReadingRequest) (*domain.SensorReading, error)
	Stats(ctx context.Context) (*repository.SensorStats, error)
}

// IngestReadingRequest 读数写入载荷（与 dashboard 采集端对齐）
type IngestReadingRequest struct {
	Timestamp    *time.Time          `json:"timestamp,omitempty"`
	Location     domain.Location     `json:"location"`
	AirQuality   domain.AirQuality   `json:"airQuality"`
	Weather      domain.Weather      `json:"weather"`
	HealthImpact domain.HealthImpact `json:"healthImpact"`
}

type sensorService struct {
	sensors repository.SensorsRepo
	logger  *zap.Logger
	now     func() time.Time
}

func NewSensorService(sensors repository.SensorsRepo, logger *zap.Logger) SensorService {
	return &sensorService{
		sensors: sensors,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *sensorService) List(ctx context.Context) ([]domain.SensorReading, error) {
	readings, err := s.sensors.ListReadings(ctx, sensorListLimit)
	if err != nil {
		return nil, domain.Internal("failed to list sensor readings", err)
	}
	return readings, nil
}

func (s *sensorService) Latest(ctx context.Context) ([]domain.SensorReading, error) {
	readings, err := s.sensors.ListReadings(ctx, sensorLatestLimit)
	if err != nil {
		return nil, domain.Internal("failed to list latest sensor readings", err)
	}
	return readings, nil
}

func (s *sensorService) ByArea(ctx context.Context, area string) ([]domain.SensorReading, error) {
	area = strings.TrimSpace(area)
	if area == "" {
		return nil, domain.Invalid("", "Area is required")
	}
	readings, err := s.sensors.ListByArea(ctx, area, sensorAreaLimit)
	if err != nil {
		return nil, domain.Internal("failed to list sensor readings by area", err)
	}
	return readings, nil
}

func (s *sensorService) Ingest(ctx context.Context, req IngestReadingRequest) (*domain.SensorReading, error) {
	if strings.TrimSpace(req.Location.Area) == "" {
		return nil, domain.Invalid(domain.ReasonMissingLocation, "Location area is required")
	}
	if req.AirQuality.AQI <= 0 {
		return nil, domain.Invalid("", "airQuality.AQI is required")
	}

	ts := s.now()
	if req.Timestamp != nil && !req.Timestamp.IsZero() {
		ts = req.Timestamp.UTC()
	}

	reading := &domain.SensorReading{
		ReadingID: uuid.NewString(),
		Timestamp: ts,
		Location: domain.Location{
			Area: strings.TrimSpace(req.Location.Area),
			Lat:  req.Location.Lat,
			Lng:  req.Location.Lng,
		},
		AirQuality:   req.AirQuality,
		Weather:      req.Weather,
		HealthImpact: req.HealthImpact,
	}

	if err := s.sensors.CreateReading(ctx, reading); err != nil {
		return nil, domain.Internal("failed to persist sensor reading", err)
	}

	s.logger.Debug("Sensor reading stored",
		zap.String("reading_id", reading.ReadingID),
		zap.String("area", reading.Location.Area),
		zap.Float64("aqi", reading.AirQuality.AQI),
	)
	return reading, nil
}

func (s *sensorService) Stats(ctx context.Context) (*repository.SensorStats, error) {
	stats, err := s.sensors.Stats(ctx)
	if err != nil {
		return nil, domain.Internal("failed to compute sensor stats", err)
	}
	return stats, nil
}
