package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rohanpawar9921/Swasthya/internal/domain"
	"github.com/Rohanpawar9921/Swasthya/internal/repository"
)

func floatPtr(v float64) *float64 { return &v }

func newTestSensorService() SensorService {
	return NewSensorService(repository.NewMemorySensorsRepo(), zap.NewNop())
}

func ingestReading(t *testing.T, svc SensorService, area string, aqi float64, admissions int, score float64) {
	t.Helper()
	_, err := svc.Ingest(context.Background(), IngestReadingRequest{
		Location:   domain.Location{Area: area},
		AirQuality: domain.AirQuality{AQI: aqi, PM25: floatPtr(aqi / 2)},
		HealthImpact: domain.HealthImpact{
			HospitalAdmissions: &admissions,
			HealthImpactScore:  &score,
		},
	})
	require.NoError(t, err)
}

func TestSensorService_IngestDefaultsTimestamp(t *testing.T) {
	svc := newTestSensorService()

	before := time.Now().UTC().Add(-time.Second)
	reading, err := svc.Ingest(context.Background(), IngestReadingRequest{
		Location:   domain.Location{Area: "Pune"},
		AirQuality: domain.AirQuality{AQI: 87.5},
	})
	require.NoError(t, err)
	require.NotEmpty(t, reading.ReadingID)
	require.True(t, reading.Timestamp.After(before))
}

func TestSensorService_IngestExplicitTimestamp(t *testing.T) {
	svc := newTestSensorService()

	ts := time.Date(2026, 3, 15, 8, 30, 0, 0, time.UTC)
	reading, err := svc.Ingest(context.Background(), IngestReadingRequest{
		Timestamp:  &ts,
		Location:   domain.Location{Area: "Pune"},
		AirQuality: domain.AirQuality{AQI: 42},
	})
	require.NoError(t, err)
	require.Equal(t, ts, reading.Timestamp)
}

func TestSensorService_IngestValidation(t *testing.T) {
	svc := newTestSensorService()
	ctx := context.Background()

	_, err := svc.Ingest(ctx, IngestReadingRequest{
		AirQuality: domain.AirQuality{AQI: 42},
	})
	require.Error(t, err)
	require.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = svc.Ingest(ctx, IngestReadingRequest{
		Location: domain.Location{Area: "Pune"},
	})
	require.Error(t, err)
	require.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestSensorService_ByArea(t *testing.T) {
	svc := newTestSensorService()

	ingestReading(t, svc, "Pune", 80, 3, 5.5)
	ingestReading(t, svc, "Mumbai", 120, 7, 7.0)
	ingestReading(t, svc, "Pune", 90, 2, 6.0)

	readings, err := svc.ByArea(context.Background(), "Pune")
	require.NoError(t, err)
	require.Len(t, readings, 2)
	for _, r := range readings {
		require.Equal(t, "Pune", r.Location.Area)
	}

	_, err = svc.ByArea(context.Background(), "  ")
	require.Error(t, err)
	require.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestSensorService_Stats(t *testing.T) {
	svc := newTestSensorService()
	ctx := context.Background()

	ingestReading(t, svc, "Pune", 80, 3, 5.0)
	ingestReading(t, svc, "Mumbai", 120, 7, 7.0)
	ingestReading(t, svc, "Delhi", 100, 2, 6.0)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, stats.ReadingCount)
	require.InDelta(t, 100.0, stats.AvgAQI, 0.001)
	require.Equal(t, 120.0, stats.MaxAQI)
	require.Equal(t, 80.0, stats.MinAQI)
	require.Equal(t, 12, stats.TotalAdmissions)
	require.InDelta(t, 6.0, stats.AvgHealthScore, 0.001)
}

func TestSensorService_StatsEmpty(t *testing.T) {
	svc := newTestSensorService()

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, stats.ReadingCount)
	require.Zero(t, stats.AvgAQI)
}
