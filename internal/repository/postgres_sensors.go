package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Rohanpawar9921/Swasthya/internal/domain"
)

// PostgresSensorsRepo 传感器读数仓库 PostgreSQL 实现
type PostgresSensorsRepo struct {
	db *sql.DB
}

func NewPostgresSensorsRepo(db *sql.DB) *PostgresSensorsRepo {
	return &PostgresSensorsRepo{db: db}
}

var _ SensorsRepo = (*PostgresSensorsRepo)(nil)

const readingColumns = `reading_id::text, ts, area, lat, lng,
       aqi, pm10, pm25, no2, so2, o3,
       temperature, humidity, wind_speed,
       respiratory_cases, cardiovascular_cases, hospital_admissions,
       health_impact_score, health_impact_class`

func (r *PostgresSensorsRepo) CreateReading(ctx context.Context, reading *domain.SensorReading) error {
	query := `
		INSERT INTO sensor_readings (reading_id, ts, area, lat, lng,
		                             aqi, pm10, pm25, no2, so2, o3,
		                             temperature, humidity, wind_speed,
		                             respiratory_cases, cardiovascular_cases, hospital_admissions,
		                             health_impact_score, health_impact_class)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	var impactClass sql.NullString
	if reading.HealthImpact.HealthImpactClass != "" {
		impactClass = sql.NullString{String: reading.HealthImpact.HealthImpactClass, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query,
		reading.ReadingID,
		reading.Timestamp,
		reading.Location.Area,
		reading.Location.Lat,
		reading.Location.Lng,
		reading.AirQuality.AQI,
		reading.AirQuality.PM10,
		reading.AirQuality.PM25,
		reading.AirQuality.NO2,
		reading.AirQuality.SO2,
		reading.AirQuality.O3,
		reading.Weather.Temperature,
		reading.Weather.Humidity,
		reading.Weather.WindSpeed,
		reading.HealthImpact.RespiratoryCases,
		reading.HealthImpact.CardiovascularCases,
		reading.HealthImpact.HospitalAdmissions,
		reading.HealthImpact.HealthImpactScore,
		impactClass,
	)
	if err != nil {
		return fmt.Errorf("failed to create sensor reading: %w", err)
	}
	return nil
}

func (r *PostgresSensorsRepo) ListReadings(ctx context.Context, limit int) ([]domain.SensorReading, error) {
	query := fmt.Sprintf(`
		SELECT %s
		  FROM sensor_readings
		 ORDER BY ts DESC
		 LIMIT $1
	`, readingColumns)

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sensor readings: %w", err)
	}
	defer rows.Close()
	return scanReadings(rows)
}

func (r *PostgresSensorsRepo) ListByArea(ctx context.Context, area string, limit int) ([]domain.SensorReading, error) {
	query := fmt.Sprintf(`
		SELECT %s
		  FROM sensor_readings
		 WHERE area = $1
		 ORDER BY ts DESC
		 LIMIT $2
	`, readingColumns)

	rows, err := r.db.QueryContext(ctx, query, area, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sensor readings by area: %w", err)
	}
	defer rows.Close()
	return scanReadings(rows)
}

func (r *PostgresSensorsRepo) Stats(ctx context.Context) (*SensorStats, error) {
	query := `
		SELECT COALESCE(AVG(aqi), 0),
		       COALESCE(MAX(aqi), 0),
		       COALESCE(MIN(aqi), 0),
		       COALESCE(SUM(hospital_admissions), 0),
		       COALESCE(AVG(health_impact_score), 0),
		       COUNT(*)
		  FROM sensor_readings
	`
	stats := &SensorStats{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.AvgAQI,
		&stats.MaxAQI,
		&stats.MinAQI,
		&stats.TotalAdmissions,
		&stats.AvgHealthScore,
		&stats.ReadingCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute sensor stats: %w", err)
	}
	return stats, nil
}

func scanReadings(rows *sql.Rows) ([]domain.SensorReading, error) {
	out := []domain.SensorReading{}
	for rows.Next() {
		var reading domain.SensorReading
		var lat, lng, pm10, pm25, no2, so2, o3 sql.NullFloat64
		var temperature, humidity, windSpeed, impactScore sql.NullFloat64
		var respiratory, cardiovascular, admissions sql.NullInt64
		var impactClass sql.NullString

		err := rows.Scan(
			&reading.ReadingID,
			&reading.Timestamp,
			&reading.Location.Area,
			&lat,
			&lng,
			&reading.AirQuality.AQI,
			&pm10,
			&pm25,
			&no2,
			&so2,
			&o3,
			&temperature,
			&humidity,
			&windSpeed,
			&respiratory,
			&cardiovascular,
			&admissions,
			&impactScore,
			&impactClass,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sensor reading: %w", err)
		}

		reading.Location.Lat = nullFloat(lat)
		reading.Location.Lng = nullFloat(lng)
		reading.AirQuality.PM10 = nullFloat(pm10)
		reading.AirQuality.PM25 = nullFloat(pm25)
		reading.AirQuality.NO2 = nullFloat(no2)
		reading.AirQuality.SO2 = nullFloat(so2)
		reading.AirQuality.O3 = nullFloat(o3)
		reading.Weather.Temperature = nullFloat(temperature)
		reading.Weather.Humidity = nullFloat(humidity)
		reading.Weather.WindSpeed = nullFloat(windSpeed)
		reading.HealthImpact.RespiratoryCases = nullInt(respiratory)
		reading.HealthImpact.CardiovascularCases = nullInt(cardiovascular)
		reading.HealthImpact.HospitalAdmissions = nullInt(admissions)
		reading.HealthImpact.HealthImpactScore = nullFloat(impactScore)
		reading.HealthImpact.HealthImpactClass = impactClass.String

		out = append(out, reading)
	}
	return out, rows.Err()
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
