package domain

import "time"

// AirQuality 空气质量指标（AQI 必填，分项污染物可选）
type AirQuality struct {
	AQI  float64  `json:"AQI"`
	PM10 *float64 `json:"PM10,omitempty"`
	PM25 *float64 `json:"PM25,omitempty"`
	NO2  *float64 `json:"NO2,omitempty"`
	SO2  *float64 `json:"SO2,omitempty"`
	O3   *float64 `json:"O3,omitempty"`
}

// Weather 气象指标
type Weather struct {
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	WindSpeed   *float64 `json:"windSpeed,omitempty"`
}

// HealthImpact 健康影响评估
type HealthImpact struct {
	RespiratoryCases    *int     `json:"respiratoryCases,omitempty"`
	CardiovascularCases *int     `json:"cardiovascularCases,omitempty"`
	HospitalAdmissions  *int     `json:"hospitalAdmissions,omitempty"`
	HealthImpactScore   *float64 `json:"healthImpactScore,omitempty"`
	HealthImpactClass   string   `json:"healthImpactClass,omitempty"` // Very Low / Low / Moderate / High / Very High
}

// SensorReading 环境传感器读数（对应 sensor_readings 表）
type SensorReading struct {
	ReadingID    string       `json:"id"`
	Timestamp    time.Time    `json:"timestamp"`
	Location     Location     `json:"location"`
	AirQuality   AirQuality   `json:"airQuality"`
	Weather      Weather      `json:"weather"`
	HealthImpact HealthImpact `json:"healthImpact"`
}
