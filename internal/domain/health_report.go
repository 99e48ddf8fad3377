package domain

import (
	"fmt"
	"strings"
	"time"
)

// ReportStatus 健康上报处理状态（状态流转由外部流程负责，本服务只写入默认值）
type ReportStatus string

const (
	StatusPending   ReportStatus = "pending"
	StatusProcessed ReportStatus = "processed"
	StatusArchived  ReportStatus = "archived"
)

// EntryCategory 医院上报条目分类
type EntryCategory string

const (
	CategoryRespiratory    EntryCategory = "respiratory"
	CategoryCardiovascular EntryCategory = "cardiovascular"
	CategoryOther          EntryCategory = "other"
)

// ParseEntryCategory normalizes a caller-supplied category; empty defaults to "other".
func ParseEntryCategory(s string) (EntryCategory, error) {
	switch EntryCategory(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return CategoryOther, nil
	case CategoryRespiratory:
		return CategoryRespiratory, nil
	case CategoryCardiovascular:
		return CategoryCardiovascular, nil
	case CategoryOther:
		return CategoryOther, nil
	default:
		return "", fmt.Errorf("invalid category %q", s)
	}
}

// Location 上报/读数位置
type Location struct {
	Area string   `json:"area"`
	Lat  *float64 `json:"lat,omitempty"`
	Lng  *float64 `json:"lng,omitempty"`
}

// ReportData 按角色区分的上报载荷。
// A report carries exactly one shape, selected by the submitter role at
// construction time; the non-applicable shape is never present as stray data.
type ReportData interface {
	reportData()
}

// UserReport 普通用户上报：单个 symptom/disease 对
type UserReport struct {
	Symptom string `json:"symptom"`
	Disease string `json:"disease"`
}

func (UserReport) reportData() {}

// HospitalEntry 医院上报条目
type HospitalEntry struct {
	Symptom      string        `json:"symptom"`
	Disease      string        `json:"disease"`
	PatientCount int           `json:"patientCount"`
	Category     EntryCategory `json:"category"`
}

// HospitalReport 医院上报：有序的多条目序列
type HospitalReport struct {
	Entries []HospitalEntry `json:"entries"`
}

func (HospitalReport) reportData() {}

// Submitter 提交者快照（提交时刻的去范式化副本，不是活引用）
type Submitter struct {
	UserID string `json:"userId"`
	Role   Role   `json:"userRole"`
	Name   string `json:"userName"`
	Email  string `json:"userEmail"`
}

// HealthReport 健康上报（对应 health_reports 表）。Append-only：本服务创建后不再修改。
type HealthReport struct {
	ReportID    string
	Submitter   Submitter
	Location    Location
	Data        ReportData
	Status      ReportStatus
	SubmittedAt time.Time
}

// UserData returns the user-shape payload, or nil when the report is hospital-shaped.
func (r *HealthReport) UserData() *UserReport {
	if d, ok := r.Data.(UserReport); ok {
		return &d
	}
	return nil
}

// HospitalData returns the hospital-shape payload, or nil for user reports.
func (r *HealthReport) HospitalData() *HospitalReport {
	if d, ok := r.Data.(HospitalReport); ok {
		return &d
	}
	return nil
}
