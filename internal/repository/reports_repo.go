package repository

import (
	"context"
	"time"

	"github.com/Rohanpawar9921/Swasthya/internal/domain"
)

// ReportFilter 上报列表过滤条件（零值字段不过滤）
type ReportFilter struct {
	Status domain.ReportStatus
	Role   domain.Role
	Limit  int
}

// TermCount 词频统计项（top symptoms / top diseases）
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// ReportStats 上报统计
type ReportStats struct {
	TotalSubmissions    int         `json:"totalSubmissions"`
	UserSubmissions     int         `json:"userSubmissions"`
	HospitalSubmissions int         `json:"hospitalSubmissions"`
	RecentSubmissions   int         `json:"recentSubmissions"`
	TopSymptoms         []TermCount `json:"topSymptoms"`
	TopDiseases         []TermCount `json:"topDiseases"`
}

// ReportsRepo 健康上报仓库接口（Report Store）。上报只增不改。
type ReportsRepo interface {
	CreateReport(ctx context.Context, r *domain.HealthReport) error

	// ListByUser 按提交者查询，submitted_at 倒序
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.HealthReport, error)

	// List 全量/过滤查询，submitted_at 倒序
	List(ctx context.Context, f ReportFilter) ([]domain.HealthReport, error)

	// Stats recomputes submission counters on every call; recentSince bounds
	// the "recent" window and topN bounds the term rankings. Term rankings
	// cover user-role reports only.
	Stats(ctx context.Context, recentSince time.Time, topN int) (*ReportStats, error)
}
