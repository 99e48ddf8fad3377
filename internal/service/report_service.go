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
	mySubmissionsLimit = 50
	defaultListLimit   = 100
	recentWindow       = 24 * time.Hour
	topTermCount       = 5
)

// ReportService 健康上报：提交、查询、统计、导出
type ReportService interface {
	Submit(ctx context.Context, submitter *domain.User, req SubmitReportRequest) (*ReportView, error)
	MySubmissions(ctx context.Context, userID string) ([]ReportView, error)
	ListAll(ctx context.Context, req ListReportsRequest) ([]ReportView, error)
	Stats(ctx context.Context) (*repository.ReportStats, error)
	ExportXLSX(ctx context.Context) ([]byte, error)
}

// ListReportsRequest 政府侧全量查询过滤条件
type ListReportsRequest struct {
	Status string
	Role   string
	Limit  int
}

// ReportView 对外返回的上报视图。非本角色的载荷字段整体缺省，
// 不会以空值形式残留。
type ReportView struct {
	ID           string                 `json:"id"`
	UserID       string                 `json:"userId"`
	UserRole     domain.Role            `json:"userRole"`
	UserName     string                 `json:"userName"`
	UserEmail    string                 `json:"userEmail"`
	Location     domain.Location        `json:"location"`
	Symptom      string                 `json:"symptom,omitempty"`
	Disease      string                 `json:"disease,omitempty"`
	HospitalData []domain.HospitalEntry `json:"hospitalData,omitempty"`
	Status       domain.ReportStatus    `json:"status"`
	SubmittedAt  time.Time              `json:"submittedAt"`
}

func newReportView(r *domain.HealthReport) ReportView {
	view := ReportView{
		ID:          r.ReportID,
		UserID:      r.Submitter.UserID,
		UserRole:    r.Submitter.Role,
		UserName:    r.Submitter.Name,
		UserEmail:   r.Submitter.Email,
		Location:    r.Location,
		Status:      r.Status,
		SubmittedAt: r.SubmittedAt,
	}
	if d := r.UserData(); d != nil {
		view.Symptom = d.Symptom
		view.Disease = d.Disease
	}
	if d := r.HospitalData(); d != nil {
		view.HospitalData = d.Entries
	}
	return view
}

type reportService struct {
	reports repository.ReportsRepo
	logger  *zap.Logger
	now     func() time.Time
}

func NewReportService(reports repository.ReportsRepo, logger *zap.Logger) ReportService {
	return &reportService{
		reports: reports,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates the payload against the submitter's role and persists the
// normalized report. Validation failures reject the submission before any
// write happens; there is no partial persistence.
func (s *reportService) Submit(ctx context.Context, submitter *domain.User, req SubmitReportRequest) (*ReportView, error) {
	data, err := validateSubmission(submitter.Role, req)
	if err != nil {
		s.logger.Warn("Health submission rejected",
			zap.String("user_id", submitter.UserID),
			zap.String("role", string(submitter.Role)),
			zap.String("reason", err.Error()),
		)
		return nil, err
	}

	report := &domain.HealthReport{
		ReportID: uuid.NewString(),
		Submitter: domain.Submitter{
			UserID: submitter.UserID,
			Role:   submitter.Role,
			Name:   submitter.Name,
			Email:  submitter.Email,
		},
		Location: domain.Location{
			Area: strings.TrimSpace(req.Location.Area),
			Lat:  req.Location.Lat,
			Lng:  req.Location.Lng,
		},
		Data:        data,
		Status:      domain.StatusPending,
		SubmittedAt: s.now(),
	}

	if err := s.reports.CreateReport(ctx, report); err != nil {
		return nil, domain.Internal("failed to persist health report", err)
	}

	s.logger.Info("Health data submitted",
		zap.String("report_id", report.ReportID),
		zap.String("user_id", submitter.UserID),
		zap.String("role", string(submitter.Role)),
		zap.String("area", report.Location.Area),
	)
	view := newReportView(report)
	return &view, nil
}

func (s *reportService) MySubmissions(ctx context.Context, userID string) ([]ReportView, error) {
	reports, err := s.reports.ListByUser(ctx, userID, mySubmissionsLimit)
	if err != nil {
		return nil, domain.Internal("failed to list submissions", err)
	}
	return newReportViews(reports), nil
}

func (s *reportService) ListAll(ctx context.Context, req ListReportsRequest) ([]ReportView, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	reports, err := s.reports.List(ctx, repository.ReportFilter{
		Status: domain.ReportStatus(strings.TrimSpace(req.Status)),
		Role:   domain.Role(strings.TrimSpace(req.Role)),
		Limit:  limit,
	})
	if err != nil {
		return nil, domain.Internal("failed to list reports", err)
	}
	return newReportViews(reports), nil
}

func (s *reportService) Stats(ctx context.Context) (*repository.ReportStats, error) {
	stats, err := s.reports.Stats(ctx, s.now().Add(-recentWindow), topTermCount)
	if err != nil {
		return nil, domain.Internal("failed to compute report stats", err)
	}
	return stats, nil
}

func newReportViews(reports []domain.HealthReport) []ReportView {
	out := make([]ReportView, 0, len(reports))
	for i := range reports {
		out = append(out, newReportView(&reports[i]))
	}
	return out
}
