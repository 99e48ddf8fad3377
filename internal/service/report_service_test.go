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

func newTestReportService() (ReportService, *repository.MemoryReportsRepo) {
	repo := repository.NewMemoryReportsRepo()
	return NewReportService(repo, zap.NewNop()), repo
}

func testUser(role domain.Role) *domain.User {
	return &domain.User{
		UserID: "user-" + string(role),
		Name:   "Test " + string(role),
		Email:  string(role) + "@example.com",
		Role:   role,
	}
}

func TestReportService_SubmitUserReport(t *testing.T) {
	svc, _ := newTestReportService()

	view, err := svc.Submit(context.Background(), testUser(domain.RoleUser), validUserRequest())
	require.NoError(t, err)
	require.NotEmpty(t, view.ID)
	require.Equal(t, domain.RoleUser, view.UserRole)
	require.Equal(t, "cough", view.Symptom)
	require.Equal(t, "asthma", view.Disease)
	require.Equal(t, domain.StatusPending, view.Status)
	// 非本角色的载荷字段不应残留
	require.Nil(t, view.HospitalData)
}

func TestReportService_SubmitHospitalReport(t *testing.T) {
	svc, _ := newTestReportService()

	view, err := svc.Submit(context.Background(), testUser(domain.RoleHospital), validHospitalRequest())
	require.NoError(t, err)
	require.Len(t, view.HospitalData, 2)
	require.Empty(t, view.Symptom)
	require.Empty(t, view.Disease)
}

// 校验失败不落库
func TestReportService_RejectedSubmissionWritesNothing(t *testing.T) {
	svc, repo := newTestReportService()
	ctx := context.Background()

	bad := validUserRequest()
	bad.Symptom = ""
	_, err := svc.Submit(ctx, testUser(domain.RoleUser), bad)
	require.Error(t, err)

	reports, err := repo.List(ctx, repository.ReportFilter{})
	require.NoError(t, err)
	require.Empty(t, reports)
}

func TestReportService_MySubmissions(t *testing.T) {
	svc, _ := newTestReportService()
	ctx := context.Background()

	alice := testUser(domain.RoleUser)
	bob := &domain.User{UserID: "user-bob", Name: "Bob", Email: "bob@example.com", Role: domain.RoleUser}

	_, err := svc.Submit(ctx, alice, validUserRequest())
	require.NoError(t, err)
	_, err = svc.Submit(ctx, bob, validUserRequest())
	require.NoError(t, err)

	views, err := svc.MySubmissions(ctx, alice.UserID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, alice.UserID, views[0].UserID)
}

func TestReportService_ListAllFilters(t *testing.T) {
	svc, _ := newTestReportService()
	ctx := context.Background()

	_, err := svc.Submit(ctx, testUser(domain.RoleUser), validUserRequest())
	require.NoError(t, err)
	_, err = svc.Submit(ctx, testUser(domain.RoleHospital), validHospitalRequest())
	require.NoError(t, err)

	all, err := svc.ListAll(ctx, ListReportsRequest{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	hospitalOnly, err := svc.ListAll(ctx, ListReportsRequest{Role: "hospital"})
	require.NoError(t, err)
	require.Len(t, hospitalOnly, 1)
	require.Equal(t, domain.RoleHospital, hospitalOnly[0].UserRole)

	pending, err := svc.ListAll(ctx, ListReportsRequest{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, pending, 2)

	archived, err := svc.ListAll(ctx, ListReportsRequest{Status: "archived"})
	require.NoError(t, err)
	require.Empty(t, archived)

	limited, err := svc.ListAll(ctx, ListReportsRequest{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
}

func TestReportService_Stats(t *testing.T) {
	svc, _ := newTestReportService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Submit(ctx, testUser(domain.RoleUser), validUserRequest())
		require.NoError(t, err)
	}
	fluReq := validUserRequest()
	fluReq.Symptom = "fever"
	fluReq.Disease = "flu"
	_, err := svc.Submit(ctx, testUser(domain.RoleUser), fluReq)
	require.NoError(t, err)
	_, err = svc.Submit(ctx, testUser(domain.RoleHospital), validHospitalRequest())
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, stats.TotalSubmissions)
	require.Equal(t, 4, stats.UserSubmissions)
	require.Equal(t, 1, stats.HospitalSubmissions)
	require.Equal(t, 5, stats.RecentSubmissions)

	// 高频词排前；医院条目不参与 top 统计
	require.NotEmpty(t, stats.TopSymptoms)
	require.Equal(t, "cough", stats.TopSymptoms[0].Term)
	require.Equal(t, 3, stats.TopSymptoms[0].Count)
	require.Equal(t, "asthma", stats.TopDiseases[0].Term)
}

func TestReportService_SubmitterSnapshot(t *testing.T) {
	svc, repo := newTestReportService()
	ctx := context.Background()

	submitter := testUser(domain.RoleUser)
	view, err := svc.Submit(ctx, submitter, validUserRequest())
	require.NoError(t, err)

	// 提交后改名不影响已落库的快照
	submitter.Name = "Renamed"

	reports, err := repo.ListByUser(ctx, submitter.UserID, 10)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	require.Equal(t, view.UserName, reports[0].Submitter.Name)
	require.NotEqual(t, "Renamed", reports[0].Submitter.Name)
}

func TestReportService_ViewTimestampsUTC(t *testing.T) {
	svc, _ := newTestReportService()

	before := time.Now().UTC().Add(-time.Second)
	view, err := svc.Submit(context.Background(), testUser(domain.RoleUser), validUserRequest())
	require.NoError(t, err)
	require.True(t, view.SubmittedAt.After(before))
	require.Equal(t, time.UTC, view.SubmittedAt.Location())
}
