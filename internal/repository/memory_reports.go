package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Rohanpawar9921/Swasthya/internal/domain"
)

// MemoryReportsRepo 内存健康上报仓库（无 DB 模式 / 单元测试用）
type MemoryReportsRepo struct {
	mu      sync.RWMutex
	reports []domain.HealthReport // append order
}

func NewMemoryReportsRepo() *MemoryReportsRepo {
	return &MemoryReportsRepo{}
}

var _ ReportsRepo = (*MemoryReportsRepo)(nil)

func (r *MemoryReportsRepo) CreateReport(_ context.Context, report *domain.HealthReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, *report)
	return nil
}

func (r *MemoryReportsRepo) ListByUser(_ context.Context, userID string, limit int) ([]domain.HealthReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.HealthReport, 0)
	for _, rep := range r.reports {
		if rep.Submitter.UserID == userID {
			out = append(out, rep)
		}
	}
	sortBySubmittedDesc(out)
	return clampReports(out, limit), nil
}

func (r *MemoryReportsRepo) List(_ context.Context, f ReportFilter) ([]domain.HealthReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.HealthReport, 0)
	for _, rep := range r.reports {
		if f.Status != "" && rep.Status != f.Status {
			continue
		}
		if f.Role != "" && rep.Submitter.Role != f.Role {
			continue
		}
		out = append(out, rep)
	}
	sortBySubmittedDesc(out)
	return clampReports(out, f.Limit), nil
}

func (r *MemoryReportsRepo) Stats(_ context.Context, recentSince time.Time, topN int) (*ReportStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &ReportStats{
		TopSymptoms: []TermCount{},
		TopDiseases: []TermCount{},
	}
	symptoms := map[string]int{}
	diseases := map[string]int{}

	for _, rep := range r.reports {
		stats.TotalSubmissions++
		switch rep.Submitter.Role {
		case domain.RoleUser:
			stats.UserSubmissions++
		case domain.RoleHospital:
			stats.HospitalSubmissions++
		}
		if rep.SubmittedAt.After(recentSince) {
			stats.RecentSubmissions++
		}
		if d := rep.UserData(); d != nil {
			symptoms[d.Symptom]++
			diseases[d.Disease]++
		}
	}

	stats.TopSymptoms = topTerms(symptoms, topN)
	stats.TopDiseases = topTerms(diseases, topN)
	return stats, nil
}

func sortBySubmittedDesc(reports []domain.HealthReport) {
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].SubmittedAt.After(reports[j].SubmittedAt)
	})
}

func clampReports(reports []domain.HealthReport, limit int) []domain.HealthReport {
	if limit > 0 && len(reports) > limit {
		return reports[:limit]
	}
	return reports
}

// topTerms ranks by count desc, term asc for equal counts (stable output).
func topTerms(counts map[string]int, n int) []TermCount {
	out := make([]TermCount, 0, len(counts))
	for term, count := range counts {
		out = append(out, TermCount{Term: term, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Term < out[j].Term
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
