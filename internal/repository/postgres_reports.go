package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Rohanpawar9921/Swasthya/internal/domain"
)

// PostgresReportsRepo 健康上报仓库 PostgreSQL 实现。
// 角色载荷按形态落库：user 报告写 symptom/disease 列，hospital 报告写 hospital_data JSONB；
// 两种形态互斥（与表约束一致）。
type PostgresReportsRepo struct {
	db *sql.DB
}

func NewPostgresReportsRepo(db *sql.DB) *PostgresReportsRepo {
	return &PostgresReportsRepo{db: db}
}

var _ ReportsRepo = (*PostgresReportsRepo)(nil)

const reportColumns = `report_id::text, user_id::text, user_role, user_name, user_email,
       area, lat, lng, symptom, disease, hospital_data, status, submitted_at`

func (r *PostgresReportsRepo) CreateReport(ctx context.Context, report *domain.HealthReport) error {
	var symptom, disease sql.NullString
	var hospitalData []byte

	switch data := report.Data.(type) {
	case domain.UserReport:
		symptom = sql.NullString{String: data.Symptom, Valid: true}
		disease = sql.NullString{String: data.Disease, Valid: true}
	case domain.HospitalReport:
		encoded, err := json.Marshal(data.Entries)
		if err != nil {
			return fmt.Errorf("failed to encode hospital entries: %w", err)
		}
		hospitalData = encoded
	default:
		return fmt.Errorf("unsupported report data shape %T", report.Data)
	}

	query := `
		INSERT INTO health_reports (report_id, user_id, user_role, user_name, user_email,
		                            area, lat, lng, symptom, disease, hospital_data, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		report.ReportID,
		report.Submitter.UserID,
		string(report.Submitter.Role),
		report.Submitter.Name,
		report.Submitter.Email,
		report.Location.Area,
		report.Location.Lat,
		report.Location.Lng,
		symptom,
		disease,
		hospitalData,
		string(report.Status),
		report.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create health report: %w", err)
	}
	return nil
}

func (r *PostgresReportsRepo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.HealthReport, error) {
	query := fmt.Sprintf(`
		SELECT %s
		  FROM health_reports
		 WHERE user_id = $1
		 ORDER BY submitted_at DESC
		 LIMIT $2
	`, reportColumns)

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports by user: %w", err)
	}
	defer rows.Close()
	return scanReports(rows)
}

func (r *PostgresReportsRepo) List(ctx context.Context, f ReportFilter) ([]domain.HealthReport, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	// 零值过滤条件由 ($n = '' OR col = $n) 吸收
	query := fmt.Sprintf(`
		SELECT %s
		  FROM health_reports
		 WHERE ($1 = '' OR status = $1)
		   AND ($2 = '' OR user_role = $2)
		 ORDER BY submitted_at DESC
		 LIMIT $3
	`, reportColumns)

	rows, err := r.db.QueryContext(ctx, query, string(f.Status), string(f.Role), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()
	return scanReports(rows)
}

func (r *PostgresReportsRepo) Stats(ctx context.Context, recentSince time.Time, topN int) (*ReportStats, error) {
	stats := &ReportStats{
		TopSymptoms: []TermCount{},
		TopDiseases: []TermCount{},
	}

	countQuery := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE user_role = 'user'),
		       COUNT(*) FILTER (WHERE user_role = 'hospital'),
		       COUNT(*) FILTER (WHERE submitted_at > $1)
		  FROM health_reports
	`
	err := r.db.QueryRowContext(ctx, countQuery, recentSince).Scan(
		&stats.TotalSubmissions,
		&stats.UserSubmissions,
		&stats.HospitalSubmissions,
		&stats.RecentSubmissions,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}

	stats.TopSymptoms, err = r.topTerms(ctx, "symptom", topN)
	if err != nil {
		return nil, err
	}
	stats.TopDiseases, err = r.topTerms(ctx, "disease", topN)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// topTerms ranks user-role report values of the given column.
// column is one of the fixed identifiers "symptom"/"disease", never caller input.
func (r *PostgresReportsRepo) topTerms(ctx context.Context, column string, topN int) ([]TermCount, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) AS cnt
		  FROM health_reports
		 WHERE user_role = 'user' AND %s IS NOT NULL
		 GROUP BY %s
		 ORDER BY cnt DESC, %s ASC
		 LIMIT $1
	`, column, column, column, column)

	rows, err := r.db.QueryContext(ctx, query, topN)
	if err != nil {
		return nil, fmt.Errorf("failed to rank %s terms: %w", column, err)
	}
	defer rows.Close()

	out := []TermCount{}
	for rows.Next() {
		var tc TermCount
		if err := rows.Scan(&tc.Term, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan %s term: %w", column, err)
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

func scanReports(rows *sql.Rows) ([]domain.HealthReport, error) {
	out := []domain.HealthReport{}
	for rows.Next() {
		var rep domain.HealthReport
		var role, status string
		var lat, lng sql.NullFloat64
		var symptom, disease sql.NullString
		var hospitalData []byte

		err := rows.Scan(
			&rep.ReportID,
			&rep.Submitter.UserID,
			&role,
			&rep.Submitter.Name,
			&rep.Submitter.Email,
			&rep.Location.Area,
			&lat,
			&lng,
			&symptom,
			&disease,
			&hospitalData,
			&status,
			&rep.SubmittedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan health report: %w", err)
		}

		rep.Submitter.Role = domain.Role(role)
		rep.Status = domain.ReportStatus(status)
		if lat.Valid {
			rep.Location.Lat = &lat.Float64
		}
		if lng.Valid {
			rep.Location.Lng = &lng.Float64
		}

		switch rep.Submitter.Role {
		case domain.RoleHospital:
			var entries []domain.HospitalEntry
			if len(hospitalData) > 0 {
				if err := json.Unmarshal(hospitalData, &entries); err != nil {
					return nil, fmt.Errorf("failed to decode hospital entries: %w", err)
				}
			}
			rep.Data = domain.HospitalReport{Entries: entries}
		default:
			rep.Data = domain.UserReport{Symptom: symptom.String, Disease: disease.String}
		}

		out = append(out, rep)
	}
	return out, rows.Err()
}
