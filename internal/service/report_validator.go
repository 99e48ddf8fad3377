package service

import (
	"strings"

	"github.com/Rohanpawar9921/Swasthya/internal/domain"
)

// HospitalEntryInput 医院上报条目（提交载荷）。
// PatientCount 为指针：缺省取默认值 1，显式给出的非正数被拒绝。
type HospitalEntryInput struct {
	Symptom      string `json:"symptom"`
	Disease      string `json:"disease"`
	PatientCount *int   `json:"patientCount,omitempty"`
	Category     string `json:"category,omitempty"`
}

// SubmitReportRequest 健康数据提交载荷。字段按角色取舍：
// user 只看 symptom/disease，hospital 只看 hospitalData。
type SubmitReportRequest struct {
	Location     domain.Location      `json:"location"`
	Symptom      string               `json:"symptom,omitempty"`
	Disease      string               `json:"disease,omitempty"`
	HospitalData []HospitalEntryInput `json:"hospitalData,omitempty"`
}

// validateSubmission enforces the role-conditioned payload shape and returns
// the normalized variant carrying only role-appropriate fields. Role shape
// violations are checked before the location rule so that a user-role caller
// smuggling a hospital sequence is answered with Forbidden, not a generic 400.
// Pure function of (role, req); repeated calls yield identical output.
func validateSubmission(role domain.Role, req SubmitReportRequest) (domain.ReportData, error) {
	var data domain.ReportData

	switch role {
	case domain.RoleUser:
		// A user pushing a hospital batch is a shape impersonation, not a typo.
		if len(req.HospitalData) > 0 {
			return nil, domain.ForbiddenShape("Users cannot submit hospital data")
		}
		symptom := strings.TrimSpace(req.Symptom)
		disease := strings.TrimSpace(req.Disease)
		if symptom == "" || disease == "" {
			return nil, domain.Invalid(domain.ReasonMissingUserFields,
				"Symptom and disease are required for user submissions")
		}
		data = domain.UserReport{Symptom: symptom, Disease: disease}

	case domain.RoleHospital:
		if len(req.HospitalData) == 0 {
			return nil, domain.Invalid(domain.ReasonMissingHospitalFields,
				"Hospital data array is required for hospital submissions")
		}
		entries := make([]domain.HospitalEntry, 0, len(req.HospitalData))
		for _, in := range req.HospitalData {
			symptom := strings.TrimSpace(in.Symptom)
			disease := strings.TrimSpace(in.Disease)
			// One bad entry rejects the whole batch; nothing is persisted.
			if symptom == "" || disease == "" {
				return nil, domain.Invalid(domain.ReasonMissingHospitalFields,
					"Each hospital entry must have symptom and disease")
			}
			count := 1
			if in.PatientCount != nil {
				if *in.PatientCount < 1 {
					return nil, domain.Invalid(domain.ReasonMissingHospitalFields,
						"patientCount must be at least 1")
				}
				count = *in.PatientCount
			}
			category, err := domain.ParseEntryCategory(in.Category)
			if err != nil {
				return nil, domain.Invalid(domain.ReasonMissingHospitalFields,
					"Category must be respiratory, cardiovascular, or other")
			}
			entries = append(entries, domain.HospitalEntry{
				Symptom:      symptom,
				Disease:      disease,
				PatientCount: count,
				Category:     category,
			})
		}
		data = domain.HospitalReport{Entries: entries}

	default:
		// The role gate should have stopped this caller already.
		return nil, domain.Forbidden("Role is not permitted to submit health data")
	}

	if strings.TrimSpace(req.Location.Area) == "" {
		return nil, domain.Invalid(domain.ReasonMissingLocation, "Location area is required")
	}

	return data, nil
}
