package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Rohanpawar9921/Swasthya/internal/domain"
)

func intPtr(v int) *int { return &v }

func validUserRequest() SubmitReportRequest {
	return SubmitReportRequest{
		Location: domain.Location{Area: "Pune"},
		Symptom:  "cough",
		Disease:  "asthma",
	}
}

func validHospitalRequest() SubmitReportRequest {
	return SubmitReportRequest{
		Location: domain.Location{Area: "Pune"},
		HospitalData: []HospitalEntryInput{
			{Symptom: "cough", Disease: "asthma", PatientCount: intPtr(12), Category: "respiratory"},
			{Symptom: "chest pain", Disease: "hypertension", Category: "cardiovascular"},
		},
	}
}

func TestValidateSubmission_UserShape(t *testing.T) {
	data, err := validateSubmission(domain.RoleUser, validUserRequest())
	require.NoError(t, err)

	ur, ok := data.(domain.UserReport)
	require.True(t, ok)
	require.Equal(t, "cough", ur.Symptom)
	require.Equal(t, "asthma", ur.Disease)
}

func TestValidateSubmission_UserMissingFields(t *testing.T) {
	req := validUserRequest()
	req.Disease = "  "

	_, err := validateSubmission(domain.RoleUser, req)
	require.Error(t, err)
	de, ok := domain.AsError(err)
	require.True(t, ok)
	require.Equal(t, domain.KindValidation, de.Kind)
	require.Equal(t, domain.ReasonMissingUserFields, de.Reason)
}

// user 角色携带 hospitalData 是形态冒用，必须返回 forbidden 而不是 400，
// 并且要优先于缺字段/缺位置检查。
func TestValidateSubmission_UserSmugglingHospitalData(t *testing.T) {
	req := SubmitReportRequest{
		HospitalData: []HospitalEntryInput{{Symptom: "cough", Disease: "flu"}},
	}

	_, err := validateSubmission(domain.RoleUser, req)
	require.Error(t, err)
	de, ok := domain.AsError(err)
	require.True(t, ok)
	require.Equal(t, domain.KindForbidden, de.Kind)
	require.Equal(t, domain.ReasonRoleFieldMismatch, de.Reason)
}

func TestValidateSubmission_HospitalShape(t *testing.T) {
	data, err := validateSubmission(domain.RoleHospital, validHospitalRequest())
	require.NoError(t, err)

	hr, ok := data.(domain.HospitalReport)
	require.True(t, ok)
	require.Len(t, hr.Entries, 2)
	require.Equal(t, 12, hr.Entries[0].PatientCount)
	require.Equal(t, domain.CategoryRespiratory, hr.Entries[0].Category)
	// patientCount 缺省取 1
	require.Equal(t, 1, hr.Entries[1].PatientCount)
}

func TestValidateSubmission_HospitalMissingData(t *testing.T) {
	req := SubmitReportRequest{Location: domain.Location{Area: "Pune"}}

	_, err := validateSubmission(domain.RoleHospital, req)
	require.Error(t, err)
	de, ok := domain.AsError(err)
	require.True(t, ok)
	require.Equal(t, domain.ReasonMissingHospitalFields, de.Reason)
}

// 任一条目非法则整批拒绝
func TestValidateSubmission_HospitalBadEntryRejectsBatch(t *testing.T) {
	cases := map[string]SubmitReportRequest{
		"missing disease": {
			Location: domain.Location{Area: "Pune"},
			HospitalData: []HospitalEntryInput{
				{Symptom: "cough", Disease: "asthma"},
				{Symptom: "fever", Disease: ""},
			},
		},
		"zero patientCount": {
			Location: domain.Location{Area: "Pune"},
			HospitalData: []HospitalEntryInput{
				{Symptom: "cough", Disease: "asthma", PatientCount: intPtr(0)},
			},
		},
		"negative patientCount": {
			Location: domain.Location{Area: "Pune"},
			HospitalData: []HospitalEntryInput{
				{Symptom: "cough", Disease: "asthma", PatientCount: intPtr(-3)},
			},
		},
		"bad category": {
			Location: domain.Location{Area: "Pune"},
			HospitalData: []HospitalEntryInput{
				{Symptom: "cough", Disease: "asthma", Category: "psychiatric"},
			},
		},
	}

	for name, req := range cases {
		_, err := validateSubmission(domain.RoleHospital, req)
		require.Error(t, err, name)
		require.Equal(t, domain.KindValidation, domain.KindOf(err), name)
	}
}

func TestValidateSubmission_EmptyCategoryDefaultsToOther(t *testing.T) {
	req := SubmitReportRequest{
		Location: domain.Location{Area: "Pune"},
		HospitalData: []HospitalEntryInput{
			{Symptom: "cough", Disease: "asthma"},
		},
	}

	data, err := validateSubmission(domain.RoleHospital, req)
	require.NoError(t, err)
	hr := data.(domain.HospitalReport)
	require.Equal(t, domain.CategoryOther, hr.Entries[0].Category)
}

func TestValidateSubmission_MissingLocation(t *testing.T) {
	userReq := validUserRequest()
	userReq.Location.Area = ""
	_, err := validateSubmission(domain.RoleUser, userReq)
	require.Error(t, err)
	de, _ := domain.AsError(err)
	require.Equal(t, domain.ReasonMissingLocation, de.Reason)

	hospReq := validHospitalRequest()
	hospReq.Location.Area = "   "
	_, err = validateSubmission(domain.RoleHospital, hospReq)
	require.Error(t, err)
	de, _ = domain.AsError(err)
	require.Equal(t, domain.ReasonMissingLocation, de.Reason)
}

func TestValidateSubmission_GovernmentRejected(t *testing.T) {
	_, err := validateSubmission(domain.RoleGovernment, validUserRequest())
	require.Error(t, err)
	require.Equal(t, domain.KindForbidden, domain.KindOf(err))
}

// 纯函数：同一输入重复调用结果一致
func TestValidateSubmission_Idempotent(t *testing.T) {
	req := validHospitalRequest()

	first, err := validateSubmission(domain.RoleHospital, req)
	require.NoError(t, err)
	second, err := validateSubmission(domain.RoleHospital, req)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
