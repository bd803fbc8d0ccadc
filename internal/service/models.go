package service

// VersionData is the backend root document.
type VersionData struct {
	Message *string `json:"message"`
	Version *string `json:"version"`
}

// Location is a hospital's coordinates.
type Location struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type HospitalData struct {
	HospitalID  *string   `json:"hospital_id"`
	Name        *string   `json:"name"`
	ClassType   *string   `json:"class_type"`
	Location    *Location `json:"location"`
	Facilities  []string  `json:"facilities"`
	Specialties []string  `json:"specialties"`
}

type DoctorData struct {
	DoctorID          *string `json:"doctor_id"`
	Name              *string `json:"name"`
	PrimaryHospitalID *string `json:"primary_hospital_id"`
	Specialization    *string `json:"specialization"`
}

type DiagnosisData struct {
	DiagnosisID   string  `json:"diagnosis_id"`
	ICD10Code     string  `json:"icd10_code"`
	Name          string  `json:"name"`
	AvgCost       float64 `json:"avg_cost"`
	SeverityLevel string  `json:"severity_level"`
}

type ClaimData struct {
	ClaimID           string  `json:"claim_id"`
	DoctorID          string  `json:"doctor_id"`
	HospitalID        string  `json:"hospital_id"`
	Diagnosis         string  `json:"diagnosis"`
	TotalCost         float64 `json:"total_cost"`
	Label             string  `json:"label"`
	MedicalResumeJSON *string `json:"medical_resume_json,omitempty"`
}

// DiagnosisFilter narrows GET diagnoses. Nil fields are not sent.
type DiagnosisFilter struct {
	SeverityLevel *string
	ICD10Code     *string
	Name          *string
	MinCost       *float64
	MaxCost       *float64
}

// ClaimFilter narrows GET claims. Empty fields are not sent.
type ClaimFilter struct {
	Status     string
	HospitalID string
	DoctorID   string
}

// ClaimCheckAnswer is returned by claim verification and actor analysis.
type ClaimCheckAnswer struct {
	Answer *string `json:"answer"`
	Status *string `json:"status"`
}

type NewClaimRequest struct {
	HospitalID         string `json:"hospital_id"`
	DoctorID           string `json:"doctor_id"`
	DiagnosisID        string `json:"diagnosa_id"`
	TotalCost          int    `json:"total_cost"`
	PrimaryProcedure   string `json:"primary_procedure"`
	SecondaryProcedure string `json:"secondary_procedure"`
	DiagnosisText      string `json:"diagnosis_text"`
}

type NewClaimResponse struct {
	FormDataSummary  string `json:"form_data_summary"`
	ValidationResult string `json:"validation_result"`
	ConfidenceScore  int    `json:"confidence_score"`
	DetailAnalysis   string `json:"detail_analysis"`
	Explanation      string `json:"explanation"`
	Status           string `json:"status"`
}

// ActorType names the kind of actor under analysis.
type ActorType string

const (
	ActorDoctor   ActorType = "DOCTOR"
	ActorHospital ActorType = "HOSPITAL"
)

// FeedbackType is the verdict a reviewer gives an analysis.
type FeedbackType string

const (
	FeedbackLike    FeedbackType = "LIKE"
	FeedbackDislike FeedbackType = "DISLIKE"
)

type FeedbackResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type claimCheckRequest struct {
	ClaimID string `json:"claimId"`
}

type actorAnalysisRequest struct {
	ActorType ActorType `json:"actorType"`
	ActorID   string    `json:"actorId"`
}

type claimFeedbackRequest struct {
	ClaimID      string       `json:"claim_id"`
	FeedbackType FeedbackType `json:"feedback_type"`
}

type actorFeedbackRequest struct {
	ActorType    ActorType    `json:"actor_type"`
	ActorID      string       `json:"actor_id"`
	FeedbackType FeedbackType `json:"feedback_type"`
}

type question struct {
	Question string `json:"question"`
}

type answerData struct {
	Answer *string `json:"answer"`
	Status *string `json:"status"`
}

type listResponse[T any] struct {
	Data []*T `json:"data"`
}

// compact drops null entries from a decoded list.
func compact[T any](in []*T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// Str returns a pointer to s. Fixtures and tests use it for optional fields.
func Str(s string) *string { return &s }

// Deref returns *p or "" when p is nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
