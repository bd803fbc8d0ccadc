// Package service holds the backend collaborators used by the screens: the
// HTTP client and in-process mocks behind the same interfaces.
package service

import (
	"context"
	"errors"
)

// ErrEmptyAnswer is returned when the backend answers without content.
var ErrEmptyAnswer = errors.New("service: empty answer")

// CoreAPI reports the backend version.
type CoreAPI interface {
	ServiceVersion(ctx context.Context) (VersionData, error)
}

// FraudDetectionAPI covers claim verification and reference data.
type FraudDetectionAPI interface {
	Claims(ctx context.Context, f ClaimFilter) ([]ClaimData, error)
	Hospitals(ctx context.Context) ([]HospitalData, error)
	Doctors(ctx context.Context) ([]DoctorData, error)
	Diagnoses(ctx context.Context, f DiagnosisFilter) ([]DiagnosisData, error)
	CheckClaim(ctx context.Context, claimID string) (ClaimCheckAnswer, error)
	CheckNewClaim(ctx context.Context, req NewClaimRequest) (NewClaimResponse, error)
	AnalyzeActor(ctx context.Context, actor ActorType, actorID string) (ClaimCheckAnswer, error)
	ClaimFeedback(ctx context.Context, claimID string, fb FeedbackType) (FeedbackResponse, error)
	ActorFeedback(ctx context.Context, actor ActorType, actorID string, fb FeedbackType) (FeedbackResponse, error)
}

// ChatbotAPI answers free-text questions.
type ChatbotAPI interface {
	Ask(ctx context.Context, question string) (string, error)
}
