package frauddetection

import (
	"github.com/healthkathon/jkb/internal/notify"
	"github.com/healthkathon/jkb/internal/service"
)

type Intent interface{ fraudIntent() }

type (
	NavigateToTab struct{ Tab Tab }
	SubmitClaimID struct{ ClaimID string }
	SelectClaim   struct{ ClaimID string }
	// SubmitSelectedClaim analyses SelectedClaimID. It does nothing when no
	// claim is selected.
	SubmitSelectedClaim struct{}
	SearchClaims        struct{ Query string }
	// SubmitNewClaim carries the raw form. TotalCost may contain separators
	// and currency text; only its digits are used.
	SubmitNewClaim struct {
		HospitalID         string
		DoctorID           string
		DiagnosisID        string
		TotalCost          string
		PrimaryProcedure   string
		SecondaryProcedure string
		DiagnosisText      string
	}
	SubmitActorAnalysis struct {
		ActorType service.ActorType
		ActorID   string
	}
	LoadHospitals  struct{}
	LoadDoctors    struct{}
	LoadDiagnoses  struct{}
	LoadClaims     struct{}
	SubmitFeedback struct{ IsLike bool }
	// ShowMessage is shown by the notification host.
	ShowMessage struct{ Text string }
)

func (NavigateToTab) fraudIntent()       {}
func (SubmitClaimID) fraudIntent()       {}
func (SelectClaim) fraudIntent()         {}
func (SubmitSelectedClaim) fraudIntent() {}
func (SearchClaims) fraudIntent()        {}
func (SubmitNewClaim) fraudIntent()      {}
func (SubmitActorAnalysis) fraudIntent() {}
func (LoadHospitals) fraudIntent()       {}
func (LoadDoctors) fraudIntent()         {}
func (LoadDiagnoses) fraudIntent()       {}
func (LoadClaims) fraudIntent()          {}
func (SubmitFeedback) fraudIntent()      {}
func (ShowMessage) fraudIntent()         {}

var _ notify.Notification = ShowMessage{}

func (m ShowMessage) Message() string         { return m.Text }
func (ShowMessage) ActionLabel() string       { return "" }
func (ShowMessage) Duration() notify.Duration { return notify.Short }
func (ShowMessage) WithDismissAction() bool   { return true }
