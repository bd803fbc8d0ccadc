package frauddetection

import (
	"fmt"

	"github.com/healthkathon/jkb/internal/service"
)

// Tab is one of the three analysis modes.
type Tab int

const (
	TabClaimID Tab = iota
	TabNewClaim
	TabActor
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabClaimID, TabNewClaim, TabActor}

// MessageID is the catalog key of the tab title.
func (t Tab) MessageID() string {
	switch t {
	case TabNewClaim:
		return "fraud_tab_new_claim"
	case TabActor:
		return "fraud_tab_actor"
	default:
		return "fraud_tab_claim_id"
	}
}

func (t Tab) Icon() string {
	switch t {
	case TabNewClaim:
		return "📝"
	case TabActor:
		return "👤"
	default:
		return "🔍"
	}
}

// newClaimID marks a result that came from the new-claim form.
const newClaimID = "NEW_CLAIM"

type State struct {
	CurrentTab Tab
	IsLoading  bool
	Result     string
	Error      string

	Hospitals      []service.HospitalData
	Doctors        []service.DoctorData
	Diagnoses      []service.DiagnosisData
	Claims         []service.ClaimData
	FilteredClaims []service.ClaimData

	SelectedClaimID string
	SearchQuery     string
	IsLoadingData   bool
	DataError       string

	// Subject of the current result, used when sending feedback.
	CurrentClaimID   string
	CurrentActorType service.ActorType
	CurrentActorID   string
	FeedbackGiven    bool
}

func (s State) HospitalNames() []string {
	out := make([]string, 0, len(s.Hospitals))
	for _, h := range s.Hospitals {
		if h.Name != nil {
			out = append(out, *h.Name)
		}
	}
	return out
}

func (s State) DoctorNames() []string {
	out := make([]string, 0, len(s.Doctors))
	for _, d := range s.Doctors {
		if d.Name != nil {
			out = append(out, *d.Name)
		}
	}
	return out
}

// DiagnosesDisplay renders each diagnosis as "name (ICD10)".
func (s State) DiagnosesDisplay() []string {
	out := make([]string, 0, len(s.Diagnoses))
	for _, d := range s.Diagnoses {
		out = append(out, fmt.Sprintf("%s (%s)", d.Name, d.ICD10Code))
	}
	return out
}

func (s State) ClaimIDs() []string {
	out := make([]string, 0, len(s.Claims))
	for _, c := range s.Claims {
		out = append(out, c.ClaimID)
	}
	return out
}
