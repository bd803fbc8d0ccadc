// Package frauddetection is the claim analysis screen: verify a claim by id,
// check a new claim form, or profile a doctor or hospital.
package frauddetection

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"go.uber.org/zap"

	"github.com/healthkathon/jkb/internal/i18n"
	"github.com/healthkathon/jkb/internal/mvi"
	"github.com/healthkathon/jkb/internal/service"
)

// maxSearchDistance bounds the edit distance of fuzzy claim id matches.
const maxSearchDistance = 2

type Deps struct {
	API     service.FraudDetectionAPI
	Catalog *i18n.Catalog
	Log     *zap.Logger
}

type Container = mvi.Container[State, struct{}]

func New(d Deps, buses mvi.Buses) *Container {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	h := &handler{Deps: d}
	return mvi.New[State, struct{}]("frauddetection", State{}, h.handle, h.failed, buses,
		mvi.WithLogger[State, struct{}](d.Log),
		mvi.WithOnCreate(func(_ context.Context, s *mvi.Scope[State, struct{}]) error {
			s.Send(LoadHospitals{})
			s.Send(LoadDoctors{})
			s.Send(LoadDiagnoses{})
			s.Send(LoadClaims{})
			return nil
		}),
	)
}

type handler struct {
	Deps
}

type scope = mvi.Scope[State, struct{}]

func (h *handler) failed(st State, err error) State {
	st.IsLoading = false
	st.IsLoadingData = false
	st.Error = h.Catalog.Err("generic_error", err)
	return st
}

func (h *handler) handle(ctx context.Context, s *scope, intent any) error {
	switch ev := intent.(type) {
	case NavigateToTab:
		s.Reduce(func(st State) State {
			st.CurrentTab = ev.Tab
			st.Result = ""
			st.Error = ""
			st.FeedbackGiven = false
			st.CurrentClaimID = ""
			st.CurrentActorType = ""
			st.CurrentActorID = ""
			return st
		})
	case SelectClaim:
		s.Reduce(func(st State) State {
			st.SelectedClaimID = ev.ClaimID
			return st
		})
	case SearchClaims:
		s.Reduce(func(st State) State {
			st.SearchQuery = ev.Query
			st.FilteredClaims = filterClaims(st.Claims, ev.Query)
			return st
		})
	case SubmitClaimID:
		return h.checkClaim(ctx, s, ev.ClaimID)
	case SubmitSelectedClaim:
		id := s.State().SelectedClaimID
		if id == "" {
			return nil
		}
		return h.checkClaim(ctx, s, id)
	case SubmitNewClaim:
		return h.checkNewClaim(ctx, s, ev)
	case SubmitActorAnalysis:
		return h.analyzeActor(ctx, s, ev)
	case LoadHospitals:
		return load(ctx, s, h, "fraud_load_hospitals_failed", h.API.Hospitals, func(st *State, v []service.HospitalData) {
			st.Hospitals = v
		})
	case LoadDoctors:
		return load(ctx, s, h, "fraud_load_doctors_failed", h.API.Doctors, func(st *State, v []service.DoctorData) {
			st.Doctors = v
		})
	case LoadDiagnoses:
		diagnoses := func(ctx context.Context) ([]service.DiagnosisData, error) {
			return h.API.Diagnoses(ctx, service.DiagnosisFilter{})
		}
		return load(ctx, s, h, "fraud_load_diagnoses_failed", diagnoses, func(st *State, v []service.DiagnosisData) {
			st.Diagnoses = v
		})
	case LoadClaims:
		claims := func(ctx context.Context) ([]service.ClaimData, error) {
			return h.API.Claims(ctx, service.ClaimFilter{})
		}
		return load(ctx, s, h, "fraud_load_claims_failed", claims, func(st *State, v []service.ClaimData) {
			st.Claims = v
			st.FilteredClaims = filterClaims(v, st.SearchQuery)
		})
	case SubmitFeedback:
		return h.feedback(ctx, s, ev.IsLike)
	}
	return nil
}

func startAnalysis(s *scope) {
	s.Reduce(func(st State) State {
		st.IsLoading = true
		st.Result = ""
		st.Error = ""
		st.FeedbackGiven = false
		return st
	})
}

func (h *handler) checkClaim(ctx context.Context, s *scope, claimID string) error {
	startAnalysis(s)
	resp, err := h.API.CheckClaim(ctx, claimID)
	if err != nil {
		return h.analysisFailed(ctx, s, "fraud_claim_check_failed", err)
	}
	s.Reduce(func(st State) State {
		st.IsLoading = false
		st.Result = service.Deref(resp.Answer)
		st.CurrentClaimID = claimID
		st.CurrentActorType = ""
		st.CurrentActorID = ""
		return st
	})
	return nil
}

func (h *handler) checkNewClaim(ctx context.Context, s *scope, ev SubmitNewClaim) error {
	cost, err := parseCost(ev.TotalCost)
	if err != nil {
		h.Log.Info("new claim rejected", zap.String("cost", ev.TotalCost), zap.Error(err))
		msg := h.Catalog.Err("fraud_invalid_cost", err)
		s.Reduce(func(st State) State {
			st.IsLoading = false
			st.Result = ""
			st.Error = msg
			st.FeedbackGiven = false
			return st
		})
		return nil
	}
	startAnalysis(s)
	resp, err := h.API.CheckNewClaim(ctx, service.NewClaimRequest{
		HospitalID:         ev.HospitalID,
		DoctorID:           ev.DoctorID,
		DiagnosisID:        ev.DiagnosisID,
		TotalCost:          cost,
		PrimaryProcedure:   ev.PrimaryProcedure,
		SecondaryProcedure: ev.SecondaryProcedure,
		DiagnosisText:      ev.DiagnosisText,
	})
	if err != nil {
		return h.analysisFailed(ctx, s, "fraud_new_claim_failed", err)
	}
	s.Reduce(func(st State) State {
		st.IsLoading = false
		st.Result = formatNewClaim(resp)
		st.CurrentClaimID = newClaimID
		st.CurrentActorType = ""
		st.CurrentActorID = ""
		return st
	})
	return nil
}

func (h *handler) analyzeActor(ctx context.Context, s *scope, ev SubmitActorAnalysis) error {
	startAnalysis(s)
	resp, err := h.API.AnalyzeActor(ctx, ev.ActorType, ev.ActorID)
	if err != nil {
		return h.analysisFailed(ctx, s, "fraud_actor_failed", err)
	}
	s.Reduce(func(st State) State {
		st.IsLoading = false
		st.Result = service.Deref(resp.Answer)
		st.CurrentClaimID = ""
		st.CurrentActorType = ev.ActorType
		st.CurrentActorID = ev.ActorID
		return st
	})
	return nil
}

func (h *handler) analysisFailed(ctx context.Context, s *scope, msgID string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	h.Log.Warn("analysis failed", zap.String("kind", msgID), zap.Error(err))
	msg := h.Catalog.Err(msgID, err)
	s.Reduce(func(st State) State {
		st.IsLoading = false
		st.Result = "❌ " + msg
		st.Error = msg
		st.CurrentClaimID = ""
		st.CurrentActorType = ""
		st.CurrentActorID = ""
		return st
	})
	return nil
}

func (h *handler) feedback(ctx context.Context, s *scope, like bool) error {
	fb := service.FeedbackDislike
	if like {
		fb = service.FeedbackLike
	}

	st := s.State()
	var err error
	switch st.CurrentTab {
	case TabClaimID, TabNewClaim:
		if st.CurrentClaimID == "" {
			return nil
		}
		_, err = h.API.ClaimFeedback(ctx, st.CurrentClaimID, fb)
	case TabActor:
		if st.CurrentActorType == "" || st.CurrentActorID == "" {
			return nil
		}
		_, err = h.API.ActorFeedback(ctx, st.CurrentActorType, st.CurrentActorID, fb)
	}
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}

	// Feedback is best effort: the buttons are disabled either way.
	s.Reduce(func(st State) State {
		st.FeedbackGiven = true
		return st
	})
	if err != nil {
		h.Log.Warn("feedback not delivered", zap.Error(err))
		return nil
	}
	s.Send(ShowMessage{Text: h.Catalog.T("fraud_feedback_thanks")})
	return nil
}

func load[T any](ctx context.Context, s *scope, h *handler, failID string, fetch func(context.Context) ([]T, error), apply func(*State, []T)) error {
	s.Reduce(func(st State) State {
		st.IsLoadingData = true
		st.DataError = ""
		return st
	})
	v, err := fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		h.Log.Warn("reference data not loaded", zap.String("kind", failID), zap.Error(err))
		msg := h.Catalog.Err(failID, err)
		s.Reduce(func(st State) State {
			st.IsLoadingData = false
			st.DataError = msg
			return st
		})
		return nil
	}
	s.Reduce(func(st State) State {
		apply(&st, v)
		st.IsLoadingData = false
		return st
	})
	return nil
}

// filterClaims keeps claims whose id, diagnosis or label contains query. When
// nothing matches it falls back to claim ids within a small edit distance.
func filterClaims(claims []service.ClaimData, query string) []service.ClaimData {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return claims
	}
	var out []service.ClaimData
	for _, c := range claims {
		if strings.Contains(strings.ToLower(c.ClaimID), q) ||
			strings.Contains(strings.ToLower(c.Diagnosis), q) ||
			strings.Contains(strings.ToLower(c.Label), q) {
			out = append(out, c)
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, c := range claims {
		if levenshtein.ComputeDistance(strings.ToLower(c.ClaimID), q) <= maxSearchDistance {
			out = append(out, c)
		}
	}
	return out
}

// parseCost reads the digits of raw, ignoring currency marks and grouping.
// No digits at all is a zero cost.
func parseCost(raw string) (int, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("total cost %q out of range", raw)
	}
	return n, nil
}

func formatNewClaim(r service.NewClaimResponse) string {
	status := "✅ NORMAL"
	if r.ValidationResult == "FRAUD" {
		status = "⚠️ FRAUD"
	}
	return fmt.Sprintf(`# 📊 Hasil Analisis Fraud - Klaim Baru

## Ringkasan Data
%s

---

## 🎯 Hasil Validasi
**Status**: %s
**Confidence Score**: %d%%

---

%s

---

%s`, r.FormDataSummary, status, r.ConfidenceScore, r.DetailAnalysis, r.Explanation)
}
