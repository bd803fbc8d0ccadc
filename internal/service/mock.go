package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// MockCore reports a fixed version.
type MockCore struct {
	Delay   NetworkDelay
	Version string
}

func (m MockCore) ServiceVersion(ctx context.Context) (VersionData, error) {
	if err := m.Delay.Wait(ctx); err != nil {
		return VersionData{}, err
	}
	v := m.Version
	if v == "" {
		v = "1.0.0"
	}
	return VersionData{Message: Str("JKB fraud detection service"), Version: Str(v)}, nil
}

// MockFraudDetection serves fixture data and canned analyses.
type MockFraudDetection struct {
	Delay NetworkDelay
}

func (m MockFraudDetection) Claims(ctx context.Context, f ClaimFilter) ([]ClaimData, error) {
	if err := m.Delay.Wait(ctx); err != nil {
		return nil, err
	}
	out := make([]ClaimData, 0, len(fixtureClaims))
	for _, c := range fixtureClaims {
		if f.Status != "" && !strings.EqualFold(c.Label, f.Status) {
			continue
		}
		if f.HospitalID != "" && c.HospitalID != f.HospitalID {
			continue
		}
		if f.DoctorID != "" && c.DoctorID != f.DoctorID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m MockFraudDetection) Hospitals(ctx context.Context) ([]HospitalData, error) {
	if err := m.Delay.Wait(ctx); err != nil {
		return nil, err
	}
	return append([]HospitalData(nil), fixtureHospitals...), nil
}

func (m MockFraudDetection) Doctors(ctx context.Context) ([]DoctorData, error) {
	if err := m.Delay.Wait(ctx); err != nil {
		return nil, err
	}
	return append([]DoctorData(nil), fixtureDoctors...), nil
}

func (m MockFraudDetection) Diagnoses(ctx context.Context, f DiagnosisFilter) ([]DiagnosisData, error) {
	if err := m.Delay.Wait(ctx); err != nil {
		return nil, err
	}
	out := make([]DiagnosisData, 0, len(fixtureDiagnoses))
	for _, d := range fixtureDiagnoses {
		switch {
		case f.SeverityLevel != nil && !strings.EqualFold(d.SeverityLevel, *f.SeverityLevel):
		case f.ICD10Code != nil && !containsFold(d.ICD10Code, *f.ICD10Code):
		case f.Name != nil && !containsFold(d.Name, *f.Name):
		case f.MinCost != nil && d.AvgCost < *f.MinCost:
		case f.MaxCost != nil && d.AvgCost > *f.MaxCost:
		default:
			out = append(out, d)
		}
	}
	return out, nil
}

func (m MockFraudDetection) CheckClaim(ctx context.Context, claimID string) (ClaimCheckAnswer, error) {
	if err := m.Delay.WaitLong(ctx); err != nil {
		return ClaimCheckAnswer{}, err
	}
	fraud := false
	for _, marker := range []string{"001", "004", "006", "009"} {
		if strings.Contains(claimID, marker) {
			fraud = true
			break
		}
	}
	var answer string
	if fraud {
		answer = fmt.Sprintf(`# Hasil Analisis Fraud - Klaim ID: %s

**Status**: Potensi Fraud Terdeteksi
**Tingkat Risiko**: **TINGGI** (85%%)

## Indikator
- Biaya pengobatan 3.5x lebih tinggi dari rata-rata kasus serupa
- Klaim diajukan bersamaan dengan 8 klaim lain dari RS yang sama
- Pasien tercatat 12 kunjungan dalam 30 hari terakhir

**Rekomendasi**: tahan pembayaran hingga investigasi selesai.`, claimID)
	} else {
		answer = fmt.Sprintf(`# Hasil Analisis Fraud - Klaim ID: %s

**Status**: Klaim Normal
**Tingkat Kepercayaan**: **100%%**

Biaya sesuai tarif INA-CBG, pola temporal normal dan dokumentasi lengkap.

**Rekomendasi**: klaim dapat diproses sesuai prosedur standar.`, claimID)
	}
	return ClaimCheckAnswer{Answer: Str(answer), Status: Str("success")}, nil
}

func (m MockFraudDetection) CheckNewClaim(ctx context.Context, req NewClaimRequest) (NewClaimResponse, error) {
	if err := m.Delay.WaitLong(ctx); err != nil {
		return NewClaimResponse{}, err
	}
	cost := FormatRupiah(req.TotalCost)
	summary := fmt.Sprintf("Hospital ID: %s\nDoctor ID: %s\nDiagnosis ID: %s\nTotal Cost: %s\nPrimary Procedure: %s\nSecondary Procedure: %s\nDiagnosis Text: %s",
		req.HospitalID, req.DoctorID, req.DiagnosisID, cost, req.PrimaryProcedure, req.SecondaryProcedure, req.DiagnosisText)
	return NewClaimResponse{
		FormDataSummary:  summary,
		ValidationResult: "NORMAL",
		ConfidenceScore:  92,
		DetailAnalysis:   "## Validasi\n- Biaya sesuai standar tarif INA-CBG\n- Tindakan relevan dengan diagnosis\n- Tidak ada duplikasi klaim dalam 30 hari terakhir",
		Explanation:      "Klaim konsisten dengan profil provider dan pola klaim normal.",
		Status:           "success",
	}, nil
}

func (m MockFraudDetection) AnalyzeActor(ctx context.Context, actor ActorType, actorID string) (ClaimCheckAnswer, error) {
	if err := m.Delay.WaitLong(ctx); err != nil {
		return ClaimCheckAnswer{}, err
	}
	display, name := "Rumah Sakit", actorID
	if actor == ActorDoctor {
		display, name = "Dokter", "Dr. "+actorID
	}
	status, risk, score := "Normal", "RENDAH", 95
	if strings.Contains(actorID, "001") {
		status, risk, score = "Memerlukan Perhatian", "SEDANG", 55
	}
	answer := fmt.Sprintf(`# Hasil Analisis Fraud - %s

**Nama**: %s
**Status Analisis**: %s
**Tingkat Risiko**: **%s** (%d%%)`, display, name, status, risk, score)
	return ClaimCheckAnswer{Answer: Str(answer), Status: Str("success")}, nil
}

func (m MockFraudDetection) ClaimFeedback(ctx context.Context, _ string, _ FeedbackType) (FeedbackResponse, error) {
	if err := m.Delay.Wait(ctx); err != nil {
		return FeedbackResponse{}, err
	}
	return FeedbackResponse{Status: "success", Message: "Terima kasih atas feedback Anda!"}, nil
}

func (m MockFraudDetection) ActorFeedback(ctx context.Context, _ ActorType, _ string, _ FeedbackType) (FeedbackResponse, error) {
	if err := m.Delay.Wait(ctx); err != nil {
		return FeedbackResponse{}, err
	}
	return FeedbackResponse{Status: "success", Message: "Terima kasih atas feedback Anda!"}, nil
}

// MockChatbot answers from a keyword table.
type MockChatbot struct {
	Delay NetworkDelay
}

func (m MockChatbot) Ask(ctx context.Context, q string) (string, error) {
	if err := m.Delay.Wait(ctx); err != nil {
		return "", err
	}
	lower := strings.ToLower(q)
	for _, r := range chatReplies {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.answer, nil
			}
		}
	}
	return chatFallback, nil
}

// FormatRupiah renders an amount with dot thousands separators, e.g. "Rp 1.500.000".
func FormatRupiah(amount int) string {
	sign := ""
	if amount < 0 {
		sign, amount = "-", -amount
	}
	digits := strconv.Itoa(amount)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return "Rp " + sign + b.String()
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
