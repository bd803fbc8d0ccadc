package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/healthkathon/jkb/internal/config"
)

func TestMockFraudDetectionFilters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := MockFraudDetection{}

	claims, err := m.Claims(ctx, ClaimFilter{Status: "fraud", HospitalID: "H001"})
	require.NoError(t, err)
	ids := make([]string, 0, len(claims))
	for _, c := range claims {
		ids = append(ids, c.ClaimID)
	}
	require.Equal(t, []string{"CLM001", "CLM006"}, ids)

	maxCost := 3000000.0
	dx, err := m.Diagnoses(ctx, DiagnosisFilter{SeverityLevel: Str("low"), MaxCost: &maxCost})
	require.NoError(t, err)
	require.Len(t, dx, 3)

	all, err := m.Diagnoses(ctx, DiagnosisFilter{})
	require.NoError(t, err)
	require.Len(t, all, 20)
}

func TestMockCheckClaimVerdicts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := MockFraudDetection{}

	fraud, err := m.CheckClaim(ctx, "CLM004")
	require.NoError(t, err)
	require.Contains(t, Deref(fraud.Answer), "Potensi Fraud")

	normal, err := m.CheckClaim(ctx, "CLM002")
	require.NoError(t, err)
	require.Contains(t, Deref(normal.Answer), "Klaim Normal")

	actor, err := m.AnalyzeActor(ctx, ActorDoctor, "D001")
	require.NoError(t, err)
	require.Contains(t, Deref(actor.Answer), "Dr. D001")
	require.Contains(t, Deref(actor.Answer), "SEDANG")
}

func TestMockChatbotKeywords(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := MockChatbot{}

	hello, err := m.Ask(ctx, "Halo JKB")
	require.NoError(t, err)
	require.Contains(t, hello, "Selamat datang")

	other, err := m.Ask(ctx, "xyz")
	require.NoError(t, err)
	require.Equal(t, chatFallback, other)
}

func TestMockHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := MockChatbot{Delay: NetworkDelay{Min: time.Hour, Max: time.Hour}}.Ask(ctx, "halo")
	require.ErrorIs(t, err, context.Canceled)
}

func TestNetworkDelayRange(t *testing.T) {
	t.Parallel()

	for i := 0; i < 100; i++ {
		d := pick(10*time.Millisecond, 20*time.Millisecond)
		require.GreaterOrEqual(t, d, 10*time.Millisecond)
		require.LessOrEqual(t, d, 20*time.Millisecond)
	}
	require.Equal(t, 5*time.Millisecond, pick(5*time.Millisecond, time.Millisecond))

	start := time.Now()
	require.NoError(t, NetworkDelay{LongMin: 20 * time.Millisecond, LongMax: 20 * time.Millisecond}.WaitLong(context.Background()))
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestFormatRupiah(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Rp 0", FormatRupiah(0))
	require.Equal(t, "Rp 999", FormatRupiah(999))
	require.Equal(t, "Rp 1.500.000", FormatRupiah(1500000))
	require.Equal(t, "Rp -12.345", FormatRupiah(-12345))
}

func TestNewSelectsBackend(t *testing.T) {
	t.Parallel()

	mocked, err := New(config.APIConfig{Mock: true}, nil)
	require.NoError(t, err)
	require.IsType(t, MockChatbot{}, mocked.Chatbot)

	remote, err := New(config.APIConfig{BaseURL: "http://localhost:8000"}, nil)
	require.NoError(t, err)
	require.IsType(t, &Client{}, remote.Fraud)

	_, err = New(config.APIConfig{BaseURL: "::bad"}, nil)
	require.Error(t, err)
}
