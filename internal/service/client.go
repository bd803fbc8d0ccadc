package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// HTTPError is a non-2xx backend response.
type HTTPError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: http %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// Client talks JSON to the JKB backend. It implements CoreAPI,
// FraudDetectionAPI and ChatbotAPI.
type Client struct {
	base *url.URL
	http *http.Client
	log  *zap.Logger
}

// NewClient builds a client rooted at baseURL. A zero timeout means none.
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: unsupported scheme %q", baseURL, u.Scheme)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{base: u, http: &http.Client{Timeout: timeout}, log: log.Named("api")}, nil
}

func (c *Client) ServiceVersion(ctx context.Context) (VersionData, error) {
	var out VersionData
	err := c.do(ctx, http.MethodGet, "", nil, nil, &out)
	return out, err
}

func (c *Client) Claims(ctx context.Context, f ClaimFilter) ([]ClaimData, error) {
	q := url.Values{}
	setIf(q, "status", f.Status)
	setIf(q, "hospital_id", f.HospitalID)
	setIf(q, "doctor_id", f.DoctorID)
	var out listResponse[ClaimData]
	if err := c.do(ctx, http.MethodGet, "claims", q, nil, &out); err != nil {
		return nil, err
	}
	return compact(out.Data), nil
}

func (c *Client) Hospitals(ctx context.Context) ([]HospitalData, error) {
	var out listResponse[HospitalData]
	if err := c.do(ctx, http.MethodGet, "hospitals", nil, nil, &out); err != nil {
		return nil, err
	}
	return compact(out.Data), nil
}

func (c *Client) Doctors(ctx context.Context) ([]DoctorData, error) {
	var out listResponse[DoctorData]
	if err := c.do(ctx, http.MethodGet, "doctors", nil, nil, &out); err != nil {
		return nil, err
	}
	return compact(out.Data), nil
}

func (c *Client) Diagnoses(ctx context.Context, f DiagnosisFilter) ([]DiagnosisData, error) {
	q := url.Values{}
	if f.SeverityLevel != nil {
		q.Set("severity_level", *f.SeverityLevel)
	}
	if f.ICD10Code != nil {
		q.Set("icd10_code", *f.ICD10Code)
	}
	if f.Name != nil {
		q.Set("name", *f.Name)
	}
	if f.MinCost != nil {
		q.Set("min_cost", strconv.FormatFloat(*f.MinCost, 'f', -1, 64))
	}
	if f.MaxCost != nil {
		q.Set("max_cost", strconv.FormatFloat(*f.MaxCost, 'f', -1, 64))
	}
	var out listResponse[DiagnosisData]
	if err := c.do(ctx, http.MethodGet, "diagnoses", q, nil, &out); err != nil {
		return nil, err
	}
	return compact(out.Data), nil
}

func (c *Client) CheckClaim(ctx context.Context, claimID string) (ClaimCheckAnswer, error) {
	var out ClaimCheckAnswer
	err := c.do(ctx, http.MethodPost, "claims/verify", nil, claimCheckRequest{ClaimID: claimID}, &out)
	return out, err
}

func (c *Client) CheckNewClaim(ctx context.Context, req NewClaimRequest) (NewClaimResponse, error) {
	var out NewClaimResponse
	err := c.do(ctx, http.MethodPost, "claims/verify-form", nil, req, &out)
	return out, err
}

func (c *Client) AnalyzeActor(ctx context.Context, actor ActorType, actorID string) (ClaimCheckAnswer, error) {
	var out ClaimCheckAnswer
	err := c.do(ctx, http.MethodPost, "actor/analyze", nil, actorAnalysisRequest{ActorType: actor, ActorID: actorID}, &out)
	return out, err
}

func (c *Client) ClaimFeedback(ctx context.Context, claimID string, fb FeedbackType) (FeedbackResponse, error) {
	var out FeedbackResponse
	err := c.do(ctx, http.MethodPost, "claim/feedback", nil, claimFeedbackRequest{ClaimID: claimID, FeedbackType: fb}, &out)
	return out, err
}

func (c *Client) ActorFeedback(ctx context.Context, actor ActorType, actorID string, fb FeedbackType) (FeedbackResponse, error) {
	var out FeedbackResponse
	req := actorFeedbackRequest{ActorType: actor, ActorID: actorID, FeedbackType: fb}
	err := c.do(ctx, http.MethodPost, "actor/feedback", nil, req, &out)
	return out, err
}

func (c *Client) Ask(ctx context.Context, q string) (string, error) {
	var out answerData
	if err := c.do(ctx, http.MethodPost, "chatbot/ask", nil, question{Question: q}, &out); err != nil {
		return "", err
	}
	if out.Answer == nil {
		return "", ErrEmptyAnswer
	}
	return *out.Answer, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.base.ResolveReference(&url.URL{Path: path})
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.log.Debug("request",
		zap.String("method", method),
		zap.String("url", u.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &HTTPError{Method: method, Path: "/" + path, Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
