package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"
)

// ErrorKind classifies remote generation failures.
type ErrorKind string

const (
	ErrRateLimited          ErrorKind = "rate_limited"
	ErrUnauthorized         ErrorKind = "unauthorized"
	ErrNetworkUnreachable   ErrorKind = "network_unreachable"
	ErrInvalidResponseShape ErrorKind = "invalid_response_shape"
	ErrUnknown              ErrorKind = "unknown"
)

// RemoteError is returned for any failure talking to the generation service.
type RemoteError struct {
	Kind       ErrorKind
	Detail     string
	StatusCode int
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote service error (%s): %s", e.Kind, e.Detail)
}

// Retryable reports whether the failure is transient. Only rate limiting and
// transport-level failures with no response at all are retried.
func (e *RemoteError) Retryable() bool {
	return e.Kind == ErrRateLimited || e.Kind == ErrNetworkUnreachable
}

// Wire types for the generative-language REST endpoint.

type GeminiRequest struct {
	Contents []Content `json:"contents"`
}

type Content struct {
	Parts []Part `json:"parts"`
}

type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inline_data,omitempty"`
}

type InlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type GeminiResponse struct {
	Candidates []Candidate `json:"candidates"`
	Error      *APIError   `json:"error,omitempty"`
}

type Candidate struct {
	Content Content `json:"content"`
}

type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Client invokes the remote generation endpoint with bounded retries, a
// circuit breaker, and a client-side request limiter.
type Client struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	breaker    *gobreaker.CircuitBreaker
	limiter    *rate.Limiter
}

// NewClient creates a generation client. maxRetries is the number of extra
// attempts after the first; retryDelay is the fixed wait between attempts.
func NewClient(apiKey, apiURL string, maxRetries int, retryDelay, timeout time.Duration) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "GeminiAPI",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Printf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	// Free-tier RPM with headroom
	limiter := rate.NewLimiter(rate.Limit(9.0/60.0), 2)

	return &Client{
		apiKey:     apiKey,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		breaker:    breaker,
		limiter:    limiter,
	}
}

// Generate invokes the endpoint, retrying rate-limit and transport failures
// up to maxRetries extra times with a fixed, context-aware delay.
func (c *Client) Generate(ctx context.Context, request GeminiRequest) (*GeminiResponse, error) {
	tracer := otel.Tracer("gemini-client")
	ctx, span := tracer.Start(ctx, "gemini.generate_content")
	defer span.End()

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		response, err := c.doRequest(ctx, request)
		if err == nil {
			span.SetAttributes(attribute.Int("gemini.attempts", attempt+1))
			return response, nil
		}

		lastErr = err

		var remoteErr *RemoteError
		if !errors.As(err, &remoteErr) || !remoteErr.Retryable() {
			span.SetAttributes(attribute.String("gemini.error", err.Error()))
			return nil, err
		}

		if attempt < c.maxRetries {
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				return nil, &RemoteError{Kind: ErrNetworkUnreachable, Detail: ctx.Err().Error()}
			}
		}
	}

	span.SetAttributes(attribute.String("gemini.error", lastErr.Error()))
	return nil, lastErr
}

// GenerateText is a convenience wrapper for plain text prompts. It returns the
// first candidate's text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	response, err := c.Generate(ctx, GeminiRequest{
		Contents: []Content{
			{Parts: []Part{{Text: prompt}}},
		},
	})
	if err != nil {
		return "", err
	}
	return ExtractResponseText(response), nil
}

// GenerateWithImage sends a prompt with an inline image payload.
func (c *Client) GenerateWithImage(ctx context.Context, prompt string, imageData []byte, mimeType string) (string, error) {
	response, err := c.Generate(ctx, GeminiRequest{
		Contents: []Content{
			{
				Parts: []Part{
					{Text: prompt},
					{InlineData: &InlineData{
						MIMEType: mimeType,
						Data:     base64.StdEncoding.EncodeToString(imageData),
					}},
				},
			},
		},
	})
	if err != nil {
		return "", err
	}
	return ExtractResponseText(response), nil
}

func (c *Client) doRequest(ctx context.Context, request GeminiRequest) (*GeminiResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &RemoteError{Kind: ErrNetworkUnreachable, Detail: err.Error()}
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.makeRequest(ctx, request)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &RemoteError{Kind: ErrUnknown, Detail: "generation service temporarily unavailable"}
		}
		return nil, err
	}

	return result.(*GeminiResponse), nil
}

func (c *Client) makeRequest(ctx context.Context, request GeminiRequest) (*GeminiResponse, error) {
	jsonData, err := json.Marshal(request)
	if err != nil {
		return nil, &RemoteError{Kind: ErrUnknown, Detail: fmt.Sprintf("failed to marshal request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL+"?key="+c.apiKey, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, &RemoteError{Kind: ErrUnknown, Detail: fmt.Sprintf("failed to create request: %v", err)}
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response at all: treat as a transport failure
		return nil, &RemoteError{Kind: ErrNetworkUnreachable, Detail: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteError{Kind: ErrNetworkUnreachable, Detail: fmt.Sprintf("failed to read response: %v", err)}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &RemoteError{Kind: ErrRateLimited, Detail: "rate limit exceeded", StatusCode: resp.StatusCode}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &RemoteError{Kind: ErrUnauthorized, Detail: "invalid API key", StatusCode: resp.StatusCode}
	case resp.StatusCode != http.StatusOK:
		detail := fmt.Sprintf("unexpected status %d", resp.StatusCode)
		var apiResp GeminiResponse
		if err := json.Unmarshal(body, &apiResp); err == nil && apiResp.Error != nil {
			detail = apiResp.Error.Message
		}
		return nil, &RemoteError{Kind: ErrUnknown, Detail: detail, StatusCode: resp.StatusCode}
	}

	var geminiResp GeminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return nil, &RemoteError{Kind: ErrInvalidResponseShape, Detail: fmt.Sprintf("failed to unmarshal response: %v", err)}
	}

	if geminiResp.Error != nil {
		return nil, &RemoteError{Kind: ErrUnknown, Detail: geminiResp.Error.Message, StatusCode: geminiResp.Error.Code}
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return nil, &RemoteError{Kind: ErrInvalidResponseShape, Detail: "no candidates in response"}
	}

	return &geminiResp, nil
}

// ExtractResponseText returns the first candidate's text, or "" if absent.
func ExtractResponseText(response *GeminiResponse) string {
	if response == nil || len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return ""
	}

	return response.Candidates[0].Content.Parts[0].Text
}
