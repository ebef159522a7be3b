package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gridironlabs/field-report/pkg/config"
)

const (
	openAIBaseURL = "https://api.openai.com/v1"

	narrativeModel     = "gpt-4o"
	narrativeMaxTokens = 750
	narrativeSystem    = "You are an extremely useful assistant."

	maxNarrativeAttempts = 5

	// FailureText is the sentinel returned when the narrative call could
	// not produce a response.
	FailureText = "Error: Could not produce response due to rate limit or other errors"
)

// Summary is the outcome of one narrative-generation call. OK is the
// authoritative success signal; Cost stays 0 on failure so callers that
// only look at cost keep working.
type Summary struct {
	Text string
	Cost float64
	OK   bool
}

// chatRequest is the request payload for the chat completions endpoint.
type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the chat completions response we consume.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// callState drives the retry loop. Rate limiting is the only recoverable
// error kind; everything else is terminal on first sight.
type callState int

const (
	stateAttempting callState = iota
	stateBackoff
	stateSucceeded
	stateFailedTerminal
)

// attemptOutcome classifies one request attempt.
type attemptOutcome int

const (
	outcomeSuccess attemptOutcome = iota
	outcomeRateLimited
	outcomeConnectivity
	outcomeAPIError
)

// NarrativeService produces a short natural-language season summary via
// the OpenAI chat completions API. It never touches the budget itself;
// the caller charges the returned cost.
type NarrativeService struct {
	httpClient  *http.Client
	logger      *logrus.Logger
	apiKey      string
	baseURL     string
	inputRate   float64
	outputRate  float64
	maxAttempts int
	sleep       func(time.Duration)
}

// NewNarrativeService creates a narrative generator from config.
func NewNarrativeService(cfg *config.Config, logger *logrus.Logger) *NarrativeService {
	return &NarrativeService{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger:      logger,
		apiKey:      cfg.OpenAIAPIKey,
		baseURL:     openAIBaseURL,
		inputRate:   cfg.InputTokenRate,
		outputRate:  cfg.OutputTokenRate,
		maxAttempts: maxNarrativeAttempts,
		sleep:       time.Sleep,
	}
}

// GenerateSummary asks for a summary of a team's season. Rate-limit
// responses retry with exponential backoff (2^attempt seconds, up to
// maxAttempts attempts); connectivity and API errors abort immediately.
// Failure returns the sentinel text with zero cost and OK false.
func (n *NarrativeService) GenerateSummary(ctx context.Context, team, year string) Summary {
	if n.apiKey == "" {
		n.logger.Error("OpenAI API key has not been configured")
		return Summary{Text: FailureText}
	}

	attempt := 0
	state := stateAttempting
	var summary Summary

	for {
		switch state {
		case stateAttempting:
			text, cost, outcome := n.attempt(ctx, team, year)
			switch outcome {
			case outcomeSuccess:
				summary = Summary{Text: text, Cost: cost, OK: true}
				state = stateSucceeded
			case outcomeRateLimited:
				attempt++
				state = stateBackoff
			default:
				state = stateFailedTerminal
			}
		case stateBackoff:
			delay := time.Duration(1<<uint(attempt)) * time.Second
			n.logger.WithFields(logrus.Fields{
				"attempt": attempt,
				"delay":   delay.String(),
			}).Warn("Rate limited by OpenAI, backing off")
			n.sleep(delay)
			if attempt >= n.maxAttempts {
				state = stateFailedTerminal
			} else {
				state = stateAttempting
			}
		case stateSucceeded:
			return summary
		case stateFailedTerminal:
			return Summary{Text: FailureText}
		}
	}
}

// attempt performs one chat completion request and classifies the result.
func (n *NarrativeService) attempt(ctx context.Context, team, year string) (string, float64, attemptOutcome) {
	payload := chatRequest{
		Model:     narrativeModel,
		MaxTokens: narrativeMaxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: narrativeSystem},
			{Role: "user", Content: fmt.Sprintf("Tell me about %s football team's performance in the %s season.", team, year)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		n.logger.WithError(err).Error("Failed to marshal chat request")
		return "", 0, outcomeAPIError
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		n.logger.WithError(err).Error("Failed to build chat request")
		return "", 0, outcomeAPIError
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.apiKey)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.logger.WithError(err).Error("OpenAI connection error")
		return "", 0, outcomeConnectivity
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		n.logger.WithError(err).Error("Failed to read OpenAI response")
		return "", 0, outcomeConnectivity
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		var chat chatResponse
		if err := json.Unmarshal(data, &chat); err != nil {
			n.logger.WithError(err).Error("Failed to decode OpenAI response")
			return "", 0, outcomeAPIError
		}
		if len(chat.Choices) == 0 {
			n.logger.Error("OpenAI response contained no choices")
			return "", 0, outcomeAPIError
		}
		cost := float64(chat.Usage.PromptTokens)/1000*n.inputRate +
			float64(chat.Usage.CompletionTokens)/1000*n.outputRate
		return strings.TrimSpace(chat.Choices[0].Message.Content), cost, outcomeSuccess
	case resp.StatusCode == http.StatusTooManyRequests:
		n.logger.WithField("status", resp.StatusCode).Warn("OpenAI rate limit hit")
		return "", 0, outcomeRateLimited
	default:
		n.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(data),
		}).Error("OpenAI returned an API error")
		return "", 0, outcomeAPIError
	}
}
