package tutor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yamboly/tutor-dashboard-service/internal/utils"
)

// Webhook actions understood by the tutoring agent.
const (
	actionChat             = "chat"
	actionCustomExercise   = "custom_exercise"
	actionGenerateExercise = "generate_exercise"
	actionSolution         = "solution"
)

// Per-action deadlines. Grading and chat involve an LLM round trip.
const (
	chatTimeout    = 25 * time.Second
	gradeTimeout   = 20 * time.Second
	defaultTimeout = 15 * time.Second
)

const chatAcceptHeader = "text/plain, text/markdown;q=0.9, */*;q=0.1"

// Client talks to the external tutoring agent through its webhook. The agent
// writes its results (chat replies, generated exercises) straight into the
// database; only grading returns a payload worth parsing.
type Client interface {
	SendChat(ctx context.Context, req ChatRequest) error
	GenerateExercise(ctx context.Context, req ExerciseRequest) (json.RawMessage, error)
	GenerateCustomExercise(ctx context.Context, req ExerciseRequest) error
	GradeSolution(ctx context.Context, req SolutionRequest) (*GradeResult, error)
}

type ChatRequest struct {
	UserID          string
	SessionID       string
	Subject         string
	SubjectID       string
	Message         string
	ClientMessageID string
}

type ExerciseRequest struct {
	UserID     string
	Subject    string
	SubjectID  string
	Topic      string
	Difficulty int
}

type SolutionRequest struct {
	UserID     string
	SubjectID  string
	Subject    string
	Difficulty int
	Topic      string
	Statement  string
	UserAnswer string
	ExerciseID string
}

// GradeResult is the agent's verdict on a submitted answer. Field names match
// the agent's response contract.
type GradeResult struct {
	Verdict  string          `json:"Respuesta"`
	Guidance string          `json:"Mensaje guía"`
	Raw      json.RawMessage `json:"-"`
}

func (g GradeResult) Correct() bool {
	return strings.EqualFold(g.Verdict, "correcta")
}

// Recognized reports whether the verdict is one of the two values the agent
// is supposed to emit. Anything else falls back to the raw body.
func (g GradeResult) Recognized() bool {
	v := strings.ToLower(g.Verdict)
	return v == "correcta" || v == "incorrecta"
}

type webhookPayload struct {
	UserID          string `json:"user_id"`
	SessionID       string `json:"session_id,omitempty"`
	Subject         string `json:"subject,omitempty"`
	SubjectID       string `json:"subject_id,omitempty"`
	Topic           string `json:"topic,omitempty"`
	Difficulty      int    `json:"difficulty,omitempty"`
	Message         string `json:"message,omitempty"`
	ClientMessageID string `json:"client_message_id,omitempty"`
	Statement       string `json:"enunciado,omitempty"`
	UserAnswer      string `json:"user_answer,omitempty"`
	ExerciseID      string `json:"exercise_id,omitempty"`
	Action          string `json:"action"`
}

type webhookClient struct {
	url    string
	http   *http.Client
	logger utils.Logger
}

func NewClient(webhookURL string, logger utils.Logger) Client {
	return &webhookClient{
		url:    webhookURL,
		http:   &http.Client{},
		logger: logger,
	}
}

func (c *webhookClient) SendChat(ctx context.Context, req ChatRequest) error {
	payload := webhookPayload{
		UserID:          req.UserID,
		SessionID:       req.SessionID,
		Subject:         strings.ToLower(req.Subject),
		SubjectID:       req.SubjectID,
		Message:         req.Message,
		ClientMessageID: req.ClientMessageID,
		Action:          actionChat,
	}

	_, err := c.post(ctx, payload, chatAcceptHeader, chatTimeout)
	return err
}

func (c *webhookClient) GenerateExercise(ctx context.Context, req ExerciseRequest) (json.RawMessage, error) {
	payload := webhookPayload{
		UserID:     req.UserID,
		Subject:    strings.ToLower(req.Subject),
		SubjectID:  req.SubjectID,
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		Action:     actionGenerateExercise,
	}

	body, err := c.post(ctx, payload, "", defaultTimeout)
	if err != nil {
		return nil, err
	}

	return json.RawMessage(body), nil
}

func (c *webhookClient) GenerateCustomExercise(ctx context.Context, req ExerciseRequest) error {
	payload := webhookPayload{
		UserID:     req.UserID,
		Subject:    strings.ToLower(req.Subject),
		SubjectID:  req.SubjectID,
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		Action:     actionCustomExercise,
	}

	_, err := c.post(ctx, payload, "", defaultTimeout)
	return err
}

func (c *webhookClient) GradeSolution(ctx context.Context, req SolutionRequest) (*GradeResult, error) {
	payload := webhookPayload{
		UserID:     req.UserID,
		SubjectID:  req.SubjectID,
		Subject:    req.Subject,
		Difficulty: req.Difficulty,
		Topic:      req.Topic,
		Statement:  req.Statement,
		UserAnswer: req.UserAnswer,
		ExerciseID: req.ExerciseID,
		Action:     actionSolution,
	}

	body, err := c.post(ctx, payload, "", gradeTimeout)
	if err != nil {
		return nil, err
	}

	result := GradeResult{Raw: json.RawMessage(body)}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("tutor: decode grade response: %w", err)
	}

	return &result, nil
}

func (c *webhookClient) post(ctx context.Context, payload webhookPayload, accept string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("tutor: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("tutor: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	c.logger.DebugContext(ctx, "calling tutor webhook", "action", payload.Action, "user_id", payload.UserID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tutor: %s request failed: %w", payload.Action, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tutor: read %s response: %w", payload.Action, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("tutor: %s returned %d: %s", payload.Action, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}
