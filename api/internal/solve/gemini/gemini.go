package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"brainy-ai/api/internal/solve"
)

// Generator is the part of *genai.GenerativeModel the engine calls.
type Generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type Engine struct {
	Model string

	client *genai.Client
	model  func(policy solve.SafetyPolicy) Generator
}

// New creates the client once; it is shared by every request.
func New(ctx context.Context, apiKey, model string) (*Engine, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("GOOGLE_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	e := &Engine{Model: strings.TrimSpace(model), client: cl}
	e.model = func(policy solve.SafetyPolicy) Generator {
		m := cl.GenerativeModel(e.Model)
		m.SafetySettings = safetySettings(policy)
		return m
	}
	return e, nil
}

// NewWithGenerator builds an engine around a ready generator; the policy is
// not forwarded, so the generator is expected to be configured already.
func NewWithGenerator(model string, g Generator) *Engine {
	return &Engine{
		Model: model,
		model: func(solve.SafetyPolicy) Generator { return g },
	}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Close() error {
	if e.client == nil {
		return nil
	}
	return e.client.Close()
}

// GenerateSolution issues exactly one GenerateContent call. There is no retry
// and no client-side deadline beyond what ctx carries.
func (e *Engine) GenerateSolution(ctx context.Context, req solve.UserRequest, instruction string, policy solve.SafetyPolicy) (solve.Result, error) {
	resp, err := e.model(policy).GenerateContent(ctx, Parts(req, instruction)...)
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			res := decodeBlocked(blocked)
			return res, res.Err()
		}
		return solve.Result{}, externalError(err)
	}
	res := decode(resp)
	return res, res.Err()
}

// Parts builds the ordered payload: user prompt, image, trailing instruction.
func Parts(req solve.UserRequest, instruction string) []genai.Part {
	return []genai.Part{
		genai.Text(req.PromptText),
		genai.Blob{MIMEType: req.ImageMIMEType, Data: req.Image},
		genai.Text(instruction),
	}
}

// decodeBlocked maps an SDK refusal. The SDK also refuses candidates that
// stopped for recitation; those carry no usable text but are not a safety
// verdict, so they come back as Empty.
func decodeBlocked(b *genai.BlockedError) solve.Result {
	if b.PromptFeedback == nil && b.Candidate != nil && b.Candidate.FinishReason == genai.FinishReasonRecitation {
		return solve.Result{Kind: solve.ResultEmpty}
	}
	return solve.Result{Kind: solve.ResultBlocked}
}

// decode is the only place that knows the provider response shape.
// Safety is checked first, so a flagged response is Blocked even if it
// also carries parts.
func decode(resp *genai.GenerateContentResponse) solve.Result {
	if resp == nil {
		return solve.Result{Kind: solve.ResultEmpty}
	}
	if blocked(resp) {
		return solve.Result{Kind: solve.ResultBlocked}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return solve.Result{Kind: solve.ResultEmpty}
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return solve.Result{Kind: solve.ResultEmpty}
	}
	t, ok := parts[0].(genai.Text)
	if !ok {
		return solve.Result{Kind: solve.ResultEmpty}
	}
	return solve.Result{Kind: solve.ResultText, Text: string(t)}
}

func blocked(resp *genai.GenerateContentResponse) bool {
	if pf := resp.PromptFeedback; pf != nil {
		if pf.BlockReason != genai.BlockReasonUnspecified {
			return true
		}
		if anyBlocked(pf.SafetyRatings) {
			return true
		}
	}
	for _, c := range resp.Candidates {
		if c == nil {
			continue
		}
		if c.FinishReason == genai.FinishReasonSafety {
			return true
		}
		if anyBlocked(c.SafetyRatings) {
			return true
		}
	}
	return false
}

// anyBlocked: Gemini attaches ratings to every answer, so only flagged ones count.
func anyBlocked(rs []*genai.SafetyRating) bool {
	for _, r := range rs {
		if r != nil && r.Blocked {
			return true
		}
	}
	return false
}

func externalError(err error) error {
	ext := &solve.ExternalServiceError{Provider: "gemini", Err: err}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		ext.Status = gerr.Code
	}
	return ext
}
