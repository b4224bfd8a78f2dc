package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/classquiz/config"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// ErrReviewerDisabled is returned by Review when no Gemini key is configured.
var ErrReviewerDisabled = errors.New("essay reviewer is disabled")

// EssayReviewer writes formative feedback for an essay answer. It never produces a score.
type EssayReviewer interface {
	Enabled() bool
	Review(ctx context.Context, question, answer string) (string, error)
}

type geminiEssayReviewer struct {
	model *genai.GenerativeModel
}

func NewEssayReviewer(cfg *config.Config) (EssayReviewer, error) {
	if cfg.Gemini.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Essay review is disabled.")
		return disabledReviewer{}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.Gemini.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel(cfg.Gemini.Model)
	model.SetTemperature(0.3)
	return &geminiEssayReviewer{model: model}, nil
}

func (r *geminiEssayReviewer) Enabled() bool { return true }

func (r *geminiEssayReviewer) Review(ctx context.Context, question, answer string) (string, error) {
	resp, err := r.model.GenerateContent(ctx, genai.Text(reviewPrompt(question, answer)))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no content")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	feedback := strings.TrimSpace(sb.String())
	if feedback == "" {
		return "", fmt.Errorf("gemini returned an empty review")
	}
	return feedback, nil
}

func reviewPrompt(question, answer string) string {
	var b strings.Builder
	b.WriteString("You are a school teacher giving short formative feedback on a student's essay answer.\n")
	b.WriteString("Do not give a score or a grade. Point out what is good, what is missing or wrong, ")
	b.WriteString("and one concrete suggestion to improve. Answer in the language the student used, in at most 120 words.\n\n")
	b.WriteString("Question:\n---\n")
	b.WriteString(question)
	b.WriteString("\n---\n\nStudent answer:\n---\n")
	b.WriteString(answer)
	b.WriteString("\n---\n")
	return b.String()
}

type disabledReviewer struct{}

func (disabledReviewer) Enabled() bool { return false }

func (disabledReviewer) Review(context.Context, string, string) (string, error) {
	return "", ErrReviewerDisabled
}
