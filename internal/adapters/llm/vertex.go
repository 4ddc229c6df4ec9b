package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/Na1awut/NDLP/internal/domain"
)

type VertexClient struct {
	client    *genai.Client
	modelName string
}

// NewVertexClient creates an LLMClient backed by Vertex AI (Gemini).
func NewVertexClient(ctx context.Context, projectID, location, modelName string) (*VertexClient, error) {
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("vertex: project and location must be set")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &VertexClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// GenerateReply implements domain.LLMClient using Vertex AI.
func (v *VertexClient) GenerateReply(
	ctx context.Context,
	userMessage string,
	chatCtx domain.ChatContext,
) (string, error) {
	system := BuildSystemPrompt(chatCtx.EVCContext)

	var contents []*genai.Content
	for _, m := range chatCtx.History {
		var role genai.Role = genai.RoleUser
		if m.Author == domain.RoleAgent {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(userMessage, genai.RoleUser))

	temp := float32(0.7)
	topP := float32(0.9)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   int32(1024),
	}

	res, err := v.client.Models.GenerateContent(ctx, v.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("vertex generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("vertex returned empty text")
	}
	return text, nil
}

// ExtractEmotion asks the model for the structured emotion JSON. The raw
// output is returned as-is; the emotion extractor validates it.
func (v *VertexClient) ExtractEmotion(ctx context.Context, text string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(BuildExtractionPrompt(text), genai.RoleUser),
	}

	// Analysis should be stable, not creative.
	temp := float32(0.1)

	cfg := &genai.GenerateContentConfig{
		Temperature:      &temp,
		MaxOutputTokens:  int32(512),
		ResponseMIMEType: "application/json",
	}

	res, err := v.client.Models.GenerateContent(ctx, v.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("vertex extract emotion: %w", err)
	}

	out := res.Text()
	if out == "" {
		return "", fmt.Errorf("vertex returned empty emotion payload")
	}
	return out, nil
}
