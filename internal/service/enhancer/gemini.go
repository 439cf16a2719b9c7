package enhancer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements the Provider interface for Google's Gemini API
type GeminiProvider struct {
	apiKey    string
	modelName string
	client    *genai.Client
	logger    Logger
}

// NewGeminiProvider creates a new Gemini provider using the official client
func NewGeminiProvider(apiKey string, modelName string, logger Logger) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, errors.New("a valid Gemini API key is required")
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	if logger == nil {
		logger = &DefaultLogger{}
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		apiKey:    apiKey,
		modelName: modelName,
		client:    client,
		logger:    logger,
	}, nil
}

// GetName returns the provider name
func (p *GeminiProvider) GetName() string {
	return "gemini"
}

// EnhanceCopy implements the Provider interface
func (p *GeminiProvider) EnhanceCopy(ctx context.Context, request *Request) (*Response, error) {
	model := p.client.GenerativeModel(p.modelName)
	model.SetTemperature(0.7)
	model.SetTopP(0.95)
	model.SetTopK(40)
	model.SetMaxOutputTokens(1024)

	prompt := buildEnhancePrompt(request)
	p.logger.Debug("Sending prompt to Gemini", "prompt", prompt)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		p.logger.Error("Gemini API error", "error", err)
		return nil, fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("no content generated")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}

	candidates, err := parseCandidates(text.String())
	if err != nil {
		return nil, err
	}
	return &Response{Candidates: candidates}, nil
}

// Close closes the underlying client
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

// buildEnhancePrompt asks for strict JSON so the response survives parsing.
func buildEnhancePrompt(request *Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert search-ads copywriter. Rewrite each of the following %s texts for the product %q in language %q.\n",
		request.AssetType, request.ProductName, request.Language)
	fmt.Fprintf(&b, "Hard constraint: every rewritten text must be at most %d characters.\n", request.CharacterLimit)
	b.WriteString("Respond with a JSON array only, one object per rewrite: [{\"text\": \"...\", \"confidence\": 0.0-1.0}].\n\nTexts:\n")
	for i, t := range request.Texts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t)
	}
	return b.String()
}

// parseCandidates extracts the candidate list from the model output, falling
// back to plain lines when the response is not valid JSON.
func parseCandidates(text string) ([]Candidate, error) {
	cleaned := CleanCodeBlocks(text)

	var candidates []Candidate
	if err := json.Unmarshal([]byte(cleaned), &candidates); err == nil && len(candidates) > 0 {
		return candidates, nil
	}

	lines := strings.Split(cleaned, "\n")
	out := make([]Candidate, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*0123456789. "))
		if line == "" {
			continue
		}
		out = append(out, Candidate{Text: line, Confidence: 0.5})
	}
	if len(out) == 0 {
		return nil, errors.New("failed to parse enhancement response")
	}
	return out, nil
}

var codeBlocksRegex = regexp.MustCompile("(?s)```(json)?(.+?)```")

// CleanCodeBlocks removes markdown code block markers from text
func CleanCodeBlocks(text string) string {
	if matches := codeBlocksRegex.FindStringSubmatch(text); len(matches) > 2 {
		return strings.TrimSpace(matches[2])
	}
	return strings.TrimSpace(text)
}
