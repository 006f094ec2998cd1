package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openAIChatClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// OpenAIRefiner rescores headline batches with a chat model. It is an
// optional layer over the lexicon scorer: construction returns nil without
// an API key, and the aggregator ignores any error it returns.
type OpenAIRefiner struct {
	client openAIChatClient
	model  string
}

func NewOpenAIRefiner(apiKey, model string) *OpenAIRefiner {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil
	}
	if strings.TrimSpace(model) == "" {
		model = "gpt-4o-mini"
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIRefiner{
		client: &openAIClient{client: client},
		model:  model,
	}
}

// ScoreBatch returns one score in [-1, 1] per title, in input order.
func (r *OpenAIRefiner) ScoreBatch(ctx context.Context, titles []string) ([]float64, error) {
	if r == nil || r.client == nil || len(titles) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	for i, title := range titles {
		sb.WriteString(fmt.Sprintf("i=%d title=%s\n", i, strings.TrimSpace(title)))
	}

	systemPrompt := "You score market sentiment of news headlines. Return ONLY a JSON array. Each object requires: i (int, the input index), score (float -1..1). No markdown."
	userPrompt := "Headlines:\n" + sb.String()

	completion, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionNewParams{
		Model: r.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, err
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("empty refiner completion")
	}

	raw := trimCodeFence(completion.Choices[0].Message.Content)
	var parsed []struct {
		I     int     `json:"i"`
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("parse refiner json: %w", err)
	}

	out := make([]float64, len(titles))
	seen := make([]bool, len(titles))
	for _, row := range parsed {
		if row.I < 0 || row.I >= len(titles) {
			continue
		}
		out[row.I] = clamp(row.Score, -1, 1)
		seen[row.I] = true
	}
	for i := range seen {
		if !seen[i] {
			return nil, fmt.Errorf("refiner response missing index %d", i)
		}
	}
	return out, nil
}

func trimCodeFence(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "```") {
		v = strings.TrimPrefix(v, "```")
		v = strings.TrimSpace(v)
		if strings.HasPrefix(strings.ToLower(v), "json") {
			v = strings.TrimSpace(v[4:])
		}
		v = strings.TrimSuffix(v, "```")
		v = strings.TrimSpace(v)
	}
	return v
}

type openAIClient struct {
	client openai.Client
}

func (c *openAIClient) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
