package generate

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"paperqa/internal/model"
)

const defaultChatTimeout = 120 * time.Second

// OpenAIBackend serves generations through an OpenAI-compatible chat API,
// for deployments where the models sit behind such a server. The upstream
// model id doubles as the chat model name. Beam-search parameters have no
// chat-API equivalent, so only the token bound carries over.
type OpenAIBackend struct {
	client *openai.Client
}

// NewOpenAIBackend builds a client; baseURL may be empty for api.openai.com.
func NewOpenAIBackend(apiKey, baseURL string) (*OpenAIBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	cli := openai.NewClient(reqOpts...)
	return &OpenAIBackend{client: &cli}, nil
}

func (b *OpenAIBackend) Generate(ctx context.Context, desc model.Descriptor, prompt string, opts Options) (string, error) {
	if b == nil || b.client == nil {
		return "", fmt.Errorf("nil openai backend")
	}
	opts = opts.withDefaults()

	reqCtx, cancel := context.WithTimeout(ctx, defaultChatTimeout)
	defer cancel()
	resp, err := b.client.Chat.Completions.New(reqCtx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(desc.UpstreamID),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		MaxCompletionTokens: openai.Int(int64(opts.MaxLength)),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
