package llm

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
)

const claudeMaxTokens = 4096

type ClaudeEngine struct {
	client *anthropic.Client
	model  string
}

func NewClaudeEngine(apiKey string, model string, baseURL string) *ClaudeEngine {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	client := anthropic.NewClient(apiKey, opts...)

	return &ClaudeEngine{
		client: client,
		model:  model,
	}
}

func (e *ClaudeEngine) Respond(ctx context.Context, prompt string, img *Image) (string, error) {
	var content []anthropic.MessageContent
	if img != nil {
		content = append(content, anthropic.NewImageMessageContent(
			anthropic.NewMessageContentSource(
				anthropic.MessagesContentSourceTypeBase64,
				img.MIME,
				img.Data,
			),
		))
	}
	content = append(content, anthropic.NewTextMessageContent(prompt))

	resp, err := e.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(e.model),
		Messages: []anthropic.Message{
			{
				Role:    anthropic.RoleUser,
				Content: content,
			},
		},
		MaxTokens: claudeMaxTokens,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Content) > 0 && resp.Content[0].Text != nil {
		return *resp.Content[0].Text, nil
	}
	return "", fmt.Errorf("no response content")
}
