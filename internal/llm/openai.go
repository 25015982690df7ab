package llm

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

type OpenAIEngine struct {
	client *openai.Client
	model  string
}

func NewOpenAIEngine(apiKey string, model string, baseURL string) *OpenAIEngine {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	client := openai.NewClientWithConfig(config)
	return &OpenAIEngine{
		client: client,
		model:  model,
	}
}

func (e *OpenAIEngine) Respond(ctx context.Context, prompt string, img *Image) (string, error) {
	msg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if img == nil {
		msg.Content = prompt
	} else {
		dataURI := fmt.Sprintf("data:%s;base64,%s", img.MIME, base64.StdEncoding.EncodeToString(img.Data))
		msg.MultiContent = []openai.ChatMessagePart{
			{
				Type:     openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{URL: dataURI},
			},
			{
				Type: openai.ChatMessagePartTypeText,
				Text: prompt,
			},
		}
	}

	req := openai.ChatCompletionRequest{
		Model:    e.model,
		Messages: []openai.ChatCompletionMessage{msg},
	}
	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) > 0 {
		return resp.Choices[0].Message.Content, nil
	}
	return "", fmt.Errorf("no response choices")
}
