package chatbot

import (
	"context"
	"errors"

	"github.com/kelseyhightower/envconfig"
	openai "github.com/sashabaranov/go-openai"
)

// Client is the minimal surface the chatbot needs from a generative model:
// one prompt in, one text completion out. An empty completion is not an
// error; the chatbot decides how to surface it.
type Client interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type Config struct {
	ApiKey      string  `envconfig:"PORTAL_MODEL_API_KEY" required:"true"`
	Model       string  `envconfig:"PORTAL_MODEL_NAME" default:"gpt-4o-mini"`
	Temperature float32 `envconfig:"PORTAL_MODEL_TEMPERATURE" default:"0.2"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewClient constructs the model client once at startup. A missing key is a
// configuration failure and prevents the service from starting.
func NewClient(cfg *Config) (Client, error) {
	if cfg.ApiKey == "" {
		return nil, errors.New("model api key is not set")
	}

	return &openAIClient{
		client:      openai.NewClient(cfg.ApiKey),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

type openAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
}

var _ Client = &openAIClient{}

func (c *openAIClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
