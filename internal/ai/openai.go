package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client talks to an OpenAI-compatible chat-completions endpoint. The rest of
// the app only sees the services.CoachClient and services.VisionClient
// interfaces; everything model-specific stays here.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	textModel   string
	visionModel string
}

func NewClient(apiKey string) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		apiKey:      apiKey,
		baseURL:     defaultBaseURL,
		textModel:   "gpt-4o-mini",
		visionModel: "gpt-5-mini",
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete runs a plain system+user text exchange and returns the trimmed
// completion text.
func (client *Client) Complete(ctx context.Context, systemPrompt string, userPrompt string, maxTokens int) (string, error) {
	request := chatRequest{
		Model: client.textModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens: maxTokens,
	}
	return client.send(ctx, request)
}

// CompleteWithImage sends a text prompt plus one image as a data URI, asking
// the model for a JSON object response.
func (client *Client) CompleteWithImage(ctx context.Context, systemPrompt string, userPrompt string, imageDataURI string, maxTokens int) (string, error) {
	request := chatRequest{
		Model:          client.visionModel,
		ResponseFormat: &responseFormat{Type: "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: userPrompt},
				{Type: "image_url", ImageURL: &imageURL{URL: imageDataURI, Detail: "auto"}},
			}},
		},
		MaxTokens: maxTokens,
	}
	return client.send(ctx, request)
}

func (client *Client) send(ctx context.Context, request chatRequest) (string, error) {
	if strings.TrimSpace(client.apiKey) == "" {
		return "", errors.New("openai api key is not configured")
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("Authorization", "Bearer "+client.apiKey)

	httpResponse, err := client.httpClient.Do(httpRequest)
	if err != nil {
		return "", fmt.Errorf("call chat completions: %w", err)
	}
	defer httpResponse.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResponse.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	response := chatResponse{}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if response.Error != nil {
		return "", fmt.Errorf("chat completion failed: %s", response.Error.Message)
	}
	if httpResponse.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completion failed with status %d", httpResponse.StatusCode)
	}
	if len(response.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
