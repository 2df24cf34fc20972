package whatsapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Gateway represents an outbound WhatsApp messaging gateway
type Gateway interface {
	SendMessage(recipient, message string) (string, error)
}

// CloudGateway sends messages through a WhatsApp Business Cloud style
// HTTP API
type CloudGateway struct {
	BaseURL    string
	APIToken   string
	httpClient *http.Client
}

// MockGateway simulates sends for development and tests
type MockGateway struct{}

// NewCloudGateway creates a new CloudGateway
func NewCloudGateway(baseURL, apiToken string) Gateway {
	return &CloudGateway{
		BaseURL:  baseURL,
		APIToken: apiToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewMockGateway creates a new MockGateway
func NewMockGateway() Gateway {
	return &MockGateway{}
}

// SendMessage sends a text message through the cloud API
func (g *CloudGateway) SendMessage(recipient, message string) (string, error) {
	requestBody := map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                recipient,
		"type":              "text",
		"text":              map[string]string{"body": message},
	}
	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequest("POST", g.BaseURL+"/messages", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.APIToken)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Messages []struct {
			ID string `json:"id"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(response.Messages) == 0 {
		return "", fmt.Errorf("no message id in response")
	}
	return response.Messages[0].ID, nil
}

// SendMessage simulates a send and returns a synthetic message ID
func (g *MockGateway) SendMessage(recipient, message string) (string, error) {
	msgID := fmt.Sprintf("WS-MOCK-MSG-%d", time.Now().UnixNano())
	fmt.Printf("[WhatsApp Mock Gateway] Simulating send to %s: %s -> %s\n", recipient, message, msgID)
	return msgID, nil
}
