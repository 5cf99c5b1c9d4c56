package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
	model      = "claude-3-5-sonnet-20241022"
	maxTokens  = 4096

	pdfDataURIPrefix = "data:application/pdf;base64,"
)

// ErrEmptyExtraction signals that the model returned zero schedule entries,
// which callers must treat as "document unrecognized" rather than an empty
// schedule.
var ErrEmptyExtraction = errors.New("no schedule entries extracted from document")

// ScheduleEntry is one shift row as produced by the extraction schema.
type ScheduleEntry struct {
	Name        string `json:"name"`
	UserID      string `json:"userId"`
	DayOfWeek   string `json:"dayOfWeek"`
	TimeRange   string `json:"timeRange"`
	HoursWorked string `json:"hoursWorked"`
}

// ForecastInput carries the context for the inventory forecasting tool.
type ForecastInput struct {
	HistoricalData string `json:"historicalData"`
	DayOfWeek      string `json:"dayOfWeek"`
	SalesPatterns  string `json:"salesPatterns"`
}

// ForecastResult is the structured output of the forecasting tool.
type ForecastResult struct {
	PredictedNeeds string `json:"predictedNeeds"`
	PotentialRisks string `json:"potentialRisks"`
}

// Client defines the AI operations the dashboard depends on.
type Client interface {
	ExtractSchedule(ctx context.Context, pdfDataURI string) ([]ScheduleEntry, error)
	ForecastInventory(ctx context.Context, input ForecastInput) (ForecastResult, error)
	ShipmentReport(ctx context.Context, inventoryList string) (string, error)
}

type anthropicClient struct {
	httpClient *resty.Client
}

// NewClient creates a configured Anthropic client.
func NewClient(apiKey string) Client {
	client := resty.New().
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(90 * time.Second)

	return &anthropicClient{httpClient: client}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type   string          `json:"type"`
	Text   string          `json:"text,omitempty"`
	Source *documentSource `json:"source,omitempty"`
}

type documentSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

const extractionPrompt = `You are a highly intelligent data extraction assistant. Your primary task is to meticulously analyze the provided PDF document, which contains an employee work schedule. Extract every shift detail for every employee listed.

Key extraction rules:
1. User ID: extract the user ID exactly as it appears but strip leading zeros. If you see "0025", extract "25".
2. Date and time: from the date/time column(s) derive two distinct pieces of information for each shift: the day of the week (e.g. "Monday") and the complete time range of the shift (e.g. "8:00 AM - 4:00 PM").
3. Thoroughness: scan the entire document from top to bottom. Do not miss any entries.

Your output must be ONLY a JSON object with this structure:
{
  "schedule": [
    {"name": "...", "userId": "...", "dayOfWeek": "...", "timeRange": "...", "hoursWorked": "..."}
  ]
}`

// ExtractSchedule runs OCR-style extraction over a schedule PDF supplied as a
// base64 data URI and returns the structured shift rows. An empty result is
// ErrEmptyExtraction, never a silently empty slice.
func (c *anthropicClient) ExtractSchedule(ctx context.Context, pdfDataURI string) ([]ScheduleEntry, error) {
	data, ok := strings.CutPrefix(pdfDataURI, pdfDataURIPrefix)
	if !ok || data == "" {
		return nil, fmt.Errorf("pdf payload must be a %q data uri", pdfDataURIPrefix)
	}

	messages := []message{
		{
			Role: "user",
			Content: []contentBlock{
				{Type: "document", Source: &documentSource{Type: "base64", MediaType: "application/pdf", Data: data}},
				{Type: "text", Text: "Extract the full schedule from this document."},
			},
		},
		// Prefill the assistant response to force JSON output.
		{Role: "assistant", Content: []contentBlock{{Type: "text", Text: "{"}}},
	}

	responseText, err := c.complete(ctx, extractionPrompt, messages, true)
	if err != nil {
		return nil, err
	}

	var result struct {
		Schedule []ScheduleEntry `json:"schedule"`
	}
	if err := json.Unmarshal([]byte(responseText), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal extraction response: %w. Response was: %s", err, responseText)
	}

	if len(result.Schedule) == 0 {
		return nil, ErrEmptyExtraction
	}

	return result.Schedule, nil
}

const forecastSystemPrompt = `You are an expert inventory manager for a restaurant. Analyze the historical data and sales patterns to predict future inventory needs, considering the day of the week.

Your output must be ONLY a JSON object with this structure:
{
  "predictedNeeds": "Predicted future inventory needs based on the analysis.",
  "potentialRisks": "Potential shortage or overstocking risks."
}`

// ForecastInventory predicts upcoming inventory needs from historical data and
// sales patterns.
func (c *anthropicClient) ForecastInventory(ctx context.Context, input ForecastInput) (ForecastResult, error) {
	prompt := fmt.Sprintf("Historical Data: %s\nDay of Week: %s\nSales Patterns: %s",
		input.HistoricalData, input.DayOfWeek, input.SalesPatterns)

	messages := []message{
		{Role: "user", Content: []contentBlock{{Type: "text", Text: prompt}}},
		{Role: "assistant", Content: []contentBlock{{Type: "text", Text: "{"}}},
	}

	responseText, err := c.complete(ctx, forecastSystemPrompt, messages, true)
	if err != nil {
		return ForecastResult{}, err
	}

	var result ForecastResult
	if err := json.Unmarshal([]byte(responseText), &result); err != nil {
		return ForecastResult{}, fmt.Errorf("failed to unmarshal forecast response: %w. Response was: %s", err, responseText)
	}

	return result, nil
}

const shipmentSystemPrompt = `You are an inventory logistics expert. The required quantity for each item is the amount needed to reach its threshold. If an item's stock is at or above its threshold, 0 units are needed.

Generate a report in a spreadsheet-like format with the columns "Item", "Current Stock", "Threshold" and "Need to Order". Only include items where "Need to Order" is greater than 0. Reply with the report text only.`

// ShipmentReport formats the current inventory list into a human-readable
// reorder report.
func (c *anthropicClient) ShipmentReport(ctx context.Context, inventoryList string) (string, error) {
	messages := []message{
		{Role: "user", Content: []contentBlock{{Type: "text", Text: "Analyze the following inventory data:\n" + inventoryList}}},
	}

	return c.complete(ctx, shipmentSystemPrompt, messages, false)
}

func (c *anthropicClient) complete(ctx context.Context, system string, messages []message, prefilled bool) (string, error) {
	reqBody := messageRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  messages,
	}

	var respBody messageResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(apiURL)

	if err != nil {
		return "", fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("anthropic api error: %s", resp.String())
	}
	if len(respBody.Content) == 0 {
		return "", fmt.Errorf("empty response from ai")
	}

	responseText := respBody.Content[0].Text
	if prefilled {
		// Reconstruct the full JSON since we prefilled the opening brace.
		responseText = "{" + responseText
	}

	return stripCodeFences(responseText), nil
}

// stripCodeFences removes markdown code blocks in case the model wraps its
// JSON despite the prefill.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
