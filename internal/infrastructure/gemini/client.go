package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fredluz/Cupido/internal/domain"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(apiKey string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-pro")
	model.SetTemperature(0.7)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Close() {
	c.client.Close()
}

// GenerateIcebreakers suggests openers for a freshly created 1:1 thread.
// The prompt only sees quiz categories and course metadata, never names:
// the pair is still anonymous to each other when this runs.
func (c *GeminiClient) GenerateIcebreakers(ctx context.Context, a, b *domain.Profile, compatibility int) ([]string, error) {
	prompt := fmt.Sprintf(`
		Generate 3 creative icebreaker messages for two anonymous people
		matched at a university dating event.
		Person 1 strongest trait: %s (course %s, %s)
		Person 2 strongest trait: %s (course %s, %s)
		Compatibility score: %d out of 100.

		Task: Create 3 distinct opening lines either person could send.
		They do not know each other's names, so never invent one.
		Focus on shared traits or interesting contrasts.
		Language: Portuguese (Portugal).
		Output: JSON array of strings. Example: ["Olá...", "Então..."]
	`,
		a.Scores().Dominant(), a.CourseCode, a.StudyYear,
		b.Scores().Dominant(), b.CourseCode, b.StudyYear,
		compatibility,
	)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	responseText := strings.TrimSpace(sb.String())
	// Clean up markdown code blocks if present
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")

	var icebreakers []string
	if err := json.Unmarshal([]byte(responseText), &icebreakers); err != nil {
		// Fallback if JSON parsing fails - just return raw text split by newlines
		lines := strings.Split(responseText, "\n")
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line != "" && !strings.HasPrefix(line, "[") && !strings.HasSuffix(line, "]") {
				icebreakers = append(icebreakers, line)
			}
		}
		if len(icebreakers) == 0 {
			return nil, fmt.Errorf("failed to parse icebreakers: %w", err)
		}
	}

	return icebreakers, nil
}
