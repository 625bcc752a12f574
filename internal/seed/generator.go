// ABOUTME: AI-powered data generator for realistic rota fixture data.
// ABOUTME: Uses OpenAI to generate members, slots, and events, with a static fallback.

package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/sashabaranov/go-openai"

	"github.com/2389/rota/internal/schedule"
	"github.com/2389/rota/internal/store"
)

// Size names the fixture scale.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

func (s Size) counts() (members, slotsPerMember, events int) {
	switch s {
	case SizeSmall:
		return 3, 4, 4
	case SizeLarge:
		return 10, 12, 20
	default:
		return 5, 8, 10
	}
}

// Generator creates fixture data using OpenAI or falls back to static data.
type Generator struct {
	client *openai.Client
	useAI  bool
	model  string
}

// NewGenerator creates a generator, loading the API key from .env if available.
func NewGenerator() *Generator {
	g := &Generator{}

	// Try to load .env from current dir or parent dirs
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	// Also check home directory
	if home, err := os.UserHomeDir(); err == nil {
		godotenv.Load(filepath.Join(home, ".env"))
	}

	g.model = os.Getenv("OPENAI_MODEL")
	if g.model == "" {
		g.model = "gpt-5-mini"
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey != "" {
		g.client = openai.NewClient(apiKey)
		g.useAI = true
		log.Printf("OpenAI API key found, using AI-generated data with model: %s", g.model)
	} else {
		log.Println("No OPENAI_API_KEY found, using static fallback data")
	}

	return g
}

// GeneratedData holds all the generated fixture data.
type GeneratedData struct {
	Members []schedule.Member `json:"members"`
	Slots   []schedule.Slot   `json:"slots"`
	Events  []schedule.Event  `json:"events"`
}

// Generate creates fixture data at the requested size.
func (g *Generator) Generate(ctx context.Context, size Size) (*GeneratedData, error) {
	numMembers, slotsPerMember, numEvents := size.counts()
	if !g.useAI {
		return g.generateStatic(numMembers, slotsPerMember, numEvents), nil
	}

	data, err := g.generateAI(ctx, numMembers, slotsPerMember, numEvents)
	if err != nil {
		log.Printf("AI generation failed (%v), falling back to static data...", err)
		return g.generateStatic(numMembers, slotsPerMember, numEvents), nil
	}
	return data, nil
}

func (g *Generator) generateAI(ctx context.Context, numMembers, slotsPerMember, numEvents int) (*GeneratedData, error) {
	now := time.Now()
	startDate := now.Format("2006-01-02")
	endDate := now.AddDate(0, 0, 14).Format("2006-01-02")

	prompt := fmt.Sprintf(`Generate scheduling fixture data for a team of %d people between %s and %s. Include:
- "members": array of objects with name (lowercase first name), email
- "slots": %d availability slots per member, objects with member_name, status (one of "good", "ok", "bad"), start_time (ISO 8601), end_time (ISO 8601)
- "events": %d team calendar events, objects with summary, description, start_time (ISO 8601), end_time (ISO 8601), attendees (array of member emails)

Slots should cover working hours and vary in status. Events should be meetings, standups, reviews, and social items distributed through the range.
Respond with one JSON object containing members, slots, and events.`, numMembers, startDate, endDate, slotsPerMember, numEvents)

	log.Printf("Generating %d members, %d slots each, %d events via AI...", numMembers, slotsPerMember, numEvents)
	return callOpenAI[*GeneratedData](ctx, g.client, g.model, prompt)
}

func callOpenAI[T any](ctx context.Context, client *openai.Client, model, prompt string) (T, error) {
	var result T

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a data generator. Always respond with valid JSON only, no markdown or explanation.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return result, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return result, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return result, nil
}

// Apply persists generated data, returning the record count.
func Apply(s *store.Store, data *GeneratedData) (int, error) {
	total := 0
	for i := range data.Members {
		if _, err := s.CreateMember(&data.Members[i]); err != nil {
			return total, fmt.Errorf("failed to seed member %q: %w", data.Members[i].Name, err)
		}
		total++
	}
	for i := range data.Slots {
		if _, err := s.CreateSlot(&data.Slots[i]); err != nil {
			return total, fmt.Errorf("failed to seed slot for %q: %w", data.Slots[i].MemberName, err)
		}
		total++
	}
	for i := range data.Events {
		if _, err := s.CreateEvent(&data.Events[i]); err != nil {
			return total, fmt.Errorf("failed to seed event %q: %w", data.Events[i].Summary, err)
		}
		total++
	}
	return total, nil
}
