package profiler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/client-dashboard/internal/models"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var ErrEmptyDraft = errors.New("no persona content generated")

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if modelName == "" {
		modelName = "gemini-2.5-flash-lite"
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(2048)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiClient) Close() {
	g.client.Close()
}

// DraftPersona asks the model for a persona matching the target group of a service.
func (g *GeminiClient) DraftPersona(ctx context.Context, serviceName string, group models.TargetGroup) (models.Persona, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(BuildPrompt(serviceName, group)))
	if err != nil {
		return models.Persona{}, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return models.Persona{}, ErrEmptyDraft
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
			text.WriteString("\n")
		}
	}

	return ParsePersona(text.String())
}

// ParsePersona reads "key: value" lines into a persona. Unknown keys are ignored; the
// result must carry at least a name.
func ParsePersona(text string) (models.Persona, error) {
	data := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimLeft(strings.TrimSpace(line), "-* ")
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(parts[0]))
		key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
		data[key] = strings.TrimSpace(parts[1])
	}

	persona := models.Persona{
		Name:        data["name"],
		Bio:         data["bio"],
		Profession:  data["profession"],
		HasChildren: data["has_children"],
		Residence:   data["residence"],
		Likes:       data["likes"],
		PainPoints:  data["pain_points"],
		Motivations: data["motivations"],
	}
	if persona.Name == "" {
		return models.Persona{}, fmt.Errorf("%w: missing name in %q", ErrEmptyDraft, text)
	}
	return persona, nil
}

func BuildPrompt(serviceName string, group models.TargetGroup) string {
	if serviceName == "" {
		serviceName = "unnamed service"
	}
	interests := strings.Join(group.Interests, ", ")
	if interests == "" {
		interests = "unknown"
	}

	return fmt.Sprintf(`You are an expert market researcher working for a digital marketing agency. Write ONE customer persona for the service "%s".

The target group is:
age range: %s
location: %s
education: %s
interests: %s

Answer in Turkish. Output exactly one line per key in the format "key: value", with no other text, markdown or blank lines. Use only these keys in this order:

name: first name of the persona
bio: one sentence biography
profession: job title
has_children: Evet or Hayır
residence: district or city
likes: 2-3 things the persona likes
pain_points: 1-2 main pain points
motivations: 1-2 key motivations`,
		serviceName, orUnknown(group.AgeRange), orUnknown(group.Location), orUnknown(group.Education), interests)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
