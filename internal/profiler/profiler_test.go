package profiler

import (
	"testing"

	"github.com/BerylCAtieno/client-dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePersona(t *testing.T) {
	text := `name: Elif
bio: İstanbul'da yaşayan genç bir girişimci.
profession: Kafe sahibi
has_children: Hayır
residence: Beşiktaş
likes: tasarım, kahve, seyahat
pain_points: zaman darlığı
motivations: prestij, konfor`

	p, err := ParsePersona(text)
	require.NoError(t, err)
	assert.Equal(t, models.Persona{
		Name:        "Elif",
		Bio:         "İstanbul'da yaşayan genç bir girişimci.",
		Profession:  "Kafe sahibi",
		HasChildren: "Hayır",
		Residence:   "Beşiktaş",
		Likes:       "tasarım, kahve, seyahat",
		PainPoints:  "zaman darlığı",
		Motivations: "prestij, konfor",
	}, p)
}

func TestParsePersona_Lenient(t *testing.T) {
	text := "\n- Name: Can\n* Has Children: Evet\nnoise line\nPain-Points: bütçe\n"

	p, err := ParsePersona(text)
	require.NoError(t, err)
	assert.Equal(t, "Can", p.Name)
	assert.Equal(t, "Evet", p.HasChildren)
	assert.Equal(t, "bütçe", p.PainPoints)
}

func TestParsePersona_MissingName(t *testing.T) {
	_, err := ParsePersona("bio: something")
	assert.ErrorIs(t, err, ErrEmptyDraft)

	_, err = ParsePersona("")
	assert.ErrorIs(t, err, ErrEmptyDraft)
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("İç Mimarlık", models.TargetGroup{
		AgeRange:  "30-45",
		Education: models.EducationEducated,
		Interests: []string{"tasarım", "sanat"},
	})

	assert.Contains(t, prompt, `"İç Mimarlık"`)
	assert.Contains(t, prompt, "age range: 30-45")
	assert.Contains(t, prompt, "location: unknown")
	assert.Contains(t, prompt, "interests: tasarım, sanat")
	assert.Contains(t, BuildPrompt("", models.TargetGroup{}), "unnamed service")
}
