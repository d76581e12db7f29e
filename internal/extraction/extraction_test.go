package extraction

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-screener/internal/areas"
)

func TestValidateFullPayload(t *testing.T) {
	raw := json.RawMessage(`{
		"name": "  Ana Souza ",
		"email": "ana@example.org",
		"phone": "",
		"areas": ["Docência", "Tecnologia", "Professora", "Jurídico", "Ensino"],
		"culture_score": 7.5,
		"real_experience": true,
		"culture_score_description": "monitoria de matemática",
		"summary": "   "
	}`)

	got, err := Validate(raw)
	require.NoError(t, err)

	require.NotNil(t, got.Name)
	assert.Equal(t, "Ana Souza", *got.Name)
	require.NotNil(t, got.Email)
	assert.Equal(t, "ana@example.org", *got.Email)
	assert.Nil(t, got.Phone, "blank phone must be absent")
	assert.Nil(t, got.Summary, "blank summary must be absent")
	assert.Equal(t, 8, got.CultureScore)
	assert.True(t, got.RealExperience)
	assert.Equal(t, []areas.Area{areas.ValeDoSilicio, areas.Docencia, areas.Ministerio}, got.Areas)
}

func TestValidateScoreCoercion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		score string
		want  int
	}{
		{name: "below range", score: `-3`, want: 0},
		{name: "above range", score: `42`, want: 10},
		{name: "half rounds up", score: `4.5`, want: 5},
		{name: "below half rounds down", score: `4.49`, want: 4},
		{name: "numeric string", score: `"6"`, want: 6},
		{name: "comma decimal", score: `"6,5"`, want: 7},
		{name: "non numeric string", score: `"alto"`, want: 0},
		{name: "null", score: `null`, want: 0},
		{name: "bool", score: `true`, want: 1},
		{name: "beyond float64", score: `1e400`, want: 10},
		{name: "string beyond float64", score: `"1e400"`, want: 10},
		{name: "negative beyond float64", score: `"-1e400"`, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			raw := json.RawMessage(`{"areas":[],"culture_score":` + tt.score + `,"real_experience":false}`)
			got, err := Validate(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.CultureScore)
		})
	}
}

func TestValidateRealExperienceCoercion(t *testing.T) {
	cases := map[string]bool{
		`"sim"`:    true,
		`"false"`:  false,
		`1`:        true,
		`0`:        false,
		`null`:     false,
		`"não"`:    false,
		`""`:       false,
		`"talvez"`: true,
		`"maybe"`:  true,
		`2.5`:      true,
	}
	for in, want := range cases {
		raw := json.RawMessage(`{"areas":["ti"],"culture_score":3,"real_experience":` + in + `}`)
		got, err := Validate(raw)
		require.NoError(t, err, in)
		assert.Equal(t, want, got.RealExperience, in)
	}
}

func TestValidateMissingRealExperience(t *testing.T) {
	got, err := Validate(json.RawMessage(`{"areas":["tec"],"culture_score":7}`))
	require.NoError(t, err)
	assert.False(t, got.RealExperience)
	assert.Equal(t, 7, got.CultureScore)
}

func TestValidateMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ``},
		{name: "not json", raw: `here is your json: {`},
		{name: "array root", raw: `[1,2,3]`},
		{name: "missing areas", raw: `{"culture_score":3,"real_experience":true}`},
		{name: "missing score", raw: `{"areas":[],"real_experience":true}`},
		{name: "areas wrong type", raw: `{"areas":"ti","culture_score":3,"real_experience":true}`},
		{name: "score object", raw: `{"areas":[],"culture_score":{"v":3},"real_experience":true}`},
		{name: "name number", raw: `{"name":12,"areas":[],"culture_score":3,"real_experience":true}`},
		{name: "bad email", raw: `{"email":"not-an-email","areas":[],"culture_score":3,"real_experience":true}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Validate(json.RawMessage(tt.raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestValidateAcceptsEmptyAreas(t *testing.T) {
	got, err := Validate(json.RawMessage(`{"areas":["culinária"],"culture_score":2,"real_experience":false,"email":"  "}`))
	require.NoError(t, err)
	assert.Empty(t, got.Areas)
	assert.Nil(t, got.Email)
}

func TestValidateTruncatesLongText(t *testing.T) {
	long := strings.Repeat("á", 500)
	raw, err := json.Marshal(map[string]any{
		"areas":                     []string{"Hogwarts"},
		"culture_score":             5,
		"real_experience":           false,
		"culture_score_description": long,
		"summary":                   long,
	})
	require.NoError(t, err)

	got, err := Validate(raw)
	require.NoError(t, err)
	require.NotNil(t, got.CultureScoreDescription)
	require.NotNil(t, got.Summary)
	assert.Equal(t, MaxDescriptionRunes, len([]rune(*got.CultureScoreDescription)))
	assert.Equal(t, MaxSummaryRunes, len([]rune(*got.Summary)))
}

func TestValidateStripsCodeFence(t *testing.T) {
	raw := json.RawMessage("```json\n{\"areas\":[\"monitoria\"],\"culture_score\":\"9\",\"real_experience\":\"não\"}\n```")

	got, err := Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, []areas.Area{areas.Docencia}, got.Areas)
	assert.Equal(t, 9, got.CultureScore)
	assert.False(t, got.RealExperience)
}
