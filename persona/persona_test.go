package persona

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperfeather/magpie/agent"
	"github.com/hyperfeather/magpie/hyperbolic"
)

func TestLoadCharacter(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "character.json")
	blob := `{
		"name": "Nutmeg",
		"description": "a cheerful gardening assistant",
		"adjectives": ["warm", "practical"],
		"topics": ["seasonal planting", "soil health"],
		"instructions": "Keep advice actionable.",
		"style": {"post": ["Mention one plant by name."]}
	}`
	require.NoError(t, os.WriteFile(path, []byte(blob), 0644))

	c, err := LoadCharacter(path)
	require.NoError(t, err)
	assert.Equal("Nutmeg", c.Name)
	assert.Equal("a cheerful gardening assistant", c.Description)
	assert.Equal([]string{"warm", "practical"}, c.Adjectives)
	assert.Equal(2, len(c.Topics))
	assert.Equal([]string{"Mention one plant by name."}, c.Style.Post)
}

func TestLoadCharacterRejectsBadFiles(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	missing := filepath.Join(dir, "nope.json")
	_, err := LoadCharacter(missing)
	assert.Error(err)

	noName := filepath.Join(dir, "noname.json")
	require.NoError(t, os.WriteFile(noName, []byte(`{"description": "anonymous"}`), 0644))
	_, err = LoadCharacter(noName)
	assert.ErrorContains(err, "name")

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("{not json"), 0644))
	_, err = LoadCharacter(garbage)
	assert.Error(err)
}

func TestPostPrompt(t *testing.T) {
	assert := assert.New(t)

	c := Default()
	prompt := c.PostPrompt()
	assert.Contains(prompt, "You are Magpie,")
	assert.Contains(prompt, "Instructions:")
	assert.Contains(prompt, "Choose ONE of these topics:")
	assert.Contains(prompt, "1. recent price movements")
	assert.Contains(prompt, "under 280 characters")
}

func TestReplyPromptsQuoteInboundText(t *testing.T) {
	assert := assert.New(t)

	c := &Character{Name: "Nutmeg", Style: Style{Reply: []string{"Sign off with a leaf emoji."}}}

	reply := c.ReplyPrompt("when should I plant garlic?")
	assert.Contains(reply, "Someone tweeted at you: 'when should I plant garlic?'")
	assert.Contains(reply, "Stay under 280 characters")
	assert.Contains(reply, "Sign off with a leaf emoji.")

	dm := c.DirectReplyPrompt("can you explain mulching?")
	assert.Contains(dm, "Someone sent you a direct message: 'can you explain mulching?'")
	assert.Contains(dm, "more detailed information than in a public tweet")
	assert.Contains(dm, "Sign off with a leaf emoji.")
}

func TestGeneratorTokenBudgets(t *testing.T) {
	assert := assert.New(t)

	type call struct {
		Prompt    string `json:"prompt"`
		Model     string `json:"model_id"`
		MaxTokens int    `json:"max_tokens"`
	}
	var calls []call

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("/v1/generate", r.URL.Path)
		var c call
		assert.NoError(json.NewDecoder(r.Body).Decode(&c))
		calls = append(calls, c)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": "  something sharp about the market  "}`))
	}))
	defer srv.Close()

	client := hyperbolic.NewClient("hyp-test-key")
	client.Host = srv.URL

	gen, err := NewGenerator(client, nil, "meta-llama/Meta-Llama-3.1-70B-Instruct")
	require.NoError(t, err)

	ctx := context.Background()

	post, err := gen.GeneratePost(ctx)
	assert.NoError(err)
	assert.Equal("something sharp about the market", post)

	_, err = gen.GenerateReply(ctx, agent.Mention{ID: "42", Text: "is BTC dead again?"})
	assert.NoError(err)

	_, err = gen.GenerateDirectReply(ctx, agent.DMEvent{ID: "9", Text: "explain staking to me"})
	assert.NoError(err)

	if assert.Equal(3, len(calls)) {
		assert.Equal(100, calls[0].MaxTokens)
		assert.Equal(200, calls[1].MaxTokens)
		assert.Equal(500, calls[2].MaxTokens)
		for _, c := range calls {
			assert.Equal("meta-llama/Meta-Llama-3.1-70B-Instruct", c.Model)
		}
		assert.Contains(calls[1].Prompt, "is BTC dead again?")
		assert.Contains(calls[2].Prompt, "explain staking to me")
	}
}

func TestNewGeneratorValidation(t *testing.T) {
	assert := assert.New(t)

	_, err := NewGenerator(nil, Default(), "some-model")
	assert.Error(err)

	_, err = NewGenerator(hyperbolic.NewClient("k"), Default(), "")
	assert.ErrorContains(err, "model")
}
