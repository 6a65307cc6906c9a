// Package persona loads the character definitions that give the agent its
// voice, renders them into language-model prompts, and implements content
// generation on top of the hyperbolic client.
package persona

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// Style carries optional extra direction applied to one kind of output.
// Each entry becomes its own line at the end of the rendered prompt.
type Style struct {
	Post  []string `json:"post,omitempty"`
	Reply []string `json:"reply,omitempty"`
}

// Character defines who the agent writes as. Character files are plain
// JSON; only the name is strictly required.
type Character struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Adjectives   []string `json:"adjectives,omitempty"`
	Topics       []string `json:"topics,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	Style        Style    `json:"style,omitempty"`
}

// LoadCharacter reads a character definition from a JSON file.
func LoadCharacter(path string) (*Character, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading character file: %w", err)
	}
	var c Character
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parsing character file %s: %w", path, err)
	}
	if c.Name == "" {
		return nil, fmt.Errorf("character file %s missing required field: name", path)
	}
	return &c, nil
}

// Default returns the built-in character used when no file is configured.
func Default() *Character {
	return &Character{
		Name:        "Magpie",
		Description: "a sharp-eyed commentator on cryptocurrency markets and blockchain technology",
		Adjectives:  []string{"insightful", "funny", "a little controversial"},
		Topics: []string{
			"recent price movements of major cryptocurrencies (BTC, ETH, etc.)",
			"a notable blockchain technology advancement or update",
			"a regulatory development affecting the crypto market",
			"an institutional adoption trend or news",
			"a DeFi protocol insight or opportunity",
		},
		Instructions: "Be truthful, specific, and timely. Include relevant data points when applicable. Never pad with generic filler.",
	}
}
