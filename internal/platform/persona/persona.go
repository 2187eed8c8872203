package persona

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed persona.yaml
var personaFS embed.FS

const (
	defaultFallbackReply = "Desculpe, não consegui processar sua mensagem."
	defaultHistoryLimit  = 10
)

// MaxHistoryLimit is the most prior messages a chat turn may replay.
const MaxHistoryLimit = 200

// Persona is the assistant configuration used for every chat turn.
type Persona struct {
	Version       int     `yaml:"version"`
	Name          string  `yaml:"name"`
	SystemPrompt  string  `yaml:"system_prompt"`
	FallbackReply string  `yaml:"fallback_reply"`
	Temperature   float32 `yaml:"temperature"`
	MaxTokens     int     `yaml:"max_tokens"`
	HistoryLimit  int     `yaml:"history_limit"`
}

// Default returns the persona shipped in the binary.
func Default() (Persona, error) {
	raw, err := personaFS.ReadFile("persona.yaml")
	if err != nil {
		return Persona{}, fmt.Errorf("read embedded persona: %w", err)
	}
	return Parse(raw)
}

// Load reads the persona from path, or the embedded one when path is empty.
func Load(path string) (Persona, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Persona{}, fmt.Errorf("read persona %s: %w", path, err)
	}
	p, err := Parse(raw)
	if err != nil {
		return Persona{}, fmt.Errorf("persona %s: %w", path, err)
	}
	return p, nil
}

func Parse(raw []byte) (Persona, error) {
	var p Persona
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Persona{}, fmt.Errorf("parse persona yaml: %w", err)
	}
	p.SystemPrompt = strings.TrimSpace(p.SystemPrompt)
	p.FallbackReply = strings.TrimSpace(p.FallbackReply)
	if p.FallbackReply == "" {
		p.FallbackReply = defaultFallbackReply
	}
	if p.HistoryLimit == 0 {
		p.HistoryLimit = defaultHistoryLimit
	}
	if err := p.Validate(); err != nil {
		return Persona{}, err
	}
	return p, nil
}

func (p Persona) Validate() error {
	if p.SystemPrompt == "" {
		return fmt.Errorf("persona: system_prompt is empty")
	}
	if p.Temperature < 0 || p.Temperature > 2 {
		return fmt.Errorf("persona: temperature %.2f out of range [0,2]", p.Temperature)
	}
	if p.MaxTokens <= 0 {
		return fmt.Errorf("persona: max_tokens must be > 0")
	}
	if p.HistoryLimit < 1 || p.HistoryLimit > MaxHistoryLimit {
		return fmt.Errorf("persona: history_limit %d out of range [1,%d]", p.HistoryLimit, MaxHistoryLimit)
	}
	return nil
}
