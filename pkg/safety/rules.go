package safety

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Rules configure the screener. They can be loaded from a TOML file to tune
// the keyword list and crisis reply without rebuilding the binary.
type Rules struct {
	// Keywords are the crisis phrases to match. Matching ignores case,
	// punctuation, and spacing.
	Keywords []string `toml:"keywords"`

	// Hotline is the crisis line offered to users, "988" in the US.
	Hotline string `toml:"hotline"`

	// Reply is the message returned on a hit. The literal {hotline} is
	// replaced with the configured hotline number.
	Reply string `toml:"reply"`
}

// LoadRules reads a TOML rules file.
func LoadRules(path string) (Rules, error) {
	var rules Rules
	if _, err := toml.DecodeFile(path, &rules); err != nil {
		return Rules{}, fmt.Errorf("decode rules file %s: %w", path, err)
	}
	return rules, nil
}

// DefaultRules returns the built-in rule set. The phrase list covers the
// most direct expressions of suicidal ideation and self-harm; a deployment
// should extend it through a rules file rather than editing this list.
func DefaultRules() Rules {
	return Rules{
		Keywords: []string{
			"kill myself",
			"killing myself",
			"end my life",
			"take my life",
			"commit suicide",
			"suicide",
			"want to die",
			"wish i was dead",
			"better off dead",
			"no reason to live",
			"end it all",
			"hurt myself",
			"harm myself",
			"self harm",
			"cut myself",
			"cutting myself",
			"overdose",
		},
		Hotline: "988",
		Reply: "I'm really concerned about what you just shared. You deserve support " +
			"right now, and talking to a trained counselor can help. Please call or " +
			"text {hotline} (Suicide & Crisis Lifeline) to reach someone immediately. " +
			"If you are in immediate danger, call 911. You don't have to go through " +
			"this alone.",
	}
}
