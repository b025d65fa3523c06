package relay

import "time"

// Config is the backend relay configuration. Values come from the
// environment (see the env tags) and can be overridden by serve flags.
type Config struct {
	// Address to listen on (e.g., ":8080")
	ListenAddr string `env:"LISTEN_ADDR,default=:8080"`

	// ResponderURL is the endpoint of the external AI responder.
	ResponderURL string `env:"RESPONDER_URL,default=http://127.0.0.1:8000/respond"`

	// DBPath is the path to the SQLite database file.
	// Empty selects the in-memory store.
	DBPath string `env:"DB_PATH,default=data/users.db"`

	// ResponderTimeout bounds each outbound call to the responder.
	ResponderTimeout time.Duration `env:"RESPONDER_TIMEOUT,default=2m"`

	// SafetyRulesPath points at a TOML rules file for the crisis screener.
	// Empty uses the built-in rules.
	SafetyRulesPath string `env:"SAFETY_RULES"`

	// SafetyDisabled turns off crisis screening entirely.
	SafetyDisabled bool `env:"SAFETY_DISABLED,default=false"`

	// Hotline overrides the crisis hotline number offered to users.
	Hotline string `env:"CRISIS_HOTLINE"`

	// Debug enables debug logging.
	Debug bool `env:"DEBUG,default=false"`
}
