package main

import (
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/soask/openai"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Question []string `arg:"" required:"" help:"Question to ask. Words are joined with spaces."`

	Questions int    `short:"q" default:"1" help:"Matched questions to draw answers from. Above 1 only questions with an accepted answer are searched."`
	Answers   int    `short:"n" default:"3" help:"Maximum answers passed to the model."`
	Output    string `short:"o" default:"llm_response.txt" help:"Transcript file, replaced on every run."`
	Archive   string `help:"SQLite database that keeps every run."`
	Format    string `enum:"text,markdown" default:"text" help:"Answer cleaning: plain text or markdown."`
	Site      string `default:"stackoverflow" help:"Stack Exchange site to search."`

	Backend  string        `enum:"openai,gemini" default:"openai" help:"Synthesis backend."`
	Model    string        `help:"Model name. Empty selects the backend default."`
	Endpoint string        `default:"${endpoint}" help:"Chat completions URL for the openai backend."`
	Project  string        `default:"${project}" help:"Project tag sent with the bearer token."`
	Token    string        `env:"LLMFOUNDRY_TOKEN" help:"Bearer token for the openai backend."`
	APIKey   string        `name:"gemini-key" env:"GEMINI_API_KEY" help:"API key for the gemini backend."`
	NoStream bool          `help:"Wait for the complete answer instead of streaming it."`
	Timeout  time.Duration `default:"10s" help:"Timeout for Stack Exchange requests."`

	Verbose bool            `short:"v" help:"Log progress to stderr."`
	Config  kong.ConfigFlag `help:"TOML file with flag defaults."`
}

// vars supplies defaults shared with the implementation packages.
var vars = kong.Vars{
	"endpoint": openai.DefaultEndpoint,
	"project":  openai.DefaultProject,
}
