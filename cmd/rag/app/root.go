// Package app wires configuration, components and the terminal UI into the
// rag command tree.
package app

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/config"
)

const commandDesc = `Answer questions about a Java textbook.

The textbook is preprocessed once with "rag ingest" into a chunk file and an
embedding file. "rag chat" loads both, embeds each question, retrieves the
most similar passages and asks a hosted model to answer from them.`

type rootOptions struct {
	configPath string
}

// NewRootCommand builds the rag command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "rag",
		Short:         "Java textbook question answering",
		Long:          commandDesc,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			// .env is optional; keys may come from the real environment.
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML config file (default ./config.yaml or ~/.config/rag/config.yaml)")

	cmd.AddCommand(newChatCommand(opts), newIngestCommand(opts), newConfigCommand())
	return cmd
}

// loadConfig reads the file named by --config, or the default locations.
func (o *rootOptions) loadConfig() (*config.AppConfig, string, error) {
	if o.configPath == "" {
		return config.LoadDefault()
	}
	cfg, err := config.Load(o.configPath)
	return cfg, o.configPath, err
}
