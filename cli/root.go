package cli

import (
	"github.com/spf13/cobra"

	"github.com/compozy/actionschema/pkg/version"
)

const (
	defaultConfigFile = "actionschema.yaml"
	defaultEnvFile    = ".env"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "actionschema",
		Short:        "Derive input and output JSON Schemas for integration actions",
		Version:      version.Get().String(),
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", defaultConfigFile, "Path to the configuration file")
	root.PersistentFlags().String("env-file", defaultEnvFile, "Path to a .env file loaded before configuration")
	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error, disabled)")
	root.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	root.PersistentFlags().Bool("log-source", false, "Include caller information in logs")

	root.AddCommand(
		GenerateCmd(),
		SchemaCmd(),
		VersionCmd(),
	)

	return root
}
