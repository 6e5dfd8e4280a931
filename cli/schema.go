package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/compozy/actionschema/pkg/logger"
	"github.com/compozy/actionschema/pkg/schemagen"
)

// SchemaCmd writes the JSON Schemas of the action file format and the configuration file.
func SchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Write JSON Schemas for action files and the configuration file",
		Args:  cobra.NoArgs,
		RunE:  runSchema,
	}
	cmd.Flags().StringP("out", "o", "schemas", "Directory the schemas are written to")
	return cmd
}

func runSchema(cmd *cobra.Command, _ []string) error {
	logLevel, logJSON, logSource, err := logger.GetLoggerConfig(cmd)
	if err != nil {
		return err
	}
	log := logger.SetupLogger(cmd.ErrOrStderr(), logLevel, logJSON, logSource)
	ctx := logger.ContextWithLogger(cmd.Context(), log)
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	files, err := schemagen.NewSchemaGenerator(afero.NewOsFs()).Generate(ctx, outDir)
	if err != nil {
		return err
	}
	for _, file := range files {
		fmt.Fprintln(cmd.OutOrStdout(), file)
	}
	return nil
}
