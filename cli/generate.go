package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/compozy/actionschema/engine/action"
	"github.com/compozy/actionschema/pkg/config"
	"github.com/compozy/actionschema/pkg/logger"
)

func GenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate input and output schemas for every discovered action file",
		Args:  cobra.NoArgs,
		RunE:  runGenerate,
	}

	cmd.Flags().String("root", ".", "Directory searched for action files")
	cmd.Flags().StringSlice("include", nil, "Glob patterns of action files, relative to root")
	cmd.Flags().StringSlice("exclude", nil, "Glob patterns excluded from discovery")
	cmd.Flags().StringP("output", "o", "schemas", "Directory the schemas are written to, relative to root")
	cmd.Flags().String("format", "json", "Output format (json, yaml)")
	cmd.Flags().Bool("pretty", true, "Indent JSON output")
	cmd.Flags().Bool("check", false, "Compile every generated schema before writing it")

	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	if _, err := loadEnvFile(cmd); err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logger.SetupLogger(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.JSON, cfg.Log.Source)
	ctx := logger.ContextWithLogger(cmd.Context(), log)

	svc, err := action.NewService(afero.NewOsFs(), action.Options{
		Root:      cfg.Generate.Root,
		Include:   cfg.Generate.Include,
		Exclude:   cfg.Generate.Exclude,
		OutputDir: cfg.Generate.OutputDir,
		Format:    action.Format(cfg.Generate.Format),
		Pretty:    cfg.Generate.Pretty,
		Check:     cfg.Generate.Check,
	})
	if err != nil {
		return err
	}
	results, err := svc.Run(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, result := range results {
		fmt.Fprintf(out, "%s\t%s\n", result.Name, result.Target)
	}
	return nil
}

// loadConfig loads configuration using pkg/config with CLI flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	sources := []config.Source{}
	if configFile != "" {
		sources = append(sources, config.NewYAMLProvider(configFile))
	}
	sources = append(sources, config.NewCLIProvider(extractCLIFlags(cmd)))
	cfg, err := config.NewService().Load(cmd.Context(), sources...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
