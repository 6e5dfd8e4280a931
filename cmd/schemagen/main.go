package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/compozy/actionschema/pkg/logger"
	"github.com/compozy/actionschema/pkg/schemagen"
)

func main() {
	outDir := flag.String("out", "./schemas", "output directory for generated schemas")
	flag.Parse()

	absOutDir, err := filepath.Abs(*outDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting path to absolute: %v\n", err)
		os.Exit(1)
	}
	log := logger.SetupLogger(os.Stderr, string(logger.InfoLevel), false, false)
	ctx := logger.ContextWithLogger(context.Background(), log)
	files, err := schemagen.NewSchemaGenerator(afero.NewOsFs()).Generate(ctx, absOutDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating schemas: %v\n", err)
		os.Exit(1)
	}
	for _, file := range files {
		fmt.Println(file)
	}
}
