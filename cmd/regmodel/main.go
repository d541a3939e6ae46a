/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command regmodel generates Django models (and optionally data fixtures)
// from live register schemas.
//
// Usage:
//
//	regmodel -register territory -output ./models
//	regmodel -config registers.yaml -fixtures -output ./models
//
// An API key is read from the OPENREGISTER_API_KEY environment variable
// (a .env file in the working directory is honoured) unless the config
// file sets one.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/suparena/openregister"
	"github.com/suparena/openregister/modelgen"
)

var (
	versionFlag  = flag.Bool("version", false, "Show version information")
	vFlag        = flag.Bool("v", false, "Show version information (short)")
	configFlag   = flag.String("config", "", "Path to a YAML config file")
	registerFlag = flag.String("register", "", "Register to generate a model for")
	outputFlag   = flag.String("output", ".", "Directory to write generated files to")
	fixturesFlag = flag.Bool("fixtures", false, "Also write a Django data fixture per register")
	alphaFlag    = flag.Bool("alpha", false, "Use the alpha register environment")
)

// config mirrors the YAML config file; flags override its values.
type config struct {
	URLTemplate string   `yaml:"url_template"`
	PageSize    int      `yaml:"page_size"`
	APIKey      string   `yaml:"api_key"`
	Registers   []string `yaml:"registers"`
	Fixtures    bool     `yaml:"fixtures"`
}

func main() {
	// Parse flags early to catch version flag
	flag.Parse()

	// Handle version flag
	if *versionFlag || *vFlag {
		info := openregister.GetVersionInfo()
		fmt.Printf("openregister regmodel version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "regmodel: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine; the variable may be set directly.
	_ = godotenv.Load()

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		return err
	}
	if *registerFlag != "" {
		cfg.Registers = append(cfg.Registers, *registerFlag)
	}
	if len(cfg.Registers) == 0 {
		return fmt.Errorf("no registers requested; use -register or a config file")
	}
	if *fixturesFlag {
		cfg.Fixtures = true
	}
	if cfg.URLTemplate == "" {
		cfg.URLTemplate = openregister.BetaURLTemplate
		if *alphaFlag {
			cfg.URLTemplate = openregister.AlphaURLTemplate
		}
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENREGISTER_API_KEY")
	}

	var clientOpts []openregister.Option
	if cfg.PageSize > 0 {
		clientOpts = append(clientOpts, openregister.WithPageSize(cfg.PageSize))
	}
	if cfg.APIKey != "" {
		clientOpts = append(clientOpts, openregister.WithAPIKey(cfg.APIKey))
	}

	d := openregister.NewDiscovery(
		openregister.WithURLTemplate(cfg.URLTemplate),
		openregister.WithClientOptions(clientOpts...),
	)

	if err := os.MkdirAll(*outputFlag, 0o755); err != nil {
		return err
	}

	ctx := context.Background()
	for _, name := range cfg.Registers {
		if err := generate(ctx, d, cfg, name); err != nil {
			return fmt.Errorf("register %q: %w", name, err)
		}
	}
	return nil
}

func loadConfig(path string) (config, error) {
	var cfg config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func generate(ctx context.Context, d *openregister.Discovery, cfg config, name string) error {
	client, err := d.Register(ctx, name)
	if err != nil {
		return err
	}

	factory := modelgen.New(client.Schema(), client.BaseURL(),
		modelgen.WithRootTemplate(cfg.URLTemplate))

	code, err := factory.ModelCode()
	if err != nil {
		return err
	}

	modelPath := filepath.Join(*outputFlag, modelgen.AttrName(name)+".py")
	if err := os.WriteFile(modelPath, []byte(code), 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", modelPath)

	if !cfg.Fixtures {
		return nil
	}

	records, err := client.AllRecords(ctx)
	if err != nil {
		return err
	}
	fixturePath := filepath.Join(*outputFlag, modelgen.AttrName(name)+".json")
	out, err := os.Create(fixturePath)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	modelLabel := "registers." + modelgen.AttrName(name)
	if err := factory.WriteFixtures(modelLabel, records, out); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d records)\n", fixturePath, len(records))
	return nil
}
