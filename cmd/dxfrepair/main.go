/*
 * Copyright © 2025 Draftbase Software, All rights reserved.
 */

// Command dxfrepair loads a tag stream, repairs missing owner
// references, and writes the partitioned entities back out.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/draftbase/dxfspace"
	"github.com/draftbase/dxfspace/document"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	configFlag  = flag.String("config", "dxfrepair.yaml", "Path to the YAML configuration file")
)

// Config names the input and output streams and the layout keys the
// repair resolves entities into.
type Config struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Version  string `yaml:"version"`
	ModelKey string `yaml:"model_key"`
	PaperKey string `yaml:"paper_key"`
	Logging  struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"logging"`
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := &Config{Version: "AC1018"}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Input == "" || cfg.Output == "" {
		return nil, fmt.Errorf("config must name input and output files")
	}
	if cfg.ModelKey == "" || cfg.PaperKey == "" {
		return nil, fmt.Errorf("config must name model_key and paper_key")
	}
	return cfg, nil
}

func newLogger(cfg *Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Logging.Development {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	if cfg.Logging.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Logging.Level)
		if err != nil {
			return nil, fmt.Errorf("parsing log level: %w", err)
		}
		zapCfg.Level = level
	}
	return zapCfg.Build()
}

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := dxfspace.GetVersionInfo()
		fmt.Printf("dxfspace dxfrepair version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if err := run(*configFlag); err != nil {
		fmt.Fprintf(os.Stderr, "dxfrepair: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	doc, err := document.New(cfg.Input, cfg.Version, document.WithLogger(log))
	if err != nil {
		return err
	}

	in, err := os.Open(cfg.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := doc.Load(in); err != nil {
		return fmt.Errorf("loading %s: %w", cfg.Input, err)
	}
	log.Info("document loaded",
		zap.String("input", cfg.Input),
		zap.String("version", cfg.Version),
		zap.Int("entities", doc.Registry().Len()),
	)

	if err := doc.Repair(cfg.ModelKey, cfg.PaperKey); err != nil {
		return fmt.Errorf("repairing owner tags: %w", err)
	}

	out, err := os.Create(cfg.Output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := doc.Write(out); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Output, err)
	}
	log.Info("document written",
		zap.String("output", cfg.Output),
		zap.Strings("keys", doc.Registry().Keys()),
	)
	return nil
}
