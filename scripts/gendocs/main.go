// Package main generates the aliasmap reference documentation from the
// cobra command tree and the config struct.
//
// Usage:
//
//	go run ./scripts/gendocs -gen=cli -outdir=docs/cli
//	go run ./scripts/gendocs -gen=config -outdir=docs
//	go run ./scripts/gendocs -gen=all -outdir=site
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

var (
	genFlag    = flag.String("gen", "all", "what to generate: cli, config, all")
	outDirFlag = flag.String("outdir", "", "output directory (defaults based on gen type)")
)

func main() {
	flag.Parse()

	validGenFlags := map[string]bool{"cli": true, "config": true, "all": true}
	if !validGenFlags[*genFlag] {
		log.Fatalf("unknown -gen value: %s (use: cli, config, all)", *genFlag)
	}

	projectRoot, err := findProjectRoot()
	if err != nil {
		log.Fatalf("failed to find project root: %v", err)
	}

	log.Printf("Project root: %s", projectRoot)

	if err := generateDocs(*genFlag, projectRoot, *outDirFlag); err != nil {
		log.Fatal(err)
	}

	log.Println("Done!")
}

// generateDocs writes the pages selected by gen. A non-empty override
// replaces every default directory under root.
func generateDocs(gen, root, override string) error {
	outDir := func(def string) string {
		if override != "" {
			return override
		}
		return filepath.Join(root, def)
	}

	if gen == "cli" || gen == "all" {
		if err := generateCLIDocs(outDir(filepath.Join("docs", "cli"))); err != nil {
			return fmt.Errorf("failed to generate CLI docs: %w", err)
		}
	}
	if gen == "config" || gen == "all" {
		if err := generateConfigDocs(outDir("docs")); err != nil {
			return fmt.Errorf("failed to generate config docs: %w", err)
		}
	}
	return nil
}

// findProjectRoot walks up from current directory to find go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
