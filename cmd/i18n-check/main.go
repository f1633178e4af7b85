package main

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/pflag"
)

// KeyRef is one place a translation key is used
type KeyRef struct {
	Key  string
	File string
	Line int
}

// Report holds the results for every locale file
type Report struct {
	Refs    []KeyRef
	Locales []LocaleResult
}

// LocaleResult lists what one locale is missing or carries unused
type LocaleResult struct {
	Name    string
	Total   int
	Missing []KeyRef
	Unused  []string
}

// I18nStrings represents the structure of an i18n JSON file
type I18nStrings map[string]string

// Keys are referenced from templates as {{i18n "key"}} and from Go as I18n("key")
var keyPattern = regexp.MustCompile(`(?:i18n "|I18n\(")([a-z0-9_]+(?:\.[a-z0-9_]+)+)"`)

// Keys built at runtime (tab titles) are listed by prefix so they count as used
var dynamicPrefixes = []string{"tab."}

var (
	projectPath string
	verbose     bool
)

func main() {
	flags := pflag.NewFlagSet("i18n-check", pflag.ExitOnError)
	flags.StringVar(&projectPath, "path", ".", "Path to the project root")
	flags.BoolVarP(&verbose, "verbose", "v", false, "List unused keys")
	flags.Parse(os.Args[1:])

	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving path: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("i18n Key Checker")
	fmt.Println("================")

	report, err := analyzeProject(absPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	failed := false
	fmt.Printf("%d key references found\n\n", len(report.Refs))
	for _, loc := range report.Locales {
		fmt.Printf("  %-8s %d keys, %d missing, %d unused\n", loc.Name+":", loc.Total, len(loc.Missing), len(loc.Unused))
		for _, ref := range loc.Missing {
			fmt.Printf("    missing %s (%s:%d)\n", ref.Key, ref.File, ref.Line)
		}
		if verbose {
			for _, key := range loc.Unused {
				fmt.Printf("    unused  %s\n", key)
			}
		}
		// Only the base locale must be complete; others fall back to it
		if loc.Name == "en" && len(loc.Missing) > 0 {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func analyzeProject(root string) (Report, error) {
	var report Report

	refs, err := collectRefs(root)
	if err != nil {
		return report, err
	}
	report.Refs = refs

	paths, err := filepath.Glob(filepath.Join(root, "internal", "config", "i18n", "*.json"))
	if err != nil {
		return report, err
	}
	sort.Strings(paths)
	for _, path := range paths {
		strs, err := loadI18nStrings(path)
		if err != nil {
			return report, err
		}
		report.Locales = append(report.Locales, checkLocale(strings.TrimSuffix(filepath.Base(path), ".json"), strs, refs))
	}
	return report, nil
}

// collectRefs scans every non-test Go file outside _examples, vendor and cmd
func collectRefs(root string) ([]KeyRef, error) {
	var refs []KeyRef
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || name == "vendor" || name == "cmd") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		refs = append(refs, findRefs(rel, string(content))...)
		return nil
	})
	return refs, err
}

func findRefs(file, content string) []KeyRef {
	var refs []KeyRef
	for i, line := range strings.Split(content, "\n") {
		for _, m := range keyPattern.FindAllStringSubmatch(line, -1) {
			refs = append(refs, KeyRef{Key: m[1], File: file, Line: i + 1})
		}
	}
	return refs
}

func checkLocale(name string, strs I18nStrings, refs []KeyRef) LocaleResult {
	result := LocaleResult{Name: name, Total: len(strs)}
	used := make(map[string]bool, len(refs))
	reported := make(map[string]bool)
	for _, ref := range refs {
		used[ref.Key] = true
		if _, ok := strs[ref.Key]; !ok && !reported[ref.Key] {
			reported[ref.Key] = true
			result.Missing = append(result.Missing, ref)
		}
	}
	for key := range strs {
		if !used[key] && !hasDynamicPrefix(key) {
			result.Unused = append(result.Unused, key)
		}
	}
	sort.Strings(result.Unused)
	return result
}

func hasDynamicPrefix(key string) bool {
	for _, p := range dynamicPrefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

func loadI18nStrings(path string) (I18nStrings, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	strs := make(I18nStrings)
	if err := json.Unmarshal(content, &strs); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return strs, nil
}
