package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/xlsxdiff/internal/command"
)

// Page is the hand-written part of the docs, read from
// templates/xlsxdiff.yaml.
type Page struct {
	Short       string          `yaml:"short"`
	Description string          `yaml:"description"`
	Usage       string          `yaml:"usage"`
	Flags       map[string]Flag `yaml:"flags"`
	Examples    []Example       `yaml:"examples"`
	Notes       []string        `yaml:"notes,omitempty"`
}

type Flag struct {
	ID          string   `yaml:"id"`
	Syntax      string   `yaml:"syntax"`
	Description string   `yaml:"description"`
	Default     string   `yaml:"default,omitempty"`
	More        string   `yaml:"more,omitempty"`
	Env         []string `yaml:"-"`
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type TemplateData struct {
	Page
	FlagList []Flag
	Date     string
	Version  string
}

type Outputs struct {
	Template string
	Folder   string
	Name     string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen DOCS_DIR")
		os.Exit(1)
	}
	docs := os.Args[1]

	data, err := os.ReadFile(filepath.Join(docs, "templates", "xlsxdiff.yaml"))
	if err != nil {
		panic(err)
	}
	var page Page
	if err := yaml.Unmarshal(data, &page); err != nil {
		panic(err)
	}

	metadata := TemplateData{
		Page:     page,
		FlagList: mergeFlags(command.NewDiffFlags(""), page.Flags),
		Date:     time.Now().Format("January 2, 2006"),
		Version:  getVersion(),
	}

	types := []Outputs{
		{Template: "xlsxdiff.md.tmpl", Folder: "commands", Name: "xlsxdiff.md"},
		{Template: "xlsxdiff.man.tmpl", Folder: filepath.Join("man", "share", "man1"), Name: "xlsxdiff.1"},
	}

	for _, t := range types {
		folder := filepath.Join(docs, t.Folder)
		if err := os.MkdirAll(folder, 0755); err != nil {
			panic(err)
		}

		path := filepath.Join(folder, t.Name)
		fmt.Println("Generating", path)
		file, err := os.Create(path)
		if err != nil {
			panic(err)
		}
		if err := render(file, filepath.Join(docs, "templates", t.Template), metadata); err != nil {
			panic(err)
		}
		file.Close()
	}
}

// mergeFlags describes every flag the command defines. Entries in the page
// override the flag's own usage text.
func mergeFlags(flags []cli.Flag, overrides map[string]Flag) []Flag {
	result := make([]Flag, 0, len(flags))
	for _, f := range flags {
		names := f.Names()
		entry := Flag{ID: names[0]}

		var syntax []string
		for _, n := range names {
			if len(n) == 1 {
				syntax = append(syntax, "-"+n)
			} else {
				syntax = append(syntax, "--"+n)
			}
		}
		entry.Syntax = strings.Join(syntax, ", ")

		if df, ok := f.(cli.DocGenerationFlag); ok {
			entry.Description = df.GetUsage()
			entry.Env = df.GetEnvVars()
			if df.TakesValue() {
				entry.Syntax += " VALUE"
			}
		}

		if o, ok := overrides[entry.ID]; ok {
			if o.Description != "" {
				entry.Description = o.Description
			}
			if o.Syntax != "" {
				entry.Syntax = o.Syntax
			}
			entry.Default = o.Default
			entry.More = o.More
		}
		result = append(result, entry)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

func render(w io.Writer, tmplPath string, data TemplateData) error {
	tmpl, err := template.New(filepath.Base(tmplPath)).
		Funcs(template.FuncMap{"upper": strings.ToUpper, "join": strings.Join}).
		ParseFiles(tmplPath)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, data)
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
