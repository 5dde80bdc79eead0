package contents

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/hashicorp-forge/recipe-builder/internal/cmd/base"
	"github.com/hashicorp-forge/recipe-builder/pkg/database"
	"github.com/hashicorp-forge/recipe-builder/pkg/models"
)

type Command struct {
	*base.Command

	flagConfig string
	flagTenant string
	flagFormat string
}

// Summary lists the ids and names an instruction file refers to.
type Summary struct {
	Packages          []Entry `json:"packages" yaml:"packages"`
	DocumentTemplates []Entry `json:"documentTemplates" yaml:"documentTemplates"`
	Questionnaires    []Entry `json:"questionnaires" yaml:"questionnaires"`
	Documents         []Entry `json:"documents" yaml:"documents"`
}

// Entry is one selectable entity.
type Entry struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// Summarize reduces tenant contents to what is needed to write an
// instruction.
func Summarize(c *models.TenantContents) Summary {
	s := Summary{
		Packages:          make([]Entry, 0, len(c.Packages)),
		DocumentTemplates: make([]Entry, 0, len(c.DocumentTemplates)),
		Questionnaires:    make([]Entry, 0, len(c.Questionnaires)),
		Documents:         make([]Entry, 0, len(c.Documents)),
	}
	for _, p := range c.Packages {
		s.Packages = append(s.Packages, Entry{ID: p.ID, Name: p.Name, Version: p.Version})
	}
	for _, dt := range c.DocumentTemplates {
		s.DocumentTemplates = append(s.DocumentTemplates, Entry{ID: dt.ID, Name: dt.Name, Version: dt.Version})
	}
	for _, q := range c.Questionnaires {
		s.Questionnaires = append(s.Questionnaires, Entry{ID: q.UUID.String(), Name: q.Name})
	}
	for _, d := range c.Documents {
		s.Documents = append(s.Documents, Entry{ID: d.UUID.String(), Name: d.Name})
	}
	return s
}

func (c *Command) Synopsis() string {
	return "List what a tenant can put into a recipe"
}

func (c *Command) Help() string {
	return `Usage: recipe-builder contents [options]

  Lists the packages, released document templates, questionnaires and
  finished documents of a tenant, as a starting point for an instruction
  file.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(
		flag.NewFlagSet("contents", flag.ContinueOnError))

	f.StringVar(
		&c.flagConfig, "config", "", "Path to the configuration file.",
	)
	f.StringVar(
		&c.flagTenant, "tenant", "", "(Required) Tenant UUID.",
	)
	f.StringVar(
		&c.flagFormat, "format", "yaml", "Output format: json or yaml.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	f := c.Flags()
	if err := f.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if c.flagTenant == "" {
		ui.Error("tenant flag is required")
		return 1
	}
	tenant, err := uuid.Parse(c.flagTenant)
	if err != nil {
		ui.Error(fmt.Sprintf("invalid tenant: %v", err))
		return 1
	}
	if c.flagFormat != "json" && c.flagFormat != "yaml" {
		ui.Error(fmt.Sprintf("unsupported format %q", c.flagFormat))
		return 1
	}

	cfg, err := c.LoadConfig(c.flagConfig)
	if err != nil {
		ui.Error(fmt.Sprintf("error loading configuration: %v", err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	db, err := c.Database(ctx, cfg)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	defer func() { _ = database.Close(db) }()

	contents, err := models.GetTenantContents(db.WithContext(ctx), tenant)
	if err != nil {
		ui.Error(fmt.Sprintf("error listing tenant contents: %v", err))
		return 1
	}
	if contents.IsEmpty() {
		c.Log.Warn("tenant has no exportable contents", "tenant", tenant)
	}

	var out []byte
	summary := Summarize(contents)
	if c.flagFormat == "json" {
		out, err = json.MarshalIndent(summary, "", "  ")
	} else {
		out, err = yaml.Marshal(summary)
	}
	if err != nil {
		ui.Error(fmt.Sprintf("error encoding contents: %v", err))
		return 1
	}

	ui.Output(string(out))
	return 0
}
