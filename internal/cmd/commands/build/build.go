package build

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/iancoleman/strcase"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/recipe-builder/internal/cmd/base"
	"github.com/hashicorp-forge/recipe-builder/pkg/database"
	"github.com/hashicorp-forge/recipe-builder/pkg/recipe"
)

type Command struct {
	*base.Command

	flagConfig string
	flagOut    string
	flagTenant string
}

func (c *Command) Synopsis() string {
	return "Build a seed recipe archive from an instruction file"
}

func (c *Command) Help() string {
	return `Usage: recipe-builder build [options] <instruction file>

  Resolves the packages, document templates, questionnaires and documents
  selected by the instruction file (JSON or YAML) in the source deployment
  and writes them as a seed recipe zip archive.

  The archive is written to seed-<name>.zip in the current directory
  unless -out is given.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(
		flag.NewFlagSet("build", flag.ContinueOnError))

	f.StringVar(
		&c.flagConfig, "config", "", "Path to the configuration file. "+
			"Settings may also come from RECIPE_* environment variables.",
	)
	f.StringVar(
		&c.flagOut, "out", "", "Path of the archive to write.",
	)
	f.StringVar(
		&c.flagTenant, "tenant", "",
		"Tenant UUID overriding the instruction's tenantUuid.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	log, ui := c.Log, c.UI

	f := c.Flags()
	if err := f.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if f.NArg() != 1 {
		ui.Error("exactly one instruction file is required")
		return 1
	}
	instructionPath := f.Arg(0)

	cfg, err := c.LoadConfig(c.flagConfig)
	if err != nil {
		ui.Error(fmt.Sprintf("error loading configuration: %v", err))
		return 1
	}

	instr, err := c.readInstruction(instructionPath)
	if err != nil {
		ui.Error(err.Error())
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

	objects, err := c.Objects(ctx, cfg)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	builder := recipe.NewBuilder(recipe.NewGormStore(db), objects, log)
	archive, err := builder.Build(ctx, instr)
	if err != nil {
		ui.Error(fmt.Sprintf("error building recipe: %v", err))
		return 1
	}

	if stats, err := database.GetPoolStats(db); err == nil {
		log.Debug("database pool after build",
			"open", stats.OpenConnections,
			"wait_count", stats.WaitCount,
			"wait_duration", stats.WaitDuration)
	}

	out := c.flagOut
	if out == "" {
		out = OutputName(instr.Name)
	}
	if err := afero.WriteFile(c.Fs, out, archive, 0o644); err != nil {
		ui.Error(fmt.Sprintf("error writing archive: %v", err))
		return 1
	}

	ui.Info(fmt.Sprintf("Wrote recipe %q to %s (%d bytes)", instr.Name, out, len(archive)))
	return 0
}

func (c *Command) readInstruction(path string) (*recipe.Instruction, error) {
	data, err := afero.ReadFile(c.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("error reading instruction file: %w", err)
	}

	instr, err := recipe.DecodeInstruction(data, recipe.FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("error parsing instruction file: %w", err)
	}

	if c.flagTenant != "" {
		tenant, err := uuid.Parse(c.flagTenant)
		if err != nil {
			return nil, fmt.Errorf("invalid -tenant: %w", err)
		}
		instr.TenantUUID = tenant
	}

	if err := instr.Validate(); err != nil {
		return nil, fmt.Errorf("invalid instruction file: %w", err)
	}
	return instr, nil
}

// OutputName returns the default archive file name for a recipe.
func OutputName(name string) string {
	slug := strcase.ToKebab(name)
	if slug == "" {
		slug = "recipe"
	}
	return "seed-" + slug + ".zip"
}
