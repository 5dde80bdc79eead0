package tenants

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/ryanuber/columnize"

	"github.com/hashicorp-forge/recipe-builder/internal/cmd/base"
	"github.com/hashicorp-forge/recipe-builder/pkg/database"
	"github.com/hashicorp-forge/recipe-builder/pkg/models"
)

type Command struct {
	*base.Command

	flagConfig string
}

func (c *Command) Synopsis() string {
	return "List the tenants of the source deployment"
}

func (c *Command) Help() string {
	return `Usage: recipe-builder tenants [options]

  Lists every tenant of the source deployment with the UUID to use as an
  instruction's tenantUuid.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(
		flag.NewFlagSet("tenants", flag.ContinueOnError))

	f.StringVar(
		&c.flagConfig, "config", "", "Path to the configuration file.",
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

	tenants, err := models.GetTenants(db.WithContext(ctx))
	if err != nil {
		ui.Error(fmt.Sprintf("error listing tenants: %v", err))
		return 1
	}

	if len(tenants) == 0 {
		ui.Warn("No tenants found")
		return 0
	}

	rows := []string{"UUID | Tenant ID | Name"}
	for _, t := range tenants {
		rows = append(rows, fmt.Sprintf("%s | %s | %s", t.UUID, t.TenantID, t.Name))
	}
	ui.Output(columnize.SimpleFormat(rows))
	return 0
}
