// Command sitectl is the operator tool for the site backend: it creates admin
// accounts, hashes passwords and seeds content through the admin API.
package main

import (
	"fmt"
	"os"

	"company-site.backend/internal/config"
	"company-site.backend/internal/infrastructure/datasources/postgres"
	"company-site.backend/pkg/adminclient"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type cliDeps struct {
	loadCfg   func() *config.Config
	openDB    func(config.DatabaseConfig) (*gorm.DB, error)
	closeDB   func(*gorm.DB)
	migrate   func(*gorm.DB) error
	newClient func(baseURL string) *adminclient.Client
}

func defaultDeps() cliDeps {
	return cliDeps{
		loadCfg:   config.Load,
		openDB:    postgres.NewConnection,
		closeDB:   closeSQLDB,
		migrate:   postgres.Migrate,
		newClient: newAdminClient,
	}
}

func closeSQLDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newAdminClient(baseURL string) *adminclient.Client {
	return adminclient.New(baseURL)
}

func newRootCmd(deps cliDeps) *cobra.Command {
	root := &cobra.Command{
		Use:           "sitectl",
		Short:         "Operator tools for the company site backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newCreateAdminCmd(deps),
		newHashPasswordCmd(),
		newSeedCmd(deps),
	)
	return root
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(defaultDeps()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
