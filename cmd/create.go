package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/acdh-oeaw/minedb/internal/iodb"
	"github.com/acdh-oeaw/minedb/internal/ioschema"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCreateCmd() *cobra.Command {
	var forceCreate bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create database schema",
		Long: `Create the MINE database schema from scratch.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Checks for existing tables and prompts for confirmation
  3. Creates all tables using GORM AutoMigrate

Use --force to skip confirmation and drop existing tables.

Examples:
  minedb create
  minedb create --force
  minedb create -f`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args, forceCreate)
		},
	}

	createCmd.Flags().BoolVarP(&forceCreate, "force", "f",
		false, "drop existing tables without confirmation")

	return createCmd
}

func runCreate(
	_ *cobra.Command,
	_ []string,
	force bool,
) error {
	ctx := context.Background()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		printError(err)
		return err
	}
	defer op.Close()

	fmt.Printf("Connected to database: %s@%s:%d/%s\n",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		printError(err)
		return err
	}

	if hasTables {
		if force {
			fmt.Println("Dropping all existing tables (--force enabled)...")
			if err := op.DropAllTables(ctx); err != nil {
				printError(err)
				return err
			}
			fmt.Println("All tables dropped")
		} else {
			fmt.Println("\nWarning: Database contains existing tables.")
			fmt.Println("Creating schema will drop ALL existing tables and data.")
			fmt.Print("\nDo you want to continue? (yes/no): ")

			reader := bufio.NewReader(os.Stdin)
			response, err := reader.ReadString('\n')
			if err != nil {
				printError(err)
				return err
			}

			response = strings.TrimSpace(strings.ToLower(response))
			if response != "yes" && response != "y" {
				fmt.Println("Aborted. No changes made.")
				return nil
			}

			fmt.Println("Dropping all existing tables...")
			if err := op.DropAllTables(ctx); err != nil {
				printError(err)
				return err
			}
			fmt.Println("All tables dropped")
		}
	}

	sm := ioschema.NewManager(op)

	fmt.Println("Creating schema using GORM AutoMigrate...")
	if err := sm.Create(ctx); err != nil {
		printError(err)
		return err
	}

	fmt.Println("\nDatabase schema creation complete!")
	fmt.Println("\nNext steps:")
	fmt.Println("  - Run 'minedb import QUERY' to import legacy data")

	return nil
}
