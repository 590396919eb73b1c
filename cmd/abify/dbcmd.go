package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/NethermindEth/abify/format"
	"github.com/NethermindEth/abify/registry"
	"github.com/NethermindEth/abify/utils"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var errNoDBPath = errors.New("--db-path is required")

func DBCmd(defaultDBPath string) *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Definition database related operations",
		Long:  `This command allows you to inspect and fill the database of struct and enum definitions.`,
	}

	dbCmd.PersistentFlags().String(dbPathF, defaultDBPath, dbPathUsage)
	dbCmd.AddCommand(DBInfoCmd(), DBImportCmd())
	return dbCmd
}

func DBInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "List the stored definitions",
		Long:  `This subcommand displays every struct and enum definition stored in the database.`,
		Args:  cobra.NoArgs,
		RunE:  dbInfo,
	}
}

func DBImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [files...]",
		Short: "Validate and store definitions",
		Long: `This subcommand reads definitions from YAML or JSON files, validates them together with the ` +
			`definitions already stored and adds them to the database.`,
		Args: cobra.MinimumNArgs(1),
		RunE: dbImport,
	}
}

func openStore(cmd *cobra.Command) (*registry.Store, error) {
	dbPath, err := cmd.Flags().GetString(dbPathF)
	if err != nil {
		return nil, err
	}
	if dbPath == "" {
		return nil, errNoDBPath
	}
	return registry.Open(dbPath, utils.NewNopZapLogger())
}

func dbInfo(cmd *cobra.Command, _ []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	defs, err := store.Load()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"ID", "Definition", "Size"})
	for _, d := range defs.Definitions() {
		table.Append([]string{d.DefinitionID(), format.DefinitionString(d), definitionSize(d)})
	}
	table.SetFooter([]string{"Total", "", strconv.Itoa(defs.Len())})
	table.Render()

	return nil
}

func definitionSize(d format.Definition) string {
	switch d := d.(type) {
	case *format.StructDefinition:
		return fmt.Sprintf("%d members", len(d.Members))
	case *format.EnumDefinition:
		return fmt.Sprintf("%d options", len(d.Options))
	default:
		return ""
	}
}

func dbImport(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	defs, err := store.Load()
	if err != nil {
		return err
	}

	imported := registry.NewMap()
	for _, path := range args {
		m, err := registry.ReadFile(path)
		if err != nil {
			return err
		}
		imported.Add(m.Definitions()...)
	}

	// Imported definitions may refer to stored ones and replace them.
	defs.Add(imported.Definitions()...)
	if err = registry.Validate(defs); err != nil {
		return err
	}
	if err = store.Put(imported.Definitions()...); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Stored %d definitions\n", imported.Len())
	return err
}
