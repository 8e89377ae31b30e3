package cli

import (
	"github.com/spf13/cobra"

	"wageengine/internal/platform/pgstore"
	"wageengine/internal/domain/wage"
)

// App holds the dependencies every subcommand needs: the computation
// engine and its reference-data loader.
type App struct {
	Engine *wage.Engine
	Store  pgstore.StoreAPI
}

// NewRootCmd creates the top-level "wagecalc" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "wagecalc",
		Short: "Computes monthly shift wages for residential-care guides",
	}

	root.AddCommand(
		newComputeCmd(app),
		newDailyCmd(app),
		newBatchCmd(app),
	)

	return root
}
