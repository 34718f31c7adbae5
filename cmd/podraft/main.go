// cmd/podraft/main.go
//
// Entry point for the podraft CLI.
//
// `podraft` launches the interactive purchase-order form. The subcommands
// operate on the snapshot the form writes after a successful save:
// `podraft check` re-runs validation against it, `podraft show` prints the
// saved order as tables.

package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/podraft/podraft/internal/catalog"
	"github.com/podraft/podraft/internal/logbook"
	"github.com/podraft/podraft/internal/selection"
	"github.com/podraft/podraft/internal/session"
	"github.com/podraft/podraft/internal/snapshot"
	"github.com/podraft/podraft/internal/tui"
	"github.com/podraft/podraft/internal/validate"
)

var rootCmd = &cobra.Command{
	Use:   "podraft",
	Short: "Interactive purchase-order authoring",
	Long: `podraft is a terminal form for drafting talent purchase orders.

The form validates on save: required header fields, budget and date shapes,
and the selection rule tied to the order type (an individual PO takes exactly
one talent, a group PO at least two). A clean save locks the document into a
read-only view and writes a snapshot; reset always returns to the seed roster.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lb, err := logbook.New(viper.GetString("log"))
		if err != nil {
			return err
		}
		store := snapshot.NewStore(viper.GetString("state"))
		app := tui.NewApp(lb, tui.WithSnapshotStore(store))
		p := tea.NewProgram(app, tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(showCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("PODRAFT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().String("state", snapshot.DefaultPath, "snapshot file path")
	rootCmd.PersistentFlags().String("log", logbook.DefaultPath, "session log path")
	_ = viper.BindPFlag("state", rootCmd.PersistentFlags().Lookup("state"))
	_ = viper.BindPFlag("log", rootCmd.PersistentFlags().Lookup("log"))
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Re-validate the saved snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState()
			if err != nil {
				return err
			}
			errs := validate.Check(state.Doc)
			if len(errs) == 0 {
				fmt.Println("snapshot is valid")
				return nil
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"Field", "Message"})
			for _, key := range sortedKeys(errs) {
				tw.AppendRow(table.Row{key, errs[key]})
			}
			tw.Render()
			return fmt.Errorf("%d validation error(s)", len(errs))
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved purchase order",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState()
			if err != nil {
				return err
			}
			cat := catalog.Default()
			doc := state.Doc

			header := table.NewWriter()
			header.SetOutputMirror(os.Stdout)
			header.AppendHeader(table.Row{"Field", "Value"})
			header.AppendRows([]table.Row{
				{"Client", cat.ClientLabel(doc.ClientName)},
				{"Order Type", cat.OrderTypeLabel(string(doc.OrderType))},
				{"Order No", doc.OrderNo},
				{"Received On", doc.ReceivedOn},
				{"Received From", doc.ReceivedFromName},
				{"Received From Email", doc.ReceivedFromEmail},
				{"Start Date", doc.StartDate},
				{"End Date", doc.EndDate},
				{"Budget", doc.Budget},
				{"Currency", doc.Currency},
				{"Mode", string(state.Mode)},
			})
			header.Render()

			talents := table.NewWriter()
			talents.SetOutputMirror(os.Stdout)
			talents.AppendHeader(table.Row{"Section", "Job ID", "Talent", "Selected", "Duration", "Bill Rate", "Std BR", "OT BR"})
			for _, section := range doc.Sections {
				for _, talent := range section.Talents {
					selected := ""
					if talent.Selected {
						selected = "yes"
					}
					talents.AppendRow(table.Row{
						section.JobTitle, section.JobID, talent.Name, selected,
						talent.ContractDuration, talent.BillRate, talent.StandardTimeBR, talent.OverTimeBR,
					})
				}
			}
			talents.Render()
			fmt.Printf("%d talent(s) selected\n", selection.Count(doc))
			return nil
		},
	}
}

func loadState() (session.State, error) {
	store := snapshot.NewStore(viper.GetString("state"))
	state, err := store.Load()
	if err != nil {
		if errors.Is(err, snapshot.ErrStateNotFound) {
			return state, fmt.Errorf("no snapshot at %s; save a purchase order first", store.Path())
		}
		return state, err
	}
	return state, nil
}

func sortedKeys(errs validate.Errors) []string {
	keys := make([]string, 0, len(errs))
	for key := range errs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
