package veil

import (
	"encoding/json"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/veilhq/veil/internal/rules"
)

var flagRulesJSON bool

func init() {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the built-in sensitivity rules",
		RunE:  runRules,
	}
	rootCmd.AddCommand(cmd)
	cmd.Flags().BoolVar(&flagRulesJSON, "json", false, "emit JSON")
}

type ruleInfo struct {
	ID      string `json:"id"`
	Pattern string `json:"pattern"`
}

func runRules(_ *cobra.Command, _ []string) error {
	var infos []ruleInfo
	for _, p := range rules.DefaultSet() {
		infos = append(infos, ruleInfo{ID: p.ID, Pattern: p.Expr()})
	}

	if flagRulesJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Rule", "Pattern")
	for _, r := range infos {
		if err := table.Append([]string{r.ID, r.Pattern}); err != nil {
			return err
		}
	}
	return table.Render()
}
