package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soyeahso/gh-manager/internal/config"
	"github.com/soyeahso/gh-manager/internal/gh"
	"github.com/soyeahso/gh-manager/internal/handlers"
	"github.com/soyeahso/gh-manager/internal/tool"
)

func newToolsCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tools the MCP server exposes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}

			// Registration needs no credentials or database; handlers only
			// touch those when invoked.
			reg := tool.NewRegistry(log)
			handlers.RegisterAll(reg, &handlers.Deps{
				GH:  gh.NewAccessor(cfg.GitHub, log),
				Cfg: &cfg,
				Log: log,
			})

			fmt.Printf("%d tools registered\n\n", reg.Count())
			for d := range reg.All() {
				fmt.Printf("%s\n    %s\n", d.Name, d.Summary)
				if !verbose {
					continue
				}
				for _, p := range d.Params {
					var notes []string
					if p.Required {
						notes = append(notes, "required")
					} else if p.Default != nil {
						notes = append(notes, fmt.Sprintf("default %v", p.Default))
					}
					suffix := ""
					if len(notes) > 0 {
						suffix = " (" + strings.Join(notes, ", ") + ")"
					}
					fmt.Printf("    - %s: %s%s\n", p.Name, p.Type, suffix)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show parameters for each tool")

	return cmd
}
