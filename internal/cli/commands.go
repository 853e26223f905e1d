package cli

import (
	"strconv"

	"github.com/specialistvlad/stagegrid/internal/app"
	"github.com/specialistvlad/stagegrid/internal/editor"
	"github.com/spf13/cobra"
)

// outputFlags select the tables added to rendered diagrams.
type outputFlags struct {
	connectors bool
	items      bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.connectors, "connectors", false, "Also print the connector table")
	cmd.Flags().BoolVar(&o.items, "items", false, "Also print the item table")
}

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var out outputFlags
	var check bool

	cmd := &cobra.Command{
		Use:   "render <path>",
		Short: "Build a diagram definition and print it",
		Long:  "Build a diagram from an .hcl, .yaml or .yml file, or a directory of them, and print it.",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.newApp(app.Config{
				DefinitionPath:  args[0],
				ShowConnectors:  out.connectors,
				ShowItems:       out.items,
				CheckInvariants: check,
			})
			if err != nil {
				return err
			}
			return a.Render(cmd.Context())
		},
	}
	out.register(cmd)
	cmd.Flags().BoolVar(&check, "check", false, "Validate the whole diagram after every build step")
	return cmd
}

func newServeCommand(ctx *commandContext) *cobra.Command {
	var addr string
	var check bool

	cmd := &cobra.Command{
		Use:   "serve <path>",
		Short: "Serve a diagram for live editing over socket.io",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.newApp(app.Config{
				DefinitionPath:  args[0],
				Addr:            addr,
				CheckInvariants: check,
			})
			if err != nil {
				return err
			}
			return a.Serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address for socket.io and /health")
	cmd.Flags().BoolVar(&check, "check", false, "Validate the whole diagram after every edit")
	return cmd
}

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "watch <url>",
		Short: "Follow a served diagram and print every version",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.newApp(app.Config{ShowConnectors: out.connectors, ShowItems: out.items})
			if err != nil {
				return err
			}
			return a.Watch(cmd.Context(), args[0])
		},
	}
	out.register(cmd)
	return cmd
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	var out outputFlags
	var label string

	cmd := &cobra.Command{
		Use:   "edit <url> <add_item|insert_stage_after|remove_item> <stage> <id>",
		Short: "Apply one edit to a served diagram",
		Args:  exactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			stage, err := strconv.Atoi(args[2])
			if err != nil {
				return usageError("stage must be an integer, got %q", args[2])
			}
			command := editor.Command{
				Op:    editor.Op(args[1]),
				Stage: stage,
				ID:    args[3],
				Label: label,
			}
			if err := command.Validate(); err != nil {
				return usageError("%v", err)
			}

			a, err := ctx.newApp(app.Config{ShowConnectors: out.connectors, ShowItems: out.items})
			if err != nil {
				return err
			}
			return a.Edit(cmd.Context(), args[0], command)
		},
	}
	out.register(cmd)
	cmd.Flags().StringVar(&label, "label", "", "Label of the added item")
	return cmd
}
