package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orbit/pkg/mindmap"
	"github.com/matzehuels/orbit/pkg/pipeline"
)

// focusCommand creates the focus command for re-centering one subtree.
func (c *CLI) focusCommand() *cobra.Command {
	var (
		flags   layoutFlags
		posPath string
		node    string
	)

	cmd := &cobra.Command{
		Use:   "focus [graph.json|graph.dot]",
		Short: "Re-center the subtree of one node around it",
		Long: `Re-center the subtree of one node around it.

The node keeps its position from --positions. Its children are spread over
the full circle around it, in sectors sized by their subtree sizes, and each
further generation goes one ring further out. Other positioned nodes are
avoided. The output holds all input positions plus the moved subtree.

Without --node an interactive picker lists the nodes that have children.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if posPath == "" {
				posPath = positionsPath(input)
			}
			positions, err := mindmap.ReadPositionsFile(posPath)
			if err != nil {
				return fmt.Errorf("load positions %s: %w", posPath, err)
			}

			if node == "" {
				g, err := pipeline.LoadGraph(input)
				if err != nil {
					return fmt.Errorf("load graph %s: %w", input, err)
				}
				if node, err = pickNode(g, positions); err != nil {
					return err
				}
				if node == "" {
					printInfo("No node selected")
					return nil
				}
			}

			if flags.output == "" {
				flags.output = posPath
			}
			params := mergeParams(cmd, c.Config.Layout, flags.params)
			opts := pipeline.Options{
				Mode:     pipeline.ModeFocus,
				Selected: node,
				Params:   &params,
				Refresh:  flags.refresh,
			}
			printInfo("Focusing %s", StyleHighlight.Render(node))
			return c.runLayout(cmd.Context(), input, positions, opts, flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&posPath, "positions", "p", "", "current positions (default: <input>.positions.json)")
	cmd.Flags().StringVarP(&node, "node", "n", "", "node whose subtree is re-centered")
	_ = cmd.RegisterFlagCompletionFunc("node", completeParentNodes)

	return cmd
}

// completeParentNodes completes --node with the IDs of nodes that have children.
func completeParentNodes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	g, err := pipeline.LoadGraph(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var ids []string
	for _, n := range g.SortedNodes() {
		if len(g.Children(n.ID)) > 0 && strings.HasPrefix(n.ID, toComplete) {
			ids = append(ids, n.ID)
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

// pickNode runs the interactive node picker. It returns "" when the user quits.
func pickNode(g *mindmap.Graph, positions mindmap.Positions) (string, error) {
	model := NewNodePickerModel(g, positions)
	if len(model.Items) == 0 {
		return "", fmt.Errorf("no positioned node has children")
	}
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return "", fmt.Errorf("node picker: %w", err)
	}
	if m, ok := final.(NodePickerModel); ok && m.Selected != nil {
		return m.Selected.ID, nil
	}
	return "", nil
}
