package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/diagram"
	"github.com/matzehuels/forcegraph/pkg/payload"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		cluster    bool
		clusterKey string
	)

	cmd := &cobra.Command{
		Use:   "inspect [payload]",
		Short: "Summarise a diagram payload",
		Long: `Load a payload and print its element counts, rejected elements,
clusters with their colours and the derived force-layout parameters.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, rep, err := c.open(args[0])
			if err != nil {
				return err
			}
			if err := c.cluster(d, clusterKey, cluster); err != nil {
				return err
			}
			printInspect(args[0], d, rep)
			return nil
		},
	}

	cmd.Flags().BoolVar(&cluster, "cluster", false, "identify clusters even if the options leave clustering off")
	cmd.Flags().StringVar(&clusterKey, "cluster-key", "", "node property clusters are read from (default from options)")
	return cmd
}

func printInspect(path string, d *diagram.Diagram, rep payload.Report) {
	printSuccess("%s", StyleTitle.Render(path))
	printStats(d.NodeCount(), d.EdgeCount(), len(rep.Rejected))

	if len(rep.Rejected) > 0 {
		printNewline()
		printWarning("Rejected elements")
		for _, r := range rep.Rejected {
			printDetail("%s #%d %s: %s (%s)", r.Kind, r.Index, r.ID, r.Error, r.Code)
		}
	}

	printNewline()
	if d.Clustered() {
		ids := d.ClusterMap()
		printInfo("Clusters by %s", StyleHighlight.Render(d.Options().ClusterKey))
		for _, v := range d.Clusters() {
			colour, err := d.ClusterColour(v)
			if err != nil {
				continue
			}
			fmt.Printf("  %s %s %s\n", swatch(colour), StyleNumber.Render(strconv.Itoa(ids[v])), StyleValue.Render(v))
		}
		printNewline()
	} else {
		printInfo("Clustering off")
	}

	l := d.Layout()
	printInfo("Layout")
	printKeyValue("k", formatFloat(l.Params.K))
	printKeyValue("charge", formatFloat(l.Params.Charge))
	printKeyValue("gravity", formatFloat(l.Params.Gravity))
	printKeyValue("friction", formatFloat(l.Params.Friction))
	printKeyValue("viewport", fmt.Sprintf("%s x %s", formatFloat(l.Params.Width), formatFloat(l.Params.Height)))
	if len(l.Anchors) > 0 {
		printKeyValue("anchored", strconv.Itoa(len(l.Anchors)))
	}
	printNewline()
	printNextStep("Render it", appName+" render "+path+" -f svg")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
