package main

import (
	"github.com/spf13/cobra"

	appkg "github.com/xenking/shopdesk/internal/app"
	"github.com/xenking/shopdesk/internal/report"
)

func (c *cli) reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print reports over stored orders",
	}
	cmd.AddCommand(c.topClientsCmd(), c.timelineCmd(), c.graphCmd())
	return cmd
}

func (c *cli) projections(cmd *cobra.Command) (*appkg.App, []report.Projection, error) {
	a, err := c.open(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	ps, err := report.Load(cmd.Context(), a.Orders)
	if err != nil {
		return nil, nil, err
	}
	return a, ps, nil
}

func (c *cli) topClientsCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "top-clients",
		Short: "Rank clients by number of orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, ps, err := c.projections(cmd)
			if err != nil {
				return err
			}
			if n <= 0 {
				n = a.Config.Report.Top
			}
			return report.WriteTopClients(cmd.OutOrStdout(), report.TopClients(ps, n))
		},
	}
	cmd.Flags().IntVarP(&n, "limit", "n", 0, "number of clients to show (default from config)")
	return cmd
}

func (c *cli) timelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "Count orders per day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, ps, err := c.projections(cmd)
			if err != nil {
				return err
			}
			days, err := report.OrdersPerDay(ps)
			if err != nil {
				return err
			}
			return report.WriteTimeline(cmd.OutOrStdout(), days)
		},
	}
}

func (c *cli) graphCmd() *cobra.Command {
	var dot bool
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Link clients whose orders share a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, ps, err := c.projections(cmd)
			if err != nil {
				return err
			}
			g := report.ClientGraph(ps)
			if dot {
				return report.WriteDOT(cmd.OutOrStdout(), g)
			}
			return report.WriteGraph(cmd.OutOrStdout(), g)
		},
	}
	cmd.Flags().BoolVar(&dot, "dot", false, "print Graphviz DOT")
	return cmd
}
