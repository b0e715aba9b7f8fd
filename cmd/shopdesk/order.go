package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/xenking/shopdesk/internal/domain/order"
)

func (c *cli) orderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Place and list orders",
	}
	cmd.AddCommand(c.orderCreateCmd(), c.orderListCmd())
	return cmd
}

// parseItem parses "<product id>:<quantity>"; the quantity defaults to 1.
func parseItem(s string) (order.Item, error) {
	id, qty, found := strings.Cut(s, ":")
	pid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return order.Item{}, errors.Errorf("item %q: bad product id", s)
	}
	item := order.Item{ProductID: pid, Quantity: 1}
	if found {
		if item.Quantity, err = strconv.Atoi(qty); err != nil {
			return order.Item{}, errors.Errorf("item %q: bad quantity", s)
		}
	}
	return item, nil
}

func (c *cli) orderCreateCmd() *cobra.Command {
	var (
		clientID int64
		items    []string
		discount string
		date     string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Place an order",
		Example: `  shopdesk order create --client 1 --item 1:2 --item 2
  shopdesk order create --client 1 --item 1 --discount 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := order.PlaceRequest{ClientID: clientID}
			for _, s := range items {
				item, err := parseItem(s)
				if err != nil {
					return err
				}
				req.Items = append(req.Items, item)
			}
			if discount != "" {
				d, err := decimal.NewFromString(discount)
				if err != nil {
					return errors.Wrapf(err, "discount %q", discount)
				}
				req.Discount = d
			}
			if date != "" {
				t, err := time.Parse(order.DateLayout, date)
				if err != nil {
					return errors.Wrapf(err, "date %q", date)
				}
				req.At = t
			}

			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			o, err := a.Orders.Place(cmd.Context(), req)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", o, order.Describe(o))
			return err
		},
	}
	flags := cmd.Flags()
	flags.Int64Var(&clientID, "client", 0, "client id")
	flags.StringArrayVar(&items, "item", nil, "product id with optional quantity, as id[:qty]; repeatable")
	flags.StringVar(&discount, "discount", "", "discount in percent; places a special order")
	flags.StringVar(&date, "date", "", "order date as "+order.DateLayout+" (default now)")
	_ = cmd.MarkFlagRequired("client")
	return cmd
}

func (c *cli) orderListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			orders, err := a.Orders.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, o := range orders {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), o); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
