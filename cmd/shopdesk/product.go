package main

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/xenking/shopdesk/internal/domain/product"
)

func (c *cli) productCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage the product catalog",
	}
	cmd.AddCommand(c.productAddCmd(), c.productListCmd())
	return cmd
}

func (c *cli) productAddCmd() *cobra.Command {
	var name, description, price string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := decimal.NewFromString(price)
			if err != nil {
				return errors.Wrapf(err, "price %q", price)
			}
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			pr := product.New(name, description, p)
			if err := a.Products.Add(cmd.Context(), pr); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", pr)
			return err
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().StringVar(&description, "description", "", "product description")
	cmd.Flags().StringVar(&price, "price", "", "unit price")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func (c *cli) productListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			ps, err := a.Products.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range ps {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), p); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
