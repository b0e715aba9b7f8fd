package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xenking/shopdesk/internal/domain/client"
)

func (c *cli) clientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage clients",
	}
	cmd.AddCommand(c.clientAddCmd(), c.clientListCmd())
	return cmd
}

func (c *cli) clientAddCmd() *cobra.Command {
	var name, phone, email string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			cl := client.New(name, phone, email)
			if err := a.Clients.Register(cmd.Context(), cl); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", cl)
			return err
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "client name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number, 7 to 15 digits with optional +")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (c *cli) clientListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			cs, err := a.Clients.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, cl := range cs {
				if _, err := fmt.Fprintf(out, "%s phone=%s email=%s\n", cl, cl.Phone, cl.Email); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
