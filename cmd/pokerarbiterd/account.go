package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newInitPlayerCmd serves spec.md §6's init_player action.
func newInitPlayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-player [player-id]",
		Short: "Register a fresh player identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp map[string]string
			if err := postJSON(addrFlag(cmd), "/player/"+args[0]+"/init", nil, &resp); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp["status"])
			return nil
		},
	}
}

// newInitBalanceCmd serves spec.md §6's init_balance action.
func newInitBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-balance [player-id]",
		Short: "Lazily create a player's balance record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp map[string]string
			if err := postJSON(addrFlag(cmd), "/player/"+args[0]+"/balance/init", nil, &resp); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp["status"])
			return nil
		},
	}
}

// newDepositCmd serves spec.md §6's deposit action.
func newDepositCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit [player-id]",
		Short: "Credit a player's balance from outside the system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, _ := cmd.Flags().GetUint64("amount")
			body := map[string]any{"amount": amount}
			var resp map[string]uint64
			if err := postJSON(addrFlag(cmd), "/player/"+args[0]+"/balance/deposit", body, &resp); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "balance: %d\n", resp["balance"])
			return nil
		},
	}
	cmd.Flags().Uint64("amount", 0, "amount to deposit")
	return cmd
}

// newWithdrawCmd serves spec.md §6's withdraw action.
func newWithdrawCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw [player-id]",
		Short: "Debit a player's balance, requires balance >= amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, _ := cmd.Flags().GetUint64("amount")
			body := map[string]any{"amount": amount}
			var resp map[string]uint64
			if err := postJSON(addrFlag(cmd), "/player/"+args[0]+"/balance/withdraw", body, &resp); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "balance: %d\n", resp["balance"])
			return nil
		},
	}
	cmd.Flags().Uint64("amount", 0, "amount to withdraw")
	return cmd
}

// newBalanceCmd reads a player's current balance, a convenience read path
// alongside init-player/init-balance/deposit/withdraw.
func newBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance [player-id]",
		Short: "Print a player's current balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp map[string]uint64
			if err := getJSON(addrFlag(cmd), "/player/"+args[0]+"/balance", &resp); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "balance: %d\n", resp["balance"])
			return nil
		},
	}
}
