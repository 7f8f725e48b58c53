// Command pokerarbiterd runs the hand arbiter as a standalone HTTP+WebSocket
// service, or drives it from the command line for local testing — the
// daemon/CLI split the teacher's cmd/pokerchaind (the node) and
// cmd/poker-cli (the client) embody, collapsed into one binary since this
// arbiter has no chain to start separately.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree, mirroring the teacher's
// cmd/pokerchaind root command assembly (persistent flags bound through
// viper, one subcommand per concern).
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pokerarbiterd",
		Short: "Trustless heads-up hold'em hand arbiter",
	}

	root.PersistentFlags().String("addr", "http://localhost:8080", "arbiter HTTP address")
	root.PersistentFlags().String("config", "", "path to a config file (optional)")

	root.AddCommand(
		newServeCmd(),
		newInitPlayerCmd(),
		newInitBalanceCmd(),
		newDepositCmd(),
		newWithdrawCmd(),
		newBalanceCmd(),
		newCreateHandCmd(),
		newJoinHandCmd(),
		newBetCmd(),
		newAdvanceCmd(),
		newRevealCommunityCmd(),
		newRevealHandCmd(),
		newShowCmd(),
		newClaimTimeoutCmd(),
	)
	return root
}
