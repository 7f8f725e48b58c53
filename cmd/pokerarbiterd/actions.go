package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func addrFlag(cmd *cobra.Command) string {
	addr, _ := cmd.Flags().GetString("addr")
	return addr
}

// resolveHandID accepts either an explicit hex hand ID or the literal "new",
// in which case a fresh random ID is minted from a UUID so operators don't
// have to hand-pick collision-free IDs when driving the daemon manually.
func resolveHandID(raw string) string {
	if raw != "new" {
		return raw
	}
	return common.BytesToHash(uuid.New()[:]).Hex()
}

func newCreateHandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-hand [hand-id|new]",
		Short: "Create a hand as player 1 (the dealer); pass \"new\" to mint a random hand ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p1, _ := cmd.Flags().GetString("p1")
			stake, _ := cmd.Flags().GetUint64("stake")
			ephPK, _ := cmd.Flags().GetString("eph-pk")
			deckRoot, _ := cmd.Flags().GetString("deck-root")
			handID := resolveHandID(args[0])

			body := map[string]any{
				"p1":               p1,
				"stake":            stake,
				"eph_pk_1":         ephPK,
				"deck_merkle_root": deckRoot,
			}
			var stage string
			if err := postJSON(addrFlag(cmd), "/hand/"+handID+"/create", body, &stage); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "hand_id: %s\nstage:   %s\n", handID, stage)
			return nil
		},
	}
	cmd.Flags().String("p1", "", "player 1 address (hex)")
	cmd.Flags().Uint64("stake", 0, "per-player starting stake")
	cmd.Flags().String("eph-pk", "", "player 1's ephemeral public key (hex)")
	cmd.Flags().String("deck-root", "", "committed deck Merkle root (hex)")
	return cmd
}

func newJoinHandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join-hand [hand-id]",
		Short: "Join a hand as player 2, posting the nine doubly-encrypted cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p2, _ := cmd.Flags().GetString("p2")
			ephPK, _ := cmd.Flags().GetString("eph-pk")
			cards, _ := cmd.Flags().GetStringSlice("cards")
			if len(cards) != 9 {
				return fmt.Errorf("--cards must list exactly 9 hex ciphertexts (got %d)", len(cards))
			}
			body := map[string]any{
				"p2":              p2,
				"eph_pk_2":        ephPK,
				"encrypted_cards": cards,
			}
			var stage string
			if err := postJSON(addrFlag(cmd), "/hand/"+args[0]+"/join", body, &stage); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), stage)
			return nil
		},
	}
	cmd.Flags().String("p2", "", "player 2 address (hex)")
	cmd.Flags().String("eph-pk", "", "player 2's ephemeral public key (hex)")
	cmd.Flags().StringSlice("cards", nil, "9 doubly-encrypted card ciphertexts (hex), slot order per the fixed slot map")
	return cmd
}

func newBetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bet [hand-id]",
		Short: "Submit a betting action: fold, check, call, raise, or allin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			player, _ := cmd.Flags().GetString("player")
			kind, _ := cmd.Flags().GetString("kind")
			raise, _ := cmd.Flags().GetUint64("raise")
			body := map[string]any{
				"player": player,
				"kind":   kind,
				"raise":  raise,
			}
			var stage string
			if err := postJSON(addrFlag(cmd), "/hand/"+args[0]+"/bet", body, &stage); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), stage)
			return nil
		},
	}
	cmd.Flags().String("player", "", "acting player address (hex)")
	cmd.Flags().String("kind", "", "fold|check|call|raise|allin")
	cmd.Flags().Uint64("raise", 0, "raise-by amount (raise actions only)")
	return cmd
}

func newAdvanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advance [hand-id]",
		Short: "Advance the hand to the next street once betting is complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var stage string
			if err := postJSON(addrFlag(cmd), "/hand/"+args[0]+"/advance", nil, &stage); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), stage)
			return nil
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [hand-id]",
		Short: "Print a hand's current public snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var snap map[string]any
			if err := getJSON(addrFlag(cmd), "/hand/"+args[0], &snap); err != nil {
				return err
			}
			for k, v := range snap {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %v\n", k, v)
			}
			return nil
		},
	}
}

func newRevealCommunityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reveal-community [hand-id]",
		Short: "Submit decryption shares for the pending community-card reveal step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			player, _ := cmd.Flags().GetString("player")
			shares, _ := cmd.Flags().GetStringSlice("shares")
			plaintexts, _ := cmd.Flags().GetIntSlice("plaintexts")
			var path string
			var body map[string]any
			if len(plaintexts) == 0 {
				// Step A: the dealer submits its own shares only.
				path = "/hand/" + args[0] + "/reveal-community/step1"
				body = map[string]any{"player": player, "shares": shares}
			} else {
				// Step B: the non-dealer submits shares plus claimed plaintexts.
				path = "/hand/" + args[0] + "/reveal-community/step2"
				body = map[string]any{"player": player, "shares": shares, "plaintexts": plaintexts}
			}
			var stage string
			if err := postJSON(addrFlag(cmd), path, body, &stage); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), stage)
			return nil
		},
	}
	cmd.Flags().String("player", "", "acting player address (hex)")
	cmd.Flags().StringSlice("shares", nil, "decryption shares (hex), 3 for the flop or 1 for turn/river")
	cmd.Flags().IntSlice("plaintexts", nil, "claimed plaintext card indices 0-51 (step B only, non-dealer)")
	return cmd
}

func newRevealHandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reveal-hand [hand-id]",
		Short: "Reveal pocket cards at showdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			player, _ := cmd.Flags().GetString("player")
			plaintexts, _ := cmd.Flags().GetIntSlice("plaintexts")
			if len(plaintexts) != 2 {
				return fmt.Errorf("--plaintexts must list exactly 2 pocket card indices (got %d)", len(plaintexts))
			}
			body := map[string]any{"player": player, "plaintexts": plaintexts}
			var stage string
			if err := postJSON(addrFlag(cmd), "/hand/"+args[0]+"/reveal-hand", body, &stage); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), stage)
			return nil
		},
	}
	cmd.Flags().String("player", "", "acting player address (hex)")
	cmd.Flags().IntSlice("plaintexts", nil, "the caller's 2 pocket card indices 0-51")
	return cmd
}

func newClaimTimeoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim-timeout [hand-id]",
		Short: "Claim victory by forfeit after the opponent's action deadline lapses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			claimant, _ := cmd.Flags().GetString("claimant")
			body := map[string]any{"claimant": claimant}
			var stage string
			if err := postJSON(addrFlag(cmd), "/hand/"+args[0]+"/claim-timeout", body, &stage); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), stage)
			return nil
		},
	}
	cmd.Flags().String("claimant", "", "the non-delinquent player's address (hex)")
	return cmd
}
