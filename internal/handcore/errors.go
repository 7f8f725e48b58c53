package handcore

import (
	errorsmod "cosmossdk.io/errors"
)

// ModuleName identifies this module's error code namespace, matching the
// teacher's errorsmod.Register(ModuleName, code, msg) pattern in
// x/poker/types/errors.go.
const ModuleName = "handcore"

// Sentinel errors, one per entry in spec.md §6's abstract error list. Every
// transition wraps the first failing precondition with exactly one of these
// via errorsmod.Wrap/Wrapf, never a bare errors.New.
var (
	ErrInvalidGameStage          = errorsmod.Register(ModuleName, 1, "invalid game stage for this action")
	ErrNotYourTurn               = errorsmod.Register(ModuleName, 2, "not your turn")
	ErrInvalidAction             = errorsmod.Register(ModuleName, 3, "invalid poker action")
	ErrInvalidBetAmount          = errorsmod.Register(ModuleName, 4, "invalid bet amount")
	ErrInsufficientFunds         = errorsmod.Register(ModuleName, 5, "insufficient funds")
	ErrSecretMismatch            = errorsmod.Register(ModuleName, 6, "decryption share does not verify")
	ErrZeroCommitment            = errorsmod.Register(ModuleName, 7, "commitment value must be non-zero")
	ErrGameAlreadyFull           = errorsmod.Register(ModuleName, 8, "hand already has two players")
	ErrCannotJoinOwnGame         = errorsmod.Register(ModuleName, 9, "a player cannot join their own hand")
	ErrTimeoutNotReached         = errorsmod.Register(ModuleName, 10, "action timeout has not elapsed")
	ErrCannotActAfterFold        = errorsmod.Register(ModuleName, 11, "player has already folded")
	ErrCannotRaiseAllIn          = errorsmod.Register(ModuleName, 12, "player is already all-in")
	ErrMinimumRaiseNotMet        = errorsmod.Register(ModuleName, 13, "raise does not meet the minimum raise size")
	ErrCardVerificationFailed    = errorsmod.Register(ModuleName, 14, "revealed card failed Pohlig-Hellman verification")
	ErrInvalidEncryptedCards     = errorsmod.Register(ModuleName, 15, "encrypted card slots must all be non-zero")
	ErrMissingDecryptionShares   = errorsmod.Register(ModuleName, 16, "missing decryption shares for this reveal step")
	ErrAlreadyRevealedHand       = errorsmod.Register(ModuleName, 17, "hand has already been revealed")
	ErrInvalidEphemeralKey       = errorsmod.Register(ModuleName, 18, "ephemeral public key out of range")
	ErrInsufficientBalanceToJoin = errorsmod.Register(ModuleName, 19, "balance insufficient to cover stake plus bond")
	ErrHandNotFound              = errorsmod.Register(ModuleName, 20, "hand not found")
	ErrRoundNotComplete          = errorsmod.Register(ModuleName, 21, "betting round is not yet complete")
)
