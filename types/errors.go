package types

// DONTCOVER

import (
	errorsmod "cosmossdk.io/errors"
)

// multisig client sentinel errors
var (
	ErrNoWallet           = errorsmod.Register(ModuleName, 2, "wallet not connected")
	ErrInvalidInput       = errorsmod.Register(ModuleName, 3, "invalid input")
	ErrBroadcast          = errorsmod.Register(ModuleName, 4, "failed to broadcast tx")
	ErrDecode             = errorsmod.Register(ModuleName, 5, "failed to decode payload")
	ErrSenderMismatch     = errorsmod.Register(ModuleName, 6, "sender is not the connected wallet")
	ErrSubmissionInFlight = errorsmod.Register(ModuleName, 7, "a submission is already in progress")
	ErrWrongNetwork       = errorsmod.Register(ModuleName, 8, "wallet is connected to a different chain")
	ErrNotFound           = errorsmod.Register(ModuleName, 9, "not found")
)
