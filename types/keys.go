package types

const (
	// ModuleName defines the codespace used for the client errors
	ModuleName = "multisig"

	// EventTypeWasm is emitted by every contract execution
	EventTypeWasm = "wasm"
	// EventTypeWasmPrefix prefixes custom contract events
	EventTypeWasmPrefix = "wasm-"
	// EventTypeInstantiate is emitted by wasmd on contract instantiation
	EventTypeInstantiate = "instantiate"

	AttributeKeyProposalID      = "proposal_id"
	AttributeKeyContractAddress = "_contract_address"
	AttributeKeyAction          = "action"
	AttributeKeyStatus          = "status"
)
