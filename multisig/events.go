package multisig

import (
	"encoding/hex"
	"strings"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/gogoproto/proto"

	"github.com/dymensionxyz/multisig-client/types"
)

// ExtractAttribute returns the first attribute named key emitted by a contract
// in the tx result. Logs are searched before the flat event list.
func ExtractAttribute(resp *sdk.TxResponse, key string) (string, bool) {
	if resp == nil {
		return "", false
	}

	for _, log := range resp.Logs {
		for _, event := range log.Events {
			if !isContractEvent(event.Type) {
				continue
			}
			for _, attr := range event.Attributes {
				if attr.Key == key {
					return attr.Value, true
				}
			}
		}
	}

	for _, event := range resp.Events {
		if !isContractEvent(event.Type) {
			continue
		}
		for _, attr := range event.Attributes {
			if attr.Key == key {
				return attr.Value, true
			}
		}
	}

	return "", false
}

func isContractEvent(eventType string) bool {
	return eventType == types.EventTypeWasm ||
		eventType == types.EventTypeInstantiate ||
		strings.HasPrefix(eventType, types.EventTypeWasmPrefix)
}

// InstantiatedAddress reads the contract address from the instantiate
// response carried in the tx data.
func InstantiatedAddress(resp *sdk.TxResponse) (string, bool) {
	if resp == nil || resp.Data == "" {
		return "", false
	}
	bz, err := hex.DecodeString(resp.Data)
	if err != nil {
		return "", false
	}

	var msgData sdk.TxMsgData
	if err := proto.Unmarshal(bz, &msgData); err != nil {
		return "", false
	}

	typeURL := "/" + proto.MessageName(&wasmtypes.MsgInstantiateContractResponse{})
	for _, msgResp := range msgData.MsgResponses {
		if msgResp == nil || msgResp.TypeUrl != typeURL {
			continue
		}
		var inst wasmtypes.MsgInstantiateContractResponse
		if err := proto.Unmarshal(msgResp.Value, &inst); err != nil || inst.Address == "" {
			continue
		}
		return inst.Address, true
	}
	return "", false
}
