package multisig

import (
	"encoding/hex"
	"strings"
	"testing"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	abci "github.com/cometbft/cometbft/abci/types"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/gogoproto/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dymensionxyz/multisig-client/types"
)

func TestExtractAttribute(t *testing.T) {
	tests := []struct {
		name   string
		resp   *sdk.TxResponse
		key    string
		want   string
		wantOK bool
	}{
		{
			name:   "nil response",
			key:    types.AttributeKeyProposalID,
			wantOK: false,
		}, {
			name: "proposal id in logs",
			resp: &sdk.TxResponse{Logs: sdk.ABCIMessageLogs{{
				Events: sdk.StringEvents{
					{Type: "message", Attributes: []sdk.Attribute{{Key: "proposal_id", Value: "99"}}},
					{Type: "wasm", Attributes: []sdk.Attribute{
						{Key: "action", Value: "propose"},
						{Key: "proposal_id", Value: "7"},
					}},
				},
			}}},
			key:    types.AttributeKeyProposalID,
			want:   "7",
			wantOK: true,
		}, {
			name: "logs are searched before events",
			resp: &sdk.TxResponse{
				Logs: sdk.ABCIMessageLogs{{Events: sdk.StringEvents{
					{Type: "wasm", Attributes: []sdk.Attribute{{Key: "proposal_id", Value: "1"}}},
				}}},
				Events: []abci.Event{
					{Type: "wasm", Attributes: []abci.EventAttribute{{Key: "proposal_id", Value: "2"}}},
				},
			},
			key:    types.AttributeKeyProposalID,
			want:   "1",
			wantOK: true,
		}, {
			name: "contract address in instantiate event",
			resp: &sdk.TxResponse{Events: []abci.Event{
				{Type: "message", Attributes: []abci.EventAttribute{{Key: "action", Value: "/cosmwasm.wasm.v1.MsgInstantiateContract"}}},
				{Type: "instantiate", Attributes: []abci.EventAttribute{
					{Key: "_contract_address", Value: "inj1contract"},
					{Key: "code_id", Value: "1"},
				}},
			}},
			key:    types.AttributeKeyContractAddress,
			want:   "inj1contract",
			wantOK: true,
		}, {
			name: "custom contract event",
			resp: &sdk.TxResponse{Events: []abci.Event{
				{Type: "wasm-proposal", Attributes: []abci.EventAttribute{{Key: "proposal_id", Value: "3"}}},
			}},
			key:    types.AttributeKeyProposalID,
			want:   "3",
			wantOK: true,
		}, {
			name: "non contract events are ignored",
			resp: &sdk.TxResponse{Events: []abci.Event{
				{Type: "transfer", Attributes: []abci.EventAttribute{{Key: "proposal_id", Value: "3"}}},
			}},
			key:    types.AttributeKeyProposalID,
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractAttribute(tt.resp, tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInstantiatedAddress(t *testing.T) {
	txData := func(t *testing.T, msgs ...proto.Message) string {
		var data sdk.TxMsgData
		for _, m := range msgs {
			a, err := codectypes.NewAnyWithValue(m)
			require.NoError(t, err)
			data.MsgResponses = append(data.MsgResponses, a)
		}
		bz, err := proto.Marshal(&data)
		require.NoError(t, err)
		return strings.ToUpper(hex.EncodeToString(bz))
	}

	tests := []struct {
		name   string
		resp   func(t *testing.T) *sdk.TxResponse
		want   string
		wantOK bool
	}{
		{
			name: "nil response",
			resp: func(*testing.T) *sdk.TxResponse { return nil },
		}, {
			name: "no data",
			resp: func(*testing.T) *sdk.TxResponse { return &sdk.TxResponse{} },
		}, {
			name: "invalid hex",
			resp: func(*testing.T) *sdk.TxResponse { return &sdk.TxResponse{Data: "zz"} },
		}, {
			name: "instantiate response",
			resp: func(t *testing.T) *sdk.TxResponse {
				return &sdk.TxResponse{Data: txData(t,
					&wasmtypes.MsgExecuteContractResponse{},
					&wasmtypes.MsgInstantiateContractResponse{Address: "inj1multisig"},
				)}
			},
			want:   "inj1multisig",
			wantOK: true,
		}, {
			name: "execute response only",
			resp: func(t *testing.T) *sdk.TxResponse {
				return &sdk.TxResponse{Data: txData(t, &wasmtypes.MsgExecuteContractResponse{})}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := InstantiatedAddress(tt.resp(t))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
