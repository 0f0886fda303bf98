package handlers

import (
	"net/http"

	"github.com/dymensionxyz/multisig-client/config"
)

type WalletHandler struct {
	wallet  walletProvider
	chainID string
}

type walletProvider interface {
	Address() string
}

func NewWalletHandler(wallet walletProvider, chainID string) WalletHandler {
	return WalletHandler{wallet: wallet, chainID: chainID}
}

type walletResponse struct {
	Connected bool           `json:"connected"`
	Address   string         `json:"address,omitempty"`
	ChainID   string         `json:"chain_id"`
	Network   config.Network `json:"network"`
}

func (h WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	address := h.wallet.Address()
	writeJSON(w, http.StatusOK, walletResponse{
		Connected: address != "",
		Address:   address,
		ChainID:   h.chainID,
		Network:   config.NetworkForChain(h.chainID),
	})
}
