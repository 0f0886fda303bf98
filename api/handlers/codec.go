package handlers

import (
	"io"
	"net/http"

	"github.com/dymensionxyz/multisig-client/codec"
	"github.com/dymensionxyz/multisig-client/types"
)

const maxPayloadBytes = 1 << 20

type CodecHandler struct{}

func NewCodecHandler() CodecHandler {
	return CodecHandler{}
}

// Inspect decodes the raw request body in every supported form.
func (h CodecHandler) Inspect(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes+1))
	if err != nil {
		writeError(w, types.ErrInvalidInput.Wrap(err.Error()))
		return
	}
	if len(body) > maxPayloadBytes {
		writeError(w, types.ErrInvalidInput.Wrap("payload too large"))
		return
	}

	writeJSON(w, http.StatusOK, codec.Inspect(string(body)))
}
