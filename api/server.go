package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/dymensionxyz/multisig-client/api/handlers"
)

type Server struct {
	wh         handlers.WalletHandler
	mh         handlers.MultisigHandler
	ch         handlers.CodecHandler
	listenAddr string
	logger     *zap.Logger
}

func NewServer(
	wh handlers.WalletHandler,
	mh handlers.MultisigHandler,
	ch handlers.CodecHandler,
	address string,
	logger *zap.Logger,
) Server {
	return Server{
		wh:         wh,
		mh:         mh,
		ch:         ch,
		listenAddr: address,
		logger:     logger.With(zap.String("module", "api")),
	}
}

func (s Server) Router() *mux.Router {
	router := mux.NewRouter()

	// Routes for the wallet
	router.HandleFunc("/wallet", s.wh.GetWallet).Methods("GET")

	// Routes for multisigs
	router.HandleFunc("/multisigs", s.mh.ListRecent).Methods("GET")
	router.HandleFunc("/multisigs/{address}", s.mh.GetMultisig).Methods("GET")
	router.HandleFunc("/multisigs/{address}/proposals", s.mh.ListProposals).Methods("GET")
	router.HandleFunc("/multisigs/{address}/proposals/{id:[0-9]+}", s.mh.GetProposal).Methods("GET")

	// Routes for the message codec
	router.HandleFunc("/codec/inspect", s.ch.Inspect).Methods("POST")

	return router
}

// Start serves the API until ctx is done.
func (s Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.listenAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("Starting server", zap.String("address", s.listenAddr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
