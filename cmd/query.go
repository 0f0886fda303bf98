package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dymensionxyz/multisig-client/codec"
	"github.com/dymensionxyz/multisig-client/config"
	"github.com/dymensionxyz/multisig-client/multisig"
	"github.com/dymensionxyz/multisig-client/store"
	"github.com/dymensionxyz/multisig-client/types/cw3"
	utils "github.com/dymensionxyz/multisig-client/utils/viper"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Show the connected wallet",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := setup()
		defer logger.Sync() // nolint: errcheck

		provider, session := connect(cmd.Context(), cfg, logger)
		defer provider.Disconnect()

		balance, err := multisig.NewQueryClient(session.Context()).Balance(cmd.Context(), session.Address(), cfg.Denom)
		if err != nil {
			log.Fatalf("failed to get balance: %v", err)
		}

		printAccountSlot(session.Address(), "Address: ", "")
		fmt.Printf("Network: %s (%s)\n", session.Network(), session.ChainID())
		fmt.Printf("Balance: %s %s\n", multisig.FormatBalance(balance, config.DisplayExponent), strings.ToUpper(cfg.Denom))
	},
}

var proposalsCmd = &cobra.Command{
	Use:   "proposals [multisig]",
	Short: "List proposals, newest first",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, logger := setup()
		defer logger.Sync() // nolint: errcheck

		contract := multisigArg(args, cfg)

		provider, session := connect(cmd.Context(), cfg, logger)
		defer provider.Disconnect()

		queries := multisig.NewQueryClient(session.Context())
		rememberMultisig(cmd, cfg, queries, contract, logger)

		proposals, err := multisig.NewProposalPager(queries, contract, multisig.DefaultPageSize).All(cmd.Context(), limit)
		if err != nil {
			log.Fatalf("failed to list proposals: %v", err)
		}
		if len(proposals) == 0 {
			fmt.Println("No proposals")
			return
		}

		fmt.Printf("%6s | %-9s | %-22s | %s\n", "ID", "Status", "Expires", "Title")
		for _, p := range proposals {
			fmt.Printf("%6d | %-9s | %-22s | %s\n", p.ID, p.Status, p.Expires.String(), p.Title)
		}
	},
}

var proposalCmd = &cobra.Command{
	Use:   "proposal [proposal-id] [multisig]",
	Short: "Show a proposal with its decoded messages and votes",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseProposalID(args[0])

		cfg, logger := setup()
		defer logger.Sync() // nolint: errcheck

		contract := multisigArg(args[1:], cfg)

		provider, session := connect(cmd.Context(), cfg, logger)
		defer provider.Disconnect()

		detail, err := multisig.NewQueryClient(session.Context()).ProposalWithVotes(cmd.Context(), contract, id)
		if err != nil {
			log.Fatalf("failed to get proposal: %v", err)
		}

		p := detail.Proposal
		fmt.Printf("Proposal %d: %s\n", p.ID, p.Title)
		fmt.Printf("Status:   %s\n", p.Status)
		fmt.Printf("Expires:  %s\n", p.Expires.String())
		fmt.Println()
		fmt.Println(p.Description)
		fmt.Println()

		pretty, err := codec.PrettyPrint(codec.DecodeEmbeddedPayloads(p.Msgs))
		if err != nil {
			log.Fatalf("failed to print messages: %v", err)
		}
		fmt.Println("Messages:")
		fmt.Println(pretty)
		fmt.Println()

		printVotes(detail.Votes)

		if vote, ok := (cw3.VoteListResponse{Votes: detail.Votes}).VoteOf(session.Address()); ok {
			fmt.Printf("\nYour vote: %s\n", vote.Vote)
		} else if p.Status.CanVote() {
			fmt.Println("\nYou have not voted yet")
		}
		switch {
		case p.Status.CanExecute():
			fmt.Println("The proposal passed and can be executed")
		case p.Status.CanClose():
			fmt.Println("The proposal was rejected and can be closed")
		}
	},
}

var votesCmd = &cobra.Command{
	Use:   "votes [proposal-id] [multisig]",
	Short: "List the votes of a proposal",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseProposalID(args[0])

		cfg, logger := setup()
		defer logger.Sync() // nolint: errcheck

		contract := multisigArg(args[1:], cfg)

		provider, session := connect(cmd.Context(), cfg, logger)
		defer provider.Disconnect()

		votes, err := multisig.NewQueryClient(session.Context()).ListVotes(cmd.Context(), contract, id)
		if err != nil {
			log.Fatalf("failed to list votes: %v", err)
		}
		printVotes(votes.Votes)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch [multisig]",
	Short: "Follow the proposals of a multisig",
	Long:  `Poll a multisig for new proposals and status changes. With --subscribe the client also reacts to contract events from the node websocket.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := setup()
		defer logger.Sync() // nolint: errcheck

		if cmd.Flags().Changed("subscribe") {
			cfg.Watch.Subscribe, _ = cmd.Flags().GetBool("subscribe")
		}
		contract := multisigArg(args, cfg)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		provider, session := connect(ctx, cfg, logger)
		defer provider.Disconnect()

		var events multisig.EventsClient
		if cfg.Watch.Subscribe {
			ec, ok := multisig.EventsClientFrom(session.Context())
			if !ok {
				log.Fatalf("node client does not support event subscriptions")
			}
			events = ec
		}

		watcher := multisig.NewWatcher(multisig.NewQueryClient(session.Context()), events, contract, cfg.Watch, logger,
			func(u multisig.ProposalUpdate) {
				if u.IsNew() {
					fmt.Printf("New proposal %d: %s (%s)\n", u.Proposal.ID, u.Proposal.Title, u.Proposal.Status)
					return
				}
				fmt.Printf("Proposal %d: %s -> %s\n", u.Proposal.ID, u.Previous, u.Proposal.Status)
			})

		if err := watcher.Start(ctx); err != nil {
			log.Fatalf("failed to start watcher: %v", err)
		}
		fmt.Printf("Watching %s, press Ctrl+C to stop\n", contract)
		<-ctx.Done()
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently used multisigs",
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, logger := setup()
		defer logger.Sync() // nolint: errcheck

		cache, err := store.Open(cfg.Cache.DBPath)
		if err != nil {
			log.Fatalf("failed to open cache: %v", err)
		}
		defer cache.Close()

		recent, err := cache.GetMultisigs(cmd.Context(), store.WithLimit(limit))
		if err != nil {
			log.Fatalf("failed to list multisigs: %v", err)
		}
		if len(recent) == 0 {
			fmt.Println("No multisigs used yet")
			return
		}
		for _, ms := range recent {
			marker := " "
			if ms.Address == cfg.DefaultMultisig {
				marker = "*"
			}
			fmt.Printf("%s %s  %-24s  %s\n", marker, ms.Address, ms.Label, ms.LastUsedAt.Format("2006-01-02 15:04"))
		}
	},
}

var useCmd = &cobra.Command{
	Use:   "use [multisig]",
	Short: "Set the default multisig",
	Long:  `Look up a multisig on chain, remember it and make it the default for the other commands.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := setup()
		defer logger.Sync() // nolint: errcheck

		provider, session := connect(cmd.Context(), cfg, logger)
		defer provider.Disconnect()

		ms := rememberMultisig(cmd, cfg, multisig.NewQueryClient(session.Context()), args[0], logger)
		if ms == nil {
			log.Fatalf("multisig %s not found", args[0])
		}

		if err := utils.UpdateViperConfig("default_multisig", ms.Address, viper.ConfigFileUsed()); err != nil {
			log.Fatalf("failed to update config: %v", err)
		}
		fmt.Printf("Default multisig set to %s (%s)\n", ms.Address, ms.Label)
	},
}

// rememberMultisig records contract in the address book. Failures are logged
// only, the address book is a convenience.
func rememberMultisig(cmd *cobra.Command, cfg config.Config, queries *multisig.QueryClient, contract string, logger *zap.Logger) *store.Multisig {
	cache, err := store.Open(cfg.Cache.DBPath)
	if err != nil {
		logger.Warn("failed to open cache", zap.Error(err))
		return nil
	}
	defer cache.Close()

	ms, cached, err := multisig.NewAddressBook(cache, queries, logger).Lookup(cmd.Context(), contract)
	if err != nil {
		logger.Warn("failed to look up multisig", zap.String("address", contract), zap.Error(err))
		return nil
	}
	if cached {
		fmt.Printf("Using cached label for %s\n", contract)
	}
	return ms
}

func printVotes(votes []cw3.VoteInfo) {
	if len(votes) == 0 {
		fmt.Println("No votes")
		return
	}
	fmt.Printf("%-44s | %-7s | %s\n", "Voter", "Vote", "Weight")
	for _, v := range votes {
		fmt.Printf("%-44s | %-7s | %d\n", v.Voter, v.Vote, v.Weight)
	}
}

func printAccountSlot(address string, accPref, dividerItem string) {
	dividerAcc := ""

	fmt.Printf("%s", dividerItem)

	accLine := fmt.Sprintf("\n %s%s |", accPref, address)
	for i := 0; i < len(accLine)-1; i++ {
		dividerAcc += "-"
	}
	fmt.Printf("%s\n", accLine)
	fmt.Printf("%s\n", dividerAcc)
}

func init() {
	proposalsCmd.Flags().Int("limit", 0, "maximum number of proposals, 0 lists all")
	recentCmd.Flags().Int("limit", 20, "maximum number of multisigs")
	watchCmd.Flags().Bool("subscribe", false, "react to contract events from the node websocket")
}
