package cmd

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dymensionxyz/multisig-client/codec"
	"github.com/dymensionxyz/multisig-client/config"
	"github.com/dymensionxyz/multisig-client/multisig"
	"github.com/dymensionxyz/multisig-client/types"
	"github.com/dymensionxyz/multisig-client/types/cw3"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a multisig",
	Long: `Instantiate a new CW3 multisig contract with the wallet as sender and admin.
Voters are given as address:weight pairs.`,
	Example: `multisig-client create --label treasury --threshold 2 --voting-period 72h \
  --voter inj1...:1 --voter inj1...:1 --voter inj1...:1`,
	Run: func(cmd *cobra.Command, args []string) {
		label, _ := cmd.Flags().GetString("label")
		threshold, _ := cmd.Flags().GetUint64("threshold")
		period, _ := cmd.Flags().GetDuration("voting-period")
		voterArgs, _ := cmd.Flags().GetStringArray("voter")
		codeID, _ := cmd.Flags().GetUint64("code-id")

		cfg, logger := setup()
		defer logger.Sync() // nolint: errcheck

		if codeID == 0 {
			codeID = cfg.MultisigCodeID
		}

		voters, err := parseVoters(voterArgs)
		if err != nil {
			log.Fatalf("%v", err)
		}

		seconds := uint64(period / time.Second)
		msg := cw3.InstantiateMsg{
			MaxVotingPeriod: cw3.Duration{Time: &seconds},
			Threshold:       cw3.Threshold{AbsoluteCount: &cw3.AbsoluteCount{Weight: threshold}},
			Voters:          voters,
		}

		provider, session := connect(cmd.Context(), cfg, logger)
		defer provider.Disconnect()

		addr, res, err := multisig.NewDispatcher(provider, cfg, logger).CreateMultisig(cmd.Context(), session.Address(), codeID, label, msg)
		if err != nil {
			log.Fatalf("failed to create multisig: %v", err)
		}
		printTxResult(res)
		if addr != "" {
			fmt.Printf("Multisig created: %s\n", addr)
		}
	},
}

var proposeCmd = &cobra.Command{
	Use:   "propose [multisig]",
	Short: "Submit a proposal",
	Long: `Submit a proposal to a multisig. Messages are a JSON array, a single JSON
object, or base64 of either. Use --msgs-file to read them from a file.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		msgsText, _ := cmd.Flags().GetString("msgs")
		msgsFile, _ := cmd.Flags().GetString("msgs-file")
		expires, _ := cmd.Flags().GetDuration("expires")

		cfg, logger := setup()
		defer logger.Sync() // nolint: errcheck

		contract := multisigArg(args, cfg)

		if msgsFile != "" {
			text, err := readFile(msgsFile)
			if err != nil {
				log.Fatalf("failed to read messages: %v", err)
			}
			msgsText = text
		}

		msgs, err := codec.ParseMessages(msgsText)
		if err != nil {
			log.Fatalf("%s %v", codec.ErrInvalidJSONMessage, err)
		}

		var latest *cw3.Expiration
		if expires > 0 {
			latest = cw3.ExpireAtTime(time.Now().Add(expires))
		}

		provider, session := connect(cmd.Context(), cfg, logger)
		defer provider.Disconnect()

		id, res, err := multisig.NewDispatcher(provider, cfg, logger).
			Propose(cmd.Context(), session.Address(), contract, title, description, msgs, latest)
		if err != nil {
			log.Fatalf("failed to submit proposal: %v", err)
		}
		printTxResult(res)
		if id != 0 {
			fmt.Printf("Proposal created: %d\n", id)
		}
	},
}

var voteCmd = &cobra.Command{
	Use:   "vote [proposal-id] [yes|no|abstain|veto] [multisig]",
	Short: "Vote on a proposal",
	Args:  cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseProposalID(args[0])
		vote := cw3.Vote(strings.ToLower(args[1]))

		cfg, logger := setup()
		defer logger.Sync() // nolint: errcheck

		contract := multisigArg(args[2:], cfg)

		provider, session := connect(cmd.Context(), cfg, logger)
		defer provider.Disconnect()

		res, err := multisig.NewDispatcher(provider, cfg, logger).Vote(cmd.Context(), session.Address(), contract, id, vote)
		if err != nil {
			log.Fatalf("failed to vote: %v", err)
		}
		printTxResult(res)
	},
}

var executeCmd = &cobra.Command{
	Use:   "execute [proposal-id] [multisig]",
	Short: "Execute a passed proposal",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseProposalID(args[0])

		cfg, logger := setup()
		defer logger.Sync() // nolint: errcheck

		contract := multisigArg(args[1:], cfg)

		provider, session := connect(cmd.Context(), cfg, logger)
		defer provider.Disconnect()

		res, err := multisig.NewDispatcher(provider, cfg, logger).Execute(cmd.Context(), session.Address(), contract, id)
		if err != nil {
			log.Fatalf("failed to execute proposal: %v", err)
		}
		printTxResult(res)
	},
}

var closeCmd = &cobra.Command{
	Use:   "close [proposal-id] [multisig]",
	Short: "Close a rejected proposal",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseProposalID(args[0])

		cfg, logger := setup()
		defer logger.Sync() // nolint: errcheck

		contract := multisigArg(args[1:], cfg)

		provider, session := connect(cmd.Context(), cfg, logger)
		defer provider.Disconnect()

		res, err := multisig.NewDispatcher(provider, cfg, logger).Close(cmd.Context(), session.Address(), contract, id)
		if err != nil {
			log.Fatalf("failed to close proposal: %v", err)
		}
		printTxResult(res)
	},
}

// parseVoters parses address:weight pairs.
func parseVoters(args []string) ([]cw3.Voter, error) {
	voters := make([]cw3.Voter, 0, len(args))
	for _, arg := range args {
		addr, weightStr, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, types.ErrInvalidInput.Wrapf("voter %q must be address:weight", arg)
		}
		weight, err := strconv.ParseUint(weightStr, 10, 64)
		if err != nil {
			return nil, types.ErrInvalidInput.Wrapf("invalid weight in %q", arg)
		}
		voters = append(voters, cw3.Voter{Addr: strings.TrimSpace(addr), Weight: weight})
	}
	return voters, nil
}

func parseProposalID(arg string) uint64 {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		log.Fatalf("invalid proposal id %q", arg)
	}
	return id
}

// multisigArg returns the multisig address given on the command line, or the
// configured default.
func multisigArg(args []string, cfg config.Config) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if cfg.DefaultMultisig == "" {
		log.Fatalf("no multisig given and no default_multisig configured, see the use command")
	}
	return cfg.DefaultMultisig
}

func printTxResult(res *multisig.TxResult) {
	if res == nil {
		return
	}
	if res.Pending {
		fmt.Printf("Transaction %s broadcast, confirmation pending\n", res.TxHash)
		return
	}
	fmt.Printf("Transaction %s included at height %d\n", res.TxHash, res.Height)
}

func init() {
	createCmd.Flags().String("label", "", "multisig label")
	createCmd.Flags().Uint64("threshold", 0, "weight needed to pass a proposal")
	createCmd.Flags().Duration("voting-period", 0, "maximum voting period")
	createCmd.Flags().StringArray("voter", nil, "voter as address:weight, repeatable")
	createCmd.Flags().Uint64("code-id", 0, "multisig contract code id, defaults to multisig_code_id")

	proposeCmd.Flags().String("title", "", "proposal title")
	proposeCmd.Flags().String("description", "", "proposal description")
	proposeCmd.Flags().String("msgs", "", "proposal messages")
	proposeCmd.Flags().String("msgs-file", "", "file holding the proposal messages")
	proposeCmd.Flags().Duration("expires", 0, "voting deadline from now, defaults to the contract maximum")
}
