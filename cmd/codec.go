package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dymensionxyz/multisig-client/codec"
)

var codecCmd = &cobra.Command{
	Use:   "codec",
	Short: "Convert proposal message payloads",
	Long:  `Detect, encode and decode the JSON and base64 forms of proposal messages. Input is read from the argument, or from stdin when it is "-" or missing.`,
}

var codecDetectCmd = &cobra.Command{
	Use:   "detect [input]",
	Short: "Detect the encoding of a payload",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(codec.DetectEncoding(inputArg(args)))
	},
}

var codecEncodeCmd = &cobra.Command{
	Use:   "encode [input]",
	Short: "Encode text to base64",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(codec.EncodeToBase64(inputArg(args)))
	},
}

var codecDecodeCmd = &cobra.Command{
	Use:   "decode [input]",
	Short: "Decode base64 text",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pretty, _ := cmd.Flags().GetBool("pretty")

		input := strings.TrimSpace(inputArg(args))
		if !pretty {
			text, err := codec.DecodeFromBase64(input)
			if err != nil {
				log.Fatalf("%v", err)
			}
			fmt.Println(text)
			return
		}

		value, err := codec.DecodeJSONFromBase64(input)
		if err != nil {
			log.Fatalf("%v", err)
		}
		out, err := codec.PrettyPrint(value)
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Println(out)
	},
}

var codecInspectCmd = &cobra.Command{
	Use:   "inspect [input]",
	Short: "Show a payload in every supported form",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p := codec.Inspect(inputArg(args))

		fmt.Printf("Encoding: %s\n", p.Encoding)
		if p.Error != "" {
			fmt.Printf("Error:    %s\n", p.Error)
		}
		if p.Base64 != "" {
			fmt.Printf("Base64:   %s\n", p.Base64)
		}
		if p.Pretty != "" {
			fmt.Println("JSON:")
			fmt.Println(p.Pretty)
		}
		if len(p.Messages) > 0 {
			decoded, err := codec.PrettyPrint(p.Messages)
			if err != nil {
				log.Fatalf("%v", err)
			}
			fmt.Println("Decoded messages:")
			fmt.Println(decoded)
		}
	},
}

// inputArg returns the first argument, or stdin when it is "-" or missing.
func inputArg(args []string) string {
	if len(args) > 0 && args[0] != "-" {
		return args[0]
	}
	bz, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatalf("failed to read stdin: %v", err)
	}
	return string(bz)
}

func readFile(path string) (string, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(bz), nil
}

func init() {
	codecDecodeCmd.Flags().Bool("pretty", false, "decode the text as JSON and pretty print it")

	codecCmd.AddCommand(codecDetectCmd)
	codecCmd.AddCommand(codecEncodeCmd)
	codecCmd.AddCommand(codecDecodeCmd)
	codecCmd.AddCommand(codecInspectCmd)
}
