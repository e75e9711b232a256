package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cairoverse/clin/lint"
)

// classifyCmd: clin classify [message]
var classifyCmd = &cobra.Command{
	Use:   "classify [message]",
	Short: "Map diagnostic messages back to their lint kinds",
	Long: `Maps a diagnostic message to the lint kind that produces it.
With arguments the joined message is classified once; otherwise one
message per line is read from stdin. Messages no rule produces print
as Unknown.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			fmt.Println(lint.Classify(strings.Join(args, " ")))
			return
		}

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			fmt.Println(lint.Classify(scanner.Text()))
		}
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "error reading stdin: %v\n", err)
			os.Exit(1)
		}
	},
}
