package commands

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/herbview/pkg/catalog"
)

const completionTimeout = 2 * time.Second

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(herbview completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(herbview completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func completionCatalog() *catalog.Catalog {
	_, src, err := resolve()
	if err != nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), completionTimeout)
	defer cancel()
	c, err := (&catalog.Loader{}).Load(ctx, src)
	if err != nil {
		return nil
	}
	return c
}

func idCompletions(toComplete string) []string {
	c := completionCatalog()
	ids := make([]string, 0, c.Len())
	for _, it := range c.Items() {
		if strings.HasPrefix(it.ID, toComplete) {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

func tagCompletions(toComplete string) []string {
	var tags []string
	for _, t := range completionCatalog().Tags() {
		if strings.HasPrefix(t, toComplete) {
			tags = append(tags, t)
		}
	}
	return tags
}
