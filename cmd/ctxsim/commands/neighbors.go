package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viant/ctxsim/embedding"
	"github.com/viant/ctxsim/index"
	"github.com/viant/ctxsim/index/bruteforce"
	"github.com/viant/ctxsim/resolve"
)

var (
	neighborsTable  string
	neighborsK      int
	neighborsFold   bool
	neighborsHeader string
)

var neighborsCmd = &cobra.Command{
	Use:   "neighbors TOKEN...",
	Short: "List the nearest tokens of an embedding table",
	Long: `List the k tokens of an embedding table most similar to each argument.

An argument with several words is averaged the same way a context is.
Unknown words are reported as unresolved.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if neighborsK < 1 {
			return fmt.Errorf("neighbors: -k must be at least 1, got %d", neighborsK)
		}
		header, err := embedding.ParseHeaderMode(neighborsHeader)
		if err != nil {
			return err
		}
		store, err := embedding.Load(neighborsTable, embedding.Options{
			CaseFold: neighborsFold,
			Header:   header,
			Logger:   slog.Default(),
		})
		if err != nil {
			return err
		}
		idx := &bruteforce.Index{}
		if err := index.FromStore(idx, store); err != nil {
			return err
		}
		resolver := resolve.NewResolver(store, resolve.Policy{TrySubwords: true})
		out := cmd.OutOrStdout()
		for _, arg := range args {
			agg, err := resolver.Sequence(arg)
			if err != nil {
				return err
			}
			if !agg.Resolved {
				fmt.Fprintf(out, "%s\t(unresolved)\n", arg)
				continue
			}
			// one extra slot for the query token itself
			neighbors, err := idx.Query(index.Float32s(agg.Vector), neighborsK+1)
			if err != nil {
				return err
			}
			self := arg
			if store.CaseFold() {
				self = strings.ToLower(arg)
			}
			shown := 0
			for _, n := range neighbors {
				if shown == neighborsK {
					break
				}
				if n.Token == self {
					continue
				}
				fmt.Fprintf(out, "%s\t%s\t%.6f\n", arg, n.Token, n.Score)
				shown++
			}
		}
		return nil
	},
}

func init() {
	f := neighborsCmd.Flags()
	f.StringVarP(&neighborsTable, "embeddings", "m", "", "embedding table")
	f.IntVarP(&neighborsK, "k", "k", 10, "neighbours per token")
	f.BoolVar(&neighborsFold, "uncased", false, "lower-case tokens")
	f.StringVar(&neighborsHeader, "header", "auto", "embedding header line: auto, yes or no")
	_ = neighborsCmd.MarkFlagRequired("embeddings")
}
