package cmd

import (
	"context"
	"fmt"
	"io"

	"objectio/core/frame"
	"objectio/feature/objectio"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	formatFlag string
	rowsFlag   int
	fromFlag   string
	toFlag     string
)

// headCmd represents the head command
var headCmd = &cobra.Command{
	Use:   "head <key>",
	Short: "Print the first rows of a table",
	Long:  `Reads a parquet, csv, tsv or txt object and prints its first rows tab-separated.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newService()
		if err != nil {
			return err
		}
		defer logg.Sync()

		return runHead(cmd.Context(), svc, cmd.OutOrStdout(), args[0], formatFlag, rowsFlag)
	},
}

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <src> <dst>",
	Short: "Convert a table between formats",
	Long:  `Reads the source table and writes it to the destination key. Formats are taken from the key suffixes unless --from or --to is given.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newService()
		if err != nil {
			return err
		}
		defer logg.Sync()

		if err := runConvert(cmd.Context(), svc, args[0], args[1], fromFlag, toFlag); err != nil {
			return err
		}
		logg.Info("Converted table", zap.String("src", args[0]), zap.String("dst", args[1]))
		return nil
	},
}

func runHead(ctx context.Context, svc *objectio.Service, w io.Writer, key, inputFormat string, n int) error {
	df, err := svc.ReadDataFrame(ctx, "", key, inputFormat)
	if err != nil {
		return err
	}

	out, err := frame.EncodeDelimited(df.Head(n), '\t')
	if err != nil {
		return fmt.Errorf("failed to render rows: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func runConvert(ctx context.Context, svc *objectio.Service, src, dst, from, to string) error {
	df, err := svc.ReadDataFrame(ctx, "", src, from)
	if err != nil {
		return err
	}
	return svc.WriteDataFrame(ctx, df, "", dst, to)
}

func init() {
	headCmd.Flags().StringVar(&formatFlag, "format", "", "input format (parquet, txt, csv, tsv)")
	headCmd.Flags().IntVarP(&rowsFlag, "rows", "n", 10, "number of rows to print")
	convertCmd.Flags().StringVar(&fromFlag, "from", "", "input format (parquet, txt, csv, tsv)")
	convertCmd.Flags().StringVar(&toFlag, "to", "", "output format (parquet, txt, csv, tsv)")

	RootCmd.AddCommand(headCmd)
	RootCmd.AddCommand(convertCmd)
}
