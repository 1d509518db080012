package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"

	"objectio/feature/objectio"

	"github.com/spf13/cobra"
)

var typeFlag string
var rawFlag bool

// lsCmd represents the ls command
var lsCmd = &cobra.Command{
	Use:   "ls [prefix]",
	Short: "List object keys",
	Long:  `Lists every key under the prefix, optionally keeping only keys with the given file type suffix.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newService()
		if err != nil {
			return err
		}
		defer logg.Sync()

		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}
		return runList(cmd.Context(), svc, cmd.OutOrStdout(), prefix, typeFlag)
	},
}

// existsCmd represents the exists command
var existsCmd = &cobra.Command{
	Use:   "exists <key>",
	Short: "Check whether an object exists",
	Long:  `Prints true or false. Exits with status 1 when the object does not exist.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newService()
		if err != nil {
			return err
		}
		defer logg.Sync()

		return runExists(cmd.Context(), svc, cmd.OutOrStdout(), args[0])
	},
}

// sizeCmd represents the size command
var sizeCmd = &cobra.Command{
	Use:   "size <key>",
	Short: "Print the size of an object",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newService()
		if err != nil {
			return err
		}
		defer logg.Sync()

		size, err := svc.Size(cmd.Context(), "", args[0], rawFlag)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), size)
		return nil
	},
}

func runList(ctx context.Context, svc *objectio.Service, w io.Writer, prefix, fileType string) error {
	keys, err := svc.ListKeys(ctx, "", prefix, fileType)
	if err != nil {
		return err
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintln(w, key)
	}
	return nil
}

func runExists(ctx context.Context, svc *objectio.Service, w io.Writer, key string) error {
	ok, err := svc.Exists(ctx, "", key)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, ok)
	if !ok {
		return errAbsent
	}
	return nil
}

func init() {
	lsCmd.Flags().StringVar(&typeFlag, "type", "", "only list keys with this suffix (e.g. csv)")
	sizeCmd.Flags().BoolVar(&rawFlag, "raw", false, "print the size as a plain byte count")

	RootCmd.AddCommand(lsCmd)
	RootCmd.AddCommand(existsCmd)
	RootCmd.AddCommand(sizeCmd)
}
