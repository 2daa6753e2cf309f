// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citeseek/internal/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect the local record library",
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored collections and their tallies",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openLibrary(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		infos, err := s.Collections(cmd.Context())
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Println("library is empty")
			return nil
		}

		for _, info := range infos {
			fmt.Printf("%-30s %3d success %3d partial %3d failed  saved %s\n",
				info.Name, info.Success, info.Partial, info.Failed,
				info.SavedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var storeShowCmd = &cobra.Command{
	Use:   "show <collection>",
	Short: "Print a collection's enriched records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openLibrary(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		records, err := s.Records(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return fmt.Errorf("collection %q not found or empty", args[0])
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		}

		for _, rec := range records {
			line := fmt.Sprintf("%-7s %s", rec.Method, rec.Title)
			if rec.DOI != "" {
				line += "  [" + rec.DOI + "]"
			}
			fmt.Println(line)
		}
		return nil
	},
}

func openLibrary(cmd *cobra.Command) (*store.Store, error) {
	dir, _ := cmd.Flags().GetString("library-dir")
	return store.Open(dir)
}

func init() {
	storeCmd.PersistentFlags().String("library-dir", "library", "local library directory")
	storeShowCmd.Flags().Bool("json", false, "output records as JSON")

	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeShowCmd)
	rootCmd.AddCommand(storeCmd)
}
