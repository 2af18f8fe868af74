package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/AndreasStokka/Kvittering/internal/export"
)

func newBatchCommand() *cobra.Command {
	var configPath string
	var storesPath string
	var outPath string

	cmd := &cobra.Command{
		Use:   "batch <directory>",
		Short: "Reparse a directory of recognized-text dumps into a CSV summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(configPath, storesPath)
			if err != nil {
				return err
			}

			files, err := findTextFiles(args[0])
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No .txt files found.")
				return nil
			}

			bar := progressbar.NewOptions(len(files),
				progressbar.OptionSetDescription("Parsing receipts"),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			)

			// The service holds no per-parse state, so files can be
			// parsed concurrently without coordination.
			rows := make([]export.Row, len(files))
			errs := make([]error, len(files))
			var wg sync.WaitGroup
			for i, file := range files {
				wg.Add(1)
				go func(i int, file string) {
					defer wg.Done()
					defer bar.Add(1) //nolint:errcheck

					text, err := os.ReadFile(file)
					if err != nil {
						errs[i] = fmt.Errorf("reading %s: %w", file, err)
						return
					}
					parsed := svc.Parse(string(text))
					rows[i] = export.Row{
						Source:   filepath.Base(file),
						Receipt:  parsed,
						Category: suggestFor(svc, parsed),
					}
				}(i, file)
			}
			wg.Wait()

			for _, err := range errs {
				if err != nil {
					return err
				}
			}

			out, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating summary: %w", err)
			}
			defer out.Close()

			if err := export.WriteRows(out, rows); err != nil {
				return fmt.Errorf("writing summary: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\nParsed %d receipts into %s\n", len(rows), outPath)
			return nil
		},
	}

	addEngineFlags(cmd, &configPath, &storesPath)
	cmd.Flags().StringVar(&outPath, "out", "summary.csv", "output CSV path")
	return cmd
}

// findTextFiles returns the .txt files directly inside dir, sorted by name.
func findTextFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
