package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/AndreasStokka/Kvittering/internal/config"
	"github.com/AndreasStokka/Kvittering/internal/model"
	"github.com/AndreasStokka/Kvittering/internal/receipt"
	"github.com/AndreasStokka/Kvittering/internal/stores"
)

const jsonDateFormat = "2006-01-02"

// receiptView is the JSON shape printed for a parsed receipt. Absent
// fields are omitted rather than zero-filled.
type receiptView struct {
	ID        string         `json:"id"`
	Store     string         `json:"store,omitempty"`
	Date      string         `json:"date,omitempty"`
	Total     string         `json:"total,omitempty"`
	Category  string         `json:"category"`
	LineItems []lineItemView `json:"line_items"`
}

type lineItemView struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

func newParseCommand() *cobra.Command {
	var configPath string
	var storesPath string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse one recognized-text dump (or stdin) into structured fields",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(configPath, storesPath)
			if err != nil {
				return err
			}

			var text []byte
			if len(args) > 0 {
				text, err = os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("reading input: %w", err)
				}
			} else {
				text, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
			}

			parsed := svc.Parse(string(text))
			category := suggestFor(svc, parsed)

			out, err := json.MarshalIndent(makeView(parsed, category), "", "  ")
			if err != nil {
				return fmt.Errorf("encoding result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	addEngineFlags(cmd, &configPath, &storesPath)
	return cmd
}

// addEngineFlags registers the flags shared by parse and batch.
func addEngineFlags(cmd *cobra.Command, configPath, storesPath *string) {
	cmd.Flags().StringVar(configPath, "config", "", "path to kvittering.yaml (default: built-in tuning)")
	cmd.Flags().StringVar(storesPath, "stores", "", "path to store_categories.json (default: built-in table)")
}

// newService builds the parsing service from the optional config and
// dictionary paths.
func newService(configPath, storesPath string) (*receipt.Service, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	dict := stores.Fallback()
	if storesPath != "" {
		dict = stores.Load(storesPath)
	}

	return receipt.NewService(dict, cfg), nil
}

// suggestFor classifies the resolved (or absent) store name.
func suggestFor(svc *receipt.Service, parsed model.ParsedReceipt) model.Category {
	name := ""
	if parsed.StoreName != nil {
		name = *parsed.StoreName
	}
	return svc.SuggestCategory(name)
}

func makeView(parsed model.ParsedReceipt, category model.Category) receiptView {
	view := receiptView{
		ID:        parsed.ID.String(),
		Category:  string(category),
		LineItems: make([]lineItemView, 0, len(parsed.LineItems)),
	}
	if parsed.StoreName != nil {
		view.Store = *parsed.StoreName
	}
	if parsed.PurchaseDate != nil {
		view.Date = parsed.PurchaseDate.Format(jsonDateFormat)
	}
	if parsed.TotalAmount != nil {
		view.Total = parsed.TotalAmount.StringFixed(2)
	}
	for _, item := range parsed.LineItems {
		view.LineItems = append(view.LineItems, lineItemView{
			Description: item.Description,
			Quantity:    item.Quantity.String(),
			UnitPrice:   item.UnitPrice.StringFixed(2),
			LineTotal:   item.LineTotal.StringFixed(2),
		})
	}
	return view
}
