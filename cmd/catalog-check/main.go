// Command catalog-check validates the embedded component catalog and the
// room templates that reference it. It is run in CI so a bad catalog edit is
// caught before it ships inside the binary.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"electroplan/internal/catalog"
)

var exitFunc = os.Exit

// main runs the command-line interface using the program arguments and exits
// the process with the status code returned by cli.
func main() {
	code := cli(os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("catalog-check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var verbose bool
	fs.BoolVar(&verbose, "verbose", false, "print per-template item counts")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := run(stdout, verbose); err != nil {
		if _, writeErr := fmt.Fprintf(stderr, "Catalog validation failed: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}
	if _, writeErr := fmt.Fprintln(stdout, "Catalog validation passed."); writeErr != nil {
		return 1
	}
	return 0
}

// run loads the embedded catalog and verifies it is usable: at least one item,
// a display currency, and every room template resolving to known catalog items
// with positive quantities.
func run(stdout io.Writer, verbose bool) error {
	cat, err := catalog.Load()
	if err != nil {
		return err
	}
	if cat.Len() == 0 {
		return errors.New("catalog has no items")
	}
	if cat.Currency() == "" {
		return errors.New("catalog currency is empty")
	}
	if verbose {
		if _, err := fmt.Fprintf(stdout, "catalog: %d items, currency %s\n", cat.Len(), cat.Currency()); err != nil {
			return err
		}
	}

	for _, tpl := range catalog.Templates() {
		if err := validateTemplate(cat, tpl); err != nil {
			return fmt.Errorf("template %s: %w", tpl.Kind, err)
		}
		if verbose {
			if _, err := fmt.Fprintf(stdout, "template %s: %d item kinds\n", tpl.Kind, len(tpl.Items)); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateTemplate(cat *catalog.Catalog, tpl catalog.RoomTemplate) error {
	if tpl.Name == "" {
		return errors.New("empty name")
	}
	if len(tpl.Items) == 0 {
		return errors.New("no items")
	}
	seen := make(map[string]struct{}, len(tpl.Items))
	for i, item := range tpl.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("items[%d]: quantity %d must be positive", i, item.Quantity)
		}
		if _, ok := cat.FindByID(item.CatalogItemID); !ok {
			return fmt.Errorf("items[%d]: unknown catalog item %q", i, item.CatalogItemID)
		}
		if _, dup := seen[item.CatalogItemID]; dup {
			return fmt.Errorf("items[%d]: duplicate catalog item %q", i, item.CatalogItemID)
		}
		seen[item.CatalogItemID] = struct{}{}
	}
	return nil
}
