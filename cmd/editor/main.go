// Command editor edits one catalog product from the command line: it opens
// the product (or starts a new one), applies field changes and prints or
// sends the resulting partial update.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mytheresa/catalog-editor/client"
	"github.com/mytheresa/catalog-editor/config"
	"github.com/mytheresa/catalog-editor/editor"
	"github.com/mytheresa/catalog-editor/logger"
	"github.com/mytheresa/catalog-editor/templates"
)

type kvList []string

func (l *kvList) String() string { return strings.Join(*l, ",") }
func (l *kvList) Set(v string) error {
	if !strings.Contains(v, "=") {
		return fmt.Errorf("expected field=value, got %q", v)
	}
	*l = append(*l, v)
	return nil
}

func main() {
	var sets, variantSets kvList
	var productID, categoryID int64
	var addVariant, save bool
	flag.Int64Var(&productID, "product", 0, "product id to open; 0 starts a new product")
	flag.Int64Var(&categoryID, "category", 0, "category to switch to before editing")
	flag.Var(&sets, "set", "product field=value (repeatable)")
	flag.Var(&variantSets, "variant-set", "field=value applied to the last variant (repeatable)")
	flag.BoolVar(&addVariant, "add-variant", false, "append a variant seeded with the category defaults")
	flag.BoolVar(&save, "save", false, "send the changes instead of printing them")
	flag.Parse()

	cfg := config.Load()
	logg, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logg.Sync()

	if err := run(context.Background(), cfg, logg, productID, categoryID, sets, variantSets, addVariant, save); err != nil {
		var verr *editor.ValidationError
		if errors.As(err, &verr) {
			for _, p := range verr.Problems {
				fmt.Fprintln(os.Stderr, "invalid:", p)
			}
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		logg.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logg *logger.Logger, productID, categoryID int64, sets, variantSets kvList, addVariant, save bool) error {
	api, err := client.New(logg, client.Config{
		BaseURL:  cfg.CatalogAPIURL,
		Timeout:  cfg.HTTPTimeout,
		PageSize: cfg.TemplatePageSize,
	})
	if err != nil {
		return fmt.Errorf("init client: %w", err)
	}

	caches := []templates.Cache{templates.NewMemoryCache()}
	if cfg.RedisAddr != "" {
		rc, err := templates.NewRedisCache(cfg.RedisAddr, logg)
		if err != nil {
			logg.Warn("redis template cache disabled", "error", err)
		} else {
			defer rc.Close()
			caches = append(caches, rc)
		}
	}
	store := templates.NewStore(api, logg, templates.WithCache(templates.Tiered{
		Caches:      caches,
		BackfillTTL: cfg.TemplateCacheTTL,
	}, cfg.TemplateCacheTTL))

	session := editor.NewSession(api, store, logg)
	if productID > 0 {
		if err := session.Open(ctx, productID); err != nil {
			return fmt.Errorf("open product %d: %w", productID, err)
		}
	}
	if categoryID > 0 {
		if err := session.SelectCategory(ctx, categoryID); err != nil {
			return fmt.Errorf("select category %d: %w", categoryID, err)
		}
	}

	for _, kv := range sets {
		field, value, _ := strings.Cut(kv, "=")
		if err := session.SetScalarField(field, value); err != nil {
			return err
		}
	}

	if addVariant {
		session.AddVariant()
	}
	if len(variantSets) > 0 {
		last := len(session.Working().Variants) - 1
		if last < 0 {
			return fmt.Errorf("no variant to edit; pass -add-variant")
		}
		for _, kv := range variantSets {
			field, value, _ := strings.Cut(kv, "=")
			if err := session.SetVariantField(last, field, value); err != nil {
				return err
			}
		}
		if err := session.ReconcileAttributes(last); err != nil {
			return err
		}
		missing, err := session.RecommendedFields(last)
		if err != nil {
			return err
		}
		for section, names := range missing {
			fmt.Fprintf(os.Stderr, "recommended %s: %s\n", section, strings.Join(names, ", "))
		}
	}

	if !session.HasUnsavedChanges() {
		fmt.Println("no changes")
		return nil
	}

	if !save {
		return printJSON(session.Payload())
	}
	saved, err := session.Save(ctx)
	if err != nil {
		return err
	}
	if saved.ID != nil {
		fmt.Printf("saved product %d with %d variants\n", *saved.ID, len(saved.Variants))
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
