package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/osse101/FairyGrove_Go/internal/catalog"
	"github.com/osse101/FairyGrove_Go/internal/domain"
)

const flagLang = "lang"

func catalogCommand() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Print the creature, shop and subscription tables",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagLang, Value: "en", Usage: "display language for creature names"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return printCatalog(cmd.Root().Writer, catalog.Default(), cmd.String(flagLang))
		},
	}
}

func printCatalog(out io.Writer, cat *catalog.Catalog, lang string) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	PrintHeader(out, "Creatures")
	fmt.Fprintln(tw, "FAMILY\tLV\tNAME\tPRODUCES\tEVERY\tUNLOCK")
	for _, fam := range cat.Families() {
		for _, def := range fam.Levels {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%ds\t%s\n",
				fam.ID, def.Level, def.Name(lang), bundle(def.Production), def.IntervalSeconds, bundle(def.UnlockCost))
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	PrintHeader(out, "Shop")
	fmt.Fprintln(tw, "ID\tCATEGORY\tPRICE")
	for _, item := range cat.ShopItems() {
		price := bundle(item.Cost)
		if item.IsPremium() {
			price = fmt.Sprintf("%d ⭐", item.CostStars)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", item.ID, item.Category, price)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	PrintHeader(out, "Subscriptions")
	fmt.Fprintln(tw, "TIER\tMULTIPLIER\tDAILY\tSLOTS\tPRICE")
	for _, sub := range cat.Subscriptions() {
		fmt.Fprintf(tw, "%s\tx%.2f\t%d\t+%d\t%d ⭐\n", sub.Tier, sub.Multiplier, sub.DailyCreatures, sub.ExtraSlots, sub.PriceStars)
	}
	return tw.Flush()
}

func bundle(b domain.ResourceBundle) string {
	if b.IsZero() {
		return "-"
	}
	s := ""
	for _, key := range domain.ResourceOrder {
		if v := b.Get(key); v != 0 {
			if s != "" {
				s += " "
			}
			s += fmt.Sprintf("%d %s", v, key)
		}
	}
	return s
}
