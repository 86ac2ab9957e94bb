package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/capiwear/storefront/catalog/pkg/request"
	"github.com/capiwear/storefront/catalog/pkg/response"
	"github.com/capiwear/storefront/internal/log"
)

func runProducts(c context.Context, cmd *cobra.Command) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main runProducts").
		Logger()

	c = logger.WithContext(c)
	a, err := initApp(c)
	if err != nil {
		logger.Error().Err(err).Msgf("failed initializing app with error=%s", err.Error())
		return
	}
	defer a.shutdown(c)

	query := request.ProductQuery{}
	query.Category, _ = cmd.Flags().GetString("category")
	query.Sub, _ = cmd.Flags().GetString("sub")
	query.Page, _ = cmd.Flags().GetInt("page")
	query.PageSize, _ = cmd.Flags().GetInt("page-size")
	query.Q, _ = cmd.Flags().GetString("q")

	styles, _ := cmd.Flags().GetStringArray("style")
	for _, s := range styles {
		style := response.Style(s)
		if !style.Valid() {
			fmt.Printf("unknown style %q\n", s)
			return
		}
		query.Styles = append(query.Styles, style)
	}

	if raw, _ := cmd.Flags().GetString("min"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			fmt.Println("min must be a number")
			return
		}
		query.Min = decimal.NewNullDecimal(min)
	}
	if raw, _ := cmd.Flags().GetString("max"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			fmt.Println("max must be a number")
			return
		}
		query.Max = decimal.NewNullDecimal(max)
	}

	products, err := a.catalog.FetchProducts(c, query)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	if len(products) == 0 {
		fmt.Println("no products found")
		return
	}
	fmt.Printf("%d product(s)\n", len(products))
	for _, p := range products {
		fmt.Printf("[%d] %-38s R$ %8s  %s/%s  %s\n",
			p.ID, p.Name, p.Price.StringFixed(2),
			p.Category, p.Subcategory, styleList(p.Styles))
	}
}
