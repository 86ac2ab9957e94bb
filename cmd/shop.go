package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/capiwear/storefront/catalog/pkg/response"
	"github.com/capiwear/storefront/filter"
	"github.com/capiwear/storefront/internal/log"
	userRequest "github.com/capiwear/storefront/user/pkg/request"
)

// runShop is the interactive storefront: one cart, one session, one filter,
// driven by line commands until quit. All state dies with the process except
// the auth session.
func runShop(c context.Context, category string) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main runShop").
		Logger()

	if !filter.IsValidCategory(category) {
		fmt.Printf("unknown category %q, pick one of %s\n",
			category, strings.Join(filter.Categories(), ", "))
		return
	}

	c = logger.WithContext(c)
	a, err := initApp(c)
	if err != nil {
		logger.Error().Err(err).Msgf("failed initializing app with error=%s", err.Error())
		return
	}
	defer a.shutdown(c)

	f := filter.New(category)

	fmt.Printf("CapiWear — %s\n", filter.Label(category))
	if session, ok := a.sessions.Current(); ok {
		fmt.Printf("signed in as %s\n", session.User.Email)
	}
	fmt.Println(`type "help" for commands`)

	refresh(c, a, f)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "quit", "exit":
			return
		case "help":
			printHelp()
		case "list":
			printProducts(a, f)
		case "style":
			if len(fields) < 2 {
				fmt.Println("usage: style <street|basic|sport|premium>")
				continue
			}
			style := response.Style(fields[1])
			if !style.Valid() {
				fmt.Printf("unknown style %q\n", fields[1])
				continue
			}
			f.ToggleStyle(style)
			refresh(c, a, f)
			printProducts(a, f)
		case "sub":
			if len(fields) < 2 {
				f.PickSubcategory(f.Subcategory)
			} else {
				f.PickSubcategory(strings.Join(fields[1:], " "))
			}
			refresh(c, a, f)
			printProducts(a, f)
		case "price":
			if len(fields) != 3 {
				fmt.Println("usage: price <min> <max>")
				continue
			}
			min, errMin := decimal.NewFromString(fields[1])
			max, errMax := decimal.NewFromString(fields[2])
			if errMin != nil || errMax != nil {
				fmt.Println("min and max must be numbers")
				continue
			}
			f.SetPriceBounds(min, max)
			printProducts(a, f)
		case "add":
			withProductID(fields, func(id int64) {
				for _, p := range a.browser.Products() {
					if p.ID == id {
						a.cart.AddItem(p)
						fmt.Printf("added %s\n", p.Name)
						return
					}
				}
				fmt.Printf("no product with id %d on this page\n", id)
			})
		case "remove":
			withProductID(fields, func(id int64) {
				a.cart.RemoveItem(id)
			})
		case "qty":
			if len(fields) != 3 {
				fmt.Println("usage: qty <productId> <quantity>")
				continue
			}
			id, errID := strconv.ParseInt(fields[1], 10, 64)
			quantity, errQty := strconv.Atoi(fields[2])
			if errID != nil || errQty != nil {
				fmt.Println("usage: qty <productId> <quantity>")
				continue
			}
			a.cart.SetQuantity(id, quantity)
		case "cart":
			a.cart.OpenDrawer()
			printCart(a)
		case "close":
			a.cart.CloseDrawer()
		case "checkout":
			_ = a.submitter.Submit(c)
			printCart(a)
		case "login":
			if len(fields) != 3 {
				fmt.Println("usage: login <email> <password>")
				continue
			}
			_, err := a.sessions.Login(c, userRequest.Login{
				Email:    fields[1],
				Password: fields[2],
			}, true)
			if err != nil {
				fmt.Println(loginFailureMessage(err))
				continue
			}
			fmt.Println("signed in")
		case "logout":
			a.sessions.Logout(c)
			fmt.Println("signed out")
		default:
			fmt.Printf("unknown command %q, type \"help\"\n", fields[0])
		}
	}
}

func withProductID(fields []string, fn func(int64)) {
	if len(fields) != 2 {
		fmt.Println("usage: " + fields[0] + " <productId>")
		return
	}
	id, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		fmt.Println("productId must be a number")
		return
	}
	fn(id)
}

func refresh(c context.Context, a *app, f filter.Filter) {
	a.browser.Refresh(c, f.Query(1, 24))
}

func printProducts(a *app, f filter.Filter) {
	if msg := a.browser.ErrorMessage(); msg != "" {
		fmt.Println(msg)
		return
	}
	products := f.Apply(a.browser.Products())
	if len(products) == 0 {
		fmt.Println("no products match the active filters")
		return
	}
	fmt.Printf("%d product(s)\n", len(products))
	for _, p := range products {
		marker := " "
		if a.cart.Contains(p.ID) {
			marker = "*"
		}
		fmt.Printf("%s [%d] %-38s R$ %8s  %s\n",
			marker, p.ID, p.Name, p.Price.StringFixed(2), styleList(p.Styles))
	}
}

func styleList(styles []response.Style) string {
	tags := make([]string, 0, len(styles))
	for _, s := range styles {
		tags = append(tags, string(s))
	}
	return strings.Join(tags, ",")
}

func printCart(a *app) {
	if !a.cart.DrawerOpen() {
		return
	}
	if msg := a.cart.ErrorMessage(); msg != "" {
		fmt.Println("! " + msg)
	}
	if msg := a.cart.SuccessMessage(); msg != "" {
		fmt.Println("✓ " + msg)
	}
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Println("your cart is empty")
		return
	}
	for _, item := range items {
		fmt.Printf("  [%d] %-38s %d × R$ %s = R$ %s\n",
			item.ProductID, item.Name, item.Quantity,
			item.Price.StringFixed(2),
			item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))).StringFixed(2))
	}
	fmt.Printf("%d item(s), subtotal R$ %s\n", a.cart.Count(), a.cart.Subtotal().StringFixed(2))
}

func printHelp() {
	fmt.Println(`commands:
  list                      show products for the active filters
  style <tag>               toggle a style tag (street, basic, sport, premium)
  sub [name]                pick or clear a subcategory
  price <min> <max>         set the inclusive price bounds
  add <productId>           add a product to the cart
  remove <productId>        remove a line item
  qty <productId> <n>       set a line item quantity (0 removes)
  cart                      open the cart
  close                     close the cart
  checkout                  submit the order
  login <email> <password>  sign in
  logout                    sign out
  quit                      leave`)
}
