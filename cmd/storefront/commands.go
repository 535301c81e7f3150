package main

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dujiao-next/storefront/internal/cart"
	"github.com/dujiao-next/storefront/internal/contracts"
	"github.com/dujiao-next/storefront/internal/notification"
	"github.com/dujiao-next/storefront/internal/review"

	"github.com/spf13/pflag"
)

// ErrUsage 命令行参数错误
var ErrUsage = errors.New("usage")

const usageText = `usage: storefront <command> [args]

commands:
  login --email E --password P
  register --email E --password P --first-name F --last-name L
  logout
  whoami
  refresh
  cart list
  cart add --product ID [--quantity N] [--option group=value ...]
  cart update KEY QUANTITY
  cart remove KEY
  cart clear
  reviews list PRODUCT_ID [--rating N]
  reviews submit --product ID --rating N --comment C --name N --email E
  notifications list [--unread]
  notifications read ID
  notifications read-all
  notifications delete ID
`

// Run 执行子命令
func (a *clientApp) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usageText)
		return ErrUsage
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return a.login(ctx, rest)
	case "register":
		return a.register(ctx, rest)
	case "logout":
		a.auth.Logout(ctx)
		fmt.Fprintln(a.out, "logged out")
		return nil
	case "whoami":
		return a.whoami()
	case "refresh":
		if err := a.auth.RefreshToken(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "token refreshed")
		return nil
	case "cart":
		return a.cartCommand(ctx, rest)
	case "reviews":
		return a.reviewsCommand(ctx, rest)
	case "notifications":
		return a.notificationsCommand(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usageText)
		return nil
	default:
		fmt.Fprint(a.out, usageText)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	return fs
}

func (a *clientApp) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("%w: login requires --email and --password", ErrUsage)
	}
	if err := a.auth.Login(ctx, contracts.LoginRequest{Email: *email, Password: *password}); err != nil {
		return err
	}
	return a.whoami()
}

func (a *clientApp) register(ctx context.Context, args []string) error {
	fs := newFlagSet("register")
	req := contracts.RegisterRequest{}
	fs.StringVar(&req.Email, "email", "", "account email")
	fs.StringVar(&req.Password, "password", "", "account password")
	fs.StringVar(&req.FirstName, "first-name", "", "first name")
	fs.StringVar(&req.LastName, "last-name", "", "last name")
	fs.StringVar(&req.Phone, "phone", "", "phone number")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if req.Email == "" || req.Password == "" {
		return fmt.Errorf("%w: register requires --email and --password", ErrUsage)
	}
	if err := a.auth.Register(ctx, req); err != nil {
		return err
	}
	return a.whoami()
}

func (a *clientApp) whoami() error {
	st := a.auth.State()
	if !st.IsAuthenticated {
		fmt.Fprintln(a.out, "not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s %s <%s> role=%s\n", st.User.FirstName, st.User.LastName, st.User.Email, st.User.Role)
	return nil
}

func (a *clientApp) cartCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.printCart()
	}
	switch args[0] {
	case "list":
		return a.printCart()
	case "add":
		return a.cartAdd(ctx, args[1:])
	case "update":
		if len(args) != 3 {
			return fmt.Errorf("%w: cart update KEY QUANTITY", ErrUsage)
		}
		quantity, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("%w: invalid quantity %q", ErrUsage, args[2])
		}
		a.cart.UpdateQuantity(args[1], quantity)
		return a.printCart()
	case "remove":
		if len(args) != 2 {
			return fmt.Errorf("%w: cart remove KEY", ErrUsage)
		}
		a.cart.RemoveItem(args[1])
		return a.printCart()
	case "clear":
		a.cart.Clear()
		return a.printCart()
	default:
		return fmt.Errorf("%w: unknown cart command %q", ErrUsage, args[0])
	}
}

func (a *clientApp) cartAdd(ctx context.Context, args []string) error {
	fs := newFlagSet("cart add")
	productID := fs.String("product", "", "product id")
	quantity := fs.Int("quantity", 1, "quantity")
	options := fs.StringToString("option", nil, "selected option, group=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *productID == "" {
		return fmt.Errorf("%w: cart add requires --product", ErrUsage)
	}
	product, err := a.api.Products().Get(ctx, *productID)
	if err != nil {
		return err
	}
	item, err := cart.FromProduct(*product, *quantity, *options)
	if err != nil {
		return err
	}
	a.cart.AddItem(item)
	return a.printCart()
}

func (a *clientApp) printCart() error {
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "cart is empty")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tTITLE\tQTY\tUNIT\tTOTAL")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", item.Key(), item.Title, item.Quantity, item.Price, item.LineTotal())
	}
	summary := a.cart.Summary()
	fmt.Fprintf(tw, "\t\t%d\t\t%s\n", summary.ItemsCount, summary.TotalPrice)
	return tw.Flush()
}

func (a *clientApp) reviewsCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: reviews list|submit", ErrUsage)
	}
	switch args[0] {
	case "list":
		return a.reviewsList(ctx, args[1:])
	case "submit":
		return a.reviewsSubmit(ctx, args[1:])
	default:
		return fmt.Errorf("%w: unknown reviews command %q", ErrUsage, args[0])
	}
}

func (a *clientApp) reviewsList(ctx context.Context, args []string) error {
	fs := newFlagSet("reviews list")
	rating := fs.Int("rating", 0, "only show reviews with this rating")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: reviews list PRODUCT_ID", ErrUsage)
	}
	a.reviews.LoadProductReviews(ctx, fs.Arg(0))

	list := a.reviews.Reviews().Get()
	if *rating > 0 {
		list = a.reviews.ReviewsByRating(*rating).Get()
	}
	fmt.Fprintf(a.out, "%d reviews, average %.1f\n", a.reviews.ReviewCount().Get(), a.reviews.AverageRating().Get())
	for _, r := range list {
		fmt.Fprintf(a.out, "[%d/5] %s: %s\n", r.Rating, r.AuthorName, r.Comment)
	}
	return nil
}

func (a *clientApp) reviewsSubmit(ctx context.Context, args []string) error {
	fs := newFlagSet("reviews submit")
	form := review.FormData{Type: review.TypeText}
	fs.StringVar(&form.ProductID, "product", "", "product id")
	fs.IntVar(&form.Rating, "rating", 0, "rating 1-5")
	fs.StringVar(&form.Comment, "comment", "", "review text")
	fs.StringVar(&form.AuthorName, "name", "", "author name")
	fs.StringVar(&form.AuthorEmail, "email", "", "author email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if form.ProductID == "" {
		return fmt.Errorf("%w: reviews submit requires --product", ErrUsage)
	}
	result := a.reviews.SubmitReview(ctx, form)
	if !result.Success {
		return errors.New(result.Error)
	}
	fmt.Fprintf(a.out, "review %s submitted\n", result.Review.ID)
	return nil
}

func (a *clientApp) notificationsCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		fs := newFlagSet("notifications list")
		unread := fs.Bool("unread", false, "only unread notifications")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		a.notifications.Load(ctx)
		if st := a.notifications.State(); st.Error != "" {
			return errors.New(st.Error)
		}
		items := a.notifications.All().Get()
		if *unread {
			items = a.notifications.Unread().Get()
		}
		a.printNotifications(items)
		return nil
	case "read":
		if len(args) != 2 {
			return fmt.Errorf("%w: notifications read ID", ErrUsage)
		}
		a.notifications.Load(ctx)
		a.notifications.MarkAsRead(ctx, args[1])
	case "read-all":
		a.notifications.Load(ctx)
		a.notifications.MarkAllAsRead(ctx)
	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("%w: notifications delete ID", ErrUsage)
		}
		a.notifications.Load(ctx)
		a.notifications.Delete(ctx, args[1])
	default:
		return fmt.Errorf("%w: unknown notifications command %q", ErrUsage, args[0])
	}
	fmt.Fprintf(a.out, "%d unread\n", a.notifications.UnreadCount().Get())
	return nil
}

func (a *clientApp) printNotifications(items []notification.Notification) {
	fmt.Fprintf(a.out, "%d notifications, %d unread\n", len(items), a.notifications.UnreadCount().Get())
	now := time.Now()
	groups := notification.GroupByType(items)
	for _, kind := range slices.Sorted(maps.Keys(groups)) {
		fmt.Fprintf(a.out, "%s:\n", strings.ToUpper(kind))
		for _, n := range groups[kind] {
			mark := " "
			if !n.Read {
				mark = "*"
			}
			fmt.Fprintf(a.out, " %s %s  %s (%s)\n", mark, n.Title, n.Message, notification.FormatAge(n.CreatedAt, now))
		}
	}
}
