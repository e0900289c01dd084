package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sync"
	"time"

	"pool-market-client/internal/app"
	"pool-market-client/internal/config"
	"pool-market-client/internal/models"
	"pool-market-client/internal/services"

	"github.com/rs/zerolog/log"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errUsage          = errors.New("invalid usage")
)

type clientCommand func(ctx context.Context, a *app.App, p *printer, args []string) error

var clientCommands = map[string]clientCommand{
	"login":     loginCommand,
	"register":  registerCommand,
	"logout":    logoutCommand,
	"whoami":    whoamiCommand,
	"pools":     poolsCommand,
	"pool":      poolCommand,
	"favorite":  favoriteCommand,
	"favorites": favoritesCommand,
	"admin":     adminCommand,
}

func runClientCommand(ctx context.Context, cfg *config.Config, p *printer, stderr io.Writer, name string, args []string) error {
	command, ok := clientCommands[name]
	if !ok {
		return fmt.Errorf("%w %q", errUnknownCommand, name)
	}

	a := app.New(ctx, cfg, log.Logger)
	defer a.Close()

	unsubscribe := a.Hub.Subscribe(notificationPrinter(stderr))
	defer unsubscribe()

	return command(ctx, a, p, args)
}

// notificationPrinter writes every newly queued notification once
func notificationPrinter(w io.Writer) func(services.Event) {
	var (
		mu   sync.Mutex
		seen = map[string]bool{}
	)
	return func(e services.Event) {
		if e.Type != services.EventNotifications {
			return
		}
		list, ok := e.Data.([]models.Notification)
		if !ok {
			return
		}

		mu.Lock()
		defer mu.Unlock()
		for _, n := range list {
			if seen[n.ID] {
				continue
			}
			seen[n.ID] = true
			for _, line := range n.Text {
				fmt.Fprintf(w, "[%s] %s\n", n.Kind, line)
			}
		}
	}
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
	}
	return nil
}

func resultErr(r services.Result) error {
	if r != services.ResultSuccess {
		return errFailed
	}
	return nil
}

func loginCommand(ctx context.Context, a *app.App, p *printer, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if err := resultErr(a.Users.Login(ctx, *email, *password)); err != nil {
		return err
	}
	return p.user(a.Users.User())
}

func registerCommand(ctx context.Context, a *app.App, p *printer, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	var req models.RegisterRequest
	fs.StringVar(&req.FirstName, "first-name", "", "first name")
	fs.StringVar(&req.LastName, "last-name", "", "last name")
	fs.StringVar(&req.Email, "email", "", "account email")
	fs.StringVar(&req.MobileNumber, "mobile", "", "mobile number")
	fs.StringVar(&req.Password, "password", "", "account password")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if err := resultErr(a.Users.Register(ctx, req)); err != nil {
		return err
	}
	return p.user(a.Users.User())
}

func logoutCommand(_ context.Context, a *app.App, _ *printer, _ []string) error {
	a.Users.Logout()
	return nil
}

func whoamiCommand(_ context.Context, a *app.App, p *printer, _ []string) error {
	return p.user(a.Users.User())
}

func poolsCommand(ctx context.Context, a *app.App, p *printer, args []string) error {
	fs := flag.NewFlagSet("pools", flag.ContinueOnError)
	mine := fs.Bool("mine", false, "only pools of the signed-in host, including hidden ones")
	var search services.PoolSearch
	fs.StringVar(&search.City, "city", "", "city contains")
	fs.IntVar(&search.MinGuests, "guests", 0, "minimum capacity")
	fs.Float64Var(&search.MaxPrice, "max-price", 0, "maximum price per day")
	fs.BoolVar(&search.Amenities.Heated, "heated", false, "heated pools only")
	fs.BoolVar(&search.Amenities.PetsAllowed, "pets", false, "pets allowed")
	fs.BoolVar(&search.Amenities.PartyAllowed, "party", false, "parties allowed")
	fs.BoolVar(&search.Amenities.Wifi, "wifi", false, "wifi available")
	fs.BoolVar(&search.Amenities.BBQ, "bbq", false, "barbecue available")
	fs.BoolVar(&search.Amenities.Parking, "parking", false, "parking available")
	fs.BoolVar(&search.Amenities.SummerKitchen, "summer-kitchen", false, "summer kitchen available")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	userID := ""
	if *mine {
		user := a.Users.User()
		if user == nil {
			return fmt.Errorf("%w: -mine needs a signed-in user", errUsage)
		}
		userID = user.ID
	}

	if err := resultErr(a.Pools.Load(ctx, userID)); err != nil {
		return err
	}
	return p.pools(services.FilterPools(a.Pools.List(), search))
}

func poolCommand(ctx context.Context, a *app.App, p *printer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: pool <id>", errUsage)
	}

	pool, result := a.Pools.Get(ctx, args[0])
	if err := resultErr(result); err != nil {
		return err
	}
	return p.pool(pool)
}

func favoriteCommand(ctx context.Context, a *app.App, p *printer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: favorite <id>", errUsage)
	}

	pool, result := a.Pools.Get(ctx, args[0])
	if err := resultErr(result); err != nil {
		return err
	}
	a.Favorites.Toggle(*pool)
	return p.pools(a.Favorites.List())
}

func favoritesCommand(_ context.Context, a *app.App, p *printer, _ []string) error {
	return p.pools(a.Favorites.List())
}

// adminCommand runs the shared-secret admin operations: pools, users and
// visibility <id>.
func adminCommand(ctx context.Context, a *app.App, p *printer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: admin pools|users|visibility <id>", errUsage)
	}

	switch args[0] {
	case "pools":
		pools, err := a.API.AdminListPools(ctx)
		if err != nil {
			return err
		}
		return p.pools(pools)
	case "users":
		users, err := a.API.AdminListUsers(ctx)
		if err != nil {
			return err
		}
		return p.users(users)
	case "visibility":
		fs := flag.NewFlagSet("admin visibility", flag.ContinueOnError)
		visible := fs.Bool("visible", true, "show the pool in public listings")
		days := fs.Int("days", 0, "hide again after this many days (0 keeps it visible)")
		if err := parseFlags(fs, args[1:]); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("%w: admin visibility [-visible] [-days n] <id>", errUsage)
		}

		req := models.VisibilityRequest{IsVisible: *visible}
		if *days > 0 {
			until := time.Now().AddDate(0, 0, *days).UTC()
			req.VisibleUntil = &until
		}
		pool, err := a.API.SetPoolVisibility(ctx, fs.Arg(0), req)
		if err != nil {
			return err
		}
		return p.pool(pool)
	default:
		return fmt.Errorf("%w: admin %s", errUnknownCommand, args[0])
	}
}
