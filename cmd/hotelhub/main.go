package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotelhub/internal/adapters/filestore"
	"hotelhub/internal/adapters/hotelapi"
	"hotelhub/internal/adapters/observability"
	redisad "hotelhub/internal/adapters/redis"
	"hotelhub/internal/app"
	"hotelhub/internal/domain"
	"hotelhub/internal/shared"
	"hotelhub/internal/views"
)

const usage = `usage: hotelhub <command> [flags]

commands:
  login -email E -password P
  register -first F -last L -email E -phone N -password P
  logout
  whoami
  hotels
  hotel -id N
  overview                      stats for every hotel
  bookings -hotel N [-all]
  confirm-cash|cancel-cash|refund -hotel N -booking B
  employees -hotel N
  fire -hotel N -employee E
  delete-hotel -id N [-yes]
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cfg := shared.Load()
	// stdout carries command output only
	log.Logger = observability.NewLoggerTo(os.Stderr, cfg.AppEnv)
	zerolog.SetGlobalLevel(observability.LogLevel(cfg.AppEnv, cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli, err := newCLI(ctx, cfg, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	defer cli.close()

	if err := cli.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if hotelapi.IsAborted(err) {
			fmt.Fprintln(os.Stderr, "interrupted")
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "Error:", domain.UserMessage(err, err.Error()))
		os.Exit(1)
	}
}

type cli struct {
	cfg     shared.Config
	in      *bufio.Reader
	out     io.Writer
	api     *hotelapi.Client
	session *app.SessionStore
	notes   *app.NotificationQueue
	deps    views.Deps
	closeFn func()
}

func newCLI(ctx context.Context, cfg shared.Config, in io.Reader, out io.Writer) (*cli, error) {
	tokens, closeTokens, err := openTokenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	api, err := hotelapi.New(cfg.APIBaseURL, tokens,
		hotelapi.WithTimeout(cfg.RequestTimeout),
		hotelapi.WithRateLimit(cfg.APIRPS),
	)
	if err != nil {
		closeTokens()
		return nil, err
	}
	notes := app.NewNotificationQueue(cfg.NotificationTTL)
	session := app.NewSessionStore(api, tokens)
	alerts := domain.AlertFunc(func(m string) { fmt.Fprintln(out, "!", m) })
	c := &cli{
		cfg:     cfg,
		in:      bufio.NewReader(in),
		out:     out,
		api:     api,
		session: session,
		notes:   notes,
		deps: views.Deps{
			API:     api,
			Notes:   notes,
			Alerts:  alerts,
			Session: session,
			Hotels:  app.NewHotelCollection(api, alerts),
		},
	}
	c.closeFn = func() {
		notes.Close()
		closeTokens()
	}
	return c, nil
}

func (c *cli) close() { c.closeFn() }

func openTokenStore(ctx context.Context, cfg shared.Config) (domain.TokenStore, func(), error) {
	switch cfg.TokenStore {
	case "redis":
		cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := cache.Ping(ctx); err != nil {
			_ = cache.Close()
			return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		return redisad.NewTokenStore(cache), func() { _ = cache.Close() }, nil
	case "memory":
		return filestore.NewMemory(""), func() {}, nil
	}
	path := cfg.TokenPath
	if path == "" {
		p, err := filestore.DefaultPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}
	return filestore.New(path), func() {}, nil
}

func (c *cli) run(ctx context.Context, cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(c.out)
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	phone := fs.String("phone", "", "phone")
	id := fs.Int64("id", 0, "hotel id")
	hotelID := fs.Int64("hotel", 0, "hotel id")
	bookingID := fs.Int64("booking", 0, "booking id")
	employeeID := fs.Int64("employee", 0, "employee id")
	all := fs.Bool("all", false, "fetch every page")
	yes := fs.Bool("yes", false, "answer yes to every confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch cmd {
	case "login":
		return c.login(ctx, app.LoginForm{Email: *email, Password: *password})
	case "register":
		return c.register(ctx, app.RegisterForm{
			FirstName: *first, LastName: *last, Email: *email, Phone: *phone,
			Password: *password, ConfirmPassword: *password,
		})
	case "logout":
		if err := c.session.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "signed out")
		return nil
	}

	// everything below needs a signed-in owner
	c.session.Start(ctx)
	if ok, to := app.Guard(c.session); !ok {
		return fmt.Errorf("not signed in (run: hotelhub %s)", strings.TrimPrefix(to, "/"))
	}

	switch cmd {
	case "whoami":
		u := c.session.User()
		fmt.Fprintf(c.out, "%s %s <%s>\n", u.FirstName, u.LastName, u.Email)
		return nil
	case "hotels":
		return c.hotels(ctx)
	case "hotel":
		return c.hotel(ctx, *id)
	case "overview":
		return c.overview(ctx)
	case "bookings":
		return c.bookings(ctx, *hotelID, *all)
	case "confirm-cash", "cancel-cash", "refund":
		return c.bookingAction(ctx, cmd, *hotelID, *bookingID)
	case "employees":
		return c.employees(ctx, *hotelID)
	case "fire":
		return c.fire(ctx, *hotelID, *employeeID)
	case "delete-hotel":
		return c.deleteHotel(ctx, *id, *yes)
	}
	fmt.Fprint(c.out, usage)
	return fmt.Errorf("unknown command %q", cmd)
}

func (c *cli) login(ctx context.Context, f app.LoginForm) error {
	if err := views.Login(ctx, c.session, f); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "signed in as %s\n", c.session.User().Email)
	return nil
}

func (c *cli) register(ctx context.Context, f app.RegisterForm) error {
	if err := views.Register(ctx, c.session, f); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "welcome, %s\n", c.session.User().FirstName)
	return nil
}

func (c *cli) table() *tabwriter.Writer { return tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0) }

func (c *cli) hotels(ctx context.Context) error {
	d := views.OpenDashboard(ctx, c.deps)
	defer d.Close()
	tw := c.table()
	fmt.Fprintln(tw, "ID\tNAME\tCITY\tCOUNTRY")
	for _, h := range d.Model().Hotels {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", h.ID, h.Name, h.City, h.Country)
	}
	return tw.Flush()
}

func (c *cli) hotel(ctx context.Context, id int64) error {
	v, err := views.OpenHotelDetail(ctx, c.deps, id)
	if err != nil {
		return err
	}
	defer v.Close()
	m := v.Model()
	fmt.Fprintf(c.out, "%s (%s, %s)\n", m.Hotel.Name, m.Hotel.Address.City, m.Hotel.Address.Country)
	names := make([]string, 0, len(m.Amenities))
	for _, a := range m.Amenities {
		names = append(names, a.Name)
	}
	fmt.Fprintf(c.out, "amenities: %s\nimages: %d\n", strings.Join(names, ", "), len(m.Hotel.Images))
	tw := c.table()
	fmt.Fprintln(tw, "ROOM\tTYPE\tPLACES\tPRICE")
	for _, r := range m.Rooms {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\n", r.RoomNumber, r.RoomType, r.Places, r.PricePerNight)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return c.printStats(m.Stats)
}

func (c *cli) printStats(p views.StatsPanel) error {
	if !p.Available {
		fmt.Fprintln(c.out, "no stats yet")
		return nil
	}
	tw := c.table()
	for _, group := range [][]views.StatCard{p.General, p.Financials, p.Engagement} {
		for _, s := range group {
			fmt.Fprintf(tw, "%s\t%.2f%s\n", s.Label, s.Value, s.Unit)
		}
	}
	return tw.Flush()
}

type overviewRow struct {
	hotel domain.Hotel
	panel views.StatsPanel
	err   error
}

// overview fetches stats for every hotel, at most cfg.Workers at a time.
func (c *cli) overview(ctx context.Context) error {
	hotels, err := c.api.MyHotels(ctx)
	if err != nil {
		return err
	}
	workers := c.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	rows := make([]overviewRow, len(hotels))
	var wg sync.WaitGroup

	for i, h := range hotels {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(i int, h domain.Hotel) {
			defer wg.Done()
			defer sem.Release(1)
			st, err := c.api.HotelStats(ctx, h.ID)
			rows[i] = overviewRow{hotel: h, panel: views.BuildStatsPanel(st), err: err}
			if err != nil {
				log.Warn().Int64("hotel_id", h.ID).Err(err).Msg("stats failed")
			}
		}(i, h)
	}
	wg.Wait()
	if ctx.Err() != nil {
		return ctx.Err()
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].hotel.Name < rows[j].hotel.Name })
	tw := c.table()
	fmt.Fprintln(tw, "ID\tNAME\tOCCUPANCY\tNET INCOME")
	for _, r := range rows {
		if r.err != nil || !r.panel.Available {
			fmt.Fprintf(tw, "%d\t%s\t-\t-\n", r.hotel.ID, r.hotel.Name)
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%.0f%%\t%.2f\n", r.hotel.ID, r.hotel.Name, r.panel.General[4].Value, r.panel.Financials[2].Value)
	}
	return tw.Flush()
}

func (c *cli) feed(ctx context.Context, hotelID int64, all bool, until func(*views.BookingFeed) bool) (*views.BookingFeed, error) {
	if hotelID == 0 {
		return nil, errors.New("-hotel required")
	}
	f := views.NewBookingFeed(ctx, c.api, c.notes, hotelID)
	for {
		if err := f.More(); err != nil {
			return nil, err
		}
		m := f.Model()
		if !m.HasMore || (!all && (until == nil || until(f))) {
			return f, nil
		}
	}
}

func (c *cli) bookings(ctx context.Context, hotelID int64, all bool) error {
	f, err := c.feed(ctx, hotelID, all, nil)
	if err != nil {
		return err
	}
	m := f.Model()
	tw := c.table()
	fmt.Fprintln(tw, "ID\tROOM\tCLIENT\tPAY\tAMOUNT\tFROM\tTO\tSTATUS")
	for _, b := range m.Rows {
		pay := "cash"
		if b.IsCard {
			pay = "card"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.2f\t%s\t%s\t%s\n",
			b.BookingID, b.RoomNumber, b.ClientName, pay, b.Amount, b.PeriodStart, b.PeriodEnd, b.Status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if m.HasMore {
		fmt.Fprintln(c.out, "(more: pass -all)")
	}
	return nil
}

func (c *cli) bookingAction(ctx context.Context, action string, hotelID, bookingID int64) error {
	if bookingID == 0 {
		return errors.New("-booking required")
	}
	f, err := c.feed(ctx, hotelID, false, func(f *views.BookingFeed) bool { return f.Has(bookingID) })
	if err != nil {
		return err
	}
	switch action {
	case "confirm-cash":
		err = f.ConfirmCash(bookingID)
	case "cancel-cash":
		err = f.CancelCash(bookingID)
	default:
		err = f.Refund(bookingID)
	}
	if err != nil {
		return err
	}
	for _, n := range c.notes.List() {
		fmt.Fprintln(c.out, n.Message)
	}
	return nil
}

func (c *cli) employees(ctx context.Context, hotelID int64) error {
	v, err := views.OpenEmployeeRoster(ctx, c.deps, hotelID)
	if err != nil {
		return err
	}
	defer v.Close()
	m := v.Model()
	tw := c.table()
	fmt.Fprintln(tw, "ID\tNAME\tPOSITION\tSALARY")
	for _, e := range m.Employees {
		fmt.Fprintf(tw, "%d\t%s %s\t%s\t%.2f\n", e.ID, e.FirstName, e.LastName, e.Position, e.Salary)
	}
	fmt.Fprintf(tw, "\t\tpayroll\t%.2f\n", m.Payroll)
	return tw.Flush()
}

func (c *cli) fire(ctx context.Context, hotelID, employeeID int64) error {
	v, err := views.OpenEmployeeRoster(ctx, c.deps, hotelID)
	if err != nil {
		return err
	}
	defer v.Close()
	if err := v.Fire(employeeID); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "employee dismissed")
	return nil
}

// deleteHotel walks the three delete prompts, reading y/n answers from stdin.
func (c *cli) deleteHotel(ctx context.Context, id int64, yes bool) error {
	v, err := views.OpenHotelDetail(ctx, c.deps, id)
	if err != nil {
		return err
	}
	defer v.Close()

	for {
		prompt := v.Model().Delete.Prompt
		answer := yes
		if !yes {
			fmt.Fprintf(c.out, "%s [y/N] ", prompt)
			line, _ := c.in.ReadString('\n')
			answer = strings.EqualFold(strings.TrimSpace(line), "y")
		}
		deleted, err := v.RequestDelete(answer)
		if err != nil {
			return err
		}
		if deleted {
			fmt.Fprintln(c.out, "hotel deleted")
			return nil
		}
		if !answer {
			fmt.Fprintln(c.out, "cancelled")
			return nil
		}
	}
}
