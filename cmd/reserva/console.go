package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Git-LeAmaral/reserva-praia/internal/export"
	"github.com/Git-LeAmaral/reserva-praia/internal/models"
	"github.com/Git-LeAmaral/reserva-praia/internal/selection"
	"github.com/Git-LeAmaral/reserva-praia/internal/service"
)

// console is the operator surface of the daemon: a line-oriented command
// loop over stdin driving the booking manager and the two-click
// selection flow. The graphical calendar talks to the same services.
type console struct {
	manager   *service.BookingManager
	selection *service.SelectionService
	exporter  *export.Exporter
	logger    *zerolog.Logger
	out       *bufio.Writer
}

func newConsole(manager *service.BookingManager, sel *service.SelectionService, exporter *export.Exporter, logger *zerolog.Logger) *console {
	return &console{
		manager:   manager,
		selection: sel,
		exporter:  exporter,
		logger:    logger,
		out:       bufio.NewWriter(os.Stdout),
	}
}

func (c *console) run(ctx context.Context) error {
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	c.printf("reserva-praia console, 'help' lists commands\n")
	for {
		c.printf("> ")
		_ = c.out.Flush()
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if err := c.dispatch(ctx, strings.Fields(line)); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				c.printf("error: %v\n", err)
			}
		}
	}
}

var errQuit = errors.New("quit")

func (c *console) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return nil
	}
	switch args[0] {
	case "help":
		c.printHelp()
		return nil
	case "quit", "exit":
		return errQuit
	case "month":
		return c.cmdMonth(args[1:])
	case "click":
		return c.cmdClick(ctx, args[1:])
	case "cancel":
		return c.selection.Abandon(ctx, models.DefaultSessionKey)
	case "book":
		return c.cmdBook(ctx, args[1:])
	case "edit":
		return c.cmdEdit(ctx, args[1:])
	case "delete":
		return c.cmdDelete(ctx, args[1:])
	case "revenue":
		return c.cmdRevenue(args[1:])
	case "export":
		return c.cmdExport(args[1:])
	default:
		return fmt.Errorf("unknown command %q, try 'help'", args[0])
	}
}

func (c *console) printHelp() {
	c.printf(`Commands:
  month YYYY-MM                      list bookings touching a month
  click YYYY-MM-DD                   advance the two-click range selection
  cancel                             drop a pending selection
  book START END TITULAR [RATE]      create a booking, titular as name;id;age;phone;email
  edit ID START END [RATE]           move an existing booking
  delete ID                          remove a booking
  revenue YYYY-MM                    per-day and monthly revenue
  export YYYY-MM                     write the month's xlsx report
  quit
`)
}

func (c *console) cmdMonth(args []string) error {
	year, month, err := parseMonth(args)
	if err != nil {
		return err
	}
	bookings := c.manager.BookingsForMonth(year, month)
	if len(bookings) == 0 {
		c.printf("no bookings\n")
		return nil
	}
	for _, b := range bookings {
		c.printf("%s  %s .. %s  %-24s %d pessoas  %d diárias  R$%.2f\n",
			b.ID,
			b.StartDate.Format("2006-01-02"), b.EndDate.Format("2006-01-02"),
			b.Titular.Name, b.People(), b.TotalDays, b.TotalPrice)
	}
	return nil
}

func (c *console) cmdClick(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: click YYYY-MM-DD")
	}
	day, err := time.ParseInLocation("2006-01-02", args[0], time.Local)
	if err != nil {
		return fmt.Errorf("bad date %q", args[0])
	}

	outcome, err := c.selection.ClickDay(ctx, models.DefaultSessionKey, day)
	if err != nil {
		return err
	}
	switch outcome.Kind {
	case selection.OutcomeCompleted:
		c.printf("range selected: %s .. %s, confirm with 'book'\n",
			outcome.Start.Format("2006-01-02"), outcome.End.Format("2006-01-02"))
	case selection.OutcomeStarted, selection.OutcomeRestarted:
		c.printf("start set to %s, click the end day\n", outcome.Start.Format("2006-01-02"))
	case selection.OutcomeIgnored:
		c.printf("day is in the past\n")
	default:
		if rejErr := service.RejectionError(outcome.Kind); rejErr != nil {
			c.printf("%v\n", rejErr)
		}
	}
	return nil
}

func (c *console) cmdBook(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.New("usage: book START END name;id;age;phone;email [RATE]")
	}
	start, err := time.ParseInLocation("2006-01-02", args[0], time.Local)
	if err != nil {
		return fmt.Errorf("bad start date %q", args[0])
	}
	end, err := time.ParseInLocation("2006-01-02", args[1], time.Local)
	if err != nil {
		return fmt.Errorf("bad end date %q", args[1])
	}
	titular, err := parseTitular(args[2])
	if err != nil {
		return err
	}
	var rate float64
	if len(args) > 3 {
		if rate, err = strconv.ParseFloat(args[3], 64); err != nil {
			return fmt.Errorf("bad rate %q", args[3])
		}
	}

	booking, err := c.manager.CreateBooking(ctx, service.CreateRequest{
		StartDate: start,
		EndDate:   end,
		DailyRate: rate,
		Titular:   titular,
	})
	if err != nil {
		return err
	}
	c.printf("booked %s: %d diárias, total R$%.2f\n", booking.ID, booking.TotalDays, booking.TotalPrice)
	return nil
}

func (c *console) cmdEdit(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.New("usage: edit ID START END [RATE]")
	}
	id := args[0]
	current, ok := findBooking(c.manager.Bookings(), id)
	if !ok {
		return fmt.Errorf("no booking %q", id)
	}

	rate := current.DailyRate
	if len(args) > 3 {
		var err error
		if rate, err = strconv.ParseFloat(args[3], 64); err != nil {
			return fmt.Errorf("bad rate %q", args[3])
		}
	}

	updated, err := c.manager.UpdateBooking(ctx, id, service.EditRequest{
		StartDate:  args[1],
		EndDate:    args[2],
		DailyRate:  rate,
		Titular:    current.Titular,
		Companions: current.Companions,
	})
	if err != nil {
		return err
	}
	c.printf("updated %s: %s .. %s, total R$%.2f\n", updated.ID,
		updated.StartDate.Format("2006-01-02"), updated.EndDate.Format("2006-01-02"), updated.TotalPrice)
	return nil
}

func (c *console) cmdDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: delete ID")
	}
	if c.manager.DeleteBooking(ctx, args[0]) {
		c.printf("deleted %s\n", args[0])
	} else {
		c.printf("no booking %q, nothing to do\n", args[0])
	}
	return nil
}

func (c *console) cmdRevenue(args []string) error {
	year, month, err := parseMonth(args)
	if err != nil {
		return err
	}
	for _, r := range c.manager.DailyRevenue(year, month) {
		c.printf("%04d-%02d-%02d  R$%.2f\n", year, int(month), r.Day, r.Amount)
	}
	c.printf("total: R$%.2f\n", c.manager.MonthRevenue(year, month))
	return nil
}

func (c *console) cmdExport(args []string) error {
	year, month, err := parseMonth(args)
	if err != nil {
		return err
	}
	path, err := c.exporter.MonthWorkbook(year, month)
	if err != nil {
		return err
	}
	c.printf("written %s\n", path)
	return nil
}

func (c *console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func parseMonth(args []string) (int, time.Month, error) {
	if len(args) != 1 {
		return 0, 0, errors.New("expected YYYY-MM")
	}
	t, err := time.ParseInLocation("2006-01", args[0], time.Local)
	if err != nil {
		return 0, 0, fmt.Errorf("bad month %q", args[0])
	}
	return t.Year(), t.Month(), nil
}

func parseTitular(raw string) (models.Titular, error) {
	parts := strings.Split(raw, ";")
	if len(parts) != 5 {
		return models.Titular{}, errors.New("titular must be name;id;age;phone;email")
	}
	return models.Titular{
		Name:       parts[0],
		NationalID: parts[1],
		Age:        parts[2],
		Phone:      parts[3],
		Email:      parts[4],
	}, nil
}

func findBooking(bookings []models.Booking, id string) (models.Booking, bool) {
	for _, b := range bookings {
		if b.ID == id {
			return b, true
		}
	}
	return models.Booking{}, false
}
