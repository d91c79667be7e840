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
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/shenikar/traffic_review/internal/client"
	"github.com/shenikar/traffic_review/internal/models"
	"github.com/shenikar/traffic_review/internal/session"
	"github.com/shenikar/traffic_review/pkg/logger"
)

const helpText = `commands:
  plate <number>     enter the plate number read from the image
  lookup             look up the entered plate in DMV
  accept             accept the event
  reject             open the reject confirmation
  reason <n|name>    select issue reason (1-4 or its name)
  confirm            confirm rejection
  cancel             close the reject confirmation
  refresh            fetch an event again (after an error or a reset)
  reset              reset the review queue
  stats              show queue statistics
  help               show this help
  quit               exit`

type cli struct {
	session *session.Session
	client  *client.Client
	apiKey  string
	timeout time.Duration
	out     io.Writer
}

func main() {
	server := flag.String("server", "http://localhost:8080", "review service base URL")
	email := flag.String("email", "demo@traffic.com", "reviewer email")
	password := flag.String("password", "demo123", "reviewer password")
	apiKey := flag.String("api-key", os.Getenv("API_KEY"), "API key for reset")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	log := logger.New(*logLevel, "text")
	log.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := client.New(*server, nil)

	loginCtx, cancel := context.WithTimeout(ctx, *timeout)
	reviewer, err := c.Login(loginCtx, *email, *password)
	cancel()
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			fmt.Fprintln(os.Stderr, "Invalid credentials")
			os.Exit(1)
		}
		log.Fatalf("Failed to log in: %v", err)
	}

	app := &cli{
		session: session.New(c, *reviewer, log),
		client:  c,
		apiKey:  *apiKey,
		timeout: *timeout,
		out:     os.Stdout,
	}
	fmt.Fprintf(app.out, "Logged in as %s (%s)\n", reviewer.DisplayName, reviewer.Email)

	startCtx, cancel := context.WithTimeout(ctx, *timeout)
	if err := app.session.Start(startCtx); err != nil {
		fmt.Fprintf(app.out, "error: %v (type \"refresh\" to retry)\n", err)
	}
	cancel()
	app.render()

	if err := app.run(ctx, os.Stdin); err != nil {
		log.WithError(err).Error("Input error")
		os.Exit(1)
	}
}

// run читает команды построчно до quit, EOF или отмены контекста
func (a *cli) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(a.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(a.out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		command, args := strings.ToLower(fields[0]), fields[1:]
		if command == "quit" || command == "exit" {
			return nil
		}

		cmdCtx, cancel := context.WithTimeout(ctx, a.timeout)
		err := a.execute(cmdCtx, command, args)
		cancel()
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			continue
		}
		a.render()
	}
}

func (a *cli) execute(ctx context.Context, command string, args []string) error {
	switch command {
	case "help":
		fmt.Fprintln(a.out, helpText)
		return nil
	case "plate":
		return a.session.SetPlate(strings.Join(args, " "))
	case "lookup":
		_, err := a.session.Lookup(ctx)
		return err
	case "accept":
		return a.session.Accept(ctx)
	case "reject":
		return a.session.BeginReject()
	case "reason":
		if len(args) != 1 {
			return fmt.Errorf("usage: reason <n|name>")
		}
		reason, err := parseIssueReason(args[0])
		if err != nil {
			return err
		}
		return a.session.SelectIssue(reason)
	case "confirm":
		return a.session.ConfirmReject(ctx)
	case "cancel":
		return a.session.CancelReject()
	case "refresh":
		return a.session.Refresh(ctx)
	case "reset":
		seeded, err := a.client.Reset(ctx, a.apiKey)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Queue reset, %d events seeded\n", seeded)
		if a.session.State() == session.StateExhausted {
			return a.session.Refresh(ctx)
		}
		return nil
	case "stats":
		stats, err := a.client.Stats(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "events: %d total, %d processed, %d pending\n", stats.TotalEvents, stats.ProcessedEvents, stats.PendingEvents)
		fmt.Fprintf(a.out, "annotations: %d (%d accepted, %d rejected)\n", stats.Annotations, stats.Accepted, stats.Rejected)
		return nil
	}
	return fmt.Errorf("unknown command %q, type \"help\"", command)
}

// parseIssueReason принимает номер из списка или имя причины
func parseIssueReason(arg string) (models.IssueReason, error) {
	reasons := models.IssueReasons()
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(reasons) {
			return "", fmt.Errorf("issue reason number must be between 1 and %d", len(reasons))
		}
		return reasons[n-1], nil
	}
	reason := models.IssueReason(strings.ToLower(arg))
	if !reason.IsValid() {
		return "", fmt.Errorf("unknown issue reason %q", arg)
	}
	return reason, nil
}

func (a *cli) render() {
	s := a.session
	switch s.State() {
	case session.StateExhausted:
		fmt.Fprintln(a.out, "No more events to process. Reset the queue to continue.")
		return
	case session.StateAwaitingEvent:
		fmt.Fprintln(a.out, "Waiting for an event.")
		return
	case session.StateReviewing:
	default:
		return
	}

	if last := s.LastAnnotation(); last != nil {
		fmt.Fprintf(a.out, "Saved annotation #%d (%s) for event #%d\n", last.ID, last.Decision, last.EventID)
	}

	event := s.Event()
	fmt.Fprintf(a.out, "\nEvent #%d  %s  at %s\n", event.ID, event.Kind, event.Location)
	fmt.Fprintf(a.out, "  video: %s\n  plate image: %s\n", event.VideoRef, event.PlateImageRef)
	if plate := s.Plate(); plate != "" {
		fmt.Fprintf(a.out, "  plate entered: %s\n", plate)
	}
	if v := s.Vehicle(); v != nil {
		fmt.Fprintf(a.out, "  DMV: %s %s, %s, owner %s, registered %s, expires %s\n",
			v.Make, v.Model, v.Color, v.OwnerName, v.RegistrationDate, v.ExpirationDate)
	}
	if s.ConfirmingReject() {
		fmt.Fprintln(a.out, "  Reject event? Select a reason, then \"confirm\":")
		for i, reason := range models.IssueReasons() {
			marker := " "
			if reason == s.IssueReason() {
				marker = "*"
			}
			fmt.Fprintf(a.out, "   %s %d) %s\n", marker, i+1, reason)
		}
	}
}
