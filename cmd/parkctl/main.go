package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"parkly/internal/config"
	"parkly/internal/model"
	"parkly/internal/parking"
	"parkly/internal/repository"
	"parkly/internal/service"
	"parkly/internal/storage"
)

// CLI is the parkctl command tree. Storage settings come from the same
// environment variables as the server.
type CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Generate GenerateCmd `cmd:"" help:"Print a freshly generated slot table as JSON"`
	Inspect  InspectCmd  `cmd:"" help:"Show the stored user, zone stats and bookings of a session"`
	Reset    ResetCmd    `cmd:"" help:"Delete everything stored for a session"`
}

// AfterApply sets up logging once flags are parsed.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// env bundles what every command needs.
type env struct {
	cfg   *config.Config
	zones model.ZoneConfigs
	out   io.Writer
}

func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	zones, err := config.LoadZones(cfg.ZonesFile)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, zones: zones, out: os.Stdout}, nil
}

// GenerateCmd prints the initial slot table.
type GenerateCmd struct {
	Zone string `help:"Only print this zone (S or R)"`
}

func (g *GenerateCmd) Run(e *env) error {
	table := parking.Generate(e.zones)
	var payload any = table
	if g.Zone != "" {
		zone := model.Zone(g.Zone)
		if _, ok := e.zones[zone]; !ok {
			return fmt.Errorf("zone %q is not configured", g.Zone)
		}
		payload = table.Slots(zone)
	}
	return writeJSON(e.out, payload)
}

// InspectCmd reads a session's records without regenerating anything.
type InspectCmd struct {
	Session string `arg:"" help:"Session id"`
}

type inspectReport struct {
	Session  string              `json:"session"`
	User     *model.User         `json:"user"`
	Stats    []model.ZoneStats   `json:"stats,omitempty"`
	Bookings []model.ParkingSlot `json:"bookings"`
	ETag     string              `json:"etag,omitempty"`
}

func (i *InspectCmd) Run(ctx context.Context, e *env) error {
	store, err := storage.Open(ctx, e.cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	report, err := inspect(ctx, repository.NewParkingRepository(store), e.zones, i.Session)
	if err != nil {
		return err
	}
	return writeJSON(e.out, report)
}

func inspect(ctx context.Context, repo repository.ParkingRepository, zones model.ZoneConfigs, sessionID string) (*inspectReport, error) {
	report := &inspectReport{Session: sessionID, Bookings: []model.ParkingSlot{}}

	user, err := repo.LoadUser(ctx, sessionID)
	switch {
	case err == nil:
		report.User = user
	case errors.Is(err, storage.ErrNotFound):
	default:
		slog.Warn("User record unreadable", "session_id", sessionID, "error", err)
	}

	table, err := repo.LoadSlots(ctx, sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			slog.Info("No slot table stored", "session_id", sessionID)
			return report, nil
		}
		slog.Warn("Slot table unreadable", "session_id", sessionID, "error", err)
		return report, nil
	}
	if verr := table.Validate(zones); verr != nil {
		slog.Warn("Stored slot table is invalid", "session_id", sessionID, "error", verr)
	}

	for _, zone := range model.Zones {
		if _, ok := zones[zone]; ok {
			report.Stats = append(report.Stats, parking.Stats(table, zone))
		}
	}
	if user != nil {
		report.Bookings = parking.UserBookings(table, user.VehicleNumber)
	}
	report.ETag = table.ETag()
	return report, nil
}

// ResetCmd clears a session.
type ResetCmd struct {
	Session string `arg:"" help:"Session id"`
}

func (r *ResetCmd) Run(ctx context.Context, e *env) error {
	store, err := storage.Open(ctx, e.cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	svc := service.NewParkingService(repository.NewParkingRepository(store), e.zones, nil, nil)
	if err := svc.Reset(ctx, r.Session); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "session %s reset\n", r.Session)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("parkctl"),
		kong.Description("Administration tool for parking sessions."),
	)

	e, err := loadEnv()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	kctx.BindTo(ctx, (*context.Context)(nil))
	if err := kctx.Run(e); err != nil {
		slog.Error("Command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
