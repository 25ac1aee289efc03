package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/alarmnote/internal/cli"
	"github.com/julianstephens/alarmnote/internal/cli/alarms"
	"github.com/julianstephens/alarmnote/internal/cli/backups"
	"github.com/julianstephens/alarmnote/internal/cli/notes"
	"github.com/julianstephens/alarmnote/internal/cli/settings"
	"github.com/julianstephens/alarmnote/internal/cli/system"
	"github.com/julianstephens/alarmnote/internal/config"
	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/errors"
	"github.com/julianstephens/alarmnote/internal/logger"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Config file path." type:"string" default:"${config_file}"`
	Database string `help:"SQLite file path or PostgreSQL connection string. Overrides the config file. PostgreSQL credentials must NOT be embedded; use the OS keyring, ${db_env} or .pgpass instead."`
	Debug    bool   `help:"Enable debug logging to stderr."`

	Init      system.InitCmd      `cmd:"" help:"Initialize alarmnote storage."`
	Migrate   system.MigrateCmd   `cmd:"" help:"Run database migrations."`
	Doctor    system.DoctorCmd    `cmd:"" help:"Run health checks and diagnostics."`
	Lifecycle system.LifecycleCmd `cmd:"" help:"Report an app state transition and reconcile alarms."`
	Reconcile system.ReconcileCmd `cmd:"" help:"Rebuild the notifications of every enabled alarm."`
	Deliver   system.DeliverCmd   `cmd:"" help:"Deliver notifications that are due."`
	Daemon    system.DaemonCmd    `cmd:"" help:"Deliver and reconcile on a schedule until interrupted."`
	DebugCmd  system.DebugCmd     `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`

	Note struct {
		Add    notes.NoteAddCmd    `cmd:"" help:"Add a new note."`
		List   notes.NoteListCmd   `cmd:"" help:"List all notes." default:"1"`
		Edit   notes.NoteEditCmd   `cmd:"" help:"Edit a note."`
		Delete notes.NoteDeleteCmd `cmd:"" help:"Delete a note and its alarms."`
	} `cmd:"" help:"Manage notes."`
	Alarm struct {
		Add     alarms.AlarmAddCmd     `cmd:"" help:"Add an alarm to a note."`
		List    alarms.AlarmListCmd    `cmd:"" help:"List alarms." default:"1"`
		Edit    alarms.AlarmEditCmd    `cmd:"" help:"Edit an alarm."`
		Enable  alarms.AlarmEnableCmd  `cmd:"" help:"Enable an alarm."`
		Disable alarms.AlarmDisableCmd `cmd:"" help:"Disable an alarm."`
		Delete  alarms.AlarmDeleteCmd  `cmd:"" help:"Delete an alarm."`
		Snooze  alarms.AlarmSnoozeCmd  `cmd:"" help:"Snooze an alarm."`
		Next    alarms.AlarmNextCmd    `cmd:"" help:"Show the next fire time of an alarm."`
	} `cmd:"" help:"Manage alarms."`
	Notifications struct {
		List system.NotificationsListCmd `cmd:"" help:"List registered notifications." default:"1"`
	} `cmd:"" help:"Inspect registered notifications."`
	Prefs struct {
		Show settings.PrefsShowCmd `cmd:"" help:"Show preferences." default:"1"`
		Set  settings.PrefsSetCmd  `cmd:"" help:"Update preferences."`
	} `cmd:"" help:"Manage preferences."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage SQLite database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability." default:"1"`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

// Commands that open or inspect the database themselves
var skipLoad = map[string]bool{
	"init":    true,
	"migrate": true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Notes with one-time, weekly and random alarms"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": constants.DefaultConfigFile,
			"db_env":      config.EnvDBConnection,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Database != "" {
		cfg.Database = CLI.Database
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: config.Dir(CLI.Config)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	store, err := cli.OpenStore(cfg.Database)
	if err != nil {
		errors.Fatal(err)
	}
	defer store.Close()

	command := strings.Fields(ctx.Command())[0]
	if !skipLoad[command] {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCtx := &cli.Context{
		Config: cfg,
		Store:  store,
		Ctx:    runCtx,
	}

	if err := ctx.Run(appCtx); err != nil {
		stop()
		store.Close()
		errors.Fatal(err)
	}
}
