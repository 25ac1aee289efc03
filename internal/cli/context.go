package cli

import (
	"context"
	"sync"
	"time"

	"github.com/julianstephens/alarmnote/internal/alarms"
	"github.com/julianstephens/alarmnote/internal/backup"
	"github.com/julianstephens/alarmnote/internal/config"
	"github.com/julianstephens/alarmnote/internal/logger"
	"github.com/julianstephens/alarmnote/internal/notification"
	"github.com/julianstephens/alarmnote/internal/notifier"
	"github.com/julianstephens/alarmnote/internal/reconcile"
	"github.com/julianstephens/alarmnote/internal/storage"
	"github.com/julianstephens/alarmnote/internal/storage/sqlite"
)

// Context is handed to every command's Run method.
type Context struct {
	Config config.Config
	Store  storage.Provider
	// Sender delivers due notifications. Nil means the tray notifier.
	Sender notification.Sender
	// Clock overrides time.Now, for tests.
	Clock func() time.Time
	// Ctx is cancelled when the process is interrupted. Nil means Background.
	Ctx context.Context

	once       sync.Once
	controller *reconcile.Controller
}

// Context returns the context commands pass to blocking operations
func (c *Context) Context() context.Context {
	if c.Ctx != nil {
		return c.Ctx
	}
	return context.Background()
}

// Now returns the current time from the context clock
func (c *Context) Now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}

// Registry returns the notification registry backed by the store
func (c *Context) Registry() *notification.Registry {
	return notification.NewRegistry(c.Store)
}

// Materializer returns a materializer using the configured default title
func (c *Context) Materializer() *notification.Materializer {
	return notification.NewMaterializer(c.Config.DefaultTitle)
}

// Alarms returns the alarm service over the store and registry
func (c *Context) Alarms() *alarms.Service {
	return alarms.NewService(c.Store, c.Registry(), c.Materializer(), nil, c.Now)
}

// Controller returns the process-wide reconciliation controller. Every caller
// shares one instance so passes started by the daemon and by commands are
// serialized.
func (c *Context) Controller() *reconcile.Controller {
	c.once.Do(func() {
		c.controller = reconcile.New(c.Store, c.Registry(),
			reconcile.WithClock(c.Now),
			reconcile.WithBudget(c.Config.BackgroundBudget.Duration),
			reconcile.WithMaterializer(c.Materializer()),
		)
	})
	return c.controller
}

// Dispatcher returns a dispatcher delivering through the context sender
func (c *Context) Dispatcher(dryRun bool) *notification.Dispatcher {
	sender := c.Sender
	if sender == nil {
		sender = notifier.New()
	}
	return notification.NewDispatcher(c.Store, sender, dryRun)
}

// PerformAutomaticBackup snapshots a SQLite database before a destructive
// command. Failures are logged and never interrupt the command.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	if _, err := backup.NewManager(c.Store.GetConfigPath()).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
