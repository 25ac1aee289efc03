// Package notifier shows notifications through the alarmnote tray app, which
// listens on a local webhook advertised in its lockfile.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/logger"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// ErrTrayNotRunning is returned when no live tray process owns the lockfile
var ErrTrayNotRunning = errors.New(constants.TrayProcessName + " is not running")

// WebhookPayload is the body posted to the tray app
type WebhookPayload struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// endpoint is the tray's webhook address and shared secret
type endpoint struct {
	port   string
	secret string
}

// Notifier delivers notifications to the tray app
type Notifier struct {
	client     *http.Client
	maxRetries int
	retryDelay time.Duration
}

// New returns a Notifier using the default retry policy
func New() *Notifier {
	return &Notifier{
		client:     &http.Client{Timeout: 5 * time.Second},
		maxRetries: constants.NotifyMaxRetries,
		retryDelay: constants.NotifyRetryDelay,
	}
}

// Send shows one notification. Connection failures and 5xx responses are
// retried; other responses fail immediately.
func (n *Notifier) Send(ctx context.Context, title, body string) error {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}
	ep, err := findAndValidateTrayProcess(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	payload := WebhookPayload{
		Title:      title,
		Body:       body,
		Text:       title + ": " + body,
		DurationMs: constants.NotificationDurationMs,
	}
	return n.deliver(ctx, ep, payload)
}

// CheckTray reports whether a live tray process is advertising its webhook
func CheckTray() error {
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		return err
	}
	_, err = findAndValidateTrayProcess(filepath.Join(dir, constants.NotifierLockfileName))
	return err
}

// deliver posts the payload, retrying at a fixed interval while post reports
// the failure as retryable.
func (n *Notifier) deliver(ctx context.Context, ep endpoint, payload WebhookPayload) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(n.retryDelay), uint64(n.maxRetries)),
		ctx,
	)
	send := func() error {
		retry, err := n.post(ctx, ep, payload)
		if err != nil && !retry {
			return backoff.Permanent(err)
		}
		return err
	}
	return backoff.RetryNotify(send, policy, func(err error, wait time.Duration) {
		logger.Debug("Retrying notification", "wait", wait, "error", err)
	})
}

// post sends the payload once and reports whether a failure is worth retrying.
func (n *Notifier) post(ctx context.Context, ep endpoint, payload WebhookPayload) (bool, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://127.0.0.1:"+ep.port, bytes.NewReader(data))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(constants.TraySecretHeader, ep.secret)

	res, err := n.client.Do(req)
	if err != nil {
		return ctx.Err() == nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return false, nil
	}
	msg, _ := io.ReadAll(res.Body)
	return res.StatusCode >= 500, fmt.Errorf("notification failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
}

// GetTrayAppConfigDir returns the directory holding the tray lockfile. The
// tray's settings.json may point it elsewhere through lockfile_dir.
func GetTrayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(trayConfigDir, "settings.json"))
	if err != nil {
		return trayConfigDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err != nil {
		logger.Warn("Ignoring unreadable tray settings", "error", err)
		return trayConfigDir, nil
	}
	if dir := store.Settings.LockfileDir; dir != nil && *dir != "" {
		return *dir, nil
	}
	return trayConfigDir, nil
}

// findAndValidateTrayProcess reads a "port|pid|secret" lockfile and checks
// that pid belongs to a running tray process.
func findAndValidateTrayProcess(lockfilePath string) (endpoint, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return endpoint{}, ErrTrayNotRunning
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return endpoint{}, errors.New("lockfile is malformed")
	}

	port := strings.TrimSpace(parts[0])
	if port == "" {
		return endpoint{}, errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return endpoint{}, errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return endpoint{}, fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return endpoint{}, errors.New("invalid process ID in lockfile")
	}
	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return endpoint{}, errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return endpoint{}, ErrTrayNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayProcessName) {
		return endpoint{}, fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayProcessName, process.Executable())
	}

	return endpoint{port: port, secret: secret}, nil
}
