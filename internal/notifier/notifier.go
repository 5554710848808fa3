package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/wakelit/internal/constants"
)

// Permission is the tri-state answer to "may we show notifications?".
type Permission string

const (
	PermissionGranted   Permission = "granted"
	PermissionDenied    Permission = "denied"
	PermissionUndecided Permission = "default"
)

// Sink displays a message to the user, best-effort and fire-and-forget.
// Delivery is never confirmed.
type Sink interface {
	// RequestPermission resolves whether notifications may be shown.
	// It is safe to call repeatedly.
	RequestPermission() Permission
	Notify(message string) error
}

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// Desktop delivers notifications through the local tray companion app's
// webhook. The tray app writes a lockfile ("port|pid|secret") on startup;
// a valid lockfile backed by a live tray process counts as permission granted.
type Desktop struct{}

type webhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func NewDesktop() *Desktop {
	return &Desktop{}
}

// RequestPermission maps tray availability onto the permission model:
// no config dir or lockfile yet means undecided (the "prompt" is starting the
// tray app), a stale or invalid lockfile means denied, a live tray means granted.
func (d *Desktop) RequestPermission() Permission {
	configDir, err := TrayConfigDir()
	if err != nil {
		return PermissionUndecided
	}

	lockfile := filepath.Join(configDir, constants.NotifierLockfileName)
	if _, err := os.Stat(lockfile); os.IsNotExist(err) {
		return PermissionUndecided
	}

	if _, _, err := readTrayLockfile(lockfile); err != nil {
		return PermissionDenied
	}
	return PermissionGranted
}

func (d *Desktop) Notify(text string) error {
	configDir, err := TrayConfigDir()
	if err != nil {
		return err
	}

	port, secret, err := readTrayLockfile(filepath.Join(configDir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	payload := webhookPayload{
		Text:       text,
		DurationMs: constants.NotificationDurationMs,
	}
	return postNotification(port, secret, payload)
}

// TrayConfigDir returns the configuration directory used by the tray application.
func TrayConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	// Check for settings.json to see if a custom lockfile dir is set
	settingsPath := filepath.Join(trayConfigDir, "settings.json")
	if _, err := os.Stat(settingsPath); err == nil {
		data, err := os.ReadFile(settingsPath)
		if err == nil {
			var store struct {
				Settings struct {
					LockfileDir *string `json:"lockfile_dir"`
				} `json:"settings"`
			}
			if err := json.Unmarshal(data, &store); err == nil {
				if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
					return *store.Settings.LockfileDir, nil
				}
			}
		}
	}

	return trayConfigDir, nil
}

func readTrayLockfile(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", errors.New("wakelit-tray is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := parts[0]
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", errors.New("wakelit-tray process not running")
	}

	if !strings.HasPrefix(process.Executable(), "wakelit-tray") {
		return "", "", fmt.Errorf("process with PID %d is not wakelit-tray (is %s)", pid, process.Executable())
	}

	return port, secret, nil
}

func postNotification(port string, secret string, payload webhookPayload) error {
	url := fmt.Sprintf("http://127.0.0.1:%s", port)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Wakelit-Secret", secret)

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(body))
}
