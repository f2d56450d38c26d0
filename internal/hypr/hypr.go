// Package hypr speaks Hyprland's per-instance control sockets: the
// command socket (.socket.sock) accepts dispatch requests, the event
// socket (.socket2.sock) streams state changes as newline-delimited
// "name>>data" records.
package hypr

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Dir resolves the instance runtime directory,
// $XDG_RUNTIME_DIR/hypr/$HYPRLAND_INSTANCE_SIGNATURE.
func Dir() (string, error) {
	runtime := os.Getenv("XDG_RUNTIME_DIR")
	if runtime == "" {
		return "", errors.New("hypr: XDG_RUNTIME_DIR is not set")
	}
	sig := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if sig == "" {
		return "", errors.New("hypr: HYPRLAND_INSTANCE_SIGNATURE is not set, is Hyprland running?")
	}
	return filepath.Join(runtime, "hypr", sig), nil
}

// CommandSocket returns the path of the dispatch socket.
func CommandSocket() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".socket.sock"), nil
}

// EventSocket returns the path of the event stream socket.
func EventSocket() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".socket2.sock"), nil
}

// EventKind identifies the workspace transitions the bar tracks.
type EventKind int

const (
	WorkspaceActivated EventKind = iota
	WorkspaceCreated
	WorkspaceDestroyed
)

func (k EventKind) String() string {
	switch k {
	case WorkspaceActivated:
		return "activated"
	case WorkspaceCreated:
		return "created"
	case WorkspaceDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Event is one parsed record of the event stream.
type Event struct {
	Kind      EventKind
	Workspace int
}

// ParseEvent parses one line of the event stream. Records that are not
// workspace transitions, and workspaces with non-numeric names, report
// ok=false and are skipped by callers.
func ParseEvent(line string) (Event, bool) {
	name, data, found := strings.Cut(strings.TrimSpace(line), ">>")
	if !found {
		return Event{}, false
	}

	var kind EventKind
	switch name {
	case "workspace", "workspacev2":
		kind = WorkspaceActivated
	case "createworkspace", "createworkspacev2":
		kind = WorkspaceCreated
	case "destroyworkspace", "destroyworkspacev2":
		kind = WorkspaceDestroyed
	default:
		return Event{}, false
	}

	// The v2 records carry "ID,NAME"; v1 carries the name, which for
	// ordinary workspaces is the decimal ID.
	if id, _, hasComma := strings.Cut(data, ","); hasComma {
		data = id
	}
	id, err := strconv.Atoi(data)
	if err != nil {
		return Event{}, false
	}
	return Event{Kind: kind, Workspace: id}, true
}

const dispatchTimeout = time.Second

// DispatchTo sends a single command over the socket at path and checks
// the compositor's reply.
func DispatchTo(path, command string) error {
	conn, err := net.DialTimeout("unix", path, dispatchTimeout)
	if err != nil {
		return fmt.Errorf("hypr: dial command socket: %w", err)
	}
	defer conn.Close()

	_ = conn.SetDeadline(time.Now().Add(dispatchTimeout))
	if _, err := io.WriteString(conn, command); err != nil {
		return fmt.Errorf("hypr: send %q: %w", command, err)
	}
	reply, err := io.ReadAll(conn)
	if err != nil {
		return fmt.Errorf("hypr: read reply for %q: %w", command, err)
	}
	if r := strings.TrimSpace(string(reply)); r != "ok" {
		return fmt.Errorf("hypr: command %q rejected: %s", command, r)
	}
	return nil
}

// Dispatch sends a single command over the instance's command socket.
func Dispatch(command string) error {
	path, err := CommandSocket()
	if err != nil {
		return err
	}
	return DispatchTo(path, command)
}

// SwitchWorkspace asks the compositor to focus workspace id.
func SwitchWorkspace(id int) error {
	return Dispatch("dispatch workspace " + strconv.Itoa(id))
}
