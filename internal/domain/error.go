package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is the closed set of failures a boundary operation can report.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindToolUnavailable
	KindToolFailed
	KindToolTimeout
	KindParse
	KindStoreRead
	KindStoreWrite
	KindPresetNotFound
	KindHotkeyInvalid
	KindHotkeyInUse
)

func (k ErrorKind) String() string {
	switch k {
	case KindToolUnavailable:
		return "tool-unavailable"
	case KindToolFailed:
		return "tool-failed"
	case KindToolTimeout:
		return "tool-timeout"
	case KindParse:
		return "parse-failure"
	case KindStoreRead:
		return "store-read"
	case KindStoreWrite:
		return "store-write"
	case KindPresetNotFound:
		return "preset-not-found"
	case KindHotkeyInvalid:
		return "hotkey-invalid"
	case KindHotkeyInUse:
		return "hotkey-in-use"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned across every port and use case.
type Error struct {
	Kind     ErrorKind
	Op       string
	Detail   string
	ExitCode int
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	switch e.Kind {
	case KindToolUnavailable:
		b.WriteString("display tool unavailable")
	case KindToolFailed:
		fmt.Fprintf(&b, "display tool failed (exit %d)", e.ExitCode)
	case KindToolTimeout:
		b.WriteString("display tool timed out")
	case KindParse:
		b.WriteString("cannot parse display report")
	case KindStoreRead:
		b.WriteString("cannot read preset store")
	case KindStoreWrite:
		b.WriteString("cannot write preset store")
	case KindPresetNotFound:
		b.WriteString("preset not found")
	case KindHotkeyInvalid:
		b.WriteString("invalid shortcut format")
	case KindHotkeyInUse:
		b.WriteString("shortcut already in use")
	default:
		b.WriteString("error")
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches kind-only sentinels such as ErrPresetNotFound.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Detail == "" && t.Err == nil
}

var (
	ErrToolUnavailable = &Error{Kind: KindToolUnavailable}
	ErrToolFailed      = &Error{Kind: KindToolFailed}
	ErrToolTimeout     = &Error{Kind: KindToolTimeout}
	ErrParse           = &Error{Kind: KindParse}
	ErrStoreRead       = &Error{Kind: KindStoreRead}
	ErrStoreWrite      = &Error{Kind: KindStoreWrite}
	ErrPresetNotFound  = &Error{Kind: KindPresetNotFound}
	ErrHotkeyInvalid   = &Error{Kind: KindHotkeyInvalid}
	ErrHotkeyInUse     = &Error{Kind: KindHotkeyInUse}
)

// KindOf extracts the ErrorKind from err, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsHotkeyWarning reports whether err only concerns hotkey bindings. Store
// mutations return such errors after the change was saved.
func IsHotkeyWarning(err error) bool {
	switch KindOf(err) {
	case KindHotkeyInUse, KindHotkeyInvalid:
		return true
	default:
		return false
	}
}

// NotFound builds a PresetNotFound error for id.
func NotFound(op, id string) error {
	return &Error{Kind: KindPresetNotFound, Op: op, Detail: id}
}
