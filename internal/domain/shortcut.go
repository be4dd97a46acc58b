package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Shortcut is a parsed global hotkey such as "Cmd+Shift+1".
// Construct only via ParseShortcut so the normalized form is consistent.
type Shortcut struct {
	modifiers  []string
	key        string
	normalized string
}

// Modifiers returns the canonical modifier names in canonical order.
func (s Shortcut) Modifiers() []string {
	out := make([]string, len(s.modifiers))
	copy(out, s.modifiers)
	return out
}

// Key returns the canonical key name.
func (s Shortcut) Key() string { return s.key }

// String returns the canonical form used as the registry key.
func (s Shortcut) String() string { return s.normalized }

var modifierAliases = map[string]string{
	"cmdorctrl":        "CmdOrCtrl",
	"commandorcontrol": "CmdOrCtrl",
	"cmd":              "Cmd",
	"command":          "Cmd",
	"super":            "Cmd",
	"meta":             "Cmd",
	"ctrl":             "Ctrl",
	"control":          "Ctrl",
	"alt":              "Alt",
	"option":           "Alt",
	"opt":              "Alt",
	"shift":            "Shift",
}

var modifierOrder = []string{"CmdOrCtrl", "Cmd", "Ctrl", "Alt", "Shift"}

var namedKeys = map[string]string{
	"space":     "Space",
	"enter":     "Enter",
	"return":    "Enter",
	"tab":       "Tab",
	"esc":       "Escape",
	"escape":    "Escape",
	"backspace": "Backspace",
	"delete":    "Delete",

	"up":         "Up",
	"arrowup":    "Up",
	"down":       "Down",
	"arrowdown":  "Down",
	"left":       "Left",
	"arrowleft":  "Left",
	"right":      "Right",
	"arrowright": "Right",

	"home":     "Home",
	"end":      "End",
	"pageup":   "PageUp",
	"pagedown": "PageDown",

	"minus":        "Minus",
	"equal":        "Equal",
	"comma":        "Comma",
	"period":       "Period",
	"slash":        "Slash",
	"backslash":    "Backslash",
	"semicolon":    "Semicolon",
	"quote":        "Quote",
	"backquote":    "Backquote",
	"bracketleft":  "BracketLeft",
	"bracketright": "BracketRight",
}

// ParseShortcut validates s and returns its canonical form. Modifier order and
// case in the input do not matter: "shift+cmd+a" and "Cmd+Shift+A" are equal.
func ParseShortcut(s string) (Shortcut, error) {
	invalid := func(reason string) error {
		return &Error{
			Kind:   KindHotkeyInvalid,
			Detail: fmt.Sprintf("%q: %s (examples: Cmd+Shift+1, Ctrl+Alt+D)", s, reason),
		}
	}

	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Shortcut{}, invalid("empty shortcut")
	}
	parts := strings.Split(trimmed, "+")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return Shortcut{}, invalid("empty segment")
		}
	}

	seen := make(map[string]bool, len(parts)-1)
	for _, p := range parts[:len(parts)-1] {
		mod, ok := modifierAliases[strings.ToLower(p)]
		if !ok {
			return Shortcut{}, invalid(fmt.Sprintf("unknown modifier %q", p))
		}
		if seen[mod] {
			return Shortcut{}, invalid(fmt.Sprintf("duplicate modifier %q", p))
		}
		seen[mod] = true
	}

	last := parts[len(parts)-1]
	if _, isMod := modifierAliases[strings.ToLower(last)]; isMod {
		return Shortcut{}, invalid("missing key after modifiers")
	}
	key, ok := canonicalKey(last)
	if !ok {
		return Shortcut{}, invalid(fmt.Sprintf("unknown key %q", last))
	}

	mods := make([]string, 0, len(seen))
	for _, m := range modifierOrder {
		if seen[m] {
			mods = append(mods, m)
		}
	}
	normalized := strings.Join(append(append([]string{}, mods...), key), "+")
	return Shortcut{modifiers: mods, key: key, normalized: normalized}, nil
}

// NormalizeShortcut returns the canonical form of s, or s unchanged if it does not parse.
func NormalizeShortcut(s string) string {
	sc, err := ParseShortcut(s)
	if err != nil {
		return s
	}
	return sc.String()
}

func canonicalKey(k string) (string, bool) {
	if len(k) == 1 {
		c := k[0]
		switch {
		case c >= 'a' && c <= 'z':
			return strings.ToUpper(k), true
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			return k, true
		}
		return "", false
	}
	lower := strings.ToLower(k)
	if name, ok := namedKeys[lower]; ok {
		return name, true
	}
	if strings.HasPrefix(lower, "digit") && len(lower) == 6 && lower[5] >= '0' && lower[5] <= '9' {
		return lower[5:], true
	}
	if strings.HasPrefix(lower, "key") && len(lower) == 4 && lower[3] >= 'a' && lower[3] <= 'z' {
		return strings.ToUpper(lower[3:]), true
	}
	if lower[0] == 'f' {
		n, err := strconv.Atoi(lower[1:])
		if err == nil && n >= 1 && n <= 24 {
			return "F" + strconv.Itoa(n), true
		}
	}
	return "", false
}
