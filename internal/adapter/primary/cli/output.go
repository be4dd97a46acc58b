package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"golang.org/x/term"

	"dpui/internal/domain"
)

// wantJSON is true when forced or when w is not an interactive terminal.
func wantJSON(w io.Writer, force bool) bool {
	if force {
		return true
	}
	f, ok := w.(*os.File)
	return !ok || !term.IsTerminal(int(f.Fd()))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printDisplays(w io.Writer, cfg domain.DisplayConfiguration, asJSON bool) error {
	if wantJSON(w, asJSON) {
		return printJSON(w, cfg)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tRESOLUTION\tORIGIN\tROTATION\tENABLED")
	for _, d := range cfg.Displays {
		rot := fmt.Sprint(d.Rotation)
		if !d.ValidRotation() {
			rot += " (?)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", d.ID, d.Resolution, d.Origin, rot, d.Enabled)
	}
	return tw.Flush()
}

type presetJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Config    string    `json:"config"`
	Hotkey    string    `json:"hotkey,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toPresetJSON(p domain.Preset) presetJSON {
	return presetJSON{ID: p.ID, Name: p.Name, Config: p.Config, Hotkey: p.Hotkey, CreatedAt: p.CreatedAt}
}

func printPreset(w io.Writer, p domain.Preset) error {
	if wantJSON(w, false) {
		return printJSON(w, toPresetJSON(p))
	}
	hk := p.Hotkey
	if hk == "" {
		hk = "-"
	}
	_, err := fmt.Fprintf(w, "%s  %s  [%s]\n", p.ID, p.Name, hk)
	return err
}

func printPresets(w io.Writer, presets []domain.Preset, asJSON bool) error {
	if wantJSON(w, asJSON) {
		out := make([]presetJSON, 0, len(presets))
		for _, p := range presets {
			out = append(out, toPresetJSON(p))
		}
		return printJSON(w, out)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tHOTKEY\tCREATED")
	for _, p := range presets {
		hk := p.Hotkey
		if hk == "" {
			hk = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, hk, p.CreatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

// warnOnly prints a hotkey reconciliation problem without failing the
// command; the store mutation itself succeeded.
func warnOnly(w io.Writer, err error) error {
	if err == nil {
		return nil
	}
	if domain.IsHotkeyWarning(err) {
		fmt.Fprintf(w, "warning: %v\n", err)
		return nil
	}
	return err
}
