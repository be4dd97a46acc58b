package displayplacer

import (
	"strconv"
	"strings"

	"dpui/internal/domain"
	"dpui/internal/logging"
)

// reportMarker introduces the real apply command in `displayplacer list`
// output. Everything above it is per-screen detail and usage examples.
const reportMarker = "Execute the command below"

const toolName = "displayplacer"

var parserLog = logging.For("parser")

// ParseReport extracts displays from `displayplacer list` output.
//
// Only tool invocations after the marker line that carry both an id: and an
// origin: token are considered. Each quoted segment of such a line describes
// one display. Individual fields are parsed leniently; a report without any
// display is a KindParse failure.
func ParseReport(report string) ([]domain.Display, error) {
	var displays []domain.Display
	afterMarker := false

	for _, line := range strings.Split(report, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.Contains(line, reportMarker) {
			afterMarker = true
			continue
		}
		if !afterMarker || !isApplyLine(line) {
			continue
		}
		for _, segment := range strings.Split(line, `"`) {
			if !strings.Contains(segment, "id:") {
				continue
			}
			d, ok := ParseDisplay(segment)
			if !ok {
				parserLog.Debugf("skipping segment without id: %q", segment)
				continue
			}
			displays = append(displays, d)
		}
	}

	if len(displays) == 0 {
		return nil, &domain.Error{Kind: domain.KindParse, Detail: "no displays found in displayplacer output"}
	}
	return displays, nil
}

// ApplyCommand returns the last apply invocation after the marker line, i.e.
// the command that restores the arrangement the report describes.
func ApplyCommand(report string) (string, bool) {
	var cmd string
	afterMarker := false
	for _, line := range strings.Split(report, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.Contains(line, reportMarker) {
			afterMarker = true
			continue
		}
		if afterMarker && isApplyLine(line) {
			cmd = strings.TrimSpace(line)
		}
	}
	return cmd, cmd != ""
}

func isApplyLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), toolName) &&
		strings.Contains(line, "id:") &&
		strings.Contains(line, "origin:")
}

// ParseDisplay parses one "id:... res:... origin:(x,y) degree:N" clause.
// ok is false when the clause has no id token. Token order does not matter.
func ParseDisplay(segment string) (domain.Display, bool) {
	d := domain.Display{
		Enabled: !strings.Contains(segment, "disabled"),
	}

	for _, token := range strings.Fields(segment) {
		key, value, found := strings.Cut(token, ":")
		if !found {
			continue
		}
		switch key {
		case "id":
			d.ID = value
		case "res":
			d.Resolution = domain.Resolution(value)
		case "origin":
			origin, ok := ParseCoordinates(value)
			if !ok {
				parserLog.Warnf("malformed origin %q, using (0,0)", value)
				origin = domain.Point{}
			}
			d.Origin = origin
		case "degree":
			deg, err := strconv.Atoi(value)
			if err != nil {
				parserLog.Warnf("malformed degree %q, using 0", value)
				deg = 0
			}
			d.Rotation = deg
		}
	}

	if d.ID == "" {
		return domain.Display{}, false
	}
	if !d.ValidRotation() {
		parserLog.Warnf("display %s reports rotation %d outside 0/90/180/270", d.ID, d.Rotation)
	}
	return d, true
}

// ParseCoordinates parses "(x,y)" with signed integers. One leading "(" and one
// trailing ")" are optional. Any other shape returns ok=false.
func ParseCoordinates(s string) (domain.Point, bool) {
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return domain.Point{}, false
	}
	x, err := strconv.Atoi(parts[0])
	if err != nil {
		return domain.Point{}, false
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return domain.Point{}, false
	}
	return domain.Point{X: x, Y: y}, true
}
