package engine

import (
	"bytes"
	"fmt"
)

// iniSettings is the persisted state of one context in the core's ini
// dialect: `[Type][Name]` section headers followed by key=value entries.
// Only Window sections are understood; other section types are skipped.
type iniSettings struct {
	windows []*windowSettings
	byName  map[string]*windowSettings
}

type windowSettings struct {
	name         string
	posX, posY   int
	sizeW, sizeH int
	collapsed    bool
}

// load parses data and merges it into s. Windows are matched by name:
// existing ones are updated in place, new ones appended in first-seen order.
// Malformed lines and entries of unknown sections are ignored.
func (s *iniSettings) load(data []byte) {
	var cur *windowSettings
	for _, rawLine := range bytes.Split(data, []byte{'\n'}) {
		line := bytes.TrimSuffix(rawLine, []byte{'\r'})
		if len(line) == 0 || line[0] == ';' {
			continue
		}
		if line[0] == '[' && line[len(line)-1] == ']' {
			cur = s.openSection(line[1 : len(line)-1])
			continue
		}
		if cur == nil {
			continue
		}

		var x, y int
		text := string(line)
		if n, _ := fmt.Sscanf(text, "Pos=%d,%d", &x, &y); n == 2 {
			cur.posX, cur.posY = x, y
			continue
		}
		if n, _ := fmt.Sscanf(text, "Size=%d,%d", &x, &y); n == 2 {
			cur.sizeW, cur.sizeH = x, y
			continue
		}
		if n, _ := fmt.Sscanf(text, "Collapsed=%d", &x); n == 1 {
			cur.collapsed = x != 0
			continue
		}
	}
}

// openSection interprets a header's inner text ("Type][Name", or just
// "Name" in the legacy single-bracket form, which means a window). Returns
// nil for section types other than Window, so their entries are dropped.
func (s *iniSettings) openSection(inner []byte) *windowSettings {
	typ, name, ok := bytes.Cut(inner, []byte("]["))
	if !ok {
		return s.window(string(inner))
	}
	if !bytes.Equal(typ, []byte("Window")) {
		return nil
	}
	return s.window(string(name))
}

// window returns the settings entry for name, creating it if needed.
func (s *iniSettings) window(name string) *windowSettings {
	if w, ok := s.byName[name]; ok {
		return w
	}
	if s.byName == nil {
		s.byName = make(map[string]*windowSettings)
	}
	w := &windowSettings{name: name}
	s.windows = append(s.windows, w)
	s.byName[name] = w
	return w
}

// appendTo serializes s to dst in load's dialect: one Window section per
// entry, each followed by a blank line.
func (s *iniSettings) appendTo(dst []byte) []byte {
	for _, w := range s.windows {
		dst = append(dst, "[Window]["...)
		dst = append(dst, w.name...)
		dst = append(dst, "]\n"...)
		dst = fmt.Appendf(dst, "Pos=%d,%d\n", w.posX, w.posY)
		dst = fmt.Appendf(dst, "Size=%d,%d\n", w.sizeW, w.sizeH)
		collapsed := 0
		if w.collapsed {
			collapsed = 1
		}
		dst = fmt.Appendf(dst, "Collapsed=%d\n\n", collapsed)
	}
	return dst
}
