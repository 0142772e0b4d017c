package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

type SignalDef struct {
	Name      string  `json:"name"`
	StartBit  int     `json:"start_bit"`
	BitLength int     `json:"bit_length"`
	Signed    bool    `json:"signed"`
	Factor    float64 `json:"factor"`
	Offset    float64 `json:"offset"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Default   float64 `json:"default"`
	Unit      string  `json:"unit,omitempty"`
	Comment   string  `json:"comment,omitempty"`
}

type FrameDef struct {
	ID        uint32      `json:"id"`
	Name      string      `json:"name"`
	DLC       int         `json:"dlc"`
	Direction string      `json:"direction,omitempty"`
	CycleMS   int         `json:"cycle_ms,omitempty"`
	Signals   []SignalDef `json:"signals"`
}

type CANMap struct {
	ByID   map[uint32]*FrameDef
	ByName map[string]*FrameDef
}

// LoadCANMap reads frame definitions from a JSON file. Signals are
// little-endian; start_bit counts from bit 0 of the first payload byte.
func LoadCANMap(path string) (*CANMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var frames []FrameDef
	if err := json.Unmarshal(data, &frames); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	m := &CANMap{
		ByID:   map[uint32]*FrameDef{},
		ByName: map[string]*FrameDef{},
	}

	for i := range frames {
		fd := &frames[i]
		if fd.DLC <= 0 || fd.DLC > 8 {
			return nil, fmt.Errorf("frame %s (0x%X): invalid dlc %d", fd.Name, fd.ID, fd.DLC)
		}
		for _, s := range fd.Signals {
			if s.BitLength <= 0 || s.BitLength > 64 {
				return nil, fmt.Errorf("frame %s signal %s: invalid bit_length %d", fd.Name, s.Name, s.BitLength)
			}
			if s.StartBit < 0 || s.StartBit+s.BitLength > fd.DLC*8 {
				return nil, fmt.Errorf("frame %s signal %s: bits [%d, %d) exceed dlc %d", fd.Name, s.Name, s.StartBit, s.StartBit+s.BitLength, fd.DLC)
			}
		}
		if _, dup := m.ByID[fd.ID]; dup {
			return nil, fmt.Errorf("duplicate frame id 0x%X", fd.ID)
		}
		if _, dup := m.ByName[fd.Name]; dup {
			return nil, fmt.Errorf("duplicate frame name %q", fd.Name)
		}
		sort.Slice(fd.Signals, func(a, b int) bool { return fd.Signals[a].StartBit < fd.Signals[b].StartBit })
		m.ByID[fd.ID] = fd
		m.ByName[fd.Name] = fd
	}

	return m, nil
}

func (m *CANMap) FrameNames() []string {
	out := make([]string, 0, len(m.ByName))
	for k := range m.ByName {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (m *CANMap) FrameByName(name string) (*FrameDef, error) {
	fd, ok := m.ByName[name]
	if !ok {
		return nil, fmt.Errorf("unknown frame %q (available: %v)", name, m.FrameNames())
	}
	return fd, nil
}

func (m *CANMap) FrameByID(id uint32) (*FrameDef, error) {
	fd, ok := m.ByID[id]
	if !ok {
		return nil, fmt.Errorf("unknown frame id 0x%X", id)
	}
	return fd, nil
}
