package setup

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// setupFile is the on-disk TOML schema: one [[monitor]] table per monitor.
type setupFile struct {
	Monitor []monitorDecl `toml:"monitor"`
}

type monitorDecl struct {
	ID     string `toml:"id"`
	X      int    `toml:"x"`
	Y      int    `toml:"y"`
	Rotate int    `toml:"rotate"`
}

// LoadDir reads every .toml file in dir and returns the declared setups in
// sorted filename order. The directory is created if it does not exist, in
// which case the returned library is empty. Any malformed file is an error;
// setups are never partially loaded.
func LoadDir(dir string) ([]Setup, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create setup dir %s: %w", dir, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list setup dir %s: %w", dir, err)
	}

	var setups []Setup
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		s, err := loadFile(path)
		if err != nil {
			return nil, fmt.Errorf("setup %s: %w", path, err)
		}
		setups = append(setups, *s)
	}

	return setups, nil
}

func loadFile(path string) (*Setup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f setupFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Monitor) == 0 {
		return nil, fmt.Errorf("no monitors declared")
	}

	s := &Setup{
		Name:     strings.TrimSuffix(filepath.Base(path), ".toml"),
		Monitors: make([]MonitorConfig, 0, len(f.Monitor)),
	}
	for i, decl := range f.Monitor {
		mc, err := decl.parse()
		if err != nil {
			return nil, fmt.Errorf("monitor %d: %w", i+1, err)
		}
		s.Monitors = append(s.Monitors, *mc)
	}
	return s, nil
}

func (d monitorDecl) parse() (*MonitorConfig, error) {
	idStr := strings.TrimPrefix(strings.ToLower(d.ID), "0x")
	id, err := strconv.ParseUint(idStr, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid monitor id %q: %w", d.ID, err)
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid monitor id %q: zero is reserved", d.ID)
	}

	rot, err := RotationFromDegrees(d.Rotate)
	if err != nil {
		return nil, err
	}

	if d.X < math.MinInt16 || d.X > math.MaxInt16 || d.Y < math.MinInt16 || d.Y > math.MaxInt16 {
		return nil, fmt.Errorf("position %dx%d out of range", d.X, d.Y)
	}

	return &MonitorConfig{
		ID:     uint32(id),
		X:      int16(d.X),
		Y:      int16(d.Y),
		Rotate: rot,
	}, nil
}
