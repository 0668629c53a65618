package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config is the fully loaded, validated configuration for one EVO process
// (§4.8): system settings, the global machine table, I/O role bindings, and
// every axis, ordered by ID.
type Config struct {
	System  SystemConfig
	Machine MachineConfig
	IO      IOConfig
	Axes    []AxisConfig
}

var axisFileRe = regexp.MustCompile(`^axis_(\d+)_.+\.toml$`)

// Load reads and validates every config file in dir (§4.8): config.toml,
// machine.toml, io.toml, and every axis_NN_name.toml. Unknown TOML fields
// are rejected, axis filename indices must match axis.id, duplicate axis
// IDs are rejected, and a directory with zero axis files is rejected.
func Load(dir string) (*Config, error) {
	var cfg Config

	if err := decodeFileStrict(filepath.Join(dir, "config.toml"), &systemFile{}, func(v interface{}) {
		cfg.System = v.(*systemFile).System
	}); err != nil {
		return nil, err
	}
	if err := validateSystem(cfg.System); err != nil {
		return nil, err
	}

	mf := &machineFile{}
	if err := decodeFileStrict(filepath.Join(dir, "machine.toml"), mf, nil); err != nil {
		return nil, err
	}
	if len(mf.Axes) > 0 {
		return nil, ErrLegacyAxesArray
	}
	cfg.Machine = mf.Machine
	if err := validateMachine(cfg.Machine); err != nil {
		return nil, err
	}

	iof := &IOConfig{}
	if err := decodeFileStrict(filepath.Join(dir, "io.toml"), iof, nil); err != nil {
		return nil, err
	}
	cfg.IO = *iof

	axes, err := loadAxes(dir)
	if err != nil {
		return nil, err
	}
	cfg.Axes = axes

	return &cfg, nil
}

// decodeFileStrict decodes path into dst with unknown fields rejected. If
// assign is non-nil it is called with dst after a successful decode, so
// callers can pull a field out of an anonymous wrapper struct.
func decodeFileStrict(path string, dst interface{}, assign func(interface{})) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return err
	}
	defer f.Close()

	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if _, err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrParseError, path, err)
	}
	if assign != nil {
		assign(dst)
	}
	return nil
}

func loadAxes(dir string) ([]AxisConfig, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint8]AxisConfig)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := axisFileRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		fileIndex, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrParseError, e.Name())
		}

		af := &axisFile{}
		if err := decodeFileStrict(filepath.Join(dir, e.Name()), af, nil); err != nil {
			return nil, err
		}
		axis := af.Axis

		if int(axis.ID) != fileIndex {
			return nil, fmt.Errorf("%w: %s declares axis.id=%d", ErrAxisIDMismatch, e.Name(), axis.ID)
		}
		if _, dup := byID[axis.ID]; dup {
			return nil, fmt.Errorf("%w: axis id %d", ErrDuplicateAxisID, axis.ID)
		}
		if err := validateAxis(axis); err != nil {
			return nil, err
		}
		byID[axis.ID] = axis
	}

	if len(byID) == 0 {
		return nil, ErrNoAxesDefined
	}

	ids := make([]uint8, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	axes := make([]AxisConfig, 0, len(ids))
	for _, id := range ids {
		axes = append(axes, byID[id])
	}
	return axes, nil
}
