package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/gjson"
)

// Format names a scenario file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the codec from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Decode(data, f)
}

// Save validates s and writes it to path in the format implied by the extension.
func (s *Scenario) Save(path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err = s.Encode(&buf, f); err != nil {
		return err
	}

	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Decode parses data in format f and validates the result.
func Decode(data []byte, f Format) (*Scenario, error) {
	var (
		s   *Scenario
		err error
	)
	switch f {
	case FormatTOML:
		s, err = decodeTOML(data)
	case FormatJSON:
		s, err = DecodeJSON(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Encode validates s and writes it in format f.
// TOML writes missing edges as inf, JSON as null.
func (s *Scenario) Encode(w io.Writer, f Format) error {
	if err := s.Validate(); err != nil {
		return err
	}
	switch f {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(s)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(toJSONFile(s))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

func decodeTOML(data []byte) (*Scenario, error) {
	var s Scenario
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if extra := md.Undecoded(); len(extra) > 0 {
		return nil, fmt.Errorf("%w: unknown keys %v", ErrMalformed, extra)
	}
	if s.Difficulty == "" {
		s.Difficulty = Normal
	}
	if err = s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// DecodeJSON parses a JSON scenario:
//
//	{"name": "...", "difficulty": "hard", "seed": 7,
//	 "points": [{"x": 0, "y": 0, "elevation": 0.5}, ...],
//	 "removed": [{"from": 0, "to": 2}, ...],
//	 "matrix": [[null, 12], [7, null]]}
//
// null matrix entries are missing edges. A missing difficulty means normal.
func DecodeJSON(data []byte) (*Scenario, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level must be an object", ErrMalformed)
	}

	s := &Scenario{
		Name:       root.Get("name").String(),
		Difficulty: Difficulty(root.Get("difficulty").String()),
		Seed:       root.Get("seed").Int(),
	}

	var bad error
	root.Get("points").ForEach(func(k, v gjson.Result) bool {
		x, y, e := v.Get("x"), v.Get("y"), v.Get("elevation")
		if x.Type != gjson.Number || y.Type != gjson.Number || (e.Exists() && e.Type != gjson.Number) {
			bad = fmt.Errorf("%w: point %s needs numeric x and y", ErrMalformed, k.Raw)
			return false
		}
		s.Points = append(s.Points, Point{X: x.Float(), Y: y.Float(), Elevation: e.Float()})
		return true
	})
	root.Get("removed").ForEach(func(k, v gjson.Result) bool {
		from, to := v.Get("from"), v.Get("to")
		if from.Type != gjson.Number || to.Type != gjson.Number {
			bad = fmt.Errorf("%w: removed edge %s needs numeric from and to", ErrMalformed, k.Raw)
			return false
		}
		s.Removed = append(s.Removed, Edge{From: int(from.Int()), To: int(to.Int())})
		return true
	})
	root.Get("matrix").ForEach(func(i, row gjson.Result) bool {
		var cells []float64
		row.ForEach(func(j, c gjson.Result) bool {
			switch c.Type {
			case gjson.Null:
				cells = append(cells, math.Inf(1))
			case gjson.Number:
				cells = append(cells, c.Float())
			default:
				bad = fmt.Errorf("%w: matrix[%s][%s] is %s", ErrMalformed, i.Raw, j.Raw, c.Type)
				return false
			}
			return true
		})
		s.Matrix = append(s.Matrix, cells)
		return bad == nil
	})
	if bad != nil {
		return nil, bad
	}
	if s.Difficulty == "" {
		s.Difficulty = Normal
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// jsonFile mirrors Scenario for encoding; nil matrix cells encode as null.
type jsonFile struct {
	Name       string       `json:"name,omitempty"`
	Difficulty Difficulty   `json:"difficulty"`
	Seed       int64        `json:"seed"`
	Points     []jsonPoint  `json:"points,omitempty"`
	Removed    []jsonEdge   `json:"removed,omitempty"`
	Matrix     [][]*float64 `json:"matrix,omitempty"`
}

type jsonPoint struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Elevation float64 `json:"elevation"`
}

type jsonEdge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func toJSONFile(s *Scenario) jsonFile {
	out := jsonFile{Name: s.Name, Difficulty: s.Difficulty, Seed: s.Seed}
	for _, p := range s.Points {
		out.Points = append(out.Points, jsonPoint(p))
	}
	for _, e := range s.Removed {
		out.Removed = append(out.Removed, jsonEdge(e))
	}
	for _, row := range s.Matrix {
		cells := make([]*float64, len(row))
		for j := range row {
			if !math.IsInf(row[j], 1) {
				v := row[j]
				cells[j] = &v
			}
		}
		out.Matrix = append(out.Matrix, cells)
	}

	return out
}
