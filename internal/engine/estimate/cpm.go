package estimate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_ytearn/internal/engine"
)

// CPM is the assumed revenue per 1000 monetized views. Low == High for a single value.
type CPM struct {
	Low    float64 `json:"low"`
	High   float64 `json:"high"`
	Source string  `json:"source"` // "custom" or "category"
	Note   string  `json:"note"`
}

// Single reports whether the assumption is one value rather than a range.
func (c CPM) Single() bool { return c.Low == c.High }

// Validate checks 0 < Low <= High with both finite.
func (c CPM) Validate() error {
	if !finitePositive(c.Low) || !finitePositive(c.High) {
		return engine.Fail(engine.KindInvalidCPM, "cpm", fmt.Errorf("cpm must be a positive number, got %v-%v", c.Low, c.High))
	}
	if c.Low > c.High {
		return engine.Fail(engine.KindInvalidCPM, "cpm", fmt.Errorf("cpm low %v exceeds high %v", c.Low, c.High))
	}
	return nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Category CPM ranges in USD. The upstream data carries no reliable category signal,
// so the category always comes from the caller.
var categoryCPM = []engine.CPMCategory{
	{Name: "Gaming", Low: 1.0, High: 3.0},
	{Name: "Education", Low: 2.0, High: 8.0},
	{Name: "Finance", Low: 5.0, High: 15.0},
	{Name: "Entertainment", Low: 1.0, High: 4.0},
	{Name: "Tech", Low: 4.0, High: 10.0},
}

// DefaultCategory is used when the category is empty or unknown.
var DefaultCategory = engine.CPMCategory{Name: "Default", Low: 1.5, High: 5.0}

// Categories returns a copy of the known category table.
func Categories() []engine.CPMCategory {
	out := make([]engine.CPMCategory, len(categoryCPM))
	copy(out, categoryCPM)
	return out
}

// ForCategory looks up a category case-insensitively, falling back to DefaultCategory.
func ForCategory(name string) CPM {
	name = strings.TrimSpace(name)
	for _, c := range categoryCPM {
		if strings.EqualFold(c.Name, name) {
			return CPM{Low: c.Low, High: c.High, Source: "category", Note: c.Name + " CPM used"}
		}
	}
	return CPM{Low: DefaultCategory.Low, High: DefaultCategory.High, Source: "category", Note: "Default CPM used"}
}

// ParseCPM parses a caller-supplied override such as "4" or "$4.50".
// ok is false when raw is blank (no override).
func ParseCPM(raw string) (cpm CPM, ok bool, err error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return CPM{}, false, nil
	}
	v, perr := strconv.ParseFloat(s, 64)
	if perr != nil {
		return CPM{}, true, engine.Fail(engine.KindInvalidCPM, "cpm", fmt.Errorf("not a number: %q", raw))
	}
	cpm = CPM{Low: v, High: v, Source: "custom", Note: "Custom CPM used"}
	if err := cpm.Validate(); err != nil {
		return CPM{}, true, err
	}
	return cpm, true, nil
}

// Choose returns the override when one is given, otherwise the category range.
func Choose(override, category string) (CPM, error) {
	cpm, ok, err := ParseCPM(override)
	if err != nil {
		return CPM{}, err
	}
	if ok {
		return cpm, nil
	}
	return ForCategory(category), nil
}
