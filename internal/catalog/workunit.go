package catalog

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrConfigMissing is returned when a stage's input config file does not
// exist. This aborts the whole stage invocation before any work is attempted.
var ErrConfigMissing = eris.New("catalog: stage config file missing")

// WorkUnit names the tree node whose children a stage should populate, as a
// path of ancestor names. The zones stage uses {region}, the areas stage
// {region, zone}, the points stage {region, zone, area}.
type WorkUnit struct {
	Region string `json:"region"`
	Zone   string `json:"zone,omitempty"`
	Area   string `json:"area,omitempty"`
	Point  string `json:"point,omitempty"`
}

// Path returns the non-empty ancestor-name components, coarsest first.
func (u WorkUnit) Path() []string {
	var parts []string
	for _, p := range []string{u.Region, u.Zone, u.Area, u.Point} {
		if p == "" {
			break
		}
		parts = append(parts, p)
	}
	return parts
}

func (u WorkUnit) String() string {
	return strings.Join(u.Path(), " > ")
}

// LoadWorkUnits reads a stage input config: a JSON array of work units.
func LoadWorkUnits(path string) ([]WorkUnit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, eris.Wrapf(ErrConfigMissing, "%s", path)
		}
		return nil, eris.Wrapf(err, "catalog: read config %s", path)
	}

	var units []WorkUnit
	if err := json.Unmarshal(data, &units); err != nil {
		return nil, eris.Wrapf(err, "catalog: parse config %s", path)
	}
	return units, nil
}

// SaveWorkUnits writes a stage's produced list, consumed as the next stage's
// input config.
func SaveWorkUnits(path string, units []WorkUnit) error {
	if units == nil {
		units = []WorkUnit{}
	}
	data, err := json.MarshalIndent(units, "", "  ")
	if err != nil {
		return eris.Wrap(err, "catalog: marshal work units")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return eris.Wrapf(err, "catalog: write config %s", path)
	}
	return nil
}
