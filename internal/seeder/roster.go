package seeder

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrRoster reports an unusable roster.
var ErrRoster = errors.New("invalid roster")

// Roster lists who plays and which notes reviewers may leave.
type Roster struct {
	Players []string `yaml:"players"`
	Notes   []string `yaml:"notes"`
}

// DefaultRoster is used when no roster file is given.
func DefaultRoster() Roster {
	return Roster{
		Players: []string{"Александър", "Борис", "Васил", "Георги", "Димитър", "Иван", "Калин", "Николай", "Петър", "Стефан"},
		Notes:   []string{"", "не", "Не", "Добра защита", "Трябва повече пас", "no"},
	}
}

// LoadRoster reads a YAML roster from path.
func LoadRoster(path string) (Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Roster{}, fmt.Errorf("read roster %s: %w", path, err)
	}
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Roster{}, fmt.Errorf("%w: %s: %v", ErrRoster, path, err)
	}
	return r, r.validate()
}

func (r Roster) validate() error {
	seen := make(map[string]struct{}, len(r.Players))
	for _, p := range r.Players {
		p = strings.TrimSpace(p)
		if p == "" {
			return fmt.Errorf("%w: empty player name", ErrRoster)
		}
		if _, ok := seen[p]; ok {
			return fmt.Errorf("%w: duplicate player %q", ErrRoster, p)
		}
		seen[p] = struct{}{}
	}
	if len(seen) < 2 {
		return fmt.Errorf("%w: need at least two players", ErrRoster)
	}
	return nil
}
