package recipe

import (
	"fmt"
	"strconv"
	"strings"
)

// DatapackVersion is the one version label that is not numeric. It sorts
// after every numbered version.
const DatapackVersion = "1.17 Datapack"

const datapackVersionValue = 99

// ParseVersion maps a game version label to a comparable number. The fixed
// "1." prefix is dropped and the rest read as a real number, so "1.20" is 20
// and "1.20.5" is 20.5.
func ParseVersion(s string) (float64, error) {
	if s == DatapackVersion {
		return datapackVersionValue, nil
	}
	if len(s) <= 2 {
		return 0, fmt.Errorf("version %q: too short", s)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s[2:]), 64)
	if err != nil {
		return 0, fmt.Errorf("version %q: %w", s, err)
	}
	return n, nil
}
