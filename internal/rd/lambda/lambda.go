// Package lambda recovers the rate-distortion trade-off weight of a result
// file from the run directory that produced it.
//
// Experiment runs are laid out as <results root>/<run>_<code>/<subdir>/clic*.csv,
// where <code> is a two-digit configuration code naming one rung of the lambda
// ladder. The ladder is fixed: codes are assigned when the runs are launched
// and never derived from data.
package lambda

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Ladder maps configuration codes to lambda values. Closed set: an unknown
// code is always an error, never a default, since silently mismapping a run
// would corrupt the whole rate-distortion analysis.
var Ladder = map[string]float64{
	"01": 0.0001,
	"02": 0.0004,
	"03": 0.001,
	"04": 0.004,
	"05": 0.01,
	"06": 0.02,
}

// ConfigCodeFromPath extracts the configuration code for a result file.
// The code is the last underscore-separated token of the file's grandparent
// directory name. Directory names that do not follow the <run>_<code>
// convention are a hard error.
func ConfigCodeFromPath(path string) (string, error) {
	dir := filepath.Base(filepath.Dir(filepath.Dir(path)))
	if dir == "." || dir == string(filepath.Separator) {
		return "", fmt.Errorf("result file %s has no grandparent directory to derive a configuration code from", path)
	}

	tokens := strings.Split(dir, "_")
	code := tokens[len(tokens)-1]
	if code == "" {
		return "", fmt.Errorf("run directory %q ends in %q: expected a trailing _<code> token", dir, "_")
	}
	if len(code) != 2 {
		return "", fmt.Errorf("run directory %q: configuration code %q is not two characters", dir, code)
	}
	return code, nil
}

// ForPath returns the lambda for a result file's configuration code.
func ForPath(path string) (float64, error) {
	code, err := ConfigCodeFromPath(path)
	if err != nil {
		return 0, err
	}
	lmbda, ok := Ladder[code]
	if !ok {
		return 0, fmt.Errorf("unknown configuration code %q for result file %s", code, path)
	}
	return lmbda, nil
}
