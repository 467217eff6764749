package util

import (
	"fmt"
	"os"
	"path"
	"strings"
)

// SaveReturns writes one return per line so runs can be compared outside
// the plots.
func SaveReturns(saveDir, name string, returns []float64) error {
	if _, err := os.Stat(saveDir); err != nil {
		if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
			return err
		}
	}
	lines := make([]string, len(returns))
	for i, r := range returns {
		lines[i] = fmt.Sprintf("%f", r)
	}
	savePath := path.Join(saveDir, name+"_returns.txt")
	return os.WriteFile(savePath, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}
