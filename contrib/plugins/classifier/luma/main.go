// luma - Lightness-based skin tone classifier (ChromaTone classifier plugin)
//
// Estimates a skin tone from the average CIE L* lightness of the centre of
// the photo. It needs no model files and is meant as a reference plugin and
// an offline fallback, not as an accurate classifier.
//
// Build:
//   go build -o chromatone-luma ./contrib/plugins/classifier/luma
//
// Usage:
//   chromatone predict --backend plugin --plugin ./chromatone-luma selfie.jpg
//
// License: MIT

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jmylchreest/chromatone/pkg/plugin"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--plugin-info" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode((&Classifier{}).GetMetadata()); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding plugin info: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	plugin.Serve(&Classifier{})
}
