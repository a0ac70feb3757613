// ChromaTone - skin tone prediction and clothing colour palettes
//
// ChromaTone sends a photo to a skin tone classifier and suggests clothing
// colours for the detected tone.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import "github.com/jmylchreest/chromatone/internal/cli"

func main() {
	cli.Execute()
}
