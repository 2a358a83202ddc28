package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/candlelight-lab/quarterdeck/pkg/domain/types"
	"github.com/candlelight-lab/quarterdeck/pkg/usecase"
)

// Palette holds chart palette configuration
type Palette struct {
	Path string
}

// paletteFile is the YAML shape of a palette file
type paletteFile struct {
	Colors []string `yaml:"colors"`
}

// Flags returns CLI flags for Palette configuration
func (p *Palette) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "palette",
			Usage:       "YAML file with chart colors (colors: [\"#4F46E5\", ...])",
			Category:    "Charts",
			Sources:     cli.EnvVars("QUARTERDECK_PALETTE"),
			Destination: &p.Path,
		},
	}
}

// Configure loads the palette file, or returns the built-in palette when no
// file is configured
func (p *Palette) Configure() (usecase.Palette, error) {
	if p.Path == "" {
		return usecase.DefaultPalette(), nil
	}

	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read palette file",
			goerr.V("path", p.Path))
	}

	var file paletteFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse palette file",
			goerr.V("path", p.Path))
	}
	if len(file.Colors) == 0 {
		return nil, goerr.New("palette file has no colors", goerr.V("path", p.Path))
	}

	palette := make(usecase.Palette, 0, len(file.Colors))
	for _, c := range file.Colors {
		if !strings.HasPrefix(c, "#") {
			return nil, goerr.New("palette color must be a hex value",
				goerr.V("path", p.Path),
				goerr.V("color", c),
			)
		}
		palette = append(palette, types.ColorToken(c))
	}

	return palette, nil
}

// LogValue returns structured log value
func (p Palette) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", p.Path),
	)
}
