// Package config loads the optional startup settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"wireglow/postfx"
)

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

type Bloom struct {
	Exposure  float32 `toml:"exposure"`
	Strength  float32 `toml:"strength"`
	Threshold float32 `toml:"threshold"`
	Radius    float32 `toml:"radius"`
}

// Params converts the section into the values the bloom pass reads.
func (b Bloom) Params() postfx.BloomParams {
	return postfx.BloomParams{
		Exposure:  b.Exposure,
		Strength:  b.Strength,
		Threshold: b.Threshold,
		Radius:    b.Radius,
	}
}

type Scene struct {
	Cuboids int     `toml:"cuboids"`
	FogNear float32 `toml:"fog_near"`
	FogFar  float32 `toml:"fog_far"`
}

type Config struct {
	CustomShader bool   `toml:"custom_shader"`
	Window       Window `toml:"window"`
	Bloom        Bloom  `toml:"bloom"`
	Scene        Scene  `toml:"scene"`
}

func Default() Config {
	p := postfx.DefaultBloomParams()
	return Config{
		Window: Window{
			Width:  800,
			Height: 600,
			Title:  "wireglow",
			VSync:  true,
		},
		Bloom: Bloom{
			Exposure:  p.Exposure,
			Strength:  p.Strength,
			Threshold: p.Threshold,
			Radius:    p.Radius,
		},
		Scene: Scene{
			Cuboids: 100,
			FogNear: 0,
			FogFar:  20,
		},
	}
}

// Load reads a TOML file over the defaults. Keys the file leaves out keep
// their default value; unknown keys are an error.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse is Decode over an in-memory document.
func Parse(data []byte) (Config, error) {
	return Decode(bytes.NewReader(data))
}

func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("decode config: %s", strict.String())
		}
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate collects every out-of-range value.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Scene.Cuboids < 0 {
		errs = append(errs, fmt.Errorf("scene cuboids %d is negative", c.Scene.Cuboids))
	}
	if c.Scene.FogNear < 0 || c.Scene.FogFar <= c.Scene.FogNear {
		errs = append(errs, fmt.Errorf("fog range [%v, %v] is empty", c.Scene.FogNear, c.Scene.FogFar))
	}
	if err := c.Bloom.Params().Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
