package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of a match. Lengths are in court units,
// speeds in units per second, times in seconds.
type Config struct {
	Field  FieldConfig  `yaml:"field"`
	Paddle PaddleConfig `yaml:"paddle"`
	Ball   BallConfig   `yaml:"ball"`
	Serve  ServeConfig  `yaml:"serve"`

	// MaxFrameDt caps a single step so a stalled frame can't tunnel the
	// ball through a paddle.
	MaxFrameDt float64 `yaml:"max_frame_dt"`
	WinScore   int     `yaml:"win_score"`
}

type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PaddleConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
}

type BallConfig struct {
	Size           float64 `yaml:"size"`
	BaseSpeed      float64 `yaml:"base_speed"`
	MinSpeed       float64 `yaml:"min_speed"`
	MaxSpeed       float64 `yaml:"max_speed"`
	DeflectionGain float64 `yaml:"deflection_gain"`
	HitSpeedup     float64 `yaml:"hit_speedup"`
}

type ServeConfig struct {
	// AngleDeg is the maximum serve angle away from the horizontal.
	AngleDeg float64 `yaml:"angle_deg"`
	Delay    float64 `yaml:"delay"`
}

func Default() Config {
	return Config{
		Field: FieldConfig{Width: 800, Height: 600},
		Paddle: PaddleConfig{
			Width:  20,
			Height: 100,
			Speed:  500,
		},
		Ball: BallConfig{
			Size: 10,
			// |(300, 150)|, the classic opening velocity.
			BaseSpeed:      math.Hypot(300, 150),
			MinSpeed:       200,
			MaxSpeed:       900,
			DeflectionGain: 1.0,
			HitSpeedup:     1.05,
		},
		Serve: ServeConfig{
			AngleDeg: 30,
			Delay:    0.6,
		},
		MaxFrameDt: 0.02,
		WinScore:   11,
	}
}

// Load reads a YAML file on top of Default. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses YAML from r on top of Default and validates the result.
func Decode(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	positive := []struct {
		field string
		v     float64
	}{
		{"field.width", c.Field.Width},
		{"field.height", c.Field.Height},
		{"paddle.width", c.Paddle.Width},
		{"paddle.height", c.Paddle.Height},
		{"paddle.speed", c.Paddle.Speed},
		{"ball.size", c.Ball.Size},
		{"ball.base_speed", c.Ball.BaseSpeed},
		{"ball.min_speed", c.Ball.MinSpeed},
		{"ball.max_speed", c.Ball.MaxSpeed},
		{"max_frame_dt", c.MaxFrameDt},
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return &ValidationError{Field: p.field, Reason: "must be a positive number"}
		}
	}

	b := c.Ball
	if b.MinSpeed > b.MaxSpeed {
		return &ValidationError{Field: "ball.min_speed", Reason: "must be <= ball.max_speed"}
	}
	if b.BaseSpeed < b.MinSpeed || b.BaseSpeed > b.MaxSpeed {
		return &ValidationError{Field: "ball.base_speed", Reason: "must be within [min_speed, max_speed]"}
	}
	if b.DeflectionGain < 0 {
		return &ValidationError{Field: "ball.deflection_gain", Reason: "must be >= 0"}
	}
	if b.HitSpeedup < 1 {
		return &ValidationError{Field: "ball.hit_speedup", Reason: "must be >= 1"}
	}
	if c.Serve.AngleDeg < 0 || c.Serve.AngleDeg >= 90 {
		return &ValidationError{Field: "serve.angle_deg", Reason: "must be in [0, 90)"}
	}
	if c.Serve.Delay < 0 {
		return &ValidationError{Field: "serve.delay", Reason: "must be >= 0"}
	}
	if c.WinScore < 0 {
		return &ValidationError{Field: "win_score", Reason: "must be >= 0 (0 disables match end)"}
	}

	// Each paddle lives in its own half of the court.
	if c.Paddle.Width > c.Field.Width/2 || c.Paddle.Height > c.Field.Height {
		return &ValidationError{Field: "paddle", Reason: "paddle does not fit in its half of the field"}
	}
	if b.Size >= c.Field.Height {
		return &ValidationError{Field: "ball.size", Reason: "must be smaller than field.height"}
	}

	// Ball and paddle close at up to max_speed + paddle.speed; in one step
	// they must not get from touching on one side to touching on the other.
	closing := (b.MaxSpeed + c.Paddle.Speed) * c.MaxFrameDt
	if reach := c.Paddle.Width + b.Size; closing >= reach {
		return &ValidationError{
			Field:  "max_frame_dt",
			Reason: fmt.Sprintf("(ball.max_speed + paddle.speed) * max_frame_dt must be < paddle.width + ball.size (%.4g >= %.4g)", closing, reach),
		}
	}
	return nil
}
