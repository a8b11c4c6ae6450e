package pipeline

import (
	"fmt"

	"github.com/roboco-io/jww2dxf/internal/config"
	"github.com/roboco-io/jww2dxf/internal/parser"
	"go.uber.org/zap"
)

// OptionsFromConfig builds pipeline options from the application config.
func OptionsFromConfig(cfg *config.Config, log *zap.Logger) (Options, error) {
	opts := DefaultOptions()
	opts.Logger = log

	rule, err := parser.ParseStopRule(cfg.Parse.StopRule)
	if err != nil {
		return opts, fmt.Errorf("invalid config: %w", err)
	}
	opts.Parse.Strict = cfg.Parse.Strict
	opts.Parse.StopRule = rule

	opts.Convert.UnitScale = cfg.Convert.UnitScale
	opts.Convert.FlipY = cfg.Convert.FlipY
	opts.Convert.DefaultTextHeight = cfg.Convert.DefaultTextHeight
	opts.Convert.IncludeTemporaryPoints = cfg.Convert.IncludeTemporaryPoints
	opts.Convert.ACADVersion = cfg.Output.ACADVersion

	opts.Writer.Precision = cfg.Output.Precision
	return opts, nil
}
