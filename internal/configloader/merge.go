package configloader

import (
	"slices"

	"github.com/yaklabco/rsfmt/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Optional booleans: override overwrites base if override is set
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	// Start with a copy of base
	result := base.Clone()

	// Scalars: override overwrites base if set (non-zero value)
	if override.PrintWidth != 0 {
		result.PrintWidth = override.PrintWidth
	}
	if override.TabWidth != 0 {
		result.TabWidth = override.TabWidth
	}
	if override.EndOfLine != "" {
		result.EndOfLine = override.EndOfLine
	}
	if override.IgnoreDirective != "" {
		result.IgnoreDirective = override.IgnoreDirective
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Optional booleans carry an explicit false.
	if override.UseTabs != nil {
		result.UseTabs = config.Bool(*override.UseTabs)
	}
	if override.Embedded != nil {
		result.Embedded = config.Bool(*override.Embedded)
	}

	// CLI switches can only be turned on.
	if override.Write {
		result.Write = true
	}
	if override.Check {
		result.Check = true
	}

	// Slices: override replaces base entirely if non-nil. An explicit
	// empty list stays non-nil so later layers still see it as set.
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
