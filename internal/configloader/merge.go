package configloader

import "github.com/yaklabco/notemark/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Construct toggles: a non-nil override pointer wins
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// false is the zero value, so a layer can switch these on but not off.
	if override.Tags.PathStyle {
		result.Tags.PathStyle = true
	}
	if override.Write {
		result.Write = true
	}

	result.Constructs = mergeConstructs(result.Constructs, override.Constructs)

	if override.Extensions != nil {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	return result
}

// mergeConstructs overlays the toggles that override sets explicitly.
func mergeConstructs(base, override config.ConstructsConfig) config.ConstructsConfig {
	result := base
	if override.Wikilinks != nil {
		result.Wikilinks = config.Bool(*override.Wikilinks)
	}
	if override.Tags != nil {
		result.Tags = config.Bool(*override.Tags)
	}
	if override.Embeds != nil {
		result.Embeds = config.Bool(*override.Embeds)
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
