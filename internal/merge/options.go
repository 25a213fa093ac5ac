package merge

// Options controls merge behavior. The zero value disables everything;
// most callers want DefaultOptions.
type Options struct {
	// ResolveConflicts enables automatic resolution of hard collisions.
	// System-reserved overrides are always resolved regardless, since
	// that is a correctness rule rather than a preference.
	ResolveConflicts bool `json:"resolve_conflicts" mapstructure:"resolve_conflicts"`

	// PrioritizeUserConfig lets a user-sourced entry replace any
	// non-user entry during intra-tool layering.
	PrioritizeUserConfig bool `json:"prioritize_user_config" mapstructure:"prioritize_user_config"`

	// AllowSystemOverrides lets later layers replace a system-sourced
	// entry during intra-tool layering. It has no effect on the
	// system-reserved key check, which is absolute.
	AllowSystemOverrides bool `json:"allow_system_overrides" mapstructure:"allow_system_overrides"`

	// PreserveDisabled keeps disabled entries in the output groups for
	// auditability instead of dropping them.
	PreserveDisabled bool `json:"preserve_disabled" mapstructure:"preserve_disabled"`

	// GenerateSuggestions produces ranked alternative keys for resolved
	// conflicts and hygiene issues.
	GenerateSuggestions bool `json:"generate_suggestions" mapstructure:"generate_suggestions"`
}

// DefaultOptions returns the options most callers want: resolve, favor
// user configuration, suggest alternatives.
func DefaultOptions() Options {
	return Options{
		ResolveConflicts:     true,
		PrioritizeUserConfig: true,
		GenerateSuggestions:  true,
	}
}
