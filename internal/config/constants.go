package config

// MaxSiteRules caps the guarded rule chain kept per call site. Sites that
// see more distinct (callee, shape) combinations evict oldest-first.
const MaxSiteRules = 8

// ScenarioFileExtensions are all recognized scenario file extensions
var ScenarioFileExtensions = []string{".yaml", ".yml"}
