package ports

import "go.trai.ch/mason/internal/core/domain"

// ConfigLoader is the rule-graph collaborator boundary: it parses whatever
// rule-definition syntax exists outside the core and hands the engine a
// fully resolved graph plus invocation settings.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration from the given working directory and
	// returns the rule graph and settings. All dependency references are
	// resolved; unknown names are errors.
	Load(cwd string) (*domain.Graph, domain.Settings, error)
}
