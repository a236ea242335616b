package ports

// Logger defines the interface for application-level logging outside the
// event bus (startup, summary lines).
//
//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(err error)
}
