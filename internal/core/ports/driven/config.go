package driven

import (
	"time"

	"github.com/docuquery-labs/docuquery-cli/internal/core/domain"
)

// Settings is the resolved client configuration after defaults and
// environment overrides have been applied.
type Settings struct {
	// APIBaseURL is the remote service root.
	APIBaseURL string

	// PollInterval is the spacing between library refreshes while any
	// document is still transient.
	PollInterval time.Duration

	// RequestTimeout bounds each remote exchange.
	RequestTimeout time.Duration

	// DefaultModel is the answer model selected at startup.
	DefaultModel domain.AnswerModel

	// InboxDir, when set, is a directory watched for new PDFs to
	// upload automatically.
	InboxDir string
}

// ConfigStore provides access to persisted client configuration.
type ConfigStore interface {
	// Settings returns the resolved configuration.
	Settings() Settings

	// SetDefaultModel persists a new default answer model.
	SetDefaultModel(m domain.AnswerModel) error

	// Path returns the location of the backing file, for display.
	Path() string
}
