package interfaces

//go:generate moq -out mocks/notifier_mock.go -pkg mocks . Notifier

import (
	"context"

	"github.com/preferencial-eng/incendio/pkg/domain/model"
)

// Notifier delivers outbound notifications about issue mutations. Delivery
// failures must never block or reverse the mutation that triggered them;
// callers dispatch fire-and-forget and log errors only.
type Notifier interface {
	NotifyIssueCreated(ctx context.Context, issue *model.Issue, creatorName string) error
}
