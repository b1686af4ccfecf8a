// Package gateway ingests Telegram updates and funnels them into the
// command router. Two mutually-exclusive modes exist: a webhook server
// (push) and a long-poll loop (pull). Both share the same Processor, so
// all business logic downstream of ingestion is written once.
package gateway

import "context"

// Gateway is a long-running update source. Run blocks until ctx is
// cancelled or the source fails fatally.
type Gateway interface {
	Run(ctx context.Context) error
}
