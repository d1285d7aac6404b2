package scan

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2/log"

	"Shelf-Life-Backend/entities"
)

// ErrQuotaExhausted marks a provider failure caused by rate limiting, so the
// caller can show a distinct "service busy" message. The pipeline still falls
// through to the next tier either way.
var ErrQuotaExhausted = errors.New("provider quota exhausted")

// Provider is one tier of the acquisition chain. A provider either returns a
// non-empty candidate list or an error; "reachable but returned nothing
// useful" and "unreachable" are both just errors to the pipeline.
type Provider interface {
	Name() string
	Scan(ctx context.Context, image []byte, mimeType string) ([]entities.ScannedItem, error)
}

// Pipeline tries providers strictly in order and stops at the first success.
// The last tier is expected to be the static dataset, which cannot fail, so
// Scan is total: the caller always receives a non-empty list.
type Pipeline struct {
	providers []Provider
}

func NewPipeline(providers ...Provider) *Pipeline {
	return &Pipeline{providers: providers}
}

// Scan runs the tiers. quotaHit reports whether any tier failed specifically
// on a rate limit.
func (p *Pipeline) Scan(ctx context.Context, image []byte, mimeType string) (items []entities.ScannedItem, quotaHit bool) {
	for _, provider := range p.providers {
		result, err := provider.Scan(ctx, image, mimeType)
		if err == nil && len(result) > 0 {
			return result, quotaHit
		}

		if errors.Is(err, ErrQuotaExhausted) {
			quotaHit = true
		}
		if err != nil {
			log.Warnf("scan tier %s failed, falling through: %v", provider.Name(), err)
		} else {
			log.Warnf("scan tier %s returned nothing useful, falling through", provider.Name())
		}
	}

	// Only reachable when the pipeline was built without the static tier.
	return StaticScannedItems(), quotaHit
}
