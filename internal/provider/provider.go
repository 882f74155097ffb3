package provider

import (
	"context"

	"newspump/internal/model"
)

// Provider is any source of raw news rows. Fetch returns rows or an error;
// an error (including expected-nonempty sources coming back empty) tells the
// controller to fall through to the next provider in priority order.
type Provider interface {
	Fetch(ctx context.Context) ([]model.RawRow, error)
	Descriptor() model.ProviderDescriptor
}
