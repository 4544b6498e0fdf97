package factory

import (
	"fmt"

	"github.com/eventscope/eventscope/internal/ai/anthropic"
	"github.com/eventscope/eventscope/internal/ai/openai"
	"github.com/eventscope/eventscope/internal/ai/types"
)

// Vendor identifies a completion provider implementation
type Vendor string

const (
	VendorOpenAI    Vendor = "openai"
	VendorAnthropic Vendor = "anthropic"
)

// New creates a completion provider for the given vendor
func New(vendor Vendor, config *types.Config) (types.Provider, error) {
	switch vendor {
	case VendorOpenAI:
		return openai.New(config)
	case VendorAnthropic:
		return anthropic.New(config)
	default:
		return nil, fmt.Errorf("unknown provider vendor: %s", vendor)
	}
}
