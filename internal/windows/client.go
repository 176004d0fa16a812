//go:build windows

package windows

import (
	"github.com/Norgate-AV/dockbar/internal/interfaces"
	"github.com/Norgate-AV/dockbar/internal/logger"
)

var _ interfaces.Platform = (*Client)(nil)

// Client implements the app bar engine's platform ports on top of the
// Win32 shell, window and display APIs
type Client struct {
	log logger.LoggerInterface
}

// NewClient creates a new Windows API client
func NewClient(log logger.LoggerInterface) *Client {
	return &Client{log: log}
}

// NewPlatform returns the Win32 platform backend
func NewPlatform(log logger.LoggerInterface) (*Client, error) {
	return NewClient(log), nil
}
