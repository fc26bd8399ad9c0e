package provider

import "gapscan/internal/model"

// DataProvider is the abstraction used by the application when accessing bar data.
// Implementations own their resource cleanup.
type DataProvider interface {
	GetName() string
	LoadBars(ticker string) ([]model.Bar, error)
	Close() error
}
