package provision

import (
	"github.com/oneconcern/texpack/pkg/storage"
	"go.uber.org/zap"
)

// Option sets options for the provisioner
type Option func(*Provisioner)

// WithFetcher sets the source of the runnable jar. It defaults to an HTTP fetch from DefaultSourceURL.
func WithFetcher(fetcher Fetcher) Option {
	return func(p *Provisioner) {
		if fetcher != nil {
			p.fetcher = fetcher
		}
	}
}

// WithStore sets the vendor store. It defaults to an atomic local store rooted at the vendor directory.
func WithStore(store storage.Store) Option {
	return func(p *Provisioner) {
		p.store = store
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(p *Provisioner) {
		if logger != nil {
			p.logger = logger
		}
	}
}
