package options

import (
	"github.com/mcpcall/mcpcall/internal/client"
	"github.com/mcpcall/mcpcall/internal/config"
)

type CmdOption func(*CmdOptions) error

// CmdOptions carries injectable collaborators for commands: the config
// loader/initializer and any client options (transport, clock) that tests
// want to override.
type CmdOptions struct {
	ConfigLoader      config.Loader
	ConfigInitializer config.Initializer
	ClientOptions     []client.Option
}

func defaultOptions() CmdOptions {
	configLoader := &config.DefaultLoader{}
	return CmdOptions{
		ConfigLoader:      configLoader,
		ConfigInitializer: configLoader,
	}
}

func NewOptions(opt ...CmdOption) (CmdOptions, error) {
	opts := defaultOptions()

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return CmdOptions{}, err
		}
	}
	return opts, nil
}

func WithConfigLoader(l config.Loader) CmdOption {
	return func(o *CmdOptions) error {
		o.ConfigLoader = l
		return nil
	}
}

func WithConfigInitializer(i config.Initializer) CmdOption {
	return func(o *CmdOptions) error {
		o.ConfigInitializer = i
		return nil
	}
}

func WithClientOptions(clientOpts ...client.Option) CmdOption {
	return func(o *CmdOptions) error {
		o.ClientOptions = clientOpts
		return nil
	}
}
