package aircap

import (
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/golog"
	"log"
)

func (d *Discovery) WithGoLogger(parentLogger *log.Logger) {
	d.WithLogWrapLogger(logwrap.New(golog.Wrap(parentLogger)))
}

func (d *Discovery) WithLogWrapLogger(lw logwrap.Logger) {
	d.logger = lw
}

// WithGoLogger sets the logger of the factory, and of its discovery if NewFactory created it.
func (f *Factory) WithGoLogger(parentLogger *log.Logger) {
	f.WithLogWrapLogger(logwrap.New(golog.Wrap(parentLogger)))
}

func (f *Factory) WithLogWrapLogger(lw logwrap.Logger) {
	f.logger = lw

	if f.ownsDiscovery {
		f.discovery.WithLogWrapLogger(lw)
	}
}
