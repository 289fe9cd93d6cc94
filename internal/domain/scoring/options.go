package scoring

import "golang.org/x/text/language"

// Option configures aggregation and ordering.
type Option func(*options)

type options struct {
	locale language.Tag
}

func defaultOptions() options {
	return options{locale: language.Bulgarian}
}

// WithLocale sets the BCP 47 tag used to collate player names. An
// unparsable tag keeps the default.
func WithLocale(tag string) Option {
	return func(o *options) {
		if t, err := language.Parse(tag); err == nil {
			o.locale = t
		}
	}
}

func apply(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
