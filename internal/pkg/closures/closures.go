// Package closures holds factories whose returned functions keep access to
// the local variables of the call that created them.
//
// Every factory call allocates its own state. The state lives only in the
// captured variables, so the functions handed back are the sole way to read
// or change it.
package closures

// Reporter receives the human-readable lines produced by the returned functions
type Reporter interface {
	Report(msg string)
}

// ReporterFunc adapts a plain function to Reporter
type ReporterFunc func(msg string)

// Report calls f(msg)
func (f ReporterFunc) Report(msg string) {
	f(msg)
}

// Observer is told about every factory call and every operation invocation.
// err is nil on success, otherwise the reason the operation was refused.
type Observer interface {
	Observe(factory, operation string, err error)
}

// ObserverFunc adapts a plain function to Observer
type ObserverFunc func(factory, operation string, err error)

// Observe calls f(factory, operation, err)
func (f ObserverFunc) Observe(factory, operation string, err error) {
	f(factory, operation, err)
}

// Factory names passed to Observer.
const (
	FactoryCounter = "counter"
	FactoryCar     = "car"
	FactoryAccount = "account"
)

// Operation names passed to Observer.
const (
	OpCreate     = "create"
	OpIncrement  = "increment"
	OpModel      = "model"
	OpDetails    = "details"
	OpDeposit    = "deposit"
	OpWithdraw   = "withdraw"
	OpGetBalance = "get_balance"
)

// DefaultCurrency is prefixed to every amount an account reports
const DefaultCurrency = "₹"

type options struct {
	reporter       Reporter
	observer       Observer
	currency       string
	strictDeposits bool
}

// Option configures a factory call
type Option func(*options)

// WithReporter sends reported lines to r instead of discarding them
func WithReporter(r Reporter) Option {
	return func(o *options) {
		if r != nil {
			o.reporter = r
		}
	}
}

// WithObserver registers o to be told about each invocation
func WithObserver(o Observer) Option {
	return func(opts *options) {
		opts.observer = o
	}
}

// WithCurrency sets the symbol printed in front of account amounts
func WithCurrency(symbol string) Option {
	return func(o *options) {
		o.currency = symbol
	}
}

// WithStrictDeposits makes Account.Deposit return ErrInvalidAmount for
// amounts it refuses. Without it a refused deposit is a silent no-op.
func WithStrictDeposits() Option {
	return func(o *options) {
		o.strictDeposits = true
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		reporter: ReporterFunc(func(string) {}),
		currency: DefaultCurrency,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) observe(factory, operation string, err error) {
	if o.observer != nil {
		o.observer.Observe(factory, operation, err)
	}
}
