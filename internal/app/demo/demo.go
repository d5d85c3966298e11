// Package demo replays the closure examples end to end: a counter, two
// independent counters, a car with two views and a guarded account.
package demo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-closures/internal/app/config"
	"go-closures/internal/pkg/closures"
	"go-closures/internal/shared/logger"
)

// Options holds the demo dependencies
type Options struct {
	Config   *config.Config
	Logger   *logger.Logger
	Observer closures.Observer
}

// Result collects every value the closures returned during a run
type Result struct {
	Counter       []int
	FirstCounter  []int
	SecondCounter []int

	CarModel          string
	CarManufacturedAt string
	CarName           string
	CarColor          string

	// Balances holds each GetBalance result in call order
	Balances []float64
}

// Run executes every scenario in order, stopping early if ctx is done
func Run(ctx context.Context, opts Options) (*Result, error) {
	d := &runner{
		cfg: opts.Config,
		log: opts.Logger.Named("demo"),
		obs: opts.Observer,
	}
	res := &Result{}

	scenarios := []struct {
		name string
		run  func(*Result) error
	}{
		{"counter", d.counter},
		{"independent_counters", d.independentCounters},
		{"car", d.car},
		{"account", d.account},
	}

	for _, s := range scenarios {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		d.log.Debug("Running scenario", zap.String("scenario", s.name))
		if err := s.run(res); err != nil {
			return res, fmt.Errorf("scenario %s: %w", s.name, err)
		}
	}

	d.log.Info("Demo finished")
	return res, nil
}

type runner struct {
	cfg *config.Config
	log *logger.Logger
	obs closures.Observer
}

// options returns factory options reporting through a logger tagged with a
// fresh instance id
func (d *runner) options(name string, extra ...closures.Option) []closures.Option {
	reporter := d.log.Named(name).With(zap.String("instance", uuid.NewString()))

	opts := []closures.Option{closures.WithReporter(reporter)}
	if d.obs != nil {
		opts = append(opts, closures.WithObserver(d.obs))
	}
	return append(opts, extra...)
}

func (d *runner) counter(res *Result) error {
	counter := closures.MakeCounter(d.options("counter")...)
	for i := 0; i < d.cfg.CounterCalls; i++ {
		res.Counter = append(res.Counter, counter())
	}
	return nil
}

func (d *runner) independentCounters(res *Result) error {
	c1 := closures.MakeCounter(d.options("counter")...)
	res.FirstCounter = append(res.FirstCounter, c1(), c1())

	c2 := closures.MakeCounter(d.options("counter")...)
	res.SecondCounter = append(res.SecondCounter, c2())
	return nil
}

func (d *runner) car(res *Result) error {
	car := closures.MakeCar(closures.CarSpec{
		Model:          d.cfg.Car.Model,
		Name:           d.cfg.Car.Name,
		Color:          d.cfg.Car.Color,
		ManufacturedAt: d.cfg.Car.ManufacturedAt,
	}, d.options("car")...)

	res.CarModel, res.CarManufacturedAt = car.Model()
	res.CarName, res.CarColor = car.Details()
	return nil
}

func (d *runner) account(res *Result) error {
	extra := []closures.Option{closures.WithCurrency(d.cfg.Account.Currency)}
	if d.cfg.Account.StrictDeposits {
		extra = append(extra, closures.WithStrictDeposits())
	}

	acc, err := closures.CreateAccount(d.cfg.Account.InitialBalance, d.options("account", extra...)...)
	if err != nil {
		return err
	}

	if err := acc.Deposit(500); err != nil {
		return err
	}
	res.Balances = append(res.Balances, acc.GetBalance())

	// A refused withdrawal is part of the story, not a failure of the run.
	if err := acc.Withdraw(200); err != nil {
		d.log.Warn("Withdrawal refused", zap.Error(err))
	}
	res.Balances = append(res.Balances, acc.GetBalance())
	return nil
}
