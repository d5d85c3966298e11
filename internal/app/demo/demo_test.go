package demo

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"go-closures/internal/app/config"
	"go-closures/internal/pkg/closures"
	"go-closures/internal/shared/logger"
)

func defaultConfig() *config.Config {
	return &config.Config{
		Environment:  "test",
		CounterCalls: 3,
		Car: config.CarConfig{
			Model:          "Model 1",
			Name:           "Toyota",
			Color:          "Black",
			ManufacturedAt: "24/2025",
		},
		Account: config.AccountConfig{
			InitialBalance: 1000,
			Currency:       "₹",
		},
		MetricsPath: "/metrics",
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRun(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{Logger: zap.New(core)}

	res, err := Run(context.Background(), Options{Config: defaultConfig(), Logger: log})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if !equalInts(res.Counter, []int{1, 2, 3}) {
		t.Errorf("expected counter [1 2 3], got %v", res.Counter)
	}
	if !equalInts(res.FirstCounter, []int{1, 2}) {
		t.Errorf("expected first counter [1 2], got %v", res.FirstCounter)
	}
	if !equalInts(res.SecondCounter, []int{1}) {
		t.Errorf("expected second counter [1], got %v", res.SecondCounter)
	}
	if res.CarModel != "Model 1" || res.CarManufacturedAt != "24/2025" {
		t.Errorf("unexpected car model view %s %s", res.CarModel, res.CarManufacturedAt)
	}
	if res.CarName != "Toyota" || res.CarColor != "Black" {
		t.Errorf("unexpected car details view %s %s", res.CarName, res.CarColor)
	}
	if len(res.Balances) != 2 || res.Balances[0] != 1500 || res.Balances[1] != 1300 {
		t.Errorf("expected balances [1500 1300], got %v", res.Balances)
	}

	for _, msg := range []string{
		"Inner: 1",
		"Model 1",
		"Toyota",
		"Deposited ₹500.",
		"Current Balance: ₹1500",
		"Withdrew ₹200.",
		"Current Balance: ₹1300",
	} {
		if logs.FilterMessage(msg).Len() == 0 {
			t.Errorf("expected %q to be reported", msg)
		}
	}

	// Each factory call reports under its own instance id.
	ids := map[any]bool{}
	for _, entry := range logs.FilterMessage("Inner: 1").All() {
		ids[entry.ContextMap()["instance"]] = true
	}
	if len(ids) != 3 {
		t.Errorf("expected 3 distinct counter instances, got %d", len(ids))
	}
}

func TestRunObserver(t *testing.T) {
	created := map[string]int{}
	obs := closures.ObserverFunc(func(factory, operation string, err error) {
		if operation == closures.OpCreate {
			created[factory]++
		}
	})

	if _, err := Run(context.Background(), Options{Config: defaultConfig(), Logger: logger.NewNop(), Observer: obs}); err != nil {
		t.Fatalf("run: %v", err)
	}

	if created[closures.FactoryCounter] != 3 || created[closures.FactoryCar] != 1 || created[closures.FactoryAccount] != 1 {
		t.Fatalf("unexpected instance counts %v", created)
	}
}

func TestRunInsufficientInitialBalance(t *testing.T) {
	cfg := defaultConfig()
	cfg.Account.InitialBalance = 0

	res, err := Run(context.Background(), Options{Config: cfg, Logger: logger.NewNop()})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Balances) != 2 || res.Balances[0] != 500 || res.Balances[1] != 300 {
		t.Fatalf("expected balances [500 300], got %v", res.Balances)
	}
}

func TestRunNegativeInitialBalance(t *testing.T) {
	cfg := defaultConfig()
	cfg.Account.InitialBalance = -1

	_, err := Run(context.Background(), Options{Config: cfg, Logger: logger.NewNop()})
	if !errors.Is(err, closures.ErrNegativeBalance) {
		t.Fatalf("expected ErrNegativeBalance, got %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, Options{Config: defaultConfig(), Logger: logger.NewNop()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(res.Counter) != 0 {
		t.Fatalf("expected no scenario to run, got %v", res.Counter)
	}
}
