package closures

import (
	"fmt"
	"math"
	"strconv"
	"sync"
)

// Account is the set of operations over one private balance
type Account struct {
	// Deposit adds a positive amount. A refused amount leaves the balance
	// untouched and reports nothing; it returns ErrInvalidAmount only when
	// the account was created WithStrictDeposits.
	Deposit func(amount float64) error

	// Withdraw removes a positive amount no larger than the balance
	Withdraw func(amount float64) error

	// GetBalance reports and returns the current balance
	GetBalance func() float64
}

// CreateAccount opens an account holding initialBalance
func CreateAccount(initialBalance float64, opts ...Option) (Account, error) {
	if initialBalance < 0 || !isFinite(initialBalance) {
		return Account{}, fmt.Errorf("create account with %v: %w", initialBalance, ErrNegativeBalance)
	}

	o := newOptions(opts)

	var mu sync.Mutex
	balance := initialBalance // only reachable through the functions below

	deposit := func(amount float64) error {
		if !validAmount(amount) {
			o.observe(FactoryAccount, OpDeposit, ErrInvalidAmount)
			if o.strictDeposits {
				return ErrInvalidAmount
			}
			return nil
		}

		mu.Lock()
		balance += amount
		mu.Unlock()

		o.reporter.Report(fmt.Sprintf("Deposited %s.", o.money(amount)))
		o.observe(FactoryAccount, OpDeposit, nil)
		return nil
	}

	withdraw := func(amount float64) error {
		var err error

		mu.Lock()
		switch {
		case !validAmount(amount):
			err = ErrInvalidAmount
		case amount > balance:
			err = ErrInsufficientFunds
		default:
			balance -= amount
		}
		mu.Unlock()

		if err != nil {
			o.reporter.Report("Insufficient balance or invalid amount.")
		} else {
			o.reporter.Report(fmt.Sprintf("Withdrew %s.", o.money(amount)))
		}
		o.observe(FactoryAccount, OpWithdraw, err)
		return err
	}

	getBalance := func() float64 {
		mu.Lock()
		b := balance
		mu.Unlock()

		o.reporter.Report(fmt.Sprintf("Current Balance: %s", o.money(b)))
		o.observe(FactoryAccount, OpGetBalance, nil)
		return b
	}

	o.observe(FactoryAccount, OpCreate, nil)

	return Account{
		Deposit:    deposit,
		Withdraw:   withdraw,
		GetBalance: getBalance,
	}, nil
}

func (o *options) money(amount float64) string {
	return o.currency + strconv.FormatFloat(amount, 'f', -1, 64)
}

func validAmount(amount float64) bool {
	return amount > 0 && isFinite(amount)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
