package ledger

import (
	"errors"
	"sync"
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidRecipient  = errors.New("invalid recipient")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

type Account struct {
	Username string `json:"-"`
	Balance  int64  `json:"balance"`
}

// Ledger keeps every balance in memory for the life of the process.
// Accounts are created lazily and never removed.
type Ledger struct {
	mu       sync.Mutex
	accounts map[string]*Account
}

func New(seed map[string]int64) *Ledger {
	l := &Ledger{
		accounts: make(map[string]*Account, len(seed)),
	}

	for name, balance := range seed {
		l.accounts[name] = &Account{Username: name, Balance: balance}
	}

	return l
}

// getOrCreate expects l.mu to be held.
func (l *Ledger) getOrCreate(name string) *Account {
	account, ok := l.accounts[name]
	if !ok {
		account = &Account{Username: name}
		l.accounts[name] = account
	}

	return account
}

func (l *Ledger) GetOrCreate(name string) Account {
	l.mu.Lock()
	defer l.mu.Unlock()

	return *l.getOrCreate(name)
}

// Transfer moves amount from one account to another. The debit and the
// credit happen under the same lock, so no caller ever observes one
// without the other.
func (l *Ledger) Transfer(from, to string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if to == "" {
		return ErrInvalidRecipient
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	source := l.getOrCreate(from)
	target := l.getOrCreate(to)

	if source.Balance < amount {
		return ErrInsufficientFunds
	}

	source.Balance -= amount
	target.Balance += amount

	return nil
}

func (l *Ledger) Balances() map[string]Account {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string]Account, len(l.accounts))
	for name, account := range l.accounts {
		out[name] = *account
	}

	return out
}

func (l *Ledger) Total() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var total int64
	for _, account := range l.accounts {
		total += account.Balance
	}

	return total
}
