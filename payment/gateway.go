package payment

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Result is the gateway's answer to a payment or refund attempt. On
// failure Reason carries a human-readable explanation and TransactionID
// is empty.
type Result struct {
	Success       bool            `json:"success"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Reason        string          `json:"reason,omitempty"`
}

// Gateway simulates a payment processor: an artificial processing delay
// and a randomized failure rate, no external calls.
type Gateway struct {
	mu          sync.Mutex
	rng         *rand.Rand
	delay       time.Duration
	failureRate float64 // payment failure probability
	refundRate  float64 // refund failure probability
}

func NewGateway() *Gateway {
	return &Gateway{
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		delay:       200 * time.Millisecond,
		failureRate: 0.05,
		refundRate:  0.02,
	}
}

// NewTestGateway returns a gateway with no delay and a fixed seed.
func NewTestGateway(seed int64, failureRate, refundRate float64) *Gateway {
	return &Gateway{
		rng:         rand.New(rand.NewSource(seed)),
		failureRate: failureRate,
		refundRate:  refundRate,
	}
}

func (g *Gateway) roll() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64()
}

// ProcessPayment simulates charging the given amount.
func (g *Gateway) ProcessPayment(method string, amount decimal.Decimal) Result {
	time.Sleep(g.delay)
	if g.roll() < g.failureRate {
		return Result{
			Success: false,
			Amount:  amount,
			Reason:  "payment declined by issuer",
		}
	}
	return Result{
		Success:       true,
		TransactionID: "txn_" + uuid.NewString(),
		Amount:        amount,
	}
}

// ProcessRefund simulates refunding a previously completed transaction.
func (g *Gateway) ProcessRefund(transactionID string, amount decimal.Decimal) Result {
	time.Sleep(g.delay)
	if g.roll() < g.refundRate {
		return Result{
			Success: false,
			Amount:  amount,
			Reason:  "refund rejected by processor",
		}
	}
	return Result{
		Success:       true,
		TransactionID: transactionID,
		Amount:        amount,
	}
}
