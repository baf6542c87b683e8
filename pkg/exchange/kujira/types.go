package kujira

import (
	"errors"
	"fmt"

	"klob/pkg/market"
)

const Connector = "kujira"

// NativeToken is the chain's fee token; its symbol is always appended to
// balance queries.
var NativeToken = market.Token{
	ID:       "ukuji",
	Name:     "Kuji",
	Symbol:   "KUJI",
	Decimals: 6,
}

// PlaceholderCancelTxHash is returned for cancellations that the venue
// reports as "order not found": the order is already gone, so there is no
// real transaction to point at.
const PlaceholderCancelTxHash = "0000000000000000000000000000000000000000000000000000000000000000"

// orderNotFoundMessage is the venue's text for cancelling an order that is no
// longer resting. Matching on it is a compatibility contract with the
// gateway; see DESIGN.md for the structured-error open question.
const orderNotFoundMessage = "No orders with the specified information exist"

// Venue order-status vocabulary.
const (
	venueStatusOpen                = "OPEN"
	venueStatusCancelled           = "CANCELLED"
	venueStatusPartiallyFilled     = "PARTIALLY_FILLED"
	venueStatusFilled              = "FILLED"
	venueStatusCreationPending     = "CREATION_PENDING"
	venueStatusCancellationPending = "CANCELLATION_PENDING"
)

// ErrMarketNotFound reports a trading pair absent from the market cache even
// after a refresh.
var ErrMarketNotFound = errors.New("market not found")

// SubmissionError is a mutating call that came back without a usable
// transaction hash. The call itself may not have failed; an empty hash still
// means the instruction never made it on chain.
type SubmissionError struct {
	Operation     string
	ClientOrderID string
	TxHash        string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s of order '%s' failed: invalid transaction hash %q", e.Operation, e.ClientOrderID, e.TxHash)
}

// TranslationError is an order status string outside the venue vocabulary.
// It fails fast to surface venue contract drift.
type TranslationError struct {
	Status string
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("unknown venue order status: %q", e.Status)
}

// InvalidMarketDataError is a market record with an unparsable numeric field.
type InvalidMarketDataError struct {
	Market string
	Field  string
	Value  string
}

func (e *InvalidMarketDataError) Error() string {
	return fmt.Sprintf("invalid market data for '%s': field %s has unparsable value %q", e.Market, e.Field, e.Value)
}
