// Package swap holds the decision core of the service: lifecycle
// classification of escrow swaps, partitioning of the event history into
// display buckets, and resolution of the actions a viewer may take next.
// Nothing in this package talks to the network; all chain access comes in
// through the small source interfaces defined in categorize.go.
package swap

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// TokenType is the canonical token-type encoding, matching the escrow
// contract's own enum. The legacy UI encoding that placed ETH at index 0 maps
// onto TypeNone here: a pure-ETH side carries no token contract at all, only
// an ETH portion.
type TokenType uint8

const (
	TypeNone TokenType = iota
	TypeERC20
	TypeERC777
	TypeERC721
	TypeERC1155
)

func (t TokenType) String() string {
	switch t {
	case TypeNone:
		return "NONE"
	case TypeERC20:
		return "ERC20"
	case TypeERC777:
		return "ERC777"
	case TypeERC721:
		return "ERC721"
	case TypeERC1155:
		return "ERC1155"
	default:
		return "UNKNOWN"
	}
}

// Fungible reports whether quantities of this token type are scaled by a
// decimals value when displayed.
func (t TokenType) Fungible() bool {
	return t == TypeERC20 || t == TypeERC777
}

// Terms are the immutable swap parameters persisted on-chain at initiation.
// The client never mutates them; they change only through contract state
// transitions.
type Terms struct {
	SwapID     *big.Int
	ExpiryDate int64

	Initiator              common.Address
	InitiatorTokenType     TokenType
	InitiatorERCContract   common.Address
	InitiatorTokenID       *big.Int
	InitiatorTokenQuantity *big.Int
	InitiatorETHPortion    *big.Int

	Acceptor              common.Address
	AcceptorTokenType     TokenType
	AcceptorERCContract   common.Address
	AcceptorTokenID       *big.Int
	AcceptorTokenQuantity *big.Int
	AcceptorETHPortion    *big.Int
}

// Open reports whether the swap has no fixed acceptor and can be completed by
// any address meeting its terms.
func (t Terms) Open() bool {
	return t.Acceptor == (common.Address{})
}

// Expired reports whether the contract's eligibility window has closed.
func (t Terms) Expired(now time.Time) bool {
	return t.ExpiryDate <= now.Unix()
}

// IsParty reports whether addr is the initiator or the bound acceptor.
func (t Terms) IsParty(addr common.Address) bool {
	return addr == t.Initiator || (!t.Open() && addr == t.Acceptor)
}

// StatusFlags are the live readiness booleans returned by getSwapStatus.
// They are valid only at query time and must never be cached.
type StatusFlags struct {
	InitiatorNeedsToOwnToken       bool
	AcceptorNeedsToOwnToken        bool
	InitiatorTokenRequiresApproval bool
	AcceptorTokenRequiresApproval  bool
	IsReadyForSwapping             bool
}

// EventKind tags a lifecycle event variant.
type EventKind uint8

const (
	EventInitiated EventKind = iota + 1
	EventCompleted
	EventRemoved
)

func (k EventKind) String() string {
	switch k {
	case EventInitiated:
		return "SwapInitiated"
	case EventCompleted:
		return "SwapComplete"
	case EventRemoved:
		return "SwapRemoved"
	default:
		return "unknown"
	}
}

// Event is one lifecycle event from the escrow contract's log. Terms is set
// for Initiated events (and for Completed events when the log carried the
// full tuple); Removed events identify the swap by id only. The block/tx/log
// coordinates give chronological order within the history.
type Event struct {
	Kind   EventKind
	SwapID *big.Int
	Terms  *Terms

	BlockNumber uint64
	TxIndex     uint
	LogIndex    uint
}

// before reports whether e was emitted strictly earlier than other in log
// order.
func (e Event) before(other Event) bool {
	if e.BlockNumber != other.BlockNumber {
		return e.BlockNumber < other.BlockNumber
	}
	if e.TxIndex != other.TxIndex {
		return e.TxIndex < other.TxIndex
	}
	return e.LogIndex < other.LogIndex
}

// RemovalCause distinguishes why a swap landed in the Removed bucket. Both
// causes render identically by default, but the distinction is preserved for
// callers that need it.
type RemovalCause uint8

const (
	CauseNone RemovalCause = iota
	CauseRemoved
	CauseExpired
)

func (c RemovalCause) String() string {
	switch c {
	case CauseRemoved:
		return "removed"
	case CauseExpired:
		return "expired"
	default:
		return ""
	}
}

// Classified is a swap enriched with its readiness classification, display
// names for both token contracts, and (for Removed bucket entries) the cause.
type Classified struct {
	Terms Terms
	Classification

	InitiatorTokenName string
	AcceptorTokenName  string

	Cause RemovalCause
}

// Buckets are the disjoint display partitions of the event history for one
// viewer. Order within each bucket follows event order.
type Buckets struct {
	Initiated []Classified
	ToAccept  []Classified
	Open      []Classified
	Completed []Classified
	Removed   []Classified
}
