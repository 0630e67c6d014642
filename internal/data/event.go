package data

const (
	EventKindInitiated uint8 = 1
	EventKindCompleted uint8 = 2
	EventKindRemoved   uint8 = 3
)

type Events interface {
	Insert(Event) error
	Exists(kind uint8, swapID string, blockNumber uint64, logIndex uint64) (bool, error)
	SelectAll() ([]Event, error)
}

// Event is one persisted lifecycle log entry. Terms columns are populated for
// initiated (and complete) events; removed events carry the id only. Amounts
// are stored as decimal strings since uint256 does not fit any SQL integer.
type Event struct {
	// ID surrogate key is strongly preferred against PRIMARY KEY (SwapID, Kind, BlockNumber, LogIndex)
	ID     int64  `structs:"-" db:"id"`
	Kind   uint8  `structs:"kind" db:"kind"`
	SwapID string `structs:"swap_id" db:"swap_id"`

	BlockNumber uint64 `structs:"block_number" db:"block_number"`
	TxIndex     uint64 `structs:"tx_index" db:"tx_index"`
	LogIndex    uint64 `structs:"log_index" db:"log_index"`

	ExpiryDate int64  `structs:"expiry_date" db:"expiry_date"`
	Initiator  string `structs:"initiator" db:"initiator"`
	Acceptor   string `structs:"acceptor" db:"acceptor"`

	InitiatorTokenType     uint8  `structs:"initiator_token_type" db:"initiator_token_type"`
	InitiatorERCContract   string `structs:"initiator_erc_contract" db:"initiator_erc_contract"`
	InitiatorTokenID       string `structs:"initiator_token_id" db:"initiator_token_id"`
	InitiatorTokenQuantity string `structs:"initiator_token_quantity" db:"initiator_token_quantity"`
	InitiatorETHPortion    string `structs:"initiator_eth_portion" db:"initiator_eth_portion"`

	AcceptorTokenType     uint8  `structs:"acceptor_token_type" db:"acceptor_token_type"`
	AcceptorERCContract   string `structs:"acceptor_erc_contract" db:"acceptor_erc_contract"`
	AcceptorTokenID       string `structs:"acceptor_token_id" db:"acceptor_token_id"`
	AcceptorTokenQuantity string `structs:"acceptor_token_quantity" db:"acceptor_token_quantity"`
	AcceptorETHPortion    string `structs:"acceptor_eth_portion" db:"acceptor_eth_portion"`

	// HasTerms is false for removed events and for complete events whose log
	// did not carry the swap tuple.
	HasTerms bool `structs:"has_terms" db:"has_terms"`
}
