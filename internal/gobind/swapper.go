// Code in this package follows the shape of abigen output so the service can
// treat the escrow contract the same way regardless of how bindings were
// produced.
package gobind

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ISwapTokensSwap mirrors the Swap tuple persisted by the escrow contract.
// Token types use the on-chain encoding: 0=NONE, 1=ERC20, 2=ERC777, 3=ERC721,
// 4=ERC1155. A side that gives only ETH has token type NONE and a non-zero
// ETH portion.
type ISwapTokensSwap struct {
	SwapId                 *big.Int
	ExpiryDate             *big.Int
	Initiator              common.Address
	InitiatorTokenType     uint8
	InitiatorERCContract   common.Address
	InitiatorTokenId       *big.Int
	InitiatorTokenQuantity *big.Int
	InitiatorETHPortion    *big.Int
	Acceptor               common.Address
	AcceptorTokenType      uint8
	AcceptorERCContract    common.Address
	AcceptorTokenId        *big.Int
	AcceptorTokenQuantity  *big.Int
	AcceptorETHPortion     *big.Int
}

// ISwapTokensSwapStatus is the live readiness tuple returned by getSwapStatus.
// Valid only at query time.
type ISwapTokensSwapStatus struct {
	InitiatorNeedsToOwnToken       bool
	AcceptorNeedsToOwnToken        bool
	InitiatorTokenRequiresApproval bool
	AcceptorTokenRequiresApproval  bool
	IsReadyForSwapping             bool
}

const swapTupleComponents = `[` +
	`{"internalType":"uint256","name":"swapId","type":"uint256"},` +
	`{"internalType":"uint256","name":"expiryDate","type":"uint256"},` +
	`{"internalType":"address","name":"initiator","type":"address"},` +
	`{"internalType":"uint8","name":"initiatorTokenType","type":"uint8"},` +
	`{"internalType":"address","name":"initiatorERCContract","type":"address"},` +
	`{"internalType":"uint256","name":"initiatorTokenId","type":"uint256"},` +
	`{"internalType":"uint256","name":"initiatorTokenQuantity","type":"uint256"},` +
	`{"internalType":"uint256","name":"initiatorETHPortion","type":"uint256"},` +
	`{"internalType":"address","name":"acceptor","type":"address"},` +
	`{"internalType":"uint8","name":"acceptorTokenType","type":"uint8"},` +
	`{"internalType":"address","name":"acceptorERCContract","type":"address"},` +
	`{"internalType":"uint256","name":"acceptorTokenId","type":"uint256"},` +
	`{"internalType":"uint256","name":"acceptorTokenQuantity","type":"uint256"},` +
	`{"internalType":"uint256","name":"acceptorETHPortion","type":"uint256"}` +
	`]`

// SwapperMetaData contains all meta data concerning the Swapper contract.
var SwapperMetaData = &bind.MetaData{
	ABI: `[` +
		`{"anonymous":false,"inputs":[` +
		`{"indexed":true,"internalType":"uint256","name":"swapId","type":"uint256"},` +
		`{"indexed":true,"internalType":"address","name":"initiator","type":"address"},` +
		`{"components":` + swapTupleComponents + `,"indexed":false,"internalType":"struct ISwapTokens.Swap","name":"swap","type":"tuple"}` +
		`],"name":"SwapInitiated","type":"event"},` +
		`{"anonymous":false,"inputs":[` +
		`{"indexed":true,"internalType":"uint256","name":"swapId","type":"uint256"},` +
		`{"indexed":true,"internalType":"address","name":"initiator","type":"address"},` +
		`{"indexed":true,"internalType":"address","name":"acceptor","type":"address"},` +
		`{"components":` + swapTupleComponents + `,"indexed":false,"internalType":"struct ISwapTokens.Swap","name":"swap","type":"tuple"}` +
		`],"name":"SwapComplete","type":"event"},` +
		`{"anonymous":false,"inputs":[` +
		`{"indexed":true,"internalType":"uint256","name":"swapId","type":"uint256"},` +
		`{"indexed":true,"internalType":"address","name":"initiator","type":"address"}` +
		`],"name":"SwapRemoved","type":"event"},` +
		`{"inputs":[` +
		`{"internalType":"uint256","name":"swapId","type":"uint256"},` +
		`{"components":` + swapTupleComponents + `,"internalType":"struct ISwapTokens.Swap","name":"swap","type":"tuple"}` +
		`],"name":"getSwapStatus","outputs":[` +
		`{"components":[` +
		`{"internalType":"bool","name":"initiatorNeedsToOwnToken","type":"bool"},` +
		`{"internalType":"bool","name":"acceptorNeedsToOwnToken","type":"bool"},` +
		`{"internalType":"bool","name":"initiatorTokenRequiresApproval","type":"bool"},` +
		`{"internalType":"bool","name":"acceptorTokenRequiresApproval","type":"bool"},` +
		`{"internalType":"bool","name":"isReadyForSwapping","type":"bool"}` +
		`],"internalType":"struct ISwapTokens.SwapStatus","name":"","type":"tuple"}` +
		`],"stateMutability":"view","type":"function"}` +
		`]`,
}

// Swapper is a read-only binding around the escrow contract.
type Swapper struct {
	address  common.Address
	abi      abi.ABI
	contract *bind.BoundContract
}

// NewSwapper creates a new read-only instance of Swapper bound to a specific
// deployed contract.
func NewSwapper(address common.Address, backend bind.ContractBackend) (*Swapper, error) {
	parsed, err := abi.JSON(strings.NewReader(SwapperMetaData.ABI))
	if err != nil {
		return nil, err
	}

	return &Swapper{
		address:  address,
		abi:      parsed,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
	}, nil
}

// Address returns the bound contract address.
func (s *Swapper) Address() common.Address {
	return s.address
}

// ABI returns the parsed contract ABI for event filtering and unpacking.
func (s *Swapper) ABI() abi.ABI {
	return s.abi
}

// GetSwapStatus is a free data retrieval call binding the contract method
// getSwapStatus. The swap tuple must match the on-chain terms exactly,
// otherwise the returned flags are undefined.
func (s *Swapper) GetSwapStatus(opts *bind.CallOpts, swapId *big.Int, swap ISwapTokensSwap) (ISwapTokensSwapStatus, error) {
	var out []interface{}
	err := s.contract.Call(opts, &out, "getSwapStatus", swapId, swap)
	if err != nil {
		return ISwapTokensSwapStatus{}, err
	}

	status := *abi.ConvertType(out[0], new(ISwapTokensSwapStatus)).(*ISwapTokensSwapStatus)
	return status, nil
}

// SwapperSwapInitiated represents a SwapInitiated event raised by the Swapper
// contract. SwapId and Initiator are indexed and must be read from topics.
type SwapperSwapInitiated struct {
	SwapId    *big.Int
	Initiator common.Address
	Swap      ISwapTokensSwap
	Raw       types.Log
}

// SwapperSwapComplete represents a SwapComplete event raised by the Swapper
// contract.
type SwapperSwapComplete struct {
	SwapId    *big.Int
	Initiator common.Address
	Acceptor  common.Address
	Swap      ISwapTokensSwap
	Raw       types.Log
}

// SwapperSwapRemoved represents a SwapRemoved event raised by the Swapper
// contract. All fields are indexed, the data segment is empty.
type SwapperSwapRemoved struct {
	SwapId    *big.Int
	Initiator common.Address
	Raw       types.Log
}
