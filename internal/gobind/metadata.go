package gobind

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// TokenMetaData describes the optional metadata surface shared by ERC-20,
// ERC-721 and ERC-1155 tokens. Not every deployed token implements it, so
// every call here is best-effort.
var TokenMetaData = &bind.MetaData{
	ABI: `[` +
		`{"inputs":[],"name":"name","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"},` +
		`{"inputs":[],"name":"decimals","outputs":[{"internalType":"uint8","name":"","type":"uint8"}],"stateMutability":"view","type":"function"}` +
		`]`,
}

// MetadataCaller issues name()/decimals() calls against arbitrary token
// contracts over a single backend. Contracts are bound per call because the
// target address differs per token.
type MetadataCaller struct {
	abi     abi.ABI
	backend bind.ContractCaller
}

func NewMetadataCaller(backend bind.ContractCaller) (*MetadataCaller, error) {
	parsed, err := abi.JSON(strings.NewReader(TokenMetaData.ABI))
	if err != nil {
		return nil, err
	}
	return &MetadataCaller{abi: parsed, backend: backend}, nil
}

func (m *MetadataCaller) TokenName(ctx context.Context, token common.Address) (string, error) {
	contract := bind.NewBoundContract(token, m.abi, m.backend, nil, nil)

	var out []interface{}
	err := contract.Call(&bind.CallOpts{Context: ctx}, &out, "name")
	if err != nil {
		return "", err
	}

	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

func (m *MetadataCaller) TokenDecimals(ctx context.Context, token common.Address) (uint8, error) {
	contract := bind.NewBoundContract(token, m.abi, m.backend, nil, nil)

	var out []interface{}
	err := contract.Call(&bind.CallOpts{Context: ctx}, &out, "decimals")
	if err != nil {
		return 0, err
	}

	return *abi.ConvertType(out[0], new(uint8)).(*uint8), nil
}
