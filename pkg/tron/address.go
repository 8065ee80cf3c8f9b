package tron

import (
	"errors"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// AddressPrefix 主网/测试网地址的版本字节
const AddressPrefix byte = 0x41

const addressLength = 21

var ErrInvalidAddress = errors.New("invalid tron address")

// HexToBase58 把 41 开头的 hex 地址转成 T 开头的 base58check 地址
func HexToBase58(h string) (string, error) {
	b, err := decodeHex(h)
	if err != nil {
		return "", err
	}
	if len(b) != addressLength || b[0] != AddressPrefix {
		return "", ErrInvalidAddress
	}
	return base58.CheckEncode(b[1:], b[0]), nil
}

// Base58ToHex 把 base58check 地址转回 41 开头的小写 hex
func Base58ToHex(addr string) (string, error) {
	payload, version, err := base58.CheckDecode(addr)
	if err != nil {
		return "", ErrInvalidAddress
	}
	if version != AddressPrefix || len(payload) != addressLength-1 {
		return "", ErrInvalidAddress
	}
	return strings.TrimPrefix(hexutil.Encode(append([]byte{version}, payload...)), "0x"), nil
}

// decodeHex 接受带或不带 0x 前缀的 hex
func decodeHex(h string) ([]byte, error) {
	h = strings.TrimPrefix(strings.TrimPrefix(h, "0x"), "0X")
	if h == "" {
		return nil, ErrInvalidAddress
	}
	b, err := hexutil.Decode("0x" + h)
	if err != nil {
		return nil, err
	}
	return b, nil
}
