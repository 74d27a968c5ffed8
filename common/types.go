// Package common wraps the basic hash/address types and parse helpers
// shared by all chain facing packages.
package common

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Address represents the 20 byte address of an Ethereum account.
type Address = ethcommon.Address

// Hash represents the 32 byte Keccak256 hash of arbitrary data.
type Hash = ethcommon.Hash

// HexToAddress returns Address with byte values of s.
func HexToAddress(s string) Address { return ethcommon.HexToAddress(s) }

// BytesToAddress returns Address with value b.
func BytesToAddress(b []byte) Address { return ethcommon.BytesToAddress(b) }

// HexToHash sets byte representation of s to hash.
func HexToHash(s string) Hash { return ethcommon.HexToHash(s) }

// BytesToHash sets b to hash.
func BytesToHash(b []byte) Hash { return ethcommon.BytesToHash(b) }

// FromHex returns the bytes represented by the hexadecimal string s.
func FromHex(s string) []byte { return ethcommon.FromHex(s) }

// IsHexAddress verifies whether a string can represent a valid hex-encoded address.
func IsHexAddress(s string) bool { return ethcommon.IsHexAddress(s) }

// IsHexHash verifies whether a string can represent a valid hex-encoded hash.
func IsHexHash(s string) bool {
	if has0xPrefix(s) {
		s = s[2:]
	}
	return len(s) == 2*ethcommon.HashLength && isHex(s)
}

func has0xPrefix(str string) bool {
	return len(str) >= 2 && str[0] == '0' && (str[1] == 'x' || str[1] == 'X')
}

func isHexCharacter(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isHex(str string) bool {
	if len(str)%2 != 0 {
		return false
	}
	for _, c := range []byte(str) {
		if !isHexCharacter(c) {
			return false
		}
	}
	return true
}

// GetBigInt get big int from data segment [start, start+size)
func GetBigInt(data []byte, start, size uint64) *big.Int {
	if uint64(len(data)) < start+size {
		return big.NewInt(0)
	}
	return new(big.Int).SetBytes(data[start : start+size])
}

// ToJSONBlob marshal to hex blob
func ToJSONBlob(data []byte) string {
	return hexutil.Encode(data)
}
