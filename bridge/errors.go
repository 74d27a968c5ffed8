package bridge

import (
	"errors"
	"fmt"
)

// common errors
var (
	ErrChainUnsupported  = errors.New("chain id not supported")
	ErrSameChain         = errors.New("source and target chain are the same")
	ErrAssetNotSupported = errors.New("asset not supported on this route")
	ErrTxNotFound        = errors.New("tx not found")
	ErrTxHashMalformed   = errors.New("malformed transaction hash")
	ErrFeeUnavailable    = errors.New("fee data unavailable")
	ErrRPCQueryError     = errors.New("rpc query error")
	ErrNoGatewayConfig   = errors.New("no gateway config for chain")
	ErrNotFound          = errors.New("not found")
)

// WrapRPCQueryError wrap rpc error
func WrapRPCQueryError(err error, method string, params ...interface{}) error {
	if err == nil {
		err = ErrNotFound
	}
	return fmt.Errorf("%w: call '%s %v' failed, err='%v'", ErrRPCQueryError, method, params, err)
}

// IsRPCQueryOrNotFoundError is rpc or not found error
func IsRPCQueryOrNotFoundError(err error) bool {
	return errors.Is(err, ErrRPCQueryError) || errors.Is(err, ErrNotFound)
}
