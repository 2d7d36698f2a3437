package broker

import (
	"errors"
	"fmt"
)

var (
	ErrInitialize   = errors.New("terminal initialization failed")
	ErrSymbolSelect = errors.New("symbol select failed")
	ErrSymbolInfo   = errors.New("symbol info unavailable")
	ErrNoTick       = errors.New("no tick data")
)

// UnavailableError reports a broker failure that happened before an order
// could be submitted. Reason is the text shown to the user.
type UnavailableError struct {
	Reason string
	Kind   error
	Err    error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *UnavailableError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func unavailable(kind error, err error, reason string) *UnavailableError {
	return &UnavailableError{Reason: reason, Kind: kind, Err: err}
}

func initializeFailed(err error) *UnavailableError {
	return unavailable(ErrInitialize, err, "MT5 initialization failed.")
}

func symbolSelectFailed(symbol string, err error) *UnavailableError {
	return unavailable(ErrSymbolSelect, err, fmt.Sprintf("Symbol %s not found or not enabled in Market Watch.", symbol))
}

func symbolInfoFailed(symbol string, err error) *UnavailableError {
	return unavailable(ErrSymbolInfo, err, fmt.Sprintf("Failed to retrieve symbol info for %s.", symbol))
}

func noTick(symbol string, err error) *UnavailableError {
	return unavailable(ErrNoTick, err, fmt.Sprintf("No tick data available for %s. Ensure the symbol is active.", symbol))
}

// AsUnavailable extracts the UnavailableError from err, wrapping anything else
// as an initialization failure.
func AsUnavailable(err error) *UnavailableError {
	var ue *UnavailableError
	if errors.As(err, &ue) {
		return ue
	}
	return initializeFailed(err)
}
