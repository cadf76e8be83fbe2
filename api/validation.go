package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	choicetypes "github.com/choice-exchange/choice/x/choice/types"
	factorytypes "github.com/choice-exchange/choice/x/factory/types"
	wasmtypes "github.com/choice-exchange/choice/x/wasm/types"
)

// ErrInvalidRequest marks input rejected before any contract is queried.
var ErrInvalidRequest = errors.New("invalid request")

// maxPairsLimit mirrors the factory's own cap.
const maxPairsLimit = 30

// ParseAssetInfo reads a bech32 address as a contract token and anything
// else as a native denom.
func ParseAssetInfo(s string) (choicetypes.AssetInfo, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return choicetypes.AssetInfo{}, fmt.Errorf("%w: empty asset", ErrInvalidRequest)
	}
	if _, err := sdk.AccAddressFromBech32(s); err == nil {
		return choicetypes.TokenAssetInfo(s), nil
	}
	if err := sdk.ValidateDenom(s); err != nil {
		return choicetypes.AssetInfo{}, fmt.Errorf("%w: asset %q: %v", ErrInvalidRequest, s, err)
	}
	return choicetypes.NativeAssetInfo(s), nil
}

// parseAmount accepts a positive base-10 integer.
func parseAmount(s string) (math.Int, error) {
	amount, ok := math.NewIntFromString(strings.TrimSpace(s))
	if !ok || !amount.IsPositive() {
		return math.Int{}, fmt.Errorf("%w: amount %q must be a positive integer", ErrInvalidRequest, s)
	}
	return amount, nil
}

func parseAddress(s string) (string, error) {
	if _, err := sdk.AccAddressFromBech32(s); err != nil {
		return "", fmt.Errorf("%w: address %q: %v", ErrInvalidRequest, s, err)
	}
	return s, nil
}

// parsePairsPage reads the start_after=a,b and limit parameters of a pair listing.
func parsePairsPage(startAfter, limit string) (*[2]choicetypes.AssetInfo, *uint32, error) {
	var start *[2]choicetypes.AssetInfo
	if startAfter != "" {
		parts := strings.Split(startAfter, ",")
		if len(parts) != 2 {
			return nil, nil, fmt.Errorf("%w: start_after takes two assets", ErrInvalidRequest)
		}
		var infos [2]choicetypes.AssetInfo
		for i, part := range parts {
			info, err := ParseAssetInfo(part)
			if err != nil {
				return nil, nil, err
			}
			infos[i] = info
		}
		start = &infos
	}

	var lim *uint32
	if limit != "" {
		n, err := strconv.ParseUint(limit, 10, 32)
		if err != nil || n > maxPairsLimit {
			return nil, nil, fmt.Errorf("%w: limit must be between 0 and %d", ErrInvalidRequest, maxPairsLimit)
		}
		v := uint32(n)
		lim = &v
	}
	return start, lim, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, wasmtypes.ErrNotFound) ||
		errors.Is(err, wasmtypes.ErrContractNotFound) ||
		errors.Is(err, factorytypes.ErrPairNotFound)
}

// writeError maps contract and input errors onto HTTP statuses. Registered
// errors keep their codespace and code.
func writeError(c *gin.Context, err error) {
	if errors.Is(err, ErrInvalidRequest) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Code:    "INVALID_REQUEST",
			Details: err.Error(),
		})
		return
	}

	codespace, code, _ := errorsmod.ABCIInfo(err, false)
	if codespace == errorsmod.UndefinedCodespace {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Internal server error",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	status := http.StatusBadRequest
	if isNotFound(err) {
		status = http.StatusNotFound
	}
	c.JSON(status, ErrorResponse{
		Error: err.Error(),
		Code:  fmt.Sprintf("%s:%d", codespace, code),
	})
}
