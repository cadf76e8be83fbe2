package types

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"

	wasmtypes "github.com/choice-exchange/choice/x/wasm/types"
)

// Ownership is the two-step owner handover shared by the factory and the
// auction forwarder. Owner proposes, the candidate accepts.
type Ownership struct {
	Owner         sdk.AccAddress `json:"owner"`
	ProposedOwner sdk.AccAddress `json:"proposed_owner,omitempty"`
}

// AssertOwner fails unless sender is the current owner.
func (o Ownership) AssertOwner(sender string) error {
	if sender != o.Owner.String() {
		return ErrUnauthorized.Wrapf("%s is not the owner", sender)
	}
	return nil
}

// Propose records a new owner candidate.
func (o *Ownership) Propose(sender, newOwner string) (*wasmtypes.Response, error) {
	if err := o.AssertOwner(sender); err != nil {
		return nil, err
	}
	candidate, err := sdk.AccAddressFromBech32(newOwner)
	if err != nil {
		return nil, ErrInvalidAddress.Wrapf("new owner %q: %s", newOwner, err)
	}
	o.ProposedOwner = candidate
	return wasmtypes.NewResponse().
		AddAttribute("action", "propose_new_owner").
		AddAttribute("proposed_owner", newOwner), nil
}

// Accept hands ownership to the pending candidate when sender is that candidate.
func (o *Ownership) Accept(sender string) (*wasmtypes.Response, error) {
	if o.ProposedOwner.Empty() || o.ProposedOwner.String() != sender {
		return nil, ErrNoOwnershipProposal
	}
	o.Owner = o.ProposedOwner
	o.ProposedOwner = nil
	return wasmtypes.NewResponse().
		AddAttribute("action", "accept_ownership").
		AddAttribute("new_owner", sender), nil
}

// Cancel drops the pending candidate.
func (o *Ownership) Cancel(sender string) (*wasmtypes.Response, error) {
	if err := o.AssertOwner(sender); err != nil {
		return nil, err
	}
	o.ProposedOwner = nil
	return wasmtypes.NewResponse().
		AddAttribute("action", "cancel_ownership_proposal").
		AddAttribute("owner", sender), nil
}

type ProposeNewOwnerMsg struct {
	NewOwner string `json:"new_owner"`
}

// UnitVariant returns the name of an execute message sent in its bare string
// form, as in "accept_ownership".
func UnitVariant(msg []byte) (string, bool) {
	var name string
	if len(msg) == 0 || msg[0] != '"' {
		return "", false
	}
	if err := json.Unmarshal(msg, &name); err != nil {
		return "", false
	}
	return name, true
}
