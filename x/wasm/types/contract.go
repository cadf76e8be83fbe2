package types

import (
	"encoding/json"
)

// Contract is a code that can be instantiated and called through the host.
// Messages are the JSON bodies clients send; contracts decode them themselves.
type Contract interface {
	Instantiate(deps Deps, env Env, info MessageInfo, msg json.RawMessage) (*Response, error)
	Execute(deps Deps, env Env, info MessageInfo, msg json.RawMessage) (*Response, error)
	Query(deps Deps, env Env, msg json.RawMessage) ([]byte, error)
}

// Migrator is implemented by codes that accept a migration onto them.
type Migrator interface {
	Migrate(deps Deps, env Env, msg json.RawMessage) (*Response, error)
}

// Replier is implemented by codes that dispatch sub-messages with replies.
type Replier interface {
	Reply(deps Deps, env Env, reply Reply) (*Response, error)
}

// ContractInfo is the host's record of an instantiated contract.
type ContractInfo struct {
	CodeID  uint64 `json:"code_id"`
	Creator string `json:"creator"`
	Admin   string `json:"admin,omitempty"`
	Label   string `json:"label"`
}

// DecodeMsg unmarshals a contract message, wrapping failures as ErrInvalidMsg.
func DecodeMsg(msg json.RawMessage, v any) error {
	if err := json.Unmarshal(msg, v); err != nil {
		return ErrInvalidMsg.Wrapf("decode %T: %s", v, err)
	}
	return nil
}

// EncodeResponse marshals a query answer.
func EncodeResponse(v any) ([]byte, error) {
	bz, err := json.Marshal(v)
	if err != nil {
		return nil, ErrInvalidMsg.Wrapf("encode %T: %s", v, err)
	}
	return bz, nil
}
