package types

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// MsgInstantiateContractResponseTypeURL is the type url carried by the
// message response of a contract instantiation.
const MsgInstantiateContractResponseTypeURL = "/cosmwasm.wasm.v1.MsgInstantiateContractResponse"

const (
	instantiateResponseAddressField protowire.Number = 1
	instantiateResponseDataField    protowire.Number = 2
)

// InstantiateResponse mirrors cosmwasm.wasm.v1.MsgInstantiateContractResponse.
type InstantiateResponse struct {
	Address string
	Data    []byte
}

// Marshal encodes the response in protobuf wire format.
func (r InstantiateResponse) Marshal() []byte {
	var b []byte
	if r.Address != "" {
		b = protowire.AppendTag(b, instantiateResponseAddressField, protowire.BytesType)
		b = protowire.AppendString(b, r.Address)
	}
	if len(r.Data) > 0 {
		b = protowire.AppendTag(b, instantiateResponseDataField, protowire.BytesType)
		b = protowire.AppendBytes(b, r.Data)
	}
	return b
}

// ParseInstantiateResponse decodes a protobuf MsgInstantiateContractResponse.
// Unknown fields are skipped.
func ParseInstantiateResponse(bz []byte) (InstantiateResponse, error) {
	var res InstantiateResponse
	for len(bz) > 0 {
		num, typ, n := protowire.ConsumeTag(bz)
		if n < 0 {
			return res, ErrParseResponse.Wrapf("tag: %s", protowire.ParseError(n))
		}
		bz = bz[n:]

		switch {
		case num == instantiateResponseAddressField && typ == protowire.BytesType:
			v, m := protowire.ConsumeString(bz)
			if m < 0 {
				return res, ErrParseResponse.Wrapf("address: %s", protowire.ParseError(m))
			}
			res.Address = v
			n = m
		case num == instantiateResponseDataField && typ == protowire.BytesType:
			v, m := protowire.ConsumeBytes(bz)
			if m < 0 {
				return res, ErrParseResponse.Wrapf("data: %s", protowire.ParseError(m))
			}
			res.Data = append([]byte(nil), v...)
			n = m
		default:
			n = protowire.ConsumeFieldValue(num, typ, bz)
			if n < 0 {
				return res, ErrParseResponse.Wrapf("field %d: %s", num, protowire.ParseError(n))
			}
		}
		bz = bz[n:]
	}
	if res.Address == "" {
		return res, ErrParseResponse.Wrap("missing contract address")
	}
	return res, nil
}

// MsgExecuteContractResponseTypeURL is the type url carried by the message
// response of a contract execution.
const MsgExecuteContractResponseTypeURL = "/cosmwasm.wasm.v1.MsgExecuteContractResponse"

// MarshalExecuteResponse encodes cosmwasm.wasm.v1.MsgExecuteContractResponse.
func MarshalExecuteResponse(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}
	b := protowire.AppendTag(nil, 1, protowire.BytesType)
	return protowire.AppendBytes(b, data)
}
