package types

import (
	"bytes"
	"encoding/base32"
	"errors"
	"fmt"

	fcmm "github.com/FluidWallet/fluid/common"
)

const (
	AddressLen_Secp256 = 20 //20 bytes
	AddressLen_Ed25519 = 20 //20 bytes
)

const AddressPrefix = "f"

const checksumHashLength = 4

const encodeStd = "fluidwaetbcghjkmnopqrsvxyz123456"

var addressEncoding = base32.NewEncoding(encodeStd)

var UndefAddress = Address("<empty>")

type Address string

func checksum(data []byte) []byte {
	return fcmm.NewBlake2bHasher(checksumHashLength).Compute(string(data))
}

func validateChecksum(data, expect []byte) bool {
	digest := checksum(data)
	return bytes.Equal(digest, expect)
}

func encode(cryptType CryptType, payload []byte) (Address, error) {
	if len(payload) == 0 {
		return UndefAddress, errors.New("invalid payload: len 0")
	}

	var strAddr string
	switch cryptType {
	case CryptType_Ed25519, CryptType_Secp256:
		cksm := checksum(append([]byte{byte(cryptType)}, payload...))
		strAddr = AddressPrefix + fmt.Sprintf("%d", cryptType) + addressEncoding.WithPadding(-1).EncodeToString(append(payload, cksm[:]...))
	default:
		return UndefAddress, fmt.Errorf("unknown crypt type %d", cryptType)
	}

	return Address(strAddr), nil
}

func decode(a string) (CryptType, []byte, error) {
	if len(a) < 2 || a == string(UndefAddress) {
		return CryptType_Unknown, nil, errors.New("invalid address: too short")
	}

	if string(a[0]) != AddressPrefix {
		return CryptType_Unknown, nil, fmt.Errorf("unknown address prefix %c", a[0])
	}

	var cryptType CryptType
	switch a[1] {
	case '1':
		cryptType = CryptType_Ed25519
	case '2':
		cryptType = CryptType_Secp256
	default:
		return CryptType_Unknown, nil, fmt.Errorf("unknown crypt type digit %c", a[1])
	}

	raw := a[2:]

	payloadcksm, err := addressEncoding.WithPadding(-1).DecodeString(raw)
	if err != nil {
		return CryptType_Unknown, nil, err
	}

	if len(payloadcksm)-checksumHashLength < 0 {
		return CryptType_Unknown, nil, fmt.Errorf("invalid checksum %d", len(payloadcksm))
	}

	payload := payloadcksm[:len(payloadcksm)-checksumHashLength]
	cksm := payloadcksm[len(payloadcksm)-checksumHashLength:]

	if cryptType == CryptType_Secp256 && len(payload) != AddressLen_Secp256 {
		return CryptType_Unknown, nil, fmt.Errorf("invalid payload %d, expected %d", len(payload), AddressLen_Secp256)
	}
	if cryptType == CryptType_Ed25519 && len(payload) != AddressLen_Ed25519 {
		return CryptType_Unknown, nil, fmt.Errorf("invalid payload %d, expected %d", len(payload), AddressLen_Ed25519)
	}

	if !validateChecksum(append([]byte{byte(cryptType)}, payload...), cksm) {
		return CryptType_Unknown, nil, errors.New("invalid checksum")
	}

	return cryptType, payload, nil
}

func NewAddress(cryptType CryptType, payload []byte) (Address, error) {
	return encode(cryptType, payload)
}

func NewFromString(addr string) Address {
	return Address(addr)
}

func (a Address) CryptType() (CryptType, error) {
	if len(a) == 0 {
		return CryptType_Unknown, errors.New("invalid address: len 0")
	}

	cryptType, _, err := decode(string(a))
	if err != nil {
		cryptType = CryptType_Unknown
	}

	return cryptType, err
}

func (a Address) Payload() ([]byte, error) {
	if len(a) == 0 {
		return nil, errors.New("invalid address: len 0")
	}

	_, pLoad, err := decode(string(a))
	if err != nil {
		pLoad = nil
	}

	return pLoad, err
}

func (a Address) IsValid() bool {
	_, _, err := decode(string(a))
	return err == nil
}

func (a Address) Bytes() []byte {
	return []byte(a)
}
