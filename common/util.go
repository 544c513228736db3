package common

import (
	"fmt"
)

func panicf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}

// ZeroBytes wipes a secret byte slice in place.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func BytesCopy(src []byte) []byte {
	dst := make([]byte, len(src))
	copy(dst, src)

	return dst
}

func Has0xPrefix(str string) bool {
	return len(str) >= 2 && str[0] == '0' && (str[1] == 'x' || str[1] == 'X')
}

func IsHexCharacter(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func IsHex(str string) bool {
	if len(str)%2 != 0 {
		return false
	}
	for _, c := range []byte(str) {
		if !IsHexCharacter(c) {
			return false
		}
	}
	return true
}
