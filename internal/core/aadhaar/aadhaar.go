package aadhaar

import (
	"errors"
	"strconv"
)

var (
	// ErrInvalidLength は Aadhaar 番号が 12 桁でない場合に返却されます。
	ErrInvalidLength = errors.New("aadhaar: must be exactly 12 digits")
	// ErrChecksum は Verhoeff 検査数字の検証に失敗した場合に返却されます。
	ErrChecksum = errors.New("aadhaar: verhoeff checksum failed")
)

// Verhoeff アルゴリズムの乗算表と置換表。
var (
	multiplicationTable = [10][10]int{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		{1, 2, 3, 4, 0, 6, 7, 8, 9, 5},
		{2, 3, 4, 0, 1, 7, 8, 9, 5, 6},
		{3, 4, 0, 1, 2, 8, 9, 5, 6, 7},
		{4, 0, 1, 2, 3, 9, 5, 6, 7, 8},
		{5, 9, 8, 7, 6, 0, 4, 3, 2, 1},
		{6, 5, 9, 8, 7, 1, 0, 4, 3, 2},
		{7, 6, 5, 9, 8, 2, 1, 0, 4, 3},
		{8, 7, 6, 5, 9, 3, 2, 1, 0, 4},
		{9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
	}
	permutationTable = [8][10]int{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		{1, 5, 7, 6, 2, 8, 3, 0, 9, 4},
		{5, 8, 0, 3, 7, 9, 6, 1, 4, 2},
		{8, 9, 1, 6, 0, 4, 3, 5, 2, 7},
		{9, 4, 5, 3, 1, 2, 6, 8, 7, 0},
		{4, 2, 8, 6, 5, 7, 3, 9, 0, 1},
		{2, 7, 9, 3, 8, 0, 6, 4, 1, 5},
		{7, 0, 4, 6, 9, 1, 3, 2, 5, 8},
	}
)

// Validate は Aadhaar 番号を 12 桁ルールと Verhoeff 検査数字で検証します。
func Validate(number int64) error {
	digits := strconv.FormatInt(number, 10)
	if len(digits) != 12 {
		return ErrInvalidLength
	}
	if !validChecksum(digits) {
		return ErrChecksum
	}
	return nil
}

// validChecksum は右端の桁から Verhoeff 検査数字を計算します。
func validChecksum(digits string) bool {
	checksum := 0
	for i := 0; i < len(digits); i++ {
		digit := int(digits[len(digits)-1-i] - '0')
		checksum = multiplicationTable[checksum][permutationTable[i%8][digit]]
	}
	return checksum == 0
}
