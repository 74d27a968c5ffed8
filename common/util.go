package common

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// GetBigIntFromStr new big int from string.
func GetBigIntFromStr(str string) (*big.Int, error) {
	bi, ok := new(big.Int).SetString(str, 0)
	if !ok {
		return nil, fmt.Errorf("invalid 256 bit integer: %v", str)
	}
	return bi, nil
}

// GetIntFromStr get int from string.
func GetIntFromStr(str string) (int, error) {
	res, err := strconv.ParseInt(str, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid signed integer: %v", str)
	}
	return int(res), nil
}

// GetUint64FromStr get uint64 from string.
func GetUint64FromStr(str string) (uint64, error) {
	res, err := strconv.ParseUint(str, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid unsigned 64 bit integer: %v", str)
	}
	return res, nil
}

// GetFloat64FromStr get float64 from string.
func GetFloat64FromStr(str string) (float64, error) {
	res, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float: %v", str)
	}
	return res, nil
}

// IsEqualIgnoreCase returns true if s1 and s2 are equal ignoring case.
func IsEqualIgnoreCase(s1, s2 string) bool {
	return strings.EqualFold(s1, s2)
}

// FileExist checks if a file exists at filePath.
func FileExist(filePath string) bool {
	_, err := os.Stat(filePath)
	if err != nil && os.IsNotExist(err) {
		return false
	}
	return true
}

// AbsolutePath returns datadir + filename, or filename if it is absolute.
func AbsolutePath(datadir, filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(datadir, filename)
}

// CurrentDir current directory
func CurrentDir() (string, error) {
	return os.Getwd()
}
