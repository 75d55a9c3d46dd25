package gobangla

import (
	"os"
	"unicode/utf8"
)

func getLastCharacter(input string) (string, int) {
	r, size := utf8.DecodeLastRuneInString(input)
	if r == utf8.RuneError && (size == 0 || size == 1) {
		size = 0
	}
	return input[len(input)-size:], size
}

// Number of characters, not bytes
func charCount(input string) int {
	return utf8.RuneCountInString(input)
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

func dirExists(loc string) bool {
	info, err := os.Stat(loc)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && info.IsDir()
}
