package app

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"code.hybscloud.com/silo/internal/errs"
)

var nonLetters = regexp.MustCompile(`[^A-Za-z]`)

// readFirstLine reads the first line of path, trimming its line terminator.
func readFirstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errs.Newf(errs.Configuration, "cannot open %q: %v", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", errs.Newf(errs.Configuration, "cannot read %q: %v", path, err)
		}
		return "", errs.Newf(errs.Configuration, "%q is empty", path)
	}
	return scanner.Text(), nil
}

// readCipherText reads the encrypted message's first line verbatim; the
// letters-only/square-length validation happens in cracker.NewContext.
func readCipherText(path string) (string, error) {
	return readFirstLine(path)
}

// readExpectedClearText reads the decrypted message's first line,
// upper-cased with every non-letter stripped, matching the normalization
// the scorer applies to candidates.
func readExpectedClearText(path string) (string, error) {
	line, err := readFirstLine(path)
	if err != nil {
		return "", err
	}
	return nonLetters.ReplaceAllString(strings.ToUpper(line), ""), nil
}
