package cli

import (
	"os"
	"strconv"
)

// columnsFromEnv reads COLUMNS, returning 0 when unset or malformed.
func columnsFromEnv() int {
	n, err := strconv.Atoi(os.Getenv("COLUMNS"))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
