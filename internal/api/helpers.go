package api

import (
	"errors"
	"strconv"
)

var errNotPositive = errors.New("value must be positive")

func parsePositiveInt(raw string) (int, error) {
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if parsed <= 0 {
		return 0, errNotPositive
	}
	return parsed, nil
}
