package input

import "fmt"

// validatePageInput only accepts digits in the go-to field
func validatePageInput(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return fmt.Errorf("%q is not a digit", r)
		}
	}
	return nil
}
