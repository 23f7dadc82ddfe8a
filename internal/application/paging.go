package application

import (
	"fmt"

	"github.com/shareloop/service-sharing/internal/domain"
	bookingDomain "github.com/shareloop/service-sharing/internal/domain/booking"
)

// pageFor converts the wire-level (from, size) pair into a page request.
// from is a zero-based row offset, size the page length; the page index is
// from/size by integer division.
func pageFor(from, size int) (bookingDomain.Page, error) {
	if size <= 0 || from < 0 {
		return bookingDomain.Page{}, domain.NewValidationError(
			fmt.Sprintf("invalid page parameters: from=%d size=%d", from, size))
	}
	return bookingDomain.Page{Number: from / size, Size: size}, nil
}
