// Package id formats and parses voucher and line item identifiers.
//
// A voucher is identified as "YYYY-MM-NNN"; its line items append a
// lowercase suffix ("2024-01-007a", "2024-01-007b", ...).
package id

import (
	"fmt"
	"strconv"
	"strings"
)

// VoucherRef is the decoded form of a voucher ID.
type VoucherRef struct {
	Year  int
	Month int
	Seq   int
}

// String formats the reference as a voucher ID.
func (r VoucherRef) String() string {
	return Voucher(r.Year, r.Month, r.Seq)
}

// Voucher returns a voucher ID like "2024-01-001".
func Voucher(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// LineItem returns the ID of the n-th line item of a voucher (0='a', 1='b', ...).
func LineItem(voucherID string, n int) string {
	return voucherID + string(rune('a'+n))
}

// VoucherOf strips the line suffix from a line item ID.
// "2024-01-001a" -> "2024-01-001"
func VoucherOf(lineID string) string {
	return strings.TrimRightFunc(lineID, func(r rune) bool { return r >= 'a' && r <= 'z' })
}

// Parse decodes a voucher or line item ID.
func Parse(s string) (VoucherRef, error) {
	parts := strings.Split(VoucherOf(s), "-")
	if len(parts) != 3 {
		return VoucherRef{}, fmt.Errorf("invalid voucher ID format: %q", s)
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return VoucherRef{}, fmt.Errorf("invalid voucher ID %q: %w", s, err)
		}
		nums[i] = n
	}
	if nums[1] < 1 || nums[1] > 12 {
		return VoucherRef{}, fmt.Errorf("invalid month in voucher ID %q", s)
	}
	return VoucherRef{Year: nums[0], Month: nums[1], Seq: nums[2]}, nil
}
